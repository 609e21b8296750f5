package main

import (
	"github.com/coachboard/playdiagram/lib/xmain"
	"github.com/coachboard/playdiagram/pdcli"
)

func main() {
	xmain.Main(pdcli.Run)
}
