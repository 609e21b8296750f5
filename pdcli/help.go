package pdcli

import (
	"fmt"
	"path/filepath"

	"github.com/coachboard/playdiagram/lib/version"
	"github.com/coachboard/playdiagram/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--mode=compact-preview] [--watch=false] play.json [play.svg | play.json]
  %[1]s validate play.json

%[1]s renders a stored play diagram (a JSON array of elements, or an object
with an "elements" array) to play.svg, or to a render tree with --format=json.
It defaults to play.svg if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s validate play.json - Checks every element against the element schema
  %[1]s version - Prints the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Defaults())
}
