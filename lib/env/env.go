package env

import (
	"os"
	"strconv"
)

func Debug() bool {
	return os.Getenv("DEBUG") != "" || os.Getenv("PD_DEBUG") == "1"
}

// Timeout returns $PD_TIMEOUT in seconds and whether it was set to a valid integer.
func Timeout() (int, bool) {
	s := os.Getenv("PD_TIMEOUT")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
