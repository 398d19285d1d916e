// Command rgrep prints the lines of its input that match a pattern.
//
// Usage:
//
//	rgrep [-r] [-o] [--color=auto|always|never] -E <pattern> [paths...]
//
// Without paths, standard input is read. The exit status is 0 when a line
// matched, 1 when none did and 2 on usage, I/O or pattern errors.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
)

func main() {
	// glog writes to files by default; a grep belongs on stderr.
	_ = flag.Set("logtostderr", "true")

	code := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}
