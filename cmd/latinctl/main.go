// Command latinctl is a thin CLI wrapper over the dispatch package: an
// invocation maps to one or more dispatch.Count calls, per spec.md
// §6.5. It carries no counting logic of its own.
package main

import (
	"fmt"
	"os"

	"github.com/latinrect/latinrect/dispatch"
)

var version = "dev"

func main() {
	root := rootCmd()
	err := root.Execute()
	os.Exit(exitCode(err))
}

// exitCode maps a dispatch.Failure into spec.md §6.5's process exit
// codes. Failure kinds the table doesn't name (CacheCorrupt, CacheIO,
// TooLarge) fall through to 2, the same as Internal, since they are
// all "something the CLI cannot recover from at this level".
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var f *dispatch.Failure
	if !isFailure(err, &f) {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	switch f.Kind {
	case dispatch.InvalidInput:
		return 1
	case dispatch.Cancelled:
		return 130
	default:
		return 2
	}
}

func isFailure(err error, target **dispatch.Failure) bool {
	f, ok := err.(*dispatch.Failure)
	if !ok {
		return false
	}
	*target = f
	return true
}
