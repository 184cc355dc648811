// Command nloginvoke reads lines from stdin and logs each one through an
// invoke handler, so a target configuration can be tried from the shell:
//
//	printf 'hello\nWARN disk low\n' | nloginvoke --class console.Rotating \
//	    --append-instance next --cache-instance=false
//
// A line that starts with a level name is logged at that level; any other
// line is logged at INFO.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
