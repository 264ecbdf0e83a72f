// Command esregex checks ECMAScript regular expression literals for syntax
// errors.
//
// Each non-blank line of the given files (or of stdin) that does not start
// with "#" is parsed as a /pattern/flags literal. Literals may also be passed
// with -e. The command exits with status 1 when any literal is invalid.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(nil).Execute(); err != nil {
		if !errors.Is(err, errInvalidPatterns) {
			fmt.Fprintln(os.Stderr, "esregex:", err)
		}
		os.Exit(1)
	}
}
