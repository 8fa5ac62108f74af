package config

import (
	"fmt"
	"os"
)

var exit = os.Exit

// Exitf writes a formatted error message to stderr and exits with code 1.
// Command entry points use it for failures that happen before logging is
// configured.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exit(1)
}

// ExitOnError calls Exitf with the given context when err is non-nil.
func ExitOnError(err error, context string) {
	if err == nil {
		return
	}
	Exitf("%s: %v", context, err)
}
