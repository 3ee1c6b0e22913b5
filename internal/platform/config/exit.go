package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal startup error on stderr and exits the process
// with code 1. Command entry points use it instead of log.Fatalf so the
// message reaches the operator without log prefixes.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
