// Package xlog is the process-wide debug logger: a verbosity-gated printer
// to stderr, driven by the CLI --verbose flag. Level 0 messages always
// print; higher levels only when the configured verbosity reaches them.
package xlog

import (
	"fmt"
	"os"
)

var verbosity int

// SetVerbosity installs the verbosity threshold (typically from the CLI).
func SetVerbosity(v int) { verbosity = v }

// Verbosity returns the current threshold.
func Verbosity() int { return verbosity }

// Dbg prints when level is at or below the configured verbosity. A trailing
// newline is added if the format doesn't end with one.
func Dbg(level int, format string, args ...any) {
	if level > verbosity {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)
}
