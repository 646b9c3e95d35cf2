// Package monitoring holds the process-wide diagnostic logger used by
// the parsing and reconstruction packages.
package monitoring

import (
	"log"
	"os"
)

// std is the default sink: timestamped stderr output, kept separate
// from the global log so redirecting one does not affect the other.
var std = log.New(os.Stderr, "", log.LstdFlags)

// Logf is the package-level diagnostic logger. It defaults to a
// stderr logger but may be replaced by SetLogger. Tests or production
// code can redirect or mute it.
var Logf func(format string, v ...interface{}) = std.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
