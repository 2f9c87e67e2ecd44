// Package nglog is a thin wrapper over glog used for diagnostics: the
// interpreter's M2/M30 reset, the CLI's errors, and GRBL link messages.
// It is never consulted for control flow -- every decision
// the interpreter makes is driven by the Block/Settings/Params state,
// never by what got logged.
package nglog

import "github.com/golang/glog"

// Tracef logs a verbose trace of a single reader/executor production.
// Only visible at -v=2 or higher.
func Tracef(format string, args ...any) {
	if glog.V(2) {
		glog.Infof(format, args...)
	}
}

// Infof logs a normal informational message (session reset, GRBL
// banner and unrecognised GRBL replies).
func Infof(format string, args ...any) {
	glog.Infof(format, args...)
}

// Errorf logs a recoverable error (a block failed and was discarded).
func Errorf(format string, args ...any) {
	glog.Errorf(format, args...)
}

// Flush flushes any buffered log entries; callers should defer this
// once at process exit.
func Flush() {
	glog.Flush()
}
