package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger so tests or the CLI can redirect or mute it.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}

		return
	}
	Logf = f
}

// Printf forwards to the current Logf. Capture this function value, not Logf
// itself, when a logger must follow later SetLogger calls.
func Printf(format string, v ...any) {
	Logf(format, v...)
}
