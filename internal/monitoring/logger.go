// Package monitoring holds the diagnostic logger shared by the planner
// packages. Binaries keep the default; tests usually mute it.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Stagef logs a message tagged with the planning stage that produced it.
func Stagef(stage, format string, v ...interface{}) {
	Logf("[stitch/"+stage+"] "+format, v...)
}
