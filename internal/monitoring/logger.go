// Package monitoring holds the diagnostic logger shared by the hinge packages.
package monitoring

import "log"

// Logf writes one diagnostic line. It is log.Printf unless replaced with
// SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger swaps the diagnostic logger. A nil f discards all output, which
// is what the CLI's -quiet flag and most tests want.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Component returns a logger that tags each line with "[name] ". Lines go
// through whatever Logf is current at call time, so SetLogger still applies.
func Component(name string) func(format string, v ...interface{}) {
	prefix := "[" + name + "] "
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
