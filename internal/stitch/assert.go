package stitch

import "fmt"

// debugAssert panics when debug checks are compiled in (build tag
// stitchdebug). It guards arithmetic that valid upstream state cannot break.
func debugAssert(cond bool, format string, args ...interface{}) {
	if debugChecks && !cond {
		panic(fmt.Sprintf("stitch: assertion failed: "+format, args...))
	}
}
