//go:build !stitchdebug

package stitch

const debugChecks = false
