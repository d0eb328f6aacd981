package debug

import "fmt"

// DEBUG gates internal consistency assertions and the compiler's chunk
// disassembly dump. It is off by default; the cmd package flips it on for
// -v=debug/-v=trace verbosity. The VM's per-instruction trace is gated by
// logrus's trace level instead.
var DEBUG = false

func Assertf(b bool, format string, a ...any) {
	if DEBUG && !b {
		panic(fmt.Sprintf(format, a...))
	}
}

func AssertEq[T comparable](expected, got T) { Assertf(expected == got, "%v != %v", expected, got) }
