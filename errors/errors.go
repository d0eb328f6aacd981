package errors

import (
	"errors"
	"fmt"
)

// CompilationError records one syntax error found while compiling source to
// bytecode. A single Compile call may accumulate many of these via
// go-multierror before giving up.
type CompilationError struct {
	Line   int
	Reason string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Reason)
}

// RuntimeError is raised by the VM while executing a Chunk. Reason is the
// diagnostic; Line is resolved from the Chunk's line table at the
// instruction that failed.
type RuntimeError struct {
	Line   int
	Reason string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at [line %d] in script", e.Reason, e.Line)
}

// Unreachable marks a switch arm that the Pratt rule table guarantees can
// never be taken; panicking on it surfaces a bug in the rule table rather
// than silently misbehaving.
var Unreachable = errors.New("internal error: entered unreachable code")
