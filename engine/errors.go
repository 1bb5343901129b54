package engine

import "fmt"

// RuntimeError wraps a failure from compiling or matching a pattern —
// a *pattern.ParseError, one of package pdfa's Build errors, a Config
// validation error, or a *device.Error surfaced from the device — with
// the stage that produced it.
type RuntimeError struct {
	Stage string // "parse", "parallelize", or "reduce"
	Cause error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("engine: %s: %v", e.Stage, e.Cause)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }
