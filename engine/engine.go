// Package engine hosts the full pipeline (spec §2): parse, Thompson
// construct, subset construct, parallelize, then match by a host-driven
// GPU reduction — plus the reference engines (reference.go) the fuzz
// harness (fuzz_test.go) cross-checks it against.
package engine

import (
	"context"

	"github.com/parareduce/pgrep/device"
	"github.com/parareduce/pgrep/device/cpu"
)

// Engine compiles patterns and matches byte strings against them via
// the parallel reduction, running on a configurable device.Device.
//
// Thread safety: a compiled pattern (CompiledPattern) is immutable and
// safe for concurrent Match calls; Engine itself holds no per-search
// mutable state, so it is also safe for concurrent use.
type Engine struct {
	device device.Device
	queue  device.Queue
}

// New returns an Engine running on the CPU-backed device (package
// device/cpu). Use NewWithDevice to run on a different device.Device.
func New() (*Engine, error) {
	return NewWithDevice(cpu.New())
}

// NewWithDevice returns an Engine running on d.
func NewWithDevice(d device.Device) (*Engine, error) {
	q, err := d.NewQueue()
	if err != nil {
		return nil, &RuntimeError{Stage: "parallelize", Cause: &device.Error{Kind: device.NoDevice, Cause: err}}
	}
	return &Engine{device: d, queue: q}, nil
}

// Compile runs the full pipeline over src using cfg.
func (e *Engine) Compile(src string, cfg Config) (*CompiledPattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &RuntimeError{Stage: "parallelize", Cause: err}
	}
	return compile(src, cfg)
}

// Match reports whether input is accepted in its entirety by cp — spec
// §2's only operation: whole-string acceptance, never search. It uses
// DefaultConfig's BlockSize; use MatchWithBlockSize to tune it.
func (e *Engine) Match(ctx context.Context, cp *CompiledPattern, input []byte) (bool, error) {
	return reduce(ctx, e.device, e.queue, cp, input, DefaultConfig().BlockSize)
}

// MatchWithBlockSize is Match with an explicit itemsPerBlock, letting
// callers tune the reduction's parallelism without recompiling.
func (e *Engine) MatchWithBlockSize(ctx context.Context, cp *CompiledPattern, input []byte, blockSize int) (bool, error) {
	return reduce(ctx, e.device, e.queue, cp, input, blockSize)
}

// Destroy releases the Engine's device queue. An Engine must not be
// used after Destroy.
func (e *Engine) Destroy() {
	e.queue.Release()
}
