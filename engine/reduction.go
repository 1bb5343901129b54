package engine

import (
	"context"

	"github.com/parareduce/pgrep/device"
)

// reduce runs the host-driven two-kernel reduction (spec §5) for input
// against p, using d as the device: InitialReduce folds input into one
// parallel state per block, then repeated TreeReduce passes fold the
// per-block array down to a single state — device.Device.TreeReduce
// already loops internally until one state remains, so this is a
// straight two-call pipeline rather than a hand-rolled ping-pong loop;
// ping-ponging between two buffers per pass is the device backend's
// concern; the host side only ever sees "give me the one final state."
//
// Empty input never touches the device at all: spec §5 defines it as
// p.EmptyIsAccepting directly.
func reduce(ctx context.Context, d device.Device, q device.Queue, cp *CompiledPattern, input []byte, blockSize int) (bool, error) {
	if len(input) == 0 {
		return cp.PDFA.EmptyIsAccepting, nil
	}
	blockStates, err := d.InitialReduce(ctx, q, cp.PDFA, input, blockSize)
	if err != nil {
		return false, &RuntimeError{Stage: "reduce", Cause: err}
	}
	defer blockStates.Release()

	final, err := d.TreeReduce(ctx, q, cp.PDFA, blockStates, blockSize)
	if err != nil {
		return false, &RuntimeError{Stage: "reduce", Cause: err}
	}
	defer final.Release()

	states, err := d.ReadStates(ctx, q, final)
	if err != nil {
		return false, &RuntimeError{Stage: "reduce", Cause: err}
	}
	return cp.PDFA.IsAccepting(states[0]), nil
}
