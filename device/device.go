// Package device describes the contract a compute accelerator must
// satisfy to run pgrep's two-kernel reduction (spec §5): fold a byte
// string's PDFA into one final parallel state in O(log n) depth. A real
// GPU backend (OpenCL, CUDA, Vulkan compute) would implement Device
// directly; pgrep ships one concrete implementation, package
// device/cpu, backed by goroutines instead of device memory.
package device

import (
	"context"

	"github.com/parareduce/pgrep/pdfa"
)

// Queue sequences kernel launches and host/device transfers on a
// Device. A CPU-backed Device's Queue need not order anything real; a
// GPU backend's would correspond to a command queue / stream.
type Queue interface {
	Release()
}

// Buffer is device-resident (or, for a CPU-backed Device, host-backed)
// storage for a sequence of parallel states.
type Buffer interface {
	// Len reports how many states the buffer holds.
	Len() int
	Release()
}

// Device runs the initial-fold and tree-reduce kernels spec §5
// describes.
type Device interface {
	Name() string
	NewQueue() (Queue, error)

	// InitialReduce runs the first kernel: partitions input into blocks
	// of itemsPerBlock bytes, folds each block's bytes through pd's
	// initial-state lookup and merge table (sequential per-thread
	// folds, then a block-level reduction of those partials), and
	// returns one parallel state per block.
	InitialReduce(ctx context.Context, q Queue, pd *pdfa.PDFA, input []byte, itemsPerBlock int) (Buffer, error)

	// TreeReduce runs the second kernel: repeatedly folds states (as
	// produced by InitialReduce, or a prior TreeReduce pass) down by
	// itemsPerBlock until exactly one parallel state remains.
	TreeReduce(ctx context.Context, q Queue, pd *pdfa.PDFA, states Buffer, itemsPerBlock int) (Buffer, error)

	// ReadStates copies a Buffer's states back to the host.
	ReadStates(ctx context.Context, q Queue, b Buffer) ([]pdfa.StateID, error)
}
