// Package cpu implements the device.Device contract (spec §5's two
// reduction kernels) on goroutines instead of device memory: a fixed
// pool of persistent worker goroutines claims blocks from a shared
// atomic counter, the same scheduling shape a persistent-thread GPU
// kernel uses to avoid per-block launch overhead.
package cpu

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/parareduce/pgrep/device"
	"github.com/parareduce/pgrep/pdfa"
)

// Backend is a device.Device backed by goroutines. Workers defaults to
// runtime.GOMAXPROCS(0); set it directly to bound parallelism (e.g. in
// tests, to force single-threaded execution and make scheduling
// deterministic).
type Backend struct {
	Workers int
}

// New returns a Backend sized to the host's available processors.
func New() *Backend {
	return &Backend{Workers: runtime.GOMAXPROCS(0)}
}

func (b *Backend) Name() string { return "cpu" }

type queue struct{}

func (*queue) Release() {}

// NewQueue returns a no-op Queue: the CPU backend has no real command
// stream to sequence work on.
func (b *Backend) NewQueue() (device.Queue, error) {
	return &queue{}, nil
}

type buffer struct {
	states []pdfa.StateID
}

func (buf *buffer) Len() int { return len(buf.states) }
func (buf *buffer) Release() { buf.states = nil }

func asBuffer(b device.Buffer) (*buffer, error) {
	buf, ok := b.(*buffer)
	if !ok {
		return nil, &device.Error{Kind: device.QueueError, Cause: errors.New("cpu: buffer from a different device")}
	}
	return buf, nil
}

// InitialReduce implements device.Device.
func (b *Backend) InitialReduce(ctx context.Context, q device.Queue, pd *pdfa.PDFA, input []byte, itemsPerBlock int) (device.Buffer, error) {
	if len(input) == 0 {
		return &buffer{}, nil
	}
	numBlocks := ceilDiv(len(input), itemsPerBlock)
	threadItems := itemsPerThreadFor(itemsPerBlock)
	out := make([]pdfa.StateID, numBlocks)
	err := b.runBlocks(ctx, numBlocks, func(blk int) pdfa.StateID {
		lo, hi := blockBounds(blk, itemsPerBlock, len(input))
		return foldInitialBlock(pd, input[lo:hi], threadItems)
	}, out)
	if err != nil {
		return nil, err
	}
	return &buffer{states: out}, nil
}

// TreeReduce implements device.Device.
func (b *Backend) TreeReduce(ctx context.Context, q device.Queue, pd *pdfa.PDFA, states device.Buffer, itemsPerBlock int) (device.Buffer, error) {
	buf, err := asBuffer(states)
	if err != nil {
		return nil, err
	}
	cur := buf.states
	for len(cur) > 1 {
		numBlocks := ceilDiv(len(cur), itemsPerBlock)
		next := make([]pdfa.StateID, numBlocks)
		frozen := cur
		err := b.runBlocks(ctx, numBlocks, func(blk int) pdfa.StateID {
			lo, hi := blockBounds(blk, itemsPerBlock, len(frozen))
			return foldStates(pd, frozen[lo:hi])
		}, next)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return &buffer{states: cur}, nil
}

// ReadStates implements device.Device.
func (b *Backend) ReadStates(ctx context.Context, q device.Queue, buf device.Buffer) ([]pdfa.StateID, error) {
	bb, err := asBuffer(buf)
	if err != nil {
		return nil, err
	}
	out := make([]pdfa.StateID, len(bb.states))
	copy(out, bb.states)
	return out, nil
}

func ceilDiv(n, d int) int { return (n + d - 1) / d }

func blockBounds(blk, itemsPerBlock, total int) (lo, hi int) {
	lo = blk * itemsPerBlock
	hi = lo + itemsPerBlock
	if hi > total {
		hi = total
	}
	return lo, hi
}

// foldInitialBlock folds one block's raw bytes: each virtual thread
// folds a contiguous run of threadItems bytes through pd's initial
// states, then the thread partials are combined — mirroring the
// initial kernel's "sequential per-thread fold + block-level
// reduction" shape (spec §5).
func foldInitialBlock(pd *pdfa.PDFA, data []byte, threadItems int) pdfa.StateID {
	numThreads := ceilDiv(len(data), threadItems)
	partials := make([]pdfa.StateID, numThreads)
	for t := 0; t < numThreads; t++ {
		lo, hi := blockBounds(t, threadItems, len(data))
		acc := pd.InitialStates[data[lo]]
		for _, byt := range data[lo+1 : hi] {
			acc = pd.Apply(acc, pd.InitialStates[byt])
		}
		partials[t] = acc
	}
	return foldStates(pd, partials)
}

// foldStates folds an already-nonempty sequence of parallel states
// left to right via merge; used by both the initial kernel's block-
// level combine and every pass of the reduce kernel.
func foldStates(pd *pdfa.PDFA, states []pdfa.StateID) pdfa.StateID {
	acc := states[0]
	for _, s := range states[1:] {
		acc = pd.Apply(acc, s)
	}
	return acc
}

// runBlocks is the persistent-thread/atomic-counter scheduler: a fixed
// pool of workers races to claim successive block indices off a shared
// counter instead of one goroutine being spawned per block, the same
// trick a persistent-thread GPU kernel uses to amortize launch
// overhead across many blocks.
func (b *Backend) runBlocks(ctx context.Context, numBlocks int, work func(blk int) pdfa.StateID, out []pdfa.StateID) error {
	if numBlocks == 0 {
		return nil
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > numBlocks {
		workers = numBlocks
	}

	var next int64 = -1
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				blk := int(atomic.AddInt64(&next, 1))
				if blk >= numBlocks {
					return
				}
				select {
				case <-ctx.Done():
					mu.Lock()
					if firstErr == nil {
						firstErr = ctx.Err()
					}
					mu.Unlock()
					return
				default:
				}
				out[blk] = work(blk)
			}
		}()
	}
	wg.Wait()
	return firstErr
}
