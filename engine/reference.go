package engine

import (
	"context"

	"github.com/parareduce/pgrep/pdfa"
)

// The three reference engines below, plus Engine.Match's reduction
// path, are the four independent ways spec §8 requires a compiled
// pattern's accept/reject answer to be computed so the fuzz harness
// (fuzz_test.go) can cross-check them against each other: a naive DFA
// walk, a purely sequential fold over the PDFA (no blocking, no
// device), and the parallel reduction itself.

// DFASimulator answers by walking cp's DFA directly, one byte at a
// time. This is the ground-truth oracle every other engine is checked
// against, since it has no dependency on parallelization at all.
type DFASimulator struct{}

func (DFASimulator) Accepts(cp *CompiledPattern, input []byte) bool {
	return cp.DFA.Accepts(input)
}

// SerialPDFAEngine answers by folding input through cp.PDFA one byte at
// a time via Merge, with no blocking or concurrency — the "is merge
// even doing the right thing, independent of how it's parallelized"
// check.
type SerialPDFAEngine struct{}

func (SerialPDFAEngine) Accepts(cp *CompiledPattern, input []byte) bool {
	if len(input) == 0 {
		return cp.PDFA.EmptyIsAccepting
	}
	p := cp.PDFA
	acc := p.InitialStates[input[0]]
	for _, b := range input[1:] {
		acc = p.Apply(acc, p.InitialStates[b])
	}
	return p.IsAccepting(acc)
}

// CPUReduceEngine answers via the real two-kernel reduction (package
// device/cpu) with its own BlockSize, standing up a fresh CPU-backed
// Engine for each call — useful for tests that want the reduction's
// answer at a chosen block size without managing an Engine themselves.
type CPUReduceEngine struct {
	BlockSize int
}

func (c CPUReduceEngine) Accepts(cp *CompiledPattern, input []byte) (bool, error) {
	blockSize := c.BlockSize
	if blockSize < 1 {
		blockSize = DefaultConfig().BlockSize
	}
	e, err := New()
	if err != nil {
		return false, err
	}
	defer e.Destroy()
	return e.MatchWithBlockSize(context.Background(), cp, input, blockSize)
}
