package cpu

import sysCpu "golang.org/x/sys/cpu"

// DefaultItemsPerThread sizes how many bytes each worker folds
// sequentially before the block-level reduction combines partials,
// following the same CPU-feature-branching idiom the teacher engine
// uses in simd/memchr_amd64.go (there to pick a SIMD lane width; here
// to pick a coarser per-thread chunk on hosts wide enough to benefit
// from amortizing the fixed cost of each associative merge over more
// bytes).
func DefaultItemsPerThread() int {
	if sysCpu.X86.HasAVX2 {
		return 8
	}
	return 4
}

// itemsPerThreadFor never lets the per-thread chunk exceed the block
// itself.
func itemsPerThreadFor(itemsPerBlock int) int {
	n := DefaultItemsPerThread()
	if n > itemsPerBlock {
		n = itemsPerBlock
	}
	if n < 1 {
		n = 1
	}
	return n
}
