package pdfa

// Bitset is a fixed-universe bit vector used for PDFA.Accepting. A plain
// []bool would do the same job at one byte per entry; this packs it to
// one bit, which matters since Accepting ships as part of a
// CompiledPattern that may be uploaded to device memory (package
// device/cpu) alongside the merge table.
type Bitset []uint64

// NewBitset allocates a Bitset with room for n bits, all initially zero.
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

// Set sets bit i.
func (b Bitset) Set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}
