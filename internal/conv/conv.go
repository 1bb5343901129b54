// Package conv provides overflow-checked integer narrowing for the
// automaton pipeline.
//
// Every stage addresses its arrays with a fixed-width index type (pattern
// node indices, NFA/DFA/PDFA state IDs). Narrowing a slice length or a
// count into one of those types must fail loudly rather than silently wrap,
// since a wrapped index is exactly the kind of invariant violation that
// should surface at compile time, not as a corrupted automaton.
package conv

import "math"

// IntToUint32 converts n to uint32, panicking if n is negative or does not fit.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 converts n to uint16, panicking if n is negative or does not fit.
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("conv: int value out of uint16 range")
	}
	return uint16(n)
}

// IntToUint8 converts n to uint8, panicking if n is negative or does not fit.
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("conv: int value out of uint8 range")
	}
	return uint8(n)
}

// Uint64ToUint32 converts n to uint32, panicking if it does not fit.
func Uint64ToUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic("conv: uint64 value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt converts n to int. Safe on every platform pgrep targets
// (int is at least 32 bits wide per the Go spec).
func Uint32ToInt(n uint32) int {
	return int(n)
}
