// Package pdfa implements the parallelization stage (spec §4.4): turning
// a deterministic automaton (package dfa) into a parallel DFA whose
// states are functions DFA-state → DFA-state ∪ {reject}, closed under an
// associative merge (function composition). This is what makes
// whole-string matching parallelizable: merge's associativity lets the
// host fold an input in any grouping — sequentially, or in O(log n)
// parallel depth on a GPU (package device/cpu; package engine).
package pdfa

// StateID addresses a parallel state. Real states occupy 0..N-1; the
// reserved RejectState sits outside that range so the exported Merge
// table only ever needs N*N entries — reject composes with anything to
// reject without a table lookup (see PDFA.Apply).
type StateID uint8

// RejectState is the distinguished "processing this block already
// failed to match" state. It absorbs under merge in both argument
// positions: merging it with any other state, in either order, yields
// RejectState again.
const RejectState StateID = 0xFF

// DefaultStateLimit bounds the number of real parallel states a
// construction may discover before aborting with ErrStateLimitReached.
// 255 is the largest count that still leaves RejectState (0xFF)
// distinguishable from every real StateID in a single byte.
const DefaultStateLimit = 255

// PDFA is the parallel automaton produced by Build.
type PDFA struct {
	// InitialStates[b] is the parallel state representing "process one
	// byte equal to b".
	InitialStates [256]StateID

	// Merge is the N*N composition table, row-major: Merge[i*N+j] is the
	// parallel state representing "apply state i's effect, then state
	// j's" (merge is associative, so any bracketing of a fold over this
	// table computes the same result).
	Merge []StateID

	// N is the number of real parallel states (RejectState is not one
	// of them).
	N int

	// Accepting is a bitset over 0..N-1: Accepting.Test(s) reports
	// whether applying state s's function to the DFA start state lands
	// on an accepting DFA state.
	Accepting Bitset

	// EmptyIsAccepting mirrors the DFA start state's own accept flag —
	// the answer for the zero-length input, which never touches
	// InitialStates or Merge at all.
	EmptyIsAccepting bool
}

// Apply composes a with b (a's effect, then b's), honoring reject
// absorption without a table lookup.
func (p *PDFA) Apply(a, b StateID) StateID {
	if a == RejectState || b == RejectState {
		return RejectState
	}
	return p.Merge[int(a)*p.N+int(b)]
}

// IsAccepting reports whether parallel state s represents a byte (or
// fold of bytes) that, applied from the start, reaches an accept state.
func (p *PDFA) IsAccepting(s StateID) bool {
	if s == RejectState {
		return false
	}
	return p.Accepting.Test(int(s))
}
