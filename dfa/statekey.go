package dfa

import (
	"hash/fnv"
	"sort"

	"github.com/parareduce/pgrep/nfa"
)

// stateKey is a content-address for a set of NFA states: subset
// construction interns DFA states by this key so that two ε-closures
// over the same NFA state set collapse to one DFA state.
//
// Grounded on the teacher's dfa/lazy StateKey/ComputeStateKey (sort the
// NFA state IDs for a canonical order, then FNV-1a hash them) — reused
// as-is since content-addressing a state by its underlying NFA state set
// is exactly the same problem in both the lazy and this eager setting.
type stateKey uint64

func computeStateKey(states []nfa.StateID) stateKey {
	if len(states) == 0 {
		return 0
	}
	sorted := make([]nfa.StateID, len(states))
	copy(sorted, states)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	for _, id := range sorted {
		_, _ = h.Write([]byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)})
	}
	return stateKey(h.Sum64())
}
