package dfa

import (
	"sort"

	"github.com/parareduce/pgrep/internal/sparse"
	"github.com/parareduce/pgrep/nfa"
)

// dfaState is the subset-construction working record for one DFA state:
// its underlying (sorted, deduped) NFA state set, used both to compute
// its outgoing transitions and to accept-check it, and (once known) the
// transitions found for it.
type dfaState struct {
	nfaSet []nfa.StateID
	accept bool
	trans  []Transition
}

// Build runs subset construction (spec §4.3) over n, producing an
// equivalent deterministic automaton.
//
// Grounded on the teacher's dfa/lazy package (Cache/State: a content-
// addressed map[StateKey]*State with a monotonic next-ID counter),
// adapted from lazy (states materialize on demand during search) to
// eager (the whole reachable state graph is built up front, since pgrep
// compiles once and then only ever runs the parallel reduction, never a
// classic sequential DFA walk, in production — Accepts on the result is
// for reference/testing only).
func Build(n *nfa.NFA) *DFA {
	closureSet := sparse.New(uint32(len(n.States)))

	closure := func(seed []nfa.StateID) []nfa.StateID {
		closureSet.Clear()
		stack := append([]nfa.StateID(nil), seed...)
		for _, id := range seed {
			closureSet.Insert(uint32(id))
		}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, tr := range n.TransitionsOf(id) {
				if tr.Sym != nfa.Epsilon {
					break // ε-transitions sort first; none follow.
				}
				if closureSet.Insert(uint32(tr.Dst)) {
					stack = append(stack, tr.Dst)
				}
			}
		}
		out := make([]nfa.StateID, 0, closureSet.Len())
		for _, v := range closureSet.Values() {
			out = append(out, nfa.StateID(v))
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}

	move := func(set []nfa.StateID, b byte) []nfa.StateID {
		var dst []nfa.StateID
		sym := nfa.Byte(b)
		for _, id := range set {
			for _, tr := range n.TransitionsOf(id) {
				if tr.Sym == sym {
					dst = append(dst, tr.Dst)
				}
			}
		}
		return dst
	}

	isAccepting := func(set []nfa.StateID) bool {
		for _, id := range set {
			if n.States[id].Accept {
				return true
			}
		}
		return false
	}

	byKey := map[stateKey]StateID{}
	var states []dfaState

	intern := func(nfaSet []nfa.StateID) StateID {
		key := computeStateKey(nfaSet)
		if id, ok := byKey[key]; ok {
			return id
		}
		id := StateID(len(states))
		byKey[key] = id
		states = append(states, dfaState{nfaSet: nfaSet, accept: isAccepting(nfaSet)})
		return id
	}

	intern(closure([]nfa.StateID{n.Start()})) // always assigned StateID 0, the start state.

	for worklist := 0; worklist < len(states); worklist++ {
		set := states[worklist].nfaSet
		for b := 0; b < 256; b++ {
			moved := move(set, byte(b))
			if len(moved) == 0 {
				continue
			}
			target := closure(moved)
			if len(target) == 0 {
				continue
			}
			dst := intern(target)
			states[worklist].trans = append(states[worklist].trans, Transition{Dst: dst, Sym: byte(b)})
		}
	}

	d := &DFA{States: make([]State, len(states))}
	for id, st := range states {
		first := uint32(len(d.Transitions))
		d.Transitions = append(d.Transitions, st.trans...)
		d.States[id] = State{First: first, Num: uint32(len(st.trans)), Accept: st.accept}
	}
	return d
}
