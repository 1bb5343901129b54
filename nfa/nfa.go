// Package nfa implements the ε-NFA produced by Thompson construction
// (spec §4.2) over a pattern.Pattern tree, stored in the shared
// grouped-transitions shape spec §3 describes for both NFA and DFA.
package nfa

// StateID addresses a state in an NFA's States array.
type StateID uint32

// InvalidState is the reserved "no state" sentinel.
const InvalidState StateID = ^StateID(0)

// Symbol labels a transition: Epsilon (no byte consumed) or a concrete byte.
type Symbol int16

// Epsilon is the null symbol: a transition taken without consuming input.
const Epsilon Symbol = -1

// Byte wraps a concrete byte as a Symbol.
func Byte(b byte) Symbol { return Symbol(b) }

// IsEpsilon reports whether the symbol is the null (ε) symbol.
func (s Symbol) IsEpsilon() bool { return s == Epsilon }

// Transition is one (destination, label) edge out of some source state.
type Transition struct {
	Dst StateID
	Sym Symbol
}

// State is a source state's transition group plus its accept flag. Its
// transitions occupy Transitions[First : First+Num], sorted ascending by
// Symbol — so ε-transitions (Epsilon == -1) sort first within the group,
// enabling the "stop at first non-ε" closure optimization of spec §4.3.
type State struct {
	First  uint32
	Num    uint32
	Accept bool
}

// NFA is an immutable ε-NFA: a flat, index-addressed automaton with a
// single start state (always 0) and a single accept state, produced by
// Compile and consumed only by subset construction (package dfa).
type NFA struct {
	States      []State
	Transitions []Transition
}

// Start is always state 0, per spec §3's NFA/DFA invariant.
func (n *NFA) Start() StateID { return 0 }

// TransitionsOf returns the sorted transition group for state id.
func (n *NFA) TransitionsOf(id StateID) []Transition {
	s := n.States[id]
	return n.Transitions[s.First : s.First+s.Num]
}
