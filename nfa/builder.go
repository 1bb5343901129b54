package nfa

import "sort"

// Builder assembles an NFA incrementally, in the fragment/patch style of a
// classic Thompson construction: a transition can be added before its
// destination is known (a "dangling" transition), and fixed up later via
// PatchTo once the destination state exists. This mirrors the teacher
// engine's nfa/builder.go (AddByteRange/AddEpsilon/AddSplit/AddMatch,
// Patch), adapted from its Kind-tagged single-successor states to pgrep's
// flat grouped-transitions shape — so here "patching" targets a specific
// (state, transition-index) coordinate rather than a state's sole `next`
// field.
type Builder struct {
	pending [][]Transition
	accept  []bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Patch is a coordinate into a not-yet-finalized transition, returned by
// AddEpsilonDangling/AddByteDangling and consumed by PatchTo/PatchAllTo to
// redirect its destination.
type Patch struct {
	state StateID
	index int
}

// AddState allocates a new state with no transitions and returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(len(b.pending))
	b.pending = append(b.pending, nil)
	b.accept = append(b.accept, false)
	return id
}

// SetAccept marks id as the NFA's accept state.
func (b *Builder) SetAccept(id StateID) {
	b.accept[id] = true
}

// AddEpsilonTo adds an ε-transition from -> to with a known destination.
func (b *Builder) AddEpsilonTo(from, to StateID) {
	b.pending[from] = append(b.pending[from], Transition{Dst: to, Sym: Epsilon})
}

// AddEpsilonDangling adds an ε-transition out of from whose destination is
// not yet known, returning a Patch to fix it up later.
func (b *Builder) AddEpsilonDangling(from StateID) Patch {
	idx := len(b.pending[from])
	b.pending[from] = append(b.pending[from], Transition{Dst: InvalidState, Sym: Epsilon})
	return Patch{state: from, index: idx}
}

// AddByteDangling adds a transition on sym out of from whose destination is
// not yet known, returning a Patch to fix it up later.
func (b *Builder) AddByteDangling(from StateID, sym byte) Patch {
	idx := len(b.pending[from])
	b.pending[from] = append(b.pending[from], Transition{Dst: InvalidState, Sym: Byte(sym)})
	return Patch{state: from, index: idx}
}

// PatchTo redirects a previously-dangling transition to its destination.
func (b *Builder) PatchTo(p Patch, to StateID) {
	b.pending[p.state][p.index].Dst = to
}

// PatchAllTo redirects every Patch in ps to the same destination.
func (b *Builder) PatchAllTo(ps []Patch, to StateID) {
	for _, p := range ps {
		b.PatchTo(p, to)
	}
}

// Build sorts each state's pending transitions by Symbol (placing ε first,
// since Epsilon == -1) and flattens them into the shared grouped-array
// shape, returning the finished NFA.
func (b *Builder) Build() *NFA {
	n := &NFA{States: make([]State, len(b.pending))}
	for id, trs := range b.pending {
		sortTransitions(trs)
		first := uint32(len(n.Transitions))
		n.Transitions = append(n.Transitions, trs...)
		n.States[id] = State{First: first, Num: uint32(len(trs)), Accept: b.accept[id]}
	}
	return n
}

// sortTransitions orders a state's transitions by Symbol ascending, so
// Epsilon (-1) sorts first within the group.
func sortTransitions(trs []Transition) {
	sort.Slice(trs, func(i, j int) bool { return trs[i].Sym < trs[j].Sym })
}
