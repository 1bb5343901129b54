package pdfa

import (
	"encoding/binary"

	"github.com/parareduce/pgrep/dfa"
)

// fn is a parallel state's construction-time representation: the image
// of every real DFA state under this state's function, or rejectVal if
// applying it from that DFA state fails to find a transition. Two fn
// slices with equal contents are the same parallel state — this is the
// content address that lets Build collapse duplicate states discovered
// from different bytes or different merges.
type fn []int32

const rejectVal int32 = -1

// store is the content-addressed table of parallel states discovered
// during construction, grounded on the teacher's dfa/lazy.Cache (a
// map[key]*State with a monotonic next-ID counter) — adapted to key on
// a function's value array instead of an NFA state set, and to reject-
// detect before assigning a normal ID, since the canonical all-reject
// function gets folded into the single reserved RejectState instead of
// taking a slot in 0..N-1.
type store struct {
	byKey map[string]StateID
	funcs []fn
	limit int
}

func newStore(limit int) *store {
	return &store{byKey: map[string]StateID{}, limit: limit}
}

func fnKey(f fn) string {
	buf := make([]byte, 4*len(f))
	for i, v := range f {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return string(buf)
}

func isAllReject(f fn) bool {
	for _, v := range f {
		if v != rejectVal {
			return false
		}
	}
	return true
}

// register interns f, returning its StateID (RejectState if f rejects
// from every DFA state) and whether this call assigned a brand-new
// normal slot.
func (s *store) register(f fn) (StateID, bool, error) {
	if isAllReject(f) {
		return RejectState, false, nil
	}
	k := fnKey(f)
	if id, ok := s.byKey[k]; ok {
		return id, false, nil
	}
	if len(s.funcs) >= s.limit {
		return 0, false, ErrStateLimitReached
	}
	id := StateID(len(s.funcs))
	s.funcs = append(s.funcs, f)
	s.byKey[k] = id
	return id, true, nil
}

func (s *store) compose(a, b fn) fn {
	out := make(fn, len(a))
	for i, v := range a {
		if v == rejectVal {
			out[i] = rejectVal
			continue
		}
		out[i] = b[v]
	}
	return out
}

// mergeBuf is the resizable square buffer the nested worklist fills in
// as new (i, j) pairs are composed, per spec's "resizable square
// merge-table with amortized doubling, tight repack on finalize": it
// grows by capacity doubling as new states are discovered mid-
// construction, then Build packs it tightly into the PDFA's final N*N
// Merge array.
type mergeBuf struct {
	cap  int
	data []int32 // state IDs, rejectMergeMarker for reject, or mergeUnset (-2) for "not yet computed"
}

const mergeUnset int32 = -2

func (m *mergeBuf) growTo(n int) {
	if n <= m.cap {
		return
	}
	newCap := m.cap
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
	}
	newData := make([]int32, newCap*newCap)
	for i := range newData {
		newData[i] = mergeUnset
	}
	for r := 0; r < m.cap; r++ {
		copy(newData[r*newCap:r*newCap+m.cap], m.data[r*m.cap:r*m.cap+m.cap])
	}
	m.cap = newCap
	m.data = newData
}

func (m *mergeBuf) set(i, j int, v int32) {
	m.growTo(max(i, j) + 1)
	m.data[i*m.cap+j] = v
}

func (m *mergeBuf) get(i, j int) (int32, bool) {
	if i >= m.cap || j >= m.cap {
		return 0, false
	}
	v := m.data[i*m.cap+j]
	if v == mergeUnset {
		return 0, false
	}
	return v, true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// initialFunc builds byte b's function: for each DFA state, the state
// reached by stepping on b, or reject if no such transition exists.
func initialFunc(d *dfa.DFA, numStates int) func(b byte) fn {
	return func(b byte) fn {
		f := make(fn, numStates)
		for s := 0; s < numStates; s++ {
			dst, ok := d.Step(dfa.StateID(s), b)
			if !ok {
				f[s] = rejectVal
				continue
			}
			f[s] = int32(dst)
		}
		return f
	}
}

// maxFootprintBytes is the kernel shared-memory budget spec §3 caps the
// PDFA to: the 256-byte initial_states table plus the N*N merge table.
const maxFootprintBytes = 32768

// Build runs the parallelization algorithm (spec §4.4) over d: enumerate
// the 256 per-byte functions, then repeatedly merge all discovered pairs
// until a full sweep adds nothing new, filling the merge table as it
// goes. stateLimit <= 0 uses DefaultStateLimit.
func Build(d *dfa.DFA, stateLimit int) (*PDFA, error) {
	if stateLimit <= 0 {
		stateLimit = DefaultStateLimit
	}
	if stateLimit > DefaultStateLimit {
		return nil, ErrTooManyStates
	}
	numStates := len(d.States)
	s := newStore(stateLimit)
	mkInitial := initialFunc(d, numStates)

	var initial [256]StateID
	for b := 0; b < 256; b++ {
		id, _, err := s.register(mkInitial(byte(b)))
		if err != nil {
			return nil, err
		}
		initial[b] = id
	}

	mb := &mergeBuf{}
	changed := true
	for changed {
		changed = false
		n := len(s.funcs)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if _, ok := mb.get(i, j); ok {
					continue
				}
				composite := s.compose(s.funcs[i], s.funcs[j])
				id, isNew, err := s.register(composite)
				if err != nil {
					return nil, err
				}
				if id == RejectState {
					mb.set(i, j, rejectMergeMarker)
				} else {
					mb.set(i, j, int32(id))
				}
				if isNew {
					changed = true
				}
			}
		}
	}

	n := len(s.funcs)
	if n*n+256 > maxFootprintBytes {
		return nil, ErrMergeTableOverflow
	}
	p := &PDFA{
		InitialStates: initial,
		N:             n,
		Merge:         make([]StateID, n*n),
		Accepting:     NewBitset(n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, ok := mb.get(i, j)
			if !ok {
				panic("pdfa: merge table missing an entry after convergence")
			}
			if v == rejectMergeMarker {
				p.Merge[i*n+j] = RejectState
				continue
			}
			p.Merge[i*n+j] = StateID(v)
		}
	}
	for i := 0; i < n; i++ {
		dst := s.funcs[i][d.Start()]
		if dst != rejectVal && d.States[dst].Accept {
			p.Accepting.Set(i)
		}
	}
	p.EmptyIsAccepting = d.States[d.Start()].Accept
	return p, nil
}

// rejectMergeMarker distinguishes "this (i,j) pair composes to
// RejectState" from mergeUnset in the construction-time buffer, since
// both i and j here are ordinary indices into 0..n-1 (real parallel
// states) even though their composite is the all-reject function —
// two perfectly legal states can still compose to "no valid
// continuation" (e.g. two bytes that can never legally follow one
// another). Build packs RejectState itself into p.Merge[i*n+j] for
// these pairs; PDFA.Apply's reject short-circuit is an optimization
// for the a/b-is-already-RejectState case, not a claim that RejectState
// never appears as a genuine table entry.
const rejectMergeMarker int32 = -3
