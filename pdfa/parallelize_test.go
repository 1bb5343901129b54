package pdfa

import (
	"testing"

	"github.com/parareduce/pgrep/dfa"
	"github.com/parareduce/pgrep/nfa"
	"github.com/parareduce/pgrep/pattern"
)

func buildPDFA(t *testing.T, src string) (*dfa.DFA, *PDFA) {
	t.Helper()
	p, err := pattern.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	d := dfa.Build(nfa.Compile(p))
	pd, err := Build(d, 0)
	if err != nil {
		t.Fatalf("Build(%q): %v", src, err)
	}
	return d, pd
}

// fold reduces s through the PDFA the way the production reduction
// engine does: start from the first byte's initial state, then apply
// every subsequent byte's initial state via Merge, left to right.
func fold(p *PDFA, s []byte) StateID {
	if len(s) == 0 {
		panic("fold: empty input has no parallel state; check EmptyIsAccepting instead")
	}
	acc := p.InitialStates[s[0]]
	for _, b := range s[1:] {
		acc = p.Apply(acc, p.InitialStates[b])
	}
	return acc
}

func accepts(d *dfa.DFA, p *PDFA, s []byte) bool {
	if len(s) == 0 {
		return p.EmptyIsAccepting
	}
	return p.IsAccepting(fold(p, s))
}

func TestPDFAAgreesWithDFA(t *testing.T) {
	cases := []struct {
		pat    string
		accept []string
		reject []string
	}{
		{"", []string{""}, []string{"a"}},
		{"a", []string{"a"}, []string{"", "b", "aa"}},
		{"abc", []string{"abc"}, []string{"ab", "abcd", ""}},
		{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b"}},
		{"a?", []string{"", "a"}, []string{"aa", "b"}},
		{"a(bc)*a", []string{"aa", "abca", "abcbca"}, []string{"ab", "abc"}},
		{"(a|b)*c", []string{"c", "ac", "abbac"}, []string{"", "ab"}},
		{".", []string{"a", "\x00", "\xff"}, []string{"", "\n", "ab"}},
		{"[^b-l]", []string{"a", "m"}, []string{"b", "l", ""}},
		{"[A-Za-z_][A-Za-z0-9_]*", []string{"x", "_foo", "Bar9"}, []string{"", "9ab", "a-b"}},
	}
	for _, c := range cases {
		d, pd := buildPDFA(t, c.pat)
		for _, str := range c.accept {
			want := d.Accepts([]byte(str))
			if !want {
				t.Fatalf("test bug: DFA itself rejects %q for pattern %q", str, c.pat)
			}
			if got := accepts(d, pd, []byte(str)); got != want {
				t.Errorf("pattern %q: PDFA.accepts(%q)=%v, want %v", c.pat, str, got, want)
			}
		}
		for _, str := range c.reject {
			want := d.Accepts([]byte(str))
			if want {
				t.Fatalf("test bug: DFA itself accepts %q for pattern %q", str, c.pat)
			}
			if got := accepts(d, pd, []byte(str)); got != want {
				t.Errorf("pattern %q: PDFA.accepts(%q)=%v, want %v", c.pat, str, got, want)
			}
		}
	}
}

// TestPDFAAssociative checks spec §8's "Associativity" property directly:
// folding any grouping of a byte string through Merge produces the same
// final state, not just the same accept/reject answer.
func TestPDFAAssociative(t *testing.T) {
	_, pd := buildPDFA(t, "a(bc)*a|[A-Za-z_][A-Za-z0-9_]*")
	s := []byte("abcbca")
	left := pd.InitialStates[s[0]]
	for _, b := range s[1:] {
		left = pd.Apply(left, pd.InitialStates[b])
	}
	// Fold in a different grouping: (s[0..2]) then (s[3..5]).
	a := pd.Apply(pd.InitialStates[s[0]], pd.InitialStates[s[1]])
	a = pd.Apply(a, pd.InitialStates[s[2]])
	b := pd.Apply(pd.InitialStates[s[3]], pd.InitialStates[s[4]])
	b = pd.Apply(b, pd.InitialStates[s[5]])
	right := pd.Apply(a, b)
	if left != right {
		t.Fatalf("merge is not associative across groupings: %v != %v", left, right)
	}
}

// TestPDFARejectAbsorbs checks spec §8's "Reject absorption" property:
// RejectState merged with anything, in either argument position, stays
// RejectState.
func TestPDFARejectAbsorbs(t *testing.T) {
	_, pd := buildPDFA(t, "abc")
	other := pd.InitialStates['a']
	if got := pd.Apply(RejectState, other); got != RejectState {
		t.Fatalf("Apply(Reject, x) = %v, want Reject", got)
	}
	if got := pd.Apply(other, RejectState); got != RejectState {
		t.Fatalf("Apply(x, Reject) = %v, want Reject", got)
	}
	if got := pd.Apply(RejectState, RejectState); got != RejectState {
		t.Fatalf("Apply(Reject, Reject) = %v, want Reject", got)
	}
}

// TestPDFAMergeClosed checks spec §8's "Closure" property: merging any
// two registered states (by ID, not RejectState) always yields either
// RejectState or another valid state ID within 0..N-1, since the table
// is total over its domain.
func TestPDFAMergeClosed(t *testing.T) {
	_, pd := buildPDFA(t, "a(bc)*a|[A-Za-z_][A-Za-z0-9_]*")
	for i := 0; i < pd.N; i++ {
		for j := 0; j < pd.N; j++ {
			got := pd.Apply(StateID(i), StateID(j))
			if got != RejectState && int(got) >= pd.N {
				t.Fatalf("merge(%d,%d) = %d out of range [0,%d)", i, j, got, pd.N)
			}
		}
	}
}

func TestPDFAEmptyIsAccepting(t *testing.T) {
	_, pd := buildPDFA(t, "a*")
	if !pd.EmptyIsAccepting {
		t.Fatal("expected empty_is_accepting for 'a*'")
	}
	_, pd2 := buildPDFA(t, "a+")
	if pd2.EmptyIsAccepting {
		t.Fatal("expected !empty_is_accepting for 'a+'")
	}
}

func TestPDFAStateLimitReached(t *testing.T) {
	p, err := pattern.Parse([]byte("[A-Za-z_][A-Za-z0-9_]*"))
	if err != nil {
		t.Fatal(err)
	}
	d := dfa.Build(nfa.Compile(p))
	if _, err := Build(d, 1); err == nil {
		t.Fatal("expected ErrStateLimitReached with a 1-state limit")
	}
}
