package nfa

import (
	"testing"

	"github.com/parareduce/pgrep/pattern"
)

func compilePattern(t *testing.T, src string) *NFA {
	t.Helper()
	p, err := pattern.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Compile(p)
}

// closureAccepts runs a slow, recursive ε-closure simulation directly over
// the NFA to decide whether s is accepted — used as ground truth to check
// Compile's output independent of subset construction (package dfa), which
// consumes this package.
func closureAccepts(n *NFA, s []byte) bool {
	cur := map[StateID]bool{0: true}
	cur = epsilonClosure(n, cur)
	for _, byt := range s {
		next := map[StateID]bool{}
		for id := range cur {
			for _, tr := range n.TransitionsOf(id) {
				if tr.Sym == Byte(byt) {
					next[tr.Dst] = true
				}
			}
		}
		cur = epsilonClosure(n, next)
		if len(cur) == 0 {
			return false
		}
	}
	for id := range cur {
		if n.States[id].Accept {
			return true
		}
	}
	return false
}

func epsilonClosure(n *NFA, seed map[StateID]bool) map[StateID]bool {
	out := map[StateID]bool{}
	var stack []StateID
	for id := range seed {
		out[id] = true
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range n.TransitionsOf(id) {
			if tr.Sym != Epsilon {
				break // ε-transitions sort first; none follow.
			}
			if !out[tr.Dst] {
				out[tr.Dst] = true
				stack = append(stack, tr.Dst)
			}
		}
	}
	return out
}

func TestCompileAcceptsAndRejects(t *testing.T) {
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
	}
	for _, c := range cases {
		n := compilePattern(t, c.pat)
		for _, s := range c.accept {
			if !closureAccepts(n, []byte(s)) {
				t.Errorf("pattern %q: expected accept %q", c.pat, s)
			}
		}
		for _, s := range c.reject {
			if closureAccepts(n, []byte(s)) {
				t.Errorf("pattern %q: expected reject %q", c.pat, s)
			}
		}
	}
}

func TestCompileSingleAcceptState(t *testing.T) {
	n := compilePattern(t, "a(bc)*a|d+")
	count := 0
	for _, s := range n.States {
		if s.Accept {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 accept state, got %d", count)
	}
}

func TestCompileStartIsZero(t *testing.T) {
	n := compilePattern(t, "abc")
	if n.Start() != 0 {
		t.Fatalf("expected start state 0, got %d", n.Start())
	}
}

func TestTransitionsSortedEpsilonFirst(t *testing.T) {
	n := compilePattern(t, "a|b|c")
	for _, s := range n.States {
		trs := n.Transitions[s.First : s.First+s.Num]
		seenNonEpsilon := false
		for _, tr := range trs {
			if tr.Sym == Epsilon {
				if seenNonEpsilon {
					t.Fatalf("epsilon transition found after a non-epsilon one")
				}
				continue
			}
			seenNonEpsilon = true
		}
	}
}
