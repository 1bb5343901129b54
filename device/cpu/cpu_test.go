package cpu

import (
	"context"
	"testing"

	"github.com/parareduce/pgrep/dfa"
	"github.com/parareduce/pgrep/nfa"
	"github.com/parareduce/pgrep/pattern"
	"github.com/parareduce/pgrep/pdfa"
)

func buildPDFA(t *testing.T, src string) *pdfa.PDFA {
	t.Helper()
	p, err := pattern.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	pd, err := pdfa.Build(dfa.Build(nfa.Compile(p)), 0)
	if err != nil {
		t.Fatalf("pdfa.Build(%q): %v", src, err)
	}
	return pd
}

// reduceAll runs the full two-kernel pipeline for a non-empty input and
// reports the final accept/reject answer.
func reduceAll(t *testing.T, b *Backend, pd *pdfa.PDFA, input []byte, itemsPerBlock int) bool {
	t.Helper()
	ctx := context.Background()
	q, err := b.NewQueue()
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	defer q.Release()

	blockStates, err := b.InitialReduce(ctx, q, pd, input, itemsPerBlock)
	if err != nil {
		t.Fatalf("InitialReduce: %v", err)
	}
	final, err := b.TreeReduce(ctx, q, pd, blockStates, itemsPerBlock)
	if err != nil {
		t.Fatalf("TreeReduce: %v", err)
	}
	if final.Len() != 1 {
		t.Fatalf("expected TreeReduce to fold to exactly 1 state, got %d", final.Len())
	}
	states, err := b.ReadStates(ctx, q, final)
	if err != nil {
		t.Fatalf("ReadStates: %v", err)
	}
	return pd.IsAccepting(states[0])
}

func TestCPUBackendAcceptsAndRejects(t *testing.T) {
	cases := []struct {
		pat    string
		accept []string
		reject []string
	}{
		{"a", []string{"a"}, []string{"b", "aa"}},
		{"abc", []string{"abc"}, []string{"ab", "abcd"}},
		{"a(bc)*a", []string{"aa", "abca", "abcbcbcbca"}, []string{"ab", "abc"}},
		{"[A-Za-z_][A-Za-z0-9_]*", []string{"x", "_foo9bar"}, []string{"9ab", "a-b"}},
	}
	for _, itemsPerBlock := range []int{1, 2, 3, 8} {
		for _, workers := range []int{1, 4} {
			b := &Backend{Workers: workers}
			for _, c := range cases {
				pd := buildPDFA(t, c.pat)
				for _, s := range c.accept {
					if !reduceAll(t, b, pd, []byte(s), itemsPerBlock) {
						t.Errorf("workers=%d itemsPerBlock=%d pattern %q: expected accept %q", workers, itemsPerBlock, c.pat, s)
					}
				}
				for _, s := range c.reject {
					if reduceAll(t, b, pd, []byte(s), itemsPerBlock) {
						t.Errorf("workers=%d itemsPerBlock=%d pattern %q: expected reject %q", workers, itemsPerBlock, c.pat, s)
					}
				}
			}
		}
	}
}

func TestCPUBackendEmptyInput(t *testing.T) {
	b := New()
	pd := buildPDFA(t, "a*")
	ctx := context.Background()
	q, _ := b.NewQueue()
	defer q.Release()
	blockStates, err := b.InitialReduce(ctx, q, pd, nil, 4)
	if err != nil {
		t.Fatalf("InitialReduce: %v", err)
	}
	if blockStates.Len() != 0 {
		t.Fatalf("expected 0 block states for empty input, got %d", blockStates.Len())
	}
}

func TestCPUBackendSingleByteBlock(t *testing.T) {
	b := &Backend{Workers: 1}
	pd := buildPDFA(t, "abc")
	if !reduceAll(t, b, pd, []byte("abc"), 1) {
		t.Fatal("expected accept with itemsPerBlock=1")
	}
}
