package engine

import (
	"github.com/parareduce/pgrep/dfa"
	"github.com/parareduce/pgrep/nfa"
	"github.com/parareduce/pgrep/pattern"
	"github.com/parareduce/pgrep/pdfa"
)

// CompiledPattern is the immutable result of compiling pattern text:
// every intermediate artifact of the pipeline (spec §2) is kept, not
// just the PDFA, since the reference engines (reference.go) and tests
// cross-check all of them against each other.
type CompiledPattern struct {
	Source string
	Tree   *pattern.Pattern
	NFA    *nfa.NFA
	DFA    *dfa.DFA
	PDFA   *pdfa.PDFA
}

// compile runs the full pipeline (spec §4.1-§4.4) over src.
func compile(src string, cfg Config) (*CompiledPattern, error) {
	tree, err := pattern.Parse([]byte(src))
	if err != nil {
		return nil, &RuntimeError{Stage: "parse", Cause: err}
	}
	n := nfa.Compile(tree)
	d := dfa.Build(n)
	p, err := pdfa.Build(d, cfg.StateLimit)
	if err != nil {
		return nil, &RuntimeError{Stage: "parallelize", Cause: err}
	}
	return &CompiledPattern{Source: src, Tree: tree, NFA: n, DFA: d, PDFA: p}, nil
}
