package nfa

import (
	"github.com/parareduce/pgrep/charset"
	"github.com/parareduce/pgrep/pattern"
)

// frag is a partially-built NFA fragment: a single entry state and the
// list of dangling transitions ("out") that must be redirected to
// whatever comes next once it is known. Concatenating two fragments is
// just patching the first's out list to the second's start; this is the
// standard Thompson patch-list technique, the same idea behind the
// teacher engine's fragment-returning compileConcat/compileAlternate/
// compileStar/compilePlus/compileQuest (there expressed as a single
// mutable `next` field per state rather than a patch list, since pgrep's
// flat transitions array has no such field to overwrite in place).
type frag struct {
	start StateID
	out   []Patch
}

// Compile runs Thompson construction (spec §4.2) over p, producing an NFA
// with a single start state (0) and a single accept state.
func Compile(p *pattern.Pattern) *NFA {
	b := NewBuilder()
	root := compileNode(b, p, p.Root())
	accept := b.AddState()
	b.SetAccept(accept)
	b.PatchAllTo(root.out, accept)
	return b.Build()
}

func compileNode(b *Builder, p *pattern.Pattern, id pattern.NodeID) frag {
	n := p.Nodes[id]
	switch n.Kind {
	case pattern.KindEmpty:
		return compileEmpty(b)
	case pattern.KindChar:
		return compileByteSet(b, []byte{n.Char})
	case pattern.KindAnyNotNL:
		return compileByteSet(b, charset.AnyNotNL().Bytes())
	case pattern.KindCharSet:
		return compileByteSet(b, p.CharSets[n.CharSet].Bytes())
	case pattern.KindSequence:
		return compileSequence(b, p, p.ChildrenOf(id))
	case pattern.KindAlternation:
		return compileAlternation(b, p, p.ChildrenOf(id))
	case pattern.KindRepeat:
		return compileRepeat(b, p, n)
	default:
		panic("nfa: unknown pattern node kind")
	}
}

func compileEmpty(b *Builder) frag {
	s := b.AddState()
	p := b.AddEpsilonDangling(s)
	return frag{start: s, out: []Patch{p}}
}

func compileByteSet(b *Builder, bytes []byte) frag {
	s := b.AddState()
	patches := make([]Patch, 0, len(bytes))
	for _, byt := range bytes {
		patches = append(patches, b.AddByteDangling(s, byt))
	}
	return frag{start: s, out: patches}
}

func compileSequence(b *Builder, p *pattern.Pattern, kids []pattern.NodeID) frag {
	if len(kids) == 0 {
		return compileEmpty(b)
	}
	acc := compileNode(b, p, kids[0])
	for _, k := range kids[1:] {
		next := compileNode(b, p, k)
		b.PatchAllTo(acc.out, next.start)
		acc = frag{start: acc.start, out: next.out}
	}
	return acc
}

func compileAlternation(b *Builder, p *pattern.Pattern, kids []pattern.NodeID) frag {
	if len(kids) == 0 {
		return compileEmpty(b)
	}
	start := b.AddState()
	var out []Patch
	for _, k := range kids {
		f := compileNode(b, p, k)
		b.AddEpsilonTo(start, f.start)
		out = append(out, f.out...)
	}
	return frag{start: start, out: out}
}

func compileRepeat(b *Builder, p *pattern.Pattern, n pattern.Node) frag {
	// A fragment's start must be the first state it allocates, so that the
	// root fragment's start ends up as state 0.
	switch n.RepeatKind {
	case pattern.ZeroOrMore:
		start := b.AddState()
		child := compileNode(b, p, n.Child)
		b.AddEpsilonTo(start, child.start)
		out := b.AddEpsilonDangling(start)
		b.PatchAllTo(child.out, start)
		return frag{start: start, out: []Patch{out}}
	case pattern.OnceOrMore:
		child := compileNode(b, p, n.Child)
		join := b.AddState()
		b.AddEpsilonTo(join, child.start)
		out := b.AddEpsilonDangling(join)
		b.PatchAllTo(child.out, join)
		return frag{start: child.start, out: []Patch{out}}
	case pattern.ZeroOrOnce:
		start := b.AddState()
		child := compileNode(b, p, n.Child)
		b.AddEpsilonTo(start, child.start)
		out := b.AddEpsilonDangling(start)
		return frag{start: start, out: append(child.out, out)}
	default:
		panic("nfa: unknown repeat kind")
	}
}
