// Package pattern implements the regex parser and the Pattern tree it
// produces: a flat, index-addressed AST with node variants for the grammar
// in spec §4.1, normalized character classes, and a render function used
// to test parser/tree round-tripping.
package pattern

import "github.com/parareduce/pgrep/charset"

// NodeID addresses a node in a Pattern's Nodes array.
type NodeID uint32

// InvalidNode is the reserved sentinel for "no node".
const InvalidNode NodeID = ^NodeID(0)

// Kind discriminates Node variants.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindAnyNotNL
	KindChar
	KindCharSet
	KindSequence
	KindAlternation
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindAnyNotNL:
		return "AnyNotNL"
	case KindChar:
		return "Char"
	case KindCharSet:
		return "CharSet"
	case KindSequence:
		return "Sequence"
	case KindAlternation:
		return "Alternation"
	case KindRepeat:
		return "Repeat"
	default:
		return "Invalid"
	}
}

// RepeatKind discriminates the three quantifiers pgrep supports.
type RepeatKind uint8

const (
	ZeroOrMore RepeatKind = iota // *
	ZeroOrOnce                   // ?
	OnceOrMore                   // +
)

func (k RepeatKind) String() string {
	switch k {
	case ZeroOrMore:
		return "*"
	case ZeroOrOnce:
		return "?"
	case OnceOrMore:
		return "+"
	default:
		return "?invalid?"
	}
}

// Node is one entry of the flat pattern tree. Only the fields relevant to
// Kind are meaningful; the zero value of the others is ignored.
type Node struct {
	Kind Kind

	Char byte // KindChar

	CharSet int // KindCharSet: index into Pattern.CharSets

	First uint32 // KindSequence/KindAlternation: index into Pattern.Children
	Count uint32 // KindSequence/KindAlternation: number of immediate children

	Child      NodeID // KindRepeat
	RepeatKind RepeatKind
}

// Pattern is an immutable, flat pattern tree. Node 0 is always the root.
// CharSet data referenced by KindCharSet nodes lives in the CharSets arena,
// owned by the Pattern for its lifetime.
type Pattern struct {
	Nodes    []Node
	Children []NodeID
	CharSets []charset.Set
}

// Root returns the root node's ID, always 0.
func (p *Pattern) Root() NodeID {
	return 0
}

// ChildrenOf returns the immediate children of a Sequence or Alternation
// node. Panics (programmer error) if n is not one of those kinds.
func (p *Pattern) ChildrenOf(n NodeID) []NodeID {
	node := p.Nodes[n]
	if node.Kind != KindSequence && node.Kind != KindAlternation {
		panic("pattern: ChildrenOf called on a node with no children")
	}
	return p.Children[node.First : node.First+node.Count]
}
