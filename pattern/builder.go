package pattern

import "github.com/parareduce/pgrep/charset"

// builder assembles a Pattern tree bottom-up: every Append* call appends a
// fully-formed node (its children already appended earlier), so the last
// node appended is always the root of whatever was built last. Finish()
// then relocates the declared root to index 0 (spec §3: "index 0 is the
// root"), shifting every other node up by one and rewriting the NodeID
// references that move (Children entries, Repeat.Child) through a
// permutation. CharSets indices are untouched since nodes reference them
// by arena position, not by NodeID.
type builder struct {
	nodes    []Node
	children []NodeID
	charSets []charset.Set
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) push(n Node) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return id
}

func (b *builder) empty() NodeID {
	return b.push(Node{Kind: KindEmpty})
}

func (b *builder) anyNotNL() NodeID {
	return b.push(Node{Kind: KindAnyNotNL})
}

func (b *builder) char(c byte) NodeID {
	return b.push(Node{Kind: KindChar, Char: c})
}

func (b *builder) charSet(s charset.Set) NodeID {
	idx := len(b.charSets)
	b.charSets = append(b.charSets, s)
	return b.push(Node{Kind: KindCharSet, CharSet: idx})
}

// sequence collapses per spec §4.1 "AST simplification": zero children is
// empty, one child is that child unwrapped.
func (b *builder) sequence(kids []NodeID) NodeID {
	switch len(kids) {
	case 0:
		return b.empty()
	case 1:
		return kids[0]
	}
	first := uint32(len(b.children))
	b.children = append(b.children, kids...)
	return b.push(Node{Kind: KindSequence, First: first, Count: uint32(len(kids))})
}

// alternation collapses a single alternative the same way sequence does.
func (b *builder) alternation(kids []NodeID) NodeID {
	switch len(kids) {
	case 0:
		return b.empty()
	case 1:
		return kids[0]
	}
	first := uint32(len(b.children))
	b.children = append(b.children, kids...)
	return b.push(Node{Kind: KindAlternation, First: first, Count: uint32(len(kids))})
}

func (b *builder) repeat(child NodeID, kind RepeatKind) NodeID {
	return b.push(Node{Kind: KindRepeat, Child: child, RepeatKind: kind})
}

// finish relocates root to index 0 and returns the finished Pattern.
func (b *builder) finish(root NodeID) *Pattern {
	n := len(b.nodes)
	perm := make([]NodeID, n) // perm[old] = new
	perm[root] = 0
	next := NodeID(1)
	for old := 0; old < n; old++ {
		if NodeID(old) == root {
			continue
		}
		perm[old] = next
		next++
	}

	remapped := make([]Node, n)
	for old, node := range b.nodes {
		if node.Kind == KindRepeat {
			node.Child = perm[node.Child]
		}
		remapped[perm[old]] = node
	}
	remappedChildren := make([]NodeID, len(b.children))
	for i, c := range b.children {
		remappedChildren[i] = perm[c]
	}

	return &Pattern{
		Nodes:    remapped,
		Children: remappedChildren,
		CharSets: b.charSets,
	}
}
