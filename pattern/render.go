package pattern

import (
	"fmt"
	"strings"

	"github.com/parareduce/pgrep/charset"
)

// escapeLiteral returns the escape sequence for c if Parse would otherwise
// treat it specially, or the bare byte itself.
func escapeLiteral(c byte) string {
	switch c {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\\', '.', '(', ')', '[', ']', '^', '$':
		return "\\" + string(c)
	case '|', '*', '+', '?':
		// Parse has no single-character escape for these; spell them in hex.
		return fmt.Sprintf(`\x%02x`, c)
	default:
		if !isPrintable(c) {
			return fmt.Sprintf(`\x%02x`, c)
		}
		return string(c)
	}
}

// Render renders a Pattern back to regex source text. It is a structural
// inverse of Parse for patterns built only from literals, sequences,
// alternations and repeats (spec §8 "Round-trip" scopes out '.' and
// character classes, whose normalized form does not uniquely determine
// the original source spelling).
func Render(p *Pattern) string {
	var sb strings.Builder
	renderNode(p, p.Root(), &sb)
	return sb.String()
}

func renderNode(p *Pattern, id NodeID, sb *strings.Builder) {
	n := p.Nodes[id]
	switch n.Kind {
	case KindEmpty:
		// nothing
	case KindAnyNotNL:
		sb.WriteByte('.')
	case KindChar:
		sb.WriteString(escapeLiteral(n.Char))
	case KindCharSet:
		renderCharSet(p.CharSets[n.CharSet], sb)
	case KindSequence:
		for _, c := range p.ChildrenOf(id) {
			renderGrouped(p, c, sb)
		}
	case KindAlternation:
		kids := p.ChildrenOf(id)
		for i, c := range kids {
			if i > 0 {
				sb.WriteByte('|')
			}
			renderNode(p, c, sb)
		}
	case KindRepeat:
		renderRepeatOperand(p, n.Child, sb)
		sb.WriteString(n.RepeatKind.String())
	}
}

// renderGrouped parenthesizes id if splicing its rendering directly into a
// surrounding sequence would change what a subsequent Parse recovers (only
// an alternation is ambiguous in that position: "a" + "b|c" must become
// "a(b|c)", not "ab|c").
func renderGrouped(p *Pattern, id NodeID, sb *strings.Builder) {
	if p.Nodes[id].Kind == KindAlternation {
		sb.WriteByte('(')
		renderNode(p, id, sb)
		sb.WriteByte(')')
		return
	}
	renderNode(p, id, sb)
}

// renderRepeatOperand parenthesizes id if it needs to bind as a single atom
// under a following quantifier: a sequence or alternation would otherwise
// only have its last element repeated, and a nested repeat would produce a
// stray second quantifier character ("a**").
func renderRepeatOperand(p *Pattern, id NodeID, sb *strings.Builder) {
	switch p.Nodes[id].Kind {
	case KindSequence, KindAlternation, KindRepeat:
		sb.WriteByte('(')
		renderNode(p, id, sb)
		sb.WriteByte(')')
	default:
		renderNode(p, id, sb)
	}
}

func renderCharSet(s charset.Set, sb *strings.Builder) {
	sb.WriteByte('[')
	if s.Invert {
		sb.WriteByte('^')
	}
	for _, r := range s.Ranges {
		sb.WriteString(escapeClassByte(r.Min))
		if r.Max != r.Min {
			sb.WriteByte('-')
			sb.WriteString(escapeClassByte(r.Max))
		}
	}
	sb.WriteByte(']')
}

func escapeClassByte(c byte) string {
	switch c {
	case '\\', '[', ']', '^':
		return "\\" + string(c)
	case '-':
		return `\-`
	default:
		if !isPrintable(c) {
			return fmt.Sprintf(`\x%02x`, c)
		}
		return string(c)
	}
}
