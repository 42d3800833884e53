package compono

import (
	"strings"
)

// Serialize writes n depth-first in document order to a freshly allocated
// string. It is meant to run on an already-expanded tree; Document,
// Element, Text, Comment, and Declaration are all handled, so it is also
// useful for dumping an unexpanded parse tree in tests.
func Serialize(n *Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case DocumentKind:
		for _, c := range n.Children {
			writeNode(sb, c)
		}
	case TextKind:
		sb.WriteString(n.Text)
	case CommentKind:
		sb.WriteString("<!--")
		sb.WriteString(n.Text)
		sb.WriteString("-->")
	case DeclarationKind:
		sb.WriteString("<!")
		sb.WriteString(n.Text)
		sb.WriteString(">")
	case ElementKind:
		writeElement(sb, n)
	}
}

func writeElement(sb *strings.Builder, n *Node) {
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	if isVoid(n.Tag) {
		return
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// escapeAttr escapes a value for the quoted-attribute context: &, ", <, >.
func escapeAttr(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
