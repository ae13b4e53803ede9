package jsontree

import (
	"encoding/xml"
	"strings"
)

// XML renders the projected tree as markup text. Leaf elements keep their
// type attribute, so the rendering preserves the boolean/number/null/string
// distinction of every leaf.
func (t *Tree) XML() string {
	var sb strings.Builder
	for c := t.doc.FirstChild; c != nil; c = c.NextSibling {
		writeNode(&sb, c)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case TextNode:
		escapeInto(sb, n.Text)
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		if n.Type != "" {
			sb.WriteString(` type="`)
			sb.WriteString(n.Type)
			sb.WriteString(`"`)
		}
		if n.FirstChild == nil {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}

func escapeInto(sb *strings.Builder, s string) {
	if err := xml.EscapeText(sb, []byte(s)); err != nil {
		sb.WriteString(s)
	}
}
