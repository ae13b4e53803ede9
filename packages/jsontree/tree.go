package jsontree

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abdul-hamid-achik/jsonspec/packages/jsonvalue"
)

// NodeKind discriminates the three node shapes in a projected tree.
type NodeKind int

const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
)

// Leaf type attribute values.
const (
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeNull    = "null"
	TypeString  = "string"
)

// Node is a projected tree node. Element nodes have a Tag; scalar leaves
// additionally carry a Type attribute and at most one text child. Nodes are
// never mutated after projection.
type Node struct {
	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node

	Kind NodeKind
	Tag  string
	Type string
	Text string
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	if n.FirstChild == nil {
		n.FirstChild = c
	} else {
		c.PrevSibling = n.LastChild
		n.LastChild.NextSibling = c
	}
	n.LastChild = c
}

// InnerText concatenates the text of all descendant text nodes in document
// order, which is also the node's XPath string value.
func (n *Node) InnerText() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.InnerText())
	}
	return sb.String()
}

// ChildElements returns the element children in document order.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Tree is the projected form of one Value. The document node has a single
// root element child; its tag follows the root-collapsing rule described at
// Project.
type Tree struct {
	doc       *Node
	root      *Node
	sanitized map[string]string
}

// Document returns the document node.
func (t *Tree) Document() *Node { return t.doc }

// Root returns the root element.
func (t *Tree) Root() *Node { return t.root }

// SanitizedTags returns a copy of the original-key to placeholder-tag
// mapping for every key that was not usable as an element tag. Useful in
// diagnostics when a query unexpectedly misses.
func (t *Tree) SanitizedTags() map[string]string {
	out := make(map[string]string, len(t.sanitized))
	for k, v := range t.sanitized {
		out[k] = v
	}
	return out
}

// Project converts a Value into its tree form. The root element tag is the
// top-level object's only key when that key's value is itself a container
// (so queries need not mention an artificial wrapper); in every other case
// the root tag is "root". Projection never fails: keys that are illegal as
// tags are replaced by counter-based placeholders, stable per projection.
func Project(v jsonvalue.Value) *Tree {
	b := &builder{tags: map[string]string{}}
	doc := &Node{Kind: DocumentNode}

	rootTag := "root"
	content := v
	if v.Kind() == jsonvalue.KindObject && v.Len() == 1 {
		if m := v.Members()[0]; m.Value.IsContainer() {
			rootTag = b.tagFor(m.Key)
			content = m.Value
		}
	}

	root := &Node{Kind: ElementNode, Tag: rootTag}
	doc.appendChild(root)

	switch content.Kind() {
	case jsonvalue.KindObject:
		for _, m := range content.Members() {
			b.project(root, b.tagFor(m.Key), m.Value)
		}
	case jsonvalue.KindList:
		b.projectList(root, rootTag, content)
	default:
		// Decoded documents wrap bare scalars in a list, so this only
		// happens for hand-built values; the root doubles as the leaf.
		applyLeaf(root, content)
	}

	return &Tree{doc: doc, root: root, sanitized: b.tags}
}

type builder struct {
	count int
	tags  map[string]string
}

func (b *builder) tagFor(key string) string {
	if isValidTag(key) {
		return key
	}
	if tag, ok := b.tags[key]; ok {
		return tag
	}
	b.count++
	tag := fmt.Sprintf("invalidTag%d", b.count)
	b.tags[key] = tag
	return tag
}

func (b *builder) project(parent *Node, tag string, v jsonvalue.Value) {
	switch v.Kind() {
	case jsonvalue.KindObject:
		el := &Node{Kind: ElementNode, Tag: tag}
		parent.appendChild(el)
		for _, m := range v.Members() {
			b.project(el, b.tagFor(m.Key), m.Value)
		}
	case jsonvalue.KindList:
		b.projectList(parent, tag, v)
	default:
		el := &Node{Kind: ElementNode, Tag: tag}
		parent.appendChild(el)
		applyLeaf(el, v)
	}
}

// projectList splats list entries into parent as elements that repeat the
// owning tag. An entry that is itself a list keeps its own element so that
// nesting stays addressable.
func (b *builder) projectList(parent *Node, tag string, list jsonvalue.Value) {
	for _, item := range list.Items() {
		if item.Kind() == jsonvalue.KindList {
			el := &Node{Kind: ElementNode, Tag: tag}
			parent.appendChild(el)
			b.projectList(el, tag, item)
			continue
		}
		b.project(parent, tag, item)
	}
}

func applyLeaf(el *Node, v jsonvalue.Value) {
	var text string
	switch v.Kind() {
	case jsonvalue.KindBool:
		el.Type = TypeBoolean
		if v.Bool() {
			text = "true"
		} else {
			text = "false"
		}
	case jsonvalue.KindNumber:
		el.Type = TypeNumber
		text = v.CanonicalNumber()
	case jsonvalue.KindNull:
		el.Type = TypeNull
	case jsonvalue.KindString:
		el.Type = TypeString
		text = v.Text()
	}
	if text != "" {
		el.appendChild(&Node{Kind: TextNode, Text: text})
	}
}

func isValidTag(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.' {
			return false
		}
	}
	return true
}
