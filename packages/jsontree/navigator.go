package jsontree

import "github.com/antchfx/xpath"

// navigator adapts a projected tree to the xpath engine. The only attribute
// a node can carry is the leaf type attribute; attr tracks whether the
// navigator currently sits on it (0) or on the node itself (-1).
type navigator struct {
	root *Node
	curr *Node
	attr int
}

func (t *Tree) navigator() *navigator {
	return &navigator{root: t.doc, curr: t.doc, attr: -1}
}

func (nav *navigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	switch nav.curr.Kind {
	case DocumentNode:
		return xpath.RootNode
	case TextNode:
		return xpath.TextNode
	default:
		return xpath.ElementNode
	}
}

func (nav *navigator) LocalName() string {
	if nav.attr != -1 {
		return "type"
	}
	return nav.curr.Tag
}

func (nav *navigator) Prefix() string { return "" }

func (nav *navigator) Value() string {
	if nav.attr != -1 {
		return nav.curr.Type
	}
	return nav.curr.InnerText()
}

func (nav *navigator) Copy() xpath.NodeNavigator {
	copied := *nav
	return &copied
}

func (nav *navigator) MoveToRoot() {
	nav.curr = nav.root
	nav.attr = -1
}

func (nav *navigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1
		return true
	}
	if nav.curr.Parent == nil {
		return false
	}
	nav.curr = nav.curr.Parent
	return true
}

func (nav *navigator) MoveToNextAttribute() bool {
	if nav.attr != -1 || nav.curr.Kind != ElementNode || nav.curr.Type == "" {
		return false
	}
	nav.attr = 0
	return true
}

func (nav *navigator) MoveToChild() bool {
	if nav.attr != -1 || nav.curr.FirstChild == nil {
		return false
	}
	nav.curr = nav.curr.FirstChild
	return true
}

func (nav *navigator) MoveToFirst() bool {
	if nav.attr != -1 {
		return false
	}
	for nav.curr.PrevSibling != nil {
		nav.curr = nav.curr.PrevSibling
	}
	return true
}

func (nav *navigator) MoveToNext() bool {
	if nav.attr != -1 || nav.curr.NextSibling == nil {
		return false
	}
	nav.curr = nav.curr.NextSibling
	return true
}

func (nav *navigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.curr.PrevSibling == nil {
		return false
	}
	nav.curr = nav.curr.PrevSibling
	return true
}

func (nav *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.curr = o.curr
	nav.attr = o.attr
	return true
}
