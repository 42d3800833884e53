// Package compono implements the HTML parser and component expansion engine
// at the core of the site processor: bytes in, a Node tree, component
// invocations expanded against user-authored definitions, bytes back out.
package compono

import "strings"

// Kind discriminates the five variants a Node can hold. Each variant only
// populates the fields that apply to it; see the accessors below rather than
// reading the fields directly when in doubt.
type Kind int

const (
	// DocumentKind is the unique tree root. It has no Tag and no Attrs.
	DocumentKind Kind = iota
	// ElementKind is a tagged element with attributes and children.
	ElementKind
	// TextKind holds verbatim, undecoded text bytes.
	TextKind
	// CommentKind holds the verbatim bytes between "<!--" and "-->".
	CommentKind
	// DeclarationKind holds the verbatim bytes between "<!" and ">".
	DeclarationKind
)

// Attribute is a single name/value pair. Name is lowercased at parse time;
// Value is stored with its surrounding quotes (if any) stripped, otherwise
// byte-exact.
type Attribute struct {
	Name  string
	Value string
}

// Node is a tagged-variant tree node. The tree is owned exclusively by
// parents: a Node is destroyed the moment its parent drops it from
// Children. Parent is a weak lookup link only, set on insertion and cleared
// on detach — nothing in the engine depends on it being present, it only
// makes diagnostics able to print a path to the offending node.
type Node struct {
	Kind     Kind
	Tag      string // ElementKind only, non-empty, lowercase
	Attrs    []Attribute
	Text     string // TextKind / CommentKind / DeclarationKind
	Children []*Node

	Parent *Node

	// Source locates the node in its originating file, for diagnostics.
	Source Span
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: DocumentKind}
}

// IsVoid reports whether the element never has children or a close tag.
func (n *Node) IsVoid() bool {
	return n.Kind == ElementKind && voidTags[n.Tag]
}

// Attr returns the value of the first attribute matching name, and whether
// it was found. Per spec, duplicates are permitted on parse but only the
// first is ever observed.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild appends c to n's children and sets c's parent link. It panics
// if c is already attached to a tree.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil {
		panic("compono: AppendChild called for an attached Node")
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// AppendChildren appends each of cs in order.
func (n *Node) AppendChildren(cs ...*Node) {
	for _, c := range cs {
		n.AppendChild(c)
	}
}

// ReplaceChild drops the child at idx and splices repl in its place,
// shifting the remainder. repl may be empty (pure removal) or contain more
// than one node (fan-out). It returns the number of nodes inserted, so
// callers can advance a cursor past them without re-scanning.
func (n *Node) ReplaceChild(idx int, repl ...*Node) int {
	old := n.Children[idx]
	old.Parent = nil

	for _, r := range repl {
		if r.Parent != nil {
			panic("compono: ReplaceChild given an attached Node")
		}
		r.Parent = n
	}

	tail := append([]*Node{}, n.Children[idx+1:]...)
	n.Children = append(n.Children[:idx], append(repl, tail...)...)
	return len(repl)
}

// RemoveChildAt detaches and returns the child at idx.
func (n *Node) RemoveChildAt(idx int) *Node {
	c := n.Children[idx]
	c.Parent = nil
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	return c
}

// Clone deep-copies n and its entire subtree. The clone shares no node with
// the original; Parent is left nil on the returned root (the caller attaches
// it wherever it's inserted).
func (n *Node) Clone() *Node {
	c := &Node{
		Kind:   n.Kind,
		Tag:    n.Tag,
		Text:   n.Text,
		Source: n.Source,
	}
	if n.Attrs != nil {
		c.Attrs = append([]Attribute{}, n.Attrs...)
	}
	for _, child := range n.Children {
		cc := child.Clone()
		c.AppendChild(cc)
	}
	return c
}

// IsWhitespace reports whether a Text node holds only whitespace bytes.
func (n *Node) IsWhitespace() bool {
	return n.Kind == TextKind && strings.Trim(n.Text, whitespace) == ""
}

const whitespace = " \t\r\n\f"
