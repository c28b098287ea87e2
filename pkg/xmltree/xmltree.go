// Package xmltree is a minimal XML document tree: elements with attributes,
// text and comment nodes, in document order. It exists so record readers can
// walk an already-parsed document the way they would walk a DOM, without
// depending on any particular parser. Parse builds a tree with encoding/xml.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRoot indicates a document without a root element.
var ErrNoRoot = errors.New("xmltree: document has no root element")

// Kind distinguishes node types.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
)

// Attr is a single attribute. Namespace declarations are not attributes; they
// are kept in Node.Namespace.
type Attr struct {
	Name  string
	Value string
}

// Node is an element, text or comment node.
type Node struct {
	Kind Kind

	// Name is the local element name. Empty for text and comment nodes.
	Name string
	// Namespace is the resolved namespace URI of an element.
	Namespace string

	Attrs    []Attr
	Children []*Node

	// Text holds character data for text nodes and the body of comments.
	Text string
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// InnerText concatenates the text node children of n.
func (n *Node) InnerText() string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// NewElement returns an element node with the given attributes given as
// name/value pairs.
func NewElement(name string, attrs ...string) *Node {
	n := &Node{Kind: ElementNode, Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs = append(n.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return n
}

// NewText returns a text node.
func NewText(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// NewComment returns a comment node.
func NewComment(s string) *Node {
	return &Node{Kind: CommentNode, Text: s}
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Parse reads a document and returns its top-level nodes (the root element
// plus any comments around it).
func Parse(r io.Reader) ([]*Node, error) {
	dec := xml.NewDecoder(r)
	var (
		top   []*Node
		stack []*Node
		root  bool
	)
	appendNode := func(n *Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: t.Name.Local, Namespace: t.Name.Space}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			appendNode(n)
			stack = append(stack, n)
			if len(stack) == 1 {
				root = true
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				// Whitespace between prolog and root.
				continue
			}
			appendNode(&Node{Kind: TextNode, Text: string(t)})
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Text: string(t)})
		}
	}
	if !root {
		return nil, ErrNoRoot
	}
	return top, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) ([]*Node, error) {
	return Parse(bytes.NewReader(b))
}

// Root returns the first element among nodes.
func Root(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.Kind == ElementNode {
			return n
		}
	}
	return nil
}
