// internal/browser/dom/node.go
package dom

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/browsercore/internal/browser/html"
	"github.com/xkilldash9x/browsercore/internal/browser/style"
)

// NodeType tags the Node variants.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// MarshalText makes the type readable in JSON output.
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Node is a document, element or text node. Children are owned by their
// parent; Parent is a back-reference and is not serialized.
type Node struct {
	Type          NodeType            `json:"type"`
	Name          string              `json:"tagName,omitempty"`
	Attributes    []html.Attribute    `json:"attributes,omitempty"`
	SelfClosing   bool                `json:"selfClosing,omitempty"`
	ComputedStyle style.ComputedStyle `json:"computedStyle,omitempty"`
	Content       string              `json:"content,omitempty"`
	Children      []*Node             `json:"children,omitempty"`
	Parent        *Node               `json:"-"`
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// TagName returns the element's tag name, "" for other nodes.
func (n *Node) TagName() string {
	if n.Type != ElementNode {
		return ""
	}
	return n.Name
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild attaches child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node in document order for which match is true.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// ElementByID returns the first element with the given id attribute.
func (n *Node) ElementByID(id string) *Node {
	return n.Find(func(c *Node) bool {
		if c.Type != ElementNode {
			return false
		}
		v, ok := c.Attribute("id")
		return ok && v == id
	})
}

// ElementsByTagName returns all elements named tag in document order.
func (n *Node) ElementsByTagName(tag string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode && c.Name == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Content)
		}
		return true
	})
	return sb.String()
}

// Depth returns the deepest element nesting below n. A childless element has depth 1.
func (n *Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	if n.Type == ElementNode {
		return deepest + 1
	}
	return deepest
}

// Ancestors returns the element ancestors of n, innermost first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == ElementNode {
			out = append(out, p)
		}
	}
	return out
}
