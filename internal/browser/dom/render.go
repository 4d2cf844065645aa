// internal/browser/dom/render.go
package dom

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToHTMLNode converts n and its subtree to an x/net/html tree.
func ToHTMLNode(n *Node) *nethtml.Node {
	out := &nethtml.Node{}
	switch n.Type {
	case DocumentNode:
		out.Type = nethtml.DocumentNode
	case ElementNode:
		out.Type = nethtml.ElementNode
		out.Data = n.Name
		out.DataAtom = atom.Lookup([]byte(n.Name))
		for _, a := range n.Attributes {
			out.Attr = append(out.Attr, nethtml.Attribute{Key: a.Name, Val: a.Value})
		}
	case TextNode:
		out.Type = nethtml.TextNode
		out.Data = n.Content
	}
	for _, c := range n.Children {
		out.AppendChild(ToHTMLNode(c))
	}
	return out
}

// Render writes n as HTML.
func Render(w io.Writer, n *Node) error {
	return nethtml.Render(w, ToHTMLNode(n))
}

// RenderString is Render into a string.
func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EncodeJSON writes the annotated tree as JSON. indent of 0 produces compact output.
func EncodeJSON(w io.Writer, n *Node, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", string(bytes.Repeat([]byte{' '}, indent)))
	}
	return enc.Encode(n)
}
