// internal/browser/dom/xpath_test.go
package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xpathHTML = `<html>
<body>
	<div id="header">
		<h>Welcome</h>
	</div>
	<div class="content">
		<p>P1</p><p>P2</p>
		<ul>
			<li>Item 1</li>
			<li>Item 2</li>
			<li id="special">Item 3</li>
		</ul>
	</div>
	<div class="content"><p>P3</p></div>
</body>
</html>`

func TestNode_XPath(t *testing.T) {
	root, err := Parse(xpathHTML, nil)
	require.NoError(t, err)

	byText := func(tag, s string) *Node {
		n := root.Find(func(n *Node) bool {
			return n.Type == ElementNode && n.Name == tag && n.TextContent() == s
		})
		require.NotNil(t, n, "no <%s> with text %q", tag, s)
		return n
	}

	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{"Body", root.ElementsByTagName("body")[0], "/html[1]/body[1]"},
		{"Element with ID", root.ElementByID("header"), `//*[@id='header']`},
		{"Child of ID element", root.ElementsByTagName("h")[0], `//*[@id='header']/h[1]`},
		{"Specific index", byText("p", "P2"), "/html[1]/body[1]/div[2]/p[2]"},
		{"Second content block", byText("p", "P3"), "/html[1]/body[1]/div[3]/p[1]"},
		{"List item", byText("li", "Item 2"), "/html[1]/body[1]/div[2]/ul[1]/li[2]"},
		{"List item with ID", root.ElementByID("special"), `//*[@id='special']`},
		{"Document", root, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node.XPath())
		})
	}
}

func TestNode_XPathNil(t *testing.T) {
	var n *Node
	assert.Equal(t, "", n.XPath())
}
