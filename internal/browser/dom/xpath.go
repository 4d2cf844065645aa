// internal/browser/dom/xpath.go
package dom

import (
	"fmt"
	"strings"
)

// XPath generates a unique path expression for an element. An id on the
// element or an ancestor is used as the anchor.
func (n *Node) XPath() string {
	if n == nil {
		return ""
	}

	var path []string
	for cur := n; cur != nil && cur.Type != DocumentNode; cur = cur.Parent {
		if cur.Type != ElementNode || cur.Name == "" {
			continue
		}

		if id, ok := cur.Attribute("id"); ok && id != "" {
			path = append(path, fmt.Sprintf(`//*[@id='%s']`, id))
			break
		}

		// XPath indices are 1-based and count same-named siblings only.
		index := 1
		if cur.Parent != nil {
			for _, sib := range cur.Parent.Children {
				if sib == cur {
					break
				}
				if sib.Type == ElementNode && sib.Name == cur.Name {
					index++
				}
			}
		}
		path = append(path, fmt.Sprintf("%s[%d]", cur.Name, index))
	}

	if len(path) == 0 {
		return "/"
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	xpath := strings.Join(path, "/")
	if !strings.HasPrefix(xpath, "//*[@id=") {
		xpath = "/" + xpath
	}
	return xpath
}
