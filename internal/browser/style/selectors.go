// internal/browser/style/selectors.go
package style

import "strings"

// Element is the view of a DOM element the matcher needs.
type Element interface {
	TagName() string
	Attribute(name string) (string, bool)
}

// MatchSimple matches one selector part: "#x" against the id attribute,
// ".x" against the whole class attribute value, anything else against the
// tag name.
func MatchSimple(el Element, part string) bool {
	if el == nil || part == "" {
		return false
	}
	switch part[0] {
	case '#':
		v, ok := el.Attribute("id")
		return ok && v == part[1:]
	case '.':
		v, ok := el.Attribute("class")
		return ok && v == part[1:]
	default:
		return el.TagName() == part
	}
}

// MatchSelector matches a descendant selector. ancestors runs from the
// immediate parent outwards. The rightmost part must match el itself; the
// remaining parts must be satisfied, right to left, by some chain of
// ancestors, not necessarily adjacent ones.
func MatchSelector(el Element, ancestors []Element, selector string) bool {
	return matchParts(el, ancestors, reversedParts(selector))
}

// matchParts takes the selector parts rightmost first.
func matchParts(el Element, ancestors []Element, parts []string) bool {
	if len(parts) == 0 || !MatchSimple(el, parts[0]) {
		return false
	}
	j := 1
	for _, ancestor := range ancestors {
		if j >= len(parts) {
			break
		}
		if MatchSimple(ancestor, parts[j]) {
			j++
		}
	}
	return j >= len(parts)
}

func reversedParts(selector string) []string {
	parts := strings.Fields(selector)
	for i, k := 0, len(parts)-1; i < k; i, k = i+1, k-1 {
		parts[i], parts[k] = parts[k], parts[i]
	}
	return parts
}
