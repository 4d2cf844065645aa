// internal/browser/style/specificity.go
package style

import (
	"fmt"
	"strings"
)

// Specificity is the 4-tuple [inline, ids, classes, tags]. Rules from style
// blocks always carry 0 in the inline slot.
type Specificity [4]int

// CalculateSpecificity counts the parts of a whitespace-separated selector.
func CalculateSpecificity(selector string) Specificity {
	var s Specificity
	for _, part := range strings.Fields(selector) {
		switch part[0] {
		case '#':
			s[1]++
		case '.':
			s[2]++
		default:
			s[3]++
		}
	}
	return s
}

// Compare orders specificities lexicographically. It returns -1, 0 or +1.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if s[i] < other[i] {
			return -1
		}
		if s[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Less reports whether s is strictly less specific than other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", s[0], s[1], s[2], s[3])
}
