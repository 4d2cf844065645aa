// internal/browser/dom/errors.go
package dom

import (
	"errors"
	"fmt"
)

// ErrTagMismatch classifies end tags that do not close the current element.
var ErrTagMismatch = errors.New("tag mismatch")

// TagMismatchError is returned when an end tag does not name the element on
// top of the open-element stack. Expected is empty when no element was open.
type TagMismatchError struct {
	Expected string
	Got      string
}

func (e *TagMismatchError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("dom: %v: end tag </%s> with no open element", ErrTagMismatch, e.Got)
	}
	return fmt.Sprintf("dom: %v: end tag </%s> does not close <%s>", ErrTagMismatch, e.Got, e.Expected)
}

func (e *TagMismatchError) Unwrap() error { return ErrTagMismatch }
