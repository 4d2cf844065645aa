// internal/browser/html/errors.go
package html

import (
	"errors"
	"fmt"
)

// ErrMalformedTag classifies every tokenizer failure.
var ErrMalformedTag = errors.New("malformed tag")

// SyntaxError reports where the tokenizer gave up.
type SyntaxError struct {
	State  State
	Char   rune // eof (-1) when the input ended
	Offset int  // byte offset of Char
}

func (e *SyntaxError) Error() string {
	if e.Char == eof {
		return fmt.Sprintf("html: %v: unexpected end of input in %s state at offset %d", ErrMalformedTag, e.State, e.Offset)
	}
	return fmt.Sprintf("html: %v: unexpected %q in %s state at offset %d", ErrMalformedTag, e.Char, e.State, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedTag }
