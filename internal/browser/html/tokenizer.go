// internal/browser/html/tokenizer.go
package html

import (
	"fmt"
	"unicode/utf8"
)

// State is the tokenizer's lexical state.
type State int

const (
	StateData State = iota
	StateTagOpen
	StateEndTagOpen
	StateTagName
	StateBeforeAttributeName
	StateAttributeName
	StateAfterAttributeName
	StateBeforeAttributeValue
	StateDoubleQuotedAttributeValue
	StateSingleQuotedAttributeValue
	StateAfterQuotedAttributeValue
	StateUnquotedAttributeValue
	StateSelfClosingStartTag
)

var stateNames = [...]string{
	StateData:                       "data",
	StateTagOpen:                    "tag-open",
	StateEndTagOpen:                 "end-tag-open",
	StateTagName:                    "tag-name",
	StateBeforeAttributeName:        "before-attribute-name",
	StateAttributeName:              "attribute-name",
	StateAfterAttributeName:         "after-attribute-name",
	StateBeforeAttributeValue:       "before-attribute-value",
	StateDoubleQuotedAttributeValue: "double-quoted-attribute-value",
	StateSingleQuotedAttributeValue: "single-quoted-attribute-value",
	StateAfterQuotedAttributeValue:  "after-quoted-attribute-value",
	StateUnquotedAttributeValue:     "unquoted-attribute-value",
	StateSelfClosingStartTag:        "self-closing-start-tag",
}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// eof is fed to the state machine once the input is exhausted.
const eof rune = -1

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isASCIILetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Tokenizer turns document text into tokens one character at a time.
// Text is emitted one character per token. Each instance holds its own state;
// independent tokenizers may run concurrently.
type Tokenizer struct {
	input  string
	offset int
	state  State

	tok  *Token
	attr *Attribute

	pending []Token
	err     error
	done    bool
}

// NewTokenizer returns a tokenizer in the data state.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, state: StateData}
}

// State returns the current lexical state.
func (z *Tokenizer) State() State { return z.state }

// Next returns the next token. After EndOfInput has been returned every
// further call returns EndOfInput again. A malformed tag stops the tokenizer
// and the same *SyntaxError is returned from then on.
func (z *Tokenizer) Next() (Token, error) {
	for len(z.pending) == 0 {
		if z.err != nil {
			return Token{}, z.err
		}
		if z.done {
			return Token{Type: EndOfInputToken}, nil
		}

		c, size := eof, 0
		if z.offset < len(z.input) {
			c, size = utf8.DecodeRuneInString(z.input[z.offset:])
		}
		z.consume(c)
		z.offset += size
	}

	tok := z.pending[0]
	z.pending = z.pending[1:]
	return tok, nil
}

// All drains the tokenizer, including the final EndOfInput token.
func (z *Tokenizer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := z.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EndOfInputToken {
			return tokens, nil
		}
	}
}

// consume runs c through the transition function until it is not reconsumed.
func (z *Tokenizer) consume(c rune) {
	for z.step(c) {
	}
}

func (z *Tokenizer) emit(tok Token) {
	z.pending = append(z.pending, tok)
}

func (z *Tokenizer) emitCurrent() {
	z.emit(*z.tok)
	z.tok = nil
	z.attr = nil
	z.state = StateData
}

func (z *Tokenizer) endOfInput() {
	z.tok = nil
	z.attr = nil
	z.done = true
	z.emit(Token{Type: EndOfInputToken})
}

func (z *Tokenizer) fail(c rune) {
	z.err = &SyntaxError{State: z.state, Char: c, Offset: z.offset}
}

func (z *Tokenizer) startAttribute() {
	z.attr = &Attribute{}
}

// commitAttribute writes the in-progress attribute into the token. Committing
// the same attribute twice is harmless.
func (z *Tokenizer) commitAttribute() {
	if z.attr == nil || z.attr.Name == "" {
		return
	}
	z.tok.setAttribute(z.attr.Name, z.attr.Value)
}

// step performs one transition and reports whether c must be reconsumed in
// the new state.
func (z *Tokenizer) step(c rune) bool {
	switch z.state {
	case StateData:
		switch {
		case c == '<':
			z.state = StateTagOpen
		case c == eof:
			z.endOfInput()
		default:
			z.emit(Token{Type: TextToken, Data: string(c)})
		}

	case StateTagOpen:
		switch {
		case c == '/':
			z.state = StateEndTagOpen
		case isASCIILetter(c):
			z.tok = &Token{Type: StartTagToken}
			z.state = StateTagName
			return true
		default:
			z.fail(c)
		}

	case StateEndTagOpen:
		if isASCIILetter(c) {
			z.tok = &Token{Type: EndTagToken}
			z.state = StateTagName
			return true
		}
		z.fail(c)

	case StateTagName:
		switch {
		case isSpace(c):
			z.state = StateBeforeAttributeName
		case c == '/':
			z.state = StateSelfClosingStartTag
		case isASCIILetter(c):
			z.tok.Name += string(c)
		case c == '>':
			z.emitCurrent()
		case c == eof:
			z.endOfInput()
		default:
			// Anything else is dropped from the name.
		}

	case StateBeforeAttributeName:
		switch {
		case isSpace(c), c == '=':
		case c == '/', c == '>', c == eof:
			z.state = StateAfterAttributeName
			return true
		default:
			z.startAttribute()
			z.state = StateAttributeName
			return true
		}

	case StateAttributeName:
		switch {
		case isSpace(c), c == '/', c == '>', c == eof:
			z.state = StateAfterAttributeName
			return true
		case c == '=':
			z.state = StateBeforeAttributeValue
		case c == 0, c == '"', c == '\'', c == '<':
		default:
			z.attr.Name += string(c)
		}

	case StateAfterAttributeName:
		switch {
		case isSpace(c):
		case c == '/':
			z.commitAttribute()
			z.state = StateSelfClosingStartTag
		case c == '=':
			z.state = StateBeforeAttributeValue
		case c == '>':
			z.commitAttribute()
			z.emitCurrent()
		case c == eof:
			z.endOfInput()
		default:
			z.commitAttribute()
			z.startAttribute()
			z.state = StateAttributeName
			return true
		}

	case StateBeforeAttributeValue:
		switch {
		case isSpace(c), c == '/':
		case c == '>':
			z.commitAttribute()
			z.emitCurrent()
		case c == eof:
			z.endOfInput()
		case c == '"':
			z.state = StateDoubleQuotedAttributeValue
		case c == '\'':
			z.state = StateSingleQuotedAttributeValue
		default:
			z.state = StateUnquotedAttributeValue
			return true
		}

	case StateDoubleQuotedAttributeValue, StateSingleQuotedAttributeValue:
		quote := '"'
		if z.state == StateSingleQuotedAttributeValue {
			quote = '\''
		}
		switch c {
		case quote:
			z.commitAttribute()
			z.state = StateAfterQuotedAttributeValue
		case 0:
		case eof:
			z.endOfInput()
		default:
			z.attr.Value += string(c)
		}

	case StateAfterQuotedAttributeValue:
		switch {
		case isSpace(c):
			z.state = StateBeforeAttributeName
		case c == '/':
			z.state = StateSelfClosingStartTag
		case c == '>':
			z.commitAttribute()
			z.emitCurrent()
		case c == eof:
			z.endOfInput()
		default:
			// The value resumes as double quoted whatever quote opened it.
			z.attr.Value += string(c)
			z.state = StateDoubleQuotedAttributeValue
		}

	case StateUnquotedAttributeValue:
		switch {
		case isSpace(c):
			z.commitAttribute()
			z.state = StateBeforeAttributeName
		case c == '/':
			z.commitAttribute()
			z.state = StateSelfClosingStartTag
		case c == '>':
			z.commitAttribute()
			z.emitCurrent()
		case c == eof:
			z.endOfInput()
		case c == 0, c == '"', c == '\'', c == '<', c == '=', c == '`':
		default:
			z.attr.Value += string(c)
		}

	case StateSelfClosingStartTag:
		switch c {
		case '>':
			z.tok.SelfClosing = true
			z.emitCurrent()
		case eof:
			z.endOfInput()
		default:
			z.state = StateBeforeAttributeName
			return true
		}
	}
	return false
}

// Tokenize runs a fresh tokenizer over input.
func Tokenize(input string) ([]Token, error) {
	return NewTokenizer(input).All()
}
