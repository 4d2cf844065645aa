// internal/browser/html/token.go
package html

import "fmt"

// TokenType tags the Token variants.
type TokenType int

const (
	EndOfInputToken TokenType = iota
	StartTagToken
	EndTagToken
	TextToken
)

func (t TokenType) String() string {
	switch t {
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case TextToken:
		return "Text"
	default:
		return "EndOfInput"
	}
}

// Attribute is a name/value pair on a start tag.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Token is one lexical unit. Name is set for tags, Data for text.
// Attributes keep first-appearance order with unique names; a repeated
// name overwrites the earlier value.
type Token struct {
	Type        TokenType
	Name        string
	Attributes  []Attribute
	SelfClosing bool
	Data        string
}

// Attribute returns the value of the named attribute.
func (t Token) Attribute(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t *Token) setAttribute(name, value string) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			t.Attributes[i].Value = value
			return
		}
	}
	t.Attributes = append(t.Attributes, Attribute{Name: name, Value: value})
}

func (t Token) String() string {
	switch t.Type {
	case StartTagToken:
		s := "<" + t.Name
		for _, a := range t.Attributes {
			s += fmt.Sprintf(" %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			s += "/"
		}
		return s + ">"
	case EndTagToken:
		return "</" + t.Name + ">"
	case TextToken:
		return t.Data
	default:
		return "EOF"
	}
}
