// internal/browser/parser/css.go
package parser

import (
	"strings"
)

// Declaration is a property/value pair (e.g., color: red).
type Declaration struct {
	Property string
	Value    string
}

// Rule is one rule set: its comma-separated selector list and its declarations
// in source order. Selectors are kept as text with whitespace collapsed.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Stylesheet is the ordered list of rules parsed from one style block.
type Stylesheet struct {
	Rules []Rule
}

// Parse turns stylesheet text into rules. It never fails: comments, at-rules
// and rules without a usable selector or declaration are skipped.
func Parse(text string) Stylesheet {
	return NewParser(text).Parse()
}

// Parser holds the state of the CSS parser.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input, pos: 0}
}

// Parse consumes the whole input.
func (p *Parser) Parse() Stylesheet {
	var rules []Rule
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}
		if p.currentChar() == '@' {
			p.skipAtRule()
			continue
		}
		if p.currentChar() == '}' {
			// Stray close brace.
			p.consumeChar()
			continue
		}

		selectors := p.parseSelectors()
		if p.eof() {
			break
		}
		declarations := p.parseDeclarations()
		if len(selectors) > 0 && len(declarations) > 0 {
			rules = append(rules, Rule{Selectors: selectors, Declarations: declarations})
		}
	}
	return Stylesheet{Rules: rules}
}

// parseSelectors reads up to the opening brace and splits the prelude on commas.
func (p *Parser) parseSelectors() []string {
	var prelude strings.Builder
	for !p.eof() && p.currentChar() != '{' {
		if p.startsWith("/*") {
			p.skipComment()
			prelude.WriteByte(' ')
			continue
		}
		prelude.WriteByte(p.consumeChar())
	}

	var selectors []string
	for _, part := range strings.Split(prelude.String(), ",") {
		if sel := strings.Join(strings.Fields(part), " "); sel != "" {
			selectors = append(selectors, sel)
		}
	}
	return selectors
}

// parseDeclarations parses the content within { ... }.
func (p *Parser) parseDeclarations() []Declaration {
	if p.eof() || p.currentChar() != '{' {
		return nil
	}
	p.consumeChar() // Consume '{'

	var declarations []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '}' {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}
		if p.currentChar() == ';' {
			p.consumeChar()
			continue
		}

		property, value := p.parseDeclaration()
		if property != "" && value != "" {
			declarations = append(declarations, Declaration{
				Property: strings.ToLower(property),
				Value:    value,
			})
		}
	}

	if !p.eof() && p.currentChar() == '}' {
		p.consumeChar() // Consume '}'
	}
	return declarations
}

// parseDeclaration parses a single 'property: value;' pair.
func (p *Parser) parseDeclaration() (prop, val string) {
	if !isValidIdentifierStart(p.currentChar()) {
		p.skipDeclaration()
		return "", ""
	}
	prop = p.parseIdentifier()
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ':' {
		p.skipDeclaration()
		return "", ""
	}
	p.consumeChar()
	p.consumeWhitespace()

	val = p.parseValue()

	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
	return prop, val
}

func (p *Parser) skipDeclaration() {
	p.skipTo(';', '}')
	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
}

// parseValue reads a CSS value until a delimiter. Quoted strings and
// parenthesized groups may contain delimiters.
func (p *Parser) parseValue() string {
	start := p.pos
	for !p.eof() {
		ch := p.currentChar()
		if ch == ';' || ch == '}' {
			break
		}
		if ch == '"' || ch == '\'' {
			p.skipQuotedString(ch)
			continue
		}
		if ch == '(' {
			p.consumeChar()
			p.skipBlock('(', ')')
			continue
		}
		p.pos++
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

// --- Lexer-like Helpers ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) startsWith(s string) bool {
	if p.pos+len(s) > len(p.input) {
		return false
	}
	return p.input[p.pos:p.pos+len(s)] == s
}

func (p *Parser) skipComment() {
	p.pos += 2
	endIndex := strings.Index(p.input[p.pos:], "*/")
	if endIndex == -1 {
		p.pos = len(p.input)
	} else {
		p.pos += endIndex + 2
	}
}

func (p *Parser) skipTo(targets ...byte) {
	for !p.eof() {
		ch := p.currentChar()
		for _, target := range targets {
			if ch == target {
				return
			}
		}
		p.pos++
	}
}

// skipBlock assumes the opening delimiter was already consumed.
func (p *Parser) skipBlock(open, close byte) {
	depth := 1
	for !p.eof() {
		c := p.consumeChar()
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) skipQuotedString(quote byte) {
	p.consumeChar() // Consume opening quote
	for !p.eof() {
		ch := p.consumeChar()
		if ch == '\\' {
			p.consumeChar() // Skip escaped character
		} else if ch == quote {
			return
		}
	}
}

func (p *Parser) skipAtRule() {
	p.consumeChar() // Consume '@'
	_ = p.parseIdentifier()
	for !p.eof() {
		ch := p.currentChar()
		if ch == '{' {
			p.consumeChar()
			p.skipBlock('{', '}')
			return
		}
		if ch == ';' {
			p.consumeChar()
			return
		}
		p.pos++
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isValidIdentifierChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isValidIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isValidIdentifierChar(ch byte) bool {
	return isValidIdentifierStart(ch) || (ch >= '0' && ch <= '9')
}
