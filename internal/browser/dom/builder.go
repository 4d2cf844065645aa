// internal/browser/dom/builder.go
package dom

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/browser/html"
	"github.com/xkilldash9x/browsercore/internal/browser/style"
)

// styleTag is the element whose text is registered as a stylesheet when it closes.
const styleTag = "style"

// Builder assembles a Node tree from tokens using an explicit open-element
// stack, and computes each element's style when its start tag arrives. Rules
// are only visible to elements that start after the closing </style>.
// A Builder serves one document and is not safe for concurrent use.
type Builder struct {
	doc    *Node
	stack  []*Node // open elements; stack[0] is the document
	engine *style.Engine
	logger *zap.Logger

	text    *Node // text node being filled, nil at tag boundaries
	textBuf strings.Builder

	done bool
	err  error
}

// NewBuilder creates a builder. A nil engine gets a fresh, empty one.
func NewBuilder(engine *style.Engine, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = style.NewEngine(logger)
	}
	doc := NewDocument()
	return &Builder{
		doc:    doc,
		stack:  []*Node{doc},
		engine: engine,
		logger: logger.Named("dom"),
	}
}

// Document returns the root. It is complete once EndOfInput has been emitted.
func (b *Builder) Document() *Node {
	b.flushText()
	return b.doc
}

// Engine returns the cascade holding the rules seen so far.
func (b *Builder) Engine() *style.Engine { return b.engine }

// OpenElements returns the elements still open, outermost first.
func (b *Builder) OpenElements() []*Node {
	out := make([]*Node, len(b.stack)-1)
	copy(out, b.stack[1:])
	return out
}

// Done reports whether EndOfInput has been received.
func (b *Builder) Done() bool { return b.done }

func (b *Builder) top() *Node { return b.stack[len(b.stack)-1] }

// ancestors returns the open elements innermost first, as the matcher wants them.
func (b *Builder) ancestors() []style.Element {
	out := make([]style.Element, 0, len(b.stack)-1)
	for i := len(b.stack) - 1; i >= 1; i-- {
		out = append(out, b.stack[i])
	}
	return out
}

// Emit applies one token. A tag mismatch is fatal: it is returned for this
// and every later call and the partial tree must not be used.
func (b *Builder) Emit(tok html.Token) error {
	if b.err != nil {
		return b.err
	}
	if b.done {
		return nil
	}

	switch tok.Type {
	case html.StartTagToken:
		b.startTag(tok)
	case html.EndTagToken:
		if err := b.endTag(tok); err != nil {
			b.err = err
			return err
		}
	case html.TextToken:
		b.appendText(tok.Data)
	case html.EndOfInputToken:
		b.resetText()
		b.done = true
		if open := len(b.stack) - 1; open > 0 {
			b.logger.Debug("Input ended with open elements", zap.Int("open", open), zap.String("innermost", b.top().Name))
		}
	}
	return nil
}

func (b *Builder) startTag(tok html.Token) {
	b.resetText()

	el := &Node{
		Type:        ElementNode,
		Name:        tok.Name,
		SelfClosing: tok.SelfClosing,
	}
	if len(tok.Attributes) > 0 {
		el.Attributes = make([]html.Attribute, len(tok.Attributes))
		copy(el.Attributes, tok.Attributes)
	}
	el.ComputedStyle = b.engine.Compute(el, b.ancestors(), nil)

	b.top().AppendChild(el)
	if !tok.SelfClosing {
		b.stack = append(b.stack, el)
	}
}

func (b *Builder) endTag(tok html.Token) error {
	b.resetText()

	top := b.top()
	if top.Type != ElementNode || top.Name != tok.Name {
		err := &TagMismatchError{Expected: top.TagName(), Got: tok.Name}
		b.logger.Debug("Tag mismatch", zap.String("expected", err.Expected), zap.String("got", err.Got))
		return err
	}

	if top.Name == styleTag && len(top.Children) > 0 && top.Children[0].Type == TextNode {
		added := b.engine.AddCSS(top.Children[0].Content)
		b.logger.Debug("Registered style block", zap.Int("rules", added))
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *Builder) appendText(data string) {
	if b.text == nil {
		b.text = &Node{Type: TextNode}
		b.top().AppendChild(b.text)
	}
	b.textBuf.WriteString(data)
}

func (b *Builder) flushText() {
	if b.text != nil && b.textBuf.Len() > 0 {
		b.text.Content += b.textBuf.String()
		b.textBuf.Reset()
	}
}

// resetText closes the current text node; the next text starts a new one.
func (b *Builder) resetText() {
	b.flushText()
	b.text = nil
}

// Build drains z into the builder and returns the document.
func (b *Builder) Build(z *html.Tokenizer) (*Node, error) {
	for !b.done {
		tok, err := z.Next()
		if err != nil {
			return nil, err
		}
		if err := b.Emit(tok); err != nil {
			return nil, err
		}
	}
	return b.Document(), nil
}

// Parse tokenizes and builds input with a fresh builder and style engine.
func Parse(input string, logger *zap.Logger) (*Node, error) {
	return NewBuilder(nil, logger).Build(html.NewTokenizer(input))
}
