// internal/browser/style/engine.go
package style

import (
	"github.com/xkilldash9x/browsercore/internal/browser/parser"
	"go.uber.org/zap"
)

// Rule is a single-selector style rule as held by the store. A stylesheet
// rule with a selector list contributes one Rule per selector.
type Rule struct {
	Selector     string
	Declarations []parser.Declaration
	Specificity  Specificity

	parts []string // selector parts, rightmost first
}

// NewRule precomputes the matching data for selector.
func NewRule(selector string, declarations []parser.Declaration) Rule {
	return Rule{
		Selector:     selector,
		Declarations: declarations,
		Specificity:  CalculateSpecificity(selector),
		parts:        reversedParts(selector),
	}
}

// Matches reports whether the rule applies to el given its ancestors.
func (r Rule) Matches(el Element, ancestors []Element) bool {
	return matchParts(el, ancestors, r.parts)
}

// Value is one computed property value and the specificity of the rule that set it.
type Value struct {
	Value       string      `json:"value"`
	Specificity Specificity `json:"specificity"`
}

// ComputedStyle maps property names to their winning values.
type ComputedStyle map[string]Value

// Apply installs value unless the stored one is at least as specific.
// It reports whether the value was installed.
func (cs ComputedStyle) Apply(property, value string, specificity Specificity) bool {
	if current, ok := cs[property]; ok && !current.Specificity.Less(specificity) {
		return false
	}
	cs[property] = Value{Value: value, Specificity: specificity}
	return true
}

// Lookup returns the computed value for property, or fallback.
func (cs ComputedStyle) Lookup(property, fallback string) string {
	if v, ok := cs[property]; ok {
		return v.Value
	}
	return fallback
}

// Engine is the cascade: an ordered rule store plus the resolution step.
// One Engine belongs to one document build and is not safe for concurrent use.
type Engine struct {
	rules  []Rule
	logger *zap.Logger
}

// NewEngine creates an empty engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("style")}
}

// AddStylesheet appends the sheet's rules in parse order and returns how many
// store rules were added.
func (e *Engine) AddStylesheet(sheet parser.Stylesheet) int {
	added := 0
	for _, rule := range sheet.Rules {
		for _, selector := range rule.Selectors {
			e.rules = append(e.rules, NewRule(selector, rule.Declarations))
			added++
		}
	}
	e.logger.Debug("Registered style rules", zap.Int("added", added), zap.Int("total", len(e.rules)))
	return added
}

// AddCSS parses text and appends its rules.
func (e *Engine) AddCSS(text string) int {
	return e.AddStylesheet(parser.Parse(text))
}

// Rules returns a copy of the store in insertion order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Compute resolves the cascade for el against the rules currently stored.
// ancestors runs from the immediate parent outwards. Rules are visited in
// insertion order and a later rule only wins with strictly greater
// specificity. The result is merged into into, which may be nil.
func (e *Engine) Compute(el Element, ancestors []Element, into ComputedStyle) ComputedStyle {
	if into == nil {
		into = make(ComputedStyle)
	}
	for _, rule := range e.rules {
		if !rule.Matches(el, ancestors) {
			continue
		}
		for _, decl := range rule.Declarations {
			into.Apply(decl.Property, decl.Value, rule.Specificity)
		}
	}
	return into
}
