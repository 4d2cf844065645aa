// internal/browser/network/headers.go
package network

import "strings"

// Header is a single name/value pair as it appears on the wire.
type Header struct {
	Name  string
	Value string
}

// Headers is an insertion-ordered header mapping. Names keep the case they
// were set with; lookups are case-insensitive. Setting an existing name
// replaces its value in place, so the original position is kept.
type Headers struct {
	fields []Header
}

// NewHeaders builds a mapping from pairs, applying them in order.
func NewHeaders(pairs ...Header) *Headers {
	h := &Headers{}
	for _, p := range pairs {
		h.Set(p.Name, p.Value)
	}
	return h
}

func (h *Headers) index(name string) int {
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value for name and whether it was present.
func (h *Headers) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	if i := h.index(name); i >= 0 {
		return h.fields[i].Value, true
	}
	return "", false
}

// Value returns the value for name, or "" when absent.
func (h *Headers) Value(name string) string {
	v, _ := h.Get(name)
	return v
}

// Has reports whether name is present.
func (h *Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Set installs value under name. Last write wins.
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].Value = value
		return
	}
	h.fields = append(h.fields, Header{Name: name, Value: value})
}

// Del removes name if present.
func (h *Headers) Del(name string) {
	if i := h.index(name); i >= 0 {
		h.fields = append(h.fields[:i], h.fields[i+1:]...)
	}
}

// Len returns the number of distinct headers.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.fields)
}

// Fields returns a copy of the pairs in insertion order.
func (h *Headers) Fields() []Header {
	if h == nil {
		return nil
	}
	out := make([]Header, len(h.fields))
	copy(out, h.fields)
	return out
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	return &Headers{fields: h.Fields()}
}

// Map flattens the headers for callers that do not care about order.
func (h *Headers) Map() map[string]string {
	m := make(map[string]string, h.Len())
	for _, f := range h.Fields() {
		m[f.Name] = f.Value
	}
	return m
}
