// internal/browser/network/body_encoding.go
package network

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// json mirrors JSON.stringify output: no HTML escaping, deterministic map keys.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// encodeJSONBody writes the body as a JSON object whose keys follow field order.
// A later field with a repeated name is emitted again, as it would be by a
// streaming encoder; callers that need uniqueness should not repeat names.
func encodeJSONBody(body Body) (string, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, f := range body {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.Name)
		stream.WriteVal(f.Value)
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return "", fmt.Errorf("failed to encode JSON body: %w", stream.Error)
	}
	return string(stream.Buffer()), nil
}

// encodeFormBody joins key=percentEncode(value) pairs with '&'. Keys are written as-is.
func encodeFormBody(body Body) string {
	parts := make([]string, 0, len(body))
	for _, f := range body {
		parts = append(parts, f.Name+"="+PercentEncode(formValue(f.Value)))
	}
	return strings.Join(parts, "&")
}

func formValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes s the way encodeURIComponent does: everything except
// A-Z a-z 0-9 and -_.!~*'() is written as %XX over its UTF-8 bytes.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
