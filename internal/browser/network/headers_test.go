// internal/browser/network/headers_test.go
package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaders_CaseInsensitiveLookup(t *testing.T) {
	h := NewHeaders(Header{Name: "Content-Type", Value: "text/html"})

	v, ok := h.Get("content-type")
	assert.True(t, ok)
	assert.Equal(t, "text/html", v)
	assert.True(t, h.Has("CONTENT-TYPE"))
	assert.False(t, h.Has("Content-Length"))
	assert.Equal(t, "", h.Value("Missing"))
}

func TestHeaders_SetKeepsPosition(t *testing.T) {
	h := NewHeaders(
		Header{Name: "A", Value: "1"},
		Header{Name: "B", Value: "2"},
		Header{Name: "C", Value: "3"},
	)
	h.Set("b", "updated")

	assert.Equal(t, []Header{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "updated"},
		{Name: "C", Value: "3"},
	}, h.Fields())
}

func TestHeaders_Del(t *testing.T) {
	h := NewHeaders(Header{Name: "A", Value: "1"}, Header{Name: "B", Value: "2"})
	h.Del("a")
	h.Del("missing")

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "B", h.Fields()[0].Name)
}

func TestHeaders_CloneIsIndependent(t *testing.T) {
	h := NewHeaders(Header{Name: "A", Value: "1"})
	c := h.Clone()
	c.Set("A", "2")
	c.Set("B", "3")

	assert.Equal(t, "1", h.Value("A"))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, map[string]string{"A": "2", "B": "3"}, c.Map())
}

func TestHeaders_NilSafe(t *testing.T) {
	var h *Headers
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Has("A"))
	assert.Nil(t, h.Fields())
	assert.Equal(t, 0, h.Clone().Len())
}
