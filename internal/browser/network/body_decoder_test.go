// internal/browser/network/body_decoder_test.go
package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, d BodyDecoder, data string) error {
	t.Helper()
	for i := 0; i < len(data); i++ {
		if err := d.ReceiveByte(data[i]); err != nil {
			return err
		}
	}
	return nil
}

func TestChunkedDecoder(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		content  string
		finished bool
	}{
		{name: "single chunk", input: "2\r\nok\r\n0\r\n\r\n", content: "ok", finished: true},
		{name: "two chunks", input: "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n", content: "Wikipedia", finished: true},
		{name: "hex length", input: "a\r\n0123456789\r\n0\r\n", content: "0123456789", finished: true},
		{name: "uppercase hex", input: "B\r\nhello world\r\n0\r\n", content: "hello world", finished: true},
		{name: "multi digit length", input: "10\r\n0123456789abcdef\r\n0\r\n", content: "0123456789abcdef", finished: true},
		{name: "data may contain CRLF", input: "4\r\na\r\nb\r\n0\r\n", content: "a\r\nb", finished: true},
		{name: "empty body", input: "0\r\n\r\n", content: "", finished: true},
		{name: "partial", input: "5\r\nhel", content: "hel", finished: false},
		{name: "trailing bytes ignored", input: "1\r\nx\r\n0\r\n\r\ngarbage", content: "x", finished: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewChunkedDecoder()
			require.NoError(t, feed(t, d, tc.input))
			assert.Equal(t, tc.content, string(d.Content()))
			assert.Equal(t, tc.finished, d.Finished())
			assert.Equal(t, DecoderChunked, d.Kind())
		})
	}
}

func TestChunkedDecoder_FinishesOnTerminatorCR(t *testing.T) {
	d := NewChunkedDecoder()
	require.NoError(t, feed(t, d, "2\r\nok\r\n0"))
	assert.False(t, d.Finished())
	require.NoError(t, d.ReceiveByte('\r'))
	assert.True(t, d.Finished())
}

func TestChunkedDecoder_MalformedLength(t *testing.T) {
	d := NewChunkedDecoder()
	err := feed(t, d, "zz\r\n")
	require.ErrorIs(t, err, ErrMalformedChunkLength)

	// The failure is sticky.
	assert.ErrorIs(t, d.ReceiveByte('1'), ErrMalformedChunkLength)
	assert.False(t, d.Finished())
}

func TestChunkedDecoder_LengthOverflow(t *testing.T) {
	d := NewChunkedDecoder()
	err := feed(t, d, "ffffffffffffffffff\r\n")
	assert.ErrorIs(t, err, ErrMalformedChunkLength)
}

func TestLengthDecoder(t *testing.T) {
	d := NewLengthDecoder(5)
	require.NoError(t, feed(t, d, "hel"))
	assert.False(t, d.Finished())
	require.NoError(t, feed(t, d, "lo, world"))
	assert.True(t, d.Finished())
	assert.Equal(t, "hello", string(d.Content()))
	assert.Equal(t, DecoderLength, d.Kind())
}

func TestLengthDecoder_Zero(t *testing.T) {
	d := NewLengthDecoder(0)
	assert.True(t, d.Finished())
	assert.Empty(t, d.Content())
}

func TestUnsupportedDecoder(t *testing.T) {
	d := &UnsupportedDecoder{Reason: "transfer-encoding \"gzip\""}
	assert.False(t, d.Finished())
	assert.Equal(t, DecoderUnsupported, d.Kind())
	err := d.ReceiveByte('x')
	assert.ErrorIs(t, err, ErrUnsupportedBodyEncoding)
	assert.Contains(t, err.Error(), "gzip")
}

func TestDecoderKind_String(t *testing.T) {
	assert.Equal(t, "chunked", DecoderChunked.String())
	assert.Equal(t, "content-length", DecoderLength.String())
	assert.Equal(t, "unsupported", DecoderUnsupported.String())
}
