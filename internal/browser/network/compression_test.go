// internal/browser/network/compression_test.go
package network

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = "<html><body><p>compressed</p></body></html>"

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func rawDeflateBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func brotliBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	plain := []byte(samplePage)

	testCases := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "no encoding", encoding: "", body: plain},
		{name: "identity", encoding: "identity", body: plain},
		{name: "gzip", encoding: "gzip", body: gzipBytes(t, plain)},
		{name: "x-gzip mixed case", encoding: "X-GZIP", body: gzipBytes(t, plain)},
		{name: "deflate zlib", encoding: "deflate", body: zlibBytes(t, plain)},
		{name: "deflate raw", encoding: "deflate", body: rawDeflateBytes(t, plain)},
		{name: "brotli", encoding: "br", body: brotliBytes(t, plain)},
		{name: "stacked", encoding: "gzip, br", body: brotliBytes(t, gzipBytes(t, plain))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Decompress(tc.body, tc.encoding)
			require.NoError(t, err)
			assert.Equal(t, samplePage, string(out))
		})
	}
}

func TestDecompress_PoolReuse(t *testing.T) {
	body := gzipBytes(t, []byte(samplePage))
	for i := 0; i < 5; i++ {
		out, err := Decompress(body, "gzip")
		require.NoError(t, err)
		assert.Equal(t, samplePage, string(out))
	}
}

func TestDecompress_Errors(t *testing.T) {
	_, err := Decompress([]byte("x"), "compress")
	assert.ErrorContains(t, err, "unsupported Content-Encoding")

	_, err = Decompress([]byte("not gzip"), "gzip")
	assert.ErrorContains(t, err, "gzip decoding failed")
}

func TestResponse_DecodedBody(t *testing.T) {
	resp := &Response{
		StatusCode: 200,
		StatusText: "OK",
		Headers:    NewHeaders(Header{Name: "Content-Encoding", Value: "gzip"}),
		Body:       string(gzipBytes(t, []byte(samplePage))),
	}
	out, err := resp.DecodedBody()
	require.NoError(t, err)
	assert.Equal(t, samplePage, string(out))
}
