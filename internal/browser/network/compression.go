// internal/browser/network/compression.go
package network

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
)

// Pools for decompression readers to reduce allocation overhead.
var (
	gzipReaderPool = sync.Pool{
		New: func() interface{} {
			// Reset() is always called before use.
			return new(gzip.Reader)
		},
	}

	brotliReaderPool = sync.Pool{
		New: func() interface{} {
			return brotli.NewReader(nil)
		},
	}
)

// emptyReader resets pooled readers; gzip.Reset(nil) is not safe on every Go version.
var emptyReader = strings.NewReader("")

func getGzipReader(r io.Reader) (*gzip.Reader, error) {
	zr := gzipReaderPool.Get().(*gzip.Reader)
	if err := zr.Reset(r); err != nil {
		gzipReaderPool.Put(zr)
		return nil, err
	}
	return zr, nil
}

func putGzipReader(zr *gzip.Reader) {
	if zr == nil {
		return
	}
	_ = zr.Reset(emptyReader)
	gzipReaderPool.Put(zr)
}

func getBrotliReader(r io.Reader) (*brotli.Reader, error) {
	br := brotliReaderPool.Get().(*brotli.Reader)
	if err := br.Reset(r); err != nil {
		brotliReaderPool.Put(br)
		return nil, err
	}
	return br, nil
}

func putBrotliReader(br *brotli.Reader) {
	if br == nil {
		return
	}
	_ = br.Reset(emptyReader)
	brotliReaderPool.Put(br)
}

// Decompress undoes a Content-Encoding header value. Codings are listed in
// the order they were applied, so they are removed right to left.
// Supported: gzip, deflate (zlib or raw), br, identity.
func Decompress(body []byte, contentEncoding string) ([]byte, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, nil
	}

	codings := strings.Split(contentEncoding, ",")
	out := body
	for i := len(codings) - 1; i >= 0; i-- {
		coding := strings.ToLower(strings.TrimSpace(codings[i]))
		var err error
		switch coding {
		case "identity", "":
			continue
		case "gzip", "x-gzip":
			out, err = gunzip(out)
		case "deflate":
			out, err = inflate(out)
		case "br":
			out, err = unbrotli(out)
		default:
			return nil, fmt.Errorf("unsupported Content-Encoding layer: %s", coding)
		}
		if err != nil {
			return nil, fmt.Errorf("%s decoding failed: %w", coding, err)
		}
	}
	return out, nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := getGzipReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer putGzipReader(zr)
	return io.ReadAll(zr)
}

func unbrotli(data []byte) ([]byte, error) {
	br, err := getBrotliReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer putBrotliReader(br)
	return io.ReadAll(br)
}

// inflate tries zlib (RFC 1950) first and falls back to raw deflate (RFC 1951),
// since servers disagree on what "deflate" means.
func inflate(data []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		defer zr.Close()
		if out, err := io.ReadAll(zr); err == nil {
			return out, nil
		}
	}
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return io.ReadAll(fr)
}
