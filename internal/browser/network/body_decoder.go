// internal/browser/network/body_decoder.go
package network

import (
	"bytes"
	"fmt"
	"math"
)

// DecoderKind tags the BodyDecoder variants.
type DecoderKind int

const (
	DecoderUnsupported DecoderKind = iota
	DecoderChunked
	DecoderLength
)

func (k DecoderKind) String() string {
	switch k {
	case DecoderChunked:
		return "chunked"
	case DecoderLength:
		return "content-length"
	default:
		return "unsupported"
	}
}

// BodyDecoder consumes a response body one byte at a time. The set of
// implementations is closed: Chunked, Length and Unsupported.
type BodyDecoder interface {
	Kind() DecoderKind
	// ReceiveByte feeds one body byte. Bytes after Finished are ignored.
	ReceiveByte(c byte) error
	Finished() bool
	Content() []byte
	sealed()
}

// -- Chunked --

type chunkState int

const (
	chunkLength       chunkState = iota // accumulating hex digits
	chunkLengthLF                       // saw CR after the length, waiting for LF
	chunkData                           // reading chunk bytes
	chunkDataCR                         // waiting for the CR after chunk data
	chunkDataLF                         // waiting for the LF after chunk data
)

// ChunkedDecoder decodes Transfer-Encoding: chunked. A zero-length chunk
// finishes the decoder as soon as its CR is read; the trailing CRLF and any
// trailers are never inspected.
type ChunkedDecoder struct {
	state    chunkState
	length   int64
	content  bytes.Buffer
	finished bool
	err      error
}

// NewChunkedDecoder returns a decoder waiting for the first chunk length.
func NewChunkedDecoder() *ChunkedDecoder {
	return &ChunkedDecoder{state: chunkLength}
}

func (d *ChunkedDecoder) Kind() DecoderKind { return DecoderChunked }
func (d *ChunkedDecoder) Finished() bool    { return d.finished }
func (d *ChunkedDecoder) Content() []byte   { return d.content.Bytes() }
func (d *ChunkedDecoder) sealed()           {}

// ReceiveByte advances the chunk state machine.
func (d *ChunkedDecoder) ReceiveByte(c byte) error {
	if d.err != nil {
		return d.err
	}
	if d.finished {
		return nil
	}

	switch d.state {
	case chunkLength:
		if c == '\r' {
			if d.length == 0 {
				d.finished = true
				return nil
			}
			d.state = chunkLengthLF
			return nil
		}
		v, ok := hexValue(c)
		if !ok || d.length > (math.MaxInt64-15)/16 {
			d.err = fmt.Errorf("%w: unexpected byte %q", ErrMalformedChunkLength, c)
			return d.err
		}
		d.length = d.length*16 + int64(v)
	case chunkLengthLF:
		if c == '\n' {
			d.state = chunkData
		}
	case chunkData:
		d.content.WriteByte(c)
		d.length--
		if d.length == 0 {
			d.state = chunkDataCR
		}
	case chunkDataCR:
		if c == '\r' {
			d.state = chunkDataLF
		}
	case chunkDataLF:
		if c == '\n' {
			d.length = 0
			d.state = chunkLength
		}
	}
	return nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// -- Content-Length --

// LengthDecoder reads exactly n bytes.
type LengthDecoder struct {
	remaining int64
	content   bytes.Buffer
}

// NewLengthDecoder returns a decoder for a body of n bytes. n == 0 is finished immediately.
func NewLengthDecoder(n int64) *LengthDecoder {
	d := &LengthDecoder{remaining: n}
	if n > 0 && n < 1<<20 {
		d.content.Grow(int(n))
	}
	return d
}

func (d *LengthDecoder) Kind() DecoderKind { return DecoderLength }
func (d *LengthDecoder) Finished() bool    { return d.remaining <= 0 }
func (d *LengthDecoder) Content() []byte   { return d.content.Bytes() }
func (d *LengthDecoder) sealed()           {}

func (d *LengthDecoder) ReceiveByte(c byte) error {
	if d.remaining <= 0 {
		return nil
	}
	d.content.WriteByte(c)
	d.remaining--
	return nil
}

// -- Unsupported --

// UnsupportedDecoder is installed when the response carries no framing the
// parser can follow. Any body byte is an error.
type UnsupportedDecoder struct {
	// Reason names the offending framing, e.g. the Transfer-Encoding value.
	Reason string
}

func (d *UnsupportedDecoder) Kind() DecoderKind { return DecoderUnsupported }
func (d *UnsupportedDecoder) Finished() bool    { return false }
func (d *UnsupportedDecoder) Content() []byte   { return nil }
func (d *UnsupportedDecoder) sealed()           {}

func (d *UnsupportedDecoder) ReceiveByte(byte) error {
	return d.Err()
}

// Err describes why the body cannot be decoded.
func (d *UnsupportedDecoder) Err() error {
	if d.Reason == "" {
		return ErrUnsupportedBodyEncoding
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedBodyEncoding, d.Reason)
}
