// internal/browser/network/errors.go
package network

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHost is returned by Build when no host is configured.
	ErrMissingHost = errors.New("request host is required")
	// ErrUnsupportedContentType is returned when a body cannot be serialized for the
	// configured Content-Type and no raw body was supplied.
	ErrUnsupportedContentType = errors.New("unsupported content type for request body")
	// ErrUnsupportedBodyEncoding is returned when a response body arrives without
	// a framing the parser understands (no chunked encoding, no Content-Length).
	ErrUnsupportedBodyEncoding = errors.New("unsupported response body encoding")
	// ErrMalformedChunkLength is returned when a chunk size line contains a non-hex character.
	ErrMalformedChunkLength = errors.New("malformed chunk length")
	// ErrMalformedContentLength is returned for a Content-Length header that is not a non-negative integer.
	ErrMalformedContentLength = errors.New("malformed content length")
	// ErrMalformedStatusLine is returned when the status line does not match "HTTP/1.1 <code> <text>".
	ErrMalformedStatusLine = errors.New("malformed status line")
	// ErrIncompleteResponse is returned when a response is read before the parser finished.
	ErrIncompleteResponse = errors.New("response is incomplete")
	// ErrConnectionFailure classifies every connection level failure.
	ErrConnectionFailure = errors.New("connection failure")
)

// ConnectionError describes a network failure during a request/response exchange.
// It matches ErrConnectionFailure with errors.Is.
type ConnectionError struct {
	Op  string // "dial", "write", "read"
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connection failure during %s", e.Op)
	}
	return fmt.Sprintf("connection failure during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports ErrConnectionFailure as a match so callers can classify without a type assertion.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnectionFailure }
