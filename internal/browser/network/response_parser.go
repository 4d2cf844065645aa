// internal/browser/network/response_parser.go
package network

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParserState is the active state of a ResponseParser.
type ParserState int

const (
	StateStatusLine ParserState = iota
	StateStatusLineEnd
	StateHeaderName
	StateHeaderSpace
	StateHeaderValue
	StateHeaderLineEnd
	StateHeaderBlockEnd
	StateBody
)

var parserStateNames = [...]string{
	StateStatusLine:     "status-line",
	StateStatusLineEnd:  "status-line-end",
	StateHeaderName:     "header-name",
	StateHeaderSpace:    "header-space",
	StateHeaderValue:    "header-value",
	StateHeaderLineEnd:  "header-line-end",
	StateHeaderBlockEnd: "header-block-end",
	StateBody:           "body",
}

func (s ParserState) String() string {
	if int(s) >= 0 && int(s) < len(parserStateNames) {
		return parserStateNames[s]
	}
	return fmt.Sprintf("ParserState(%d)", int(s))
}

var statusLinePattern = regexp.MustCompile(`^HTTP/1\.1 ([0-9]+) (.*)$`)

// ResponseParser turns a raw HTTP/1.1 response into a Response, one byte at a
// time. One instance serves one response; after a failure every call returns
// the same error.
type ResponseParser struct {
	state       ParserState
	statusLine  bytes.Buffer
	headerName  bytes.Buffer
	headerValue bytes.Buffer
	headers     *Headers
	decoder     BodyDecoder
	response    *Response
	err         error
}

// NewResponseParser returns a parser waiting for the status line.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{
		state:   StateStatusLine,
		headers: NewHeaders(),
	}
}

// State returns the current state.
func (p *ResponseParser) State() ParserState { return p.state }

// Decoder returns the installed body decoder, nil until the header block ends.
func (p *ResponseParser) Decoder() BodyDecoder { return p.decoder }

// Err returns the failure that stopped the parser, if any.
func (p *ResponseParser) Err() error { return p.err }

// Finished reports whether the body decoder has seen the end of the body.
func (p *ResponseParser) Finished() bool {
	return p.err == nil && p.state == StateBody && p.decoder != nil && p.decoder.Finished()
}

// Receive feeds data and stops at the end of the response. It returns how
// many bytes were consumed.
func (p *ResponseParser) Receive(data []byte) (int, error) {
	for i, c := range data {
		if p.Finished() {
			return i, nil
		}
		if err := p.ReceiveByte(c); err != nil {
			return i, err
		}
	}
	return len(data), p.err
}

// Write implements io.Writer. Bytes after the end of the response are
// accepted and dropped.
func (p *ResponseParser) Write(data []byte) (int, error) {
	if _, err := p.Receive(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// ReceiveByte performs one state transition.
func (p *ResponseParser) ReceiveByte(c byte) error {
	if p.err != nil {
		return p.err
	}
	if p.Finished() {
		return nil
	}

	switch p.state {
	case StateStatusLine:
		if c == '\r' {
			p.state = StateStatusLineEnd
		} else {
			p.statusLine.WriteByte(c)
		}
	case StateStatusLineEnd:
		if c == '\n' {
			p.state = StateHeaderName
		}
	case StateHeaderName:
		switch c {
		case ':':
			p.state = StateHeaderSpace
		case '\r':
			p.state = StateHeaderBlockEnd
			decoder, err := p.selectDecoder()
			if err != nil {
				return p.fail(err)
			}
			p.decoder = decoder
		default:
			p.headerName.WriteByte(c)
		}
	case StateHeaderSpace:
		switch c {
		case ' ':
			p.state = StateHeaderValue
		case '\r':
			// "Name:" with nothing after it.
			p.commitHeader()
			p.state = StateHeaderLineEnd
		default:
			p.headerValue.WriteByte(c)
			p.state = StateHeaderValue
		}
	case StateHeaderValue:
		if c == '\r' {
			p.commitHeader()
			p.state = StateHeaderLineEnd
		} else {
			p.headerValue.WriteByte(c)
		}
	case StateHeaderLineEnd:
		if c == '\n' {
			p.state = StateHeaderName
		}
	case StateHeaderBlockEnd:
		if c == '\n' {
			p.state = StateBody
		}
	case StateBody:
		if err := p.decoder.ReceiveByte(c); err != nil {
			return p.fail(err)
		}
	}
	return nil
}

func (p *ResponseParser) commitHeader() {
	p.headers.Set(p.headerName.String(), p.headerValue.String())
	p.headerName.Reset()
	p.headerValue.Reset()
}

// selectDecoder picks the body framing once all headers are known.
func (p *ResponseParser) selectDecoder() (BodyDecoder, error) {
	if te, ok := p.headers.Get("Transfer-Encoding"); ok {
		if isChunked(te) {
			return NewChunkedDecoder(), nil
		}
		return &UnsupportedDecoder{Reason: "transfer-encoding " + strconv.Quote(te)}, nil
	}
	if cl, ok := p.headers.Get("Content-Length"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedContentLength, cl)
		}
		return NewLengthDecoder(n), nil
	}
	return &UnsupportedDecoder{Reason: "no Transfer-Encoding or Content-Length header"}, nil
}

// isChunked reports whether chunked is the final transfer coding.
func isChunked(te string) bool {
	codings := strings.Split(te, ",")
	last := strings.TrimSpace(codings[len(codings)-1])
	return strings.EqualFold(last, "chunked")
}

func (p *ResponseParser) fail(err error) error {
	p.err = err
	return err
}

// Close tells the parser the peer closed the stream. A parser that reached
// the body without usable framing reports ErrUnsupportedBodyEncoding; any
// other unfinished parser reports ErrIncompleteResponse.
func (p *ResponseParser) Close() error {
	if p.err != nil || p.Finished() {
		return p.err
	}
	if u, ok := p.decoder.(*UnsupportedDecoder); ok && p.state == StateBody {
		return p.fail(u.Err())
	}
	return p.fail(fmt.Errorf("%w: stream ended in state %s", ErrIncompleteResponse, p.state))
}

// Response materializes the parsed response. It is built once, on the first
// call after the parser finished, and the same value is returned afterwards.
func (p *ResponseParser) Response() (*Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.response != nil {
		return p.response, nil
	}
	if !p.Finished() {
		return nil, fmt.Errorf("%w: parser is in state %s", ErrIncompleteResponse, p.state)
	}

	m := statusLinePattern.FindStringSubmatch(p.statusLine.String())
	if m == nil {
		return nil, p.fail(fmt.Errorf("%w: %q", ErrMalformedStatusLine, p.statusLine.String()))
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, p.fail(fmt.Errorf("%w: %q", ErrMalformedStatusLine, p.statusLine.String()))
	}

	p.response = &Response{
		StatusCode: code,
		StatusText: m[2],
		Headers:    p.headers.Clone(),
		Body:       string(p.decoder.Content()),
	}
	return p.response, nil
}
