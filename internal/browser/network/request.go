// internal/browser/network/request.go
package network

import (
	"bytes"
	"fmt"
	"mime"
	"net"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultMethod is used when Options.Method is empty.
	DefaultMethod = "GET"
	// DefaultPort is used when Options.Port is zero.
	DefaultPort = 80
	// DefaultPath is used when Options.Path is empty.
	DefaultPath = "/"

	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// Field is one entry of a structured request body.
type Field struct {
	Name  string
	Value interface{}
}

// Body is an insertion-ordered structured request body. Both serializations
// (form and JSON) emit fields in this order.
type Body []Field

// Options describes a request before serialization.
type Options struct {
	Method  string
	Host    string
	Port    int
	Path    string
	Headers *Headers
	Body    Body
	// RawBody, when set, is sent verbatim regardless of Content-Type.
	RawBody *string

	// Dialer opens the connection when Send is called without one.
	// Defaults to a TCP dialer with NewDialerConfig().
	Dialer Dialer
	// Logger receives request lifecycle diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// ReadBufferSize is the size of each read from the connection. Defaults to 4096.
	ReadBufferSize int
}

// Request is a serialized-ready HTTP/1.1 request. Headers always carry
// Content-Type and a Content-Length equal to len(BodyText) in bytes.
type Request struct {
	Method   string
	Host     string
	Port     int
	Path     string
	Headers  *Headers
	Body     Body
	BodyText string

	dialer     Dialer
	logger     *zap.Logger
	readBuffer int
}

// Build applies defaults, serializes the body and fixes up the framing headers.
func Build(opts Options) (*Request, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, ErrMissingHost
	}

	req := &Request{
		Method:     opts.Method,
		Host:       opts.Host,
		Port:       opts.Port,
		Path:       opts.Path,
		Body:       opts.Body,
		dialer:     opts.Dialer,
		logger:     opts.Logger,
		readBuffer: opts.ReadBufferSize,
	}
	if req.Method == "" {
		req.Method = DefaultMethod
	}
	if req.Port == 0 {
		req.Port = DefaultPort
	}
	if req.Path == "" {
		req.Path = DefaultPath
	}
	if opts.Headers != nil {
		req.Headers = opts.Headers.Clone()
	} else {
		req.Headers = NewHeaders()
	}
	if req.Body == nil {
		req.Body = Body{}
	}
	if req.logger == nil {
		req.logger = zap.NewNop()
	}
	if req.dialer == nil {
		req.dialer = NewTCPDialer(nil)
	}
	if req.readBuffer <= 0 {
		req.readBuffer = 4096
	}

	if !req.Headers.Has("Content-Type") {
		req.Headers.Set("Content-Type", ContentTypeForm)
	}

	if opts.RawBody != nil {
		req.BodyText = *opts.RawBody
	} else {
		text, err := serializeBody(req.Headers.Value("Content-Type"), req.Body)
		if err != nil {
			return nil, err
		}
		req.BodyText = text
	}

	req.Headers.Set("Content-Length", strconv.Itoa(len(req.BodyText)))
	return req, nil
}

// serializeBody picks the encoding from the media type, ignoring parameters such as charset.
func serializeBody(contentType string, body Body) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case ContentTypeJSON:
		return encodeJSONBody(body)
	case ContentTypeForm:
		return encodeFormBody(body), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
}

// Bytes returns the exact wire form of the request.
func (r *Request) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(r.Method)
	buf.WriteByte(' ')
	buf.WriteString(r.Path)
	buf.WriteString(" HTTP/1.1\r\n")
	for _, h := range r.Headers.Fields() {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.WriteString(r.BodyText)
	return buf.Bytes()
}

// String returns the wire form as text. There is no terminator after the body.
func (r *Request) String() string {
	return string(r.Bytes())
}

// Address returns host:port for dialing.
func (r *Request) Address() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}
