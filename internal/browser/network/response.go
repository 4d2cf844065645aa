// internal/browser/network/response.go
package network

import "fmt"

// Response is a fully parsed HTTP response. It is produced once by a
// ResponseParser and must not be modified afterwards.
type Response struct {
	StatusCode int
	StatusText string
	Headers    *Headers
	Body       string
}

// StatusLine renders the status line without the trailing CRLF.
func (r *Response) StatusLine() string {
	return fmt.Sprintf("HTTP/1.1 %d %s", r.StatusCode, r.StatusText)
}

// DecodedBody returns the body with any Content-Encoding removed.
func (r *Response) DecodedBody() ([]byte, error) {
	return Decompress([]byte(r.Body), r.Headers.Value("Content-Encoding"))
}
