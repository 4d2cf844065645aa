// internal/browser/network/dialer.go
package network

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// Conn is the connection collaborator: a byte stream the request is written
// to and the response is read from. net.Conn satisfies it.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// Dialer opens connections to host:port.
type Dialer interface {
	Dial(ctx context.Context, host string, port int) (Conn, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, host string, port int) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, host string, port int) (Conn, error) {
	return f(ctx, host, port)
}

// DialerConfig holds configuration for the low-level dialer.
type DialerConfig struct {
	Timeout   time.Duration
	KeepAlive time.Duration
	// NoDelay controls TCP_NODELAY.
	NoDelay bool
	// Resolver allows specifying custom DNS resolution logic.
	Resolver *net.Resolver
}

// Clone returns a copy of the DialerConfig. A nil receiver yields the defaults.
func (c *DialerConfig) Clone() *DialerConfig {
	if c == nil {
		return NewDialerConfig()
	}
	clone := *c
	return &clone
}

// NewDialerConfig creates the default configuration.
func NewDialerConfig() *DialerConfig {
	return &DialerConfig{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
		NoDelay:   true,
		Resolver:  net.DefaultResolver,
	}
}

// TCPDialer dials plain TCP connections.
type TCPDialer struct {
	config *DialerConfig
}

// NewTCPDialer returns a dialer using config, or the defaults when nil.
func NewTCPDialer(config *DialerConfig) *TCPDialer {
	return &TCPDialer{config: config.Clone()}
}

// Dial establishes a TCP connection and applies the socket options.
func (d *TCPDialer) Dial(ctx context.Context, host string, port int) (Conn, error) {
	dialer := &net.Dialer{
		Timeout:   d.config.Timeout,
		KeepAlive: d.config.KeepAlive,
		// Happy Eyeballs (RFC 8305) IPv4/IPv6 fallback.
		FallbackDelay: 300 * time.Millisecond,
		Resolver:      d.config.Resolver,
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))
	rawConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("tcp dial failed: %w", err)
	}

	if tcpConn, ok := rawConn.(*net.TCPConn); ok {
		if err := configureTCP(tcpConn, d.config); err != nil {
			_ = tcpConn.Close()
			return nil, err
		}
	}
	return rawConn, nil
}

// configureTCP applies TCP specific settings. Keep-alive failures are not
// fatal since some platforms do not support them.
func configureTCP(conn *net.TCPConn, config *DialerConfig) error {
	if config.KeepAlive > 0 {
		_ = conn.SetKeepAlive(true)
		_ = conn.SetKeepAlivePeriod(config.KeepAlive)
	}
	if err := conn.SetNoDelay(config.NoDelay); err != nil {
		return fmt.Errorf("failed to set TCP NoDelay: %w", err)
	}
	return nil
}
