// -- cmd/options.go --
package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/browser/dom"
	"github.com/xkilldash9x/browsercore/internal/browser/network"
	"github.com/xkilldash9x/browsercore/internal/config"
)

// requestFlags are the request-shaping flags shared by fetch and browse.
type requestFlags struct {
	method  string
	port    int
	headers []string
	data    []string
	json    bool
	timeout time.Duration
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.method, "method", "X", network.DefaultMethod, "HTTP method")
	cmd.Flags().IntVarP(&f.port, "port", "p", network.DefaultPort, "TCP port")
	// StringArray rather than StringSlice: header values may contain commas.
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "request header as 'Name: Value' (repeatable, order kept)")
	cmd.Flags().StringArrayVarP(&f.data, "data", "d", nil, "body field as key=value (repeatable, order kept)")
	cmd.Flags().BoolVar(&f.json, "json", false, "send the body as application/json")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-request timeout (default from network.request_timeout)")
}

// parseHeaderFlags turns "Name: Value" strings into an ordered mapping.
func parseHeaderFlags(values []string) (*network.Headers, error) {
	h := network.NewHeaders()
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: Value'", raw)
		}
		h.Set(name, strings.TrimSpace(value))
	}
	return h, nil
}

// parseDataFlags turns key=value strings into an ordered body.
func parseDataFlags(values []string) (network.Body, error) {
	body := make(network.Body, 0, len(values))
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid body field %q: expected key=value", raw)
		}
		body = append(body, network.Field{Name: name, Value: value})
	}
	return body, nil
}

// dialerConfig maps the network section onto the TCP dialer settings.
func dialerConfig(n config.NetworkConfig) *network.DialerConfig {
	dc := network.NewDialerConfig()
	dc.Timeout = n.DialTimeout
	dc.KeepAlive = n.KeepAlive
	dc.NoDelay = n.NoDelay
	return dc
}

// buildOptions assembles request options. Configured default headers come
// first, then Host, then the flag headers, which override by name.
func buildOptions(cfg *config.Config, host, path string, f *requestFlags, logger *zap.Logger) (network.Options, error) {
	netCfg := cfg.Network()

	headers := network.NewHeaders()
	names := make([]string, 0, len(netCfg.Headers))
	for name := range netCfg.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		headers.Set(name, netCfg.Headers[name])
	}

	if !headers.Has("Host") {
		hostValue := host
		if f.port != network.DefaultPort {
			hostValue = net.JoinHostPort(host, strconv.Itoa(f.port))
		}
		headers.Set("Host", hostValue)
	}
	if f.json {
		headers.Set("Content-Type", network.ContentTypeJSON)
	}

	flagHeaders, err := parseHeaderFlags(f.headers)
	if err != nil {
		return network.Options{}, err
	}
	for _, h := range flagHeaders.Fields() {
		headers.Set(h.Name, h.Value)
	}

	body, err := parseDataFlags(f.data)
	if err != nil {
		return network.Options{}, err
	}

	return network.Options{
		Method:         strings.ToUpper(f.method),
		Host:           host,
		Port:           f.port,
		Path:           path,
		Headers:        headers,
		Body:           body,
		Dialer:         network.NewTCPDialer(dialerConfig(netCfg)),
		Logger:         logger,
		ReadBufferSize: netCfg.ReadBufferSize,
	}, nil
}

// withTimeout applies the flag timeout, falling back to the configured one.
func withTimeout(ctx context.Context, flagTimeout, configured time.Duration) (context.Context, context.CancelFunc) {
	timeout := flagTimeout
	if timeout <= 0 {
		timeout = configured
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// applyRenderFlags overrides the render section with flags the user set explicitly.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, format string, indent int) error {
	if cmd.Flags().Changed("format") {
		cfg.SetRenderFormat(format)
	}
	if cmd.Flags().Changed("indent") {
		cfg.SetRenderIndent(indent)
	}
	render := cfg.Render()
	return render.Validate()
}

func registerRenderFlags(cmd *cobra.Command, format *string, indent *int) {
	cmd.Flags().StringVarP(format, "format", "f", config.FormatJSON, "output format: json or html")
	cmd.Flags().IntVar(indent, "indent", 2, "JSON indent width (0 for compact)")
}

// writeResponse prints the status line, the headers and the decoded body.
func writeResponse(w io.Writer, resp *network.Response) error {
	if _, err := fmt.Fprintf(w, "%s\r\n", resp.StatusLine()); err != nil {
		return err
	}
	for _, h := range resp.Headers.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", h.Name, h.Value); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}
	body, err := resp.DecodedBody()
	if err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	_, err = w.Write(body)
	return err
}

// writeDocument prints the tree in the configured format.
func writeDocument(w io.Writer, root *dom.Node, render config.RenderConfig) error {
	if render.Format == config.FormatHTML {
		if err := dom.Render(w, root); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return dom.EncodeJSON(w, root, render.Indent)
}
