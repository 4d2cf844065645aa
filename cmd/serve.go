// -- cmd/serve.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/observability"
)

// demoPage is served in several chunks so clients exercise chunked decoding.
var demoPage = []string{
	"<html maaa=a >\n<head>\n<style>\n",
	"body div #myid{\n    width:100px;\n    background-color: #ff5000;\n}\n",
	"body div img{\n    width:30px;\n    background-color: #ff1111;\n}\n",
	"</style>\n</head>\n<body>\n    <div>\n        <img id=\"myid\"/>\n        <img />\n",
	"    </div>\n</body>\n</html>\n",
}

// demoHandler answers every request with demoPage using chunked transfer encoding.
func demoHandler(logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Warn("Failed to read request body", zap.Error(err))
		}
		logger.Info("Request received",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("content_type", r.Header.Get("Content-Type")),
			zap.String("body", string(body)),
		)

		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("X-Foo", "bar")
		w.WriteHeader(http.StatusOK)

		flusher, _ := w.(http.Flusher)
		for _, part := range demoPage {
			if _, err := io.WriteString(w, part); err != nil {
				return
			}
			// Without a Content-Length, each flush goes out as its own chunk.
			if flusher != nil {
				flusher.Flush()
			}
		}
	})
}

// newServeCmd creates the `serve` command, a local server for trying the client.
func newServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs a local demo server that returns a styled page in chunks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger().Named("serve")

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Handler:           demoHandler(logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx := cmd.Context()
			stop := context.AfterFunc(ctx, func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			})
			defer stop()

			// The address goes to stdout so scripts can pick up an ephemeral port.
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", ln.Addr())
			logger.Info("Demo server started", zap.String("addr", ln.Addr().String()), zap.String("try", "browsercore fetch "+hostPort(ln.Addr())))

			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8088", "listen address")
	return serveCmd
}

// hostPort renders a listener address as "<host> --port <port>" arguments.
func hostPort(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return strings.TrimSpace(host + " --port " + port)
}
