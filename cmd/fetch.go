// -- cmd/fetch.go --
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/browser/network"
	"github.com/xkilldash9x/browsercore/internal/observability"
)

// newFetchCmd creates the `fetch` command: one request, raw response out.
func newFetchCmd() *cobra.Command {
	flags := &requestFlags{}

	fetchCmd := &cobra.Command{
		Use:   "fetch <host> [path]",
		Short: "Sends one HTTP/1.1 request and prints the response",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			logger := observability.GetLogger().Named("fetch")

			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			opts, err := buildOptions(cfg, args[0], path, flags, logger)
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), flags.timeout, cfg.Network().RequestTimeout)
			defer cancel()

			req, err := network.Build(opts)
			if err != nil {
				return err
			}
			logger.Debug("Sending request", zap.String("address", req.Address()), zap.String("method", req.Method), zap.String("path", req.Path))

			resp, err := req.Send(ctx, nil)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	flags.register(fetchCmd)
	return fetchCmd
}
