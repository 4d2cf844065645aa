// -- cmd/browse.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/browser/fetch"
	"github.com/xkilldash9x/browsercore/internal/browser/network"
	"github.com/xkilldash9x/browsercore/internal/observability"
)

// newBrowseCmd creates the `browse` command: fetch paths concurrently and print their DOMs.
func newBrowseCmd() *cobra.Command {
	flags := &requestFlags{}
	var (
		format      string
		indent      int
		concurrency int
	)

	browseCmd := &cobra.Command{
		Use:   "browse <host> [paths...]",
		Short: "Fetches one or more pages and prints their styled DOMs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := applyRenderFlags(cmd, cfg, format, indent); err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.SetFetchConcurrency(concurrency)
			}
			logger := observability.GetLogger().Named("browse")

			host, paths := args[0], args[1:]
			if len(paths) == 0 {
				paths = []string{network.DefaultPath}
			}

			batch := make([]network.Options, 0, len(paths))
			for _, path := range paths {
				opts, err := buildOptions(cfg, host, path, flags, logger)
				if err != nil {
					return err
				}
				batch = append(batch, opts)
			}

			ctx, cancel := withTimeout(cmd.Context(), flags.timeout, cfg.Network().RequestTimeout)
			defer cancel()

			fc := cfg.Fetch()
			fetcher := fetch.New(fetch.Config{
				Concurrency:       fc.Concurrency,
				RequestsPerSecond: fc.RequestsPerSecond,
				Burst:             fc.Burst,
			}, logger)

			results, err := fetcher.FetchAll(ctx, batch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				fmt.Fprintf(out, "==> %s%s <==\n", host, res.Options.Path)
				root, err := res.Document(logger)
				if err != nil {
					failed++
					logger.Warn("Page failed", zap.String("fetch_id", res.ID), zap.String("path", res.Options.Path), zap.Error(err))
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				logger.Debug("Page built", zap.String("fetch_id", res.ID), zap.Duration("duration", res.Duration))
				if err := writeDocument(out, root, cfg.Render()); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d pages failed", failed, len(results))
			}
			return nil
		},
	}

	flags.register(browseCmd)
	registerRenderFlags(browseCmd, &format, &indent)
	browseCmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum requests in flight (default from fetch.concurrency)")
	return browseCmd
}
