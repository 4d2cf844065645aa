// -- cmd/parse.go --
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsercore/internal/browser/dom"
	"github.com/xkilldash9x/browsercore/internal/browser/html"
	"github.com/xkilldash9x/browsercore/internal/observability"
)

// newParseCmd creates the `parse` command: HTML from a file or stdin to an annotated DOM.
func newParseCmd() *cobra.Command {
	var (
		format string
		indent int
	)

	parseCmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Builds the styled DOM of an HTML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := applyRenderFlags(cmd, cfg, format, indent); err != nil {
				return err
			}
			logger := observability.GetLogger().Named("parse")

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			b := dom.NewBuilder(nil, logger)
			root, err := b.Build(html.NewTokenizer(string(input)))
			if err != nil {
				return err
			}
			if open := b.OpenElements(); len(open) > 0 {
				logger.Debug("Input ended with open elements", zap.Int("open", len(open)), zap.String("innermost", open[len(open)-1].Name))
			}
			return writeDocument(cmd.OutOrStdout(), root, cfg.Render())
		},
	}

	registerRenderFlags(parseCmd, &format, &indent)
	return parseCmd
}

// readInput reads the named file, or stdin for "-" and no argument.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
