package cmd

import (
	"fmt"

	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/render"
	"github.com/agentic-research/navtree/internal/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	treeKeys     string
	treeFormat   string
	treeActive   string
	treeValidate bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the navigation tree",
	Long: `Resolve every record into the navigation tree and print it.

With --keys, only the children of the given comma-separated parent keys are
printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := site.ParseFormat(treeFormat)
		if err != nil {
			return err
		}
		svc, log, err := newService(cmd)
		defer func() { _ = log.Sync() }()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		nodes, err := svc.Navigation(ctx, nav.ParseKeys(treeKeys)...)
		if err != nil {
			return err
		}
		out, err := svc.Render(ctx, nodes, format, treeActive)
		if err != nil {
			return err
		}
		if err := validateOutput(log, format, out); err != nil {
			return err
		}
		return writeOut(cmd, out)
	},
}

// validateOutput checks HTML output when --validate is set.
func validateOutput(log *zap.Logger, format site.Format, out string) error {
	if !treeValidate || format != site.FormatHTML {
		return nil
	}
	if err := render.ValidateHTML(out); err != nil {
		return fmt.Errorf("rendered HTML is malformed: %w", err)
	}
	log.Debug("rendered HTML validated", zap.Int("bytes", len(out)))
	return nil
}

func init() {
	f := treeCmd.Flags()
	f.StringVar(&treeKeys, "keys", "", "Comma-separated parent keys whose children to print")
	f.StringVarP(&treeFormat, "format", "f", "markdown", "Output format: markdown, html or json")
	f.StringVar(&treeActive, "active", "", "Key to mark active in HTML output")
	f.BoolVar(&treeValidate, "validate", false, "Check HTML output for markup errors")
	rootCmd.AddCommand(treeCmd)
}
