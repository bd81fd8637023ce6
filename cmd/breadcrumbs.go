package cmd

import (
	"github.com/agentic-research/navtree/internal/nav"
	"github.com/agentic-research/navtree/internal/site"
	"github.com/spf13/cobra"
)

var (
	crumbIncludeSelf  bool
	crumbAllowMissing bool
	crumbFormat       string
)

var breadcrumbsCmd = &cobra.Command{
	Use:   "breadcrumbs KEY",
	Short: "Print the ancestors of a navigation key, root first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		format, err := site.ParseFormat(crumbFormat)
		if err != nil {
			return err
		}
		svc, log, err := newService(cmd)
		defer func() { _ = log.Sync() }()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		trail, err := svc.Breadcrumbs(ctx, key, nav.BreadcrumbOptions{
			IncludeSelf:  crumbIncludeSelf,
			AllowMissing: crumbAllowMissing,
		})
		if err != nil {
			return err
		}
		out, err := svc.Render(ctx, trail, format, key)
		if err != nil {
			return err
		}
		return writeOut(cmd, out)
	},
}

func init() {
	f := breadcrumbsCmd.Flags()
	f.BoolVar(&crumbIncludeSelf, "include-self", false, "Append the key itself after its ancestors")
	f.BoolVar(&crumbAllowMissing, "allow-missing", false, "Print nothing instead of failing on an unknown key")
	f.StringVarP(&crumbFormat, "format", "f", "markdown", "Output format: markdown, html or json")
	rootCmd.AddCommand(breadcrumbsCmd)
}
