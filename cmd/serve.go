package cmd

import (
	"github.com/agentic-research/navtree/internal/mcpserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve navigation queries to agents over MCP (stdio)",
	Long: `Run an MCP server on stdin/stdout exposing the navigation, breadcrumbs,
render_html and render_markdown tools. Records are reloaded from the source on
every call, so edits show up without a restart. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, log, err := newService(cmd)
		defer func() { _ = log.Sync() }()
		if err != nil {
			return err
		}
		log.Info("serving MCP over stdio", zap.String("version", mcpserver.Version))
		return mcpserver.ServeStdio(svc)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
