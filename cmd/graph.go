package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var graphKey string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the navigation dependency graph",
	Long: `Print one "child -> parent" line per edge of the navigation graph.

With --key, print the transitive ancestors of that key instead, root first,
one per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, log, err := newService(cmd)
		defer func() { _ = log.Sync() }()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var b strings.Builder
		if graphKey != "" {
			g, err := svc.Graph(ctx)
			if err != nil {
				return err
			}
			deps, err := g.DependenciesOf(graphKey)
			if err != nil {
				return err
			}
			for _, d := range deps {
				b.WriteString(d + "\n")
			}
			return writeOut(cmd, b.String())
		}

		edges, err := svc.Edges(ctx)
		if err != nil {
			return err
		}
		for _, e := range edges {
			fmt.Fprintf(&b, "%s -> %s\n", e.Child, e.Parent)
		}
		return writeOut(cmd, b.String())
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphKey, "key", "", "Print the ancestors of this key")
	rootCmd.AddCommand(graphCmd)
}
