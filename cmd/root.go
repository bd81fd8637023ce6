package cmd

import (
	"fmt"
	"os"

	"github.com/agentic-research/navtree/internal/config"
	"github.com/agentic-research/navtree/internal/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	sourcePath string
	sourceKind string
	pathPrefix string
	debug      bool
)

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "Path to config file (default ./"+config.DefaultFile+" if present)")
	f.StringVarP(&sourcePath, "source", "s", "", "Record source: JSON file, SQLite database or content directory")
	f.StringVarP(&sourceKind, "kind", "k", "", "Source kind: auto, json, sqlite or content")
	f.StringVar(&pathPrefix, "path-prefix", "", "Prefix prepended to root-relative URLs")
	f.BoolVar(&debug, "debug", false, "Enable development logging")
}

var rootCmd = &cobra.Command{
	Use:           "navtree",
	Short:         "navtree: resolve flat page metadata into site navigation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds a production logger, or a development one with --debug.
// Both write to stderr so stdout stays clean for output and MCP.
func newLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		c   *config.Config
		err error
	)
	switch {
	case configPath != "":
		c, err = config.Load(configPath)
	case fileExists(config.DefaultFile):
		c, err = config.Load(config.DefaultFile)
	default:
		c = config.Default()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		c.Source.Path = sourcePath
	}
	if flags.Changed("kind") {
		c.Source.Kind = sourceKind
	}
	if flags.Changed("path-prefix") {
		c.Site.PathPrefix = pathPrefix
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newService wires config, logging and the record source for a command.
func newService(cmd *cobra.Command) (*site.Service, *zap.Logger, error) {
	log := newLogger()
	c, err := loadConfig(cmd)
	if err != nil {
		return nil, log, err
	}
	svc, err := site.FromConfig(c, log)
	if err != nil {
		return nil, log, err
	}
	log.Debug("service ready",
		zap.String("source", c.Source.Path),
		zap.String("kind", c.Source.Kind),
		zap.String("path_prefix", c.Site.PathPrefix))
	return svc, log, nil
}

func writeOut(cmd *cobra.Command, s string) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}
