// Package cmd provides the CLI commands for bootstrapmcp.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bootstrapmcp/bootstrapmcp/internal/config"
	"github.com/bootstrapmcp/bootstrapmcp/internal/logging"
)

var (
	configPath string
	dataDir    string
	logLevel   string
)

// NewRootCmd creates the root command for the bootstrapmcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrapmcp",
		Short: "Bootstrap documentation search server for AI assistants",
		Long: `bootstrapmcp indexes the Bootstrap CSS documentation and example
templates into full-text search databases and serves them to AI coding
assistants over the Model Context Protocol.

Run 'bootstrapmcp serve' to start the MCP server, or use the index,
search, and stats commands directly.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file path")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory override")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// Execute runs the CLI with signal-aware cancellation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig builds the effective configuration from file, environment, and
// flags, and installs the configured logger. The returned cleanup closes the
// log file.
func loadConfig() (*config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	if cfg.Logging.File != "" {
		logCfg.FilePath = cfg.Logging.File
	}
	if cfg.Logging.MaxSizeMB > 0 {
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxFiles > 0 {
		logCfg.MaxFiles = cfg.Logging.MaxFiles
	}
	logCfg.Stderr = cfg.Logging.Stderr

	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cleanup, nil
}
