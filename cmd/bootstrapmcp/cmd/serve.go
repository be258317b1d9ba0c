package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bootstrapmcp/bootstrapmcp/internal/indexer"
	"github.com/bootstrapmcp/bootstrapmcp/internal/mcp"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
)

func newServeCmd() *cobra.Command {
	var skipBootstrap bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Starts the MCP server on the configured transport (stdio by default).
When the indexes are missing or empty they are bootstrapped first: the
Bootstrap repository is cloned and both indexes are built.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := loadConfig()
			if err != nil {
				return err
			}
			defer cleanup()
			logger := slog.Default()

			ix := indexer.New(cfg, indexer.WithLogger(logger))
			if !skipBootstrap {
				if err := ix.EnsureIndexes(cmd.Context()); err != nil {
					return fmt.Errorf("bootstrap indexes: %w", err)
				}
			}

			docSvc := search.NewDocSearch(cfg.DocsDBPath(), search.WithDocSearchLogger(logger))
			tmplSvc := search.NewTemplateSearch(cfg.TemplatesDBPath(), search.WithTemplateSearchLogger(logger))

			server, err := mcp.NewServer(cfg, docSvc, tmplSvc, ix, logger)
			if err != nil {
				return err
			}
			defer server.Close()

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			return server.Serve(cmd.Context(), cfg.Server.Transport, addr)
		},
	}

	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "do not build missing indexes on startup")
	return cmd
}
