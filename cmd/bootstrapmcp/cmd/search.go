package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
	"github.com/bootstrapmcp/bootstrapmcp/internal/ui"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the documentation index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := loadConfig()
			if err != nil {
				return err
			}
			defer cleanup()

			if limit <= 0 {
				limit = cfg.Search.DefaultLimit
			}
			if limit > cfg.Search.MaxLimit {
				limit = cfg.Search.MaxLimit
			}

			svc := search.NewDocSearch(cfg.DocsDBPath(), search.WithDocSearchLogger(slog.Default()))
			defer svc.Close()

			query := strings.Join(args, " ")
			results := svc.Search(cmd.Context(), query, limit)
			ui.NewRenderer(os.Stdout).SearchResults(query, results)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results")
	return cmd
}
