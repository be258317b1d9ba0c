package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
	"github.com/bootstrapmcp/bootstrapmcp/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := loadConfig()
			if err != nil {
				return err
			}
			defer cleanup()
			logger := slog.Default()

			docSvc := search.NewDocSearch(cfg.DocsDBPath(), search.WithDocSearchLogger(logger))
			defer docSvc.Close()
			tmplSvc := search.NewTemplateSearch(cfg.TemplatesDBPath(), search.WithTemplateSearchLogger(logger))
			defer tmplSvc.Close()

			renderer := ui.NewRenderer(os.Stdout)
			renderer.DocsStatistics(docSvc.Statistics(cmd.Context()))
			fmt.Fprintln(os.Stdout)
			renderer.TemplateStatistics(tmplSvc.Statistics(cmd.Context()))
			return nil
		},
	}
}
