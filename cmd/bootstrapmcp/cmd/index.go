package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bootstrapmcp/bootstrapmcp/internal/indexer"
	"github.com/bootstrapmcp/bootstrapmcp/internal/ui"
)

func newIndexCmd() *cobra.Command {
	var docsDir string
	var examplesDir string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search indexes",
		Long: `Rebuilds the documentation and template indexes. By default the
Bootstrap repository is cloned or updated first; pass --docs and
--examples to index local directories instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := loadConfig()
			if err != nil {
				return err
			}
			defer cleanup()

			if (docsDir == "") != (examplesDir == "") {
				return errors.New("--docs and --examples must be used together")
			}

			ix := indexer.New(cfg, indexer.WithLogger(slog.Default()))

			var stats indexer.Stats
			if docsDir != "" {
				stats, err = ix.RebuildFromSource(cmd.Context(), docsDir, examplesDir)
			} else {
				stats, err = ix.Refresh(cmd.Context())
			}
			if err != nil {
				return err
			}

			ui.NewRenderer(os.Stdout).RebuildStats(stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&docsDir, "docs", "", "local documentation directory to index")
	cmd.Flags().StringVar(&examplesDir, "examples", "", "local examples directory to index")
	return cmd
}
