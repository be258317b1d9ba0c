// Package indexer orchestrates the indexing pipeline: acquire the Bootstrap
// checkout, run both extractors, and rebuild both stores. It is the single
// write path shared by the CLI and the refresh tool.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bootstrapmcp/bootstrapmcp/internal/config"
	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
	"github.com/bootstrapmcp/bootstrapmcp/internal/gitrepo"
	"github.com/bootstrapmcp/bootstrapmcp/internal/store"
	"github.com/bootstrapmcp/bootstrapmcp/internal/templates"
)

// Stats reports the outcome of a rebuild. Failed counts include both parse
// and insert failures.
type Stats struct {
	DocsIndexed      int                `json:"docs_indexed"`
	DocsFailed       int                `json:"docs_failed"`
	TemplatesIndexed int                `json:"templates_indexed"`
	TemplatesFailed  int                `json:"templates_failed"`
	Commit           *gitrepo.CommitInfo `json:"commit,omitempty"`
}

// Indexer rebuilds the documentation and template indexes.
type Indexer struct {
	cfg    *config.Config
	repo   *gitrepo.Manager
	logger *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) { ix.logger = logger }
}

// WithRepoManager overrides the checkout manager, used by tests to avoid
// network access.
func WithRepoManager(m *gitrepo.Manager) Option {
	return func(ix *Indexer) { ix.repo = m }
}

// New creates an indexer for the configured data directory.
func New(cfg *config.Config, opts ...Option) *Indexer {
	ix := &Indexer{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.repo == nil {
		ix.repo = gitrepo.NewManager(cfg.RepoPath(),
			gitrepo.WithRepoURL(cfg.Repo.URL),
			gitrepo.WithBranch(cfg.Repo.Branch),
			gitrepo.WithLogger(ix.logger))
	}
	return ix
}

// Refresh updates the checkout and rebuilds both indexes. When acquisition
// fails nothing is rebuilt.
func (ix *Indexer) Refresh(ctx context.Context) (Stats, error) {
	if err := ix.repo.CloneOrUpdate(ctx); err != nil {
		return Stats{}, fmt.Errorf("update checkout: %w", err)
	}
	if !ix.repo.Ready() {
		return Stats{}, fmt.Errorf("checkout at %s is not usable", ix.cfg.RepoPath())
	}

	stats, err := ix.RebuildFromSource(ctx, ix.repo.DocsPath(), ix.repo.ExamplesPath())
	if err != nil {
		return stats, err
	}
	if info, err := ix.repo.CommitInfo(); err == nil {
		stats.Commit = &info
	}
	return stats, nil
}

// RebuildFromSource rebuilds both indexes from already-acquired source
// directories.
func (ix *Indexer) RebuildFromSource(ctx context.Context, docsDir, examplesDir string) (Stats, error) {
	var stats Stats

	docsIndexed, docsFailed, err := ix.rebuildDocs(ctx, docsDir)
	if err != nil {
		return stats, err
	}
	stats.DocsIndexed = docsIndexed
	stats.DocsFailed = docsFailed

	tmplIndexed, tmplFailed, err := ix.rebuildTemplates(ctx, examplesDir)
	if err != nil {
		return stats, err
	}
	stats.TemplatesIndexed = tmplIndexed
	stats.TemplatesFailed = tmplFailed

	ix.logger.Info("rebuild complete",
		slog.Int("docs_indexed", stats.DocsIndexed),
		slog.Int("docs_failed", stats.DocsFailed),
		slog.Int("templates_indexed", stats.TemplatesIndexed),
		slog.Int("templates_failed", stats.TemplatesFailed))
	return stats, nil
}

func (ix *Indexer) rebuildDocs(ctx context.Context, dir string) (indexed, failed int, err error) {
	parser := docs.NewParser(dir, docs.WithLogger(ix.logger))
	records, parseFailed, err := parser.ParseDirectory(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("parse documentation: %w", err)
	}

	st, err := store.NewDocStore(ix.cfg.DocsDBPath(), store.WithDocLogger(ix.logger))
	if err != nil {
		return 0, 0, err
	}
	defer st.Close()

	indexed, insertFailed, err := st.Build(ctx, records)
	if err != nil {
		return 0, 0, fmt.Errorf("build documentation index: %w", err)
	}
	return indexed, parseFailed + insertFailed, nil
}

func (ix *Indexer) rebuildTemplates(ctx context.Context, dir string) (indexed, failed int, err error) {
	parser := templates.NewParser(dir, templates.WithLogger(ix.logger))
	records, parseFailed, err := parser.ParseDirectory()
	if err != nil {
		return 0, 0, fmt.Errorf("parse templates: %w", err)
	}

	st, err := store.NewTemplateStore(ix.cfg.TemplatesDBPath(), store.WithTemplateLogger(ix.logger))
	if err != nil {
		return 0, 0, err
	}
	defer st.Close()

	indexed, insertFailed, err := st.Build(ctx, records)
	if err != nil {
		return 0, 0, fmt.Errorf("build template index: %w", err)
	}
	return indexed, parseFailed + insertFailed, nil
}

// EnsureIndexes bootstraps the indexes when they are missing or empty, so
// the server can start against a fresh data directory. An already populated
// index is left alone.
func (ix *Indexer) EnsureIndexes(ctx context.Context) error {
	populated, err := ix.indexesPopulated(ctx)
	if err != nil {
		return err
	}
	if populated {
		ix.logger.Info("indexes already populated, skipping bootstrap")
		return nil
	}

	ix.logger.Info("bootstrapping indexes")
	stats, err := ix.Refresh(ctx)
	if err != nil {
		return err
	}
	if stats.DocsIndexed == 0 {
		return fmt.Errorf("bootstrap indexed no documents")
	}
	return nil
}

func (ix *Indexer) indexesPopulated(ctx context.Context) (bool, error) {
	docStore, err := store.NewDocStore(ix.cfg.DocsDBPath(), store.WithDocLogger(ix.logger))
	if err != nil {
		return false, err
	}
	defer docStore.Close()
	if err := docStore.Initialize(ctx); err != nil {
		return false, err
	}
	n, err := docStore.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
