// Package gitrepo acquires the Bootstrap source repository the indexes are
// built from: shallow clone on first run, fetch and hard reset afterwards.
// When acquisition fails the indexing pipeline is not invoked.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// DefaultRepoURL is the upstream Bootstrap repository.
	DefaultRepoURL = "https://github.com/twbs/bootstrap.git"
	// DefaultBranch is the branch tracked for documentation.
	DefaultBranch = "main"

	docsSubdir     = "site/content/docs"
	examplesSubdir = "site/static/docs/5.3/examples"
)

// CommitInfo describes the checked-out head commit.
type CommitInfo struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// Manager owns the local checkout of the Bootstrap repository.
type Manager struct {
	repoPath string
	repoURL  string
	branch   string
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithRepoURL overrides the upstream repository URL.
func WithRepoURL(url string) Option {
	return func(m *Manager) { m.repoURL = url }
}

// WithBranch overrides the tracked branch.
func WithBranch(branch string) Option {
	return func(m *Manager) { m.branch = branch }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a manager for the checkout at repoPath.
func NewManager(repoPath string, opts ...Option) *Manager {
	m := &Manager{
		repoPath: repoPath,
		repoURL:  DefaultRepoURL,
		branch:   DefaultBranch,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CloneOrUpdate clones the repository if the checkout does not exist yet,
// otherwise fetches and hard-resets to the upstream branch head. Local edits
// in the checkout do not survive an update.
func (m *Manager) CloneOrUpdate(ctx context.Context) error {
	if m.checkoutExists() {
		m.logger.Info("updating existing checkout", slog.String("path", m.repoPath))
		return m.update(ctx)
	}
	m.logger.Info("cloning repository",
		slog.String("url", m.repoURL),
		slog.String("path", m.repoPath))
	return m.clone(ctx)
}

func (m *Manager) checkoutExists() bool {
	info, err := os.Stat(filepath.Join(m.repoPath, ".git"))
	return err == nil && info.IsDir()
}

func (m *Manager) clone(ctx context.Context) error {
	if err := os.MkdirAll(m.repoPath, 0o755); err != nil {
		return fmt.Errorf("create checkout directory: %w", err)
	}
	_, err := git.PlainCloneContext(ctx, m.repoPath, false, &git.CloneOptions{
		URL:           m.repoURL,
		ReferenceName: plumbing.NewBranchReferenceName(m.branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", m.repoURL, err)
	}
	m.logger.Info("repository cloned")
	return nil
}

func (m *Manager) update(ctx context.Context) error {
	repo, err := git.PlainOpen(m.repoPath)
	if err != nil {
		return fmt.Errorf("open checkout: %w", err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Force:      true,
		Depth:      1,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch origin: %w", err)
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", m.branch), true)
	if err != nil {
		return fmt.Errorf("resolve origin/%s: %w", m.branch, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{
		Mode:   git.HardReset,
		Commit: ref.Hash(),
	}); err != nil {
		return fmt.Errorf("reset to origin/%s: %w", m.branch, err)
	}

	m.logger.Info("checkout updated", slog.String("commit", ref.Hash().String()[:7]))
	return nil
}

// Ready reports whether the checkout exists and contains the documentation
// directory.
func (m *Manager) Ready() bool {
	if !m.checkoutExists() {
		m.logger.Warn("checkout not found", slog.String("path", m.repoPath))
		return false
	}
	if _, err := os.Stat(m.DocsPath()); err != nil {
		m.logger.Warn("documentation directory not found", slog.String("path", m.DocsPath()))
		return false
	}
	return true
}

// DocsPath returns the documentation directory inside the checkout.
func (m *Manager) DocsPath() string {
	return filepath.Join(m.repoPath, filepath.FromSlash(docsSubdir))
}

// ExamplesPath returns the example templates directory inside the checkout.
func (m *Manager) ExamplesPath() string {
	return filepath.Join(m.repoPath, filepath.FromSlash(examplesSubdir))
}

// CommitInfo returns the head commit of the checkout.
func (m *Manager) CommitInfo() (CommitInfo, error) {
	repo, err := git.PlainOpen(m.repoPath)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("open checkout: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("resolve head: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("read head commit: %w", err)
	}
	return CommitInfo{
		SHA:     head.Hash().String()[:7],
		Message: strings.TrimSpace(commit.Message),
		Author:  commit.Author.Name,
		Date:    commit.Author.When.Format(time.RFC3339),
	}, nil
}
