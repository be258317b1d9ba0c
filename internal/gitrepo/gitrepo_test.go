package gitrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initCheckout creates a local repository with one commit so the read-side
// operations can be exercised without network access.
func initCheckout(t *testing.T, path string) {
	t.Helper()
	repo, err := git.PlainInit(path, false)
	require.NoError(t, err)

	docsDir := filepath.Join(path, filepath.FromSlash(docsSubdir))
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "index.mdx"),
		[]byte("---\ntitle: Docs\n---\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("Add documentation index\n\nLonger body.", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Doc Author",
			Email: "docs@example.com",
			When:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
}

func TestManager_Paths(t *testing.T) {
	m := NewManager("/data/bootstrap-repo")

	assert.Equal(t, filepath.Join("/data/bootstrap-repo", "site", "content", "docs"), m.DocsPath())
	assert.Equal(t, filepath.Join("/data/bootstrap-repo", "site", "static", "docs", "5.3", "examples"), m.ExamplesPath())
}

func TestManager_Options(t *testing.T) {
	m := NewManager("/tmp/checkout",
		WithRepoURL("https://example.com/fork.git"),
		WithBranch("v5-dev"))

	assert.Equal(t, "https://example.com/fork.git", m.repoURL)
	assert.Equal(t, "v5-dev", m.branch)
}

func TestManager_Ready(t *testing.T) {
	// Given: no checkout at all
	path := filepath.Join(t.TempDir(), "checkout")
	m := NewManager(path)
	assert.False(t, m.Ready())

	// When: a checkout with the documentation directory exists
	initCheckout(t, path)

	// Then: the manager reports ready
	assert.True(t, m.Ready())
}

func TestManager_ReadyWithoutDocsDir(t *testing.T) {
	// A checkout missing the documentation tree is not usable.
	path := filepath.Join(t.TempDir(), "checkout")
	_, err := git.PlainInit(path, false)
	require.NoError(t, err)

	assert.False(t, NewManager(path).Ready())
}

func TestManager_CommitInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout")
	initCheckout(t, path)

	info, err := NewManager(path).CommitInfo()
	require.NoError(t, err)

	assert.Len(t, info.SHA, 7)
	assert.Equal(t, "Add documentation index\n\nLonger body.", info.Message)
	assert.Equal(t, "Doc Author", info.Author)
	assert.Equal(t, "2025-06-01T12:00:00Z", info.Date)
}

func TestManager_CommitInfoWithoutCheckout(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "nope")).CommitInfo()
	require.Error(t, err)
}
