package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstrapmcp/bootstrapmcp/internal/config"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.DataDir = t.TempDir()
	return cfg
}

// writeFixtureSource lays out a miniature documentation tree and one example
// template, including one malformed documentation file.
func writeFixtureSource(t *testing.T) (docsDir, examplesDir string) {
	t.Helper()
	root := t.TempDir()
	docsDir = filepath.Join(root, "docs")
	examplesDir = filepath.Join(root, "examples")

	componentsDir := filepath.Join(docsDir, "components")
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(componentsDir, "buttons.mdx"), []byte(`---
title: Buttons
description: Button styles for actions.
---

Use button styles with the btn classes.

<Example>
<button class="btn btn-primary">Primary</button>
</Example>
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(componentsDir, "broken.mdx"),
		[]byte("no front matter"), 0o644))

	albumDir := filepath.Join(examplesDir, "album")
	require.NoError(t, os.MkdirAll(albumDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(albumDir, "index.html"), []byte(`<!doctype html>
<html><head><title>Album example</title></head>
<body><div class="card d-flex">photo grid</div></body></html>`), 0o644))

	return docsDir, examplesDir
}

func TestRebuildFromSource(t *testing.T) {
	// Given: fixture source trees with one bad documentation file
	cfg := testConfig(t)
	docsDir, examplesDir := writeFixtureSource(t)
	ix := New(cfg)

	// When: rebuilding both indexes
	stats, err := ix.RebuildFromSource(context.Background(), docsDir, examplesDir)
	require.NoError(t, err)

	// Then: counts reflect the one failure
	assert.Equal(t, 1, stats.DocsIndexed)
	assert.Equal(t, 1, stats.DocsFailed)
	assert.Equal(t, 1, stats.TemplatesIndexed)
	assert.Equal(t, 0, stats.TemplatesFailed)
	assert.Nil(t, stats.Commit)
}

func TestRebuildFromSource_IndexIsSearchable(t *testing.T) {
	// Given: a completed rebuild
	cfg := testConfig(t)
	docsDir, examplesDir := writeFixtureSource(t)
	_, err := New(cfg).RebuildFromSource(context.Background(), docsDir, examplesDir)
	require.NoError(t, err)

	// When: querying the built indexes through the services
	docSvc := search.NewDocSearch(cfg.DocsDBPath())
	defer docSvc.Close()
	tmplSvc := search.NewTemplateSearch(cfg.TemplatesDBPath())
	defer tmplSvc.Close()

	// Then: both serve results
	results := docSvc.Search(context.Background(), "buttons", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "Buttons", results[0].Title)

	templates := tmplSvc.SearchTemplates(context.Background(), "album", "", 10)
	require.NotEmpty(t, templates)
	assert.Equal(t, "album", templates[0].Name)
}

func TestRebuildFromSource_MissingDocsDirFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := New(cfg).RebuildFromSource(context.Background(),
		filepath.Join(t.TempDir(), "nope"), t.TempDir())

	require.Error(t, err)
}

func TestRebuildFromSource_ReplacesPreviousIndex(t *testing.T) {
	// Given: an index built once
	cfg := testConfig(t)
	docsDir, examplesDir := writeFixtureSource(t)
	ctx := context.Background()
	ix := New(cfg)
	_, err := ix.RebuildFromSource(ctx, docsDir, examplesDir)
	require.NoError(t, err)

	// When: rebuilding from the same source
	stats, err := ix.RebuildFromSource(ctx, docsDir, examplesDir)
	require.NoError(t, err)

	// Then: counts stay the same instead of doubling
	assert.Equal(t, 1, stats.DocsIndexed)
	assert.Equal(t, 1, stats.TemplatesIndexed)
}

func TestEnsureIndexes_SkipsWhenPopulated(t *testing.T) {
	// Given: a populated index and no usable checkout
	cfg := testConfig(t)
	docsDir, examplesDir := writeFixtureSource(t)
	ix := New(cfg)
	_, err := ix.RebuildFromSource(context.Background(), docsDir, examplesDir)
	require.NoError(t, err)

	// Then: bootstrap is a no-op, never touching the repository
	assert.NoError(t, ix.EnsureIndexes(context.Background()))
}
