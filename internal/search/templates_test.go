package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstrapmcp/bootstrapmcp/internal/store"
	"github.com/bootstrapmcp/bootstrapmcp/internal/templates"
)

const fixtureHTML = `<!doctype html>
<html>
<head><title>Album example</title></head>
<body>
<nav class="navbar">site navigation</nav>
<main class="container">
<div class="card">photo grid</div>
</main>
<footer class="text-muted">footer text</footer>
</body>
</html>`

// buildTemplateIndex writes template markup and assets to disk, indexes them,
// and returns the database path.
func buildTemplateIndex(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	albumDir := filepath.Join(root, "album")
	require.NoError(t, os.MkdirAll(albumDir, 0o755))
	htmlPath := filepath.Join(albumDir, "index.html")
	cssPath := filepath.Join(albumDir, "album.css")
	require.NoError(t, os.WriteFile(htmlPath, []byte(fixtureHTML), 0o644))
	require.NoError(t, os.WriteFile(cssPath, []byte("body { margin: 0; }"), 0o644))

	records := []*templates.TemplateRecord{
		{
			Name:        "album",
			Title:       "Album example",
			Category:    "content",
			Description: "Photo album layout with a grid of cards",
			Complexity:  "simple",
			HTMLPath:    htmlPath,
			Content:     "photo grid site navigation footer text",
			CSSFiles:    []string{cssPath},
			Components:  []string{"navbar", "card"},
			URL:         "https://getbootstrap.com/docs/5.3/examples/album/",
		},
		{
			Name:          "dashboard",
			Title:         "Dashboard example",
			Category:      "admin",
			Description:   "Admin dashboard with charts and a photo widget",
			Complexity:    "complex",
			Components:    []string{"navbar", "table"},
			HasRTLVariant: true,
			URL:           "https://getbootstrap.com/docs/5.3/examples/dashboard/",
		},
		{
			Name:        "sidebars",
			Title:       "Sidebars example",
			Category:    "navigation",
			Description: "Sidebar navigation patterns",
			Complexity:  "intermediate",
			Components:  []string{"nav"},
			URL:         "https://getbootstrap.com/docs/5.3/examples/sidebars/",
		},
	}

	path := filepath.Join(root, "templates.db")
	s, err := store.NewTemplateStore(path)
	require.NoError(t, err)
	_, failed, err := s.Build(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 0, failed)
	require.NoError(t, s.Close())
	return path
}

func newTemplateSearch(t *testing.T) *TemplateSearch {
	t.Helper()
	svc := NewTemplateSearch(buildTemplateIndex(t))
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestTemplateSearch_RankedResults(t *testing.T) {
	// Given: two templates mentioning "photo" in their descriptions
	svc := newTemplateSearch(t)

	// When: searching without a category filter
	results := svc.SearchTemplates(context.Background(), "photo", "", 10)

	// Then: both match, with positive scores and marked snippets
	require.Len(t, results, 2)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.Contains(t, r.Snippet, "<mark>")
	}
}

func TestTemplateSearch_CategoryFilter(t *testing.T) {
	svc := newTemplateSearch(t)

	results := svc.SearchTemplates(context.Background(), "photo", "admin", 10)

	require.Len(t, results, 1)
	assert.Equal(t, "dashboard", results[0].Name)
	assert.True(t, results[0].HasRTLVariant)
}

func TestTemplateSearch_GetTemplate_HydratesFiles(t *testing.T) {
	// Given: a template whose markup and stylesheet exist on disk
	svc := newTemplateSearch(t)

	// When: fetching it twice (second hit comes from the cache)
	tmpl := svc.GetTemplate(context.Background(), "album")
	require.NotNil(t, tmpl)
	again := svc.GetTemplate(context.Background(), "album")
	require.NotNil(t, again)

	// Then: file contents are attached, keyed by basename
	assert.Equal(t, fixtureHTML, tmpl.HTMLContent)
	assert.Equal(t, "body { margin: 0; }", tmpl.CSSContent["album.css"])
	assert.Empty(t, tmpl.JSContent)
	assert.Equal(t, tmpl.HTMLContent, again.HTMLContent)
}

func TestTemplateSearch_GetTemplate_MissingFilesAbsorbed(t *testing.T) {
	// Given: a template indexed without any files on disk
	svc := newTemplateSearch(t)

	tmpl := svc.GetTemplate(context.Background(), "dashboard")

	// Then: the lookup succeeds with empty contents
	require.NotNil(t, tmpl)
	assert.Empty(t, tmpl.HTMLContent)
	assert.Empty(t, tmpl.CSSContent)

	assert.Nil(t, svc.GetTemplate(context.Background(), "missing"))
}

func TestTemplateSearch_Preview_SectionExtraction(t *testing.T) {
	svc := newTemplateSearch(t)
	ctx := context.Background()

	// A tag-bounded section returns just that block.
	nav := svc.Preview(ctx, "album", "nav")
	require.NotNil(t, nav)
	assert.Equal(t, `<nav class="navbar">site navigation</nav>`, nav.Preview)

	// "full" returns the whole (short) document.
	full := svc.Preview(ctx, "album", "full")
	require.NotNil(t, full)
	assert.Equal(t, fixtureHTML, full.Preview)

	// A missing tag falls back to the character-limited document.
	header := svc.Preview(ctx, "album", "header")
	require.NotNil(t, header)
	assert.Equal(t, fixtureHTML, header.Preview)

	assert.Nil(t, svc.Preview(ctx, "missing", "full"))
}

func TestTemplateSearch_Categories(t *testing.T) {
	svc := newTemplateSearch(t)

	cats := svc.Categories(context.Background())

	require.Len(t, cats, 3)
	assert.Equal(t, "admin", cats[0].Category)
	assert.Equal(t, 1, cats[0].Count)
	assert.Equal(t, []string{"dashboard"}, cats[0].Templates)
	assert.Equal(t, "content", cats[1].Category)
	assert.Equal(t, "navigation", cats[2].Category)
}

func TestTemplateSearch_ByCategory(t *testing.T) {
	svc := newTemplateSearch(t)

	results := svc.ByCategory(context.Background(), "content")

	require.Len(t, results, 1)
	assert.Equal(t, "album", results[0].Name)
	assert.Empty(t, svc.ByCategory(context.Background(), "nonexistent"))
}

func TestTemplateSearch_ByComponent_ExactMembership(t *testing.T) {
	// Given: "navbar" on two templates and bare "nav" on a third
	svc := newTemplateSearch(t)
	ctx := context.Background()

	// Then: "nav" never matches templates that only list "navbar"
	navs := svc.ByComponent(ctx, "nav")
	require.Len(t, navs, 1)
	assert.Equal(t, "sidebars", navs[0].Name)

	navbars := svc.ByComponent(ctx, "navbar")
	assert.Len(t, navbars, 2)

	assert.Empty(t, svc.ByComponent(ctx, "spaceship"))
}

func TestTemplateSearch_Count(t *testing.T) {
	svc := newTemplateSearch(t)

	assert.Equal(t, 3, svc.Count(context.Background()))
}

func TestTemplateSearch_Statistics(t *testing.T) {
	svc := newTemplateSearch(t)

	stats := svc.Statistics(context.Background())

	assert.Equal(t, 3, stats.TotalTemplates)
	assert.Len(t, stats.ByCategory, 3)
	assert.Len(t, stats.ByComplexity, 3)

	// navbar appears on two templates and leads the component ranking.
	require.NotEmpty(t, stats.TopComponents)
	assert.Equal(t, "navbar", stats.TopComponents[0].Component)
	assert.Equal(t, 2, stats.TopComponents[0].Count)
}

func TestTemplateSearch_ResetClearsCache(t *testing.T) {
	// Given: cached markup from a previous fetch
	svc := newTemplateSearch(t)
	ctx := context.Background()
	require.NotNil(t, svc.GetTemplate(ctx, "album"))

	// When: the index is reset after a rebuild
	svc.Reset()

	// Then: fetches keep working against the reopened index
	tmpl := svc.GetTemplate(ctx, "album")
	require.NotNil(t, tmpl)
	assert.Equal(t, fixtureHTML, tmpl.HTMLContent)
}

func TestTemplateSearch_CloseAbsorbsFurtherCalls(t *testing.T) {
	svc := newTemplateSearch(t)
	ctx := context.Background()
	require.NoError(t, svc.Close())

	assert.Empty(t, svc.SearchTemplates(ctx, "photo", "", 10))
	assert.Nil(t, svc.GetTemplate(ctx, "album"))
	assert.Equal(t, 0, svc.Count(ctx))
	assert.NoError(t, svc.Close())
}
