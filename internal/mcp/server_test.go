package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstrapmcp/bootstrapmcp/internal/config"
	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
	"github.com/bootstrapmcp/bootstrapmcp/internal/store"
	"github.com/bootstrapmcp/bootstrapmcp/internal/templates"
)

// newTestServer builds a server over small fixture indexes. The indexer is
// nil: refresh behavior against a real checkout is not exercised here.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	docsPath := filepath.Join(dir, "docs.db")
	ds, err := store.NewDocStore(docsPath)
	require.NoError(t, err)
	_, failed, err := ds.Build(ctx, []*docs.DocumentRecord{
		{
			Filepath:       "components/buttons.mdx",
			Title:          "Buttons",
			Description:    "Button styles for actions.",
			Content:        "Use button styles with support for multiple states.",
			Section:        "components",
			ComponentName:  "buttons",
			UtilityClasses: []string{"d-flex"},
			CodeExamples: []docs.CodeExample{
				{ID: "example_1", Content: `<button class="btn">Go</button>`},
			},
			URL: "https://getbootstrap.com/docs/5.3/components/buttons/",
		},
		{
			Filepath:      "components/navbar.mdx",
			Title:         "Navbar",
			Description:   "Responsive navigation header.",
			Content:       "Navigation header with branding.",
			Section:       "components",
			ComponentName: "navbar",
			URL:           "https://getbootstrap.com/docs/5.3/components/navbar/",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, failed)
	require.NoError(t, ds.Close())

	tmplPath := filepath.Join(dir, "templates.db")
	ts, err := store.NewTemplateStore(tmplPath)
	require.NoError(t, err)
	_, failed, err = ts.Build(ctx, []*templates.TemplateRecord{
		{
			Name:        "album",
			Title:       "Album example",
			Category:    "content",
			Description: "Photo album layout",
			Complexity:  "simple",
			Content:     "photo grid",
			Components:  []string{"navbar", "card"},
			URL:         "https://getbootstrap.com/docs/5.3/examples/album/",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, failed)
	require.NoError(t, ts.Close())

	docSvc := search.NewDocSearch(docsPath)
	tmplSvc := search.NewTemplateSearch(tmplPath)
	server, err := NewServer(config.New(), docSvc, tmplSvc, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func TestNewServer_RequiresServices(t *testing.T) {
	_, err := NewServer(config.New(), nil, nil, nil, nil)
	require.Error(t, err)
}

func TestSearchDocsHandler(t *testing.T) {
	// Given: a server over the fixture index
	s := newTestServer(t)
	ctx := context.Background()

	// When: searching
	_, out, err := s.searchDocsHandler(ctx, nil, SearchDocsInput{Query: "buttons"})
	require.NoError(t, err)

	// Then: results are wrapped with the echoed query and count
	assert.Equal(t, "buttons", out.Query)
	assert.Equal(t, len(out.Results), out.Count)
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "Buttons", out.Results[0].Title)
}

func TestSearchDocsHandler_EmptyQueryIsInvalidParams(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.searchDocsHandler(context.Background(), nil, SearchDocsInput{Query: "  "})

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, ErrCodeInvalidParams, toolErr.Code)
}

func TestGetComponentHandler_FoundAndMiss(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, hit, err := s.getComponentHandler(ctx, nil, GetComponentInput{ComponentName: "buttons"})
	require.NoError(t, err)
	assert.True(t, hit.Found)
	require.NotNil(t, hit.Data)
	assert.Equal(t, "Buttons", hit.Data.Title)

	// A miss is a structured result, not a protocol error.
	_, miss, err := s.getComponentHandler(ctx, nil, GetComponentInput{ComponentName: "spaceship"})
	require.NoError(t, err)
	assert.False(t, miss.Found)
	assert.NotEmpty(t, miss.Message)
	assert.Nil(t, miss.Data)
}

func TestGetUtilityClassHandler(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.getUtilityClassHandler(context.Background(), nil,
		GetUtilityClassInput{ClassName: "d-flex"})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Buttons", out.Results[0].Title)
}

func TestListSectionsHandler(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.listSectionsHandler(context.Background(), nil, ListSectionsInput{})
	require.NoError(t, err)

	require.Equal(t, 1, out.Count)
	assert.Equal(t, "components", out.Sections[0].Section)
	assert.Equal(t, 2, out.Sections[0].Count)
}

func TestGetFullDocHandler(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, hit, err := s.getFullDocHandler(ctx, nil, GetFullDocInput{Slug: "buttons"})
	require.NoError(t, err)
	assert.True(t, hit.Found)
	require.NotNil(t, hit.Data)
	assert.Contains(t, hit.Data.Content, "multiple states")

	_, miss, err := s.getFullDocHandler(ctx, nil, GetFullDocInput{Slug: "missing"})
	require.NoError(t, err)
	assert.False(t, miss.Found)
}

func TestGetUseCaseHandler_MissListsValidNames(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.getUseCaseHandler(context.Background(), nil, GetUseCaseInput{Name: "spaceship"})
	require.NoError(t, err)

	assert.False(t, out.Found)
	assert.NotEmpty(t, out.ValidNames)
}

func TestSearchTemplatesHandler(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.searchTemplatesHandler(context.Background(), nil,
		SearchTemplatesInput{Query: "photo"})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "album", out.Results[0].Name)
}

func TestGetTemplateHandler_Miss(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.getTemplateHandler(context.Background(), nil, GetTemplateInput{Name: "missing"})
	require.NoError(t, err)

	assert.False(t, out.Found)
	assert.NotEmpty(t, out.Message)
}

func TestGetTemplatePreviewHandler_DefaultsToMain(t *testing.T) {
	// The indexed album template has no markup on disk, so the preview is
	// empty, but the section default must still apply.
	s := newTestServer(t)

	_, out, err := s.getTemplatePreviewHandler(context.Background(), nil,
		GetTemplatePreviewInput{Name: "album"})
	require.NoError(t, err)

	assert.True(t, out.Found)
	require.NotNil(t, out.Data)
	assert.Equal(t, "main", out.Data.Section)
}

func TestRefreshDocsHandler_WithoutIndexer(t *testing.T) {
	// Given: a server constructed without an indexer
	s := newTestServer(t)

	_, out, err := s.refreshDocsHandler(context.Background(), nil, RefreshDocsInput{})
	require.NoError(t, err)

	// Then: refusal is a structured result, not a protocol error
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Message)
}

func TestClampLimit(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, 10, s.clampLimit(0, 10))
	assert.Equal(t, 5, s.clampLimit(-3, 5))
	assert.Equal(t, 7, s.clampLimit(7, 10))
	assert.Equal(t, s.cfg.Search.MaxLimit, s.clampLimit(10_000, 10))
}

func TestMissingRequiredParams(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	var toolErr *Error

	_, _, err := s.getComponentHandler(ctx, nil, GetComponentInput{})
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, ErrCodeInvalidParams, toolErr.Code)

	_, _, err = s.getUtilityClassHandler(ctx, nil, GetUtilityClassInput{})
	require.ErrorAs(t, err, &toolErr)

	_, _, err = s.getSectionDocsHandler(ctx, nil, GetSectionDocsInput{})
	require.ErrorAs(t, err, &toolErr)

	_, _, err = s.getFullDocHandler(ctx, nil, GetFullDocInput{})
	require.ErrorAs(t, err, &toolErr)

	_, _, err = s.getTemplateHandler(ctx, nil, GetTemplateInput{})
	require.ErrorAs(t, err, &toolErr)

	_, _, err = s.getTemplatesByCategoryHandler(ctx, nil, GetTemplatesByCategoryInput{})
	require.ErrorAs(t, err, &toolErr)
}
