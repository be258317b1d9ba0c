package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstrapmcp/bootstrapmcp/internal/templates"
)

func templateRecord(name, category string) *templates.TemplateRecord {
	return &templates.TemplateRecord{
		Name:        name,
		Title:       name + " example",
		Category:    category,
		Description: "The " + name + " template.",
		Complexity:  "simple",
		HTMLPath:    "/tmp/" + name + "/index.html",
		Content:     "Example content for " + name,
		Components:  []string{"navbar", "card"},
		URL:         "https://getbootstrap.com/docs/5.3/examples/" + name + "/",
	}
}

func newTestTemplateStore(t *testing.T) *TemplateStore {
	t.Helper()
	s, err := NewTemplateStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestTemplateStore_BuildAndCount(t *testing.T) {
	s := newTestTemplateStore(t)
	ctx := context.Background()

	indexed, failed, err := s.Build(ctx, []*templates.TemplateRecord{
		templateRecord("album", "content"),
		templateRecord("dashboard", "admin"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, indexed)
	assert.Equal(t, 0, failed)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTemplateStore_UpsertByName(t *testing.T) {
	// Given: a template already indexed
	s := newTestTemplateStore(t)
	ctx := context.Background()
	rec := templateRecord("album", "content")
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	// When: replacing it under the same name
	rec.Category = "layouts"
	rec.Content = "updated content"
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	// Then: one metadata row, one aligned FTS row, updated fields visible
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var category, content string
	require.NoError(t, s.db.QueryRowContext(ctx, `
		SELECT m.category, templates_fts.content
		FROM templates_fts JOIN template_metadata m ON m.id = templates_fts.rowid
		WHERE m.name = ?`, rec.Name).Scan(&category, &content))
	assert.Equal(t, "layouts", category)
	assert.Equal(t, "updated content", content)
}

func TestTemplateStore_RTLFlagsRoundTrip(t *testing.T) {
	s := newTestTemplateStore(t)
	ctx := context.Background()
	rec := templateRecord("album", "content")
	rec.HasRTLVariant = true
	rec.RTLTemplateName = "album-rtl"
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	var hasRTL, isRTL int
	var rtlName string
	require.NoError(t, s.db.QueryRowContext(ctx, `
		SELECT has_rtl_variant, is_rtl, rtl_template_name
		FROM template_metadata WHERE name = ?`, rec.Name).
		Scan(&hasRTL, &isRTL, &rtlName))
	assert.Equal(t, 1, hasRTL)
	assert.Equal(t, 0, isRTL)
	assert.Equal(t, "album-rtl", rtlName)
}

func TestTemplateStore_ClosedErrors(t *testing.T) {
	s := newTestTemplateStore(t)
	ctx := context.Background()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Initialize(ctx), ErrStoreClosed)
	assert.ErrorIs(t, s.InsertOrReplace(ctx, templateRecord("album", "content")), ErrStoreClosed)
	_, _, err := s.Build(ctx, nil)
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.NoError(t, s.Close())
}
