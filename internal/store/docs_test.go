package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
)

func docRecord(filepath, title, content string) *docs.DocumentRecord {
	return &docs.DocumentRecord{
		Filepath:      filepath,
		Title:         title,
		Description:   "A " + title + " component.",
		Content:       content,
		Section:       "components",
		ComponentName: title,
		Toc:           true,
		URL:           "https://getbootstrap.com/docs/5.3/components/" + title + "/",
	}
}

func newTestDocStore(t *testing.T) *DocStore {
	t.Helper()
	s, err := NewDocStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestDocStore_BuildAndCount(t *testing.T) {
	// Given: an in-memory store and two records
	s := newTestDocStore(t)
	ctx := context.Background()
	records := []*docs.DocumentRecord{
		docRecord("components/buttons.mdx", "buttons", "Use button styles."),
		docRecord("components/alerts.mdx", "alerts", "Contextual feedback messages."),
	}

	// When: building the index
	indexed, failed, err := s.Build(ctx, records)
	require.NoError(t, err)

	// Then: everything is indexed
	assert.Equal(t, 2, indexed)
	assert.Equal(t, 0, failed)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDocStore_UpsertKeepsRowidAlignment(t *testing.T) {
	// Given: a record already indexed
	s := newTestDocStore(t)
	ctx := context.Background()
	rec := docRecord("components/buttons.mdx", "buttons", "original content")
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	// When: replacing it under the same filepath
	rec.Content = "replacement content"
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	// Then: still one metadata row
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// And: exactly one FTS row, joined 1:1 at the metadata id
	var ftsRows int
	require.NoError(t, s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM docs_fts").Scan(&ftsRows))
	assert.Equal(t, 1, ftsRows)

	var content string
	require.NoError(t, s.db.QueryRowContext(ctx, `
		SELECT docs_fts.content
		FROM docs_fts JOIN doc_metadata m ON m.id = docs_fts.rowid
		WHERE m.filepath = ?`, rec.Filepath).Scan(&content))
	assert.Equal(t, "replacement content", content)

	// And: the stale content is no longer findable
	var hits int
	require.NoError(t, s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM docs_fts WHERE docs_fts MATCH ?", "original").Scan(&hits))
	assert.Equal(t, 0, hits)
}

func TestDocStore_BuildReplacesPreviousIndex(t *testing.T) {
	s := newTestDocStore(t)
	ctx := context.Background()

	_, _, err := s.Build(ctx, []*docs.DocumentRecord{
		docRecord("components/buttons.mdx", "buttons", "body"),
		docRecord("components/alerts.mdx", "alerts", "body"),
	})
	require.NoError(t, err)

	// Rebuilding with one record leaves exactly one record.
	indexed, failed, err := s.Build(ctx, []*docs.DocumentRecord{
		docRecord("components/badge.mdx", "badge", "body"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, 0, failed)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDocStore_Clear(t *testing.T) {
	s := newTestDocStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertOrReplace(ctx, docRecord("components/buttons.mdx", "buttons", "body")))

	require.NoError(t, s.Clear(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDocStore_NilSlicesStoredAsEmptyArrays(t *testing.T) {
	// Given: a record with nil list fields
	s := newTestDocStore(t)
	ctx := context.Background()
	rec := docRecord("components/buttons.mdx", "buttons", "body")
	rec.UtilityClasses = nil
	rec.CodeExamples = nil
	rec.Aliases = nil
	require.NoError(t, s.InsertOrReplace(ctx, rec))

	// Then: columns hold JSON arrays, never null
	var utilities, examples, aliases string
	require.NoError(t, s.db.QueryRowContext(ctx, `
		SELECT utility_classes, code_examples, aliases
		FROM doc_metadata WHERE filepath = ?`, rec.Filepath).
		Scan(&utilities, &examples, &aliases))
	assert.Equal(t, "[]", utilities)
	assert.Equal(t, "[]", examples)
	assert.Equal(t, "[]", aliases)
}

func TestDocStore_ClosedErrors(t *testing.T) {
	s := newTestDocStore(t)
	ctx := context.Background()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Initialize(ctx), ErrStoreClosed)
	assert.ErrorIs(t, s.Clear(ctx), ErrStoreClosed)
	assert.ErrorIs(t, s.InsertOrReplace(ctx, docRecord("a.mdx", "a", "b")), ErrStoreClosed)
	_, err := s.Count(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)

	// Closing twice is fine.
	assert.NoError(t, s.Close())
}

func TestDocStore_FileBackedBuild(t *testing.T) {
	// Given: a file-backed store so the build lock path is exercised
	path := t.TempDir() + "/docs.db"
	s, err := NewDocStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	indexed, failed, err := s.Build(context.Background(), []*docs.DocumentRecord{
		docRecord("components/buttons.mdx", "buttons", "body"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, path, s.Path())
}
