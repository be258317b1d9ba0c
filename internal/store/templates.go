package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/flock"

	"github.com/bootstrapmcp/bootstrapmcp/internal/templates"
)

const templatesSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS templates_fts USING fts5(
	name,
	title,
	category,
	description,
	content,
	tokenize='porter unicode61'
);

CREATE TABLE IF NOT EXISTS template_metadata (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	complexity TEXT NOT NULL DEFAULT '',
	html_path TEXT NOT NULL DEFAULT '',
	css_files TEXT NOT NULL DEFAULT '[]',
	js_files TEXT NOT NULL DEFAULT '[]',
	components TEXT NOT NULL DEFAULT '[]',
	utility_classes TEXT NOT NULL DEFAULT '[]',
	has_rtl_variant INTEGER NOT NULL DEFAULT 0,
	rtl_template_name TEXT NOT NULL DEFAULT '',
	is_rtl INTEGER NOT NULL DEFAULT 0,
	url TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_template_name ON template_metadata(name);
CREATE INDEX IF NOT EXISTS idx_template_category ON template_metadata(category);
`

// TemplateStore persists parsed example templates, mirroring the DocStore
// layout: searchable columns in templates_fts, the rest in template_metadata,
// with templates_fts.rowid equal to template_metadata.id.
type TemplateStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	logger *slog.Logger
	closed bool
}

// TemplateStoreOption configures a TemplateStore.
type TemplateStoreOption func(*TemplateStore)

// WithTemplateLogger sets the logger used for build progress and failures.
func WithTemplateLogger(logger *slog.Logger) TemplateStoreOption {
	return func(s *TemplateStore) { s.logger = logger }
}

// NewTemplateStore opens (or creates) the template index at path. An empty
// path opens an in-memory database.
func NewTemplateStore(path string, opts ...TemplateStoreOption) (*TemplateStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	s := &TemplateStore{
		db:     db,
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize creates the schema if it does not exist.
func (s *TemplateStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.initSchema(ctx)
}

func (s *TemplateStore) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, templatesSchema); err != nil {
		return fmt.Errorf("initialize templates schema: %w", err)
	}
	return nil
}

// Clear removes every indexed template, keeping the schema.
func (s *TemplateStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.clearLocked(ctx)
}

func (s *TemplateStore) clearLocked(ctx context.Context) error {
	for _, stmt := range []string{"DELETE FROM templates_fts", "DELETE FROM template_metadata"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear template index: %w", err)
		}
	}
	return nil
}

// InsertOrReplace writes one template, keyed by name. Replacing an existing
// template reuses its metadata id and rewrites the FTS row at the same rowid.
func (s *TemplateStore) InsertOrReplace(ctx context.Context, rec *templates.TemplateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.insertLocked(ctx, rec)
}

func (s *TemplateStore) insertLocked(ctx context.Context, rec *templates.TemplateRecord) error {
	cssFiles, err := json.Marshal(emptyIfNil(rec.CSSFiles))
	if err != nil {
		return marshalError(rec.Name, "css files", err)
	}
	jsFiles, err := json.Marshal(emptyIfNil(rec.JSFiles))
	if err != nil {
		return marshalError(rec.Name, "js files", err)
	}
	components, err := json.Marshal(emptyIfNil(rec.Components))
	if err != nil {
		return marshalError(rec.Name, "components", err)
	}
	utilities, err := json.Marshal(emptyIfNil(rec.UtilityClasses))
	if err != nil {
		return marshalError(rec.Name, "utility classes", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM template_metadata WHERE name = ?", rec.Name).Scan(&id)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE template_metadata SET
				title = ?, category = ?, description = ?, complexity = ?,
				html_path = ?, css_files = ?, js_files = ?, components = ?,
				utility_classes = ?, has_rtl_variant = ?, rtl_template_name = ?,
				is_rtl = ?, url = ?
			WHERE id = ?`,
			rec.Title, rec.Category, rec.Description, rec.Complexity,
			rec.HTMLPath, string(cssFiles), string(jsFiles), string(components),
			string(utilities), boolToInt(rec.HasRTLVariant), rec.RTLTemplateName,
			boolToInt(rec.IsRTL), rec.URL, id)
		if err != nil {
			return fmt.Errorf("update metadata for %s: %w", rec.Name, err)
		}
		if _, err = tx.ExecContext(ctx,
			"DELETE FROM templates_fts WHERE rowid = ?", id); err != nil {
			return fmt.Errorf("delete stale fts row for %s: %w", rec.Name, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, execErr := tx.ExecContext(ctx, `
			INSERT INTO template_metadata
				(name, title, category, description, complexity, html_path,
				 css_files, js_files, components, utility_classes,
				 has_rtl_variant, rtl_template_name, is_rtl, url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Name, rec.Title, rec.Category, rec.Description, rec.Complexity,
			rec.HTMLPath, string(cssFiles), string(jsFiles), string(components),
			string(utilities), boolToInt(rec.HasRTLVariant),
			rec.RTLTemplateName, boolToInt(rec.IsRTL), rec.URL)
		if execErr != nil {
			return fmt.Errorf("insert metadata for %s: %w", rec.Name, execErr)
		}
		if id, execErr = res.LastInsertId(); execErr != nil {
			return fmt.Errorf("read metadata id for %s: %w", rec.Name, execErr)
		}
	default:
		return fmt.Errorf("look up %s: %w", rec.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO templates_fts (rowid, name, title, category, description, content)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, rec.Name, rec.Title, rec.Category, rec.Description, rec.Content)
	if err != nil {
		return fmt.Errorf("insert fts row for %s: %w", rec.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert for %s: %w", rec.Name, err)
	}
	return nil
}

// Build replaces the whole index with the given templates, under the same
// file-lock discipline as DocStore.Build. Returns how many templates were
// indexed and how many failed to insert.
func (s *TemplateStore) Build(ctx context.Context, records []*templates.TemplateRecord) (indexed, failed int, err error) {
	var lock *flock.Flock
	if s.path != "" {
		lock = flock.New(s.path + ".lock")
		if err := lock.Lock(); err != nil {
			return 0, 0, fmt.Errorf("acquire build lock: %w", err)
		}
		defer func() { _ = lock.Unlock() }()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, 0, ErrStoreClosed
	}

	if err := s.initSchema(ctx); err != nil {
		return 0, 0, err
	}
	if err := s.clearLocked(ctx); err != nil {
		return 0, 0, err
	}

	for _, rec := range records {
		if err := s.insertLocked(ctx, rec); err != nil {
			s.logger.Error("template index insert failed",
				slog.String("template", rec.Name),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		indexed++
	}

	s.logger.Info("template index built",
		slog.Int("indexed", indexed),
		slog.Int("failed", failed))
	return indexed, failed, nil
}

// Count returns the number of indexed templates.
func (s *TemplateStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM template_metadata").Scan(&n); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return n, nil
}

// Close releases the underlying database. Safe to call more than once.
func (s *TemplateStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Path returns the database file path, empty for in-memory stores.
func (s *TemplateStore) Path() string { return s.path }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
