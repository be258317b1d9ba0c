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

	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("store is closed")

const docsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
	title,
	description,
	content,
	section,
	component_name,
	tokenize='porter unicode61'
);

CREATE TABLE IF NOT EXISTS doc_metadata (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filepath TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	section TEXT NOT NULL DEFAULT '',
	component_name TEXT NOT NULL DEFAULT '',
	utility_classes TEXT NOT NULL DEFAULT '[]',
	code_examples TEXT NOT NULL DEFAULT '[]',
	aliases TEXT NOT NULL DEFAULT '[]',
	toc INTEGER NOT NULL DEFAULT 0,
	url TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_doc_filepath ON doc_metadata(filepath);
CREATE INDEX IF NOT EXISTS idx_doc_component ON doc_metadata(component_name);
CREATE INDEX IF NOT EXISTS idx_doc_section ON doc_metadata(section);
`

// DocStore persists parsed documentation records. Full-text columns live in
// docs_fts, everything else in doc_metadata, with docs_fts.rowid equal to
// doc_metadata.id for every record.
type DocStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	logger *slog.Logger
	closed bool
}

// DocStoreOption configures a DocStore.
type DocStoreOption func(*DocStore)

// WithDocLogger sets the logger used for build progress and failures.
func WithDocLogger(logger *slog.Logger) DocStoreOption {
	return func(s *DocStore) { s.logger = logger }
}

// NewDocStore opens (or creates) the documentation index at path. An empty
// path opens an in-memory database.
func NewDocStore(path string, opts ...DocStoreOption) (*DocStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	s := &DocStore{
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
func (s *DocStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.initSchema(ctx)
}

func (s *DocStore) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, docsSchema); err != nil {
		return fmt.Errorf("initialize docs schema: %w", err)
	}
	return nil
}

// Clear removes every indexed record, keeping the schema.
func (s *DocStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.clearLocked(ctx)
}

func (s *DocStore) clearLocked(ctx context.Context) error {
	for _, stmt := range []string{"DELETE FROM docs_fts", "DELETE FROM doc_metadata"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear docs index: %w", err)
		}
	}
	return nil
}

// InsertOrReplace writes one record, keyed by filepath. Replacing an existing
// record reuses its metadata id and rewrites the FTS row at the same rowid,
// so the 1:1 rowid correspondence survives re-indexing.
func (s *DocStore) InsertOrReplace(ctx context.Context, rec *docs.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.insertLocked(ctx, rec)
}

func (s *DocStore) insertLocked(ctx context.Context, rec *docs.DocumentRecord) error {
	utilities, err := json.Marshal(emptyIfNil(rec.UtilityClasses))
	if err != nil {
		return marshalError(rec.Filepath, "utility classes", err)
	}
	examples, err := json.Marshal(emptyExamplesIfNil(rec.CodeExamples))
	if err != nil {
		return marshalError(rec.Filepath, "code examples", err)
	}
	aliases, err := json.Marshal(emptyIfNil(rec.Aliases))
	if err != nil {
		return marshalError(rec.Filepath, "aliases", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM doc_metadata WHERE filepath = ?", rec.Filepath).Scan(&id)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE doc_metadata SET
				title = ?, description = ?, section = ?, component_name = ?,
				utility_classes = ?, code_examples = ?, aliases = ?, toc = ?, url = ?
			WHERE id = ?`,
			rec.Title, rec.Description, rec.Section, rec.ComponentName,
			string(utilities), string(examples), string(aliases),
			boolToInt(rec.Toc), rec.URL, id)
		if err != nil {
			return fmt.Errorf("update metadata for %s: %w", rec.Filepath, err)
		}
		if _, err = tx.ExecContext(ctx,
			"DELETE FROM docs_fts WHERE rowid = ?", id); err != nil {
			return fmt.Errorf("delete stale fts row for %s: %w", rec.Filepath, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, execErr := tx.ExecContext(ctx, `
			INSERT INTO doc_metadata
				(filepath, title, description, section, component_name,
				 utility_classes, code_examples, aliases, toc, url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Filepath, rec.Title, rec.Description, rec.Section,
			rec.ComponentName, string(utilities), string(examples),
			string(aliases), boolToInt(rec.Toc), rec.URL)
		if execErr != nil {
			return fmt.Errorf("insert metadata for %s: %w", rec.Filepath, execErr)
		}
		if id, execErr = res.LastInsertId(); execErr != nil {
			return fmt.Errorf("read metadata id for %s: %w", rec.Filepath, execErr)
		}
	default:
		return fmt.Errorf("look up %s: %w", rec.Filepath, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO docs_fts (rowid, title, description, content, section, component_name)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, rec.Title, rec.Description, rec.Content, rec.Section, rec.ComponentName)
	if err != nil {
		return fmt.Errorf("insert fts row for %s: %w", rec.Filepath, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert for %s: %w", rec.Filepath, err)
	}
	return nil
}

// Build replaces the whole index with the given records. The schema is
// created if missing, existing rows are cleared, and each record is inserted
// in turn. A cross-process file lock guards concurrent rebuilds against the
// same database file. Returns how many records were indexed and how many
// failed to insert.
func (s *DocStore) Build(ctx context.Context, records []*docs.DocumentRecord) (indexed, failed int, err error) {
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
			s.logger.Error("doc index insert failed",
				slog.String("filepath", rec.Filepath),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		indexed++
	}

	s.logger.Info("doc index built",
		slog.Int("indexed", indexed),
		slog.Int("failed", failed))
	return indexed, failed, nil
}

// Count returns the number of indexed documents.
func (s *DocStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM doc_metadata").Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Close releases the underlying database. Safe to call more than once.
func (s *DocStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Path returns the database file path, empty for in-memory stores.
func (s *DocStore) Path() string { return s.path }

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyExamplesIfNil(e []docs.CodeExample) []docs.CodeExample {
	if e == nil {
		return []docs.CodeExample{}
	}
	return e
}
