// Package store owns the persisted SQLite schema: one FTS5 virtual table and
// one metadata table per domain (documents, templates), joined 1:1 by rowid.
// Every search query joins the two tables on identical identifiers, so the
// insert paths preserve that correspondence on replace.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGO)
)

// Open opens a SQLite database at path with the pragmas every store and
// query service uses. An empty path opens an in-memory database for testing.
func Open(path string) (*sql.DB, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer; SQLite serializes writes anyway and a second connection
	// would only turn contention into SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	if path != "" {
		// WAL lets readers proceed during a rebuild. Not supported in memory.
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	return db, nil
}

// marshalError annotates per-record serialization failures with the key.
func marshalError(key, field string, err error) error {
	return fmt.Errorf("marshal %s for %s: %w", field, key, err)
}
