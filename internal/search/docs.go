package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
	"github.com/bootstrapmcp/bootstrapmcp/internal/knowledge"
	"github.com/bootstrapmcp/bootstrapmcp/internal/store"
)

// ErrClosed is returned internally when a service is used after Close.
var ErrClosed = errors.New("search service is closed")

const docSearchQuery = `
SELECT
	m.id,
	m.filepath,
	m.title,
	m.description,
	m.section,
	m.component_name,
	m.url,
	snippet(docs_fts, 2, '<mark>', '</mark>', '...', 64),
	bm25(docs_fts)
FROM docs_fts
JOIN doc_metadata m ON m.id = docs_fts.rowid
WHERE docs_fts MATCH ?
ORDER BY bm25(docs_fts)
LIMIT ?`

// DocSearch is the documentation query service. It opens its own connection
// to the index on first use and keeps it until Close. Every method absorbs
// failures: they are logged and surface as empty or not-found results.
type DocSearch struct {
	mu     sync.Mutex
	path   string
	db     *sql.DB
	logger *slog.Logger
	closed bool
}

// DocSearchOption configures a DocSearch.
type DocSearchOption func(*DocSearch)

// WithDocSearchLogger sets the logger used for absorbed failures.
func WithDocSearchLogger(logger *slog.Logger) DocSearchOption {
	return func(s *DocSearch) { s.logger = logger }
}

// NewDocSearch creates a documentation query service over the index at path.
// The database is not opened until the first operation.
func NewDocSearch(path string, opts ...DocSearchOption) *DocSearch {
	s := &DocSearch{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DocSearch) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.db == nil {
		db, err := store.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("connect to doc index: %w", err)
		}
		s.db = db
	}
	return s.db, nil
}

// Close releases the connection. Further operations return empty results.
func (s *DocSearch) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Reset drops the current connection so the next operation reopens the
// index. Called after a rebuild replaces the database contents.
func (s *DocSearch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// Search runs a ranked full-text search. The query is first expanded by the
// synonym table; if the expanded query fails to execute (FTS syntax issues
// are the usual cause) it retries once with the raw query, then gives up
// with an empty result.
func (s *DocSearch) Search(ctx context.Context, query string, limit int) []DocSearchResult {
	expanded := knowledge.ExpandQuery(query)
	results, err := s.runSearch(ctx, expanded, limit)
	if err == nil {
		return results
	}
	s.logger.Warn("expanded search failed, retrying with raw query",
		slog.String("query", query),
		slog.String("error", err.Error()))

	results, err = s.runSearch(ctx, query, limit)
	if err != nil {
		s.logger.Error("doc search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}
	return results
}

func (s *DocSearch) runSearch(ctx context.Context, match string, limit int) ([]DocSearchResult, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, docSearchQuery, match, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DocSearchResult
	for rows.Next() {
		var r DocSearchResult
		var score float64
		if err := rows.Scan(&r.ID, &r.Filepath, &r.Title, &r.Description,
			&r.Section, &r.ComponentName, &r.URL, &r.Snippet, &score); err != nil {
			return nil, err
		}
		if score < 0 {
			score = -score
		}
		r.RelevanceScore = score
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetComponent finds the documentation page for a component by exact name.
// Returns nil when no page matches.
func (s *DocSearch) GetComponent(ctx context.Context, name string) *ComponentDoc {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("component lookup failed",
			slog.String("component", name),
			slog.String("error", err.Error()))
		return nil
	}

	var (
		doc       ComponentDoc
		utilities string
		examples  string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, filepath, title, description, section, component_name,
		       utility_classes, code_examples, url
		FROM doc_metadata
		WHERE component_name = ?
		LIMIT 1`, name).Scan(
		&doc.ID, &doc.Filepath, &doc.Title, &doc.Description, &doc.Section,
		&doc.ComponentName, &utilities, &examples, &doc.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logger.Error("component lookup failed",
			slog.String("component", name),
			slog.String("error", err.Error()))
		return nil
	}

	doc.UtilityClasses = unmarshalStrings(utilities, s.logger)
	doc.CodeExamples = unmarshalExamples(examples, s.logger)
	return &doc
}

// FindUtilityClass lists the pages whose utility-class set contains the
// class. The LIKE probe over the serialized array is a prefilter; membership
// is rechecked against the decoded list so col-1 never matches col-10.
func (s *DocSearch) FindUtilityClass(ctx context.Context, class string) []UtilityClassDoc {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("utility class lookup failed",
			slog.String("class", class),
			slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, filepath, title, description, section, utility_classes, url
		FROM doc_metadata
		WHERE utility_classes LIKE ?`,
		`%"`+class+`"%`)
	if err != nil {
		s.logger.Error("utility class lookup failed",
			slog.String("class", class),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []UtilityClassDoc
	for rows.Next() {
		var (
			doc       UtilityClassDoc
			utilities string
		)
		if err := rows.Scan(&doc.ID, &doc.Filepath, &doc.Title,
			&doc.Description, &doc.Section, &utilities, &doc.URL); err != nil {
			s.logger.Error("utility class scan failed", slog.String("error", err.Error()))
			return nil
		}
		doc.UtilityClasses = unmarshalStrings(utilities, s.logger)
		if containsString(doc.UtilityClasses, class) {
			results = append(results, doc)
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("utility class lookup failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// Sections lists every non-empty documentation section with its page count,
// sorted by section name.
func (s *DocSearch) Sections(ctx context.Context) []SectionCount {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("section list failed", slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT section, COUNT(*)
		FROM doc_metadata
		WHERE section IS NOT NULL AND section != ''
		GROUP BY section
		ORDER BY section`)
	if err != nil {
		s.logger.Error("section list failed", slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []SectionCount
	for rows.Next() {
		var sc SectionCount
		if err := rows.Scan(&sc.Section, &sc.Count); err != nil {
			s.logger.Error("section scan failed", slog.String("error", err.Error()))
			return nil
		}
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("section list failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// DocsBySection lists every page in a section, ordered by title.
func (s *DocSearch) DocsBySection(ctx context.Context, section string) []SectionDoc {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("section browse failed",
			slog.String("section", section),
			slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, filepath, title, description, section, component_name, url
		FROM doc_metadata
		WHERE section = ?
		ORDER BY title`, section)
	if err != nil {
		s.logger.Error("section browse failed",
			slog.String("section", section),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []SectionDoc
	for rows.Next() {
		var doc SectionDoc
		if err := rows.Scan(&doc.ID, &doc.Filepath, &doc.Title,
			&doc.Description, &doc.Section, &doc.ComponentName, &doc.URL); err != nil {
			s.logger.Error("section doc scan failed", slog.String("error", err.Error()))
			return nil
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("section browse failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// GetDocBySlug fetches the complete page whose filepath ends in
// "/<slug>.mdx", including the indexed body content. Returns nil on miss.
func (s *DocSearch) GetDocBySlug(ctx context.Context, slug string) *FullDoc {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("doc lookup failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()))
		return nil
	}

	var (
		doc       FullDoc
		utilities string
		examples  string
		aliases   string
	)
	err = db.QueryRowContext(ctx, `
		SELECT m.id, m.filepath, m.title, m.description, m.section,
		       m.component_name, m.utility_classes, m.code_examples,
		       m.aliases, m.toc, m.url, docs_fts.content
		FROM doc_metadata m
		JOIN docs_fts ON m.id = docs_fts.rowid
		WHERE m.filepath LIKE ?
		LIMIT 1`,
		"%/"+slug+docs.Extension).Scan(
		&doc.ID, &doc.Filepath, &doc.Title, &doc.Description, &doc.Section,
		&doc.ComponentName, &utilities, &examples, &aliases, &doc.Toc,
		&doc.URL, &doc.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logger.Error("doc lookup failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()))
		return nil
	}

	doc.UtilityClasses = unmarshalStrings(utilities, s.logger)
	doc.CodeExamples = unmarshalExamples(examples, s.logger)
	doc.Aliases = unmarshalStrings(aliases, s.logger)
	return &doc
}

// CodeExamples finds pages with code examples whose title, component name,
// or example text contains the query.
func (s *DocSearch) CodeExamples(ctx context.Context, query string, limit int) []ExampleDoc {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("example search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}

	like := "%" + query + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT id, filepath, title, section, component_name, code_examples, url
		FROM doc_metadata
		WHERE code_examples != '[]'
		AND (title LIKE ? OR component_name LIKE ? OR code_examples LIKE ?)
		LIMIT ?`, like, like, like, limit)
	if err != nil {
		s.logger.Error("example search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []ExampleDoc
	for rows.Next() {
		var (
			doc      ExampleDoc
			examples string
		)
		if err := rows.Scan(&doc.ID, &doc.Filepath, &doc.Title, &doc.Section,
			&doc.ComponentName, &examples, &doc.URL); err != nil {
			s.logger.Error("example scan failed", slog.String("error", err.Error()))
			return nil
		}
		doc.CodeExamples = unmarshalExamples(examples, s.logger)
		if len(doc.CodeExamples) > 0 {
			results = append(results, doc)
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("example search failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// RelatedComponents expands the curated relationship table for a component
// and fetches the full record of each related component found in the index,
// ordered by title. Unknown components resolve to an empty list.
func (s *DocSearch) RelatedComponents(ctx context.Context, name string) []ComponentDoc {
	related := knowledge.RelatedComponents(name)
	if len(related) == 0 {
		return nil
	}

	var results []ComponentDoc
	for _, rel := range related {
		if doc := s.GetComponent(ctx, rel); doc != nil {
			results = append(results, *doc)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Title < results[j].Title })
	return results
}

// UseCase looks up a use-case pattern by name, case-insensitively, and
// hydrates its component list into full records. A miss returns Found false
// with the valid names.
func (s *DocSearch) UseCase(ctx context.Context, name string) UseCaseResult {
	uc, ok := knowledge.LookupUseCase(name)
	if !ok {
		return UseCaseResult{
			Name:       name,
			Found:      false,
			Message:    fmt.Sprintf("Use case %q not found", name),
			ValidNames: knowledge.UseCaseNames(),
		}
	}

	var components []ComponentDoc
	for _, comp := range uc.Components {
		if doc := s.GetComponent(ctx, comp); doc != nil {
			components = append(components, *doc)
		}
	}

	return UseCaseResult{
		Name:        uc.Name,
		Found:       true,
		Description: uc.Description,
		Components:  components,
		Templates:   uc.Templates,
		Utilities:   uc.Utilities,
		Sections:    uc.Sections,
	}
}

// Statistics aggregates the documentation index: total pages, per-section
// counts, the ten pages with the most utility classes, the ten with the most
// code examples, and the use-case catalog. Top-N sorts are stable so ties
// keep row order.
func (s *DocSearch) Statistics(ctx context.Context) DocsStatistics {
	stats := DocsStatistics{
		BySections:     s.Sections(ctx),
		UseCaseCatalog: knowledge.AllUseCases(),
	}

	db, err := s.conn()
	if err != nil {
		s.logger.Error("statistics failed", slog.String("error", err.Error()))
		return stats
	}

	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM doc_metadata").Scan(&stats.TotalDocuments); err != nil {
		s.logger.Error("statistics count failed", slog.String("error", err.Error()))
		return stats
	}

	rows, err := db.QueryContext(ctx, `
		SELECT title, component_name, utility_classes, code_examples
		FROM doc_metadata`)
	if err != nil {
		s.logger.Error("statistics scan failed", slog.String("error", err.Error()))
		return stats
	}
	defer rows.Close()

	var utilityRank, exampleRank []DocRankEntry
	for rows.Next() {
		var title, component, utilities, examples string
		if err := rows.Scan(&title, &component, &utilities, &examples); err != nil {
			s.logger.Error("statistics scan failed", slog.String("error", err.Error()))
			return stats
		}
		utilityRank = append(utilityRank, DocRankEntry{
			Title:         title,
			ComponentName: component,
			Count:         len(unmarshalStrings(utilities, s.logger)),
		})
		exampleRank = append(exampleRank, DocRankEntry{
			Title:         title,
			ComponentName: component,
			Count:         len(unmarshalExamples(examples, s.logger)),
		})
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("statistics scan failed", slog.String("error", err.Error()))
		return stats
	}

	stats.TopUtilityDocs = topN(utilityRank, 10)
	stats.TopExampleDocs = topN(exampleRank, 10)
	return stats
}

func topN(entries []DocRankEntry, n int) []DocRankEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func unmarshalStrings(raw string, logger *slog.Logger) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("malformed string array column", slog.String("error", err.Error()))
		return nil
	}
	return out
}

func unmarshalExamples(raw string, logger *slog.Logger) []docs.CodeExample {
	if raw == "" {
		return nil
	}
	var out []docs.CodeExample
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("malformed code example column", slog.String("error", err.Error()))
		return nil
	}
	return out
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
