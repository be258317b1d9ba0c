package search

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bootstrapmcp/bootstrapmcp/internal/store"
)

const (
	// htmlCacheSize bounds the number of template markup files kept in memory.
	htmlCacheSize = 32
	// previewCharLimit caps section previews when no tag matches.
	previewCharLimit = 5000
	// previewLineLimit caps the "full" preview.
	previewLineLimit = 500
)

const templateSearchQuery = `
SELECT
	m.id,
	m.name,
	m.title,
	m.category,
	m.description,
	m.complexity,
	m.components,
	m.has_rtl_variant,
	m.url,
	snippet(templates_fts, 3, '<mark>', '</mark>', '...', 64),
	bm25(templates_fts)
FROM templates_fts
JOIN template_metadata m ON m.id = templates_fts.rowid
WHERE templates_fts MATCH ?%s
ORDER BY bm25(templates_fts)
LIMIT ?`

// previewSections maps a preview section name to the tag-bounded pattern
// that extracts it. Anything else falls back to a character-limited slice.
var previewSections = map[string]*regexp.Regexp{
	"header": regexp.MustCompile(`(?is)<header[^>]*>.*?</header>`),
	"nav":    regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`),
	"main":   regexp.MustCompile(`(?is)<main[^>]*>.*?</main>`),
	"footer": regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`),
}

// TemplateSearch is the template query service. Like DocSearch it connects
// lazily, never propagates failures, and is safe for concurrent use. Template
// markup read from disk is kept in a small LRU cache.
type TemplateSearch struct {
	mu        sync.Mutex
	path      string
	db        *sql.DB
	logger    *slog.Logger
	closed    bool
	htmlCache *lru.Cache[string, string]
}

// TemplateSearchOption configures a TemplateSearch.
type TemplateSearchOption func(*TemplateSearch)

// WithTemplateSearchLogger sets the logger used for absorbed failures.
func WithTemplateSearchLogger(logger *slog.Logger) TemplateSearchOption {
	return func(s *TemplateSearch) { s.logger = logger }
}

// NewTemplateSearch creates a template query service over the index at path.
func NewTemplateSearch(path string, opts ...TemplateSearchOption) *TemplateSearch {
	cache, _ := lru.New[string, string](htmlCacheSize)
	s := &TemplateSearch{
		path:      path,
		logger:    slog.Default(),
		htmlCache: cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TemplateSearch) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.db == nil {
		db, err := store.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("connect to template index: %w", err)
		}
		s.db = db
	}
	return s.db, nil
}

// Close releases the connection. Further operations return empty results.
func (s *TemplateSearch) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.htmlCache.Purge()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Reset drops the connection and the markup cache so the next operation
// sees a freshly rebuilt index.
func (s *TemplateSearch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.htmlCache.Purge()
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// SearchTemplates runs a ranked full-text search over templates, optionally
// restricted to one category. Template queries are not synonym-expanded.
func (s *TemplateSearch) SearchTemplates(ctx context.Context, query, category string, limit int) []TemplateSearchResult {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("template search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}

	filter := ""
	args := []any{query}
	if category != "" {
		filter = " AND m.category = ?"
		args = append(args, category)
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(templateSearchQuery, filter), args...)
	if err != nil {
		s.logger.Error("template search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []TemplateSearchResult
	for rows.Next() {
		var (
			r          TemplateSearchResult
			components string
			hasRTL     int
			score      float64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Title, &r.Category,
			&r.Description, &r.Complexity, &components, &hasRTL, &r.URL,
			&r.Snippet, &score); err != nil {
			s.logger.Error("template scan failed", slog.String("error", err.Error()))
			return nil
		}
		r.Components = unmarshalStrings(components, s.logger)
		r.HasRTLVariant = hasRTL != 0
		if score < 0 {
			score = -score
		}
		r.RelevanceScore = score
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("template search failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// GetTemplate fetches a template by name and hydrates it with file contents:
// the markup (LRU-cached), plus every stylesheet and script keyed by
// basename. Unreadable files are logged and left empty rather than failing
// the lookup. Returns nil on miss.
func (s *TemplateSearch) GetTemplate(ctx context.Context, name string) *TemplateDetail {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("template lookup failed",
			slog.String("template", name),
			slog.String("error", err.Error()))
		return nil
	}

	var (
		t          TemplateDetail
		htmlPath   string
		cssFiles   string
		jsFiles    string
		components string
		utilities  string
		hasRTL     int
		isRTL      int
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, name, title, category, description, complexity, html_path,
		       css_files, js_files, components, utility_classes,
		       has_rtl_variant, rtl_template_name, is_rtl, url
		FROM template_metadata
		WHERE name = ?
		LIMIT 1`, name).Scan(
		&t.ID, &t.Name, &t.Title, &t.Category, &t.Description, &t.Complexity,
		&htmlPath, &cssFiles, &jsFiles, &components, &utilities,
		&hasRTL, &t.RTLTemplateName, &isRTL, &t.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logger.Error("template lookup failed",
			slog.String("template", name),
			slog.String("error", err.Error()))
		return nil
	}

	t.Components = unmarshalStrings(components, s.logger)
	t.UtilityClasses = unmarshalStrings(utilities, s.logger)
	t.HasRTLVariant = hasRTL != 0
	t.IsRTL = isRTL != 0
	t.HTMLContent = s.readHTML(name, htmlPath)
	t.CSSContent = s.readFiles(unmarshalStrings(cssFiles, s.logger))
	t.JSContent = s.readFiles(unmarshalStrings(jsFiles, s.logger))
	return &t
}

func (s *TemplateSearch) readHTML(name, path string) string {
	if path == "" {
		return ""
	}
	if cached, ok := s.htmlCache.Get(name); ok {
		return cached
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("template markup read failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return ""
	}
	content := string(raw)
	s.htmlCache.Add(name, content)
	return content
}

func (s *TemplateSearch) readFiles(paths []string) map[string]string {
	contents := make(map[string]string, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			s.logger.Error("template asset read failed",
				slog.String("path", p),
				slog.String("error", err.Error()))
			continue
		}
		contents[filepath.Base(p)] = string(raw)
	}
	return contents
}

// Preview extracts a named markup section from a template. The section tags
// header, nav, main, and footer are extracted with tag-bounded matches,
// falling back to the first 5000 characters when absent; "full" instead
// returns the first 500 lines. Returns nil when the template does not exist.
func (s *TemplateSearch) Preview(ctx context.Context, name, section string) *TemplatePreview {
	t := s.GetTemplate(ctx, name)
	if t == nil {
		return nil
	}

	var preview string
	if section == "full" {
		lines := strings.Split(t.HTMLContent, "\n")
		if len(lines) > previewLineLimit {
			lines = lines[:previewLineLimit]
		}
		preview = strings.Join(lines, "\n")
	} else {
		preview = extractSection(t.HTMLContent, section)
	}

	return &TemplatePreview{
		Name:    t.Name,
		Title:   t.Title,
		Section: section,
		Preview: preview,
		URL:     t.URL,
	}
}

func extractSection(html, section string) string {
	pattern, ok := previewSections[section]
	if !ok {
		return truncateChars(html, previewCharLimit)
	}
	if m := pattern.FindString(html); m != "" {
		return m
	}
	return truncateChars(html, previewCharLimit)
}

func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Categories lists every template category with its count and member
// names, sorted by category.
func (s *TemplateSearch) Categories(ctx context.Context) []CategoryInfo {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("category list failed", slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT category, COUNT(*), GROUP_CONCAT(name, ', ')
		FROM template_metadata
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		s.logger.Error("category list failed", slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	var results []CategoryInfo
	for rows.Next() {
		var (
			info    CategoryInfo
			members sql.NullString
		)
		if err := rows.Scan(&info.Category, &info.Count, &members); err != nil {
			s.logger.Error("category scan failed", slog.String("error", err.Error()))
			return nil
		}
		if members.Valid && members.String != "" {
			info.Templates = strings.Split(members.String, ", ")
		}
		results = append(results, info)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("category list failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// ByCategory lists every template in a category, ordered by name.
func (s *TemplateSearch) ByCategory(ctx context.Context, category string) []TemplateSummary {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("category browse failed",
			slog.String("category", category),
			slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, title, category, description, complexity,
		       components, has_rtl_variant, url
		FROM template_metadata
		WHERE category = ?
		ORDER BY name`, category)
	if err != nil {
		s.logger.Error("category browse failed",
			slog.String("category", category),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	results, err := scanTemplateSummaries(rows, s.logger)
	if err != nil {
		s.logger.Error("category browse failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

// ByComponent lists every template whose component set contains the
// component. LIKE prefilter over the serialized array, membership rechecked
// against the decoded list.
func (s *TemplateSearch) ByComponent(ctx context.Context, component string) []TemplateSummary {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("component browse failed",
			slog.String("component", component),
			slog.String("error", err.Error()))
		return nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, title, category, description, complexity,
		       components, has_rtl_variant, url
		FROM template_metadata
		WHERE components LIKE ?`,
		`%"`+component+`"%`)
	if err != nil {
		s.logger.Error("component browse failed",
			slog.String("component", component),
			slog.String("error", err.Error()))
		return nil
	}
	defer rows.Close()

	all, err := scanTemplateSummaries(rows, s.logger)
	if err != nil {
		s.logger.Error("component browse failed", slog.String("error", err.Error()))
		return nil
	}

	results := all[:0]
	for _, t := range all {
		if containsString(t.Components, component) {
			results = append(results, t)
		}
	}
	return results
}

func scanTemplateSummaries(rows *sql.Rows, logger *slog.Logger) ([]TemplateSummary, error) {
	var results []TemplateSummary
	for rows.Next() {
		var (
			t          TemplateSummary
			components string
			hasRTL     int
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Title, &t.Category,
			&t.Description, &t.Complexity, &components, &hasRTL, &t.URL); err != nil {
			return nil, err
		}
		t.Components = unmarshalStrings(components, logger)
		t.HasRTLVariant = hasRTL != 0
		results = append(results, t)
	}
	return results, rows.Err()
}

// Count returns the number of indexed templates, zero on failure.
func (s *TemplateSearch) Count(ctx context.Context) int {
	db, err := s.conn()
	if err != nil {
		s.logger.Error("template count failed", slog.String("error", err.Error()))
		return 0
	}
	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM template_metadata").Scan(&n); err != nil {
		s.logger.Error("template count failed", slog.String("error", err.Error()))
		return 0
	}
	return n
}

// Statistics aggregates the template index: total count, per-category and
// per-complexity counts (descending), and the ten most used components.
func (s *TemplateSearch) Statistics(ctx context.Context) TemplateStatistics {
	stats := TemplateStatistics{
		TotalTemplates: s.Count(ctx),
	}

	db, err := s.conn()
	if err != nil {
		s.logger.Error("template statistics failed", slog.String("error", err.Error()))
		return stats
	}

	rows, err := db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM template_metadata
		GROUP BY category
		ORDER BY COUNT(*) DESC`)
	if err == nil {
		for rows.Next() {
			var cc CategoryCount
			if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
				break
			}
			stats.ByCategory = append(stats.ByCategory, cc)
		}
		rows.Close()
	} else {
		s.logger.Error("template statistics failed", slog.String("error", err.Error()))
	}

	rows, err = db.QueryContext(ctx, `
		SELECT complexity, COUNT(*)
		FROM template_metadata
		GROUP BY complexity
		ORDER BY COUNT(*) DESC`)
	if err == nil {
		for rows.Next() {
			var cc ComplexityCount
			if err := rows.Scan(&cc.Complexity, &cc.Count); err != nil {
				break
			}
			stats.ByComplexity = append(stats.ByComplexity, cc)
		}
		rows.Close()
	} else {
		s.logger.Error("template statistics failed", slog.String("error", err.Error()))
	}

	rows, err = db.QueryContext(ctx, `
		SELECT components
		FROM template_metadata
		WHERE components IS NOT NULL AND components != '[]'`)
	if err == nil {
		usage := make(map[string]int)
		var order []string
		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				break
			}
			for _, comp := range unmarshalStrings(raw, s.logger) {
				if _, seen := usage[comp]; !seen {
					order = append(order, comp)
				}
				usage[comp]++
			}
		}
		rows.Close()

		top := make([]ComponentCount, 0, len(order))
		for _, comp := range order {
			top = append(top, ComponentCount{Component: comp, Count: usage[comp]})
		}
		sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
		if len(top) > 10 {
			top = top[:10]
		}
		stats.TopComponents = top
	} else {
		s.logger.Error("template statistics failed", slog.String("error", err.Error()))
	}

	return stats
}
