// Package search implements the read side of the index: ranked full-text
// search, exact lookups, browsing, relationship and use-case expansion, and
// statistics, for both documentation and templates. Operations never return
// errors to callers; failures are logged and resolve to empty or not-found
// results.
package search

import (
	"github.com/bootstrapmcp/bootstrapmcp/internal/docs"
	"github.com/bootstrapmcp/bootstrapmcp/internal/knowledge"
)

// DocSearchResult is one ranked full-text hit against the documentation
// index. RelevanceScore is the absolute BM25 score: higher means more
// relevant.
type DocSearchResult struct {
	ID             int64   `json:"id"`
	Filepath       string  `json:"filepath"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Section        string  `json:"section"`
	ComponentName  string  `json:"component_name"`
	URL            string  `json:"url"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ComponentDoc is the metadata view of a documentation page, used by exact
// component lookups and relationship expansion.
type ComponentDoc struct {
	ID             int64              `json:"id"`
	Filepath       string             `json:"filepath"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Section        string             `json:"section"`
	ComponentName  string             `json:"component_name"`
	UtilityClasses []string           `json:"utility_classes"`
	CodeExamples   []docs.CodeExample `json:"code_examples"`
	URL            string             `json:"url"`
}

// UtilityClassDoc is a documentation page matched by utility-class lookup.
type UtilityClassDoc struct {
	ID             int64    `json:"id"`
	Filepath       string   `json:"filepath"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Section        string   `json:"section"`
	UtilityClasses []string `json:"utility_classes"`
	URL            string   `json:"url"`
}

// SectionCount is one documentation section with its page count.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// SectionDoc is a documentation page listed when browsing a section.
type SectionDoc struct {
	ID            int64  `json:"id"`
	Filepath      string `json:"filepath"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Section       string `json:"section"`
	ComponentName string `json:"component_name"`
	URL           string `json:"url"`
}

// FullDoc is the complete documentation page returned by slug lookup,
// including the indexed body content.
type FullDoc struct {
	ID             int64              `json:"id"`
	Filepath       string             `json:"filepath"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Section        string             `json:"section"`
	ComponentName  string             `json:"component_name"`
	UtilityClasses []string           `json:"utility_classes"`
	CodeExamples   []docs.CodeExample `json:"code_examples"`
	Aliases        []string           `json:"aliases"`
	Toc            bool               `json:"toc"`
	URL            string             `json:"url"`
	Content        string             `json:"content"`
}

// ExampleDoc is a documentation page with code examples matched by an
// example search.
type ExampleDoc struct {
	ID            int64              `json:"id"`
	Filepath      string             `json:"filepath"`
	Title         string             `json:"title"`
	Section       string             `json:"section"`
	ComponentName string             `json:"component_name"`
	CodeExamples  []docs.CodeExample `json:"code_examples"`
	URL           string             `json:"url"`
}

// UseCaseResult is the outcome of a use-case lookup. A miss sets Found to
// false and fills ValidNames so the failure is self-describing.
type UseCaseResult struct {
	Name        string         `json:"name"`
	Found       bool           `json:"found"`
	Message     string         `json:"message,omitempty"`
	ValidNames  []string       `json:"valid_names,omitempty"`
	Description string         `json:"description,omitempty"`
	Components  []ComponentDoc `json:"components,omitempty"`
	Templates   []string       `json:"templates,omitempty"`
	Utilities   []string       `json:"utilities,omitempty"`
	Sections    []string       `json:"sections,omitempty"`
}

// DocRankEntry is one row of a top-N statistics listing.
type DocRankEntry struct {
	Title         string `json:"title"`
	ComponentName string `json:"component_name"`
	Count         int    `json:"count"`
}

// DocsStatistics aggregates the documentation index.
type DocsStatistics struct {
	TotalDocuments int                 `json:"total_documents"`
	BySections     []SectionCount      `json:"by_section"`
	TopUtilityDocs []DocRankEntry      `json:"top_utility_docs"`
	TopExampleDocs []DocRankEntry      `json:"top_example_docs"`
	UseCaseCatalog []knowledge.UseCase `json:"use_cases"`
}

// TemplateSearchResult is one ranked full-text hit against the template
// index.
type TemplateSearchResult struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Complexity     string   `json:"complexity"`
	Components     []string `json:"components"`
	HasRTLVariant  bool     `json:"has_rtl_variant"`
	URL            string   `json:"url"`
	Snippet        string   `json:"snippet"`
	RelevanceScore float64  `json:"relevance_score"`
}

// TemplateDetail is a template hydrated with its file contents. CSS and JS
// contents are keyed by basename.
type TemplateDetail struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Title           string            `json:"title"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	Complexity      string            `json:"complexity"`
	HTMLContent     string            `json:"html_content"`
	CSSContent      map[string]string `json:"css_content"`
	JSContent       map[string]string `json:"js_content"`
	Components      []string          `json:"components"`
	UtilityClasses  []string          `json:"utility_classes"`
	HasRTLVariant   bool              `json:"has_rtl_variant"`
	RTLTemplateName string            `json:"rtl_template_name"`
	IsRTL           bool              `json:"is_rtl"`
	URL             string            `json:"url"`
}

// TemplatePreview is an extracted markup section of a template.
type TemplatePreview struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Preview string `json:"preview"`
	URL     string `json:"url"`
}

// CategoryInfo is one template category with its member names.
type CategoryInfo struct {
	Category  string   `json:"category"`
	Count     int      `json:"count"`
	Templates []string `json:"templates"`
}

// TemplateSummary is the listing view of a template used when browsing by
// category or component.
type TemplateSummary struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Complexity    string   `json:"complexity"`
	Components    []string `json:"components"`
	HasRTLVariant bool     `json:"has_rtl_variant"`
	URL           string   `json:"url"`
}

// CategoryCount, ComplexityCount, and ComponentCount are rows of the
// template statistics listings.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type ComplexityCount struct {
	Complexity string `json:"complexity"`
	Count      int    `json:"count"`
}

type ComponentCount struct {
	Component string `json:"component"`
	Count     int    `json:"count"`
}

// TemplateStatistics aggregates the template index.
type TemplateStatistics struct {
	TotalTemplates int               `json:"total_templates"`
	ByCategory     []CategoryCount   `json:"by_category"`
	ByComplexity   []ComplexityCount `json:"by_complexity"`
	TopComponents  []ComponentCount  `json:"top_components"`
}
