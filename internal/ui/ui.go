// Package ui renders CLI output for search results and statistics. Styling
// is disabled when the writer is not a terminal or NO_COLOR is set.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/bootstrapmcp/bootstrapmcp/internal/indexer"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
)

const (
	colorPurple   = "135" // Bootstrap-ish purple accent
	colorWhite    = "255"
	colorGray     = "245"
	colorDarkGray = "238"
	colorYellow   = "220"
)

// Styles holds the render styles.
type Styles struct {
	Header lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
	Dim    lipgloss.Style
	Score  lipgloss.Style
	Mark   lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPurple)),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorDarkGray)),
		Score:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple)),
		Mark:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow)),
	}
}

// PlainStyles returns an unstyled set for non-terminal output.
func PlainStyles() Styles {
	return Styles{}
}

// Renderer writes formatted results to a writer.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// NewRenderer picks styles based on the writer: colored when it is a
// terminal and NO_COLOR is unset, plain otherwise.
func NewRenderer(w io.Writer) *Renderer {
	styles := PlainStyles()
	if isTTY(w) && !noColor() {
		styles = DefaultStyles()
	}
	return &Renderer{w: w, styles: styles}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func noColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// SearchResults renders ranked documentation hits.
func (r *Renderer) SearchResults(query string, results []search.DocSearchResult) {
	fmt.Fprintln(r.w, r.styles.Header.Render(fmt.Sprintf("%d results for %q", len(results), query)))
	for i, res := range results {
		fmt.Fprintf(r.w, "\n%s %s %s\n",
			r.styles.Dim.Render(fmt.Sprintf("%2d.", i+1)),
			r.styles.Title.Render(res.Title),
			r.styles.Score.Render(fmt.Sprintf("(%.2f)", res.RelevanceScore)))
		if res.Section != "" {
			fmt.Fprintf(r.w, "    %s\n", r.styles.Label.Render(res.Section+" / "+res.ComponentName))
		}
		if res.Snippet != "" {
			fmt.Fprintf(r.w, "    %s\n", r.renderSnippet(res.Snippet))
		}
		fmt.Fprintf(r.w, "    %s\n", r.styles.Dim.Render(res.URL))
	}
}

// renderSnippet converts the FTS mark delimiters into styled text.
func (r *Renderer) renderSnippet(snippet string) string {
	out := snippet
	out = strings.ReplaceAll(out, "<mark>", r.styles.Mark.Render("["))
	out = strings.ReplaceAll(out, "</mark>", r.styles.Mark.Render("]"))
	return out
}

// DocsStatistics renders documentation index statistics.
func (r *Renderer) DocsStatistics(stats search.DocsStatistics) {
	fmt.Fprintln(r.w, r.styles.Header.Render("Documentation index"))
	fmt.Fprintf(r.w, "%s %d\n", r.styles.Label.Render("Total pages:"), stats.TotalDocuments)

	if len(stats.BySections) > 0 {
		fmt.Fprintln(r.w, r.styles.Title.Render("\nSections"))
		for _, sc := range stats.BySections {
			fmt.Fprintf(r.w, "  %-16s %d\n", sc.Section, sc.Count)
		}
	}
	if len(stats.TopExampleDocs) > 0 {
		fmt.Fprintln(r.w, r.styles.Title.Render("\nMost code examples"))
		for _, e := range stats.TopExampleDocs {
			fmt.Fprintf(r.w, "  %-32s %d\n", e.Title, e.Count)
		}
	}
	if len(stats.TopUtilityDocs) > 0 {
		fmt.Fprintln(r.w, r.styles.Title.Render("\nMost utility classes"))
		for _, e := range stats.TopUtilityDocs {
			fmt.Fprintf(r.w, "  %-32s %d\n", e.Title, e.Count)
		}
	}
}

// TemplateStatistics renders template index statistics.
func (r *Renderer) TemplateStatistics(stats search.TemplateStatistics) {
	fmt.Fprintln(r.w, r.styles.Header.Render("Template index"))
	fmt.Fprintf(r.w, "%s %d\n", r.styles.Label.Render("Total templates:"), stats.TotalTemplates)

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(r.w, r.styles.Title.Render("\nCategories"))
		for _, c := range stats.ByCategory {
			fmt.Fprintf(r.w, "  %-16s %d\n", c.Category, c.Count)
		}
	}
	if len(stats.TopComponents) > 0 {
		fmt.Fprintln(r.w, r.styles.Title.Render("\nMost used components"))
		for _, c := range stats.TopComponents {
			fmt.Fprintf(r.w, "  %-16s %d\n", c.Component, c.Count)
		}
	}
}

// RebuildStats renders the outcome of an index rebuild.
func (r *Renderer) RebuildStats(stats indexer.Stats) {
	fmt.Fprintln(r.w, r.styles.Header.Render("Index rebuilt"))
	fmt.Fprintf(r.w, "  %-20s %d indexed, %d failed\n", "Documentation:", stats.DocsIndexed, stats.DocsFailed)
	fmt.Fprintf(r.w, "  %-20s %d indexed, %d failed\n", "Templates:", stats.TemplatesIndexed, stats.TemplatesFailed)
	if stats.Commit != nil {
		fmt.Fprintf(r.w, "  %-20s %s %s\n", "Commit:", stats.Commit.SHA, r.styles.Dim.Render(stats.Commit.Date))
	}
}
