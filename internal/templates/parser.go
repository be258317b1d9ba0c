// Package templates extracts structured records from Bootstrap example
// template directories (an index.html plus optional stylesheet and script
// assets).
package templates

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// entryFile is the markup file that makes a subdirectory a valid template.
	entryFile = "index.html"
	// rtlSuffix marks right-to-left template variants.
	rtlSuffix = "-rtl"
	// rtlAssetMarker marks RTL asset variants excluded from asset lists.
	rtlAssetMarker = ".rtl."
	// assetsDirName is the shared asset directory skipped during the scan.
	assetsDirName = "assets"
	// defaultTitle is used when the markup has no <title>.
	defaultTitle = "Bootstrap Example"

	// DefaultBaseURL is the canonical example site the generated URLs point at.
	DefaultBaseURL = "https://getbootstrap.com/docs/5.3/examples"
)

// TemplateRecord is one parsed example template. Name is the unique key.
type TemplateRecord struct {
	Name            string
	Title           string
	Category        string
	Description     string
	Complexity      string
	HTMLPath        string
	Content         string // body text used for full-text indexing
	CSSFiles        []string
	JSFiles         []string
	Components      []string
	UtilityClasses  []string
	HasRTLVariant   bool
	RTLTemplateName string
	IsRTL           bool
	URL             string
}

// utilityPrefixes are the class prefixes kept during template utility
// extraction. Templates use plain prefix matching rather than the anchored
// family patterns the documentation extractor applies.
var utilityPrefixes = []string{
	"d-", "flex-", "justify-", "align-", "text-", "bg-", "border-",
	"m-", "mt-", "mb-", "ms-", "me-", "mx-", "my-",
	"p-", "pt-", "pb-", "ps-", "pe-", "px-", "py-",
	"w-", "h-", "mw-", "mh-", "vw-", "vh-",
	"position-", "top-", "bottom-", "start-", "end-",
	"rounded-", "shadow-", "opacity-", "overflow-",
	"gap-", "col-", "row-", "g-", "gx-", "gy-",
	"fs-", "fw-", "fst-", "lh-", "font-",
}

var templateClassAttrPattern = regexp.MustCompile(`class=["']([^"']+)["']`)

// componentSignatures map component names to the markup pattern that betrays
// their use. All matches are case-insensitive against the raw HTML.
var componentSignatures = map[string]*regexp.Regexp{
	"accordion":    regexp.MustCompile(`(?i)class=["'][^"']*accordion[^"']*["']`),
	"alert":        regexp.MustCompile(`(?i)class=["'][^"']*alert[^"']*["']`),
	"badge":        regexp.MustCompile(`(?i)class=["'][^"']*badge[^"']*["']`),
	"breadcrumb":   regexp.MustCompile(`(?i)class=["'][^"']*breadcrumb[^"']*["']`),
	"button":       regexp.MustCompile(`(?i)class=["'][^"']*btn[^"']*["']`),
	"button-group": regexp.MustCompile(`(?i)class=["'][^"']*btn-group[^"']*["']`),
	"card":         regexp.MustCompile(`(?i)class=["'][^"']*card[^"']*["']`),
	"carousel":     regexp.MustCompile(`(?i)class=["'][^"']*carousel[^"']*["']`),
	"dropdown":     regexp.MustCompile(`(?i)class=["'][^"']*dropdown[^"']*["']`),
	"forms":        regexp.MustCompile(`(?i)<form|class=["'][^"']*form-control[^"']*["']`),
	"list-group":   regexp.MustCompile(`(?i)class=["'][^"']*list-group[^"']*["']`),
	"modal":        regexp.MustCompile(`(?i)class=["'][^"']*modal[^"']*["']`),
	"nav":          regexp.MustCompile(`(?i)class=["'][^"']*\bnav\b[^"']*["']`),
	"navbar":       regexp.MustCompile(`(?i)class=["'][^"']*navbar[^"']*["']`),
	"offcanvas":    regexp.MustCompile(`(?i)class=["'][^"']*offcanvas[^"']*["']`),
	"pagination":   regexp.MustCompile(`(?i)class=["'][^"']*pagination[^"']*["']`),
	"progress":     regexp.MustCompile(`(?i)class=["'][^"']*progress[^"']*["']`),
	"spinner":      regexp.MustCompile(`(?i)class=["'][^"']*spinner[^"']*["']`),
	"table":        regexp.MustCompile(`(?i)<table[^>]*class=["'][^"']*table[^"']*["']`),
	"toast":        regexp.MustCompile(`(?i)class=["'][^"']*toast[^"']*["']`),
	"tooltip":      regexp.MustCompile(`(?i)data-bs-toggle=["']tooltip["']`),
	"popover":      regexp.MustCompile(`(?i)data-bs-toggle=["']popover["']`),
}

// Parser extracts TemplateRecords from an examples directory.
type Parser struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithBaseURL overrides the example site used for generated URLs.
func WithBaseURL(base string) ParserOption {
	return func(p *Parser) { p.baseURL = strings.TrimRight(base, "/") }
}

// WithLogger sets the logger used for per-template failure reporting.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a parser rooted at the examples directory.
func NewParser(root string, opts ...ParserOption) *Parser {
	p := &Parser{
		root:    root,
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseDirectory parses every template subdirectory in sorted order.
// Subdirectories without an entry file are skipped with a warning; read or
// parse failures are logged and counted. The scan itself never fails once
// the root is readable.
func (p *Parser) ParseDirectory() ([]*TemplateRecord, int, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", p.root, err)
	}

	var (
		records []*TemplateRecord
		failed  int
	)
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == assetsDirName {
			continue
		}
		rec, err := p.ParseTemplate(filepath.Join(p.root, entry.Name()))
		if err != nil {
			p.logger.Error("template parse failed",
				slog.String("template", entry.Name()),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		if rec == nil {
			continue // no entry file, already warned
		}
		records = append(records, rec)
	}

	p.logger.Info("template parse complete",
		slog.Int("parsed", len(records)),
		slog.Int("failed", failed))
	return records, failed, nil
}

// ParseTemplate parses a single template directory. Returns (nil, nil) when
// the directory has no entry markup file.
func (p *Parser) ParseTemplate(dir string) (*TemplateRecord, error) {
	name := filepath.Base(dir)
	htmlPath := filepath.Join(dir, entryFile)

	if _, err := os.Stat(htmlPath); err != nil {
		p.logger.Warn("no entry file in template directory", slog.String("dir", dir))
		return nil, nil
	}

	raw, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", htmlPath, err)
	}
	html := string(raw)

	meta := metadataFor(name)
	title, content := extractMarkup(html)

	cssFiles, err := findAssets(dir, "*.css")
	if err != nil {
		return nil, err
	}
	jsFiles, err := findAssets(dir, "*.js")
	if err != nil {
		return nil, err
	}

	rec := &TemplateRecord{
		Name:           name,
		Title:          title,
		Category:       meta.Category,
		Description:    meta.Description,
		Complexity:     meta.Complexity,
		HTMLPath:       htmlPath,
		Content:        content,
		CSSFiles:       cssFiles,
		JSFiles:        jsFiles,
		Components:     mergeComponents(meta.Components, detectComponents(html)),
		UtilityClasses: extractUtilityClasses(html),
		IsRTL:          strings.HasSuffix(name, rtlSuffix),
		URL:            fmt.Sprintf("%s/%s/", p.baseURL, name),
	}

	// The linkage is one-directional: an RTL template never claims a
	// variant of its own.
	if !rec.IsRTL {
		variant := name + rtlSuffix
		if _, err := os.Stat(filepath.Join(p.root, variant, entryFile)); err == nil {
			rec.HasRTLVariant = true
			rec.RTLTemplateName = variant
		}
	}

	return rec, nil
}

// extractMarkup pulls the title and the visible body text out of the HTML.
// A missing or unparseable document falls back to the raw markup as content.
func extractMarkup(html string) (title, content string) {
	title = defaultTitle
	content = html
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return title, content
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		title = t
	}
	if body := strings.TrimSpace(doc.Find("body").Text()); body != "" {
		content = body
	}
	return title, content
}

// findAssets globs for asset files directly inside the template directory,
// excluding RTL variants of a base asset.
func findAssets(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), rtlAssetMarker) {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// detectComponents runs every component signature against the raw markup.
func detectComponents(html string) []string {
	var found []string
	for name, pat := range componentSignatures {
		if pat.MatchString(html) {
			found = append(found, name)
		}
	}
	sort.Strings(found)
	return found
}

// mergeComponents unions the curated and detected component lists.
func mergeComponents(curated, detected []string) []string {
	seen := make(map[string]struct{}, len(curated)+len(detected))
	for _, c := range curated {
		seen[c] = struct{}{}
	}
	for _, c := range detected {
		seen[c] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for c := range seen {
		merged = append(merged, c)
	}
	sort.Strings(merged)
	return merged
}

// extractUtilityClasses keeps class tokens that start with a known utility
// prefix, sorted and unique.
func extractUtilityClasses(html string) []string {
	seen := make(map[string]struct{})
	for _, m := range templateClassAttrPattern.FindAllStringSubmatch(html, -1) {
		for _, cls := range strings.Fields(m[1]) {
			for _, prefix := range utilityPrefixes {
				if strings.HasPrefix(cls, prefix) {
					seen[cls] = struct{}{}
					break
				}
			}
		}
	}
	classes := make([]string, 0, len(seen))
	for cls := range seen {
		classes = append(classes, cls)
	}
	sort.Strings(classes)
	return classes
}
