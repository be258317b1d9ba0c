package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the canonical documentation site the generated URLs point at.
const DefaultBaseURL = "https://getbootstrap.com/docs/5.3"

// Extension is the documentation file extension; the directory scan
// recurses over it and slug lookups suffix-match against it.
const Extension = ".mdx"

var (
	classAttrPattern = regexp.MustCompile(`class(?:Name)?=["']([^"']+)["']`)
	examplePattern   = regexp.MustCompile(`(?s)<Example[^>]*>(.*?)</Example>`)
)

// utilityPatterns are the Bootstrap utility class families. Each pattern is
// anchored: a candidate token must match a family in full, so "col-100" does
// not ride along on the grid family and "not-a-class" matches nothing.
var utilityPatterns = []*regexp.Regexp{
	// Spacing: m-*, mt-*, px-*, ...
	regexp.MustCompile(`^(?:[mp][tblrxy]?-[0-5]|[mp][tblrxy]?-auto)$`),
	// Display
	regexp.MustCompile(`^d-(?:none|inline|inline-block|block|grid|table|table-cell|table-row|flex|inline-flex)$`),
	// Responsive display: d-{breakpoint}-*
	regexp.MustCompile(`^d-(?:sm|md|lg|xl|xxl)-(?:none|inline|inline-block|block|grid|table|table-cell|table-row|flex|inline-flex)$`),
	// Flexbox
	regexp.MustCompile(`^flex-(?:row|row-reverse|column|column-reverse|wrap|nowrap|wrap-reverse|fill|grow-[01]|shrink-[01])$`),
	regexp.MustCompile(`^justify-content-(?:start|end|center|between|around|evenly)$`),
	regexp.MustCompile(`^align-items-(?:start|end|center|baseline|stretch)$`),
	regexp.MustCompile(`^align-self-(?:start|end|center|baseline|stretch)$`),
	// Grid columns: col-*, col-{breakpoint}-*
	regexp.MustCompile(`^col(?:-(?:sm|md|lg|xl|xxl))?(?:-(?:\d{1,2}|auto))?$`),
	// Color
	regexp.MustCompile(`^text-(?:primary|secondary|success|danger|warning|info|light|dark|body|muted|white|black-50|white-50)$`),
	regexp.MustCompile(`^bg-(?:primary|secondary|success|danger|warning|info|light|dark|body|white|transparent)$`),
	// Border
	regexp.MustCompile(`^border(?:-(?:top|bottom|start|end|0))?$`),
	regexp.MustCompile(`^border-(?:primary|secondary|success|danger|warning|info|light|dark|white)$`),
	regexp.MustCompile(`^rounded(?:-(?:top|bottom|start|end|circle|pill|[0-3]))?$`),
	// Sizing
	regexp.MustCompile(`^[wh]-(?:25|50|75|100|auto)$`),
	// Position
	regexp.MustCompile(`^position-(?:static|relative|absolute|fixed|sticky)$`),
	// Text alignment and transform
	regexp.MustCompile(`^text-(?:start|end|center|justify|wrap|nowrap|break|truncate)$`),
	regexp.MustCompile(`^text-(?:lowercase|uppercase|capitalize)$`),
	// Font weight and size
	regexp.MustCompile(`^fw-(?:light|lighter|normal|bold|bolder)$`),
	regexp.MustCompile(`^fs-[1-6]$`),
}

// Parser extracts DocumentRecords from a tree of MDX documentation files.
type Parser struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithBaseURL overrides the documentation site used for generated URLs.
func WithBaseURL(base string) ParserOption {
	return func(p *Parser) { p.baseURL = strings.TrimRight(base, "/") }
}

// WithLogger sets the logger used for per-file failure reporting.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a parser rooted at the documentation directory.
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

// frontMatter is the metadata block at the top of an MDX file.
type frontMatter struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Aliases     stringList `yaml:"aliases"`
	Toc         bool       `yaml:"toc"`
}

// stringList accepts either a single scalar or a sequence. Bootstrap
// front-matter writes single aliases without the list syntax.
type stringList []string

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v string
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = stringList{v}
		return nil
	case yaml.SequenceNode:
		var v []string
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = stringList(v)
		return nil
	default:
		return fmt.Errorf("aliases: unsupported YAML node kind %v", value.Kind)
	}
}

// ParseFile parses a single MDX file into a DocumentRecord.
func (p *Parser) ParseFile(path string) (*DocumentRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	meta, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("front-matter %s: %w", path, err)
	}

	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return nil, fmt.Errorf("relativize %s: %w", path, err)
	}
	rel = filepath.ToSlash(rel)

	section, component := pathInfo(rel)

	return &DocumentRecord{
		Filepath:       rel,
		Title:          meta.Title,
		Description:    meta.Description,
		Section:        section,
		ComponentName:  component,
		UtilityClasses: ExtractUtilityClasses(body),
		CodeExamples:   ExtractCodeExamples(body),
		Aliases:        []string(meta.Aliases),
		Toc:            meta.Toc,
		Content:        body,
		URL:            fmt.Sprintf("%s/%s/%s/", p.baseURL, section, component),
	}, nil
}

// ParseDirectory parses every MDX file under the root. Per-file failures are
// logged and counted; they never abort the scan. Records are returned sorted
// by filepath so rebuilds are deterministic.
func (p *Parser) ParseDirectory(ctx context.Context) ([]*DocumentRecord, int, error) {
	var files []string
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", p.root, err)
	}

	p.logger.Info("parsing documentation files", slog.Int("count", len(files)))

	var (
		mu      sync.Mutex
		records []*DocumentRecord
		failed  int
	)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range files {
		g.Go(func() error {
			rec, perr := p.ParseFile(path)
			mu.Lock()
			defer mu.Unlock()
			if perr != nil {
				p.logger.Error("parse failed",
					slog.String("path", path),
					slog.String("error", perr.Error()))
				failed++
				return nil
			}
			records = append(records, rec)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].Filepath < records[j].Filepath })

	p.logger.Info("documentation parse complete",
		slog.Int("parsed", len(records)),
		slog.Int("failed", failed))
	return records, failed, nil
}

// splitFrontMatter separates the leading "---" delimited YAML block from the body.
func splitFrontMatter(content string) (frontMatter, string, error) {
	var meta frontMatter
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return meta, "", errors.New("missing front-matter block")
	}
	rest := content[strings.Index(content, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, "", errors.New("unterminated front-matter block")
	}
	block := rest[:end]
	body := rest[end+len("\n---"):]
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = ""
	}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return meta, "", err
	}
	return meta, body, nil
}

// pathInfo derives the section (first path segment) and the component name
// (filename stem) from a slash-separated relative path.
func pathInfo(rel string) (section, component string) {
	parts := strings.Split(rel, "/")
	if len(parts) > 1 {
		section = parts[0]
	}
	base := parts[len(parts)-1]
	component = strings.TrimSuffix(base, filepath.Ext(base))
	return section, component
}

// ExtractUtilityClasses scans class/className attributes and keeps tokens that
// fully match one of the utility families. The result is sorted and unique.
func ExtractUtilityClasses(content string) []string {
	seen := make(map[string]struct{})
	for _, m := range classAttrPattern.FindAllStringSubmatch(content, -1) {
		for _, cls := range strings.Fields(m[1]) {
			for _, pat := range utilityPatterns {
				if pat.MatchString(cls) {
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

// ExtractCodeExamples returns the non-empty <Example> blocks in document
// order. IDs use the raw match index, so dropped empty blocks leave gaps.
func ExtractCodeExamples(content string) []CodeExample {
	matches := examplePattern.FindAllStringSubmatch(content, -1)
	examples := make([]CodeExample, 0, len(matches))
	for i, m := range matches {
		cleaned := strings.TrimSpace(m[1])
		if cleaned == "" {
			continue
		}
		examples = append(examples, CodeExample{
			ID:      fmt.Sprintf("example_%d", i+1),
			Content: cleaned,
		})
	}
	return examples
}
