package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bootstrapmcp/bootstrapmcp/internal/config"
	"github.com/bootstrapmcp/bootstrapmcp/internal/indexer"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
)

const (
	serverName    = "Bootstrap CSS Documentation"
	serverVersion = "1.0.0"

	defaultExampleLimit = 5
)

// Server exposes the documentation and template query services as MCP tools.
type Server struct {
	docSvc  *search.DocSearch
	tmplSvc *search.TemplateSearch
	ix      *indexer.Indexer
	cfg     *config.Config
	logger  *slog.Logger
	mcp     *mcpsdk.Server

	// refreshMu serializes refresh_docs calls; rebuilds must not interleave.
	refreshMu sync.Mutex
}

// NewServer creates the MCP server and registers every tool.
func NewServer(cfg *config.Config, docSvc *search.DocSearch, tmplSvc *search.TemplateSearch, ix *indexer.Indexer, logger *slog.Logger) (*Server, error) {
	if docSvc == nil || tmplSvc == nil {
		return nil, errors.New("query services are required")
	}
	if cfg == nil {
		cfg = config.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		docSvc:  docSvc,
		tmplSvc: tmplSvc,
		ix:      ix,
		cfg:     cfg,
		logger:  logger,
	}
	s.mcp = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying SDK server, used by transport glue and
// in-process test clients.
func (s *Server) MCPServer() *mcpsdk.Server { return s.mcp }

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "search_docs",
		Description: "Search Bootstrap documentation with full-text search and BM25 ranking. Queries are expanded with Bootstrap synonyms (navbar also matches nav and navigation).",
	}, s.searchDocsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_component",
		Description: "Get documentation for one Bootstrap component by name, with its utility classes and code examples.",
	}, s.getComponentHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_utility_class",
		Description: "Find the documentation pages that use a specific utility class, e.g. mt-3 or d-flex.",
	}, s.getUtilityClassHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "list_sections",
		Description: "List every documentation section with its page count.",
	}, s.listSectionsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_section_docs",
		Description: "List every documentation page in a section, ordered by title.",
	}, s.getSectionDocsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_full_doc",
		Description: "Get a complete documentation page by slug, including the full body content.",
	}, s.getFullDocHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_examples",
		Description: "Find documentation pages with code examples matching a query.",
	}, s.getExamplesHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_related_components",
		Description: "List the components commonly combined with a component, with their documentation.",
	}, s.getRelatedComponentsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_use_case",
		Description: "Get curated recommendations for a project archetype: components, templates, utilities, and sections to start from. Unknown names return the list of valid use cases.",
	}, s.getUseCaseHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_docs_statistics",
		Description: "Get statistics about the documentation index: totals, sections, and the most example- and utility-heavy pages.",
	}, s.getDocsStatisticsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "search_templates",
		Description: "Search Bootstrap example templates with full-text search, optionally filtered by category.",
	}, s.searchTemplatesHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_template",
		Description: "Get an example template by name with its full HTML, CSS, and JS contents.",
	}, s.getTemplateHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_template_preview",
		Description: "Get one markup section of a template: header, nav, main, footer, or full (first 500 lines).",
	}, s.getTemplatePreviewHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "list_template_categories",
		Description: "List every template category with its count and member template names.",
	}, s.listTemplateCategoriesHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_templates_by_category",
		Description: "List every template in a category.",
	}, s.getTemplatesByCategoryHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_templates_by_component",
		Description: "List every template that uses a specific component.",
	}, s.getTemplatesByComponentHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "get_template_statistics",
		Description: "Get statistics about the template index: totals by category and complexity, most used components.",
	}, s.getTemplateStatisticsHandler)
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "refresh_docs",
		Description: "Update the Bootstrap checkout from GitHub and rebuild both search indexes.",
	}, s.refreshDocsHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 18))
}

// track logs the start of a tool call and returns a completion callback.
func (s *Server) track(tool string, attrs ...slog.Attr) func(count int) {
	requestID := uuid.NewString()[:8]
	start := time.Now()
	base := append([]slog.Attr{
		slog.String("tool", tool),
		slog.String("request_id", requestID),
	}, attrs...)
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "tool call started", base...)
	return func(count int) {
		done := append(base,
			slog.Int("results", count),
			slog.Duration("duration", time.Since(start)))
		s.logger.LogAttrs(context.Background(), slog.LevelInfo, "tool call completed", done...)
	}
}

func (s *Server) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > s.cfg.Search.MaxLimit {
		return s.cfg.Search.MaxLimit
	}
	return limit
}

func (s *Server) searchDocsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in SearchDocsInput) (*mcpsdk.CallToolResult, SearchDocsOutput, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, SearchDocsOutput{}, NewInvalidParamsError("query parameter is required")
	}
	limit := s.clampLimit(in.Limit, s.cfg.Search.DefaultLimit)
	done := s.track("search_docs", slog.String("query", in.Query), slog.Int("limit", limit))

	results := s.docSvc.Search(ctx, in.Query, limit)
	done(len(results))
	return nil, SearchDocsOutput{Query: in.Query, Count: len(results), Results: results}, nil
}

func (s *Server) getComponentHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetComponentInput) (*mcpsdk.CallToolResult, GetComponentOutput, error) {
	if in.ComponentName == "" {
		return nil, GetComponentOutput{}, NewInvalidParamsError("component_name parameter is required")
	}
	done := s.track("get_component", slog.String("component", in.ComponentName))

	doc := s.docSvc.GetComponent(ctx, in.ComponentName)
	if doc == nil {
		done(0)
		return nil, GetComponentOutput{
			Component: in.ComponentName,
			Found:     false,
			Message:   fmt.Sprintf("Component %q not found", in.ComponentName),
		}, nil
	}
	done(1)
	return nil, GetComponentOutput{Component: in.ComponentName, Found: true, Data: doc}, nil
}

func (s *Server) getUtilityClassHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetUtilityClassInput) (*mcpsdk.CallToolResult, GetUtilityClassOutput, error) {
	if in.ClassName == "" {
		return nil, GetUtilityClassOutput{}, NewInvalidParamsError("class_name parameter is required")
	}
	done := s.track("get_utility_class", slog.String("class", in.ClassName))

	results := s.docSvc.FindUtilityClass(ctx, in.ClassName)
	done(len(results))
	return nil, GetUtilityClassOutput{Class: in.ClassName, Count: len(results), Results: results}, nil
}

func (s *Server) listSectionsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListSectionsInput) (*mcpsdk.CallToolResult, ListSectionsOutput, error) {
	done := s.track("list_sections")

	sections := s.docSvc.Sections(ctx)
	done(len(sections))
	return nil, ListSectionsOutput{Count: len(sections), Sections: sections}, nil
}

func (s *Server) getSectionDocsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetSectionDocsInput) (*mcpsdk.CallToolResult, GetSectionDocsOutput, error) {
	if in.Section == "" {
		return nil, GetSectionDocsOutput{}, NewInvalidParamsError("section parameter is required")
	}
	done := s.track("get_section_docs", slog.String("section", in.Section))

	results := s.docSvc.DocsBySection(ctx, in.Section)
	done(len(results))
	return nil, GetSectionDocsOutput{Section: in.Section, Count: len(results), Results: results}, nil
}

func (s *Server) getFullDocHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetFullDocInput) (*mcpsdk.CallToolResult, GetFullDocOutput, error) {
	if in.Slug == "" {
		return nil, GetFullDocOutput{}, NewInvalidParamsError("slug parameter is required")
	}
	done := s.track("get_full_doc", slog.String("slug", in.Slug))

	doc := s.docSvc.GetDocBySlug(ctx, in.Slug)
	if doc == nil {
		done(0)
		return nil, GetFullDocOutput{
			Slug:    in.Slug,
			Found:   false,
			Message: fmt.Sprintf("Document %q not found", in.Slug),
		}, nil
	}
	done(1)
	return nil, GetFullDocOutput{Slug: in.Slug, Found: true, Data: doc}, nil
}

func (s *Server) getExamplesHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetExamplesInput) (*mcpsdk.CallToolResult, GetExamplesOutput, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, GetExamplesOutput{}, NewInvalidParamsError("query parameter is required")
	}
	limit := s.clampLimit(in.Limit, defaultExampleLimit)
	done := s.track("get_examples", slog.String("query", in.Query), slog.Int("limit", limit))

	results := s.docSvc.CodeExamples(ctx, in.Query, limit)
	done(len(results))
	return nil, GetExamplesOutput{Query: in.Query, Count: len(results), Results: results}, nil
}

func (s *Server) getRelatedComponentsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetRelatedComponentsInput) (*mcpsdk.CallToolResult, GetRelatedComponentsOutput, error) {
	if in.ComponentName == "" {
		return nil, GetRelatedComponentsOutput{}, NewInvalidParamsError("component_name parameter is required")
	}
	done := s.track("get_related_components", slog.String("component", in.ComponentName))

	related := s.docSvc.RelatedComponents(ctx, in.ComponentName)
	done(len(related))
	return nil, GetRelatedComponentsOutput{Component: in.ComponentName, Count: len(related), Related: related}, nil
}

func (s *Server) getUseCaseHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetUseCaseInput) (*mcpsdk.CallToolResult, search.UseCaseResult, error) {
	if in.Name == "" {
		return nil, search.UseCaseResult{}, NewInvalidParamsError("name parameter is required")
	}
	done := s.track("get_use_case", slog.String("use_case", in.Name))

	result := s.docSvc.UseCase(ctx, in.Name)
	done(len(result.Components))
	return nil, result, nil
}

func (s *Server) getDocsStatisticsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, _ GetDocsStatisticsInput) (*mcpsdk.CallToolResult, search.DocsStatistics, error) {
	done := s.track("get_docs_statistics")

	stats := s.docSvc.Statistics(ctx)
	done(stats.TotalDocuments)
	return nil, stats, nil
}

func (s *Server) searchTemplatesHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in SearchTemplatesInput) (*mcpsdk.CallToolResult, SearchTemplatesOutput, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, SearchTemplatesOutput{}, NewInvalidParamsError("query parameter is required")
	}
	limit := s.clampLimit(in.Limit, s.cfg.Search.DefaultLimit)
	done := s.track("search_templates",
		slog.String("query", in.Query),
		slog.String("category", in.Category),
		slog.Int("limit", limit))

	results := s.tmplSvc.SearchTemplates(ctx, in.Query, in.Category, limit)
	done(len(results))
	return nil, SearchTemplatesOutput{
		Query:    in.Query,
		Category: in.Category,
		Count:    len(results),
		Results:  results,
	}, nil
}

func (s *Server) getTemplateHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetTemplateInput) (*mcpsdk.CallToolResult, GetTemplateOutput, error) {
	if in.Name == "" {
		return nil, GetTemplateOutput{}, NewInvalidParamsError("name parameter is required")
	}
	done := s.track("get_template", slog.String("template", in.Name))

	t := s.tmplSvc.GetTemplate(ctx, in.Name)
	if t == nil {
		done(0)
		return nil, GetTemplateOutput{
			Template: in.Name,
			Found:    false,
			Message:  fmt.Sprintf("Template %q not found", in.Name),
		}, nil
	}
	done(1)
	return nil, GetTemplateOutput{Template: in.Name, Found: true, Data: t}, nil
}

func (s *Server) getTemplatePreviewHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetTemplatePreviewInput) (*mcpsdk.CallToolResult, GetTemplatePreviewOutput, error) {
	if in.Name == "" {
		return nil, GetTemplatePreviewOutput{}, NewInvalidParamsError("name parameter is required")
	}
	section := in.Section
	if section == "" {
		section = "main"
	}
	done := s.track("get_template_preview",
		slog.String("template", in.Name),
		slog.String("section", section))

	p := s.tmplSvc.Preview(ctx, in.Name, section)
	if p == nil {
		done(0)
		return nil, GetTemplatePreviewOutput{
			Template: in.Name,
			Found:    false,
			Message:  fmt.Sprintf("Template %q not found", in.Name),
		}, nil
	}
	done(1)
	return nil, GetTemplatePreviewOutput{Template: in.Name, Found: true, Data: p}, nil
}

func (s *Server) listTemplateCategoriesHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListTemplateCategoriesInput) (*mcpsdk.CallToolResult, ListTemplateCategoriesOutput, error) {
	done := s.track("list_template_categories")

	categories := s.tmplSvc.Categories(ctx)
	done(len(categories))
	return nil, ListTemplateCategoriesOutput{Count: len(categories), Categories: categories}, nil
}

func (s *Server) getTemplatesByCategoryHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetTemplatesByCategoryInput) (*mcpsdk.CallToolResult, GetTemplatesByCategoryOutput, error) {
	if in.Category == "" {
		return nil, GetTemplatesByCategoryOutput{}, NewInvalidParamsError("category parameter is required")
	}
	done := s.track("get_templates_by_category", slog.String("category", in.Category))

	results := s.tmplSvc.ByCategory(ctx, in.Category)
	done(len(results))
	return nil, GetTemplatesByCategoryOutput{Category: in.Category, Count: len(results), Results: results}, nil
}

func (s *Server) getTemplatesByComponentHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetTemplatesByComponentInput) (*mcpsdk.CallToolResult, GetTemplatesByComponentOutput, error) {
	if in.Component == "" {
		return nil, GetTemplatesByComponentOutput{}, NewInvalidParamsError("component parameter is required")
	}
	done := s.track("get_templates_by_component", slog.String("component", in.Component))

	results := s.tmplSvc.ByComponent(ctx, in.Component)
	done(len(results))
	return nil, GetTemplatesByComponentOutput{Component: in.Component, Count: len(results), Results: results}, nil
}

func (s *Server) getTemplateStatisticsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, _ GetTemplateStatisticsInput) (*mcpsdk.CallToolResult, search.TemplateStatistics, error) {
	done := s.track("get_template_statistics")

	stats := s.tmplSvc.Statistics(ctx)
	done(stats.TotalTemplates)
	return nil, stats, nil
}

func (s *Server) refreshDocsHandler(ctx context.Context, _ *mcpsdk.CallToolRequest, _ RefreshDocsInput) (*mcpsdk.CallToolResult, RefreshDocsOutput, error) {
	if s.ix == nil {
		return nil, RefreshDocsOutput{
			Success: false,
			Message: "Refresh is not available on this server",
		}, nil
	}
	done := s.track("refresh_docs")

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	stats, err := s.ix.Refresh(ctx)
	if err != nil {
		s.logger.Error("refresh failed", slog.String("error", err.Error()))
		done(0)
		return nil, RefreshDocsOutput{
			Success: false,
			Message: fmt.Sprintf("Error refreshing documentation: %v", err),
		}, nil
	}

	// Rebuilds replace the database contents; drop cached connections so
	// the next query sees the new index.
	s.docSvc.Reset()
	s.tmplSvc.Reset()

	done(stats.DocsIndexed + stats.TemplatesIndexed)
	return nil, RefreshDocsOutput{
		Success: true,
		Message: "Documentation refreshed successfully",
		Stats:   &stats,
	}, nil
}

// Serve runs the server on the configured transport until ctx is canceled.
func (s *Server) Serve(ctx context.Context, transport, addr string) error {
	s.logger.Info("starting MCP server",
		slog.String("transport", transport),
		slog.String("addr", addr))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcpsdk.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped")
		return nil
	case "http":
		handler := mcpsdk.NewStreamableHTTPHandler(
			func(*http.Request) *mcpsdk.Server { return s.mcp }, nil)
		srv := &http.Server{Addr: addr, Handler: handler}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, http)", transport)
	}
}

// Close releases the query services.
func (s *Server) Close() error {
	err := s.docSvc.Close()
	if terr := s.tmplSvc.Close(); err == nil {
		err = terr
	}
	return err
}
