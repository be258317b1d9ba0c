package mcp

import (
	"github.com/bootstrapmcp/bootstrapmcp/internal/indexer"
	"github.com/bootstrapmcp/bootstrapmcp/internal/search"
)

// SearchDocsInput defines the input schema for the search_docs tool.
type SearchDocsInput struct {
	Query string `json:"query" jsonschema:"the documentation search query, expanded with Bootstrap synonyms"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// SearchDocsOutput defines the output schema for the search_docs tool.
type SearchDocsOutput struct {
	Query   string                   `json:"query"`
	Count   int                      `json:"count"`
	Results []search.DocSearchResult `json:"results"`
}

// GetComponentInput defines the input schema for the get_component tool.
type GetComponentInput struct {
	ComponentName string `json:"component_name" jsonschema:"component name, e.g. accordion, modal, navbar"`
}

// GetComponentOutput defines the output schema for the get_component tool.
type GetComponentOutput struct {
	Component string               `json:"component"`
	Found     bool                 `json:"found"`
	Message   string               `json:"message,omitempty"`
	Data      *search.ComponentDoc `json:"data,omitempty"`
}

// GetUtilityClassInput defines the input schema for the get_utility_class tool.
type GetUtilityClassInput struct {
	ClassName string `json:"class_name" jsonschema:"utility class name, e.g. mt-3, d-flex, text-primary"`
}

// GetUtilityClassOutput defines the output schema for the get_utility_class tool.
type GetUtilityClassOutput struct {
	Class   string                   `json:"class"`
	Count   int                      `json:"count"`
	Results []search.UtilityClassDoc `json:"results"`
}

// ListSectionsInput defines the input schema for the list_sections tool (no parameters).
type ListSectionsInput struct{}

// ListSectionsOutput defines the output schema for the list_sections tool.
type ListSectionsOutput struct {
	Count    int                   `json:"count"`
	Sections []search.SectionCount `json:"sections"`
}

// GetSectionDocsInput defines the input schema for the get_section_docs tool.
type GetSectionDocsInput struct {
	Section string `json:"section" jsonschema:"section name, e.g. components, utilities, layout, forms"`
}

// GetSectionDocsOutput defines the output schema for the get_section_docs tool.
type GetSectionDocsOutput struct {
	Section string              `json:"section"`
	Count   int                 `json:"count"`
	Results []search.SectionDoc `json:"results"`
}

// GetFullDocInput defines the input schema for the get_full_doc tool.
type GetFullDocInput struct {
	Slug string `json:"slug" jsonschema:"document filename without extension, e.g. accordion, buttons, grid"`
}

// GetFullDocOutput defines the output schema for the get_full_doc tool.
type GetFullDocOutput struct {
	Slug    string          `json:"slug"`
	Found   bool            `json:"found"`
	Message string          `json:"message,omitempty"`
	Data    *search.FullDoc `json:"data,omitempty"`
}

// GetExamplesInput defines the input schema for the get_examples tool.
type GetExamplesInput struct {
	Query string `json:"query" jsonschema:"query matched against page titles, component names, and example markup"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of pages returned, default 5"`
}

// GetExamplesOutput defines the output schema for the get_examples tool.
type GetExamplesOutput struct {
	Query   string              `json:"query"`
	Count   int                 `json:"count"`
	Results []search.ExampleDoc `json:"results"`
}

// GetRelatedComponentsInput defines the input schema for the get_related_components tool.
type GetRelatedComponentsInput struct {
	ComponentName string `json:"component_name" jsonschema:"component whose commonly combined components to list"`
}

// GetRelatedComponentsOutput defines the output schema for the get_related_components tool.
type GetRelatedComponentsOutput struct {
	Component string                `json:"component"`
	Count     int                   `json:"count"`
	Related   []search.ComponentDoc `json:"related"`
}

// GetUseCaseInput defines the input schema for the get_use_case tool.
type GetUseCaseInput struct {
	Name string `json:"name" jsonschema:"use case name, e.g. dashboard, landing-page, blog, e-commerce"`
}

// GetDocsStatisticsInput defines the input schema for the get_docs_statistics tool (no parameters).
type GetDocsStatisticsInput struct{}

// SearchTemplatesInput defines the input schema for the search_templates tool.
type SearchTemplatesInput struct {
	Query    string `json:"query" jsonschema:"the template search query"`
	Category string `json:"category,omitempty" jsonschema:"optional category filter, e.g. layout, navigation, content"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// SearchTemplatesOutput defines the output schema for the search_templates tool.
type SearchTemplatesOutput struct {
	Query    string                        `json:"query"`
	Category string                        `json:"category,omitempty"`
	Count    int                           `json:"count"`
	Results  []search.TemplateSearchResult `json:"results"`
}

// GetTemplateInput defines the input schema for the get_template tool.
type GetTemplateInput struct {
	Name string `json:"name" jsonschema:"template name, e.g. dashboard, album, sign-in"`
}

// GetTemplateOutput defines the output schema for the get_template tool.
type GetTemplateOutput struct {
	Template string                 `json:"template"`
	Found    bool                   `json:"found"`
	Message  string                 `json:"message,omitempty"`
	Data     *search.TemplateDetail `json:"data,omitempty"`
}

// GetTemplatePreviewInput defines the input schema for the get_template_preview tool.
type GetTemplatePreviewInput struct {
	Name    string `json:"name" jsonschema:"template name"`
	Section string `json:"section,omitempty" jsonschema:"section to extract: header, nav, main, footer, or full; default main"`
}

// GetTemplatePreviewOutput defines the output schema for the get_template_preview tool.
type GetTemplatePreviewOutput struct {
	Template string                  `json:"template"`
	Found    bool                    `json:"found"`
	Message  string                  `json:"message,omitempty"`
	Data     *search.TemplatePreview `json:"data,omitempty"`
}

// ListTemplateCategoriesInput defines the input schema for the list_template_categories tool (no parameters).
type ListTemplateCategoriesInput struct{}

// ListTemplateCategoriesOutput defines the output schema for the list_template_categories tool.
type ListTemplateCategoriesOutput struct {
	Count      int                   `json:"count"`
	Categories []search.CategoryInfo `json:"categories"`
}

// GetTemplatesByCategoryInput defines the input schema for the get_templates_by_category tool.
type GetTemplatesByCategoryInput struct {
	Category string `json:"category" jsonschema:"category name, e.g. layout, navigation, content"`
}

// GetTemplatesByCategoryOutput defines the output schema for the get_templates_by_category tool.
type GetTemplatesByCategoryOutput struct {
	Category string                   `json:"category"`
	Count    int                      `json:"count"`
	Results  []search.TemplateSummary `json:"results"`
}

// GetTemplatesByComponentInput defines the input schema for the get_templates_by_component tool.
type GetTemplatesByComponentInput struct {
	Component string `json:"component" jsonschema:"component name, e.g. navbar, card, carousel"`
}

// GetTemplatesByComponentOutput defines the output schema for the get_templates_by_component tool.
type GetTemplatesByComponentOutput struct {
	Component string                   `json:"component"`
	Count     int                      `json:"count"`
	Results   []search.TemplateSummary `json:"results"`
}

// GetTemplateStatisticsInput defines the input schema for the get_template_statistics tool (no parameters).
type GetTemplateStatisticsInput struct{}

// RefreshDocsInput defines the input schema for the refresh_docs tool (no parameters).
type RefreshDocsInput struct{}

// RefreshDocsOutput defines the output schema for the refresh_docs tool.
type RefreshDocsOutput struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Stats   *indexer.Stats `json:"stats,omitempty"`
}
