package templates

import "strings"

// Metadata is the curated description of a known example template. The table
// below is maintained by hand so search results carry better categories and
// component lists than what auto-detection alone would produce.
type Metadata struct {
	Category    string
	Description string
	Complexity  string
	Components  []string
}

var curatedMetadata = map[string]Metadata{
	"album": {
		Category:    "content",
		Description: "Photo album layout with grid of cards",
		Complexity:  "simple",
		Components:  []string{"navbar", "card", "grid", "buttons"},
	},
	"album-rtl": {
		Category:    "content",
		Description: "Photo album layout with RTL (right-to-left) support",
		Complexity:  "simple",
		Components:  []string{"navbar", "card", "grid", "buttons"},
	},
	"badges": {
		Category:    "components",
		Description: "Badge component examples and variations",
		Complexity:  "simple",
		Components:  []string{"badge"},
	},
	"blog": {
		Category:    "content",
		Description: "Multi-column blog layout with featured posts",
		Complexity:  "intermediate",
		Components:  []string{"navbar", "card", "grid", "pagination"},
	},
	"blog-rtl": {
		Category:    "content",
		Description: "Multi-column blog layout with RTL support",
		Complexity:  "intermediate",
		Components:  []string{"navbar", "card", "grid", "pagination"},
	},
	"breadcrumbs": {
		Category:    "navigation",
		Description: "Breadcrumb navigation examples",
		Complexity:  "simple",
		Components:  []string{"breadcrumb"},
	},
	"buttons": {
		Category:    "components",
		Description: "Button component examples and variations",
		Complexity:  "simple",
		Components:  []string{"buttons", "button-group"},
	},
	"carousel": {
		Category:    "components",
		Description: "Image carousel with controls and indicators",
		Complexity:  "simple",
		Components:  []string{"carousel"},
	},
	"carousel-rtl": {
		Category:    "components",
		Description: "Image carousel with RTL support",
		Complexity:  "simple",
		Components:  []string{"carousel"},
	},
	"cheatsheet": {
		Category:    "reference",
		Description: "Complete reference of all Bootstrap components",
		Complexity:  "complex",
		Components: []string{"accordion", "alerts", "badge", "breadcrumb", "buttons", "card",
			"carousel", "dropdown", "forms", "list-group", "modal", "navbar",
			"pagination", "progress", "spinners", "toasts", "tooltips"},
	},
	"cheatsheet-rtl": {
		Category:    "reference",
		Description: "Complete reference of all Bootstrap components with RTL support",
		Complexity:  "complex",
		Components: []string{"accordion", "alerts", "badge", "breadcrumb", "buttons", "card",
			"carousel", "dropdown", "forms", "list-group", "modal", "navbar",
			"pagination", "progress", "spinners", "toasts", "tooltips"},
	},
	"checkout": {
		Category:    "forms",
		Description: "E-commerce checkout form with validation",
		Complexity:  "complex",
		Components:  []string{"forms", "validation", "card", "grid"},
	},
	"checkout-rtl": {
		Category:    "forms",
		Description: "E-commerce checkout form with RTL support",
		Complexity:  "complex",
		Components:  []string{"forms", "validation", "card", "grid"},
	},
	"cover": {
		Category:    "layouts",
		Description: "Full-page cover template for landing pages",
		Complexity:  "simple",
		Components:  []string{"navbar", "buttons"},
	},
	"dashboard": {
		Category:    "admin",
		Description: "Admin dashboard with sidebar, charts, and data tables",
		Complexity:  "complex",
		Components:  []string{"navbar", "offcanvas", "table", "card", "dropdown", "forms"},
	},
	"dashboard-rtl": {
		Category:    "admin",
		Description: "Admin dashboard with RTL support",
		Complexity:  "complex",
		Components:  []string{"navbar", "offcanvas", "table", "card", "dropdown", "forms"},
	},
	"dropdowns": {
		Category:    "components",
		Description: "Dropdown menu examples and variations",
		Complexity:  "simple",
		Components:  []string{"dropdown", "buttons"},
	},
	"features": {
		Category:    "layouts",
		Description: "Feature sections for marketing pages",
		Complexity:  "simple",
		Components:  []string{"grid", "icons", "card"},
	},
	"footers": {
		Category:    "layouts",
		Description: "Footer layout examples and variations",
		Complexity:  "simple",
		Components:  []string{"grid", "forms"},
	},
	"grid": {
		Category:    "layouts",
		Description: "Grid system examples and responsive layouts",
		Complexity:  "intermediate",
		Components:  []string{"grid", "containers"},
	},
	"headers": {
		Category:    "layouts",
		Description: "Header layout examples and variations",
		Complexity:  "simple",
		Components:  []string{"navbar", "nav", "dropdown"},
	},
	"heroes": {
		Category:    "layouts",
		Description: "Hero section examples for landing pages",
		Complexity:  "simple",
		Components:  []string{"grid", "buttons", "carousel"},
	},
	"jumbotron": {
		Category:    "components",
		Description: "Large callout section for featured content",
		Complexity:  "simple",
		Components:  []string{"buttons", "typography"},
	},
	"list-groups": {
		Category:    "components",
		Description: "List group component examples",
		Complexity:  "simple",
		Components:  []string{"list-group", "badge"},
	},
	"masonry": {
		Category:    "layouts",
		Description: "Masonry grid layout with cards",
		Complexity:  "intermediate",
		Components:  []string{"card", "grid"},
	},
	"modals": {
		Category:    "components",
		Description: "Modal dialog examples and variations",
		Complexity:  "intermediate",
		Components:  []string{"modal", "buttons", "forms"},
	},
	"navbars": {
		Category:    "navigation",
		Description: "Navbar examples and variations",
		Complexity:  "intermediate",
		Components:  []string{"navbar", "nav", "dropdown", "forms"},
	},
	"navbars-offcanvas": {
		Category:    "navigation",
		Description: "Navbar with offcanvas mobile menu",
		Complexity:  "intermediate",
		Components:  []string{"navbar", "offcanvas", "nav"},
	},
	"navbars-static": {
		Category:    "navigation",
		Description: "Static navbar examples",
		Complexity:  "simple",
		Components:  []string{"navbar", "nav"},
	},
	"offcanvas": {
		Category:    "components",
		Description: "Offcanvas sidebar examples",
		Complexity:  "simple",
		Components:  []string{"offcanvas", "buttons"},
	},
	"offcanvas-navbar": {
		Category:    "navigation",
		Description: "Navbar with integrated offcanvas menu",
		Complexity:  "intermediate",
		Components:  []string{"navbar", "offcanvas", "nav", "dropdown"},
	},
	"pricing": {
		Category:    "content",
		Description: "Pricing table layouts",
		Complexity:  "intermediate",
		Components:  []string{"card", "grid", "buttons", "list-group"},
	},
	"product": {
		Category:    "content",
		Description: "Product page layout for e-commerce",
		Complexity:  "complex",
		Components:  []string{"navbar", "card", "carousel", "grid", "buttons"},
	},
	"sign-in": {
		Category:    "forms",
		Description: "Simple sign-in form layout",
		Complexity:  "simple",
		Components:  []string{"forms", "card"},
	},
	"sidebars": {
		Category:    "navigation",
		Description: "Sidebar navigation examples",
		Complexity:  "intermediate",
		Components:  []string{"offcanvas", "nav", "dropdown"},
	},
	"starter-template": {
		Category:    "layouts",
		Description: "Minimal starter template",
		Complexity:  "simple",
		Components:  []string{"navbar"},
	},
	"sticky-footer": {
		Category:    "layouts",
		Description: "Layout with sticky footer",
		Complexity:  "simple",
		Components:  []string{},
	},
	"sticky-footer-navbar": {
		Category:    "layouts",
		Description: "Layout with sticky footer and navbar",
		Complexity:  "simple",
		Components:  []string{"navbar"},
	},
}

// metadataFor returns the curated metadata for a template name, or a
// generated fallback for templates not in the table.
func metadataFor(name string) Metadata {
	if meta, ok := curatedMetadata[name]; ok {
		return meta
	}
	return Metadata{
		Category:    "other",
		Description: titleCase(strings.ReplaceAll(name, "-", " ")) + " template",
		Complexity:  "intermediate",
		Components:  []string{},
	}
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
