package knowledge

import (
	"sort"
	"strings"
)

// UseCase is a curated bundle of recommendations for a named project
// archetype: which components to reach for, which example templates to start
// from, which utility categories matter, and which documentation sections to
// read.
type UseCase struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
	Templates   []string `json:"templates"`
	Utilities   []string `json:"utilities"`
	Sections    []string `json:"sections"`
}

var useCases = map[string]UseCase{
	"dashboard": {
		Name:        "dashboard",
		Description: "Admin dashboard with navigation, data tables, and summary cards",
		Components:  []string{"navbar", "offcanvas", "tables", "card", "dropdowns", "progress"},
		Templates:   []string{"dashboard", "sidebars", "cheatsheet"},
		Utilities:   []string{"flex", "spacing", "sizing", "borders"},
		Sections:    []string{"components", "layout", "utilities"},
	},
	"landing-page": {
		Name:        "landing-page",
		Description: "Marketing landing page with hero sections and feature grids",
		Components:  []string{"navbar", "buttons", "card", "carousel"},
		Templates:   []string{"cover", "heroes", "features", "pricing"},
		Utilities:   []string{"spacing", "colors", "display", "text"},
		Sections:    []string{"layout", "content", "helpers"},
	},
	"blog": {
		Name:        "blog",
		Description: "Multi-column editorial layout with article listings",
		Components:  []string{"navbar", "card", "pagination", "breadcrumb"},
		Templates:   []string{"blog", "album", "sticky-footer-navbar"},
		Utilities:   []string{"spacing", "text", "borders"},
		Sections:    []string{"content", "layout", "components"},
	},
	"e-commerce": {
		Name:        "e-commerce",
		Description: "Product catalog and checkout flow for an online store",
		Components:  []string{"card", "carousel", "buttons", "forms", "badge", "modal"},
		Templates:   []string{"product", "checkout", "pricing", "album"},
		Utilities:   []string{"flex", "spacing", "sizing", "shadows"},
		Sections:    []string{"components", "forms", "layout"},
	},
	"authentication": {
		Name:        "authentication",
		Description: "Sign-in and registration screens with validated forms",
		Components:  []string{"forms", "buttons", "alerts", "validation"},
		Templates:   []string{"sign-in", "sticky-footer"},
		Utilities:   []string{"flex", "spacing", "position", "text"},
		Sections:    []string{"forms", "helpers", "utilities"},
	},
	"marketing-site": {
		Name:        "marketing-site",
		Description: "Multi-page promotional site with headers, footers, and content sections",
		Components:  []string{"navbar", "buttons", "card", "accordion", "list-group"},
		Templates:   []string{"headers", "footers", "features", "heroes", "jumbotron"},
		Utilities:   []string{"spacing", "colors", "display", "flex"},
		Sections:    []string{"layout", "content", "components", "utilities"},
	},
}

// LookupUseCase finds a use case by name, case-insensitively.
func LookupUseCase(name string) (UseCase, bool) {
	uc, ok := useCases[strings.ToLower(name)]
	return uc, ok
}

// UseCaseNames returns the valid use-case names, sorted. Surfaced to callers
// when a lookup misses so the failure is self-describing.
func UseCaseNames() []string {
	names := make([]string, 0, len(useCases))
	for name := range useCases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllUseCases returns the full catalog sorted by name.
func AllUseCases() []UseCase {
	all := make([]UseCase, 0, len(useCases))
	for _, uc := range useCases {
		all = append(all, uc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
