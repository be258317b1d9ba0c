package knowledge

// relationships maps a component to the components it is commonly combined
// with. The table is curated, asymmetric, and not derived from indexed data:
// navbar lists dropdown, but dropdown does not have to list navbar back.
var relationships = map[string][]string{
	"accordion":    {"collapse", "card"},
	"alerts":       {"buttons", "close-button", "badge"},
	"badge":        {"buttons", "list-group", "navs-tabs"},
	"breadcrumb":   {"navs-tabs", "pagination"},
	"buttons":      {"button-group", "dropdowns", "modal", "spinners"},
	"button-group": {"buttons", "dropdowns"},
	"card":         {"list-group", "navs-tabs", "buttons", "placeholders"},
	"carousel":     {"buttons", "card"},
	"close-button": {"alerts", "modal", "toasts", "offcanvas"},
	"collapse":     {"accordion", "navbar", "buttons"},
	"dropdowns":    {"buttons", "navbar", "navs-tabs", "button-group"},
	"list-group":   {"badge", "card", "checks-radios"},
	"modal":        {"buttons", "forms", "close-button"},
	"navbar":       {"navs-tabs", "dropdowns", "offcanvas", "collapse"},
	"navs-tabs":    {"navbar", "dropdowns", "breadcrumb"},
	"offcanvas":    {"navbar", "buttons", "close-button"},
	"pagination":   {"breadcrumb", "buttons"},
	"placeholders": {"card", "spinners"},
	"popovers":     {"tooltips", "buttons"},
	"progress":     {"spinners", "placeholders"},
	"scrollspy":    {"navbar", "navs-tabs", "list-group"},
	"spinners":     {"buttons", "progress", "placeholders"},
	"toasts":       {"alerts", "close-button"},
	"tooltips":     {"popovers", "buttons"},
}

// RelatedComponents returns the curated co-occurrence list for a component.
// Unknown components return nil, which callers treat as "no relationships"
// rather than an error.
func RelatedComponents(name string) []string {
	return relationships[name]
}
