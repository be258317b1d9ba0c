// Package knowledge holds the static tables layered on top of the index:
// search synonyms, component relationships, and use-case patterns. None of
// this is derived from indexed data; it is curated Bootstrap vocabulary.
package knowledge

import "strings"

// maxSynonymsPerWord caps how many substitutes a single query word
// contributes during expansion.
const maxSynonymsPerWord = 2

// Synonyms maps user vocabulary to documentation vocabulary. Only the first
// two entries per word are used for query expansion.
var Synonyms = map[string][]string{
	"navbar":     {"nav", "navigation"},
	"nav":        {"navbar", "navigation"},
	"menu":       {"dropdown", "nav"},
	"button":     {"btn", "buttons"},
	"btn":        {"button", "buttons"},
	"dropdown":   {"menu", "select"},
	"modal":      {"dialog", "popup"},
	"dialog":     {"modal", "popup"},
	"grid":       {"columns", "layout"},
	"column":     {"col", "grid"},
	"card":       {"panel", "tile"},
	"panel":      {"card", "container"},
	"alert":      {"notification", "message"},
	"badge":      {"label", "pill"},
	"toast":      {"notification", "message"},
	"tooltip":    {"popover", "hint"},
	"popover":    {"tooltip", "overlay"},
	"spinner":    {"loader", "loading"},
	"loader":     {"spinner", "loading"},
	"progress":   {"progressbar", "loading"},
	"carousel":   {"slider", "slideshow"},
	"slider":     {"carousel", "range"},
	"accordion":  {"collapse", "expand"},
	"collapse":   {"accordion", "toggle"},
	"offcanvas":  {"sidebar", "drawer"},
	"sidebar":    {"offcanvas", "nav"},
	"pagination": {"paging", "pager"},
	"breadcrumb": {"navigation", "path"},
	"table":      {"tables", "data"},
	"form":       {"forms", "input"},
	"input":      {"form", "field"},
	"field":      {"input", "form"},
	"checkbox":   {"checks", "form"},
	"radio":      {"checks", "form"},
	"select":     {"dropdown", "form"},
	"image":      {"img", "figure"},
	"icon":       {"icons", "svg"},
	"color":      {"colors", "background"},
	"spacing":    {"margin", "padding"},
	"margin":     {"spacing", "gap"},
	"padding":    {"spacing", "gap"},
	"responsive": {"breakpoints", "mobile"},
	"mobile":     {"responsive", "breakpoints"},
	"dark":       {"theming", "color"},
	"theme":      {"theming", "customize"},
	"flex":       {"flexbox", "layout"},
	"flexbox":    {"flex", "layout"},
	"center":     {"align", "justify"},
	"shadow":     {"shadows", "elevation"},
	"typography": {"text", "fonts"},
	"font":       {"typography", "text"},
}

// ExpandQuery expands each query word with up to two synonyms and joins all
// expanded terms with OR. The expansion is deliberately flat: a multi-word
// query becomes a single disjunction across every term rather than per-word
// groups, so it can match documents containing only a synonym of one word.
// Callers rely on this exact shape; do not introduce grouping.
func ExpandQuery(query string) string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words)*(1+maxSynonymsPerWord))
	for _, w := range words {
		terms = append(terms, w)
		syns := Synonyms[strings.ToLower(w)]
		if len(syns) > maxSynonymsPerWord {
			syns = syns[:maxSynonymsPerWord]
		}
		terms = append(terms, syns...)
	}
	return strings.Join(terms, " OR ")
}
