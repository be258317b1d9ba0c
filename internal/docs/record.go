// Package docs extracts structured records from Bootstrap MDX documentation files.
package docs

// CodeExample is one <Example> block extracted from a documentation page.
// IDs are assigned in document order from the raw match index, so a block
// that is empty after trimming leaves a gap in the numbering.
type CodeExample struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// DocumentRecord is one parsed documentation page. Filepath is the unique
// key: re-indexing the same filepath replaces the prior record.
type DocumentRecord struct {
	Filepath       string
	Title          string
	Description    string
	Section        string
	ComponentName  string
	UtilityClasses []string
	CodeExamples   []CodeExample
	Aliases        []string
	Toc            bool
	Content        string
	URL            string
}
