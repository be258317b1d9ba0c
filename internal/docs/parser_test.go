package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accordionDoc = `---
title: Accordion
description: Vertically collapsing accordions.
toc: true
aliases:
  - /docs/components/collapse-panel/
---

Build vertically collapsing accordions.

<Example>
<div class="accordion d-flex mt-3">content</div>
</Example>
`

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_FrontMatterAndPaths(t *testing.T) {
	// Given: a documentation file under a section directory
	root := t.TempDir()
	path := writeDoc(t, root, "components/accordion.mdx", accordionDoc)

	// When: parsing it
	rec, err := NewParser(root).ParseFile(path)
	require.NoError(t, err)

	// Then: front-matter and path-derived fields are populated
	assert.Equal(t, "components/accordion.mdx", rec.Filepath)
	assert.Equal(t, "Accordion", rec.Title)
	assert.Equal(t, "Vertically collapsing accordions.", rec.Description)
	assert.Equal(t, "components", rec.Section)
	assert.Equal(t, "accordion", rec.ComponentName)
	assert.True(t, rec.Toc)
	assert.Equal(t, []string{"/docs/components/collapse-panel/"}, rec.Aliases)
	assert.Equal(t, "https://getbootstrap.com/docs/5.3/components/accordion/", rec.URL)
}

func TestParseFile_ScalarAlias(t *testing.T) {
	// Given: front-matter writing a single alias without list syntax
	root := t.TempDir()
	path := writeDoc(t, root, "components/buttons.mdx", `---
title: Buttons
aliases: /docs/components/btn/
---

Body.
`)

	rec, err := NewParser(root).ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/docs/components/btn/"}, rec.Aliases)
}

func TestParseFile_MissingFrontMatter(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "components/broken.mdx", "no front matter here")

	_, err := NewParser(root).ParseFile(path)
	require.Error(t, err)
}

func TestParseFile_TopLevelFileHasNoSection(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "index.mdx", "---\ntitle: Index\n---\n\nBody.\n")

	rec, err := NewParser(root).ParseFile(path)
	require.NoError(t, err)

	assert.Empty(t, rec.Section)
	assert.Equal(t, "index", rec.ComponentName)
}

func TestParseDirectory_CountsFailures(t *testing.T) {
	// Given: one valid and one malformed file
	root := t.TempDir()
	writeDoc(t, root, "components/accordion.mdx", accordionDoc)
	writeDoc(t, root, "components/broken.mdx", "not a documentation file")

	// When: scanning the directory
	records, failed, err := NewParser(root).ParseDirectory(context.Background())
	require.NoError(t, err)

	// Then: the malformed file is counted, not fatal
	assert.Len(t, records, 1)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "components/accordion.mdx", records[0].Filepath)
}

func TestParseDirectory_SortedByFilepath(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "utilities/spacing.mdx", "---\ntitle: Spacing\n---\n\nBody.\n")
	writeDoc(t, root, "components/alerts.mdx", "---\ntitle: Alerts\n---\n\nBody.\n")
	writeDoc(t, root, "components/badge.mdx", "---\ntitle: Badge\n---\n\nBody.\n")

	records, failed, err := NewParser(root).ParseDirectory(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, failed)

	require.Len(t, records, 3)
	assert.Equal(t, "components/alerts.mdx", records[0].Filepath)
	assert.Equal(t, "components/badge.mdx", records[1].Filepath)
	assert.Equal(t, "utilities/spacing.mdx", records[2].Filepath)
}

func TestExtractUtilityClasses_FullMatchOnly(t *testing.T) {
	// Given: markup with utility classes and near-miss tokens
	content := `<div class="col-10 col-100 mt-3 mt-6 d-flex btn-primary accordion"></div>
<span className='text-center fw-bold w-50'></span>`

	classes := ExtractUtilityClasses(content)

	// Then: only full family matches survive
	assert.Equal(t, []string{"col-10", "d-flex", "fw-bold", "mt-3", "text-center", "w-50"}, classes)
	// And: col-10 never drags col-1 or col-100 along
	assert.NotContains(t, classes, "col-1")
	assert.NotContains(t, classes, "col-100")
	assert.NotContains(t, classes, "mt-6")
}

func TestExtractUtilityClasses_Deduplicates(t *testing.T) {
	content := `<div class="d-flex"></div><div class="d-flex mt-3"></div>`

	classes := ExtractUtilityClasses(content)

	assert.Equal(t, []string{"d-flex", "mt-3"}, classes)
}

func TestExtractCodeExamples_GapPreservingIDs(t *testing.T) {
	// Given: three blocks, the middle one empty after trimming
	content := `
<Example>
<button class="btn">One</button>
</Example>
<Example>

</Example>
<Example class="wide">
<button class="btn">Three</button>
</Example>`

	examples := ExtractCodeExamples(content)

	// Then: the empty block is dropped but its ID slot stays reserved
	require.Len(t, examples, 2)
	assert.Equal(t, "example_1", examples[0].ID)
	assert.Equal(t, "example_3", examples[1].ID)
	assert.Equal(t, `<button class="btn">One</button>`, examples[0].Content)
}

func TestExtractCodeExamples_NoneFound(t *testing.T) {
	assert.Empty(t, ExtractCodeExamples("plain text, no example blocks"))
}
