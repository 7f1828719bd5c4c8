package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FrontMatter(t *testing.T) {
	data := []byte("---\ntitle: Onboarding\nicon: rocket\ntemplate: true\n---\n\nWelcome aboard.\n")

	d, err := Parse("onboarding.md", data)

	require.NoError(t, err)
	assert.Equal(t, "Onboarding", d.Title)
	assert.Equal(t, "rocket", d.Icon)
	assert.True(t, d.Template)
	assert.Equal(t, "Welcome aboard.\n", d.Text)
}

func TestParse_HeadingBecomesTitle(t *testing.T) {
	d, err := Parse("notes.md", []byte("# Weekly sync\n\n- item\n"))

	require.NoError(t, err)
	assert.Equal(t, "Weekly sync", d.Title)
	assert.Equal(t, "- item\n", d.Text)
}

func TestParse_FileNameFallback(t *testing.T) {
	d, err := Parse("dir/meeting-notes.md", []byte("just text"))

	require.NoError(t, err)
	assert.Equal(t, "meeting-notes", d.Title)
	assert.Equal(t, "just text", d.Text)
}

func TestParse_CRLF(t *testing.T) {
	d, err := Parse("a.md", []byte("---\r\ntitle: A\r\n---\r\nbody\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "A", d.Title)
	assert.Equal(t, "body\n", d.Text)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unterminated", "---\ntitle: A\nbody\n"},
		{"bad yaml", "---\ntitle: [unclosed\n---\nbody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.md", []byte(tt.data))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.md", perr.Path)
		})
	}
}

func TestParse_RoundTripsExport(t *testing.T) {
	doc := entity.Document{ID: "d1", Title: "Runbook", Icon: "book", Text: "Step one.\n"}
	data, err := export.Markdown(doc)
	require.NoError(t, err)

	d, err := Parse("runbook.md", data)

	require.NoError(t, err)
	assert.Equal(t, "Runbook", d.Title)
	assert.Equal(t, "book", d.Icon)
	assert.Equal(t, "Step one.\n", d.Text)
}

func TestImport_Directory(t *testing.T) {
	fsys := fstest.MapFS{
		"notes/.gitignore":     {Data: []byte("# scratch files\ndrafts/\n*.tmp.md\n")},
		"notes/a.md":           {Data: []byte("# Alpha\n")},
		"notes/b.tmp.md":       {Data: []byte("# Scratch\n")},
		"notes/drafts/c.md":    {Data: []byte("# Draft\n")},
		"notes/sub/d.markdown": {Data: []byte("# Delta\n")},
		"notes/.hidden/e.md":   {Data: []byte("# Hidden\n")},
		"notes/image.png":      {Data: []byte{0x89}},
		"notes/sub/.secret.md": {Data: []byte("# Secret\n")},
		"notes/sub/readme.txt": {Data: []byte("plain")},
	}

	drafts, err := Import(fsys, "notes")

	require.NoError(t, err)
	var titles, paths []string
	for _, d := range drafts {
		titles = append(titles, d.Title)
		paths = append(paths, d.Path)
	}
	assert.Equal(t, []string{"Alpha", "Delta", "readme"}, titles)
	assert.Equal(t, []string{"a.md", "sub/d.markdown", "sub/readme.txt"}, paths)
}

func TestImport_DirectoryWithoutGitignore(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("# A\n")},
	}

	drafts, err := Import(fsys, ".")

	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "a.md", drafts[0].Path)
}

func TestImport_EmptyDirectory(t *testing.T) {
	fsys := fstest.MapFS{"docs/image.png": {Data: []byte{1}}}

	_, err := Import(fsys, "docs")

	assert.True(t, errors.Is(err, ErrNoDocuments))
}

func TestImport_ParseErrorStopsImport(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/a.md":   {Data: []byte("# A\n")},
		"docs/bad.md": {Data: []byte("---\ntitle: x\n")},
	}

	_, err := Import(fsys, "docs")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.md", perr.Path)
}

func TestImport_UnsupportedFile(t *testing.T) {
	fsys := fstest.MapFS{"photo.jpg": {Data: []byte{1}}}

	_, err := Import(fsys, "photo.jpg")

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestImportPath_File(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plan.md")
	require.NoError(t, os.WriteFile(p, []byte("# Plan\n\nShip it.\n"), 0o644))

	drafts, err := ImportPath(p)

	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Plan", drafts[0].Title)
	assert.Equal(t, "Ship it.\n", drafts[0].Text)
}

func TestImportPath_Missing(t *testing.T) {
	_, err := ImportPath(filepath.Join(t.TempDir(), "nope.md"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
