package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	star := Leaf("starDocument", Text("Star"), noop)
	star.Keywords = "favorite bookmark"
	hidden := Leaf("unpublishDocument", Text("Unpublish"), noop)
	hidden.Visible = func(Context) bool { return false }
	open := Group("openDocument", Text("Open document"), Static(
		Leaf("doc-roadmap", Text("Roadmap 2026"), noop),
		Leaf("doc-notes", Text("Meeting notes"), noop),
	))
	r := newTestRegistry(t, star, hidden, open, Leaf("publishDocument", Text("Publish"), noop))

	t.Run("empty query returns visible top level", func(t *testing.T) {
		assert.Equal(t, []string{"starDocument", "openDocument", "publishDocument"}, ids(r.Search(Context{}, "  ")))
	})

	t.Run("matches keywords", func(t *testing.T) {
		assert.Equal(t, []string{"starDocument"}, ids(r.Search(Context{}, "bookmark")))
	})

	t.Run("matches group children", func(t *testing.T) {
		assert.Equal(t, []string{"doc-roadmap"}, ids(r.Search(Context{}, "roadmap")))
	})

	t.Run("never returns invisible commands", func(t *testing.T) {
		assert.NotContains(t, ids(r.Search(Context{}, "unpublish")), "unpublishDocument")
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, r.Search(Context{}, "zzzz"))
	})
}

func TestFilter(t *testing.T) {
	cmds := []*Command{
		Leaf("markdown", Text("Markdown"), noop),
		Leaf("html", Text("HTML"), noop),
		Leaf("json", Text("JSON"), noop),
	}

	assert.Equal(t, []string{"markdown", "html", "json"}, ids(Filter(Context{}, cmds, "")))
	assert.Equal(t, []string{"html"}, ids(Filter(Context{}, cmds, "htm")))
	assert.Equal(t, []string{"json"}, ids(Filter(Context{}, cmds, "JS")))
}
