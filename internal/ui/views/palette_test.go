package views

import (
	"testing"

	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func paletteItems() []models.Item {
	return []models.Item{
		{ID: "openDocument", Name: "Open document", Section: "Document", Shortcut: "o d", Group: true},
		{ID: "createDocument", Name: "New document", Section: "Document", Shortcut: "n"},
		{ID: "starDocument", Name: "Star", Section: "Current document"},
	}
}

func TestRenderPalette_SectionsAndSelection(t *testing.T) {
	state := models.State{
		Input:  createTestTextInput("do"),
		Items:  paletteItems(),
		Cursor: 1,
	}

	result := RenderPalette(state, 10)

	assert.Contains(t, result, "Commands")
	assert.Contains(t, result, "Open document ›")
	assert.Contains(t, result, "▸ New document")
	assert.Contains(t, result, "o d")
	assert.Contains(t, result, "Current document")
}

func TestRenderPalette_Breadcrumb(t *testing.T) {
	state := models.State{
		Input: createTestTextInput(""),
		Items: []models.Item{{ID: "downloadDocumentAsHTML", Name: "HTML", Section: "Current document"}},
		Trail: []models.Crumb{{ID: "downloadDocument", Name: "Download"}},
	}

	result := RenderPalette(state, 10)

	assert.Contains(t, result, "Download ›")
	assert.Contains(t, result, "HTML")
}

func TestRenderInput(t *testing.T) {
	t.Run("top level without query", func(t *testing.T) {
		result := RenderInput(models.State{Input: createTestTextInput(""), Items: paletteItems()})
		assert.NotContains(t, result, "›")
		assert.NotContains(t, result, "match")
	})

	t.Run("query shows match count", func(t *testing.T) {
		result := RenderInput(models.State{Input: createTestTextInput("do"), Items: paletteItems()})
		assert.Contains(t, result, "3 matches")

		result = RenderInput(models.State{Input: createTestTextInput("star"), Items: paletteItems()[2:]})
		assert.Contains(t, result, "1 match")
	})

	t.Run("nested trail", func(t *testing.T) {
		result := RenderInput(models.State{
			Input: createTestTextInput(""),
			Trail: []models.Crumb{{ID: "a", Name: "Move"}, {ID: "b", Name: "Engineering"}},
		})
		assert.Contains(t, result, "Move › Engineering ›")
	})
}

func TestRenderPalette_Empty(t *testing.T) {
	result := RenderPalette(models.State{Input: createTestTextInput("zzz")}, 10)
	assert.Contains(t, result, "No matching commands")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, height int
		start, end        int
	}{
		{3, 0, 10, 0, 3},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
		{20, 3, 0, 0, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.n, tt.cursor, tt.height)
		assert.Equal(t, tt.start, start, "%+v", tt)
		assert.Equal(t, tt.end, end, "%+v", tt)
	}
}
