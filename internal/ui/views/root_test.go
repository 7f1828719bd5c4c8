package views

import (
	"testing"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderRoot_Document(t *testing.T) {
	vp := createTestViewport()
	vp.SetContent("Restart the service.")
	state := models.State{
		Width:         80,
		Height:        24,
		Location:      "/doc/runbook-r1",
		DocumentTitle: "Runbook",
		Viewport:      vp,
		Input:         createTestTextInput(""),
	}

	result := RenderRoot(state, 10)

	assert.Contains(t, result, "Runbook")
	assert.Contains(t, result, "Restart the service.")
	assert.Contains(t, result, "Ready")
	assert.NotContains(t, result, "Commands")
}

func TestRenderRoot_NoDocument(t *testing.T) {
	state := models.State{Location: "/home", Viewport: createTestViewport(), Input: createTestTextInput("")}

	result := RenderRoot(state, 10)

	assert.Contains(t, result, "/home")
	assert.Contains(t, result, "No document open")
}

func TestRenderRoot_WithPalette(t *testing.T) {
	state := models.State{
		Width:       80,
		Height:      24,
		PaletteOpen: true,
		Items:       paletteItems(),
		Input:       createTestTextInput(""),
		Viewport:    createTestViewport(),
	}

	result := RenderRoot(state, 10)

	assert.Contains(t, result, "Commands")
	assert.Contains(t, result, "New document")
}

func TestRenderRoot_ModalOverlay(t *testing.T) {
	vp := createTestViewport()
	vp.SetContent("PREVIEW")
	state := models.State{
		Width:         80,
		Height:        24,
		PaletteOpen:   true,
		Items:         paletteItems(),
		Modal:         &command.Modal{Title: "Print preview"},
		ModalViewport: vp,
		Input:         createTestTextInput(""),
		Viewport:      createTestViewport(),
	}

	result := RenderRoot(state, 10)

	assert.Contains(t, result, "Print preview")
	assert.Contains(t, result, "PREVIEW")
	assert.NotContains(t, result, "New document")
}
