package views

import (
	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, paletteHeight int) string {
	// Overlay the modal on top
	if s.Modal != nil {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			RenderModal(s),
			lipgloss.WithWhitespaceChars(""),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
		)
	}

	sections := []string{RenderDocument(s)}
	if s.PaletteOpen {
		sections = append(sections, RenderPalette(s, paletteHeight))
	}
	sections = append(sections, RenderStatus(s))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
