package views

import (
	"strings"

	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderModal renders the open modal
func RenderModal(s models.State) string {
	if s.Modal == nil {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(s.Modal.Title))
	lines = append(lines, "")
	lines = append(lines, s.ModalViewport.View())
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: Scroll  Esc: Close"))

	return ModalBoxStyle.Render(strings.Join(lines, "\n"))
}
