package views

import (
	"github.com/Cyclone1070/folio/internal/ui/models"
)

// RenderDocument renders the active document pane
func RenderDocument(s models.State) string {
	header := HeaderStyle.Render(s.Location)
	if s.DocumentTitle != "" {
		header = HeaderStyle.Render(s.DocumentTitle) + ShortcutStyle.Render(s.Location)
	}
	body := s.Viewport.View()
	if s.DocumentTitle == "" {
		body = ShortcutStyle.Render("No document open. Press ctrl+k for commands, o d to open a document.")
	}
	return header + "\n" + body
}
