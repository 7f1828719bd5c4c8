package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/folio/internal/ui/models"
)

// RenderInput renders the query line. Inside a group the query is prefixed
// with the trail of expanded groups, and a non-empty query shows how many
// commands it matched.
func RenderInput(s models.State) string {
	line := s.Input.View()
	if len(s.Trail) > 0 {
		names := make([]string, len(s.Trail))
		for i, c := range s.Trail {
			names[i] = c.Name
		}
		line = ShortcutStyle.Render(strings.Join(names, " › ")+" ›") + " " + line
	}
	if strings.TrimSpace(s.Input.Value()) != "" {
		line += "  " + ShortcutStyle.Render(matchCount(len(s.Items)))
	}
	return InputStyle.Render(line)
}

func matchCount(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}
