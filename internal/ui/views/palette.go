package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderPalette renders the command palette: title, query input and the
// matching commands grouped under section labels. Only height rows of items
// are shown, scrolled so the cursor stays visible.
func RenderPalette(s models.State, height int) string {
	var lines []string

	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Commands"))
	lines = append(lines, RenderInput(s))

	if len(s.Items) == 0 {
		lines = append(lines, ShortcutStyle.Render("No matching commands"))
		return PaletteBoxStyle.Render(strings.Join(lines, "\n"))
	}

	start, end := window(len(s.Items), s.Cursor, height)
	section := ""
	for i := start; i < end; i++ {
		item := s.Items[i]
		if item.Section != section {
			section = item.Section
			lines = append(lines, SectionStyle.Render(section))
		}
		lines = append(lines, renderItem(item, i == s.Cursor))
	}
	return PaletteBoxStyle.Render(strings.Join(lines, "\n"))
}

func renderItem(item models.Item, selected bool) string {
	name := item.Name
	if item.Group {
		name += " ›"
	}
	row := fmt.Sprintf("  %s", name)
	style := ItemStyle
	if selected {
		row = fmt.Sprintf("▸ %s", name)
		style = SelectedItemStyle
	}
	row = style.Render(row)
	if item.Shortcut != "" {
		row += "  " + ShortcutStyle.Render(item.Shortcut)
	}
	return row
}

// window returns the [start, end) range of n items to show in height rows
// around cursor.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}
