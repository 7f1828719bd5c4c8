package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var icon string
	var style lipgloss.Style
	status := "Ready"

	switch {
	case s.Toast != nil && s.Toast.Kind == notify.KindError:
		icon = "✘"
		style = StatusErrorStyle
		status = fmt.Sprintf("%s %s", icon, s.Toast.Message)
	case s.Loading > 0 || s.Running > 0:
		icon = s.Spinner.View()
		style = StatusLoadingStyle
		status = icon
		if s.Toast != nil {
			status = fmt.Sprintf("%s %s", icon, s.Toast.Message)
		}
	case s.Toast != nil:
		icon = "✔"
		style = StatusSuccessStyle
		status = fmt.Sprintf("%s %s", icon, s.Toast.Message)
	default:
		style = StatusDefaultStyle
	}

	leftSide := style.Render(status)

	// Right side: shortcut keys typed so far
	if len(s.PendingKeys) > 0 {
		rightSide := ShortcutStyle.Render(strings.Join(s.PendingKeys, " ") + " …")
		return fmt.Sprintf("%s  %s", leftSide, rightSide)
	}
	return leftSide
}
