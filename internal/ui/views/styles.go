package views

import "github.com/charmbracelet/lipgloss"

// Theme colors, overridable from config.
var (
	ColorPrimary = lipgloss.Color("63")
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("42")
)

var (
	HeaderStyle       lipgloss.Style
	SectionStyle      lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	ShortcutStyle     lipgloss.Style
	PaletteBoxStyle   lipgloss.Style
	ModalBoxStyle     lipgloss.Style
	InputStyle        lipgloss.Style

	StatusDefaultStyle lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusLoadingStyle lipgloss.Style
)

func init() {
	buildStyles()
}

// SetTheme replaces the theme colors. Empty values keep the current color.
func SetTheme(primary, muted, errColor, success string) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&ColorPrimary, primary)
	set(&ColorMuted, muted)
	set(&ColorError, errColor)
	set(&ColorSuccess, success)
	buildStyles()
}

func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	SectionStyle = lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
	SelectedItemStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	ItemStyle = lipgloss.NewStyle()
	ShortcutStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	PaletteBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	ModalBoxStyle = PaletteBoxStyle.Padding(1, 2)
	InputStyle = lipgloss.NewStyle().Padding(0, 1)

	StatusDefaultStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	StatusSuccessStyle = StatusDefaultStyle.Foreground(ColorSuccess)
	StatusErrorStyle = StatusDefaultStyle.Foreground(ColorError)
	StatusLoadingStyle = StatusDefaultStyle.Foreground(ColorPrimary)
}
