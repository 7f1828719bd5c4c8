package models

import (
	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Item is one row of the command palette.
type Item struct {
	ID       string
	Name     string
	Section  string
	Shortcut string
	Group    bool
}

// Crumb is an expanded group in the palette.
type Crumb struct {
	ID   string
	Name string
}

// State holds everything the views render.
type State struct {
	Width  int
	Height int

	Input    textinput.Model
	Viewport viewport.Model // Active document
	Spinner  spinner.Model

	Location      string
	DocumentTitle string

	// Palette
	PaletteOpen bool
	Items       []Item
	Cursor      int
	Trail       []Crumb

	// Keys typed so far towards a multi-key shortcut
	PendingKeys []string

	Toast   *notify.Notification
	Loading int // Pending loading notifications
	Running int // Commands in flight

	Modal         *command.Modal
	ModalViewport viewport.Model
}

// Selected returns the item under the cursor.
func (s State) Selected() (Item, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return Item{}, false
	}
	return s.Items[s.Cursor], true
}
