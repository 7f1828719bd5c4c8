package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/Cyclone1070/folio/internal/ui/models"
	"github.com/Cyclone1070/folio/internal/ui/services"
	"github.com/Cyclone1070/folio/internal/ui/views"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 4 * time.Second

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	registry        *command.Registry
	base            command.Context
	history         *router.History
	renderer        services.MarkdownRenderer
	keys            services.KeyMap
	shortcutTimeout time.Duration
	paletteHeight   int
	logger          *slog.Logger

	// Location currently on screen
	location router.Location

	// Handlers -> UI
	toastChan    <-chan toastEvent
	modalChan    <-chan modalRequest
	locationChan <-chan router.Location

	// Ready signal
	readyChan chan<- struct{}

	// Sequence numbers that let stale timers be ignored
	shortcutSeq int
	toastSeq    int
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.paletteHeight)
}

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	channels *UIChannels,
	deps Dependencies,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	// Initialize components
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "› "

	vp := viewport.New(80, 20)
	modal := viewport.New(60, 10)

	sp := spinnerFactory()

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := deps.ShortcutTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	keys := deps.Keys
	if len(keys.Select.Keys()) == 0 {
		keys = services.DefaultKeyMap()
	}
	paletteHeight := deps.PaletteHeight
	if paletteHeight <= 0 {
		paletteHeight = 12
	}

	m := BubbleTeaModel{
		state: models.State{
			Input:         ti,
			Viewport:      vp,
			ModalViewport: modal,
			Spinner:       sp,
		},
		registry:        deps.Registry,
		base:            deps.Base,
		history:         deps.History,
		renderer:        renderer,
		keys:            keys,
		shortcutTimeout: timeout,
		paletteHeight:   paletteHeight,
		logger:          logger,
		toastChan:       channels.ToastChan,
		modalChan:       channels.ModalChan,
		locationChan:    channels.LocationChan,
		readyChan:       channels.ReadyChan,
	}
	if m.history != nil {
		m.syncLocation(m.history.Location())
	}
	return m
}

// Internal messages
type toastMsg notify.Notification
type dismissMsg struct{}
type modalMsg modalRequest
type locationMsg router.Location

type dispatchDoneMsg struct {
	id  string
	err error
}

type shortcutTimeoutMsg struct{ seq int }
type clearToastMsg struct{ seq int }

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		listenForToasts(m.toastChan),
		listenForModals(m.modalChan),
		listenForLocations(m.locationChan),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = max(msg.Height-2, 1) // Reserve space for header and status
		m.state.ModalViewport.Width = min(max(msg.Width-8, 20), 100)
		m.state.ModalViewport.Height = max(msg.Height-8, 3)
		m.renderDocument()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case toastMsg:
		n := notify.Notification(msg)
		m.state.Toast = &n
		m.toastSeq++
		if n.Kind == notify.KindLoading {
			m.state.Loading++
			return m, listenForToasts(m.toastChan)
		}
		return m, tea.Batch(listenForToasts(m.toastChan), clearToastAfter(m.toastSeq))

	case dismissMsg:
		if m.state.Loading > 0 {
			m.state.Loading--
		}
		if m.state.Loading == 0 && m.state.Toast != nil && m.state.Toast.Kind == notify.KindLoading {
			m.state.Toast = nil
		}
		return m, listenForToasts(m.toastChan)

	case clearToastMsg:
		if msg.seq == m.toastSeq && m.state.Loading == 0 {
			m.state.Toast = nil
		}
		return m, nil

	case modalMsg:
		m.state.Modal = msg.modal
		if msg.modal != nil {
			m.state.ModalViewport.SetContent(msg.modal.Content)
			m.state.ModalViewport.GotoTop()
		}
		return m, listenForModals(m.modalChan)

	case locationMsg:
		m.syncLocation(router.Location(msg))
		return m, listenForLocations(m.locationChan)

	case dispatchDoneMsg:
		if m.state.Running > 0 {
			m.state.Running--
		}
		if msg.err != nil {
			m.logger.Debug("dispatch finished with error", "command", msg.id, "error", msg.err)
		}
		// Handlers may have changed the document on screen
		if m.history != nil {
			m.syncLocation(m.history.Location())
		}
		if m.state.PaletteOpen {
			m.refreshItems()
		}
		return m, nil

	case shortcutTimeoutMsg:
		if msg.seq == m.shortcutSeq {
			m.state.PendingKeys = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle modal scrolling
	if m.state.Modal != nil {
		if key.Matches(msg, m.keys.Close) {
			m.state.Modal = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.state.ModalViewport, cmd = m.state.ModalViewport.Update(msg)
		return m, cmd
	}

	if m.state.PaletteOpen {
		return m.handlePaletteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.state.PendingKeys = nil
		return m, nil
	case len(m.state.PendingKeys) == 0 && key.Matches(msg, m.keys.Palette):
		m.openPalette()
		return m, textinput.Blink
	case len(m.state.PendingKeys) == 0 && key.Matches(msg, m.keys.Back):
		if m.history != nil && m.history.Back() {
			m.syncLocation(m.history.Location())
		}
		return m, nil
	}

	if cmd, handled := m.handleShortcut(msg.String()); handled {
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Scroll the document
	var cmd tea.Cmd
	m.state.Viewport, cmd = m.state.Viewport.Update(msg)
	return m, cmd
}

// handleShortcut extends the pending key sequence with k. A complete
// shortcut runs its command, a prefix waits for the next key.
func (m *BubbleTeaModel) handleShortcut(k string) (tea.Cmd, bool) {
	keys := append(append([]string(nil), m.state.PendingKeys...), k)
	ctx := m.context()

	if c, ok := m.registry.Shortcut(keys...); ok && c.IsVisible(ctx) {
		m.state.PendingKeys = nil
		if c.Kind() == command.KindGroup {
			m.openPalette()
			m.enterGroup(c, ctx)
			return textinput.Blink, true
		}
		return m.dispatch(c.ID, ctx), true
	}

	if m.registry.HasShortcutPrefix(keys...) {
		m.state.PendingKeys = keys
		m.shortcutSeq++
		seq := m.shortcutSeq
		return tea.Tick(m.shortcutTimeout, func(time.Time) tea.Msg {
			return shortcutTimeoutMsg{seq: seq}
		}), true
	}

	handled := len(m.state.PendingKeys) > 0
	m.state.PendingKeys = nil
	return nil, handled
}

// handlePaletteKey handles input while the palette is open
func (m BubbleTeaModel) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.closePalette()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.state.Cursor > 0 {
			m.state.Cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.state.Cursor < len(m.state.Items)-1 {
			m.state.Cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectItem()

	case key.Matches(msg, m.keys.Back) && m.state.Input.Value() == "" && len(m.state.Trail) > 0:
		m.state.Trail = m.state.Trail[:len(m.state.Trail)-1]
		m.refreshItems()
		return m, nil
	}

	// Update input
	before := m.state.Input.Value()
	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	if m.state.Input.Value() != before {
		m.refreshItems()
	}
	return m, cmd
}

// selectItem expands the selected group or runs the selected command
func (m BubbleTeaModel) selectItem() (tea.Model, tea.Cmd) {
	item, ok := m.state.Selected()
	if !ok {
		return m, nil
	}
	ctx := m.context()

	if item.Group {
		c, err := m.registry.Resolve(item.ID, ctx)
		if err != nil {
			m.refreshItems()
			return m, nil
		}
		m.enterGroup(c, ctx)
		return m, nil
	}

	m.closePalette()
	return m, m.dispatch(item.ID, ctx)
}

// dispatch runs a command outside the update loop. Its notifications arrive
// through the UI channels; completion arrives as dispatchDoneMsg.
func (m *BubbleTeaModel) dispatch(id string, ctx command.Context) tea.Cmd {
	m.state.Running++
	registry := m.registry
	return func() tea.Msg {
		err := registry.Dispatch(context.Background(), id, ctx)
		return dispatchDoneMsg{id: id, err: err}
	}
}

// context builds the command context for the current view
func (m BubbleTeaModel) context() command.Context {
	ctx := m.base
	if m.history != nil {
		ctx = ctx.AtLocation(m.history.Location())
	}
	if q := strings.TrimSpace(m.state.Input.Value()); q != "" && m.state.PaletteOpen {
		ctx = ctx.WithArg("query", q)
	}
	return ctx
}

func (m *BubbleTeaModel) openPalette() {
	m.state.PaletteOpen = true
	m.state.Trail = nil
	m.state.Input.SetValue("")
	m.state.Input.Focus()
	m.refreshItems()
}

func (m *BubbleTeaModel) closePalette() {
	m.state.PaletteOpen = false
	m.state.Trail = nil
	m.state.Items = nil
	m.state.Cursor = 0
	m.state.Input.SetValue("")
	m.state.Input.Blur()
}

func (m *BubbleTeaModel) enterGroup(c *command.Command, ctx command.Context) {
	m.state.Trail = append(m.state.Trail, models.Crumb{ID: c.ID, Name: c.DisplayName(ctx)})
	m.state.Input.SetValue("")
	m.refreshItems()
}

// refreshItems recomputes the palette rows for the current query and group
func (m *BubbleTeaModel) refreshItems() {
	ctx := m.context()
	query := m.state.Input.Value()

	var cmds []*command.Command
	if n := len(m.state.Trail); n > 0 {
		children, err := m.registry.Children(m.state.Trail[n-1].ID, ctx)
		if err != nil {
			// The group disappeared underneath us
			m.state.Trail = nil
			cmds = m.registry.Search(ctx, query)
		} else {
			cmds = command.Filter(ctx, children, query)
		}
	} else {
		cmds = m.registry.Search(ctx, query)
	}

	items := make([]models.Item, len(cmds))
	for i, c := range cmds {
		items[i] = models.Item{
			ID:       c.ID,
			Name:     c.DisplayName(ctx),
			Section:  c.Section.Label(ctx),
			Shortcut: strings.Join(c.Shortcut, " "),
			Group:    c.Kind() == command.KindGroup,
		}
	}
	m.state.Items = items
	m.state.Cursor = 0
}

// syncLocation shows the document at loc
func (m *BubbleTeaModel) syncLocation(loc router.Location) {
	m.location = loc
	m.state.Location = loc.String()
	m.state.DocumentTitle = ""

	ctx := m.base.AtLocation(loc)
	if doc, ok := ctx.ActiveDocument(); ok {
		m.state.DocumentTitle = doc.Title
		if m.state.DocumentTitle == "" {
			m.state.DocumentTitle = ctx.T("document.untitled")
		}
	}
	m.renderDocument()
}

// renderDocument updates the viewport content
func (m *BubbleTeaModel) renderDocument() {
	doc, ok := m.base.AtLocation(m.location).ActiveDocument()
	if !ok {
		m.state.Viewport.SetContent("")
		return
	}
	content, err := services.RenderMarkdown(doc.Text, m.state.Viewport.Width-4, m.renderer)
	if err != nil {
		// Fallback to plain text
		content = doc.Text
	}
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoTop()
}

// Helper commands for listening to channels
func listenForToasts(ch <-chan toastEvent) tea.Cmd {
	return func() tea.Msg {
		ev := <-ch
		if ev.dismiss {
			return dismissMsg{}
		}
		return toastMsg(ev.notification)
	}
}

func listenForModals(ch <-chan modalRequest) tea.Cmd {
	return func() tea.Msg {
		return modalMsg(<-ch)
	}
}

func listenForLocations(ch <-chan router.Location) tea.Cmd {
	return func() tea.Msg {
		return locationMsg(<-ch)
	}
}

func clearToastAfter(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}
