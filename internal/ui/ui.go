package ui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/Cyclone1070/folio/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
)

// UI runs the command palette. It is also the Notifier and DialogHost handed
// to commands: handlers run outside the Bubble Tea loop and reach it through
// channels.
type UI struct {
	program *tea.Program

	// Handlers -> UI channels
	toastChan    chan toastEvent
	modalChan    chan modalRequest
	locationChan chan router.Location

	// Ready signal
	readyChan chan struct{}
}

// Internal message types

// toastEvent carries toasts and loading dismissals on one channel so a
// dismissal is never seen before the toast it ends.
type toastEvent struct {
	notification notify.Notification
	dismiss      bool
}

type modalRequest struct {
	// nil closes every modal
	modal *command.Modal
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	ToastChan    chan toastEvent
	ModalChan    chan modalRequest
	LocationChan chan router.Location
	ReadyChan    chan struct{} // Signals when UI is ready to accept requests
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		ToastChan:    make(chan toastEvent, 16),
		ModalChan:    make(chan modalRequest, 4),
		LocationChan: make(chan router.Location, 16),
		ReadyChan:    make(chan struct{}),
	}
}

// Dependencies are the collaborators of the palette.
type Dependencies struct {
	Registry *command.Registry
	// Base is the command context without location, notifier and dialogs;
	// the UI fills those in for every interaction.
	Base    command.Context
	History *router.History
	Keys    services.KeyMap

	ShortcutTimeout time.Duration
	PaletteHeight   int
	Logger          *slog.Logger
}

// SpinnerFactory creates a new spinner
type SpinnerFactory = services.SpinnerFactory

// NewUI creates a new Bubble Tea UI
func NewUI(
	channels *UIChannels,
	deps Dependencies,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) *UI {
	ui := &UI{
		toastChan:    channels.ToastChan,
		modalChan:    channels.ModalChan,
		locationChan: channels.LocationChan,
		readyChan:    channels.ReadyChan,
	}

	deps.Base.Notifier = ui
	deps.Base.Dialogs = ui
	deps.Base.Renderer = renderer
	if deps.History != nil {
		deps.Base.Router = deps.History
		deps.History.Listen(ui.navigated)
	}

	model := newBubbleTeaModel(channels, deps, renderer, spinnerFactory)
	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start starts the UI program
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// Ready returns a channel that is closed when the UI is ready to accept requests
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}

func (u *UI) send(ev toastEvent) bool {
	select {
	case u.toastChan <- ev:
		return true
	default:
		// Drop if channel is full
		return false
	}
}

// Success shows a success toast.
func (u *UI) Success(msg string) {
	u.send(toastEvent{notification: notify.Notification{Kind: notify.KindSuccess, Message: msg}})
}

// Error shows an error toast.
func (u *UI) Error(msg string) {
	u.send(toastEvent{notification: notify.Notification{Kind: notify.KindError, Message: msg}})
}

// Loading shows a spinner with msg until the returned function is called.
func (u *UI) Loading(msg string) func() {
	shown := u.send(toastEvent{notification: notify.Notification{Kind: notify.KindLoading, Message: msg}})
	var once sync.Once
	return func() {
		once.Do(func() {
			if shown {
				u.send(toastEvent{dismiss: true})
			}
		})
	}
}

// OpenModal shows m on top of everything else.
func (u *UI) OpenModal(m command.Modal) {
	u.requestModal(modalRequest{modal: &m})
}

// CloseAllModals closes the open modal.
func (u *UI) CloseAllModals() {
	u.requestModal(modalRequest{})
}

func (u *UI) requestModal(req modalRequest) {
	select {
	case u.modalChan <- req:
	default:
		// Drop if channel is full
	}
}

func (u *UI) navigated(loc router.Location) {
	select {
	case u.locationChan <- loc:
	default:
		// Drop if channel is full; the next navigation catches up
	}
}
