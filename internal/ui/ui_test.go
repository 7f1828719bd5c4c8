package ui

import (
	"testing"
	"time"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock dependencies
type MockMarkdownRenderer struct {
	RenderFunc func(string, int) (string, error)
}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(content, width)
	}
	return content, nil
}

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

func newTestUI(t *testing.T) (*UI, *UIChannels, *router.History) {
	t.Helper()
	channels := NewUIChannels()
	history := router.New(router.HomePath())
	ui := NewUI(channels, Dependencies{Registry: command.NewRegistry(), History: history}, &MockMarkdownRenderer{}, mockSpinnerFactory)
	return ui, channels, history
}

func TestUI_Notifier(t *testing.T) {
	ui, channels, _ := newTestUI(t)

	ui.Success("saved")
	ui.Error("failed")

	assert.Equal(t, notify.Notification{Kind: notify.KindSuccess, Message: "saved"}, (<-channels.ToastChan).notification)
	assert.Equal(t, notify.Notification{Kind: notify.KindError, Message: "failed"}, (<-channels.ToastChan).notification)
}

func TestUI_LoadingDismissesOnce(t *testing.T) {
	ui, channels, _ := newTestUI(t)

	dismiss := ui.Loading("working")
	dismiss()
	dismiss()

	require.Len(t, channels.ToastChan, 2)
	first := <-channels.ToastChan
	assert.False(t, first.dismiss)
	assert.Equal(t, notify.KindLoading, first.notification.Kind)
	assert.True(t, (<-channels.ToastChan).dismiss)
}

func TestUI_LoadingDropped(t *testing.T) {
	ui, channels, _ := newTestUI(t)
	for range cap(channels.ToastChan) {
		ui.Success("spam")
	}

	dismiss := ui.Loading("working")
	<-channels.ToastChan
	dismiss()

	for range len(channels.ToastChan) {
		assert.False(t, (<-channels.ToastChan).dismiss)
	}
}

func TestUI_FastLoadingKeepsOrder(t *testing.T) {
	ui, channels, _ := newTestUI(t)
	m := newBubbleTeaModel(channels, Dependencies{Registry: command.NewRegistry()}, &MockMarkdownRenderer{}, mockSpinnerFactory)

	ui.Loading("Importing")()
	ui.Success("Imported")

	next := listenForToasts(channels.ToastChan)
	for range 3 {
		updated, _ := m.Update(next())
		m = updated.(BubbleTeaModel)
	}
	assert.Zero(t, m.state.Loading)
	require.NotNil(t, m.state.Toast)
	assert.Equal(t, "Imported", m.state.Toast.Message)

	updated, _ := m.Update(clearToastMsg{seq: m.toastSeq})
	m = updated.(BubbleTeaModel)
	assert.Nil(t, m.state.Toast)
}

func TestUI_FullChannelDoesNotBlock(t *testing.T) {
	ui, _, _ := newTestUI(t)

	done := make(chan struct{})
	go func() {
		for range 100 {
			ui.Success("spam")
			ui.OpenModal(command.Modal{Title: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier blocked on a full channel")
	}
}

func TestUI_Modals(t *testing.T) {
	ui, channels, _ := newTestUI(t)

	ui.OpenModal(command.Modal{Title: "Print preview", Content: "body"})
	ui.CloseAllModals()

	open := <-channels.ModalChan
	require.NotNil(t, open.modal)
	assert.Equal(t, "Print preview", open.modal.Title)
	assert.Nil(t, (<-channels.ModalChan).modal)
}

func TestUI_ForwardsNavigation(t *testing.T) {
	_, channels, history := newTestUI(t)

	history.Push(router.SearchPath("q"), nil)

	select {
	case loc := <-channels.LocationChan:
		assert.Equal(t, "/search", loc.Pathname)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for location")
	}
}
