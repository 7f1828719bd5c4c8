package ui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/Cyclone1070/folio/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	model   BubbleTeaModel
	history *router.History
	runs    map[string]*atomic.Int32
}

func createTestModel(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		history: router.New(router.HomePath()),
		runs:    map[string]*atomic.Int32{},
	}
	leaf := func(id, name string, shortcut ...string) *command.Command {
		counter := &atomic.Int32{}
		env.runs[id] = counter
		c := command.Leaf(id, command.Text(name), func(context.Context, command.Context) error {
			counter.Add(1)
			return nil
		})
		c.Shortcut = shortcut
		return c
	}

	hidden := leaf("hidden", "Hidden", "h")
	hidden.Visible = func(command.Context) bool { return false }
	download := command.Group("download", command.Text("Download"), command.Static(
		leaf("markdown", "Markdown"),
		leaf("html", "HTML"),
	))
	download.Shortcut = []string{"o", "d"}

	registry := command.NewRegistry()
	require.NoError(t, registry.Register(
		leaf("star", "Star", "s"),
		download,
		leaf("print", "Print", "g", "p"),
		hidden,
	))

	s := store.New()
	_, err := s.Documents().Create(entity.Document{ID: "d1", Title: "Runbook", Text: "Restart it."})
	require.NoError(t, err)

	channels := NewUIChannels()
	base := command.Context{Documents: s.Documents(), Collections: s.Collections(), Router: env.history}
	env.model = newBubbleTeaModel(channels, Dependencies{
		Registry:        registry,
		Base:            base,
		History:         env.history,
		ShortcutTimeout: 50 * time.Millisecond,
	}, &MockMarkdownRenderer{RenderFunc: func(content string, _ int) (string, error) {
		return "RENDERED " + content, nil
	}}, mockSpinnerFactory)
	return env
}

func (e *testEnv) press(t *testing.T, msgs ...tea.KeyMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = e.model.Update(msg)
		e.model = next.(BubbleTeaModel)
	}
	return cmd
}

func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	next, cmd := e.model.Update(msg)
	e.model = next.(BubbleTeaModel)
	return cmd
}

// run executes a dispatch command and feeds its completion back.
func (e *testEnv) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(dispatchDoneMsg)
	require.True(t, ok, "expected dispatchDoneMsg, got %T", msg)
	e.send(done)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func itemIDs(m BubbleTeaModel) []string {
	var out []string
	for _, it := range m.state.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestInit_ReturnsCommandsAndSignalsReady(t *testing.T) {
	channels := NewUIChannels()
	model := newBubbleTeaModel(channels, Dependencies{Registry: command.NewRegistry()}, &MockMarkdownRenderer{}, mockSpinnerFactory)

	cmd := model.Init()

	assert.NotNil(t, cmd)
	select {
	case <-channels.ReadyChan:
	default:
		t.Error("ready channel not closed")
	}
}

func TestPalette_OpenListsVisibleCommands(t *testing.T) {
	env := createTestModel(t)

	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK})

	assert.True(t, env.model.state.PaletteOpen)
	assert.Equal(t, []string{"star", "download", "print"}, itemIDs(env.model))
	assert.True(t, env.model.state.Items[1].Group)
	assert.Equal(t, "o d", env.model.state.Items[1].Shortcut)
}

func TestPalette_TypingFilters(t *testing.T) {
	env := createTestModel(t)
	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK})

	env.press(t, runes("htm"))

	assert.Equal(t, []string{"html"}, itemIDs(env.model))
}

func TestPalette_CursorMovement(t *testing.T) {
	env := createTestModel(t)
	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK})

	env.press(t, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, env.model.state.Cursor)

	env.press(t, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, env.model.state.Cursor)
}

func TestPalette_ExpandGroupAndBack(t *testing.T) {
	env := createTestModel(t)
	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK}, tea.KeyMsg{Type: tea.KeyDown})

	env.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, env.model.state.PaletteOpen)
	require.Len(t, env.model.state.Trail, 1)
	assert.Equal(t, "Download", env.model.state.Trail[0].Name)
	assert.Equal(t, []string{"markdown", "html"}, itemIDs(env.model))

	env.press(t, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, env.model.state.Trail)
	assert.Equal(t, []string{"star", "download", "print"}, itemIDs(env.model))
}

func TestPalette_SelectLeafDispatches(t *testing.T) {
	env := createTestModel(t)
	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK})

	cmd := env.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, env.model.state.PaletteOpen)
	assert.Equal(t, 1, env.model.state.Running)
	env.run(t, cmd)
	assert.Equal(t, int32(1), env.runs["star"].Load())
	assert.Zero(t, env.model.state.Running)
}

func TestPalette_EscCloses(t *testing.T) {
	env := createTestModel(t)
	env.press(t, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("st"))

	env.press(t, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, env.model.state.PaletteOpen)
	assert.Empty(t, env.model.state.Input.Value())
}

func TestShortcut_SingleKey(t *testing.T) {
	env := createTestModel(t)

	cmd := env.press(t, runes("s"))

	env.run(t, cmd)
	assert.Equal(t, int32(1), env.runs["star"].Load())
}

func TestShortcut_SequenceOpensGroup(t *testing.T) {
	env := createTestModel(t)

	env.press(t, runes("o"))
	assert.Equal(t, []string{"o"}, env.model.state.PendingKeys)

	env.press(t, runes("d"))
	assert.Empty(t, env.model.state.PendingKeys)
	assert.True(t, env.model.state.PaletteOpen)
	assert.Equal(t, []string{"markdown", "html"}, itemIDs(env.model))
}

func TestShortcut_SequenceRunsLeaf(t *testing.T) {
	env := createTestModel(t)

	env.press(t, runes("g"))
	cmd := env.press(t, runes("p"))

	env.run(t, cmd)
	assert.Equal(t, int32(1), env.runs["print"].Load())
}

func TestShortcut_BrokenSequenceResets(t *testing.T) {
	env := createTestModel(t)

	env.press(t, runes("o"))
	cmd := env.press(t, runes("x"))

	assert.Nil(t, cmd)
	assert.Empty(t, env.model.state.PendingKeys)
}

func TestShortcut_Timeout(t *testing.T) {
	env := createTestModel(t)
	env.press(t, runes("o"))

	env.send(shortcutTimeoutMsg{seq: env.model.shortcutSeq - 1})
	assert.NotEmpty(t, env.model.state.PendingKeys, "stale timer ignored")

	env.send(shortcutTimeoutMsg{seq: env.model.shortcutSeq})
	assert.Empty(t, env.model.state.PendingKeys)
}

func TestShortcut_InvisibleCommandIgnored(t *testing.T) {
	env := createTestModel(t)

	env.press(t, runes("h"))

	assert.Zero(t, env.model.state.Running)
	assert.Zero(t, env.runs["hidden"].Load())
}

func TestToasts(t *testing.T) {
	env := createTestModel(t)

	env.send(toastMsg{Kind: notify.KindSuccess, Message: "Document starred"})
	require.NotNil(t, env.model.state.Toast)
	assert.Equal(t, "Document starred", env.model.state.Toast.Message)

	env.send(clearToastMsg{seq: env.model.toastSeq})
	assert.Nil(t, env.model.state.Toast)
}

func TestToasts_Loading(t *testing.T) {
	env := createTestModel(t)

	env.send(toastMsg{Kind: notify.KindLoading, Message: "Importing…"})
	assert.Equal(t, 1, env.model.state.Loading)

	env.send(dismissMsg{})
	assert.Zero(t, env.model.state.Loading)
	assert.Nil(t, env.model.state.Toast)
}

func TestToasts_StrayDismiss(t *testing.T) {
	env := createTestModel(t)

	env.send(dismissMsg{})
	assert.Zero(t, env.model.state.Loading)

	env.send(toastMsg{Kind: notify.KindLoading, Message: "Importing…"})
	env.send(dismissMsg{})
	env.send(toastMsg{Kind: notify.KindSuccess, Message: "Saved"})
	env.send(clearToastMsg{seq: env.model.toastSeq})

	assert.Zero(t, env.model.state.Loading)
	assert.Nil(t, env.model.state.Toast)
}

func TestModal_OpenAndClose(t *testing.T) {
	env := createTestModel(t)
	env.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	env.send(modalMsg{modal: &command.Modal{Title: "Print preview", Content: "# Runbook"}})
	require.NotNil(t, env.model.state.Modal)
	assert.Contains(t, env.model.View(), "Print preview")

	// Shortcuts are inert behind a modal
	assert.Nil(t, env.press(t, runes("s")))

	env.press(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, env.model.state.Modal)
}

func TestLocation_ShowsActiveDocument(t *testing.T) {
	env := createTestModel(t)
	env.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	env.history.Push(entity.DocumentURL("d1", "Runbook"), nil)
	env.send(locationMsg(env.history.Location()))

	assert.Equal(t, "Runbook", env.model.state.DocumentTitle)
	assert.Contains(t, env.model.View(), "RENDERED Restart it.")
}

func TestLocation_BackReturnsToPreviousPage(t *testing.T) {
	env := createTestModel(t)
	env.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	env.history.Push(entity.DocumentURL("d1", "Runbook"), nil)
	env.send(locationMsg(env.history.Location()))
	require.Equal(t, "Runbook", env.model.state.DocumentTitle)

	env.press(t, tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, router.HomePath(), env.history.Location().Pathname)
	assert.Empty(t, env.model.state.DocumentTitle)

	// Nothing left to go back to
	env.press(t, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, router.HomePath(), env.history.Location().Pathname)
}

func TestLocation_RendererFailureFallsBack(t *testing.T) {
	env := createTestModel(t)
	env.model.renderer = &MockMarkdownRenderer{RenderFunc: func(string, int) (string, error) {
		return "", errors.New("boom")
	}}
	env.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	env.send(locationMsg(router.ParseLocation(entity.DocumentURL("d1", "Runbook"), nil)))

	assert.Contains(t, env.model.View(), "Restart it.")
}

func TestQuit(t *testing.T) {
	env := createTestModel(t)

	cmd := env.press(t, runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
