package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-treelist/internal/config"
	"github.com/pstuifzand/tui-treelist/internal/socket"
	"github.com/pstuifzand/tui-treelist/internal/storage"
	"github.com/pstuifzand/tui-treelist/internal/theme"
	"github.com/pstuifzand/tui-treelist/internal/ui"
)

func newTestApp(t *testing.T, filePath string) *App {
	t.Helper()
	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(60, 20)
	screen.Size()

	a, err := newApp(screen, filePath, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	a.render()
	return a
}

func pressKey(a *App, k tcell.Key) {
	a.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	a.render()
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	a.render()
}

func writeDocument(t *testing.T, doc *storage.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, storage.NewJSONStore(path).Save(doc))
	return path
}

func TestSampleDocumentWithoutFile(t *testing.T) {
	a := newTestApp(t, "")

	assert.Equal(t, "Welcome", a.title)
	assert.Len(t, a.tree.Headers(), 2)
	assert.Equal(t, 8, a.tree.Len())
	assert.Error(t, a.Save(), "there is no file to save to")
}

func TestArrowKeysSelect(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyDown)
	require.NotNil(t, a.engine.Current())
	assert.Equal(t, "Hold Shift to extend", a.engine.Current().Title)
	assert.Equal(t, 1, a.engine.SelectedCount())
	assert.Contains(t, a.statusText(), "Hold Shift to extend")
}

func TestOnlyShiftHomeEndExtend(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyDown)
	a.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift))
	assert.Equal(t, 1, a.engine.SelectedCount(), "Shift+Down moves without extending")

	a.handleEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModShift))
	assert.Equal(t, 3, a.engine.SelectedCount())

	help := strings.Join(a.help.Lines(), "\n")
	assert.Contains(t, help, "Shift+Home/End")
	assert.NotContains(t, help, "Shift+move")
}

func TestEnterActivates(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyDown)
	pressKey(a, tcell.KeyEnter)
	require.NotNil(t, a.lastActivated)
	assert.Contains(t, a.statusText(), "activated: Hold Shift to extend")
}

func TestToggleMultiSelect(t *testing.T) {
	a := newTestApp(t, "")
	require.True(t, a.engine.MultiSelect())

	pressKey(a, tcell.KeyCtrlT)
	assert.False(t, a.engine.MultiSelect())
	assert.Equal(t, "false", a.cfg.Get("multi_select"))

	pressKey(a, tcell.KeyCtrlT)
	assert.True(t, a.engine.MultiSelect())
}

func TestSearchSelectsBestMatch(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyCtrlF)
	require.True(t, a.search.IsActive())
	typeText(a, "drag")
	pressKey(a, tcell.KeyEnter)

	assert.False(t, a.search.IsActive())
	require.NotNil(t, a.engine.Current())
	assert.Equal(t, "Drag a selection", a.engine.Current().Title)
}

func TestSearchWithoutMatchLeavesSelection(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyCtrlF)
	typeText(a, "zzzz")
	pressKey(a, tcell.KeyEnter)

	assert.Nil(t, a.engine.Current())
	assert.Contains(t, a.statusText(), `No match for "zzzz"`)
}

func TestHelpSwallowsKeys(t *testing.T) {
	a := newTestApp(t, "")

	pressKey(a, tcell.KeyF1)
	require.True(t, a.help.IsVisible())
	pressKey(a, tcell.KeyDown)
	assert.Nil(t, a.engine.Current())

	pressKey(a, tcell.KeyEscape)
	assert.False(t, a.help.IsVisible())
	assert.False(t, a.quit, "Esc closes help before it quits")

	pressKey(a, tcell.KeyEscape)
	assert.True(t, a.quit)
}

func TestCtrlQQuits(t *testing.T) {
	a := newTestApp(t, "")
	pressKey(a, tcell.KeyCtrlQ)
	assert.True(t, a.quit)
}

func TestMouseClickSelects(t *testing.T) {
	a := newTestApp(t, "")

	// row 0 is the title, row 1 the first header, rows 2-3 the first item
	a.handleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))

	require.NotNil(t, a.engine.Current())
	assert.Equal(t, "Move with the arrow keys", a.engine.Current().Title)
}

func TestRemoteCommands(t *testing.T) {
	a := newTestApp(t, "")

	a.handleRemoteMessage(socket.Message{Command: socket.CommandAddItem, Group: "Results", Title: "row 1"})
	a.handleRemoteMessage(socket.Message{Command: socket.CommandAddItem, Group: "Results", Title: "row 2"})
	group := a.findGroup("Results")
	require.NotNil(t, group)
	assert.Len(t, group.Children(), 2)
	assert.True(t, a.dirty)

	a.handleRemoteMessage(socket.Message{Command: socket.CommandSelect, Group: "Results", Title: "row 2"})
	assert.Equal(t, "row 2", a.engine.Current().Title)

	a.handleRemoteMessage(socket.Message{Command: socket.CommandClearGroup, Group: "Results"})
	assert.Empty(t, group.Children())
	assert.Nil(t, a.engine.Current(), "removed nodes leave the selection")
	assert.Zero(t, a.engine.SelectedCount())

	a.handleRemoteMessage(socket.Message{Command: socket.CommandSelect, Group: "Results", Title: "row 2"})
	assert.Contains(t, a.statusText(), "No item row 2 in Results")
}

func TestSaveWritesTreeBack(t *testing.T) {
	path := writeDocument(t, &storage.Document{
		Title:  "Queries",
		Groups: []storage.Group{{Title: "Recent", Items: []storage.Item{{Title: "Customers"}}}},
	})
	a := newTestApp(t, path)
	assert.Equal(t, "Queries", a.title)

	a.handleRemoteMessage(socket.Message{Command: socket.CommandAddItem, Group: "Recent", Title: "Orders", Subtitle: "SELECT 1"})
	pressKey(a, tcell.KeyCtrlS)
	assert.False(t, a.dirty)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"Orders"`))

	doc, err := storage.NewJSONStore(path).Load()
	require.NoError(t, err)
	require.Len(t, doc.Groups, 1)
	assert.Len(t, doc.Groups[0].Items, 2)
	assert.Equal(t, "SELECT 1", doc.Groups[0].Items[1].Subtitle)
}

func TestLoadErrorIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	screen, err := ui.NewScreenFrom(tcell.NewSimulationScreen("UTF-8"), theme.Default())
	require.NoError(t, err)
	defer screen.Close()

	_, err = newApp(screen, path, cfg)
	assert.Error(t, err)
}

func TestMarkdownFileIsImported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n\n## Todo\n\n- Write tests\n  - soon\n- Ship\n"), 0644))

	a := newTestApp(t, path)
	assert.Equal(t, "Notes", a.title)
	require.Len(t, a.tree.Headers(), 1)
	assert.Len(t, a.tree.Headers()[0].Children(), 2)
	assert.Equal(t, "soon", a.tree.Headers()[0].Children()[0].Subtitle)

	pressKey(a, tcell.KeyCtrlS)
	_, err := os.Stat(filepath.Join(dir, "notes.json"))
	assert.NoError(t, err, "imported files are saved as JSON next to the original")
}

func TestExportWritesSelection(t *testing.T) {
	path := writeDocument(t, &storage.Document{
		Title: "Queries",
		Groups: []storage.Group{
			{Title: "Recent", Items: []storage.Item{{Title: "Customers"}, {Title: "Orders"}}},
		},
	})
	a := newTestApp(t, path)

	pressKey(a, tcell.KeyCtrlX)
	data, err := os.ReadFile(a.exportPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Queries\n"), "nothing selected exports the whole tree")

	a.engine.SelectSingle(a.tree.Headers()[0].Children()[1])
	pressKey(a, tcell.KeyCtrlX)
	data, err = os.ReadFile(a.exportPath())
	require.NoError(t, err)
	assert.Equal(t, "\n## Recent\n\n- Orders\n", string(data))
	assert.Contains(t, a.statusText(), "Exported to")
}

// endlessEvents always has another key event ready
type endlessEvents struct{}

func (endlessEvents) PollEvent() tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	events := pollEvents(endlessEvents{}, done)

	require.NotNil(t, <-events)
	close(done)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event polling kept running after done was closed")
		}
	}
}

// closedScreen reports a closed screen
type closedScreen struct{}

func (closedScreen) PollEvent() tcell.Event {
	return nil
}

func TestPollEventsStopsOnNilEvent(t *testing.T) {
	events := pollEvents(closedScreen{}, make(chan struct{}))

	ev, ok := <-events
	assert.True(t, ok)
	assert.Nil(t, ev)
	_, ok = <-events
	assert.False(t, ok)
}
