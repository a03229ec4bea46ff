package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-treelist/internal/ui"
)

// KeyBinding is an application-level key with its description and handler.
// Bindings without a handler are handled by the tree view and only listed
// in the help screen.
type KeyBinding struct {
	Key         tcell.Key
	Name        string
	Description string
	Handler     func(*App)
}

// InitializeKeybindings sets up the application key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: tcell.KeyF1, Name: "F1", Description: "Toggle help", Handler: func(app *App) {
			app.help.Toggle()
		}},
		{Key: tcell.KeyCtrlF, Name: "Ctrl+F", Description: "Search", Handler: func(app *App) {
			app.search.Start()
		}},
		{Key: tcell.KeyCtrlT, Name: "Ctrl+T", Description: "Toggle multi-selection", Handler: func(app *App) {
			app.toggleMultiSelect()
		}},
		{Key: tcell.KeyCtrlE, Name: "Ctrl+E", Description: "Expand all groups", Handler: func(app *App) {
			app.tree.ExpandAll()
		}},
		{Key: tcell.KeyCtrlW, Name: "Ctrl+W", Description: "Collapse all groups", Handler: func(app *App) {
			app.tree.CollapseAll()
		}},
		{Key: tcell.KeyCtrlS, Name: "Ctrl+S", Description: "Save", Handler: func(app *App) {
			app.saveWithStatus()
		}},
		{Key: tcell.KeyCtrlX, Name: "Ctrl+X", Description: "Export selection (or everything) to Markdown", Handler: func(app *App) {
			app.exportMarkdown()
		}},
		{Key: tcell.KeyCtrlQ, Name: "Ctrl+Q", Description: "Quit", Handler: func(app *App) {
			app.Quit()
		}},
		{Key: tcell.KeyEscape, Name: "Esc", Description: "Quit", Handler: func(app *App) {
			app.Quit()
		}},
		{Name: "Up/Down", Description: "Move to previous/next row"},
		{Name: "Left/Right", Description: "Collapse group or go to header / expand group or go to first item"},
		{Name: "Home/End", Description: "First/last item of the group"},
		{Name: "PgUp/PgDn", Description: "Move one page"},
		{Name: "Shift+Home/End", Description: "Extend the selection to the first/last item of the group"},
		{Name: "Ctrl+A", Description: "Select all"},
		{Name: "Enter", Description: "Activate the current item"},
		{Name: "letter", Description: "Jump to the next row starting with it"},
		{Name: "Ctrl+P/Ctrl+N", Description: "Previous/next search query while searching"},
		{Name: "Click", Description: "Select; Ctrl toggles, Shift extends; drag moves the selection"},
	}
}

// helpEntries converts the bindings for the help screen
func helpEntries(bindings []KeyBinding) []ui.KeyHelp {
	entries := make([]ui.KeyHelp, 0, len(bindings))
	for _, kb := range bindings {
		entries = append(entries, ui.KeyHelp{Key: kb.Name, Description: kb.Description})
	}
	return entries
}

// lookupBinding finds the handler for an application-level key
func (a *App) lookupBinding(key tcell.Key) (KeyBinding, bool) {
	for _, kb := range a.keybindings {
		if kb.Handler != nil && kb.Key == key {
			return kb, true
		}
	}
	return KeyBinding{}, false
}

func describeKey(ev *tcell.EventKey) string {
	return fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers())
}
