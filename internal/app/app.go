package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-treelist/internal/config"
	"github.com/pstuifzand/tui-treelist/internal/export"
	"github.com/pstuifzand/tui-treelist/internal/history"
	import_parser "github.com/pstuifzand/tui-treelist/internal/import"
	"github.com/pstuifzand/tui-treelist/internal/model"
	"github.com/pstuifzand/tui-treelist/internal/selection"
	"github.com/pstuifzand/tui-treelist/internal/socket"
	"github.com/pstuifzand/tui-treelist/internal/storage"
	"github.com/pstuifzand/tui-treelist/internal/theme"
	"github.com/pstuifzand/tui-treelist/internal/ui"
)

const (
	statusMessageAge  = 3 * time.Second
	autoSaveDelay     = 5 * time.Second
	searchHistorySize = 100
)

// App is the main application controller
type App struct {
	screen      *ui.Screen
	cfg         *config.Config
	store       *storage.JSONStore
	title       string
	tree        *model.Tree
	engine      *selection.Engine
	view        *ui.TreeView
	search      *ui.SearchBar
	help        *ui.HelpScreen
	messages    *ui.MessageLog
	keybindings []KeyBinding
	server      *socket.Server

	lastActivated *model.Node
	dirty         bool
	dirtySince    time.Time
	quit          bool
	debugMode     bool
}

// NewApp opens filePath (or a sample list when empty) on the terminal
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	screen.EnableMouse()

	a, err := newApp(screen, filePath, cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}

	if manager, err := history.NewManager(); err != nil {
		log.Printf("Search history not persisted: %v", err)
	} else if h, err := ui.NewHistoryWithManager(searchHistorySize, manager, "search.toml"); err != nil {
		log.Printf("Failed to load search history: %v", err)
	} else {
		a.search.SetHistory(h)
	}
	return a, nil
}

func newApp(screen *ui.Screen, filePath string, cfg *config.Config) (*App, error) {
	doc, store, err := loadDocument(filePath)
	if err != nil {
		return nil, err
	}

	tree := model.NewTree()
	doc.Populate(tree)

	engine := selection.NewEngine(tree)
	engine.SetMultiSelect(cfg.MultiSelect)

	view := ui.NewTreeView(engine, selection.NewNavigator(engine))
	view.SetRowHeights(cfg.HeaderRowHeight, cfg.ChildRowHeight)

	a := &App{
		screen:   screen,
		cfg:      cfg,
		store:    store,
		title:    doc.Title,
		tree:     tree,
		engine:   engine,
		view:     view,
		search:   ui.NewSearchBar(tree),
		messages: ui.NewMessageLog(20),
	}
	a.keybindings = a.InitializeKeybindings()
	a.help = ui.NewHelpScreen(helpEntries(a.keybindings))

	engine.OnSelectionChanged(a.selectionChanged)
	engine.OnNodeActivated(a.nodeActivated)
	view.OnDrop(a.dropped)

	log.Printf("Loaded %q with %d nodes", a.title, tree.Len())
	return a, nil
}

// loadDocument reads filePath. Markdown and text files are imported and
// saved next to the original as JSON. Without a path the sample is shown.
func loadDocument(filePath string) (*storage.Document, *storage.JSONStore, error) {
	if filePath == "" {
		return sampleDocument(), nil, nil
	}

	format, ok := import_parser.DetectFormat(filePath)
	if !ok {
		store := storage.NewJSONStore(filePath)
		doc, err := store.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load tree: %w", err)
		}
		return doc, store, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	doc, err := import_parser.ImportFile(string(content), format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import %s: %w", filePath, err)
	}
	jsonPath := strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".json"
	log.Printf("Imported %s, saving to %s", filePath, jsonPath)
	return doc, storage.NewJSONStore(jsonPath), nil
}

func (a *App) selectionChanged(change selection.SelectionChange) {
	current := "-"
	if change.Current != nil {
		current = change.Current.Title
	}
	log.Printf("Selection changed: current=%s selected=%d", current, len(change.Selected))
}

func (a *App) nodeActivated(n *model.Node) {
	a.lastActivated = n
	log.Printf("Activated: %s", n.Title)
	a.messages.Addf("Activated %s", n.Title)
}

func (a *App) dropped(dragged []*model.Node, target *model.Node) {
	if target == nil {
		a.messages.Addf("Dropped %d item(s) outside the list", len(dragged))
		return
	}
	log.Printf("Dropped %d item(s) on %s", len(dragged), target.Title)
	a.messages.Addf("Dropped %d item(s) on %s", len(dragged), target.Title)
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	server, err := socket.NewServer(socket.DefaultDir(), os.Getpid())
	if err != nil {
		log.Printf("Remote control disabled: %v", err)
	} else {
		a.server = server
		server.Start()
	}

	done := make(chan struct{})
	defer close(done)
	eventChan := pollEvents(a.screen, done)

	var remote <-chan socket.Message
	if a.server != nil {
		remote = a.server.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleEvent(ev)
			a.render()
		case msg := <-remote:
			a.handleRemoteMessage(msg)
			a.render()
		case <-ticker.C:
			a.autoSave()
			a.render()
		}
	}
	return nil
}

// pollEvents forwards screen events until the screen is closed (a nil
// event) or done is closed. The returned channel is closed when polling stops.
func pollEvents(screen eventSource, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			event := screen.PollEvent()
			select {
			case events <- event:
			case <-done:
				return
			}
			if event == nil {
				return
			}
		}
	}()
	return events
}

type eventSource interface {
	PollEvent() tcell.Event
}

// Close stops the remote control server and restores the terminal
func (a *App) Close() error {
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

func (a *App) autoSave() {
	if !a.dirty || a.store == nil || time.Since(a.dirtySince) < autoSaveDelay {
		return
	}
	a.saveWithStatus()
}

// handleEvent routes input to the help screen, search bar or tree view
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		if a.help.IsVisible() || a.search.IsActive() {
			return
		}
		a.view.HandleMouse(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.debugMode {
		a.messages.Addf("%s", describeKey(ev))
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 {
			a.help.Hide()
		}
		return
	}

	if a.search.IsActive() {
		if a.search.HandleKey(ev) == ui.SearchAccept {
			a.acceptSearch()
		}
		return
	}

	if kb, ok := a.lookupBinding(ev.Key()); ok {
		kb.Handler(a)
		return
	}
	a.view.HandleKey(ev)
}

func (a *App) acceptSearch() {
	target := a.search.Target()
	if target == nil {
		a.messages.Addf("No match for %q", a.search.Query())
		return
	}
	a.engine.SelectSingle(target)
}

func (a *App) toggleMultiSelect() {
	enabled := !a.engine.MultiSelect()
	a.engine.SetMultiSelect(enabled)
	a.cfg.Set("multi_select", fmt.Sprintf("%t", enabled))
	if enabled {
		a.messages.Addf("Multi-selection on")
	} else {
		a.messages.Addf("Multi-selection off")
	}
}

func (a *App) markDirty() {
	if !a.dirty {
		a.dirtySince = time.Now()
	}
	a.dirty = true
}

// Save writes the tree back to its file
func (a *App) Save() error {
	if a.store == nil {
		return fmt.Errorf("no file to save to")
	}
	if err := a.store.Save(storage.DocumentFromTree(a.title, a.tree)); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

func (a *App) saveWithStatus() {
	if err := a.Save(); err != nil {
		log.Printf("Failed to save: %v", err)
		a.messages.Addf("Failed to save: %v", err)
		return
	}
	a.messages.Addf("Saved")
}

// exportPath is where markdown exports are written
func (a *App) exportPath() string {
	if a.store == nil {
		return "ttl-export.md"
	}
	return strings.TrimSuffix(a.store.FilePath, filepath.Ext(a.store.FilePath)) + "-export.md"
}

// exportMarkdown writes the selection, or the whole tree when nothing is
// selected, as markdown
func (a *App) exportMarkdown() {
	var content string
	if selected := a.engine.Selected(); len(selected) > 0 {
		content = export.SelectionToMarkdown(a.tree, selected)
	} else {
		content = export.TreeToMarkdown(a.title, a.tree)
	}

	path := a.exportPath()
	if err := export.ExportToMarkdown(content, path); err != nil {
		log.Printf("Failed to export: %v", err)
		a.messages.Addf("Failed to export: %v", err)
		return
	}
	a.messages.Addf("Exported to %s", path)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables showing key events in the status line
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// render draws the title, the tree, the search bar, the status line and the
// help overlay
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	mode := "multi"
	if !a.engine.MultiSelect() {
		mode = "single"
	}
	header := fmt.Sprintf(" %s [%s]", a.title, mode)
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	treeHeight := height - 2
	if a.search.IsActive() {
		treeHeight--
		a.search.Render(a.screen, height-2)
	}
	if treeHeight > 0 {
		a.view.Render(a.screen, 0, 1, width, treeHeight)
	}

	a.renderStatus(width, height-1)
	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(width, y int) {
	style := a.screen.StatusStyle()
	a.screen.FillRow(0, y, width, style)

	x := 0
	count := fmt.Sprintf(" %d selected ", a.engine.SelectedCount())
	x += a.screen.DrawString(x, y, count, a.screen.StatusCountStyle())

	status := a.statusText()
	a.screen.DrawStringLimited(x, y, status, width-x, style)
}

// statusText describes the current node, the last activation and the newest message
func (a *App) statusText() string {
	text := ""
	if cur := a.engine.Current(); cur != nil {
		text = cur.Title
	}
	if a.lastActivated != nil {
		text += " | activated: " + a.lastActivated.Title
	}
	if a.dirty {
		text += " (modified)"
	}
	if recent := a.messages.Recent(statusMessageAge); len(recent) > 0 {
		text += " | " + recent[len(recent)-1].Text
	}
	return text
}

// sampleDocument is shown when no file is given
func sampleDocument() *storage.Document {
	return &storage.Document{
		Title: "Welcome",
		Groups: []storage.Group{
			{Title: "Getting started", Items: []storage.Item{
				{Title: "Move with the arrow keys", Subtitle: "Left and Right collapse and expand groups"},
				{Title: "Hold Shift to extend", Subtitle: "Shift+Home and Shift+End extend to the ends of the group"},
				{Title: "Ctrl+A selects everything", Subtitle: "Items marked with a dot are left out", Exclude: true},
			}},
			{Title: "Mouse", Items: []storage.Item{
				{Title: "Click to select", Subtitle: "Ctrl+click toggles, Shift+click extends"},
				{Title: "Drag a selection", Subtitle: "Press on a selected item and move"},
				{Title: "Double click to activate"},
			}},
		},
	}
}
