package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-treelist/internal/model"
	"github.com/pstuifzand/tui-treelist/internal/search"
)

// SearchAction tells the caller what a key did to the search bar
type SearchAction int

const (
	SearchContinue SearchAction = iota
	SearchAccept                // Enter: select Target()
	SearchCancel                // Escape
)

// SearchBar is an incremental search over the visible rows of a tree
type SearchBar struct {
	tree       *model.Tree
	query      []rune
	cursorPos  int
	active     bool
	filterExpr search.FilterExpr
	parseError string
	matches    []*model.Node
	target     *model.Node
	history    *History
}

// NewSearchBar creates an inactive search bar over tree
func NewSearchBar(tree *model.Tree) *SearchBar {
	return &SearchBar{tree: tree, history: NewHistory(50)}
}

// SetHistory replaces the query history, for example with a persisted one
func (s *SearchBar) SetHistory(h *History) {
	s.history = h
}

// Start starts search mode with an empty query
func (s *SearchBar) Start() {
	s.active = true
	s.query = nil
	s.cursorPos = 0
	s.history.Reset()
	s.update()
}

// Stop leaves search mode
func (s *SearchBar) Stop() {
	s.active = false
}

// IsActive returns whether search mode is active
func (s *SearchBar) IsActive() bool {
	return s.active
}

// Query returns the current query text
func (s *SearchBar) Query() string {
	return string(s.query)
}

// Target returns the match Enter would select, or nil
func (s *SearchBar) Target() *model.Node {
	return s.target
}

// Matches returns the visible nodes matching the query
func (s *SearchBar) Matches() []*model.Node {
	return s.matches
}

// ParseError returns the last parse error, if any
func (s *SearchBar) ParseError() string {
	return s.parseError
}

// HandleKey edits the query. Up and Down cycle the target through the
// matches in visible order, Ctrl+P and Ctrl+N recall earlier queries.
func (s *SearchBar) HandleKey(ev *tcell.EventKey) SearchAction {
	if !s.active {
		return SearchCancel
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		return SearchCancel
	case tcell.KeyEnter:
		s.Stop()
		s.history.Add(string(s.query))
		return SearchAccept
	case tcell.KeyCtrlP:
		if entry, ok := s.history.Previous(string(s.query)); ok {
			s.setQuery(entry)
		}
	case tcell.KeyCtrlN:
		if entry, ok := s.history.Next(); ok {
			s.setQuery(entry)
		}
	case tcell.KeyUp:
		s.cycle(true)
	case tcell.KeyDown, tcell.KeyTab:
		s.cycle(false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.cursorPos > 0 {
			s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
			s.cursorPos--
			s.update()
		}
	case tcell.KeyDelete:
		if s.cursorPos < len(s.query) {
			s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
			s.update()
		}
	case tcell.KeyLeft:
		if s.cursorPos > 0 {
			s.cursorPos--
		}
	case tcell.KeyRight:
		if s.cursorPos < len(s.query) {
			s.cursorPos++
		}
	case tcell.KeyHome:
		s.cursorPos = 0
	case tcell.KeyEnd:
		s.cursorPos = len(s.query)
	case tcell.KeyRune:
		s.query = append(s.query[:s.cursorPos], append([]rune{ev.Rune()}, s.query[s.cursorPos:]...)...)
		s.cursorPos++
		s.update()
	}
	return SearchContinue
}

func (s *SearchBar) setQuery(q string) {
	s.query = []rune(q)
	s.cursorPos = len(s.query)
	s.update()
}

func (s *SearchBar) cycle(backward bool) {
	if s.filterExpr == nil || len(s.matches) == 0 {
		return
	}
	s.target = search.Next(s.tree, s.filterExpr, s.target, backward)
}

// update reparses the query and picks the best match as the target
func (s *SearchBar) update() {
	s.parseError = ""
	s.matches = nil
	s.target = nil

	expr, err := search.ParseQuery(string(s.query))
	if err != nil {
		s.filterExpr = nil
		s.parseError = err.Error()
		return
	}
	s.filterExpr = expr
	if len(s.query) == 0 {
		return
	}
	s.matches = search.Matches(s.tree, expr)
	s.target = search.Best(s.tree, expr)
}

// Render draws the search bar on row y
func (s *SearchBar) Render(screen *Screen, y int) {
	width := screen.GetWidth()
	textStyle := screen.SearchTextStyle()
	screen.FillRow(0, y, width, textStyle)

	label := "Search: "
	x := screen.DrawString(0, y, label, screen.SearchLabelStyle())

	col := x
	for i, r := range s.query {
		style := textStyle
		if i == s.cursorPos {
			style = screen.SearchCursorStyle()
		}
		screen.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
	if s.cursorPos >= len(s.query) {
		screen.SetCell(col, y, ' ', screen.SearchCursorStyle())
	}

	var result string
	switch {
	case s.parseError != "":
		result = " (error: " + s.parseError + ")"
	case len(s.query) == 0:
		result = ""
	case s.target == nil:
		result = " (no matches)"
	default:
		result = fmt.Sprintf(" (%d matches) %s", len(s.matches), s.target.Title)
	}
	result = TruncateWithEllipsis(result, width/2)
	screen.DrawString(width-StringWidth(result), y, result, screen.SearchResultCountStyle())
}
