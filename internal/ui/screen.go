package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-treelist/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initialises an existing tcell screen, such as a simulation screen
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at the given position and returns the columns used
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x+col, y, r, style)
		col += w
	}
	return col
}

// DrawStringLimited draws text truncated to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateWithEllipsis(text, maxWidth), style)
}

// FillRow paints width cells starting at x with style
func (s *Screen) FillRow(x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		s.SetCell(x+i, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize event
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	w, _ := s.Size()
	return w
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, h := s.Size()
	return h
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// TreeHeaderStyle returns the style for group header rows
func (s *Screen) TreeHeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeHeaderText, s.Theme.Colors.Background).Bold(true)
}

// TreeChildStyle returns the style for child rows
func (s *Screen) TreeChildStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeChildText, s.Theme.Colors.Background)
}

// TreeSubtitleStyle returns the style for the subtitle line of a child row
func (s *Screen) TreeSubtitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSubtitleText, s.Theme.Colors.Background)
}

// TreeDisabledStyle returns the style for disabled rows
func (s *Screen) TreeDisabledStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeDisabledText, s.Theme.Colors.Background).Dim(true)
}

// TreeSelectedStyle returns the style for selected rows
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedText, s.Theme.Colors.TreeSelectedBg)
}

// TreeCurrentStyle returns the style for the current row. A current row that
// is also selected gets a background between the two highlight colors.
func (s *Screen) TreeCurrentStyle(selected bool) tcell.Style {
	c := s.Theme.Colors
	bg := c.TreeCurrentBg
	if selected {
		bg = theme.Blend(c.TreeSelectedBg, c.TreeCurrentBg, 0.5)
	}
	return theme.ColorPairToStyle(c.TreeCurrentText, bg).Bold(true)
}

// TreeArrowStyle returns the style for expand/collapse arrows
func (s *Screen) TreeArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeArrow, s.Theme.Colors.Background)
}

// TreeExcludedMarkStyle returns the style for the mark on rows excluded from multi-selection
func (s *Screen) TreeExcludedMarkStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeExcludedMark, s.Theme.Colors.Background)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel).Bold(true)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// SearchCursorStyle returns the style for the search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText).Reverse(true)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchResultCount)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusStyle returns the style for the status line
func (s *Screen) StatusStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusText)
}

// StatusCountStyle returns the style for the selection count on the status line
func (s *Screen) StatusCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusCount).Bold(true)
}

// HeaderStyle returns the style for the document title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
