package ui

import "fmt"

// KeyHelp describes one key binding
type KeyHelp struct {
	Key         string
	Description string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyHelp
}

// NewHelpScreen creates a hidden help screen listing keybindings
func NewHelpScreen(keybindings []KeyHelp) *HelpScreen {
	return &HelpScreen{keybindings: keybindings}
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide hides the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted help text
func (h *HelpScreen) Lines() []string {
	width := 0
	for _, kb := range h.keybindings {
		width = max(width, StringWidth(kb.Key))
	}

	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %s  %s", PadToWidth(kb.Key, width), kb.Description))
	}
	return result
}

// Render draws the help screen as a box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	for y := 0; y < height; y++ {
		screen.FillRow(0, y, width, contentStyle)
	}

	startX, startY := 2, 1
	boxWidth := width - 4
	bottom := height - 2
	if boxWidth < 10 || bottom <= startY+3 {
		return
	}

	h.horizontal(screen, startX, startY, boxWidth, '┌', '┐')
	h.sides(screen, startX, startY+1, boxWidth)
	screen.DrawStringLimited(startX+2, startY+1, " Help (F1 to close) ", boxWidth-4, titleStyle)
	h.horizontal(screen, startX, startY+2, boxWidth, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		h.sides(screen, startX, y, boxWidth)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
	h.horizontal(screen, startX, y, boxWidth, '└', '┘')
}

func (h *HelpScreen) horizontal(screen *Screen, x, y, width int, left, right rune) {
	style := screen.HelpBorderStyle()
	screen.SetCell(x, y, left, style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, '─', style)
	}
	screen.SetCell(x+width-1, y, right, style)
}

func (h *HelpScreen) sides(screen *Screen, x, y, width int) {
	style := screen.HelpBorderStyle()
	screen.SetCell(x, y, '│', style)
	screen.SetCell(x+width-1, y, '│', style)
}
