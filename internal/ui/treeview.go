package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-treelist/internal/model"
	"github.com/pstuifzand/tui-treelist/internal/selection"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	arrowColumns        = 2
	childIndent         = 2
	maxRowHeight        = 4
)

// rowSpan is where a node was drawn during the last render
type rowSpan struct {
	node   *model.Node
	top    int
	height int
}

// TreeView draws a tree list and turns tcell input into selection gestures
type TreeView struct {
	engine *selection.Engine
	nav    *selection.Navigator
	tree   *model.Tree

	headerHeight int
	childHeight  int

	x, y, width, height int

	offset int // visible index of the first drawn node
	follow bool
	rows   []rowSpan

	buttonDown  bool
	pressed     *model.Node
	dragging    []*model.Node
	lastClick   *model.Node
	lastClickAt time.Time
	now         func() time.Time

	dropHandlers []func(dragged []*model.Node, target *model.Node)
}

// NewTreeView creates a view over the engine's tree. Headers take one row,
// children two (title and subtitle).
func NewTreeView(engine *selection.Engine, nav *selection.Navigator) *TreeView {
	tv := &TreeView{
		engine:       engine,
		nav:          nav,
		tree:         engine.Tree(),
		headerHeight: 1,
		childHeight:  2,
		now:          time.Now,
	}
	engine.OnSelectionChanged(func(selection.SelectionChange) {
		tv.follow = true
	})
	return tv
}

// SetRowHeights overrides the number of screen rows per header and per child
func (tv *TreeView) SetRowHeights(header, child int) {
	tv.headerHeight = clampHeight(header)
	tv.childHeight = clampHeight(child)
}

func clampHeight(h int) int {
	if h < 1 {
		return 1
	}
	if h > maxRowHeight {
		return maxRowHeight
	}
	return h
}

// RowHeight returns the number of screen rows n occupies
func (tv *TreeView) RowHeight(n *model.Node) int {
	if n.IsHeader() {
		return tv.headerHeight
	}
	return tv.childHeight
}

// Offset returns the visible index of the first drawn node
func (tv *TreeView) Offset() int {
	return tv.offset
}

// OnDrop registers a listener called when a drag ends. target is the node
// under the pointer on release, or nil.
func (tv *TreeView) OnDrop(fn func(dragged []*model.Node, target *model.Node)) {
	tv.dropHandlers = append(tv.dropHandlers, fn)
}

// Render draws the visible nodes into the given area. The current node is
// scrolled into view after selection changes, and the number of nodes that
// fit is handed to the tree as its page size.
func (tv *TreeView) Render(screen *Screen, x, y, width, height int) {
	tv.x, tv.y, tv.width, tv.height = x, y, width, height

	visible := tv.tree.VisibleNodes()
	tv.clampOffset(len(visible))
	if tv.follow {
		tv.scrollTo(visible, tv.engine.Current())
		tv.follow = false
	}

	tv.rows = tv.rows[:0]
	row := y
	for i := tv.offset; i < len(visible) && row < y+height; i++ {
		n := visible[i]
		h := tv.RowHeight(n)
		lines := min(h, y+height-row)
		tv.rows = append(tv.rows, rowSpan{node: n, top: row, height: lines})
		tv.drawNode(screen, n, row, lines)
		row += h
	}
	for ; row < y+height; row++ {
		screen.FillRow(x, row, width, screen.BackgroundStyle())
	}

	tv.tree.SetPageSize(tv.fullyVisible(visible))
}

// fullyVisible counts the nodes from the offset that fit without clipping
func (tv *TreeView) fullyVisible(visible []*model.Node) int {
	used, count := 0, 0
	for i := tv.offset; i < len(visible); i++ {
		used += tv.RowHeight(visible[i])
		if used > tv.height {
			break
		}
		count++
	}
	return max(count, 1)
}

func (tv *TreeView) clampOffset(visibleCount int) {
	if tv.offset >= visibleCount {
		tv.offset = visibleCount - 1
	}
	if tv.offset < 0 {
		tv.offset = 0
	}
}

// scrollTo moves the offset the least amount that brings n fully into view
func (tv *TreeView) scrollTo(visible []*model.Node, n *model.Node) {
	idx := -1
	for i, v := range visible {
		if v == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if idx < tv.offset {
		tv.offset = idx
		return
	}
	for tv.offset < idx && tv.spanHeight(visible, tv.offset, idx) > tv.height {
		tv.offset++
	}
}

func (tv *TreeView) spanHeight(visible []*model.Node, from, to int) int {
	h := 0
	for i := from; i <= to; i++ {
		h += tv.RowHeight(visible[i])
	}
	return h
}

// Scroll moves the viewport by delta nodes without changing the selection
func (tv *TreeView) Scroll(delta int) {
	tv.offset += delta
	tv.clampOffset(len(tv.tree.VisibleNodes()))
}

func (tv *TreeView) drawNode(screen *Screen, n *model.Node, top, lines int) {
	selected := tv.engine.IsSelected(n)
	current := tv.engine.Current() == n

	style := screen.TreeChildStyle()
	if n.IsHeader() {
		style = screen.TreeHeaderStyle()
	}
	if !n.Enabled {
		style = screen.TreeDisabledStyle()
	}
	subStyle := screen.TreeSubtitleStyle()
	arrowStyle := screen.TreeArrowStyle()
	markStyle := screen.TreeExcludedMarkStyle()
	if selected {
		style = screen.TreeSelectedStyle()
	}
	if current {
		style = screen.TreeCurrentStyle(selected)
	}
	if selected || current {
		subStyle, arrowStyle, markStyle = style, style, style
	}

	for i := 0; i < lines; i++ {
		screen.FillRow(tv.x, top+i, tv.width, style)
	}

	if n.IsHeader() {
		arrow := '▸'
		if n.Expanded() {
			arrow = '▾'
		}
		screen.SetCell(tv.x, top, arrow, arrowStyle)
		title := fmt.Sprintf("%s (%d)", n.Title, len(n.Children()))
		screen.DrawStringLimited(tv.x+arrowColumns, top, title, tv.width-arrowColumns, style)
		return
	}

	if n.ExcludeFromMultiSelection {
		screen.SetCell(tv.x+childIndent, top, '·', markStyle)
	}
	textX := tv.x + childIndent + arrowColumns
	screen.DrawStringLimited(textX, top, n.Title, tv.width-(textX-tv.x), style)
	if lines > 1 && n.Subtitle != "" {
		screen.DrawStringLimited(textX, top+1, n.Subtitle, tv.width-(textX-tv.x), subStyle)
	}
}

// NodeAt returns the node drawn at screen position (x, y) during the last
// render, and whether the position is on a header's arrow column.
func (tv *TreeView) NodeAt(x, y int) (*model.Node, bool) {
	if x < tv.x || x >= tv.x+tv.width {
		return nil, false
	}
	for _, r := range tv.rows {
		if y >= r.top && y < r.top+r.height {
			onArrow := r.node.IsHeader() && y == r.top && x < tv.x+arrowColumns
			return r.node, onArrow
		}
	}
	return nil, false
}

// HandleKey feeds a key event to the navigator
func (tv *TreeView) HandleKey(ev *tcell.EventKey) bool {
	return tv.nav.HandleKey(TranslateKey(ev))
}

// HandleMouse turns button 1 presses, releases and drags into pointer
// gestures. The wheel scrolls the viewport.
func (tv *TreeView) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	mods := translateModifiers(ev.Modifiers())
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		tv.Scroll(-1)
		return true
	case buttons&tcell.WheelDown != 0:
		tv.Scroll(1)
		return true
	case buttons&tcell.Button1 != 0:
		n, onArrow := tv.NodeAt(x, y)
		if tv.buttonDown {
			return tv.dragTo(n)
		}
		tv.buttonDown = true
		tv.pressed = nil
		if n == nil {
			return false
		}
		if onArrow {
			tv.tree.Toggle(n)
			return true
		}
		tv.pressed = n
		tv.engine.PointerDown(n, mods)
		return true
	case tv.buttonDown:
		tv.buttonDown = false
		n, _ := tv.NodeAt(x, y)
		return tv.release(n, mods)
	}
	return false
}

func (tv *TreeView) dragTo(n *model.Node) bool {
	if tv.dragging == nil && tv.pressed != nil && n != tv.pressed {
		tv.dragging = tv.engine.BeginDrag(tv.pressed)
	}
	return tv.dragging != nil
}

func (tv *TreeView) release(n *model.Node, mods selection.Modifiers) bool {
	pressed := tv.pressed
	tv.pressed = nil

	if dragged := tv.dragging; dragged != nil {
		tv.dragging = nil
		for _, fn := range tv.dropHandlers {
			fn(dragged, n)
		}
		return true
	}
	if pressed == nil || pressed != n {
		return false
	}

	tv.engine.PointerUp(n, mods)
	now := tv.now()
	if tv.lastClick == n && now.Sub(tv.lastClickAt) <= doubleClickInterval {
		tv.lastClick = nil
		tv.engine.Activate(n)
		return true
	}
	tv.lastClick, tv.lastClickAt = n, now
	return true
}

// Dragging returns the nodes being dragged, or nil
func (tv *TreeView) Dragging() []*model.Node {
	return tv.dragging
}

func translateModifiers(m tcell.ModMask) selection.Modifiers {
	var mods selection.Modifiers
	if m&tcell.ModCtrl != 0 {
		mods |= selection.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mods |= selection.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= selection.ModAlt
	}
	return mods
}

// TranslateKey maps a tcell key event onto the navigator's key set. Keys the
// navigator does not know become KeyNone.
func TranslateKey(ev *tcell.EventKey) selection.KeyEvent {
	mods := translateModifiers(ev.Modifiers())
	var k selection.Key
	switch ev.Key() {
	case tcell.KeyEnter:
		k = selection.KeyEnter
	case tcell.KeyLeft:
		k = selection.KeyLeft
	case tcell.KeyRight:
		k = selection.KeyRight
	case tcell.KeyUp:
		k = selection.KeyUp
	case tcell.KeyDown:
		k = selection.KeyDown
	case tcell.KeyHome:
		k = selection.KeyHome
	case tcell.KeyEnd:
		k = selection.KeyEnd
	case tcell.KeyPgUp:
		k = selection.KeyPageUp
	case tcell.KeyPgDn:
		k = selection.KeyPageDown
	case tcell.KeyRune:
		return selection.KeyEvent{Key: selection.KeyRune, Rune: ev.Rune(), Modifiers: mods}
	case tcell.KeyCtrlA:
		return selection.KeyEvent{Key: selection.KeyRune, Rune: 'a', Modifiers: mods | selection.ModCtrl}
	default:
		return selection.KeyEvent{Key: selection.KeyNone}
	}
	return selection.KeyEvent{Key: k, Modifiers: mods}
}
