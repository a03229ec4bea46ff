package selection

import (
	"github.com/pstuifzand/tui-treelist/internal/model"
)

// Modifiers is the set of modifier keys held during a gesture
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// ModNone means no modifier key is held
const ModNone Modifiers = 0

// Has reports whether all modifiers in m are set
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// SelectionChange is delivered to listeners once per gesture that changed
// the selected set or the current node.
type SelectionChange struct {
	Current  *model.Node
	Selected []*model.Node
}

// Engine applies pointer gestures to a State. Every public operation is a
// gesture: listeners hear about it at most once, after it completes.
type Engine struct {
	tree        *model.Tree
	state       *State
	multiSelect bool

	changedHandlers   []func(SelectionChange)
	activatedHandlers []func(*model.Node)

	updateDepth int
	before      snapshot

	// plain press on a node of a multi-node selection, resolved on release
	pressed *model.Node
}

type snapshot struct {
	current  *model.Node
	selected map[*model.Node]struct{}
}

// NewEngine creates an engine with multi-selection enabled
func NewEngine(tree *model.Tree) *Engine {
	e := &Engine{
		tree:        tree,
		state:       NewState(),
		multiSelect: true,
	}
	tree.OnNodesRemoved(e.nodesRemoved)
	return e
}

// Tree returns the tree the engine selects in
func (e *Engine) Tree() *model.Tree {
	return e.tree
}

// OnSelectionChanged registers a listener for completed selection changes
func (e *Engine) OnSelectionChanged(fn func(SelectionChange)) {
	e.changedHandlers = append(e.changedHandlers, fn)
}

// OnNodeActivated registers a listener for node activation (Enter, double click)
func (e *Engine) OnNodeActivated(fn func(*model.Node)) {
	e.activatedHandlers = append(e.activatedHandlers, fn)
}

// MultiSelect reports whether more than one node may be selected
func (e *Engine) MultiSelect() bool {
	return e.multiSelect
}

// SetMultiSelect enables or disables multi-selection. Disabling it reduces
// the selection to the current node.
func (e *Engine) SetMultiSelect(enabled bool) {
	if e.multiSelect == enabled {
		return
	}
	e.BeginUpdate()
	defer e.EndUpdate()

	e.multiSelect = enabled
	if !enabled {
		e.pressed = nil
		e.state.ClearSelected()
		e.state.Mark(e.state.Current())
	}
}

// Current returns the focused node, or nil
func (e *Engine) Current() *model.Node {
	return e.state.Current()
}

// Selected returns a snapshot of the selected nodes in tree order
func (e *Engine) Selected() []*model.Node {
	return e.state.Selected()
}

// IsSelected reports whether n is selected
func (e *Engine) IsSelected(n *model.Node) bool {
	return e.state.IsSelected(n)
}

// SelectedCount returns the number of selected nodes
func (e *Engine) SelectedCount() int {
	return e.state.Len()
}

// BeginUpdate opens a gesture. Brackets nest; listeners are notified when
// the outermost bracket closes and the selection differs from when it opened.
func (e *Engine) BeginUpdate() {
	if e.updateDepth == 0 {
		e.before = e.takeSnapshot()
	}
	e.updateDepth++
}

// EndUpdate closes a gesture opened by BeginUpdate
func (e *Engine) EndUpdate() {
	if e.updateDepth == 0 {
		return
	}
	e.updateDepth--
	if e.updateDepth > 0 {
		return
	}
	if e.before.equal(e.state) {
		return
	}
	change := SelectionChange{
		Current:  e.state.Current(),
		Selected: e.state.Selected(),
	}
	for _, fn := range e.changedHandlers {
		fn(change)
	}
}

func (e *Engine) takeSnapshot() snapshot {
	sel := make(map[*model.Node]struct{}, len(e.state.selected))
	for n := range e.state.selected {
		sel[n] = struct{}{}
	}
	return snapshot{current: e.state.current, selected: sel}
}

func (s snapshot) equal(st *State) bool {
	if s.current != st.current || len(s.selected) != len(st.selected) {
		return false
	}
	for n := range st.selected {
		if _, ok := s.selected[n]; !ok {
			return false
		}
	}
	return true
}

func (e *Engine) nodesRemoved(removed []*model.Node) {
	e.BeginUpdate()
	defer e.EndUpdate()

	e.state.Forget(removed)
	for _, n := range removed {
		if e.pressed == n {
			e.pressed = nil
		}
	}
}

// ClickSelect applies a click on n. Ctrl toggles n, Shift extends the
// selection from the current node to n. Without multi-selection both
// degrade to a plain click, and so does Shift when the current node is
// missing or hidden in a collapsed group. Ctrl+Shift extends like Shift.
func (e *Engine) ClickSelect(n *model.Node, mods Modifiers) bool {
	if !e.tree.Contains(n) {
		return false
	}
	e.BeginUpdate()
	defer e.EndUpdate()

	switch cur := e.state.Current(); {
	case e.multiSelect && mods.Has(ModShift) && e.tree.IsVisible(cur):
		return e.RangeSelect(cur, n)
	case e.multiSelect && mods.Has(ModCtrl):
		return e.toggle(n)
	}
	return e.SelectSingle(n)
}

func (e *Engine) toggle(n *model.Node) bool {
	if e.state.IsSelected(n) {
		e.state.Unmark(n)
	} else if !n.ExcludeFromMultiSelection {
		e.state.Mark(n)
	}
	e.state.SetCurrent(n)
	return true
}

// SelectSingle replaces the selection with n and makes it current. A header
// becomes current without being selected.
func (e *Engine) SelectSingle(n *model.Node) bool {
	if !e.tree.Contains(n) {
		return false
	}
	e.BeginUpdate()
	defer e.EndUpdate()

	e.state.ClearSelected()
	e.state.Mark(n)
	e.state.SetCurrent(n)
	return true
}

// ClearSelection empties the selection and drops the current node
func (e *Engine) ClearSelection() {
	e.BeginUpdate()
	defer e.EndUpdate()

	e.pressed = nil
	e.state.Clear()
}

// RangeSelect adds every child between start and end in visible order to the
// selection and makes end current. Nodes excluded from multi-selection are
// skipped. The existing selection is kept. Returns false, leaving the
// selection untouched, when an endpoint is not a child of this tree or is
// hidden in a collapsed group.
func (e *Engine) RangeSelect(start, end *model.Node) bool {
	span := e.rangeSpan(start, end)
	if span == nil {
		return false
	}
	if !e.multiSelect {
		return e.SelectSingle(end)
	}
	e.BeginUpdate()
	defer e.EndUpdate()

	for _, n := range span {
		if !n.ExcludeFromMultiSelection {
			e.state.Mark(n)
		}
	}
	e.state.SetCurrent(end)
	return true
}

type direction int

const (
	dirNone direction = iota
	dirForward
	dirBackward
)

func (e *Engine) rangeSpan(start, end *model.Node) []*model.Node {
	if !start.IsChild() || !end.IsChild() || !e.tree.IsVisible(start) || !e.tree.IsVisible(end) {
		return nil
	}

	var step func(*model.Node) *model.Node
	switch e.direction(start, end) {
	case dirForward:
		step = e.tree.NextVisible
	case dirBackward:
		step = e.tree.PreviousVisible
	default:
		return []*model.Node{end}
	}

	var span []*model.Node
	for n := start; n != nil; n = step(n) {
		span = append(span, n)
		if n == end {
			return span
		}
	}
	return nil
}

// direction decides whether end lies after or before start. Siblings compare
// by sort index. Otherwise the branches directly below the common ancestor
// are compared, then the depths of the endpoints.
func (e *Engine) direction(start, end *model.Node) direction {
	if start.Parent() == end.Parent() {
		return compareIndex(start.SortIndex(), end.SortIndex())
	}

	common := e.tree.CommonAncestor(start, end)
	a := e.branchBelow(start, common)
	b := e.branchBelow(end, common)
	if d := compareIndex(a.SortIndex(), b.SortIndex()); d != dirNone {
		return d
	}
	if e.tree.Level(start) < e.tree.Level(end) {
		return dirForward
	}
	return dirBackward
}

// branchBelow walks up from n to the node whose parent is anc
func (e *Engine) branchBelow(n, anc *model.Node) *model.Node {
	for n != anc && e.tree.Parent(n) != anc {
		n = e.tree.Parent(n)
	}
	return n
}

func compareIndex(a, b int) direction {
	switch {
	case a < b:
		return dirForward
	case a > b:
		return dirBackward
	}
	return dirNone
}

// SelectAll selects every child not excluded from multi-selection, collapsed
// groups included, and makes the first of them current. Does nothing without
// multi-selection or when the current node is excluded.
func (e *Engine) SelectAll() bool {
	if !e.multiSelect {
		return false
	}
	if cur := e.state.Current(); cur != nil && cur.ExcludeFromMultiSelection {
		return false
	}

	var eligible []*model.Node
	e.tree.Walk(func(n *model.Node) bool {
		if n.IsChild() && !n.ExcludeFromMultiSelection {
			eligible = append(eligible, n)
		}
		return true
	})

	e.BeginUpdate()
	defer e.EndUpdate()

	e.state.ClearSelected()
	for _, n := range eligible {
		e.state.Mark(n)
	}
	if len(eligible) > 0 {
		e.state.SetCurrent(eligible[0])
	}
	return true
}

// PointerDown handles a button press on n. A plain press on a node that is
// part of a multi-node selection keeps the selection until release, so the
// whole selection can be dragged.
func (e *Engine) PointerDown(n *model.Node, mods Modifiers) bool {
	if !e.tree.Contains(n) {
		e.pressed = nil
		return false
	}
	if e.multiSelect && mods == ModNone && e.state.IsSelected(n) && e.state.Len() > 1 {
		e.pressed = n
		return true
	}
	e.pressed = nil
	return e.ClickSelect(n, mods)
}

// PointerUp completes a press. A deferred plain press released on the same
// node reduces the selection to that node.
func (e *Engine) PointerUp(n *model.Node, mods Modifiers) bool {
	pressed := e.pressed
	e.pressed = nil
	if pressed == nil || pressed != n {
		return false
	}
	return e.SelectSingle(n)
}

// BeginDrag starts dragging from n and returns the nodes being dragged. When
// n is not selected it becomes the only selected node first.
func (e *Engine) BeginDrag(n *model.Node) []*model.Node {
	e.pressed = nil
	if !e.tree.Contains(n) {
		return nil
	}
	if !e.state.IsSelected(n) {
		e.SelectSingle(n)
	}
	return e.state.Selected()
}

// Activate notifies activation listeners about n
func (e *Engine) Activate(n *model.Node) bool {
	if !e.tree.Contains(n) {
		return false
	}
	for _, fn := range e.activatedHandlers {
		fn(n)
	}
	return true
}

// anchor makes the first selectable node current when nothing is current.
// Without multi-selection the anchor is selected as well, so the selection
// always matches the current child.
func (e *Engine) anchor() *model.Node {
	if cur := e.state.Current(); cur != nil {
		return cur
	}
	first := e.tree.FirstSelectable()
	if first == nil {
		return nil
	}
	if !e.multiSelect {
		e.state.ClearSelected()
		e.state.Mark(first)
	}
	e.state.SetCurrent(first)
	return first
}
