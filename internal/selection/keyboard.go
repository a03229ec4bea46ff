package selection

import (
	"strings"
	"unicode"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// Key identifies a navigation key independent of the terminal library
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyRune
)

// KeyEvent is a key press as seen by the navigator
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifiers
}

// Navigator turns key presses into selection gestures
type Navigator struct {
	engine *Engine
	tree   *model.Tree
}

// NewNavigator creates a navigator driving engine
func NewNavigator(engine *Engine) *Navigator {
	return &Navigator{
		engine: engine,
		tree:   engine.Tree(),
	}
}

// HandleKey processes one key press as a single gesture. It returns false
// for keys the navigator does not handle and when the tree has nothing to
// focus.
func (nav *Navigator) HandleKey(ev KeyEvent) bool {
	if !handles(ev) {
		return false
	}
	e := nav.engine
	e.BeginUpdate()
	defer e.EndUpdate()

	cur := e.anchor()
	if cur == nil {
		return false
	}

	switch ev.Key {
	case KeyEnter:
		e.Activate(cur)
	case KeyLeft:
		nav.left(cur)
	case KeyRight:
		nav.right(cur)
	case KeyUp:
		nav.selectIfAny(nav.tree.PreviousVisible(cur))
	case KeyDown:
		nav.selectIfAny(nav.tree.NextVisible(cur))
	case KeyHome:
		nav.extendOrSelect(cur, nav.tree.FirstSibling(cur), ev.Modifiers)
	case KeyEnd:
		nav.extendOrSelect(cur, nav.tree.LastSibling(cur), ev.Modifiers)
	case KeyPageUp:
		nav.page(cur, nav.tree.PreviousVisible)
	case KeyPageDown:
		nav.page(cur, nav.tree.NextVisible)
	case KeyRune:
		if ev.Modifiers.Has(ModCtrl) {
			if e.MultiSelect() && !cur.ExcludeFromMultiSelection {
				e.SelectAll()
			}
			return true
		}
		nav.typeAhead(cur, ev.Rune)
	}
	return true
}

func handles(ev KeyEvent) bool {
	switch ev.Key {
	case KeyNone:
		return false
	case KeyRune:
		if ev.Modifiers.Has(ModAlt) {
			return false
		}
		if ev.Modifiers.Has(ModCtrl) {
			return ev.Rune == 'a' || ev.Rune == 'A'
		}
		return unicode.IsPrint(ev.Rune)
	}
	return true
}

func (nav *Navigator) selectIfAny(target *model.Node) {
	if target != nil {
		nav.engine.SelectSingle(target)
	}
}

func (nav *Navigator) left(cur *model.Node) {
	if cur.Expanded() && cur.HasChildren() {
		nav.tree.Collapse(cur)
		return
	}
	nav.selectIfAny(cur.Parent())
}

func (nav *Navigator) right(cur *model.Node) {
	if !cur.HasChildren() {
		return
	}
	if !cur.Expanded() {
		nav.tree.Expand(cur)
		return
	}
	nav.selectIfAny(cur.FirstChild())
}

// extendOrSelect moves to target, extending the selection with Shift.
// A range that cannot be formed (a header endpoint) falls back to a plain move.
func (nav *Navigator) extendOrSelect(cur, target *model.Node, mods Modifiers) {
	if target == nil {
		return
	}
	if mods.Has(ModShift) && nav.engine.MultiSelect() && nav.engine.RangeSelect(cur, target) {
		return
	}
	nav.engine.SelectSingle(target)
}

func (nav *Navigator) page(cur *model.Node, step func(*model.Node) *model.Node) {
	target := cur
	for i := 0; i < nav.tree.VisibleCount(); i++ {
		next := step(target)
		if next == nil {
			break
		}
		target = next
	}
	if target != cur {
		nav.engine.SelectSingle(target)
	}
}

// typeAhead selects the next node after cur whose title starts with r,
// ignoring case. The search does not wrap around.
func (nav *Navigator) typeAhead(cur *model.Node, r rune) {
	prefix := strings.ToLower(string(r))
	for n := nav.tree.NextVisible(cur); n != nil; n = nav.tree.NextVisible(n) {
		if strings.HasPrefix(strings.ToLower(n.Title), prefix) {
			nav.engine.SelectSingle(n)
			return
		}
	}
}
