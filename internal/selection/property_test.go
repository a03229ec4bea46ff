package selection

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"pgregory.net/rapid"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// genTree draws a tree of 1-4 headers with 0-5 children each. Some headers
// are collapsed and some children are excluded from multi-selection.
func genTree(t *rapid.T) (*model.Tree, []*model.Node) {
	tree := model.NewTree()
	var all []*model.Node
	headers := rapid.IntRange(1, 4).Draw(t, "headers")
	for h := 0; h < headers; h++ {
		header := tree.AddHeader(fmt.Sprintf("H%d", h))
		all = append(all, header)
		children := rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("children%d", h))
		for c := 0; c < children; c++ {
			child := tree.AddChild(header, fmt.Sprintf("c%d.%d", h, c), "")
			child.ExcludeFromMultiSelection = rapid.IntRange(0, 4).Draw(t, "exclude") == 0
			all = append(all, child)
		}
		if rapid.Bool().Draw(t, "collapsed") {
			tree.Collapse(header)
		}
	}
	return tree, all
}

func children(nodes []*model.Node) []*model.Node {
	var result []*model.Node
	for _, n := range nodes {
		if n.IsChild() {
			result = append(result, n)
		}
	}
	return result
}

// applyRandomOperation performs one engine or navigator operation drawn by t
func applyRandomOperation(t *rapid.T, e *Engine, nav *Navigator, nodes []*model.Node) {
	node := rapid.SampledFrom(nodes).Draw(t, "node")
	mods := rapid.SampledFrom([]Modifiers{ModNone, ModCtrl, ModShift, ModCtrl | ModShift}).Draw(t, "mods")
	switch rapid.IntRange(0, 9).Draw(t, "op") {
	case 0:
		e.ClickSelect(node, mods)
	case 1:
		e.SelectSingle(node)
	case 2:
		other := rapid.SampledFrom(nodes).Draw(t, "other")
		e.RangeSelect(node, other)
	case 3:
		e.SelectAll()
	case 4:
		e.PointerDown(node, mods)
		e.PointerUp(node, mods)
	case 5:
		e.BeginDrag(node)
	case 6:
		k := rapid.SampledFrom([]Key{KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown}).Draw(t, "key")
		nav.HandleKey(KeyEvent{Key: k, Modifiers: mods})
	case 7:
		r := rapid.SampledFrom([]rune{'h', 'c', 'a', 'A'}).Draw(t, "rune")
		nav.HandleKey(KeyEvent{Key: KeyRune, Rune: r, Modifiers: mods & ModCtrl})
	case 8:
		e.Tree().Toggle(node)
	case 9:
		e.ClearSelection()
	}
}

func TestPropertyHeadersNeverSelected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, nodes := genTree(t)
		e := NewEngine(tree)
		nav := NewNavigator(e)
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			applyRandomOperation(t, e, nav, nodes)
			for _, n := range e.Selected() {
				if !n.IsChild() {
					t.Fatalf("header %s is selected: %s", n.Title, spew.Sdump(e.Selected()))
				}
			}
			if cur := e.Current(); cur != nil && !tree.Contains(cur) {
				t.Fatalf("current node %s is not in the tree", cur.Title)
			}
		}
	})
}

func TestPropertySingleSelectExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, nodes := genTree(t)
		e := NewEngine(tree)
		e.SetMultiSelect(false)
		nav := NewNavigator(e)
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			applyRandomOperation(t, e, nav, nodes)
			if e.SelectedCount() > 1 {
				t.Fatalf("%d nodes selected without multi-select", e.SelectedCount())
			}
			if cur := e.Current(); cur.IsChild() && !e.IsSelected(cur) {
				t.Fatalf("current child %s is not selected", cur.Title)
			}
		}
	})
}

func TestPropertyCtrlToggleTwiceRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, nodes := genTree(t)
		kids := children(nodes)
		if len(kids) == 0 {
			t.Skip("no children")
		}
		e := NewEngine(tree)
		nav := NewNavigator(e)
		steps := rapid.IntRange(0, 10).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			applyRandomOperation(t, e, nav, nodes)
		}

		n := rapid.SampledFrom(kids).Draw(t, "target")
		if e.IsSelected(n) || n.ExcludeFromMultiSelection {
			t.Skip("target must be unselected and not excluded")
		}
		before := e.Selected()
		e.ClickSelect(n, ModCtrl)
		e.ClickSelect(n, ModCtrl)
		after := e.Selected()
		if !sameNodes(before, after) {
			t.Fatalf("selection changed: before %v after %v", titlesOf(before), titlesOf(after))
		}
	})
}

func TestPropertyRangeSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, nodes := genTree(t)
		kids := children(nodes)
		if len(kids) == 0 {
			t.Skip("no children")
		}
		a := rapid.SampledFrom(kids).Draw(t, "a")
		b := rapid.SampledFrom(kids).Draw(t, "b")

		forward := NewEngine(tree)
		okForward := forward.RangeSelect(a, b)
		backward := NewEngine(tree)
		okBackward := backward.RangeSelect(b, a)

		if okForward != okBackward {
			t.Fatalf("RangeSelect(%s, %s)=%v but RangeSelect(%s, %s)=%v",
				a.Title, b.Title, okForward, b.Title, a.Title, okBackward)
		}
		if want := tree.IsVisible(a) && tree.IsVisible(b); okForward != want {
			t.Fatalf("RangeSelect(%s, %s)=%v, want %v", a.Title, b.Title, okForward, want)
		}
		if !sameNodes(forward.Selected(), backward.Selected()) {
			t.Fatalf("asymmetric range: %v vs %v", titlesOf(forward.Selected()), titlesOf(backward.Selected()))
		}
		if !okForward {
			if forward.SelectedCount() != 0 || forward.Current() != nil {
				t.Fatal("a failed range must not change the selection")
			}
			return
		}
		if forward.Current() != b || backward.Current() != a {
			t.Fatal("current must be the end of the range")
		}
		for _, n := range forward.Selected() {
			if n.ExcludeFromMultiSelection {
				t.Fatalf("excluded node %s selected by range", n.Title)
			}
			if !tree.IsVisible(n) {
				t.Fatalf("hidden node %s selected by range", n.Title)
			}
		}
	})
}

func TestPropertySelectAllRespectsExclusion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, nodes := genTree(t)
		e := NewEngine(tree)
		e.SelectAll()
		want := 0
		for _, n := range children(nodes) {
			if n.ExcludeFromMultiSelection {
				if e.IsSelected(n) {
					t.Fatalf("excluded node %s selected", n.Title)
				}
				continue
			}
			want++
		}
		if e.SelectedCount() != want {
			t.Fatalf("expected %d selected, got %d", want, e.SelectedCount())
		}
	})
}

func sameNodes(a, b []*model.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func titlesOf(nodes []*model.Node) []string {
	result := make([]string, len(nodes))
	for i, n := range nodes {
		result[i] = n.Title
	}
	return result
}
