// Package selection implements multi-selection and keyboard navigation on
// top of a model.Tree.
package selection

import (
	"sort"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// State holds the selected set and the current node. Only child nodes are
// ever members of the selected set.
type State struct {
	selected map[*model.Node]struct{}
	current  *model.Node
}

// NewState creates an empty selection
func NewState() *State {
	return &State{
		selected: make(map[*model.Node]struct{}),
	}
}

// Current returns the focused node, or nil
func (s *State) Current() *model.Node {
	return s.current
}

// SetCurrent moves the focus. It reports whether the value changed.
func (s *State) SetCurrent(n *model.Node) bool {
	if s.current == n {
		return false
	}
	s.current = n
	return true
}

// Mark adds n to the selected set. Headers and nil are refused.
func (s *State) Mark(n *model.Node) bool {
	if !n.IsChild() {
		return false
	}
	if _, ok := s.selected[n]; ok {
		return false
	}
	s.selected[n] = struct{}{}
	return true
}

// Unmark removes n from the selected set
func (s *State) Unmark(n *model.Node) bool {
	if _, ok := s.selected[n]; !ok {
		return false
	}
	delete(s.selected, n)
	return true
}

// Clear empties the selected set and drops the current node
func (s *State) Clear() bool {
	changed := len(s.selected) > 0 || s.current != nil
	s.selected = make(map[*model.Node]struct{})
	s.current = nil
	return changed
}

// ClearSelected empties the selected set but keeps the current node
func (s *State) ClearSelected() bool {
	if len(s.selected) == 0 {
		return false
	}
	s.selected = make(map[*model.Node]struct{})
	return true
}

// Forget drops the given nodes from the selected set and from current
func (s *State) Forget(nodes []*model.Node) bool {
	changed := false
	for _, n := range nodes {
		if s.Unmark(n) {
			changed = true
		}
		if s.current == n {
			s.current = nil
			changed = true
		}
	}
	return changed
}

// IsSelected reports whether n is in the selected set
func (s *State) IsSelected(n *model.Node) bool {
	_, ok := s.selected[n]
	return ok
}

// Len returns the size of the selected set
func (s *State) Len() int {
	return len(s.selected)
}

// Selected returns a snapshot of the selected set in tree order
func (s *State) Selected() []*model.Node {
	result := make([]*model.Node, 0, len(s.selected))
	for n := range s.selected {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return treeOrderLess(result[i], result[j])
	})
	return result
}

// treeOrderLess orders children by their header position, then by their own
// sibling position.
func treeOrderLess(a, b *model.Node) bool {
	pa, pb := a.Parent(), b.Parent()
	if pa != pb && pa != nil && pb != nil {
		return pa.SortIndex() < pb.SortIndex()
	}
	if a.SortIndex() != b.SortIndex() {
		return a.SortIndex() < b.SortIndex()
	}
	return a.ID() < b.ID()
}
