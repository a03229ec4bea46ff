package model

// Tree owns the header/child hierarchy and answers navigation queries in
// visible depth-first order. Children of collapsed headers are not visible.
type Tree struct {
	root     *Node
	byID     map[NodeID]*Node
	nextID   NodeID
	pageSize int

	removedHandlers []func([]*Node)
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{
		root:   &Node{kind: KindRoot, expanded: true},
		byID:   make(map[NodeID]*Node),
		nextID: 1,
	}
}

// Root returns the invisible node above all headers
func (t *Tree) Root() *Node {
	return t.root
}

// Headers returns all headers in display order
func (t *Tree) Headers() []*Node {
	return t.root.Children()
}

// Len returns the number of headers and children in the tree
func (t *Tree) Len() int {
	return len(t.byID)
}

// Node looks up a node by ID
func (t *Tree) Node(id NodeID) *Node {
	return t.byID[id]
}

// Contains reports whether n currently belongs to this tree
func (t *Tree) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	return t.byID[n.id] == n
}

// OnNodesRemoved registers fn to be called with every batch of nodes removed
// by ClearChildren or ClearAll, before the clearing call returns.
func (t *Tree) OnNodesRemoved(fn func(removed []*Node)) {
	t.removedHandlers = append(t.removedHandlers, fn)
}

// AddHeader appends a new top-level group
func (t *Tree) AddHeader(title string) *Node {
	h := &Node{
		Title:     title,
		Enabled:   true,
		id:        t.allocID(),
		kind:      KindHeader,
		parent:    t.root,
		sortIndex: len(t.root.children),
		expanded:  true,
	}
	t.root.children = append(t.root.children, h)
	t.byID[h.id] = h
	return h
}

// AddChild appends a child under header. Returns nil when header is not a
// header of this tree.
func (t *Tree) AddChild(header *Node, title, subtitle string) *Node {
	if !header.IsHeader() || !t.Contains(header) {
		return nil
	}
	c := &Node{
		Title:     title,
		Subtitle:  subtitle,
		Enabled:   true,
		id:        t.allocID(),
		kind:      KindChild,
		parent:    header,
		sortIndex: len(header.children),
	}
	header.children = append(header.children, c)
	t.byID[c.id] = c
	return c
}

// ClearChildren removes all children of header. Returns false when header
// does not belong to the tree.
func (t *Tree) ClearChildren(header *Node) bool {
	if !header.IsHeader() || !t.Contains(header) {
		return false
	}
	removed := header.children
	header.children = nil
	for _, c := range removed {
		delete(t.byID, c.id)
		c.parent = nil
	}
	t.notifyRemoved(removed)
	return true
}

// ClearAll removes every node from the tree
func (t *Tree) ClearAll() {
	var removed []*Node
	for _, h := range t.root.children {
		removed = append(removed, h)
		removed = append(removed, h.children...)
	}
	t.root.children = nil
	t.byID = make(map[NodeID]*Node)
	for _, n := range removed {
		n.parent = nil
	}
	t.notifyRemoved(removed)
}

func (t *Tree) notifyRemoved(removed []*Node) {
	if len(removed) == 0 {
		return
	}
	for _, fn := range t.removedHandlers {
		fn(removed)
	}
}

func (t *Tree) allocID() NodeID {
	id := t.nextID
	t.nextID++
	return id
}

// Parent returns the structural parent of n: the owning header for a child,
// the root for a header. Returns nil for the root and for detached nodes.
func (t *Tree) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Level returns the depth of n: -1 for the root, 0 for headers, 1 for children
func (t *Tree) Level(n *Node) int {
	if n == nil {
		return -1
	}
	switch n.kind {
	case KindRoot:
		return -1
	case KindHeader:
		return 0
	}
	return 1
}

// IsAncestor reports whether anc is a proper ancestor of n
func (t *Tree) IsAncestor(anc, n *Node) bool {
	if anc == nil || n == nil {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == anc {
			return true
		}
	}
	return false
}

func (t *Tree) siblings(n *Node) []*Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent.children
}

// FirstSibling returns the first node sharing n's parent (possibly n itself)
func (t *Tree) FirstSibling(n *Node) *Node {
	s := t.siblings(n)
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// LastSibling returns the last node sharing n's parent (possibly n itself)
func (t *Tree) LastSibling(n *Node) *Node {
	s := t.siblings(n)
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// NextSibling returns the sibling after n, or nil
func (t *Tree) NextSibling(n *Node) *Node {
	s := t.siblings(n)
	if n == nil || n.sortIndex+1 >= len(s) {
		return nil
	}
	return s[n.sortIndex+1]
}

// PrevSibling returns the sibling before n, or nil
func (t *Tree) PrevSibling(n *Node) *Node {
	s := t.siblings(n)
	if n == nil || n.sortIndex == 0 || len(s) == 0 {
		return nil
	}
	return s[n.sortIndex-1]
}

// NextVisible returns the node after n in visible order, or nil at the end
func (t *Tree) NextVisible(n *Node) *Node {
	if !t.Contains(n) {
		return nil
	}
	if n.kind == KindHeader {
		if n.expanded && len(n.children) > 0 {
			return n.children[0]
		}
		return t.NextSibling(n)
	}
	if next := t.NextSibling(n); next != nil {
		return next
	}
	return t.NextSibling(n.parent)
}

// PreviousVisible returns the node before n in visible order, or nil at the start
func (t *Tree) PreviousVisible(n *Node) *Node {
	if !t.Contains(n) {
		return nil
	}
	if n.kind == KindChild {
		if prev := t.PrevSibling(n); prev != nil {
			return prev
		}
		return n.parent
	}
	prev := t.PrevSibling(n)
	if prev == nil {
		return nil
	}
	if prev.expanded && len(prev.children) > 0 {
		return prev.LastChild()
	}
	return prev
}

// FirstVisible returns the first row of the tree, or nil when empty
func (t *Tree) FirstVisible() *Node {
	return t.root.FirstChild()
}

// LastVisible returns the last visible row, or nil when empty
func (t *Tree) LastVisible() *Node {
	last := t.root.LastChild()
	if last != nil && last.expanded && len(last.children) > 0 {
		return last.LastChild()
	}
	return last
}

// VisibleNodes returns all visible rows in order
func (t *Tree) VisibleNodes() []*Node {
	var result []*Node
	for n := t.FirstVisible(); n != nil; n = t.NextVisible(n) {
		result = append(result, n)
	}
	return result
}

// VisibleIndex returns the row index of n in visible order, or -1 when n is
// hidden or not in the tree
func (t *Tree) VisibleIndex(n *Node) int {
	idx := 0
	for v := t.FirstVisible(); v != nil; v = t.NextVisible(v) {
		if v == n {
			return idx
		}
		idx++
	}
	return -1
}

// IsVisible reports whether n is shown, i.e. it is a header or its header is expanded
func (t *Tree) IsVisible(n *Node) bool {
	if !t.Contains(n) {
		return false
	}
	return n.kind == KindHeader || n.parent.expanded
}

// FirstSelectable returns the first child in depth-first order, or nil
func (t *Tree) FirstSelectable() *Node {
	for _, h := range t.root.children {
		if len(h.children) > 0 {
			return h.children[0]
		}
	}
	return nil
}

// Walk visits every node depth-first, including children of collapsed
// headers. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(n *Node) bool) {
	for _, h := range t.root.children {
		if !fn(h) {
			return
		}
		for _, c := range h.children {
			if !fn(c) {
				return
			}
		}
	}
}

// CommonAncestor returns the nearest node that is an ancestor of both a and
// b, or the root when none is closer. A node counts as its own ancestor.
func (t *Tree) CommonAncestor(a, b *Node) *Node {
	if !t.Contains(a) || !t.Contains(b) {
		return t.root
	}
	for t.Level(a) > t.Level(b) {
		a = a.parent
	}
	for t.Level(b) > t.Level(a) {
		b = b.parent
	}
	for a != b {
		a = a.parent
		b = b.parent
	}
	return a
}

// SetPageSize tells the tree how many rows the host viewport shows.
// Zero or negative means unknown.
func (t *Tree) SetPageSize(rows int) {
	t.pageSize = rows
}

// VisibleCount returns the number of rows a page navigation moves: the host
// page size when known and smaller than the visible row count, otherwise the
// visible row count itself.
func (t *Tree) VisibleCount() int {
	total := 0
	for _, h := range t.root.children {
		total++
		if h.expanded {
			total += len(h.children)
		}
	}
	if t.pageSize > 0 && t.pageSize < total {
		return t.pageSize
	}
	return total
}

// Expand shows the children of header
func (t *Tree) Expand(header *Node) bool {
	if !header.IsHeader() || !t.Contains(header) || header.expanded {
		return false
	}
	header.expanded = true
	return true
}

// Collapse hides the children of header
func (t *Tree) Collapse(header *Node) bool {
	if !header.IsHeader() || !t.Contains(header) || !header.expanded {
		return false
	}
	header.expanded = false
	return true
}

// Toggle flips the expansion state of header
func (t *Tree) Toggle(header *Node) bool {
	if !header.IsHeader() {
		return false
	}
	if header.expanded {
		return t.Collapse(header)
	}
	return t.Expand(header)
}

// ExpandAll expands every header
func (t *Tree) ExpandAll() {
	for _, h := range t.root.children {
		h.expanded = true
	}
}

// CollapseAll collapses every header
func (t *Tree) CollapseAll() {
	for _, h := range t.root.children {
		h.expanded = false
	}
}
