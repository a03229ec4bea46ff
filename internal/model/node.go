// Package model contains the node hierarchy shown by the tree list
package model

// Kind distinguishes group headers from the selectable rows below them
type Kind int

const (
	// KindHeader is a top-level group node. Headers are never selected.
	KindHeader Kind = iota
	// KindChild is a selectable leaf owned by exactly one header.
	KindChild
	// KindRoot is the invisible node above all headers
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindChild:
		return "child"
	case KindRoot:
		return "root"
	}
	return "unknown"
}

// NodeID identifies a node for the lifetime of its tree. IDs are never reused.
type NodeID uint64

// Node represents a single row in the tree list
type Node struct {
	// Display fields, free for the host to change
	Title    string
	Subtitle string
	Enabled  bool

	// ExcludeFromMultiSelection keeps the node out of select-all and range
	// selection. A plain click still selects it.
	ExcludeFromMultiSelection bool

	id        NodeID
	kind      Kind
	parent    *Node
	children  []*Node
	sortIndex int
	expanded  bool
}

// ID returns the stable identifier of the node
func (n *Node) ID() NodeID {
	return n.id
}

// Kind returns whether the node is a header or a child
func (n *Node) Kind() Kind {
	return n.kind
}

// IsHeader reports whether n is a group header
func (n *Node) IsHeader() bool {
	return n != nil && n.kind == KindHeader
}

// IsChild reports whether n is a selectable child row
func (n *Node) IsChild() bool {
	return n != nil && n.kind == KindChild
}

// Parent returns the owning header of a child, nil for headers
func (n *Node) Parent() *Node {
	if n.parent != nil && n.parent.kind == KindRoot {
		return nil
	}
	return n.parent
}

// Children returns a copy of the node's children in sibling order
func (n *Node) Children() []*Node {
	result := make([]*Node, len(n.children))
	copy(result, n.children)
	return result
}

// HasChildren reports whether the node owns any children
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// FirstChild returns the first child or nil
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// SortIndex returns the position of the node among its siblings
func (n *Node) SortIndex() int {
	return n.sortIndex
}

// Expanded reports whether a header shows its children
func (n *Node) Expanded() bool {
	return n.expanded
}
