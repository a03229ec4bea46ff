package model

import (
	"testing"
)

// buildTree creates H1 -> [A, B, C], H2 -> [D, E, F]
func buildTree(t *testing.T) (*Tree, map[string]*Node) {
	t.Helper()
	tree := NewTree()
	nodes := make(map[string]*Node)
	h1 := tree.AddHeader("H1")
	h2 := tree.AddHeader("H2")
	nodes["H1"] = h1
	nodes["H2"] = h2
	for _, title := range []string{"A", "B", "C"} {
		nodes[title] = tree.AddChild(h1, title, "")
	}
	for _, title := range []string{"D", "E", "F"} {
		nodes[title] = tree.AddChild(h2, title, "")
	}
	return tree, nodes
}

func titles(nodes []*Node) []string {
	result := make([]string, len(nodes))
	for i, n := range nodes {
		result[i] = n.Title
	}
	return result
}

func equalStrings(a, b []string) bool {
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

func TestAddChildRequiresHeader(t *testing.T) {
	tree, nodes := buildTree(t)

	if c := tree.AddChild(nodes["A"], "nested", ""); c != nil {
		t.Errorf("Expected nil when adding under a child, got %v", c.Title)
	}
	if c := tree.AddChild(nil, "orphan", ""); c != nil {
		t.Errorf("Expected nil when adding under nil, got %v", c.Title)
	}

	other := NewTree()
	foreign := other.AddHeader("Foreign")
	if c := tree.AddChild(foreign, "x", ""); c != nil {
		t.Error("Expected nil when adding under a header of another tree")
	}
	if tree.Len() != 8 {
		t.Errorf("Expected 8 nodes, got %d", tree.Len())
	}
}

func TestSortIndexAndIDs(t *testing.T) {
	tree, nodes := buildTree(t)

	if nodes["C"].SortIndex() != 2 || nodes["D"].SortIndex() != 0 || nodes["H2"].SortIndex() != 1 {
		t.Errorf("Unexpected sort indexes: C=%d D=%d H2=%d",
			nodes["C"].SortIndex(), nodes["D"].SortIndex(), nodes["H2"].SortIndex())
	}

	seen := make(map[NodeID]bool)
	for _, n := range nodes {
		if seen[n.ID()] {
			t.Fatalf("Duplicate ID %d", n.ID())
		}
		seen[n.ID()] = true
		if tree.Node(n.ID()) != n {
			t.Errorf("Lookup of %s by ID failed", n.Title)
		}
	}

	oldID := nodes["A"].ID()
	tree.ClearChildren(nodes["H1"])
	fresh := tree.AddChild(nodes["H1"], "A2", "")
	if fresh.ID() <= oldID {
		t.Errorf("Expected IDs not to be reused, got %d after %d", fresh.ID(), oldID)
	}
	if fresh.SortIndex() != 0 {
		t.Errorf("Expected sort index 0 after clearing, got %d", fresh.SortIndex())
	}
}

func TestVisibleOrder(t *testing.T) {
	tree, nodes := buildTree(t)

	got := titles(tree.VisibleNodes())
	want := []string{"H1", "A", "B", "C", "H2", "D", "E", "F"}
	if !equalStrings(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	tree.Collapse(nodes["H1"])
	got = titles(tree.VisibleNodes())
	want = []string{"H1", "H2", "D", "E", "F"}
	if !equalStrings(got, want) {
		t.Errorf("Expected %v after collapse, got %v", want, got)
	}

	if prev := tree.PreviousVisible(nodes["H2"]); prev != nodes["H1"] {
		t.Errorf("Expected H1 before H2 when H1 is collapsed, got %v", prev)
	}
	if tree.IsVisible(nodes["B"]) {
		t.Error("B should be hidden in a collapsed group")
	}
	if idx := tree.VisibleIndex(nodes["B"]); idx != -1 {
		t.Errorf("Expected -1 for hidden node, got %d", idx)
	}
}

func TestVisibleNavigationEnds(t *testing.T) {
	tree, nodes := buildTree(t)

	if tree.PreviousVisible(nodes["H1"]) != nil {
		t.Error("Expected nil before the first row")
	}
	if tree.NextVisible(nodes["F"]) != nil {
		t.Error("Expected nil after the last row")
	}
	if tree.NextVisible(nodes["C"]) != nodes["H2"] {
		t.Error("Expected H2 after C")
	}
	if tree.PreviousVisible(nodes["D"]) != nodes["H2"] {
		t.Error("Expected H2 before D")
	}
	if tree.PreviousVisible(nodes["H2"]) != nodes["C"] {
		t.Error("Expected C before H2")
	}
	if tree.LastVisible() != nodes["F"] {
		t.Errorf("Expected F as last visible, got %v", tree.LastVisible().Title)
	}
	if tree.NextVisible(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestSiblings(t *testing.T) {
	tree, nodes := buildTree(t)

	if tree.FirstSibling(nodes["C"]) != nodes["A"] || tree.LastSibling(nodes["A"]) != nodes["C"] {
		t.Error("Unexpected first/last sibling of children")
	}
	if tree.FirstSibling(nodes["H2"]) != nodes["H1"] {
		t.Error("Headers are siblings under the root")
	}
	if tree.NextSibling(nodes["C"]) != nil || tree.PrevSibling(nodes["D"]) != nil {
		t.Error("Sibling navigation must stay within one group")
	}
	if nodes["A"].Parent() != nodes["H1"] || nodes["H1"].Parent() != nil {
		t.Error("Unexpected parents")
	}
	if tree.Parent(nodes["H1"]) != tree.Root() {
		t.Error("Tree.Parent of a header should be the root")
	}
}

func TestCommonAncestor(t *testing.T) {
	tree, nodes := buildTree(t)

	tests := []struct {
		a, b string
		want *Node
	}{
		{"A", "C", nodes["H1"]},
		{"B", "E", tree.Root()},
		{"H1", "B", nodes["H1"]},
		{"F", "H1", tree.Root()},
		{"D", "D", nodes["D"]},
	}
	for _, tt := range tests {
		got := tree.CommonAncestor(nodes[tt.a], nodes[tt.b])
		if got != tt.want {
			t.Errorf("CommonAncestor(%s, %s) = %v, want %v", tt.a, tt.b, got.Title, tt.want.Title)
		}
	}
	if tree.CommonAncestor(nil, nodes["A"]) != tree.Root() {
		t.Error("Expected root for nil input")
	}
}

func TestFirstSelectable(t *testing.T) {
	tree := NewTree()
	if tree.FirstSelectable() != nil {
		t.Error("Expected nil in an empty tree")
	}
	tree.AddHeader("Empty")
	if tree.FirstSelectable() != nil {
		t.Error("Expected nil with only headers")
	}
	second := tree.AddHeader("Second")
	x := tree.AddChild(second, "x", "")
	tree.Collapse(second)
	if tree.FirstSelectable() != x {
		t.Error("FirstSelectable should look inside collapsed groups")
	}
}

func TestVisibleCount(t *testing.T) {
	tree, nodes := buildTree(t)

	if tree.VisibleCount() != 8 {
		t.Errorf("Expected 8 without page size, got %d", tree.VisibleCount())
	}
	tree.SetPageSize(3)
	if tree.VisibleCount() != 3 {
		t.Errorf("Expected page size 3, got %d", tree.VisibleCount())
	}
	tree.SetPageSize(50)
	tree.Collapse(nodes["H2"])
	if tree.VisibleCount() != 5 {
		t.Errorf("Expected 5 visible rows, got %d", tree.VisibleCount())
	}
}

func TestClearNotifiesRemoval(t *testing.T) {
	tree, nodes := buildTree(t)

	var removed []*Node
	tree.OnNodesRemoved(func(r []*Node) {
		removed = append(removed, r...)
	})

	if !tree.ClearChildren(nodes["H1"]) {
		t.Fatal("ClearChildren failed")
	}
	if !equalStrings(titles(removed), []string{"A", "B", "C"}) {
		t.Errorf("Unexpected removed nodes %v", titles(removed))
	}
	if tree.Contains(nodes["A"]) || !tree.Contains(nodes["D"]) {
		t.Error("Only the children of H1 should be gone")
	}
	if tree.ClearChildren(nodes["A"]) {
		t.Error("ClearChildren on a removed child should fail")
	}

	removed = nil
	tree.ClearAll()
	if tree.Len() != 0 || tree.FirstVisible() != nil {
		t.Error("Tree should be empty after ClearAll")
	}
	if len(removed) != 5 {
		t.Errorf("Expected 5 removed nodes, got %d", len(removed))
	}
}

func TestExpandCollapseHeadersOnly(t *testing.T) {
	tree, nodes := buildTree(t)

	if tree.Collapse(nodes["A"]) || tree.Expand(nodes["A"]) || tree.Toggle(nodes["A"]) {
		t.Error("Children cannot be expanded or collapsed")
	}
	if !tree.Toggle(nodes["H1"]) || nodes["H1"].Expanded() {
		t.Error("Toggle should collapse an expanded header")
	}
	tree.CollapseAll()
	if len(tree.VisibleNodes()) != 2 {
		t.Errorf("Expected only headers visible, got %v", titles(tree.VisibleNodes()))
	}
	tree.ExpandAll()
	if len(tree.VisibleNodes()) != 8 {
		t.Error("Expected every row visible after ExpandAll")
	}
}
