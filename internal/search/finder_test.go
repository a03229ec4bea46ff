package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

func buildTree() (*model.Tree, map[string]*model.Node) {
	tree := model.NewTree()
	nodes := map[string]*model.Node{}
	recent := tree.AddHeader("Recent")
	saved := tree.AddHeader("Saved")
	nodes["Recent"] = recent
	nodes["Saved"] = saved
	for _, title := range []string{"Customers", "Orders", "Order lines"} {
		nodes[title] = tree.AddChild(recent, title, "SELECT * FROM "+title)
	}
	for _, title := range []string{"Archive", "Customer notes"} {
		nodes[title] = tree.AddChild(saved, title, "")
	}
	nodes["Archive"].Enabled = false
	return tree, nodes
}

func TestMatchesInVisibleOrder(t *testing.T) {
	tree, nodes := buildTree()

	expr, err := ParseQuery("cust")
	require.NoError(t, err)
	assert.Equal(t, []*model.Node{nodes["Customers"], nodes["Customer notes"]}, Matches(tree, expr))

	tree.Collapse(nodes["Saved"])
	assert.Equal(t, []*model.Node{nodes["Customers"]}, Matches(tree, expr), "collapsed rows are not searched")
}

func TestFilters(t *testing.T) {
	tree, nodes := buildTree()

	tests := []struct {
		query string
		want  []*model.Node
	}{
		{"is:header", []*model.Node{nodes["Recent"], nodes["Saved"]}},
		{"is:disabled", []*model.Node{nodes["Archive"]}},
		{"g:saved is:child", []*model.Node{nodes["Archive"], nodes["Customer notes"]}},
		{`"from orders"`, []*model.Node{nodes["Orders"]}},
		{"/^Order/", []*model.Node{nodes["Orders"], nodes["Order lines"]}},
		{"ord -lines", []*model.Node{nodes["Orders"]}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Matches(tree, expr))
		})
	}
}

func TestBestPrefersClosestTitle(t *testing.T) {
	tree, nodes := buildTree()

	best, err := Query(tree, "orders")
	require.NoError(t, err)
	assert.Equal(t, nodes["Orders"], best)

	best, err = Query(tree, "ordlin")
	require.NoError(t, err)
	assert.Equal(t, nodes["Order lines"], best)

	best, err = Query(tree, "zzz")
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestNextWraps(t *testing.T) {
	tree, nodes := buildTree()
	expr, err := ParseQuery("cust")
	require.NoError(t, err)

	assert.Equal(t, nodes["Customers"], Next(tree, expr, nil, false))
	assert.Equal(t, nodes["Customer notes"], Next(tree, expr, nodes["Customers"], false))
	assert.Equal(t, nodes["Customers"], Next(tree, expr, nodes["Customer notes"], false))

	assert.Equal(t, nodes["Customer notes"], Next(tree, expr, nodes["Customers"], true))
	assert.Equal(t, nodes["Customer notes"], Next(tree, expr, nil, true))
}

func TestMatchPositions(t *testing.T) {
	expr := NewFuzzyExpr("ol")
	assert.Equal(t, []int{0, 6}, expr.MatchPositions("Order lines"))
	assert.Nil(t, NewFuzzyExpr("").MatchPositions("Order"))
}
