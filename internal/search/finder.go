package search

import (
	"github.com/pstuifzand/tui-treelist/internal/model"
)

// Matches returns the visible nodes matching expr, in visible order
func Matches(tree *model.Tree, expr FilterExpr) []*model.Node {
	var result []*model.Node
	for _, n := range tree.VisibleNodes() {
		if expr.Matches(n) {
			result = append(result, n)
		}
	}
	return result
}

// Best returns the visible node that matches expr most closely. Nodes are
// ranked by the summed edit distance of the query's fuzzy terms; ties go to
// the earliest node in visible order. Returns nil when nothing matches.
func Best(tree *model.Tree, expr FilterExpr) *model.Node {
	terms := fuzzyTerms(expr)

	var best *model.Node
	bestScore := 0
	for _, n := range Matches(tree, expr) {
		score := 0
		for _, term := range terms {
			if d := term.Distance(n.Title); d > 0 {
				score += d
			}
		}
		if best == nil || score < bestScore {
			best, bestScore = n, score
		}
	}
	return best
}

// Next returns the first visible match after from, wrapping past the end.
// A nil or invisible from starts at the top. Backward searches upward.
func Next(tree *model.Tree, expr FilterExpr, from *model.Node, backward bool) *model.Node {
	visible := tree.VisibleNodes()
	if len(visible) == 0 {
		return nil
	}

	start := -1
	if from != nil {
		start = tree.VisibleIndex(from)
	}
	step := 1
	if backward {
		step = -1
		if start < 0 {
			start = 0
		}
	}

	count := len(visible)
	for i := 1; i <= count; i++ {
		idx := ((start+step*i)%count + count) % count
		if expr.Matches(visible[idx]) {
			return visible[idx]
		}
	}
	return nil
}

// Query parses query and returns the best visible match
func Query(tree *model.Tree, query string) (*model.Node, error) {
	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return Best(tree, expr), nil
}
