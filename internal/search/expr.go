package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// FilterExpr represents a filter expression that can match nodes
type FilterExpr interface {
	Matches(n *model.Node) bool
	String() string // For debug output
}

// TextExpr matches nodes whose title or subtitle contains the term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(n *model.Node) bool {
	return strings.Contains(strings.ToLower(n.Title), e.term) ||
		strings.Contains(strings.ToLower(n.Subtitle), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches nodes whose title fuzzy-matches the term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(n *model.Node) bool {
	return fuzzy.MatchFold(e.term, n.Title)
}

// Distance returns the edit distance of the match, or -1 if title does not match
func (e *FuzzyExpr) Distance(title string) int {
	return fuzzy.RankMatchFold(e.term, title)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// MatchPositions returns the byte offsets in text of the characters matched by the term
func (e *FuzzyExpr) MatchPositions(text string) []int {
	if e.term == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	var positions []int
	from := 0
	for _, r := range strings.ToLower(e.term) {
		i := strings.IndexRune(lowerText[from:], r)
		if i < 0 {
			break
		}
		positions = append(positions, from+i)
		from += i + len(string(r))
	}
	return positions
}

// RegexExpr matches nodes whose title matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(n *model.Node) bool {
	return e.re.MatchString(n.Title)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// KindFilter matches nodes by kind or state (is:header, is:child, is:disabled, is:excluded)
type KindFilter struct {
	what string
}

func NewKindFilter(what string) (*KindFilter, error) {
	switch what {
	case "header", "child", "disabled", "excluded":
		return &KindFilter{what: what}, nil
	}
	return nil, fmt.Errorf("unknown filter is:%s", what)
}

func (e *KindFilter) Matches(n *model.Node) bool {
	switch e.what {
	case "header":
		return n.IsHeader()
	case "child":
		return n.IsChild()
	case "disabled":
		return !n.Enabled
	case "excluded":
		return n.ExcludeFromMultiSelection
	}
	return false
}

func (e *KindFilter) String() string {
	return "is:" + e.what
}

// GroupFilter matches nodes whose group header title contains the term.
// A header belongs to its own group.
type GroupFilter struct {
	term string
}

func NewGroupFilter(term string) *GroupFilter {
	return &GroupFilter{term: strings.ToLower(term)}
}

func (e *GroupFilter) Matches(n *model.Node) bool {
	header := n
	if n.IsChild() {
		header = n.Parent()
	}
	return header != nil && strings.Contains(strings.ToLower(header.Title), e.term)
}

func (e *GroupFilter) String() string {
	return fmt.Sprintf("group(%q)", e.term)
}

// AlwaysMatchExpr matches all nodes (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(n *model.Node) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both sub-expressions match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(n *model.Node) bool {
	return e.left.Matches(n) && e.right.Matches(n)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("and(%s, %s)", e.left, e.right)
}

// OrExpr matches if either sub-expression matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(n *model.Node) bool {
	return e.left.Matches(n) || e.right.Matches(n)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("or(%s, %s)", e.left, e.right)
}

// NotExpr inverts its sub-expression
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(n *model.Node) bool {
	return !e.expr.Matches(n)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// fuzzyTerms collects the fuzzy terms that must match, skipping negated ones
func fuzzyTerms(expr FilterExpr) []*FuzzyExpr {
	switch e := expr.(type) {
	case *FuzzyExpr:
		return []*FuzzyExpr{e}
	case *AndExpr:
		return append(fuzzyTerms(e.left), fuzzyTerms(e.right)...)
	case *OrExpr:
		return append(fuzzyTerms(e.left), fuzzyTerms(e.right)...)
	}
	return nil
}
