package search

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenText             // bare word, fuzzy matched
	TokenQuoted           // "exact text"
	TokenFilter           // is:..., g:..., ~term
	TokenRegex            // /pattern/
	TokenOr               // |
	TokenNot              // -
	TokenLParen           // (
	TokenRParen           // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch t.input[t.pos] {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '-':
		if t.pos+1 < len(t.input) && !isSpace(t.input[t.pos+1]) {
			t.pos++
			return Token{Type: TokenNot, Value: "-"}
		}
		return t.readText()
	case '"':
		return t.readQuotedText()
	case '~':
		t.pos++
		tok := t.readText()
		if tok.Value == "" {
			return Token{Type: TokenText, Value: "~"}
		}
		return Token{Type: TokenFilter, Value: "~" + tok.Value}
	case '/':
		return t.readRegex()
	}

	tok := t.readText()
	if strings.HasPrefix(tok.Value, "is:") || strings.HasPrefix(tok.Value, "g:") {
		tok.Type = TokenFilter
	}
	return tok
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // Skip opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++
	}
	return Token{Type: TokenQuoted, Value: value}
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if isSpace(ch) || ch == '|' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readRegex() Token {
	t.pos++ // Skip opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '/':
			pattern := t.input[start:t.pos]
			t.pos++
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	// Unterminated: the rest of the input is the pattern
	if start == t.pos {
		return Token{Type: TokenText, Value: "/"}
	}
	return Token{Type: TokenRegex, Value: t.input[start:t.pos]}
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery parses a complete search query and returns the root expression
func ParseQuery(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()
	if len(tokens) == 1 {
		return NewAlwaysMatchExpr(), nil
	}

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", parser.currentToken().Value)
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Precedence from lowest to highest: OR, implicit AND, NOT, atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		switch p.currentToken().Type {
		case TokenEOF, TokenRParen, TokenOr:
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}

	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.currentToken()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", p.currentToken().Value)
		}
		p.advance()
		return expr, nil

	case TokenText:
		p.advance()
		return NewFuzzyExpr(tok.Value), nil

	case TokenQuoted:
		p.advance()
		return NewTextExpr(tok.Value), nil

	case TokenFilter:
		p.advance()
		return parseFilterValue(tok.Value)

	case TokenRegex:
		p.advance()
		return NewRegexExpr(tok.Value)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected token: %s", tok.Value)
}

// parseFilterValue converts a filter token value into the matching FilterExpr
func parseFilterValue(value string) (FilterExpr, error) {
	switch {
	case strings.HasPrefix(value, "~"):
		return NewFuzzyExpr(value[1:]), nil
	case strings.HasPrefix(value, "is:"):
		return NewKindFilter(value[3:])
	case strings.HasPrefix(value, "g:"):
		return NewGroupFilter(value[2:]), nil
	}
	return nil, fmt.Errorf("unknown filter: %s", value)
}
