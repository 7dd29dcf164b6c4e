package parser

import "wikitext/internal/ast"

type conditionKind uint8

const (
	condCurrentToken conditionKind = iota
	condTokenPair
	condFunction
)

// ParseCondition expresses a closing or abort predicate a rule checks
// at each step of a collection primitive (spec.md §4.4).
type ParseCondition struct {
	kind conditionKind

	tokenKind  ast.TokenKind
	pairFirst  ast.TokenKind
	pairSecond ast.TokenKind
	fn         func(p *Parser) bool
}

// CurrentToken matches when the current token is of the given kind.
func CurrentToken(kind ast.TokenKind) ParseCondition {
	return ParseCondition{kind: condCurrentToken, tokenKind: kind}
}

// TokenPair matches when the current token and the one immediately
// following it are of the given kinds, in order.
func TokenPair(first, second ast.TokenKind) ParseCondition {
	return ParseCondition{kind: condTokenPair, pairFirst: first, pairSecond: second}
}

// Function matches whenever fn returns true for the current state.
func Function(fn func(p *Parser) bool) ParseCondition {
	return ParseCondition{kind: condFunction, fn: fn}
}

func (p *Parser) matches(c ParseCondition) bool {
	switch c.kind {
	case condCurrentToken:
		return p.current().Kind == c.tokenKind
	case condTokenPair:
		return p.current().Kind == c.pairFirst && p.peek(1).Kind == c.pairSecond
	case condFunction:
		return c.fn(p)
	default:
		return false
	}
}

func (p *Parser) anyMatch(conds []ParseCondition) bool {
	for _, c := range conds {
		if p.matches(c) {
			return true
		}
	}
	return false
}
