// Package parser walks a flat token sequence (internal/lexer's output)
// into an ast.SyntaxTree, dispatching on the current token to a fixed,
// lazily-built rule table (spec.md §4.4). It never fails: malformed
// input degrades to Text elements plus accumulated warnings, mirroring
// src/esbuild/parser's "the parser never stops, it recovers" posture,
// adapted here from panic/recover (esbuild's LexerPanic boundary) to
// plain bool-returning rule functions, since nothing in this grammar
// needs to unwind past more than one rule attempt at a time.
package parser

import "wikitext/internal/ast"

// maxRecursionDepth bounds container/block nesting (spec.md §4.4). The
// canonical test nests 101 [[div]] blocks against this exact bound.
const maxRecursionDepth = 100

// Parser is the shared walking state. When tryRule rolls back a failed
// rule it restores only pos: warnings, styles and recursionExceeded
// are append-only per spec.md §3 invariant (iv), so a block rule that
// records a specific warning (BlockMissingName, BlockMalformedArguments,
// NoSuchModule, ...) before failing keeps that warning even though its
// position change is discarded. evaluate and saveEvaluate work on a
// full copy instead, so whatever a failed speculative attempt recorded
// there is discarded with it.
type Parser struct {
	tokens []ast.ExtractedToken
	source string
	pos    int

	ruleName string
	depth    int

	styles            []string
	warnings          []ast.ParseWarning
	recursionExceeded *recursionSignal
}

// recursionSignal marks that the depth bound has tripped. Once set,
// the top-level loop treats the rest of the current top-level attempt
// specially: the whole remainder of the source becomes one Text
// element and parsing stops, matching the single combined
// RecursionDepthExceeded warning the canonical test expects, rather
// than one NoRulesMatch per unwound nesting level.
type recursionSignal struct{}

func newParser(tokens []ast.ExtractedToken, source string) *Parser {
	return &Parser{tokens: tokens, source: source}
}

func (p *Parser) current() ast.ExtractedToken {
	return p.tokens[p.pos]
}

func (p *Parser) peek(ahead int) ast.ExtractedToken {
	idx := p.pos + ahead
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == ast.TInputEnd
}

func (p *Parser) warn(kind ast.ParseWarningKind, ruleName string, span ast.Span) {
	p.warnings = append(p.warnings, ast.ParseWarning{
		TokenKind: p.current().Kind,
		RuleName:  ruleName,
		Span:      span,
		Kind:      kind,
	})
}

// evaluate runs fn against a clone of p; the parent is never mutated,
// regardless of fn's outcome (spec.md §4.4 evaluate_fn). Used for
// pure lookahead, so any warnings fn's clone would have recorded are
// discarded along with everything else.
func (p *Parser) evaluate(fn func(p *Parser) bool) bool {
	clone := *p
	return fn(&clone)
}

// saveEvaluate runs fn against a clone of p, committing the clone's
// full state back to the parent only on success (spec.md §4.4
// save_evaluate_fn); on failure the clone, and anything it recorded,
// is discarded.
func (p *Parser) saveEvaluate(fn func(p *Parser) bool) bool {
	clone := *p
	if fn(&clone) {
		*p = clone
		return true
	}
	return false
}

// enterRecursion and exitRecursion bound container/block nesting.
// exitRecursion is always deferred immediately after a successful
// enterRecursion, so depth self-balances regardless of which return
// path a caller takes — no rollback bookkeeping needed for it.
//
// span identifies the opener whose nesting level is being entered, so
// the RecursionDepthExceeded warning (when it fires) points at that
// opener rather than wherever p.pos happens to be once the bound
// trips — for a block, that's the "[[name" token, captured by the
// caller before it parses the block's head (spec.md §8 "Recursion
// safety": "exactly one RecursionDepthExceeded warning at the
// over-threshold opener").
func (p *Parser) enterRecursion(ruleName string, span ast.Span) bool {
	if p.depth >= maxRecursionDepth {
		if p.recursionExceeded == nil {
			p.recursionExceeded = &recursionSignal{}
			p.warn(ast.WarnRecursionDepthExceeded, ruleName, span)
		}
		return false
	}
	p.depth++
	return true
}

func (p *Parser) exitRecursion() {
	p.depth--
}

// rule is one entry in the dispatch table: a name (used in warnings)
// and the function itself. A rule must leave the parser position
// exactly where it found it on failure; tryRule enforces this
// centrally by rolling back pos, so individual rule bodies never have
// to remember to do it by hand. Any warnings a rule recorded before
// failing are kept (spec.md §3 invariant (iv)).
type rule struct {
	name string
	fn   func(p *Parser) (ast.Element, bool)
}

func (p *Parser) tryRule(r rule) (ast.Element, bool) {
	savedPos := p.pos
	prevName := p.ruleName
	p.ruleName = r.name
	el, ok := r.fn(p)
	p.ruleName = prevName
	if !ok {
		p.pos = savedPos
		return ast.Element{}, false
	}
	return el, true
}

// consume looks up the current token's rule list and tries each in
// order; the first to succeed wins. If none succeed, the caller (the
// top-level loop, or a collection primitive that propagates the
// failure upward) is responsible for recovery.
func (p *Parser) consume() (ast.Element, bool) {
	if p.recursionExceeded != nil {
		return ast.Element{}, false
	}
	for _, r := range dispatchTable()[p.current().Kind] {
		if el, ok := p.tryRule(r); ok {
			return el, true
		}
	}
	return ast.Element{}, false
}

// Parse walks tokens (produced by internal/lexer.Tokenize over
// source) into a SyntaxTree plus accumulated warnings (spec.md §4.4
// top-level loop).
func Parse(tokens []ast.ExtractedToken, source string) (ast.SyntaxTree, []ast.ParseWarning) {
	p := newParser(tokens, source)
	var elements []ast.Element

	for !p.atEnd() {
		startPos := p.pos
		warnBefore := len(p.warnings)
		el, ok := p.consume()

		if ok {
			switch el.Kind {
			case ast.EParagraphBreak:
				// dropped: the top-level list is flat, not
				// paragraph-gathered, and ParagraphBreak has no wire
				// representation of its own. Null, by contrast, is
				// only collapsed by block-body collection (spec.md §3
				// invariant (v)) and survives here.
			default:
				elements = append(elements, el)
			}
			if p.pos == startPos {
				// Pre-invariant guard (spec.md §4.4): a rule that
				// succeeds without advancing would loop forever.
				p.advance()
			}
			continue
		}

		if p.recursionExceeded != nil {
			remaining := p.tokens[startPos].Span.Start
			elements = append(elements, ast.Text(p.source[remaining:]))
			break
		}

		if len(p.warnings) == warnBefore {
			// Nothing more specific was recorded while this attempt
			// unwound, so this is a plain fallback.
			tok := p.current()
			p.warn(ast.WarnNoRulesMatch, "fallback", tok.Span)
		}
		tok := p.current()
		elements = append(elements, ast.Text(tok.Slice))
		p.advance()
	}

	return ast.SyntaxTree{Elements: elements, Styles: p.styles}, p.warnings
}
