package parser

import "wikitext/internal/ast"

// collect advances token by token invoking onToken, stopping (and
// consuming the closer) at any close condition, or failing at any
// abort condition or InputEnd (spec.md §4.4).
func (p *Parser) collect(closeConds, abortConds []ParseCondition, onToken func(ast.ExtractedToken)) (ast.ExtractedToken, bool) {
	for {
		if p.atEnd() {
			return ast.ExtractedToken{}, false
		}
		if p.anyMatch(closeConds) {
			closer := p.current()
			p.advance()
			return closer, true
		}
		if p.anyMatch(abortConds) {
			return ast.ExtractedToken{}, false
		}
		onToken(p.current())
		p.advance()
	}
}

// collectText is collect, returning the exact slice covered (the
// closer is consumed but not included).
func (p *Parser) collectText(closeConds, abortConds []ParseCondition) (string, bool) {
	var text string
	_, ok := p.collect(closeConds, abortConds, func(t ast.ExtractedToken) {
		text += t.Slice
	})
	if !ok {
		return "", false
	}
	return text, true
}

// collectContainer is collect, recursively invoking consume to
// produce child elements wrapped in a Container of the given kind. A
// failure from a nested consume call propagates out rather than being
// locally recovered: only the top-level loop converts a consume
// failure into a text-fallback (spec.md §7.2), so an unterminated
// inner rule unwinds all the way back through every enclosing
// container, exactly as scenario 3 (`**fail bold`) requires.
//
// ruleName both tags the depth-limit warning if this call is the one
// that trips it, and is otherwise unused; callers pass their own
// rule's identity (e.g. "block-div", "bold").
func (p *Parser) collectContainer(closeConds, abortConds []ParseCondition, kind ast.ContainerKind, ruleName string) (ast.Element, bool) {
	children, ok := p.collectElements(closeConds, abortConds, ruleName)
	if !ok {
		return ast.Element{}, false
	}
	return ast.Container(kind, stripMarkers(children)), true
}

// collectElements is the shared body of collectContainer and the
// block subsystem's get_body_elements: collect children by repeated
// consume() until a close condition or abort/InputEnd, respecting the
// recursion bound.
func (p *Parser) collectElements(closeConds, abortConds []ParseCondition, ruleName string) ([]ast.Element, bool) {
	if !p.enterRecursion(ruleName, p.current().Span) {
		return nil, false
	}
	defer p.exitRecursion()

	var children []ast.Element
	for {
		if p.recursionExceeded != nil {
			return nil, false
		}
		if p.atEnd() {
			return nil, false
		}
		if p.anyMatch(closeConds) {
			p.advance()
			return children, true
		}
		if p.anyMatch(abortConds) {
			return nil, false
		}
		el, ok := p.consume()
		if !ok {
			return nil, false
		}
		if el.Kind != ast.ENull && el.Kind != ast.EParagraphBreak {
			children = append(children, el)
		} else if el.Kind == ast.EParagraphBreak {
			children = append(children, el) // gathered away by gatherParagraphs
		}
	}
}

// gatherParagraphs groups consecutive non-break elements into
// Container(Paragraph, ...), splitting runs at EParagraphBreak markers
// and dropping the markers themselves (spec.md §4.4 "Paragraph
// gathering"). Used by block bodies parsed with as_paragraphs=true.
func gatherParagraphs(elements []ast.Element) []ast.Element {
	var result []ast.Element
	var run []ast.Element

	flush := func() {
		if len(run) > 0 {
			result = append(result, ast.Container(ast.CParagraph, run))
			run = nil
		}
	}

	for _, el := range elements {
		if el.Kind == ast.EParagraphBreak {
			flush()
			continue
		}
		run = append(run, el)
	}
	flush()

	return result
}

// stripMarkers drops EParagraphBreak markers without paragraph
// wrapping, used by non-paragraph (flat) body collection.
func stripMarkers(elements []ast.Element) []ast.Element {
	var result []ast.Element
	for _, el := range elements {
		if el.Kind == ast.EParagraphBreak {
			continue
		}
		result = append(result, el)
	}
	return result
}
