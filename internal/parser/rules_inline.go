package parser

import "wikitext/internal/ast"

// boldRule implements the "**...**" rule of spec.md §4.5.
func boldRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TBoldMarker)},
		[]ParseCondition{CurrentToken(ast.TParagraphBreak)},
		ast.CBold,
		"bold",
	)
}

func italicsRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TItalicsMarker)},
		[]ParseCondition{CurrentToken(ast.TParagraphBreak)},
		ast.CItalics,
		"italics",
	)
}

func underlineRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TUnderlineMarker)},
		[]ParseCondition{CurrentToken(ast.TParagraphBreak)},
		ast.CUnderline,
		"underline",
	)
}

func subscriptRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TSubscriptMarker)},
		[]ParseCondition{CurrentToken(ast.TParagraphBreak)},
		ast.CSubscript,
		"subscript",
	)
}

// superscriptRule is bold's pattern, plus an abort when the opener or
// closer is directly adjacent to whitespace (spec.md §4.5).
func superscriptRule(p *Parser) (ast.Element, bool) {
	p.advance()
	if p.current().Kind == ast.TWhitespace {
		return ast.Element{}, false
	}
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TSuperscriptMarker)},
		[]ParseCondition{CurrentToken(ast.TParagraphBreak), noPrecedingWhitespaceBeforeCloser()},
		ast.CSuperscript,
		"superscript",
	)
}

// noPrecedingWhitespaceBeforeCloser aborts the collection if the
// token immediately before a superscript closer is whitespace.
func noPrecedingWhitespaceBeforeCloser() ParseCondition {
	return Function(func(p *Parser) bool {
		return p.current().Kind == ast.TSuperscriptMarker && p.peek(-1).Kind == ast.TWhitespace
	})
}

func monospaceRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return p.collectContainer(
		[]ParseCondition{CurrentToken(ast.TMonospaceClose)},
		nil,
		ast.CMonospace,
		"monospace",
	)
}

// strikethroughRule disambiguates "--" between a strikethrough
// container and a plain em-dash, per spec.md §4.5: if a reachable
// closing "--" exists on the same line segment with no adjacent
// whitespace on the wrong side, it's strikethrough; otherwise the
// opener alone becomes an em-dash (Open Question 1 resolved:
// strikethrough never spans a LineBreak).
func strikethroughRule(p *Parser) (ast.Element, bool) {
	if strikethroughReachable(p) {
		p.advance()
		return p.collectContainer(
			[]ParseCondition{CurrentToken(ast.TStrikethroughMarker)},
			[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
			ast.CStrikethrough,
			"strikethrough",
		)
	}
	p.advance()
	return ast.Text("—"), true
}

func strikethroughReachable(p *Parser) bool {
	return p.evaluate(func(p *Parser) bool {
		p.advance()
		if p.current().Kind == ast.TWhitespace {
			return false
		}
		prevWasWhitespace := false
		for {
			switch p.current().Kind {
			case ast.TInputEnd, ast.TLineBreak, ast.TParagraphBreak:
				return false
			case ast.TStrikethroughMarker:
				return !prevWasWhitespace
			}
			prevWasWhitespace = p.current().Kind == ast.TWhitespace
			p.advance()
		}
	})
}

// colorRule implements `##color_name|content##` (spec.md §4.5). The
// color name is stashed in the StyledContainer's Style field, the
// same field a real renderer would turn into a "color: <name>" CSS
// declaration.
func colorRule(p *Parser) (ast.Element, bool) {
	p.advance()
	name, ok := p.collectText(
		[]ParseCondition{CurrentToken(ast.TPipe)},
		[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
	)
	if !ok {
		return ast.Element{}, false
	}

	children, ok := p.collectElements(
		[]ParseCondition{CurrentToken(ast.TColorMarker)},
		nil,
		"color",
	)
	if !ok {
		return ast.Element{}, false
	}

	return ast.Element{
		Kind:          ast.EStyledContainer,
		ContainerKind: ast.CColor,
		Children:      stripMarkers(children),
		Style:         &name,
	}, true
}

// rawRule implements "@@...@@" (spec.md §4.5): collect_text until the
// matching closer, aborting on any newline.
func rawRule(p *Parser) (ast.Element, bool) {
	p.advance()
	text, ok := p.collectText(
		[]ParseCondition{CurrentToken(ast.TRawOpen)},
		[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
	)
	if !ok {
		return ast.Element{}, false
	}
	return ast.Raw(text), true
}

// rawAngleRule implements "@<...>@".
func rawAngleRule(p *Parser) (ast.Element, bool) {
	p.advance()
	text, ok := p.collectText(
		[]ParseCondition{CurrentToken(ast.TRawAngleClose)},
		[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
	)
	if !ok {
		return ast.Element{}, false
	}
	return ast.Raw(text), true
}

// commentRule implements "[!-- ... --]" -> Null, independent of
// whether the preprocessor already stripped comments (spec.md §4.1
// vs §4.5: both behaviors are real, for callers that invoke tokenize
// and parse without running preprocess first).
func commentRule(p *Parser) (ast.Element, bool) {
	p.advance()
	_, ok := p.collect(
		[]ParseCondition{CurrentToken(ast.TRightComment)},
		nil,
		func(ast.ExtractedToken) {},
	)
	if !ok {
		return ast.Element{}, false
	}
	return ast.Null(), true
}

func textRule(p *Parser) (ast.Element, bool) {
	tok := p.current()
	p.advance()
	return ast.Text(tok.Slice), true
}

func emailRule(p *Parser) (ast.Element, bool) {
	tok := p.current()
	p.advance()
	return ast.Element{Kind: ast.EEmail, Text: tok.Slice}, true
}

// urlRule emits a bare Link whose label defaults to the URL itself.
func urlRule(p *Parser) (ast.Element, bool) {
	tok := p.current()
	p.advance()
	return ast.Element{
		Kind:       ast.ELink,
		LinkURL:    tok.Slice,
		LinkLabel:  ast.Label{Kind: ast.LabelUrl},
		LinkAnchor: ast.AnchorSame,
	}, true
}

func lineBreakRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return ast.Element{Kind: ast.ELineBreak}, true
}

func paragraphBreakRule(p *Parser) (ast.Element, bool) {
	p.advance()
	return ast.ParagraphBreak(), true
}
