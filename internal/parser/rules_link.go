package parser

import (
	"strings"

	"wikitext/internal/ast"
)

// localLinkRule implements "[[[path [| label] ]]]" (spec.md §4.5).
func localLinkRule(p *Parser) (ast.Element, bool) {
	return parseLocalLink(p, ast.AnchorSame)
}

// localLinkNewTabRule is the "[[[*path...]]]" variant, anchor=NewTab.
func localLinkNewTabRule(p *Parser) (ast.Element, bool) {
	return parseLocalLink(p, ast.AnchorNewTab)
}

func parseLocalLink(p *Parser, anchor ast.AnchorTarget) (ast.Element, bool) {
	p.advance()

	path, closedOn, ok := collectPathOrLabel(p)
	if !ok {
		return ast.Element{}, false
	}

	label := ast.Label{Kind: ast.LabelPage}
	if closedOn == ast.TPipe {
		labelText, ok := p.collectText(
			[]ParseCondition{CurrentToken(ast.TRightTripleBracket)},
			[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
		)
		if !ok {
			return ast.Element{}, false
		}
		label = ast.Label{Kind: ast.LabelText, Text: labelText}
	}

	return ast.Element{Kind: ast.ELink, LinkURL: path, LinkLabel: label, LinkAnchor: anchor}, true
}

// collectPathOrLabel collects raw text up to whichever comes first: a
// "|" (more content follows, the label) or the closing "]]]".
func collectPathOrLabel(p *Parser) (string, ast.TokenKind, bool) {
	var b strings.Builder
	for {
		if p.atEnd() {
			return "", 0, false
		}
		switch p.current().Kind {
		case ast.TPipe, ast.TRightTripleBracket:
			closer := p.current().Kind
			p.advance()
			return b.String(), closer, true
		case ast.TLineBreak, ast.TParagraphBreak:
			return "", 0, false
		}
		b.WriteString(p.current().Slice)
		p.advance()
	}
}

// anchorLinkRule implements "[[#anchor-text]]" (spec.md §4.5): the
// label is collected verbatim, the href becomes a normalized same-page
// anchor, or "javascript:;" when the anchor text is empty.
func anchorLinkRule(p *Parser) (ast.Element, bool) {
	p.advance()
	label, ok := p.collectText(
		[]ParseCondition{CurrentToken(ast.TRightBlock)},
		[]ParseCondition{CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
	)
	if !ok {
		return ast.Element{}, false
	}

	trimmed := strings.TrimSpace(label)
	url := "javascript:;"
	if trimmed != "" {
		url = "#" + normalizeAnchorText(trimmed)
	}

	return ast.Element{
		Kind:       ast.ELink,
		LinkURL:    url,
		LinkLabel:  ast.Label{Kind: ast.LabelText, Text: label},
		LinkAnchor: ast.AnchorSame,
	}, true
}

// normalizeAnchorText lowercases and collapses runs of non-
// alphanumerics to single dashes, the same shape as
// internal/include's slug normalization (spec.md §4.2, §9), applied
// here to anchor fragments instead of page names.
func normalizeAnchorText(s string) string {
	var b strings.Builder
	lastWasDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteByte('-')
				lastWasDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// tableRowRule implements the SPEC_FULL "||"-delimited table syntax:
// cells are collected between successive "||" markers and wrapped in
// TableCell containers, the whole row in a TableRow container,
// terminating at LineBreak (grounded on original_source's table rule
// and spec.md §4.4's collect_container pattern).
func tableRowRule(p *Parser) (ast.Element, bool) {
	p.advance()
	if !p.enterRecursion("table-row", p.current().Span) {
		return ast.Element{}, false
	}
	defer p.exitRecursion()

	var cells []ast.Element
	for {
		children, ok := p.collectElements(
			[]ParseCondition{CurrentToken(ast.TTableRow), CurrentToken(ast.TLineBreak), CurrentToken(ast.TParagraphBreak)},
			nil,
			"table-cell",
		)
		if !ok {
			return ast.Element{}, false
		}
		cells = append(cells, ast.Container(ast.CTableCell, stripMarkers(children)))

		// collectElements already consumed whichever close condition
		// matched; peek at what just happened by checking the token
		// right before the current position.
		if p.peek(-1).Kind != ast.TTableRow {
			break
		}
	}

	return ast.Container(ast.CTableRow, cells), true
}
