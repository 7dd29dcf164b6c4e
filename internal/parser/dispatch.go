package parser

import (
	"sync"

	"wikitext/internal/ast"
)

var (
	dispatchOnce sync.Once
	dispatchTab  map[ast.TokenKind][]rule
)

// dispatchTable lazily builds the token_kind -> [rule] mapping once
// per process (spec.md §9 "Rule dispatch table"), mirroring the
// sync.Once-guarded lazy maps in src/esbuild's helper packages.
func dispatchTable() map[ast.TokenKind][]rule {
	dispatchOnce.Do(buildDispatchTable)
	return dispatchTab
}

func buildDispatchTable() {
	single := func(name string, fn func(p *Parser) (ast.Element, bool)) []rule {
		return []rule{{name: name, fn: fn}}
	}

	dispatchTab = map[ast.TokenKind][]rule{
		ast.TBoldMarker:          single("bold", boldRule),
		ast.TItalicsMarker:       single("italics", italicsRule),
		ast.TUnderlineMarker:     single("underline", underlineRule),
		ast.TSuperscriptMarker:   single("superscript", superscriptRule),
		ast.TSubscriptMarker:     single("subscript", subscriptRule),
		ast.TStrikethroughMarker: single("strikethrough", strikethroughRule),
		ast.TMonospaceOpen:       single("monospace", monospaceRule),
		ast.TColorMarker:         single("color", colorRule),
		ast.TRawOpen:             single("raw", rawRule),
		ast.TRawAngleOpen:        single("raw-angle", rawAngleRule),
		ast.TLeftComment:         single("comment", commentRule),

		ast.TLeftTripleBracket:     single("local-link", localLinkRule),
		ast.TLeftTripleBracketStar: single("local-link-new-tab", localLinkNewTabRule),
		ast.TLeftBlockAnchor:       single("anchor-link", anchorLinkRule),

		ast.TLeftBlock:     single("block", blockDispatchRule),
		ast.TLeftBlockStar: single("block", blockDispatchRule),

		ast.TTableRow: single("table-row", tableRowRule),

		ast.TLineBreak:      single("line-break", lineBreakRule),
		ast.TParagraphBreak: single("paragraph-break", paragraphBreakRule),

		ast.TEmail: single("email", emailRule),
		ast.TUrl:   single("url", urlRule),

		// Leaf fallthrough tokens: each of these always succeeds as
		// plain Text, so none of them ever produces a NoRulesMatch
		// warning (spec.md §8 scenario 2's plain-text portion has
		// zero warnings).
		ast.TIdentifier:          single("text", textRule),
		ast.TWhitespace:          single("text", textRule),
		ast.TOther:               single("text", textRule),
		ast.TEquals:              single("text", textRule),
		ast.TQuote:               single("text", textRule),
		ast.TPipe:                single("text", textRule),
		ast.TString:              single("text", textRule),
		ast.TMonospaceClose:      single("text", textRule),
		ast.TRawClose:            single("text", textRule),
		ast.TRawAngleClose:       single("text", textRule),
		ast.TLeftBracket:         single("text", textRule),
		ast.TRightBracket:        single("text", textRule),
		ast.TRightBlock:          single("text", textRule),
		ast.TRightTripleBracket:  single("text", textRule),
		ast.TLeftBlockEnd:        single("text", textRule),
		ast.TRightComment:        single("text", textRule),
	}
}
