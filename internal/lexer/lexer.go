// Package lexer converts preprocessed wikitext into a flat, ordered
// sequence of ast.ExtractedToken values (spec.md §4.3). It never
// fails observably: a catastrophic grammar failure (which in practice
// cannot happen here, since Other is a total catch-all) would yield
// one Other token spanning the whole input, mirroring the
// lexer-failure fallback in original_source/src/parse/token/mod.rs.
//
// The scanning loop is grounded on src/esbuild/lexer/lexer.go's
// step()/Next() character-stepping discipline, adapted from a single
// current-token field advanced by repeated calls to a function that
// returns the full token slice up front, since nothing here needs the
// parser to drive re-lexing mid-token the way JSX/regex-sensitive
// tokens do in JS.
package lexer

import (
	"regexp"
	"unicode/utf8"

	"wikitext/internal/ast"
)

var (
	urlPattern    = regexp.MustCompile(`^(https?|ftp)://[^\s\[\]]*`)
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	stringPattern = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
	identPattern  = regexp.MustCompile(`^[A-Za-z0-9]+`)
	wsPattern     = regexp.MustCompile(`^[ \t]+`)
)

// multiByteLiteral is one entry in the priority-ordered literal table:
// longer, more specific glyphs must appear before shorter ones that
// are their prefix (e.g. "[[[*' before "[[[" before "[[" before "[").
type multiByteLiteral struct {
	text string
	kind ast.TokenKind
}

// Ordered longest-first within each length class; length classes
// themselves are tried longest-first by tokenizeOne.
var literals = []multiByteLiteral{
	// 4-byte
	{"[[[*", ast.TLeftTripleBracketStar},
	{"[!--", ast.TLeftComment},

	// 3-byte
	{"]]]", ast.TRightTripleBracket},
	{"[[[", ast.TLeftTripleBracket},
	{"[[*", ast.TLeftBlockStar},
	{"[[#", ast.TLeftBlockAnchor},
	{"[[/", ast.TLeftBlockEnd},
	{"--]", ast.TRightComment},

	// 2-byte
	{"[[", ast.TLeftBlock},
	{"]]", ast.TRightBlock},
	{"**", ast.TBoldMarker},
	{"//", ast.TItalicsMarker},
	{"__", ast.TUnderlineMarker},
	{"^^", ast.TSuperscriptMarker},
	{",,", ast.TSubscriptMarker},
	{"--", ast.TStrikethroughMarker},
	{"{{", ast.TMonospaceOpen},
	{"}}", ast.TMonospaceClose},
	{"##", ast.TColorMarker},
	{"@@", ast.TRawOpen},
	{"@<", ast.TRawAngleOpen},
	{">@", ast.TRawAngleClose},
	{"||", ast.TTableRow},

	// 1-byte
	{"[", ast.TLeftBracket},
	{"]", ast.TRightBracket},
	{"|", ast.TPipe},
	{"=", ast.TEquals},
	{"\"", ast.TQuote},
}

// Tokenize scans text into a flat token sequence terminated by a
// single TInputEnd sentinel whose slice is empty (spec.md §4.3).
// Concatenating every returned token's Slice in order reconstructs
// text exactly (spec.md §3 invariant (i)).
func Tokenize(text string) []ast.ExtractedToken {
	var tokens []ast.ExtractedToken
	pos := 0
	n := len(text)

	for pos < n {
		kind, length := tokenizeOne(text, pos)
		slice := text[pos : pos+length]
		tokens = append(tokens, ast.ExtractedToken{
			Kind:  kind,
			Slice: slice,
			Span:  ast.Span{Start: int32(pos), End: int32(pos + length)},
		})
		pos += length
	}

	tokens = append(tokens, ast.ExtractedToken{
		Kind:  ast.TInputEnd,
		Slice: "",
		Span:  ast.Span{Start: int32(n), End: int32(n)},
	})

	return tokens
}

// tokenizeOne returns the kind and byte length of the token starting
// at pos. It always returns a length of at least one byte, preserving
// the byte-coverage invariant even for unmatched runes (the Other
// catch-all).
func tokenizeOne(text string, pos int) (ast.TokenKind, int) {
	rest := text[pos:]

	if loc := urlPattern.FindString(rest); loc != "" {
		return ast.TUrl, len(loc)
	}
	if loc := emailPattern.FindString(rest); loc != "" {
		return ast.TEmail, len(loc)
	}

	// A complete quoted string wins over the lone '"' literal below, so
	// block argument values arrive as single String tokens.
	if loc := stringPattern.FindString(rest); loc != "" {
		return ast.TString, len(loc)
	}

	for _, lit := range literals {
		if hasPrefix(rest, lit.text) {
			return lit.kind, len(lit.text)
		}
	}

	if rest[0] == '\n' {
		count := 0
		for count < len(rest) && rest[count] == '\n' {
			count++
		}
		if count >= 2 {
			return ast.TParagraphBreak, count
		}
		return ast.TLineBreak, 1
	}

	if loc := wsPattern.FindString(rest); loc != "" {
		return ast.TWhitespace, len(loc)
	}

	if loc := identPattern.FindString(rest); loc != "" {
		return ast.TIdentifier, len(loc)
	}

	_, size := utf8.DecodeRuneInString(rest)
	if size == 0 {
		size = 1
	}
	return ast.TOther, size
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
