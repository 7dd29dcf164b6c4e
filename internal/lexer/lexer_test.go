package lexer

import (
	"testing"

	"wikitext/internal/ast"
)

func concatSlices(tokens []ast.ExtractedToken) string {
	var out string
	for _, t := range tokens {
		out += t.Slice
	}
	return out
}

func TestTokenCoverage(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"**bold** //italics// __underline__",
		"[[div]]\ncontent\n[[/div]]",
		"a\n\nb\n\n\nc",
		"user@example.com and https://example.com/path",
		`[[code type="go"]]`,
		"##blue|text##",
		"[[[some page|label]]]",
		"[!-- comment --]",
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		if got := concatSlices(tokens); got != in {
			t.Fatalf("token coverage broken for %q: got %q", in, got)
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != ast.TInputEnd {
			t.Fatalf("expected trailing TInputEnd sentinel for %q", in)
		}
	}
}

func TestEmptyInputYieldsOnlySentinel(t *testing.T) {
	tokens := Tokenize("")
	if len(tokens) != 1 || tokens[0].Kind != ast.TInputEnd || tokens[0].Slice != "" {
		t.Fatalf("got %+v", tokens)
	}
}

func TestLiteralPriority(t *testing.T) {
	cases := []struct {
		in   string
		kind ast.TokenKind
	}{
		{"[[[*", ast.TLeftTripleBracketStar},
		{"[[[", ast.TLeftTripleBracket},
		{"[[*", ast.TLeftBlockStar},
		{"[[", ast.TLeftBlock},
		{"[", ast.TLeftBracket},
		{"]]]", ast.TRightTripleBracket},
		{"]]", ast.TRightBlock},
		{"]", ast.TRightBracket},
		{"[!--", ast.TLeftComment},
		{"--]", ast.TRightComment},
		{"--", ast.TStrikethroughMarker},
	}
	for _, c := range cases {
		tokens := Tokenize(c.in)
		if len(tokens) != 2 {
			t.Fatalf("Tokenize(%q) produced %d tokens, want 1 + sentinel", c.in, len(tokens))
		}
		if tokens[0].Kind != c.kind {
			t.Fatalf("Tokenize(%q)[0].Kind = %v, want %v", c.in, tokens[0].Kind, c.kind)
		}
	}
}

func TestSingleNewlineIsLineBreak(t *testing.T) {
	tokens := Tokenize("a\nb")
	if tokens[1].Kind != ast.TLineBreak {
		t.Fatalf("expected LineBreak, got %v", tokens[1].Kind)
	}
}

func TestDoubleNewlineIsParagraphBreak(t *testing.T) {
	tokens := Tokenize("a\n\nb")
	if tokens[1].Kind != ast.TParagraphBreak {
		t.Fatalf("expected ParagraphBreak, got %v", tokens[1].Kind)
	}
	if tokens[1].Slice != "\n\n" {
		t.Fatalf("expected paragraph break to span both newlines, got %q", tokens[1].Slice)
	}
}

func TestUrlAndEmailRecognized(t *testing.T) {
	tokens := Tokenize("https://example.com/a user@example.com")
	if tokens[0].Kind != ast.TUrl {
		t.Fatalf("expected Url, got %v", tokens[0].Kind)
	}
	var emailKind ast.TokenKind
	for _, tok := range tokens {
		if tok.Kind == ast.TEmail {
			emailKind = tok.Kind
		}
	}
	if emailKind != ast.TEmail {
		t.Fatalf("expected an Email token to be produced")
	}
}

func TestUnmatchedMultibyteRuneIsOtherNotEmptyLength(t *testing.T) {
	tokens := Tokenize("é")
	if len(tokens) != 2 || tokens[0].Kind != ast.TOther || tokens[0].Slice != "é" {
		t.Fatalf("got %+v", tokens)
	}
}
