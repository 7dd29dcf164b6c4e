package parser

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"wikitext/internal/ast"
	"wikitext/internal/lexer"
)

func parse(t *testing.T, src string) (ast.SyntaxTree, []ast.ParseWarning) {
	t.Helper()
	tokens := lexer.Tokenize(src)
	return Parse(tokens, src)
}

// The six concrete end-to-end scenarios of spec.md §8.

func TestScenarioEmptyInput(t *testing.T) {
	tree, warnings := parse(t, "")
	if len(tree.Elements) != 0 || len(warnings) != 0 {
		t.Fatalf("got elements=%v warnings=%v", tree.Elements, warnings)
	}
}

func TestScenarioBoldThenText(t *testing.T) {
	tree, warnings := parse(t, "**bold** text")
	want := []ast.Element{
		ast.Container(ast.CBold, []ast.Element{ast.Text("bold")}),
		ast.Text(" "),
		ast.Text("text"),
	}
	if !reflect.DeepEqual(tree.Elements, want) {
		t.Fatalf("got %+v, want %+v", tree.Elements, want)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestScenarioUnclosedBoldFallsBackToText(t *testing.T) {
	tree, warnings := parse(t, "**fail bold")
	want := []ast.Element{
		ast.Text("**"),
		ast.Text("fail"),
		ast.Text(" "),
		ast.Text("bold"),
	}
	if !reflect.DeepEqual(tree.Elements, want) {
		t.Fatalf("got %+v, want %+v", tree.Elements, want)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	w := warnings[0]
	if w.TokenKind != ast.TBoldMarker || w.RuleName != "fallback" || w.Kind != ast.WarnNoRulesMatch {
		t.Fatalf("got %+v", w)
	}
	if w.Span != (ast.Span{Start: 0, End: 2}) {
		t.Fatalf("got span %v, want 0..2", w.Span)
	}
}

func TestScenarioComment(t *testing.T) {
	tree, warnings := parse(t, "single [!-- stuff here --] comment")
	want := []ast.Element{
		ast.Text("single"),
		ast.Text(" "),
		ast.Null(),
		ast.Text(" "),
		ast.Text("comment"),
	}
	if !reflect.DeepEqual(tree.Elements, want) {
		t.Fatalf("got %+v, want %+v", tree.Elements, want)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestScenarioColor(t *testing.T) {
	tree, warnings := parse(t, "##blue|text here##")
	if len(tree.Elements) != 1 {
		t.Fatalf("got %+v", tree.Elements)
	}
	el := tree.Elements[0]
	if el.Kind != ast.EStyledContainer || el.ContainerKind != ast.CColor {
		t.Fatalf("got %+v", el)
	}
	if el.Style == nil || *el.Style != "blue" {
		t.Fatalf("got style %v, want blue", el.Style)
	}
	wantChildren := []ast.Element{ast.Text("text"), ast.Text(" "), ast.Text("here")}
	if !reflect.DeepEqual(el.Children, wantChildren) {
		t.Fatalf("got children %+v, want %+v", el.Children, wantChildren)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestScenarioRecursionDepthExceeded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 101; i++ {
		b.WriteString("[[div]]\n")
	}
	for i := 0; i < 101; i++ {
		b.WriteString("[[/div]]\n")
	}
	src := b.String()

	tree, warnings := parse(t, src)

	if len(tree.Elements) != 1 || !reflect.DeepEqual(tree.Elements[0], ast.Text(src)) {
		t.Fatalf("expected the whole input as a single Text element, got %+v", tree.Elements)
	}

	var found *ast.ParseWarning
	for i := range warnings {
		if warnings[i].Kind == ast.WarnRecursionDepthExceeded {
			if found != nil {
				t.Fatalf("expected exactly one RecursionDepthExceeded warning, got a second: %+v", warnings[i])
			}
			found = &warnings[i]
		}
	}
	if found == nil {
		t.Fatalf("expected a RecursionDepthExceeded warning, got %v", warnings)
	}
	if found.RuleName != "block-div" {
		t.Fatalf("got rule %q, want block-div", found.RuleName)
	}
	// The 101st "[[div]]\n" opener starts right after 100 complete
	// "[[div]]\n" lines, each 8 bytes long.
	wantStart := int32(100 * len("[[div]]\n"))
	want := ast.Span{Start: wantStart, End: wantStart + int32(len("[["))}
	if found.Span != want {
		t.Fatalf("got span %v, want %v", found.Span, want)
	}
}

// Property tests (spec.md §8).

func TestPropertyTotalParseNeverFails(t *testing.T) {
	inputs := []string{
		"", "plain", "**unterminated", "[[div]]\nno close",
		"[[module bogus]]", `[[code type="go"]]x`, "[[[broken link",
		"##unterminated color", "@@raw no close",
	}
	for _, in := range inputs {
		tree, _ := parse(t, in)
		if tree.Elements == nil && in != "" {
			t.Fatalf("parse(%q) produced a nil element slice", in)
		}
	}
}

func TestPropertyProgressNoInfiniteLoop(t *testing.T) {
	// A pathological mix of openers with nothing to close them; if the
	// top-level loop ever fails to advance, this test hangs instead of
	// failing cleanly, which is an acceptable cost for covering the
	// pre-invariant guard in Parse's top-level loop.
	src := strings.Repeat("[[", 500) + strings.Repeat("**", 500)
	done := make(chan struct{})
	go func() {
		parse(t, src)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("parse did not terminate, top-level loop may not be advancing")
	}
}
