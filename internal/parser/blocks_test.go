package parser

import (
	"reflect"
	"strings"
	"testing"

	"wikitext/internal/ast"
)

func TestBlockDivWrapsParagraphs(t *testing.T) {
	tree, warnings := parse(t, "[[div]]\nhello\n\nworld\n[[/div]]")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(tree.Elements) != 1 {
		t.Fatalf("got %+v", tree.Elements)
	}
	div := tree.Elements[0]
	if div.Kind != ast.EStyledContainer || div.ContainerKind != ast.CDiv {
		t.Fatalf("got %+v", div)
	}
	if len(div.Children) != 2 {
		t.Fatalf("expected two paragraphs, got %+v", div.Children)
	}
	for _, p := range div.Children {
		if p.Kind != ast.EContainer || p.ContainerKind != ast.CParagraph {
			t.Fatalf("expected a Paragraph container, got %+v", p)
		}
	}
}

func TestBlockDivWithClassAndID(t *testing.T) {
	tree, _ := parse(t, `[[div class="box" id="main"]]` + "\ncontent\n[[/div]]")
	div := tree.Elements[0]
	if div.Class == nil || *div.Class != "box" {
		t.Fatalf("got class=%v", div.Class)
	}
	if div.ID == nil || *div.ID != "main" {
		t.Fatalf("got id=%v", div.ID)
	}
}

func TestBlockSpanUnderscoreTrimsLineBreaks(t *testing.T) {
	tree, _ := parse(t, "[[span_]]\nhello\n[[/span_]]")
	span := tree.Elements[0]
	if span.ContainerKind != ast.CSpan {
		t.Fatalf("got %+v", span)
	}
	for _, c := range span.Children {
		if c.Kind == ast.ELineBreak {
			t.Fatalf("expected leading/trailing line breaks trimmed, got %+v", span.Children)
		}
	}
}

func TestBlockCodeBodyIsRawText(t *testing.T) {
	tree, _ := parse(t, "[[code type=\"go\"]]\nfunc f() **not bold** {}\n[[/code]]")
	code := tree.Elements[0]
	if code.Kind != ast.ECode {
		t.Fatalf("got %+v", code)
	}
	if code.CodeLanguage == nil || *code.CodeLanguage != "go" {
		t.Fatalf("got language=%v", code.CodeLanguage)
	}
	if !strings.Contains(code.CodeContents, "**not bold**") {
		t.Fatalf("expected body to preserve wikitext markers verbatim, got %q", code.CodeContents)
	}
}

func TestBlockCollapsibleDefaultsAndOverrides(t *testing.T) {
	tree, _ := parse(t, "[[collapsible]]\nhidden\n[[/collapsible]]")
	c := tree.Elements[0]
	if c.Kind != ast.ECollapsible || !c.StartOpen || !c.ShowTop || c.ShowBottom {
		t.Fatalf("got %+v", c)
	}

	tree, _ = parse(t, `[[collapsible folded="true" hideLocation="both"]]` + "\nhidden\n[[/collapsible]]")
	c = tree.Elements[0]
	if c.StartOpen {
		t.Fatal("folded=true should start closed")
	}
	if !c.ShowTop || !c.ShowBottom {
		t.Fatalf("hideLocation=both should show both controls, got %+v", c)
	}
}

func TestBlockCollapsibleMalformedFoldedWarns(t *testing.T) {
	_, warnings := parse(t, `[[collapsible folded="sideways"]]`+"\nx\n[[/collapsible]]")
	if len(warnings) == 0 {
		t.Fatal("expected a warning for a malformed folded argument")
	}
}

func TestBlockModuleCSSCollectsStyles(t *testing.T) {
	tree, warnings := parse(t, "[[module CSS]]\nbody { color: red; }\n[[/module]]")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(tree.Elements) != 1 || tree.Elements[0].Kind != ast.ENull {
		t.Fatalf("CSS module should emit only a Null element, got %+v", tree.Elements)
	}
	if len(tree.Styles) != 1 || !strings.Contains(tree.Styles[0], "color: red") {
		t.Fatalf("got styles %+v", tree.Styles)
	}
}

func TestBlockModuleBacklinksReadsPage(t *testing.T) {
	tree, _ := parse(t, `[[module Backlinks page="some-page"]]`)
	m := tree.Elements[0]
	if m.Kind != ast.EModule || m.ModuleData.Kind != ast.ModuleBacklinks || m.ModuleData.Page != "some-page" {
		t.Fatalf("got %+v", m)
	}
}

func TestBlockModuleUnknownWarnsNoSuchModule(t *testing.T) {
	_, warnings := parse(t, "[[module frobnicate]]")
	found := false
	for _, w := range warnings {
		if w.Kind == ast.WarnNoSuchModule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a NoSuchModule warning, got %v", warnings)
	}
}

func TestBlockFootnoteIsInlineAndFlat(t *testing.T) {
	tree, _ := parse(t, "text[[footnote]]a note[[/footnote]] more")
	var footnote *ast.Element
	for i := range tree.Elements {
		if tree.Elements[i].Kind == ast.EContainer && tree.Elements[i].ContainerKind == ast.CFootnote {
			footnote = &tree.Elements[i]
		}
	}
	if footnote == nil {
		t.Fatalf("expected a footnote container, got %+v", tree.Elements)
	}
}

func TestBlockFootnoteBlockIsSelfClosing(t *testing.T) {
	tree, warnings := parse(t, "[[footnoteblock]]")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(tree.Elements) != 1 || tree.Elements[0].Kind != ast.EFootnoteBlock {
		t.Fatalf("got %+v", tree.Elements)
	}
}

func TestBlockSizeSetsFontSizeStyle(t *testing.T) {
	tree, _ := parse(t, "[[size 150%]]big[[/size]]")
	el := tree.Elements[0]
	if el.Kind != ast.EStyledContainer || el.ContainerKind != ast.CSpan {
		t.Fatalf("got %+v", el)
	}
	if el.Style == nil || *el.Style != "font-size: 150%" {
		t.Fatalf("got style=%v", el.Style)
	}
}

func TestBlockUnknownNameFallsBackToText(t *testing.T) {
	tree, _ := parse(t, "[[nonexistent]]")
	want := []ast.Element{ast.Text("[["), ast.Text("nonexistent"), ast.Text("]]")}
	if !reflect.DeepEqual(tree.Elements, want) {
		t.Fatalf("expected text fallback %+v, got %+v", want, tree.Elements)
	}
}

func TestBlockMissingCloseTagWarns(t *testing.T) {
	_, warnings := parse(t, "[[div]]\nunterminated")
	found := false
	for _, w := range warnings {
		if w.Kind == ast.WarnBlockExpectedEnd {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BlockExpectedEnd, got %v", warnings)
	}
}
