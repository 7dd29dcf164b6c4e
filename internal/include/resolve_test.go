package include

import (
	"errors"
	"reflect"
	"testing"

	"wikitext/internal/ast"
)

type fakeIncluder struct {
	pages map[string]string
	err   error
}

func (f fakeIncluder) IncludePages(refs []ast.IncludeRef) (map[ast.PageRef]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[ast.PageRef]string)
	for _, ref := range refs {
		if body, ok := f.pages[ref.Page.Page]; ok {
			out[ref.Page] = body
		}
	}
	return out, nil
}

func (f fakeIncluder) NoSuchInclude(ref ast.PageRef) string {
	return "[missing:" + ref.Page + "]"
}

func TestResolveNoDirectives(t *testing.T) {
	text, refs, err := Resolve("plain text, no includes", fakeIncluder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "plain text, no includes" {
		t.Fatalf("text changed: %q", text)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %v", refs)
	}
}

func TestResolveSubstitutesBody(t *testing.T) {
	includer := fakeIncluder{pages: map[string]string{"side-bar": "SIDEBAR CONTENT"}}
	text, refs, err := Resolve("before [[include side-bar]] after", includer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "before SIDEBAR CONTENT after" {
		t.Fatalf("got %q", text)
	}
	if !reflect.DeepEqual(refs, []ast.PageRef{{Page: "side-bar"}}) {
		t.Fatalf("got refs %v", refs)
	}
}

func TestResolveMissingPageUsesFallback(t *testing.T) {
	includer := fakeIncluder{pages: map[string]string{}}
	text, _, err := Resolve("[[include nope]]", includer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "[missing:nope]" {
		t.Fatalf("got %q", text)
	}
}

func TestResolveOrderMatchesSourceNotSubstitutionOrder(t *testing.T) {
	includer := fakeIncluder{pages: map[string]string{"a": "A", "b": "B"}}
	_, refs, err := Resolve("[[include b]] middle [[include a]]", includer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.PageRef{{Page: "b"}, {Page: "a"}}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("got %v, want %v", refs, want)
	}
}

func TestResolvePropagatesIncluderError(t *testing.T) {
	wantErr := errors.New("backend unavailable")
	_, _, err := Resolve("[[include a]]", fakeIncluder{err: wantErr})
	if err != wantErr {
		t.Fatalf("got err %v, want %v", err, wantErr)
	}
}

func TestResolveVariableSubstitution(t *testing.T) {
	includer := fakeIncluder{pages: map[string]string{"tmpl": "Hello, {$name}!"}}
	text, _, err := Resolve(`[[include tmpl | name=World]]`, includer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello, World!" {
		t.Fatalf("got %q", text)
	}
}

func TestResolveUnsetVariableLeftUntouched(t *testing.T) {
	includer := fakeIncluder{pages: map[string]string{"tmpl": "Hi {$missing}"}}
	text, _, err := Resolve("[[include tmpl]]", includer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hi {$missing}" {
		t.Fatalf("got %q", text)
	}
}

func TestResolveMalformedDirectiveLeftAsText(t *testing.T) {
	text, refs, err := Resolve("[[include |=bad]]", fakeIncluder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "[[include |=bad]]" {
		t.Fatalf("malformed directive should be left untouched, got %q", text)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no refs for a malformed directive, got %v", refs)
	}
}

func TestNullIncluder(t *testing.T) {
	text, _, err := Resolve("[[include anything]]", NullIncluder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Fatalf("got %q, want empty", text)
	}
}
