// Package include implements the include-resolution pre-pass of
// spec.md §4.2: scanning for [[include ...]] directives, resolving
// them through a pluggable Includer, and splicing the fetched bodies
// into the source text.
package include

import "wikitext/internal/ast"

// Includer is the single external collaborator the parsing core
// depends on (spec.md §4.7). It is a contract, not an implementation:
// callers supply their own page-source backend.
type Includer interface {
	// IncludePages fetches every referenced page in one round trip.
	// Pages with no content are simply absent from the result map,
	// not represented with an empty string (Resolve calls
	// NoSuchInclude for those).
	IncludePages(refs []ast.IncludeRef) (map[ast.PageRef]string, error)

	// NoSuchInclude returns fallback text for a page that
	// IncludePages did not return content for. Infallible.
	NoSuchInclude(ref ast.PageRef) string
}

// NullIncluder resolves every include to nothing: an empty fetch
// result and an empty fallback placeholder. Used by tests that only
// care about the rest of the pipeline.
type NullIncluder struct{}

func (NullIncluder) IncludePages(refs []ast.IncludeRef) (map[ast.PageRef]string, error) {
	return map[ast.PageRef]string{}, nil
}

func (NullIncluder) NoSuchInclude(ref ast.PageRef) string {
	return ""
}

// DebugIncluder resolves every include to the stringified ref, useful
// for tests asserting on include-site substitution without a real
// page-source backend.
type DebugIncluder struct{}

func (DebugIncluder) IncludePages(refs []ast.IncludeRef) (map[ast.PageRef]string, error) {
	result := make(map[ast.PageRef]string, len(refs))
	for _, ref := range refs {
		result[ref.Page] = ref.Page.String()
	}
	return result, nil
}

func (DebugIncluder) NoSuchInclude(ref ast.PageRef) string {
	return "[[include " + ref.String() + "]]"
}
