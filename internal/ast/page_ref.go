package ast

// PageRef identifies includable content: an optional site and a page
// name. Site is empty for same-site references ("page" rather than
// ":site:page").
type PageRef struct {
	Site string
	Page string
}

// String renders the ref the way it would have appeared in source,
// used by DebugIncluder and by no-such-include fallback text.
func (r PageRef) String() string {
	if r.Site == "" {
		return r.Page
	}
	return ":" + r.Site + ":" + r.Page
}

// IncludeRef is a parsed [[include ...]] directive: the page it
// references plus whatever key=value variables followed it. Variables
// are substituted into the fetched body via "{$name}" placeholders
// before splicing, per SPEC_FULL's include-variable-substitution
// supplement (grounded on original_source/src/include/mod.rs).
type IncludeRef struct {
	Page      PageRef
	Variables map[string]string
}
