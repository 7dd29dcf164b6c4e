package block

import "strings"

// ArgMode selects which of the three head-argument grammars a block
// uses (spec.md §4.6).
type ArgMode uint8

const (
	ArgHeadMap ArgMode = iota
	ArgHeadValue
	ArgHeadNone
	ArgHeadNameMap
)

// Rule is a block rule's static shape: everything about a block name
// that doesn't depend on parser state. The actual parse_fn lives in
// internal/parser/blocks.go, keyed by the same Name, since it needs
// the parser's collection primitives.
type Rule struct {
	Name             string
	AcceptsNames     []string
	AcceptsSpecial   bool
	NewlineSeparator bool
	ArgMode          ArgMode
	HasBody          bool
}

var registry = buildRegistry()

func buildRegistry() map[string]Rule {
	m := make(map[string]Rule)
	add := func(r Rule) {
		if len(r.AcceptsNames) == 0 {
			r.AcceptsNames = []string{r.Name}
		}
		m[strings.ToLower(r.Name)] = r
	}

	add(Rule{Name: "div", NewlineSeparator: true, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "div_", NewlineSeparator: true, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "span", NewlineSeparator: false, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "span_", NewlineSeparator: false, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "del", NewlineSeparator: false, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "ins", NewlineSeparator: false, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "mark", NewlineSeparator: false, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "code", NewlineSeparator: true, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "collapsible", NewlineSeparator: true, ArgMode: ArgHeadMap, HasBody: true})
	add(Rule{Name: "module", AcceptsSpecial: true, NewlineSeparator: true, ArgMode: ArgHeadNameMap, HasBody: true})

	// SPEC_FULL supplement, grounded on
	// original_source/src/parse/rule/impls/block/blocks/footnote.rs.
	add(Rule{Name: "footnote", NewlineSeparator: false, ArgMode: ArgHeadNone, HasBody: true})
	add(Rule{Name: "footnoteblock", NewlineSeparator: false, ArgMode: ArgHeadNone, HasBody: false})

	// SPEC_FULL supplement (spec.md §4.6's head_value example): the
	// only block rule using ArgHeadValue instead of a key="value" map.
	add(Rule{Name: "size", NewlineSeparator: false, ArgMode: ArgHeadValue, HasBody: true})

	return m
}

// Lookup finds a block rule by name, case-insensitively.
func Lookup(name string) (Rule, bool) {
	r, ok := registry[strings.ToLower(name)]
	return r, ok
}
