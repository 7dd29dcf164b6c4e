package include

import (
	"regexp"
	"strings"

	"wikitext/internal/ast"
)

// candidatePattern finds candidate [[include ...]] substrings. It is
// deliberately permissive (case-insensitive, dot matches newline, non-
// greedy up to the first "]]") the way spec.md §4.2 describes;
// anything that doesn't parse as a valid directive falls through to
// text at parse time rather than erroring here.
var candidatePattern = regexp.MustCompile(`(?is)\[\[\s*include\s+(.+?)\]\]`)

// Resolve scans text for [[include ...]] directives, fetches the
// referenced pages through includer in one bulk call, substitutes
// each range from last to first so earlier indices stay valid, and
// returns the substituted text plus the list of referenced pages in
// source order (spec.md §4.2, §8 "Include order").
func Resolve(text string, includer Includer) (string, []ast.PageRef, error) {
	matches := candidatePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil, nil
	}

	type candidate struct {
		start, end int // whole "[[include ...]]" span
		ref        ast.IncludeRef
	}

	var candidates []candidate
	var refsInOrder []ast.PageRef

	for _, m := range matches {
		wholeStart, wholeEnd := m[0], m[1]
		argsStart, argsEnd := m[2], m[3]
		ref, ok := parseIncludeArgs(text[argsStart:argsEnd])
		if !ok {
			// Malformed candidate: leave it untouched, it falls
			// through as literal text during parsing.
			continue
		}
		candidates = append(candidates, candidate{start: wholeStart, end: wholeEnd, ref: ref})
		refsInOrder = append(refsInOrder, ref.Page)
	}

	if len(candidates) == 0 {
		return text, nil, nil
	}

	refs := make([]ast.IncludeRef, len(candidates))
	for i, c := range candidates {
		refs[i] = c.ref
	}

	fetched, err := includer.IncludePages(refs)
	if err != nil {
		return "", nil, err
	}

	// Substitute last-to-first so earlier byte offsets stay valid.
	result := text
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		body, ok := fetched[c.ref.Page]
		if !ok {
			body = includer.NoSuchInclude(c.ref.Page)
		} else {
			body = substituteVariables(body, c.ref.Variables)
		}
		result = result[:c.start] + body + result[c.end:]
	}

	return result, refsInOrder, nil
}

// parseIncludeArgs parses "page_ref [| key=value | key=\"quoted\"]*"
// per spec.md §4.2.
func parseIncludeArgs(s string) (ast.IncludeRef, bool) {
	parts := strings.Split(s, "|")
	ref, ok := parsePageRef(parts[0])
	if !ok {
		return ast.IncludeRef{}, false
	}

	variables := make(map[string]string)
	for _, part := range parts[1:] {
		key, value, ok := parseKeyValue(part)
		if !ok {
			return ast.IncludeRef{}, false
		}
		variables[key] = value
	}

	return ast.IncludeRef{Page: ref, Variables: variables}, true
}

func parseKeyValue(s string) (key, value string, ok bool) {
	s = strings.TrimSpace(s)
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(s[:eq])
	if key == "" {
		return "", "", false
	}

	rawValue := strings.TrimSpace(s[eq+1:])
	if strings.HasPrefix(rawValue, `"`) {
		if !strings.HasSuffix(rawValue, `"`) || len(rawValue) < 2 {
			return "", "", false
		}
		return key, rawValue[1 : len(rawValue)-1], true
	}

	return key, rawValue, true
}

// variablePattern matches "{$name}" placeholders in a fetched body.
var variablePattern = regexp.MustCompile(`\{\$([A-Za-z0-9_]+)\}`)

// substituteVariables replaces "{$name}" placeholders with the
// include's supplied variables, per SPEC_FULL's supplement grounded
// on original_source/src/include/mod.rs. Unset placeholders are left
// untouched rather than replaced with empty string, so a missing
// variable degrades visibly instead of silently vanishing.
func substituteVariables(body string, variables map[string]string) string {
	if len(variables) == 0 {
		return body
	}
	return variablePattern.ReplaceAllStringFunc(body, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		if value, ok := variables[name]; ok {
			return value
		}
		return match
	})
}
