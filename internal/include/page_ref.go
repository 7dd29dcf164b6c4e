package include

import (
	"strings"
	"wikitext/internal/ast"
)

// parsePageRef parses ":site:page" or "page" syntax (spec.md §4.2),
// returning the ref with its page name normalized.
func parsePageRef(s string) (ast.PageRef, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ast.PageRef{}, false
	}

	var site, page string
	if strings.HasPrefix(s, ":") {
		rest := s[1:]
		idx := strings.IndexByte(rest, ':')
		if idx < 0 {
			return ast.PageRef{}, false
		}
		site = rest[:idx]
		page = rest[idx+1:]
		if site == "" || page == "" {
			return ast.PageRef{}, false
		}
	} else {
		page = s
	}

	return ast.PageRef{Site: site, Page: normalizeSlug(page)}, true
}

// isAlreadySlug reports whether s is already in normalized form (an
// optional leading "_", then lowercase alphanumeric runs joined by
// single dashes), letting normalizeSlug skip the full rewrite
// (spec.md §9).
func isAlreadySlug(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '_' {
		i++
	}
	if i == len(s) {
		return false
	}
	wasDash := false
	sawAlnum := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			sawAlnum = true
			wasDash = false
		case c == '-':
			if wasDash || !sawAlnum {
				return false
			}
			wasDash = true
			sawAlnum = false
		default:
			return false
		}
	}
	return sawAlnum
}

// normalizeSlug lowercases, maps non-alphanumeric runs to single
// dashes, and trims leading/trailing dashes, per spec.md §4.2 and §9.
func normalizeSlug(s string) string {
	if isAlreadySlug(s) {
		return s
	}

	var b strings.Builder
	lastWasDash := true // suppresses a leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteByte('-')
				lastWasDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
