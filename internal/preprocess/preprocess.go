// Package preprocess implements the first normalization pass of the
// wikitext pipeline (spec.md §4.1): comment stripping, line-ending
// normalization, whitespace collapsing, line continuation, tab
// expansion, blank-line collapsing, trimming, and typographic
// substitution. It never fails.
package preprocess

import (
	"regexp"
	"strings"
)

// commentPattern matches [!-- ... --] blocks. (?s) makes "." match
// newlines; the "?" after ".*" keeps the match non-greedy so adjacent
// comments don't get merged into one. Go's RE2 engine has no
// backreferences, but none are needed for this grammar.
var commentPattern = regexp.MustCompile(`(?s)\[!--.*?--\]`)

var threeOrMoreNewlines = regexp.MustCompile(`\n[ \t]*\n[ \t]*(\n[ \t]*)+`)

// Preprocess applies every transformation of spec.md §4.1, in order,
// and returns the normalized text. It is idempotent: Preprocess(
// Preprocess(s)) == Preprocess(s).
func Preprocess(text string) string {
	// 1. Strip comments.
	text = commentPattern.ReplaceAllString(text, "")

	// 2. Normalize line endings.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// 3. Empty whitespace-only lines.
	text = blankWhitespaceOnlyLines(text)

	// 4. Join backslash-continued lines.
	text = strings.ReplaceAll(text, "\\\n", "")

	// 5. Expand tabs.
	text = strings.ReplaceAll(text, "\t", "    ")

	// 6. Collapse 3+ newlines (with optional intervening whitespace)
	// into exactly two.
	text = threeOrMoreNewlines.ReplaceAllString(text, "\n\n")

	// 7. Trim leading/trailing newlines from the whole text.
	text = strings.Trim(text, "\n")

	// 8. Typography.
	text = typography(text)

	return text
}

func blankWhitespaceOnlyLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
