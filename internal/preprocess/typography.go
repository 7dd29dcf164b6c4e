package preprocess

import (
	"regexp"
	"strings"
)

// Typographic substitution patterns, applied after comment removal so
// "--" inside a stripped comment is never mistaken for an em-dash
// candidate (spec.md §4.1). Order matters: the double-quote pattern
// must run before the single-quote pattern since both can start with
// a backtick.
var (
	doubleCurlyQuote = regexp.MustCompile("(?s)``(.*?)''")
	lowDoubleQuote   = regexp.MustCompile("(?s),,(.*?)''")
	singleCurlyQuote = regexp.MustCompile("(?s)`(.*?)'")
	ellipsisDotted   = regexp.MustCompile(`\. \. \.`)
)

func typography(text string) string {
	text = doubleCurlyQuote.ReplaceAllString(text, "“$1”")
	text = lowDoubleQuote.ReplaceAllString(text, "„$1”")
	text = singleCurlyQuote.ReplaceAllString(text, "‘$1’")

	text = strings.ReplaceAll(text, "<<", "«")
	text = strings.ReplaceAll(text, ">>", "»")

	text = ellipsisDotted.ReplaceAllString(text, "…")
	text = strings.ReplaceAll(text, "...", "…")

	return text
}
