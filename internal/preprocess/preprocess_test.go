package preprocess

import "testing"

func TestPreprocessScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips comment", "single [!-- stuff here --] comment", "single  comment"},
		{"crlf normalized", "a\r\nb\r\nc", "a\nb\nc"},
		{"lone cr normalized", "a\rb", "a\nb"},
		{"whitespace-only line blanked", "a\n   \nb", "a\n\nb"},
		{"backslash continuation joined", "a\\\nb", "ab"},
		{"tabs expanded", "a\tb", "a    b"},
		{"three newlines collapse to two", "a\n\n\nb", "a\n\nb"},
		{"many blank lines collapse to two", "a\n\n\n\n\n\nb", "a\n\nb"},
		{"leading and trailing newlines trimmed", "\n\na\n\n", "a"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Preprocess(c.in)
			if got != c.want {
				t.Fatalf("Preprocess(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestPreprocessIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a\r\n\r\n\r\nb",
		"[!-- c1 --][!-- c2 --]text",
		"line\\\ncontinued\ttabbed",
		"\n\n\nleading and trailing\n\n\n",
	}
	for _, in := range inputs {
		once := Preprocess(in)
		twice := Preprocess(once)
		if once != twice {
			t.Fatalf("Preprocess not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestPreprocessCommentDoesNotMergeAdjacent(t *testing.T) {
	got := Preprocess("[!--a--][!--b--]")
	if got != "" {
		t.Fatalf("adjacent comments should both be stripped independently, got %q", got)
	}
}
