// Package wikitext is the library surface over the pipeline
// (spec.md §6): Include, Preprocess, Tokenize and Parse each implement
// one pass; ParseAll composes all four for the common case of "I have
// raw source and an includer, give me a tree."
package wikitext

import (
	"wikitext/internal/ast"
	"wikitext/internal/include"
	"wikitext/internal/lexer"
	"wikitext/internal/parser"
	"wikitext/internal/preprocess"
)

// Includer is re-exported so callers never need to import
// internal/include directly to implement it.
type Includer = include.Includer

var (
	NullIncluder  = include.NullIncluder{}
	DebugIncluder = include.DebugIncluder{}
)

// Include resolves every [[include ...]] directive in text against
// includer, returning the substituted text and the page refs in the
// order they appeared in source (spec.md §4.2, §6).
func Include(text string, includer Includer) (string, []ast.PageRef, error) {
	return include.Resolve(text, includer)
}

// Preprocess applies spec.md §4.1's normalization pass.
func Preprocess(text string) string {
	return preprocess.Preprocess(text)
}

// Tokenize lexes already-preprocessed text into a flat token sequence.
func Tokenize(text string) []ast.ExtractedToken {
	return lexer.Tokenize(text)
}

// Parse walks tokens produced over source into a tree plus warnings.
func Parse(tokens []ast.ExtractedToken, source string) (ast.SyntaxTree, []ast.ParseWarning) {
	return parser.Parse(tokens, source)
}

// ParseAll composes every pass: include resolution, preprocessing,
// tokenizing and parsing, in that order (spec.md §6 "parse_all").
func ParseAll(text string, includer Includer) (ast.SyntaxTree, []ast.ParseWarning, error) {
	resolved, _, err := include.Resolve(text, includer)
	if err != nil {
		return ast.SyntaxTree{}, nil, err
	}

	normalized := preprocess.Preprocess(resolved)
	tokens := lexer.Tokenize(normalized)
	tree, warnings := parser.Parse(tokens, normalized)
	return tree, warnings, nil
}
