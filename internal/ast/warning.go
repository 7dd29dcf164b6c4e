package ast

// ParseWarningKind enumerates the non-fatal conditions the parser
// records while producing a tree. A warning never prevents a tree
// from being produced; it is a structured annotation on the output,
// per spec.md §3 and §7.
type ParseWarningKind uint8

const (
	WarnRecursionDepthExceeded ParseWarningKind = iota
	WarnNoRulesMatch
	WarnEndOfInput
	WarnRuleFailed
	WarnBlockExpectedLineBreak
	WarnBlockExpectedEnd
	WarnBlockMissingName
	WarnBlockMissingCloseBrackets
	WarnBlockMalformedArguments
	WarnNoSuchModule
	WarnModuleMissingName
)

var warningKindNames = map[ParseWarningKind]string{
	WarnRecursionDepthExceeded:    "recursion-depth-exceeded",
	WarnNoRulesMatch:              "no-rules-match",
	WarnEndOfInput:                "end-of-input",
	WarnRuleFailed:                "rule-failed",
	WarnBlockExpectedLineBreak:    "block-expected-line-break",
	WarnBlockExpectedEnd:          "block-expected-end",
	WarnBlockMissingName:          "block-missing-name",
	WarnBlockMissingCloseBrackets: "block-missing-close-brackets",
	WarnBlockMalformedArguments:   "block-malformed-arguments",
	WarnNoSuchModule:              "no-such-module",
	WarnModuleMissingName:         "module-missing-name",
}

func (k ParseWarningKind) String() string {
	if name, ok := warningKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseWarning is a structured, non-fatal annotation attached to a
// parse result. Warnings are append-only (spec.md §3 invariant (iv)):
// nothing in this package ever removes one once recorded.
type ParseWarning struct {
	TokenKind TokenKind
	RuleName  string
	Span      Span
	Kind      ParseWarningKind
}
