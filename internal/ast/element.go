package ast

// ElementKind is the closed set of AST node variants. Element is
// implemented as a single struct with a Kind discriminant (rather than
// one Go type per variant behind an interface) because every consumer
// that matters here — the block-body collector, the JSON wire encoder,
// paragraph gathering — needs to switch exhaustively on kind anyway,
// and a closed variant set documented in spec.md §3 is exactly the
// case where an open interface buys nothing but indirection.
type ElementKind uint8

const (
	// Leaf variants
	EText ElementKind = iota
	ERaw
	EEmail
	ELineBreak
	EHorizontalRule
	ENull

	// Reference variant
	ELink

	// Recursive container variants (ContainerKind distinguishes them)
	EContainer

	// Styled container variants (ContainerKind distinguishes them)
	EStyledContainer

	ECollapsible
	ECode
	EModule

	// SPEC_FULL supplement: footnote block marker, emitted by the
	// self-closing [[footnoteblock]] block.
	EFootnoteBlock

	// EParagraphBreak is an internal marker the paragraph-break rule
	// produces so paragraph gathering knows where to split a run of
	// elements into Paragraph containers (spec.md §4.4, §4.5 "\n\n+").
	// It never survives into a finished tree: paragraph gathering, flat
	// (non-paragraph) emission and container collection strip it, and
	// the top-level loop drops it, so it has no wire representation of
	// its own (the encoder writes a stray one as "null").
	EParagraphBreak
)

// ParagraphBreak constructs the internal paragraph-break marker.
func ParagraphBreak() Element { return Element{Kind: EParagraphBreak} }

// ContainerKind distinguishes the plain Container and StyledContainer
// variants from each other.
type ContainerKind uint8

const (
	CParagraph ContainerKind = iota
	CBold
	CItalics
	CUnderline
	CSuperscript
	CSubscript
	CStrikethrough
	CMonospace
	CHeader

	CSpan
	CDiv
	CMark
	CInsertion
	CDeletion
	CColor

	// SPEC_FULL supplement: table rows/cells, modeled as container
	// kinds so they reuse collect_container and paragraph gathering
	// the same way every other inline container does.
	CTableRow
	CTableCell

	// SPEC_FULL supplement: [[footnote]]...[[/footnote]] body,
	// collected the same way as any other block body.
	CFootnote
)

var containerKindNames = map[ContainerKind]string{
	CParagraph:     "paragraph",
	CBold:          "bold",
	CItalics:       "italics",
	CUnderline:     "underline",
	CSuperscript:   "superscript",
	CSubscript:     "subscript",
	CStrikethrough: "strikethrough",
	CMonospace:     "monospace",
	CHeader:        "header",
	CSpan:          "span",
	CDiv:           "div",
	CMark:          "mark",
	CInsertion:     "insertion",
	CDeletion:      "deletion",
	CColor:         "color",
	CTableRow:      "table-row",
	CTableCell:     "table-cell",
	CFootnote:      "footnote",
}

func (k ContainerKind) String() string {
	if name, ok := containerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// LabelKind distinguishes the three ways a Link's label may be
// derived, per spec.md §3.
type LabelKind uint8

const (
	LabelText LabelKind = iota
	LabelUrl
	LabelPage
)

// Label is a Link's label: either literal text, or a marker saying
// "use the URL" / "use the target page name" at render time.
type Label struct {
	Kind LabelKind
	Text string // only meaningful when Kind == LabelText
}

// AnchorTarget says whether a Link opens in the same tab or a new one.
type AnchorTarget uint8

const (
	AnchorSame AnchorTarget = iota
	AnchorNewTab
)

func (a AnchorTarget) String() string {
	if a == AnchorNewTab {
		return "new-tab"
	}
	return "same"
}

// Module distinguishes the known [[module ...]] variants.
type ModuleKind uint8

const (
	ModuleCSS ModuleKind = iota
	ModuleBacklinks
	// SPEC_FULL supplement: two more modules pulled in from
	// original_source/src/parse/rule/impls/block/blocks/module/rule.rs
	ModuleRate
	ModuleMostRecentPosts
	ModuleUnknown
)

var moduleKindNames = map[ModuleKind]string{
	ModuleCSS:             "css",
	ModuleBacklinks:       "backlinks",
	ModuleRate:            "rate",
	ModuleMostRecentPosts: "most-recent-posts",
	ModuleUnknown:         "unknown",
}

func (k ModuleKind) String() string {
	if name, ok := moduleKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Module holds the payload of a [[module ...]] block. Which fields
// are meaningful depends on Kind.
type Module struct {
	Kind ModuleKind
	Name string // raw sub-name as written, for ModuleUnknown reporting
	Page string // used by Backlinks, Rate, MostRecentPosts
}

// Element is a single AST node. Exactly one group of fields is
// meaningful depending on Kind; see the accessors below for the
// documented contract.
type Element struct {
	Kind ElementKind

	// EText, ERaw, EEmail
	Text string

	// ELink
	LinkURL    string
	LinkLabel  Label
	LinkAnchor AnchorTarget

	// EContainer, EStyledContainer, ECollapsible
	ContainerKind ContainerKind
	Children      []Element

	// EContainer Header level (1..6); zero for every other kind
	HeaderLevel int

	// EStyledContainer, ECollapsible
	ID    *string
	Class *string
	Style *string

	// ECollapsible
	StartOpen  bool
	ShowText   *string
	HideText   *string
	ShowTop    bool
	ShowBottom bool

	// ECode
	CodeContents string
	CodeLanguage *string

	// EModule
	ModuleData Module
}

// Text constructs a leaf Text element.
func Text(s string) Element { return Element{Kind: EText, Text: s} }

// Raw constructs a leaf Raw element.
func Raw(s string) Element { return Element{Kind: ERaw, Text: s} }

// Null constructs the Null placeholder element emitted by rules (like
// comments) that consume input but produce nothing visible. Null
// children are collapsed away during block-body collection, per
// spec.md §3 invariant (v).
func Null() Element { return Element{Kind: ENull} }

// Container constructs a recursive Container element.
func Container(kind ContainerKind, children []Element) Element {
	return Element{Kind: EContainer, ContainerKind: kind, Children: children}
}

// Header constructs a Header container (level 1..6).
func Header(level int, children []Element) Element {
	return Element{Kind: EContainer, ContainerKind: CHeader, HeaderLevel: level, Children: children}
}

// SyntaxTree is the top-level parse result: a flat list of elements
// plus any CSS collected from [[module CSS]] blocks encountered while
// parsing.
type SyntaxTree struct {
	Elements []Element
	Styles   []string
}
