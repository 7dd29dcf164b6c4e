package parser

import (
	"strings"

	"wikitext/internal/ast"
	"wikitext/internal/parser/block"
)

// blockDispatchRule implements the block subsystem's head (spec.md
// §4.6): "[[" or "[[*", an optional leading space, a required name,
// then one of the four argument grammars before handing off to the
// block's own builder. An unrecognized name is an ordinary rule
// failure (falls through to text at the top level), since spec.md's
// NoSuchModule is specific to an unrecognized [[module ...]] sub-name,
// not an unrecognized block name.
func blockDispatchRule(p *Parser) (ast.Element, bool) {
	openerSpan := p.current().Span
	special := p.current().Kind == ast.TLeftBlockStar
	p.advance()
	skipWhitespace(p)

	if p.current().Kind != ast.TIdentifier {
		p.warn(ast.WarnBlockMissingName, "block", p.current().Span)
		return ast.Element{}, false
	}
	name := p.current().Slice
	// "_" lexes as its own token, so the div_/span_ variants arrive as
	// an identifier followed directly by "_".
	if next := p.peek(1); next.Kind == ast.TOther && next.Slice == "_" {
		p.advance()
		name += "_"
	}
	br, ok := block.Lookup(name)
	if !ok {
		return ast.Element{}, false
	}
	if special && !br.AcceptsSpecial {
		return ast.Element{}, false
	}
	p.advance()
	skipWhitespace(p)

	ruleName := "block-" + strings.ToLower(br.Name)

	switch strings.ToLower(br.Name) {
	case "div":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CDiv, true, false)
	case "div_":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CDiv, false, false)
	case "span":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CSpan, false, false)
	case "span_":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CSpan, false, true)
	case "del":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CDeletion, false, false)
	case "ins":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CInsertion, false, false)
	case "mark":
		return buildContainerBlock(p, br, ruleName, openerSpan, ast.CMark, false, false)
	case "code":
		return buildCode(p, br, ruleName, openerSpan)
	case "collapsible":
		return buildCollapsible(p, br, ruleName, openerSpan)
	case "module":
		return buildModule(p, br, ruleName, openerSpan)
	case "footnote":
		return buildFootnote(p, br, ruleName, openerSpan)
	case "footnoteblock":
		return buildFootnoteBlock(p, br, ruleName)
	case "size":
		return buildSize(p, br, ruleName, openerSpan)
	default:
		return ast.Element{}, false
	}
}

func skipWhitespace(p *Parser) {
	if p.current().Kind == ast.TWhitespace {
		p.advance()
	}
}

// parseHeadMap implements the head_map grammar: zero or more
// `key="value"` pairs (case-insensitive keys, last write wins),
// separated by whitespace, up to the closing "]]" (spec.md §4.6,
// §9). Any departure from that shape is BlockMalformedArguments.
func parseHeadMap(p *Parser, ruleName string) (*block.ArgMap, bool) {
	args := block.NewArgMap()
	for {
		skipWhitespace(p)
		if p.current().Kind == ast.TRightBlock {
			p.advance()
			return args, true
		}
		if p.current().Kind != ast.TIdentifier {
			p.warn(ast.WarnBlockMalformedArguments, ruleName, p.current().Span)
			return nil, false
		}
		key := p.current().Slice
		p.advance()
		skipWhitespace(p)
		if p.current().Kind != ast.TEquals {
			p.warn(ast.WarnBlockMalformedArguments, ruleName, p.current().Span)
			return nil, false
		}
		p.advance()
		skipWhitespace(p)
		if p.current().Kind != ast.TString {
			p.warn(ast.WarnBlockMalformedArguments, ruleName, p.current().Span)
			return nil, false
		}
		args.Set(key, block.DecodeStringEscapes(p.current().Slice))
		p.advance()
	}
}

// parseHeadValue implements head_value: everything between the block
// name and the closing "]]" taken as one raw slice, used by blocks
// like [[size]] whose single argument isn't a key="value" pair
// (spec.md §4.6).
func parseHeadValue(p *Parser, ruleName string) (string, bool) {
	var b strings.Builder
	for {
		if p.current().Kind == ast.TRightBlock {
			p.advance()
			return strings.TrimSpace(b.String()), true
		}
		if p.atEnd() || p.current().Kind == ast.TLineBreak || p.current().Kind == ast.TParagraphBreak {
			p.warn(ast.WarnBlockMissingCloseBrackets, ruleName, p.current().Span)
			return "", false
		}
		b.WriteString(p.current().Slice)
		p.advance()
	}
}

// parseHeadNone implements head_none: optional whitespace, then the
// required closing "]]", and nothing else.
func parseHeadNone(p *Parser, ruleName string) bool {
	skipWhitespace(p)
	if p.current().Kind != ast.TRightBlock {
		p.warn(ast.WarnBlockMissingCloseBrackets, ruleName, p.current().Span)
		return false
	}
	p.advance()
	return true
}

// parseHeadNameMap implements head_name_map: a required sub-name
// identifier, then the same key="value" pairs as head_map. Used only
// by [[module <name> ...]].
func parseHeadNameMap(p *Parser, ruleName string) (string, *block.ArgMap, bool) {
	if p.current().Kind != ast.TIdentifier {
		p.warn(ast.WarnModuleMissingName, ruleName, p.current().Span)
		return "", nil, false
	}
	subName := p.current().Slice
	p.advance()
	args, ok := parseHeadMap(p, ruleName)
	if !ok {
		return "", nil, false
	}
	return subName, args, true
}

// requireHeadLineBreak enforces that a newline-separated block's head
// ends its own line, per spec.md §4.6 "both the opening ]] and the
// closing [[/name]] lie on their own lines".
func requireHeadLineBreak(p *Parser, ruleName string) bool {
	if p.current().Kind != ast.TLineBreak {
		p.warn(ast.WarnBlockExpectedLineBreak, ruleName, p.current().Span)
		return false
	}
	p.advance()
	return true
}

// verifyEndBlock is verify_end_block_fn (spec.md §4.6): a speculative,
// non-committing-on-failure check for "[[/name]]" (preceded by a
// required line break on every iteration but the first, for
// newline-separated blocks), accepting any of the rule's AcceptsNames
// case-insensitively.
func verifyEndBlock(p *Parser, br block.Rule, first bool) bool {
	return p.saveEvaluate(func(p *Parser) bool {
		if br.NewlineSeparator && !first {
			if p.current().Kind != ast.TLineBreak {
				return false
			}
			p.advance()
		}
		if p.current().Kind != ast.TLeftBlockEnd {
			return false
		}
		p.advance()
		skipWhitespace(p)
		if p.current().Kind != ast.TIdentifier {
			return false
		}
		name := p.current().Slice
		if next := p.peek(1); next.Kind == ast.TOther && next.Slice == "_" {
			p.advance()
			name += "_"
		}
		matched := false
		for _, accepted := range br.AcceptsNames {
			if strings.EqualFold(accepted, name) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
		p.advance()
		skipWhitespace(p)
		if p.current().Kind != ast.TRightBlock {
			return false
		}
		p.advance()
		return true
	})
}

// getBodyElements collects child elements until verifyEndBlock
// succeeds, the recursion-bounded twin of get_body_text below. The
// caller decides paragraph gathering vs. flat stripping afterward.
// openerSpan is the block's own "[[name" span, attributed to the
// RecursionDepthExceeded warning if this body is the one that trips
// the bound.
func getBodyElements(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) ([]ast.Element, bool) {
	if !p.enterRecursion(ruleName, openerSpan) {
		return nil, false
	}
	defer p.exitRecursion()

	var elements []ast.Element
	first := true
	for {
		if p.recursionExceeded != nil {
			return nil, false
		}
		if verifyEndBlock(p, br, first) {
			return elements, true
		}
		if p.atEnd() {
			p.warn(ast.WarnBlockExpectedEnd, ruleName, p.current().Span)
			return nil, false
		}
		el, ok := p.consume()
		if !ok {
			return nil, false
		}
		if el.Kind != ast.ENull {
			elements = append(elements, el)
		}
		first = false
	}
}

// getBodyText collects the exact source text of a block's body
// without reparsing it (used by [[code]], whose contents are never
// treated as wikitext, and by [[module CSS]]'s stylesheet body).
func getBodyText(p *Parser, br block.Rule, ruleName string) (string, bool) {
	var b strings.Builder
	first := true
	for {
		if verifyEndBlock(p, br, first) {
			return b.String(), true
		}
		if p.atEnd() {
			p.warn(ast.WarnBlockExpectedEnd, ruleName, p.current().Span)
			return "", false
		}
		b.WriteString(p.current().Slice)
		p.advance()
		first = false
	}
}

func getOptionalPtr(args *block.ArgMap, key string) *string {
	if v, ok := args.Get(key); ok {
		return &v
	}
	return nil
}

// trimLineBreaks drops leading and trailing LineBreak children, the
// span_ variant's one behavioral difference from span beyond skipping
// paragraph wrapping (spec.md §4.6).
func trimLineBreaks(elements []ast.Element) []ast.Element {
	start := 0
	for start < len(elements) && elements[start].Kind == ast.ELineBreak {
		start++
	}
	end := len(elements)
	for end > start && elements[end-1].Kind == ast.ELineBreak {
		end--
	}
	return elements[start:end]
}

// buildContainerBlock implements div/div_/span/span_/del/ins/mark: all
// share the head_map{id,class,style} argument shape and differ only in
// ContainerKind, whether the body is paragraph-gathered, and whether
// leading/trailing line breaks are trimmed (spec.md §4.6).
func buildContainerBlock(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span, kind ast.ContainerKind, asParagraphs, trimBreaks bool) (ast.Element, bool) {
	args, ok := parseHeadMap(p, ruleName)
	if !ok {
		return ast.Element{}, false
	}
	if br.NewlineSeparator {
		if !requireHeadLineBreak(p, ruleName) {
			return ast.Element{}, false
		}
	}

	elements, ok := getBodyElements(p, br, ruleName, openerSpan)
	if !ok {
		return ast.Element{}, false
	}

	if asParagraphs {
		elements = gatherParagraphs(elements)
	} else {
		elements = stripMarkers(elements)
	}
	if trimBreaks {
		elements = trimLineBreaks(elements)
	}

	return ast.Element{
		Kind:          ast.EStyledContainer,
		ContainerKind: kind,
		Children:      elements,
		ID:            getOptionalPtr(args, "id"),
		Class:         getOptionalPtr(args, "class"),
		Style:         getOptionalPtr(args, "style"),
	}, true
}

// buildCode implements [[code type="..."]]...[[/code]]: the body is
// captured as raw text and never reparsed (spec.md §4.6).
func buildCode(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) (ast.Element, bool) {
	args, ok := parseHeadMap(p, ruleName)
	if !ok {
		return ast.Element{}, false
	}
	if !requireHeadLineBreak(p, ruleName) {
		return ast.Element{}, false
	}

	contents, ok := getBodyText(p, br, ruleName)
	if !ok {
		return ast.Element{}, false
	}

	return ast.Element{
		Kind:         ast.ECode,
		CodeContents: contents,
		CodeLanguage: getOptionalPtr(args, "type"),
	}, true
}

// buildCollapsible implements [[collapsible ...]], whose arguments
// control show/hide labels, initial open state, and which control
// links are rendered (spec.md §4.6).
func buildCollapsible(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) (ast.Element, bool) {
	args, ok := parseHeadMap(p, ruleName)
	if !ok {
		return ast.Element{}, false
	}
	if !requireHeadLineBreak(p, ruleName) {
		return ast.Element{}, false
	}

	startOpen := true
	if v, present := args.Get("folded"); present {
		folded, ok := block.ParseBoolean(v)
		if !ok {
			p.warn(ast.WarnBlockMalformedArguments, ruleName, p.current().Span)
			return ast.Element{}, false
		}
		startOpen = !folded
	}

	showTop, showBottom := true, false
	if v, present := args.Get("hidelocation"); present {
		st, sb, ok := block.HideLocation(v)
		if !ok {
			p.warn(ast.WarnBlockMalformedArguments, ruleName, p.current().Span)
			return ast.Element{}, false
		}
		showTop, showBottom = st, sb
	}

	elements, ok := getBodyElements(p, br, ruleName, openerSpan)
	if !ok {
		return ast.Element{}, false
	}
	elements = gatherParagraphs(elements)

	return ast.Element{
		Kind:       ast.ECollapsible,
		Children:   elements,
		StartOpen:  startOpen,
		ShowText:   getOptionalPtr(args, "show"),
		HideText:   getOptionalPtr(args, "hide"),
		ShowTop:    showTop,
		ShowBottom: showBottom,
		ID:         getOptionalPtr(args, "id"),
		Class:      getOptionalPtr(args, "class"),
		Style:      getOptionalPtr(args, "style"),
	}, true
}

func moduleKindFromName(name string) ast.ModuleKind {
	switch strings.ToLower(name) {
	case "css":
		return ast.ModuleCSS
	case "backlinks":
		return ast.ModuleBacklinks
	case "rate":
		return ast.ModuleRate
	case "mostrecentposts", "most-recent-posts":
		return ast.ModuleMostRecentPosts
	default:
		return ast.ModuleUnknown
	}
}

// buildModule implements [[module Name ...]] (spec.md §4.6, SPEC_FULL
// domain-stack section): CSS collects its body as a raw stylesheet and
// appends it to the tree's Styles, producing no visible element;
// Backlinks/Rate/MostRecentPosts are self-closing and read a page
// argument. An unrecognized sub-name is NoSuchModule.
func buildModule(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) (ast.Element, bool) {
	subName, args, ok := parseHeadNameMap(p, ruleName)
	if !ok {
		return ast.Element{}, false
	}

	kind := moduleKindFromName(subName)
	if kind == ast.ModuleUnknown {
		p.warn(ast.WarnNoSuchModule, ruleName, p.current().Span)
		return ast.Element{}, false
	}

	if kind == ast.ModuleCSS {
		if !requireHeadLineBreak(p, ruleName) {
			return ast.Element{}, false
		}
		text, ok := getBodyText(p, br, ruleName)
		if !ok {
			return ast.Element{}, false
		}
		p.styles = append(p.styles, text)
		return ast.Null(), true
	}

	page, _ := args.Get("page")
	return ast.Element{
		Kind:       ast.EModule,
		ModuleData: ast.Module{Kind: kind, Name: subName, Page: page},
	}, true
}

// buildFootnote implements the SPEC_FULL supplement
// [[footnote]]...[[/footnote]]: an inline, argument-free container
// whose body is gathered flat (footnotes don't paragraph-wrap).
func buildFootnote(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) (ast.Element, bool) {
	if !parseHeadNone(p, ruleName) {
		return ast.Element{}, false
	}
	elements, ok := getBodyElements(p, br, ruleName, openerSpan)
	if !ok {
		return ast.Element{}, false
	}
	return ast.Container(ast.CFootnote, stripMarkers(elements)), true
}

// buildSize implements the SPEC_FULL supplement [[size 120%]]...[[/size]]:
// the raw head value becomes a font-size inline style on a span-shaped
// container (spec.md §4.6's head_value example).
func buildSize(p *Parser, br block.Rule, ruleName string, openerSpan ast.Span) (ast.Element, bool) {
	value, ok := parseHeadValue(p, ruleName)
	if !ok {
		return ast.Element{}, false
	}
	elements, ok := getBodyElements(p, br, ruleName, openerSpan)
	if !ok {
		return ast.Element{}, false
	}
	elements = stripMarkers(elements)

	style := "font-size: " + value
	return ast.Element{
		Kind:          ast.EStyledContainer,
		ContainerKind: ast.CSpan,
		Children:      elements,
		Style:         &style,
	}, true
}

// buildFootnoteBlock implements the SPEC_FULL supplement
// [[footnoteblock]], self-closing with no body: it marks where the
// collected footnotes should render.
func buildFootnoteBlock(p *Parser, br block.Rule, ruleName string) (ast.Element, bool) {
	if !parseHeadNone(p, ruleName) {
		return ast.Element{}, false
	}
	return ast.Element{Kind: ast.EFootnoteBlock}, true
}
