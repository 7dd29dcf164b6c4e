package ast

import (
	"encoding/json"
	"fmt"
)

// This file implements the wire JSON schema from spec.md §6: a tagged
// union keyed by "element", with kebab-case kind names. It is the
// mirror image of src/esbuild/parser/parser_json.go's
// recursive-descent-to-ast.Expr: instead of tokens producing a tree,
// a tree here produces tagged JSON, one level of recursion per
// Children slice.

type wireElement struct {
	Element string          `json:"element"`
	Data    json.RawMessage `json:"data"`
}

type wireContainerData struct {
	Type     string    `json:"type"`
	Elements []Element `json:"elements"`
}

type wireStyledContainerData struct {
	Type     string    `json:"type"`
	Elements []Element `json:"elements"`
	ID       *string   `json:"id,omitempty"`
	Class    *string   `json:"class,omitempty"`
	Style    *string   `json:"style,omitempty"`
}

type wireCollapsibleData struct {
	Elements   []Element `json:"elements"`
	StartOpen  bool      `json:"start_open"`
	ShowText   *string   `json:"show_text,omitempty"`
	HideText   *string   `json:"hide_text,omitempty"`
	ShowTop    bool      `json:"show_top"`
	ShowBottom bool      `json:"show_bottom"`
	ID         *string   `json:"id,omitempty"`
	Class      *string   `json:"class,omitempty"`
	Style      *string   `json:"style,omitempty"`
}

type wireCodeData struct {
	Contents string  `json:"contents"`
	Language *string `json:"language,omitempty"`
}

type wireLinkLabel struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

type wireLinkData struct {
	URL    string        `json:"url"`
	Label  wireLinkLabel `json:"label"`
	Anchor string        `json:"anchor"`
}

type wireModuleData struct {
	Name string `json:"name"`
	Page string `json:"page,omitempty"`
}

var labelKindNames = map[LabelKind]string{
	LabelText: "text",
	LabelUrl:  "url",
	LabelPage: "page",
}

var labelKindByName = func() map[string]LabelKind {
	m := make(map[string]LabelKind, len(labelKindNames))
	for k, v := range labelKindNames {
		m[v] = k
	}
	return m
}()

// MarshalJSON implements the tagged-union wire schema of spec.md §6.
func (e Element) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EText:
		return json.Marshal(wireElement{Element: "text", Data: mustJSON(e.Text)})

	case ERaw:
		return json.Marshal(wireElement{Element: "raw", Data: mustJSON(e.Text)})

	case EEmail:
		return json.Marshal(wireElement{Element: "email", Data: mustJSON(e.Text)})

	case ELineBreak:
		return json.Marshal(wireElement{Element: "line-break"})

	case EHorizontalRule:
		return json.Marshal(wireElement{Element: "horizontal-rule"})

	case ENull, EParagraphBreak:
		return json.Marshal(wireElement{Element: "null"})

	case EFootnoteBlock:
		return json.Marshal(wireElement{Element: "footnote-block"})

	case ELink:
		label := wireLinkLabel{Kind: labelKindNames[e.LinkLabel.Kind], Text: e.LinkLabel.Text}
		data := wireLinkData{URL: e.LinkURL, Label: label, Anchor: e.LinkAnchor.String()}
		return json.Marshal(wireElement{Element: "link", Data: mustJSON(data)})

	case EContainer:
		switch e.ContainerKind {
		case CSpan, CDiv, CMark, CInsertion, CDeletion, CColor:
			data := wireStyledContainerData{
				Type:     e.ContainerKind.String(),
				Elements: e.Children,
				ID:       e.ID,
				Class:    e.Class,
				Style:    e.Style,
			}
			return json.Marshal(wireElement{Element: "styled-container", Data: mustJSON(data)})
		case CHeader:
			data := struct {
				Type     string    `json:"type"`
				Level    int       `json:"level"`
				Elements []Element `json:"elements"`
			}{Type: "header", Level: e.HeaderLevel, Elements: e.Children}
			return json.Marshal(wireElement{Element: "container", Data: mustJSON(data)})
		default:
			data := wireContainerData{Type: e.ContainerKind.String(), Elements: e.Children}
			return json.Marshal(wireElement{Element: "container", Data: mustJSON(data)})
		}

	case EStyledContainer:
		data := wireStyledContainerData{
			Type:     e.ContainerKind.String(),
			Elements: e.Children,
			ID:       e.ID,
			Class:    e.Class,
			Style:    e.Style,
		}
		return json.Marshal(wireElement{Element: "styled-container", Data: mustJSON(data)})

	case ECollapsible:
		data := wireCollapsibleData{
			Elements:   e.Children,
			StartOpen:  e.StartOpen,
			ShowText:   e.ShowText,
			HideText:   e.HideText,
			ShowTop:    e.ShowTop,
			ShowBottom: e.ShowBottom,
			ID:         e.ID,
			Class:      e.Class,
			Style:      e.Style,
		}
		return json.Marshal(wireElement{Element: "collapsible", Data: mustJSON(data)})

	case ECode:
		data := wireCodeData{Contents: e.CodeContents, Language: e.CodeLanguage}
		return json.Marshal(wireElement{Element: "code", Data: mustJSON(data)})

	case EModule:
		data := wireModuleData{Name: e.ModuleData.Kind.String(), Page: e.ModuleData.Page}
		if e.ModuleData.Kind == ModuleUnknown {
			data.Name = e.ModuleData.Name
		}
		return json.Marshal(wireElement{Element: "module", Data: mustJSON(data)})

	default:
		return nil, fmt.Errorf("ast: cannot marshal unknown element kind %d", e.Kind)
	}
}

// UnmarshalJSON is the inverse of MarshalJSON, used by the round-trip
// property test in spec.md §8.
func (e *Element) UnmarshalJSON(b []byte) error {
	var w wireElement
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	switch w.Element {
	case "text":
		var s string
		if err := json.Unmarshal(w.Data, &s); err != nil {
			return err
		}
		*e = Text(s)
	case "raw":
		var s string
		if err := json.Unmarshal(w.Data, &s); err != nil {
			return err
		}
		*e = Raw(s)
	case "email":
		var s string
		if err := json.Unmarshal(w.Data, &s); err != nil {
			return err
		}
		*e = Element{Kind: EEmail, Text: s}
	case "line-break":
		*e = Element{Kind: ELineBreak}
	case "horizontal-rule":
		*e = Element{Kind: EHorizontalRule}
	case "null":
		*e = Element{Kind: ENull}
	case "footnote-block":
		*e = Element{Kind: EFootnoteBlock}
	case "link":
		var data wireLinkData
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return err
		}
		anchor := AnchorSame
		if data.Anchor == "new-tab" {
			anchor = AnchorNewTab
		}
		*e = Element{
			Kind:       ELink,
			LinkURL:    data.URL,
			LinkLabel:  Label{Kind: labelKindByName[data.Label.Kind], Text: data.Label.Text},
			LinkAnchor: anchor,
		}
	case "container":
		var peek struct {
			Type     string          `json:"type"`
			Level    int             `json:"level"`
			Elements json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(w.Data, &peek); err != nil {
			return err
		}
		var children []Element
		if err := json.Unmarshal(peek.Elements, &children); err != nil {
			return err
		}
		if peek.Type == "header" {
			*e = Header(peek.Level, children)
			return nil
		}
		*e = Container(containerKindByName[peek.Type], children)
	case "styled-container":
		var data wireStyledContainerData
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return err
		}
		*e = Element{
			Kind:          EStyledContainer,
			ContainerKind: containerKindByName[data.Type],
			Children:      data.Elements,
			ID:            data.ID,
			Class:         data.Class,
			Style:         data.Style,
		}
	case "collapsible":
		var data wireCollapsibleData
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return err
		}
		*e = Element{
			Kind:       ECollapsible,
			Children:   data.Elements,
			StartOpen:  data.StartOpen,
			ShowText:   data.ShowText,
			HideText:   data.HideText,
			ShowTop:    data.ShowTop,
			ShowBottom: data.ShowBottom,
			ID:         data.ID,
			Class:      data.Class,
			Style:      data.Style,
		}
	case "code":
		var data wireCodeData
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return err
		}
		*e = Element{Kind: ECode, CodeContents: data.Contents, CodeLanguage: data.Language}
	case "module":
		var data wireModuleData
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return err
		}
		kind, ok := moduleKindByName[data.Name]
		if !ok {
			kind = ModuleUnknown
		}
		*e = Element{Kind: EModule, ModuleData: Module{Kind: kind, Name: data.Name, Page: data.Page}}
	default:
		return fmt.Errorf("ast: unknown wire element %q", w.Element)
	}
	return nil
}

var containerKindByName = func() map[string]ContainerKind {
	m := make(map[string]ContainerKind, len(containerKindNames))
	for k, v := range containerKindNames {
		m[v] = k
	}
	return m
}()

var moduleKindByName = func() map[string]ModuleKind {
	m := make(map[string]ModuleKind, len(moduleKindNames))
	for k, v := range moduleKindNames {
		m[v] = k
	}
	return m
}()

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// MarshalJSON implements the warning wire schema of spec.md §6.
func (w ParseWarning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Token string   `json:"token"`
		Rule  string   `json:"rule"`
		Span  [2]int32 `json:"span"`
		Kind  string   `json:"kind"`
	}{
		Token: w.TokenKind.String(),
		Rule:  w.RuleName,
		Span:  [2]int32{w.Span.Start, w.Span.End},
		Kind:  w.Kind.String(),
	})
}
