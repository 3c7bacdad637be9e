// Package d2 projects Destiny 2 reference rows stored in Notion databases
// into typed records, and renders them as messages.
package d2

import (
	"github.com/lox/d2wiki/internal/notion"
	"github.com/lox/d2wiki/internal/vocab"
)

// Property names of the source databases.
const (
	PropName       = "이름"
	PropDesc       = "설명"
	PropExoticPerk = "경이 특성"
	PropClass      = "직업"
	PropArmorSlot  = "부위"
	PropElement    = "원소"
	PropModType    = "분류"
	PropCost       = "에너지"
	PropFooter     = "각주"
	PropCategory   = "무기 종류"
	PropWeaponSlot = "슬롯"
	PropAmmo       = "탄약"
)

// row is the part of a page every record carries.
type row struct {
	f            notion.Fields
	id           string
	pageURL      *string
	thumbnailURL *string
}

func decodeRow(entity string, data []byte) (row, error) {
	f := notion.NewFields(entity, data)
	id, err := f.String("id")
	if err != nil {
		return row{}, err
	}
	pageURL, err := f.OptionalString("url")
	if err != nil {
		return row{}, err
	}
	// An icon kind we do not know only costs the thumbnail.
	icon, err := notion.DecodeIcon(f, "icon")
	if err != nil && !vocab.IsUnknownValue(err) {
		return row{}, err
	}
	return row{f: f, id: id, pageURL: pageURL, thumbnailURL: notion.IconURL(icon)}, nil
}

func (r row) title(name string) ([]notion.RichText, error) {
	return notion.DecodeRichTextArray(r.f, "properties", name, "title")
}

func (r row) richText(name string) ([]notion.RichText, error) {
	return notion.DecodeRichTextArray(r.f, "properties", name, "rich_text")
}

// optionalRichText treats a missing property like an empty one.
func (r row) optionalRichText(name string) ([]notion.RichText, error) {
	if !r.f.Has("properties", name, "rich_text") {
		return nil, nil
	}
	return r.richText(name)
}

// optionalNumber reads a number cell; an empty cell is nil.
func (r row) optionalNumber(name string) (*int, error) {
	if !r.f.Has("properties", name, "number") {
		return nil, nil
	}
	n, err := r.f.Int("properties", name, "number")
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func selectValue[T comparable](r row, name string, v *vocab.Vocabulary[T]) (T, error) {
	label, err := r.f.String("properties", name, "select", "name")
	if err != nil {
		var zero T
		return zero, err
	}
	return v.Parse(label)
}

func optionalSelect[T comparable](r row, name string, v *vocab.Vocabulary[T]) (*T, error) {
	label, err := r.f.OptionalString("properties", name, "select", "name")
	if err != nil || label == nil {
		return nil, err
	}
	tag, err := v.Parse(*label)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func encodeRow(id string, pageURL, thumbnailURL *string, props map[string]any) map[string]any {
	obj := map[string]any{
		"object":     "page",
		"id":         id,
		"icon":       nil,
		"properties": props,
	}
	if pageURL != nil {
		obj["url"] = *pageURL
	}
	if thumbnailURL != nil {
		obj["icon"] = map[string]any{"type": "external", "external": map[string]any{"url": *thumbnailURL}}
	}
	return obj
}

func titleProp(runs []notion.RichText) map[string]any {
	return map[string]any{"type": "title", "title": notion.EncodeRichTextArray(runs)}
}

func richTextProp(runs []notion.RichText) map[string]any {
	return map[string]any{"type": "rich_text", "rich_text": notion.EncodeRichTextArray(runs)}
}

func selectProp(label string) map[string]any {
	return map[string]any{"type": "select", "select": map[string]any{"name": label}}
}

func numberProp(n *int) map[string]any {
	if n == nil {
		return map[string]any{"type": "number", "number": nil}
	}
	return map[string]any{"type": "number", "number": *n}
}

// plainRuns is the run sequence for a plain string; empty strings have none.
func plainRuns(s string) []notion.RichText {
	if s == "" {
		return []notion.RichText{}
	}
	return []notion.RichText{notion.NewText(s)}
}
