package d2

import (
	"strconv"

	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/notion"
)

// ElementalWellMod is a combat style mod that generates or consumes
// elemental wells.
type ElementalWellMod struct {
	ID           string
	Name         string
	Element      Element
	ModType      ModType
	Cost         *int
	Description  string
	Footer       *string
	PageURL      *string
	ThumbnailURL *string

	fullDescription *string
}

func DecodeElementalWellMod(data []byte) (ElementalWellMod, error) {
	r, err := decodeRow("elemental well mod", data)
	if err != nil {
		return ElementalWellMod{}, err
	}
	w := ElementalWellMod{ID: r.id, PageURL: r.pageURL, ThumbnailURL: r.thumbnailURL}

	name, err := r.title(PropName)
	if err != nil {
		return ElementalWellMod{}, err
	}
	w.Name = notion.Flatten(name)
	if w.Element, err = selectValue(r, PropElement, Elements); err != nil {
		return ElementalWellMod{}, err
	}
	if w.ModType, err = selectValue(r, PropModType, ModTypes); err != nil {
		return ElementalWellMod{}, err
	}
	if w.Cost, err = r.optionalNumber(PropCost); err != nil {
		return ElementalWellMod{}, err
	}
	desc, err := r.richText(PropDesc)
	if err != nil {
		return ElementalWellMod{}, err
	}
	w.Description = notion.Flatten(desc)
	footer, err := r.optionalRichText(PropFooter)
	if err != nil {
		return ElementalWellMod{}, err
	}
	if text := notion.Flatten(footer); text != "" {
		w.Footer = &text
	}
	return w, nil
}

func (w *ElementalWellMod) Encode() map[string]any {
	footer := []notion.RichText{}
	if w.Footer != nil {
		footer = plainRuns(*w.Footer)
	}
	return encodeRow(w.ID, w.PageURL, w.ThumbnailURL, map[string]any{
		PropName:    titleProp(plainRuns(w.Name)),
		PropElement: selectProp(w.Element.String()),
		PropModType: selectProp(w.ModType.String()),
		PropCost:    numberProp(w.Cost),
		PropDesc:    richTextProp(plainRuns(w.Description)),
		PropFooter:  richTextProp(footer),
	})
}

// FullDescription is the description followed by the footer in a diff
// block. It is computed once per record.
func (w *ElementalWellMod) FullDescription() string {
	if w.fullDescription == nil {
		full := w.Description
		if w.Footer != nil {
			full += "\n\n" + notion.WrapDiff(*w.Footer)
		}
		w.fullDescription = &full
	}
	return *w.fullDescription
}

func (w *ElementalWellMod) Render() embed.Message {
	m := embed.Message{
		Title:        w.Name,
		Description:  w.FullDescription(),
		URL:          w.PageURL,
		ThumbnailURL: w.ThumbnailURL,
	}
	m.AddField("원소 유형", w.Element.String(), false).
		AddField("개조부품 유형", w.ModType.String(), false).
		AddField("개조부품 에너지 사용량", w.costText(), false).
		AddSourceField(w.PageURL)
	return m
}

func (w *ElementalWellMod) costText() string {
	if w.Cost == nil {
		return embed.DefaultText
	}
	return strconv.Itoa(*w.Cost)
}
