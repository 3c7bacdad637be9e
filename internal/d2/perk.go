package d2

import (
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/notion"
)

// Perk is a weapon perk row.
type Perk struct {
	ID           string
	Name         []notion.RichText
	Description  []notion.RichText
	PageURL      *string
	ThumbnailURL *string
}

func DecodePerk(data []byte) (Perk, error) {
	r, err := decodeRow("perk", data)
	if err != nil {
		return Perk{}, err
	}
	p := Perk{ID: r.id, PageURL: r.pageURL, ThumbnailURL: r.thumbnailURL}
	if p.Name, err = r.title(PropName); err != nil {
		return Perk{}, err
	}
	if p.Description, err = r.richText(PropDesc); err != nil {
		return Perk{}, err
	}
	return p, nil
}

func (p Perk) Encode() map[string]any {
	return encodeRow(p.ID, p.PageURL, p.ThumbnailURL, map[string]any{
		PropName: titleProp(p.Name),
		PropDesc: richTextProp(p.Description),
	})
}

func (p Perk) Render() embed.Message {
	m := embed.Message{
		Title:        notion.Flatten(p.Name),
		Description:  notion.Colorize(p.Description),
		URL:          p.PageURL,
		ThumbnailURL: p.ThumbnailURL,
	}
	m.AddSourceField(p.PageURL)
	return m
}
