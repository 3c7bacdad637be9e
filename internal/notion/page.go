package notion

import (
	"encoding/json"
	"time"
)

type Page struct {
	ID             string
	CreatedTime    time.Time
	CreatedBy      PartialUser
	LastEditedTime time.Time
	LastEditedBy   PartialUser
	Archived       bool
	Icon           *Icon
	Cover          *File
	Parent         Parent
	URL            string

	// Properties is kept raw; domain records project the keys they know.
	Properties json.RawMessage

	Children []Block
}

func DecodePage(data []byte) (Page, error) {
	f := NewFields("page", data)

	var (
		p   Page
		err error
	)
	if p.ID, err = f.String("id"); err != nil {
		return Page{}, err
	}
	if err := decodeAudit(f, &p.CreatedTime, &p.CreatedBy, &p.LastEditedTime, &p.LastEditedBy); err != nil {
		return Page{}, err
	}
	if p.Archived, err = f.Bool("archived"); err != nil {
		return Page{}, err
	}
	if p.Icon, err = DecodeIcon(f, "icon"); err != nil {
		return Page{}, err
	}
	cover, ok, err := f.OptionalObject("cover")
	if err != nil {
		return Page{}, err
	}
	if ok {
		file, err := decodeFile(cover)
		if err != nil {
			return Page{}, err
		}
		p.Cover = &file
	}
	parent, err := f.Object("parent")
	if err != nil {
		return Page{}, err
	}
	if p.Parent, err = decodeParent(parent); err != nil {
		return Page{}, err
	}
	if p.URL, err = f.String("url"); err != nil {
		return Page{}, err
	}
	props, err := f.Object("properties")
	if err != nil {
		return Page{}, err
	}
	p.Properties = append(json.RawMessage(nil), props.Raw()...)
	return p, nil
}

func EncodePage(p Page) map[string]any {
	obj := map[string]any{
		"object":           "page",
		"id":               p.ID,
		"created_time":     FormatTime(p.CreatedTime),
		"created_by":       EncodePartialUser(p.CreatedBy),
		"last_edited_time": FormatTime(p.LastEditedTime),
		"last_edited_by":   EncodePartialUser(p.LastEditedBy),
		"archived":         p.Archived,
		"icon":             EncodeIcon(p.Icon),
		"cover":            nil,
		"parent":           EncodeParent(p.Parent),
		"url":              p.URL,
	}
	if p.Cover != nil {
		obj["cover"] = EncodeFile(*p.Cover)
	}
	if len(p.Properties) > 0 {
		obj["properties"] = p.Properties
	} else {
		obj["properties"] = map[string]any{}
	}
	return obj
}

// Title returns the flattened title property, or "" when the page has none.
func (p Page) Title() string {
	if len(p.Properties) == 0 {
		return ""
	}
	var title string
	props := NewFields("page", p.Properties)
	_ = props.EachKey(func(_ string, prop Fields) error {
		if typ, err := prop.String("type"); err != nil || typ != "title" {
			return nil
		}
		runs, err := DecodeRichTextArray(prop, "title")
		if err != nil {
			return nil
		}
		title = Flatten(runs)
		return errStopIteration
	})
	return title
}
