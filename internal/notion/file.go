package notion

import (
	"time"

	"github.com/lox/d2wiki/internal/vocab"
)

type FileType string

const (
	FileHosted   FileType = "file"
	FileExternal FileType = "external"
)

var FileTypes = vocab.New("file type",
	vocab.E(FileHosted, "file"),
	vocab.E(FileExternal, "external"),
)

// File is either a Notion-hosted file (with an expiring signed URL) or an
// external link.
type File struct {
	Type       FileType
	URL        string
	ExpiryTime *time.Time
}

type IconType string

const (
	IconEmoji       IconType = "emoji"
	IconFile        IconType = "file"
	IconExternal    IconType = "external"
	IconCustomEmoji IconType = "custom_emoji"
)

var IconTypes = vocab.New("icon type",
	vocab.E(IconEmoji, "emoji"),
	vocab.E(IconFile, "file"),
	vocab.E(IconExternal, "external"),
	vocab.E(IconCustomEmoji, "custom_emoji"),
)

// Icon is exactly one of an emoji, a file or a workspace custom emoji.
type Icon struct {
	Type        IconType
	Emoji       string
	File        *File
	CustomEmoji *CustomEmoji
}

type CustomEmoji struct {
	ID   string
	Name string
	URL  string
}

func decodeFile(f Fields) (File, error) {
	raw, err := f.String("type")
	if err != nil {
		return File{}, err
	}
	typ, err := FileTypes.Parse(raw)
	if err != nil {
		return File{}, err
	}
	url, err := f.String(string(typ), "url")
	if err != nil {
		return File{}, err
	}
	out := File{Type: typ, URL: url}
	if typ == FileHosted {
		if out.ExpiryTime, err = f.OptionalTime(string(typ), "expiry_time"); err != nil {
			return File{}, err
		}
	}
	return out, nil
}

func EncodeFile(file File) map[string]any {
	body := map[string]any{"url": file.URL}
	if file.Type == FileHosted && file.ExpiryTime != nil {
		body["expiry_time"] = FormatTime(*file.ExpiryTime)
	}
	return map[string]any{"type": string(file.Type), string(file.Type): body}
}

// DecodeIcon reads the optional icon at path. Absent or null icons are nil.
func DecodeIcon(f Fields, path ...string) (*Icon, error) {
	obj, ok, err := f.OptionalObject(path...)
	if err != nil || !ok {
		return nil, err
	}
	raw, err := obj.String("type")
	if err != nil {
		return nil, err
	}
	typ, err := IconTypes.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch typ {
	case IconEmoji:
		emoji, err := obj.String("emoji")
		if err != nil {
			return nil, err
		}
		return &Icon{Type: typ, Emoji: emoji}, nil
	case IconCustomEmoji:
		var ce CustomEmoji
		if ce.ID, err = obj.String("custom_emoji", "id"); err != nil {
			return nil, err
		}
		if ce.Name, err = obj.String("custom_emoji", "name"); err != nil {
			return nil, err
		}
		if ce.URL, err = obj.String("custom_emoji", "url"); err != nil {
			return nil, err
		}
		return &Icon{Type: typ, CustomEmoji: &ce}, nil
	default:
		file, err := decodeFile(obj)
		if err != nil {
			return nil, err
		}
		return &Icon{Type: typ, File: &file}, nil
	}
}

func EncodeIcon(icon *Icon) any {
	if icon == nil {
		return nil
	}
	switch {
	case icon.File != nil:
		return EncodeFile(*icon.File)
	case icon.CustomEmoji != nil:
		return map[string]any{
			"type":         string(IconCustomEmoji),
			"custom_emoji": map[string]any{
				"id":   icon.CustomEmoji.ID,
				"name": icon.CustomEmoji.Name,
				"url":  icon.CustomEmoji.URL,
			},
		}
	default:
		return map[string]any{"type": string(IconEmoji), "emoji": icon.Emoji}
	}
}

// IconURL returns the image URL of an icon, or nil for emoji and missing icons.
func IconURL(icon *Icon) *string {
	if icon == nil {
		return nil
	}
	var url string
	switch {
	case icon.File != nil:
		url = icon.File.URL
	case icon.CustomEmoji != nil:
		url = icon.CustomEmoji.URL
	default:
		return nil
	}
	return &url
}
