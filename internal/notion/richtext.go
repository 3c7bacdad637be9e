package notion

import (
	"strings"

	"github.com/lox/d2wiki/internal/vocab"
)

type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextMention  RichTextType = "mention"
	RichTextEquation RichTextType = "equation"
)

var RichTextTypes = vocab.New("rich text type",
	vocab.E(RichTextText, "text"),
	vocab.E(RichTextMention, "mention"),
	vocab.E(RichTextEquation, "equation"),
)

type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Color         Color
}

// RichText is one styled run of inline text.
type RichText struct {
	Type        RichTextType
	PlainText   string
	Annotations Annotations
	Href        *string

	// text
	Content string
	Link    *string

	// mention
	MentionType string

	// equation
	Expression string
}

// NewText builds an unstyled text run.
func NewText(content string) RichText {
	return RichText{
		Type:        RichTextText,
		PlainText:   content,
		Content:     content,
		Annotations: Annotations{Color: ColorDefault},
	}
}

// Text returns the run's visible text.
func (r RichText) Text() string {
	if r.PlainText != "" {
		return r.PlainText
	}
	return r.Content
}

// ANSI renders the run with an SGR prefix. Runs are not reset individually;
// each run's prefix overrides the previous one.
func (r RichText) ANSI() string {
	var b strings.Builder
	b.WriteString("\x1b[")
	b.WriteString(r.Annotations.ansiFormat())
	b.WriteString(r.Annotations.Color.ANSICode())
	b.WriteString("m")
	b.WriteString(r.Text())
	return b.String()
}

func (a Annotations) ansiFormat() string {
	var format string
	if a.Bold {
		format += "1;"
	}
	if a.Italic {
		format += "3;"
	}
	if a.Underline {
		format += "4;"
	}
	if format == "" {
		format = "0;"
	}
	return format
}

// Flatten concatenates the text of each run in order.
func Flatten(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text())
	}
	return b.String()
}

// Colorize wraps the ANSI rendering of runs in an ansi code block. Empty input
// yields "" rather than an empty block.
func Colorize(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.ANSI())
	}
	return "```ansi\n" + b.String() + "\n```"
}

// WrapDiff wraps text in a diff code block.
func WrapDiff(text string) string {
	return "```diff\n" + text + "\n```"
}

func DecodeRichText(data []byte) (RichText, error) {
	return decodeRichText(NewFields("rich text", data))
}

// DecodeRichTextArray decodes the rich text array at path.
func DecodeRichTextArray(f Fields, path ...string) ([]RichText, error) {
	runs := []RichText{}
	err := f.Each(path, func(_ int, item Fields) error {
		r, err := decodeRichText(item)
		if err != nil {
			return err
		}
		runs = append(runs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func decodeRichText(f Fields) (RichText, error) {
	rawType, err := f.String("type")
	if err != nil {
		return RichText{}, err
	}
	typ, err := RichTextTypes.Parse(rawType)
	if err != nil {
		return RichText{}, err
	}
	plain, err := f.String("plain_text")
	if err != nil {
		return RichText{}, err
	}
	ann, err := f.Object("annotations")
	if err != nil {
		return RichText{}, err
	}
	annotations, err := decodeAnnotations(ann)
	if err != nil {
		return RichText{}, err
	}
	href, err := f.OptionalString("href")
	if err != nil {
		return RichText{}, err
	}

	out := RichText{Type: typ, PlainText: plain, Annotations: annotations, Href: href}
	switch typ {
	case RichTextText:
		if out.Content, err = f.String("text", "content"); err != nil {
			return RichText{}, err
		}
		if out.Link, err = f.OptionalString("text", "link", "url"); err != nil {
			return RichText{}, err
		}
	case RichTextMention:
		if out.MentionType, err = f.String("mention", "type"); err != nil {
			return RichText{}, err
		}
	case RichTextEquation:
		if out.Expression, err = f.String("equation", "expression"); err != nil {
			return RichText{}, err
		}
	}
	return out, nil
}

func decodeAnnotations(f Fields) (Annotations, error) {
	var (
		a   Annotations
		err error
	)
	if a.Bold, err = f.Bool("bold"); err != nil {
		return a, err
	}
	if a.Italic, err = f.Bool("italic"); err != nil {
		return a, err
	}
	if a.Strikethrough, err = f.Bool("strikethrough"); err != nil {
		return a, err
	}
	if a.Underline, err = f.Bool("underline"); err != nil {
		return a, err
	}
	if a.Code, err = f.Bool("code"); err != nil {
		return a, err
	}
	color, err := f.String("color")
	if err != nil {
		return a, err
	}
	if a.Color, err = Colors.Parse(color); err != nil {
		return a, err
	}
	return a, nil
}

func EncodeRichText(r RichText) map[string]any {
	obj := map[string]any{
		"type":       string(r.Type),
		"plain_text": r.PlainText,
		"annotations": map[string]any{
			"bold":          r.Annotations.Bold,
			"italic":        r.Annotations.Italic,
			"strikethrough": r.Annotations.Strikethrough,
			"underline":     r.Annotations.Underline,
			"code":          r.Annotations.Code,
			"color":         string(r.Annotations.Color),
		},
		"href": optional(r.Href),
	}
	switch r.Type {
	case RichTextText:
		var link any
		if r.Link != nil {
			link = map[string]any{"url": *r.Link}
		}
		obj["text"] = map[string]any{"content": r.Content, "link": link}
	case RichTextMention:
		obj["mention"] = map[string]any{"type": r.MentionType}
	case RichTextEquation:
		obj["equation"] = map[string]any{"expression": r.Expression}
	}
	return obj
}

func EncodeRichTextArray(runs []RichText) []any {
	out := make([]any, 0, len(runs))
	for _, r := range runs {
		out = append(out, EncodeRichText(r))
	}
	return out
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
