package notion

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/d2wiki/internal/vocab"
)

func styled(text string, color Color, bold, italic, underline bool) RichText {
	r := NewText(text)
	r.Annotations = Annotations{Bold: bold, Italic: italic, Underline: underline, Color: color}
	return r
}

func TestFlattenPreservesRunOrder(t *testing.T) {
	runs := []RichText{NewText("High"), NewText("-Impact"), NewText(" Frame")}
	assert.Equal(t, "High-Impact Frame", Flatten(runs))
	assert.Equal(t, "", Flatten(nil))
}

func TestFlattenFallsBackToContent(t *testing.T) {
	r := RichText{Type: RichTextText, Content: "content only"}
	assert.Equal(t, "content only", Flatten([]RichText{r}))
}

func TestColorizeEmpty(t *testing.T) {
	assert.Equal(t, "", Colorize(nil))
	assert.Equal(t, "", Colorize([]RichText{}))
}

func TestColorizeWrapsEmptyRun(t *testing.T) {
	assert.Equal(t, "```ansi\n\x1b[0;37m\n```", Colorize([]RichText{NewText("")}))
}

func TestColorize(t *testing.T) {
	runs := []RichText{
		styled("a", ColorRed, true, false, false),
		styled("b", ColorDefault, false, false, false),
		styled("c", ColorBlueBackground, true, true, true),
	}
	want := "```ansi\n\x1b[1;31ma\x1b[0;37mb\x1b[1;3;4;45mc\n```"
	assert.Equal(t, want, Colorize(runs))
}

func TestANSIUnmappedColorUsesDefault(t *testing.T) {
	r := styled("x", ColorPurple, false, true, false)
	assert.Equal(t, "\x1b[3;37mx", r.ANSI())
	assert.Equal(t, "37", ColorBrownBackground.ANSICode())
	assert.Equal(t, "41", ColorOrangeBackground.ANSICode())
}

func TestWrapDiff(t *testing.T) {
	assert.Equal(t, "```diff\n+ bonus\n```", WrapDiff("+ bonus"))
}

const richTextJSON = `{
	"type": "text",
	"text": {"content": "Deals extra damage", "link": {"url": "https://example.com"}},
	"annotations": {"bold": true, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "yellow"},
	"plain_text": "Deals extra damage",
	"href": "https://example.com"
}`

func TestDecodeRichText(t *testing.T) {
	r, err := DecodeRichText([]byte(richTextJSON))
	require.NoError(t, err)

	link := "https://example.com"
	want := RichText{
		Type:        RichTextText,
		PlainText:   "Deals extra damage",
		Annotations: Annotations{Bold: true, Color: ColorYellow},
		Href:        &link,
		Content:     "Deals extra damage",
		Link:        &link,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("rich text mismatch (-want +got):\n%s", diff)
	}
}

func TestRichTextRoundTrip(t *testing.T) {
	runs := []RichText{
		styled("plain", ColorDefault, false, false, false),
		{Type: RichTextEquation, PlainText: "E=mc^2", Expression: "E=mc^2", Annotations: Annotations{Color: ColorGray}},
		{Type: RichTextMention, PlainText: "@someone", MentionType: "user", Annotations: Annotations{Color: ColorDefault}},
	}
	for _, r := range runs {
		data, err := json.Marshal(EncodeRichText(r))
		require.NoError(t, err)
		got, err := DecodeRichText(data)
		require.NoError(t, err)
		if diff := cmp.Diff(r, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeRichTextUnknownColor(t *testing.T) {
	data := []byte(`{"type":"text","text":{"content":"x"},"plain_text":"x","annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false,"color":"teal"}}`)
	_, err := DecodeRichText(data)

	var unknown *vocab.UnknownValueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "color", unknown.Axis)
	assert.Equal(t, "teal", unknown.Value)
}

func TestDecodeRichTextMissingAnnotations(t *testing.T) {
	_, err := DecodeRichText([]byte(`{"type":"text","text":{"content":"x"},"plain_text":"x"}`))

	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "rich text", malformed.Entity)
	assert.Equal(t, "annotations", malformed.Path)
}
