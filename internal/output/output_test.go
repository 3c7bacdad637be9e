package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/d2wiki/internal/embed"
)

func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevWriter, prevNoColor := statusWriter, color.NoColor
	statusWriter, color.NoColor = &buf, true
	t.Cleanup(func() { statusWriter, color.NoColor = prevWriter, prevNoColor })
	return &buf
}

func TestPrintErrorIncludesHint(t *testing.T) {
	buf := captureStatus(t)

	PrintError(fmt.Errorf("load: %w", &UserError{Message: "token missing", Hint: "run config token setup"}))
	PrintError(nil)

	assert.Equal(t, "Error: load: token missing\nrun config token setup\n", buf.String())
}

func TestStatusLines(t *testing.T) {
	buf := captureStatus(t)

	PrintSuccess("saved")
	PrintWarning("careful")
	PrintInfo("note")

	assert.Equal(t, "✓ saved\n! careful\nnote\n", buf.String())
}

func TestUserErrorMatchesWithErrorsAs(t *testing.T) {
	var userErr *UserError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", &UserError{Message: "bad flag"}), &userErr))
	assert.Equal(t, "bad flag", userErr.Error())
}

func TestSplitANSIBlocks(t *testing.T) {
	content := "intro\n```ansi\n\x1b[1;31mhot\n```\nmiddle\n```ansi\n\x1b[0;37mtail"

	got := splitANSIBlocks(content)
	assert.Equal(t, []segment{
		{text: "intro"},
		{ansi: true, text: "\x1b[1;31mhot"},
		{text: "middle"},
		{ansi: true, text: "\x1b[0;37mtail"},
	}, got)
}

func plainRenderer(t *testing.T) *MarkdownRenderer {
	t.Helper()
	r, err := newMarkdownRenderer(80, glamour.WithStandardStyle("notty"))
	require.NoError(t, err)
	return r
}

func TestRenderPassesANSIBlocksThrough(t *testing.T) {
	r := plainRenderer(t)

	out, err := r.Render("```ansi\n\x1b[1;33mSolar\x1b[0;37m damage\n```")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[1;33mSolar\x1b[0;37m damage"+ansiReset, out)
}

func TestRenderMessage(t *testing.T) {
	r := plainRenderer(t)
	msg := embed.Message{Title: "Ace of Spades", Color: embed.ExoticColor}
	msg.AddField("무기 종류", "핸드 캐논", true).
		AddField("슬롯", "물리/시공", true).
		AddField("경이 특성", "```ansi\n\x1b[0;37mMemento Mori\n```", false).
		AddField("설명", "```diff\n+ Reload after a kill\n```", false)

	out, err := r.RenderMessage(msg)
	require.NoError(t, err)

	for _, want := range []string{"Ace of Spades", "무기 종류", "핸드 캐논", "슬롯", "물리/시공", "Memento Mori", "Reload after a kill"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Ace of Spades"), strings.Index(out, "경이 특성"))
}

func TestRenderPage(t *testing.T) {
	r := plainRenderer(t)
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	out, err := r.RenderPage(PageView{
		Title:          "Celestial Nighthawk",
		Icon:           "🦅",
		URL:            "https://www.notion.so/a1",
		Parent:         "database Exotic Armor",
		CreatedTime:    created,
		CreatedBy:      "Ghost",
		LastEditedTime: created,
		LastEditedBy:   "Ghost",
		Content:        "```ansi\n\x1b[0;37mGolden Gun fires one shot.\n```",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "🦅 Celestial Nighthawk")
	assert.Contains(t, out, "database Exotic Armor")
	assert.Contains(t, out, "2024-03-01 09:30 · Ghost")
	assert.Contains(t, out, "Golden Gun fires one shot.")
}
