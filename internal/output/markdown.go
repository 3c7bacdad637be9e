package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const ansiReset = "\x1b[0m"

type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
		if width > 120 {
			width = 120
		}
	}
	return newMarkdownRenderer(width, glamour.WithAutoStyle())
}

func newMarkdownRenderer(width int, opts ...glamour.TermRendererOption) (*MarkdownRenderer, error) {
	opts = append(opts, glamour.WithWordWrap(width))
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &MarkdownRenderer{renderer: r}, nil
}

// Render renders markdown for the terminal. ```ansi blocks already carry
// their own escape codes and are passed through unchanged.
func (m *MarkdownRenderer) Render(content string) (string, error) {
	var parts []string
	for _, seg := range splitANSIBlocks(content) {
		if seg.ansi {
			parts = append(parts, seg.text+ansiReset)
			continue
		}
		if strings.TrimSpace(seg.text) == "" {
			continue
		}
		out, err := m.renderer.Render(seg.text)
		if err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	return strings.Join(parts, "\n"), nil
}

type segment struct {
	ansi bool
	text string
}

// splitANSIBlocks separates ```ansi fenced blocks from the surrounding
// markdown. An unterminated block runs to the end of the content.
func splitANSIBlocks(content string) []segment {
	var (
		segments []segment
		current  []string
		inANSI   bool
	)

	flush := func(ansi bool) {
		if len(current) > 0 {
			segments = append(segments, segment{ansi: ansi, text: strings.Join(current, "\n")})
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inANSI && trimmed == "```ansi":
			flush(false)
			inANSI = true
		case inANSI && trimmed == "```":
			flush(true)
			inANSI = false
		default:
			current = append(current, line)
		}
	}
	flush(inANSI)

	return segments
}
