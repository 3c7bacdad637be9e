package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/d2wiki/internal/embed"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inlineStyle = lipgloss.NewStyle().MarginRight(4)
)

// RenderMessage lays out a lookup message for the terminal. Consecutive
// inline fields share a row.
func (m *MarkdownRenderer) RenderMessage(msg embed.Message) (string, error) {
	style := titleStyle
	if msg.Color != 0 {
		style = style.Foreground(lipgloss.Color(fmt.Sprintf("#%06X", msg.Color)))
	}

	sections := []string{style.Render(msg.Title)}
	if msg.URL != nil && *msg.URL != "" {
		sections = append(sections, mutedStyle.Render(*msg.URL))
	}
	if msg.Description != "" {
		out, err := m.Render(msg.Description)
		if err != nil {
			return "", err
		}
		sections = append(sections, out)
	}

	var row []string
	flushRow := func() {
		if len(row) > 0 {
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	for _, f := range msg.Fields {
		if f.Inline {
			row = append(row, inlineStyle.Render(labelStyle.Render(f.Name)+"\n"+f.Value))
			continue
		}
		flushRow()
		out, err := m.Render(f.Value)
		if err != nil {
			return "", err
		}
		sections = append(sections, labelStyle.Render(f.Name)+"\n"+out)
	}
	flushRow()

	if msg.ThumbnailURL != nil {
		sections = append(sections, mutedStyle.Render(*msg.ThumbnailURL))
	}
	if msg.Footer != "" {
		sections = append(sections, mutedStyle.Render(msg.Footer))
	}

	return strings.Join(sections, "\n\n"), nil
}

func PrintMessage(w io.Writer, msg embed.Message) error {
	r, err := NewMarkdownRenderer()
	if err != nil {
		return err
	}
	out, err := r.RenderMessage(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// RenderPage lays out a page header followed by its content.
func (m *MarkdownRenderer) RenderPage(p PageView) (string, error) {
	title := p.Title
	if p.Icon != "" {
		title = p.Icon + " " + title
	}

	meta := []string{
		labelStyle.Render("Parent") + "  " + p.Parent,
		labelStyle.Render("Created") + "  " + p.CreatedTime.Format("2006-01-02 15:04") + " · " + p.CreatedBy,
		labelStyle.Render("Edited") + "   " + p.LastEditedTime.Format("2006-01-02 15:04") + " · " + p.LastEditedBy,
	}
	if p.Archived {
		meta = append(meta, labelStyle.Render("Archived"))
	}

	sections := []string{
		titleStyle.Render(title),
		mutedStyle.Render(p.URL),
		strings.Join(meta, "\n"),
	}
	if strings.TrimSpace(p.Content) != "" {
		out, err := m.Render(p.Content)
		if err != nil {
			return "", err
		}
		sections = append(sections, out)
	}
	return strings.Join(sections, "\n\n"), nil
}

func PrintPage(w io.Writer, p PageView) error {
	r, err := NewMarkdownRenderer()
	if err != nil {
		return err
	}
	out, err := r.RenderPage(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
