// Package embed is the chat-platform neutral message model that records
// render into. Surfaces convert it to their own representation.
package embed

import (
	"fmt"
	"strings"
)

const (
	// ExoticColor is the accent used for exotic items.
	ExoticColor = 0xCDAF2D

	// DefaultText stands in for fields a record does not have.
	DefaultText = "정보가 없습니다."

	SourceFieldName = "노션에서 보기"
	sourceLinkLabel = "클릭"
)

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Message struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	URL          *string `json:"url,omitempty"`
	Color        int     `json:"color,omitempty"`
	Fields       []Field `json:"fields,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Footer       string  `json:"footer,omitempty"`
}

// AddField appends a field and returns m for chaining.
func (m *Message) AddField(name, value string, inline bool) *Message {
	m.Fields = append(m.Fields, Field{Name: name, Value: value, Inline: inline})
	return m
}

// AddSourceField appends the link back to the source page.
func (m *Message) AddSourceField(pageURL *string) *Message {
	return m.AddField(SourceFieldName, Link(sourceLinkLabel, pageURL), false)
}

// Link builds a markdown link, or DefaultText when url is absent.
func Link(label string, url *string) string {
	if url == nil || *url == "" {
		return DefaultText
	}
	return fmt.Sprintf("[%s](%s)", label, *url)
}

// Or returns s, or DefaultText when s is blank.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return DefaultText
	}
	return s
}

// OrNil is Or for optional values.
func OrNil(s *string) string {
	if s == nil {
		return DefaultText
	}
	return Or(*s)
}

func NoResults(query string) Message {
	return Message{
		Title:       "검색 결과가 없습니다",
		Description: fmt.Sprintf("'%s'에 해당하는 항목을 찾지 못했습니다.", query),
	}
}

func Failure(query string) Message {
	return Message{
		Title:       "조회 중 오류가 발생했습니다",
		Description: fmt.Sprintf("'%s' 조회에 실패했습니다. 잠시 후 다시 시도해 주세요.", query),
	}
}

// Markdown renders m as plain markdown.
func Markdown(m Message) string {
	var b strings.Builder
	if m.URL != nil && *m.URL != "" {
		fmt.Fprintf(&b, "## [%s](%s)\n", m.Title, *m.URL)
	} else {
		fmt.Fprintf(&b, "## %s\n", m.Title)
	}
	if m.Description != "" {
		b.WriteString("\n")
		b.WriteString(m.Description)
		b.WriteString("\n")
	}
	for _, f := range m.Fields {
		fmt.Fprintf(&b, "\n**%s**\n%s\n", f.Name, f.Value)
	}
	if m.ThumbnailURL != nil {
		fmt.Fprintf(&b, "\n![thumbnail](%s)\n", *m.ThumbnailURL)
	}
	if m.Footer != "" {
		fmt.Fprintf(&b, "\n_%s_\n", m.Footer)
	}
	return b.String()
}
