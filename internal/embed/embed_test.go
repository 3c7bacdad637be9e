package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestLink(t *testing.T) {
	assert.Equal(t, "[클릭](https://notion.so/x)", Link("클릭", ptr("https://notion.so/x")))
	assert.Equal(t, DefaultText, Link("클릭", nil))
	assert.Equal(t, DefaultText, Link("클릭", ptr("")))
}

func TestOr(t *testing.T) {
	assert.Equal(t, "value", Or("value"))
	assert.Equal(t, DefaultText, Or("  "))
	assert.Equal(t, DefaultText, OrNil(nil))
	assert.Equal(t, "x", OrNil(ptr("x")))
}

func TestMarkdown(t *testing.T) {
	m := Message{Title: "High-Impact Frame", Description: "Deals extra damage", URL: ptr("https://notion.so/p")}
	m.AddSourceField(m.URL)

	got := Markdown(m)
	assert.Contains(t, got, "## [High-Impact Frame](https://notion.so/p)")
	assert.Contains(t, got, "Deals extra damage")
	assert.Contains(t, got, "**노션에서 보기**\n[클릭](https://notion.so/p)")
}

func TestNoResultsAndFailureDiffer(t *testing.T) {
	empty := NoResults("gjally")
	failed := Failure("gjally")
	assert.Equal(t, "검색 결과가 없습니다", empty.Title)
	assert.NotEqual(t, empty.Title, failed.Title)
	assert.Contains(t, empty.Description, "gjally")
}
