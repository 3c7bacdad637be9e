package notiontest

import "github.com/lox/d2wiki/internal/notion"

const timestamp = "2023-01-02T03:04:05.000Z"

// Text builds plain rich text runs.
func Text(parts ...string) []any {
	runs := make([]any, 0, len(parts))
	for _, p := range parts {
		runs = append(runs, notion.EncodeRichText(notion.NewText(p)))
	}
	return runs
}

func Title(parts ...string) map[string]any {
	return map[string]any{"type": "title", "title": Text(parts...)}
}

func RichText(parts ...string) map[string]any {
	return map[string]any{"type": "rich_text", "rich_text": Text(parts...)}
}

func Select(name string) map[string]any {
	return map[string]any{"type": "select", "select": map[string]any{"name": name}}
}

func Number(n int) map[string]any {
	return map[string]any{"type": "number", "number": n}
}

// Row builds a database row page with an external icon.
func Row(id string, props map[string]any) map[string]any {
	page := Page(id, props)
	page["parent"] = map[string]any{"type": "database_id", "database_id": "db"}
	page["icon"] = map[string]any{"type": "external", "external": map[string]any{"url": "https://img.example/" + id + ".png"}}
	return page
}

func Page(id string, props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	return map[string]any{
		"object":           "page",
		"id":               id,
		"created_time":     timestamp,
		"created_by":       map[string]any{"object": "user", "id": "u1"},
		"last_edited_time": timestamp,
		"last_edited_by":   map[string]any{"object": "user", "id": "u1"},
		"archived":         false,
		"icon":             nil,
		"cover":            nil,
		"parent":           map[string]any{"type": "workspace", "workspace": true},
		"url":              "https://www.notion.so/" + id,
		"properties":       props,
	}
}

// Paragraph builds a paragraph block whose parent is parentID.
func Paragraph(id, parentID string, hasChildren bool, parts ...string) map[string]any {
	b := block(id, parentID, "paragraph", hasChildren)
	b["paragraph"] = map[string]any{"rich_text": Text(parts...), "color": "default"}
	return b
}

// Block builds a block of any other type with an empty payload.
func Block(id, parentID, typ string, hasChildren bool) map[string]any {
	b := block(id, parentID, typ, hasChildren)
	b[typ] = map[string]any{}
	return b
}

func block(id, parentID, typ string, hasChildren bool) map[string]any {
	return map[string]any{
		"object":           "block",
		"id":               id,
		"parent":           map[string]any{"type": "page_id", "page_id": parentID},
		"created_time":     timestamp,
		"created_by":       map[string]any{"object": "user", "id": "u1"},
		"last_edited_time": timestamp,
		"last_edited_by":   map[string]any{"object": "user", "id": "u1"},
		"archived":         false,
		"has_children":     hasChildren,
		"type":             typ,
	}
}

func User(id, name string) map[string]any {
	return map[string]any{"object": "user", "id": id, "type": "person", "name": name, "avatar_url": nil}
}

func Database(id, title string) map[string]any {
	return map[string]any{
		"object":      "database",
		"id":          id,
		"title":       Text(title),
		"description": []any{},
		"url":         "https://www.notion.so/" + id,
	}
}
