package notion

type Database struct {
	ID          string
	Title       []RichText
	Description []RichText
	URL         *string
}

func DecodeDatabase(data []byte) (Database, error) {
	f := NewFields("database", data)

	var (
		db  Database
		err error
	)
	if db.ID, err = f.String("id"); err != nil {
		return Database{}, err
	}
	if db.Title, err = DecodeRichTextArray(f, "title"); err != nil {
		return Database{}, err
	}
	if f.Has("description") {
		if db.Description, err = DecodeRichTextArray(f, "description"); err != nil {
			return Database{}, err
		}
	} else {
		db.Description = []RichText{}
	}
	if db.URL, err = f.OptionalString("url"); err != nil {
		return Database{}, err
	}
	return db, nil
}

func EncodeDatabase(db Database) map[string]any {
	return map[string]any{
		"object":      "database",
		"id":          db.ID,
		"title":       EncodeRichTextArray(db.Title),
		"description": EncodeRichTextArray(db.Description),
		"url":         optional(db.URL),
	}
}
