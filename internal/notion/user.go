package notion

// PartialUser is the id-only user reference embedded in pages and blocks.
type PartialUser struct {
	ID string
}

type User struct {
	ID        string
	Type      string
	Name      string
	AvatarURL *string
	Email     *string
}

func decodePartialUser(f Fields) (PartialUser, error) {
	id, err := f.String("id")
	if err != nil {
		return PartialUser{}, err
	}
	return PartialUser{ID: id}, nil
}

func EncodePartialUser(u PartialUser) map[string]any {
	return map[string]any{"object": "user", "id": u.ID}
}

func DecodeUser(data []byte) (User, error) {
	f := NewFields("user", data)

	var (
		u   User
		err error
	)
	if u.ID, err = f.String("id"); err != nil {
		return User{}, err
	}
	typ, err := f.OptionalString("type")
	if err != nil {
		return User{}, err
	}
	if typ != nil {
		u.Type = *typ
	}
	name, err := f.OptionalString("name")
	if err != nil {
		return User{}, err
	}
	if name != nil {
		u.Name = *name
	}
	if u.AvatarURL, err = f.OptionalString("avatar_url"); err != nil {
		return User{}, err
	}
	if u.Email, err = f.OptionalString("person", "email"); err != nil {
		return User{}, err
	}
	return u, nil
}

func EncodeUser(u User) map[string]any {
	obj := map[string]any{
		"object":     "user",
		"id":         u.ID,
		"type":       u.Type,
		"name":       u.Name,
		"avatar_url": optional(u.AvatarURL),
	}
	if u.Email != nil {
		obj["person"] = map[string]any{"email": *u.Email}
	}
	return obj
}

// DisplayName falls back to the id when the user has no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
