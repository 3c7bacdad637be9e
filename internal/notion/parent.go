package notion

import "github.com/lox/d2wiki/internal/vocab"

type ParentType string

const (
	ParentPage      ParentType = "page_id"
	ParentDatabase  ParentType = "database_id"
	ParentBlock     ParentType = "block_id"
	ParentWorkspace ParentType = "workspace"
)

var ParentTypes = vocab.New("parent type",
	vocab.E(ParentPage, "page_id"),
	vocab.E(ParentDatabase, "database_id"),
	vocab.E(ParentBlock, "block_id"),
	vocab.E(ParentWorkspace, "workspace"),
)

// Parent references the container of a page, block or database. ID is empty
// for workspace parents.
type Parent struct {
	Type      ParentType
	ID        string
	Workspace bool
}

func decodeParent(f Fields) (Parent, error) {
	raw, err := f.String("type")
	if err != nil {
		return Parent{}, err
	}
	typ, err := ParentTypes.Parse(raw)
	if err != nil {
		return Parent{}, err
	}
	if typ == ParentWorkspace {
		return Parent{Type: typ, Workspace: true}, nil
	}
	id, err := f.String(string(typ))
	if err != nil {
		return Parent{}, err
	}
	return Parent{Type: typ, ID: id}, nil
}

func DecodeParent(data []byte) (Parent, error) {
	return decodeParent(NewFields("parent", data))
}

func EncodeParent(p Parent) map[string]any {
	obj := map[string]any{"type": string(p.Type)}
	if p.Type == ParentWorkspace {
		obj["workspace"] = true
	} else {
		obj[string(p.Type)] = p.ID
	}
	return obj
}
