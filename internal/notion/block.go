package notion

import (
	"encoding/json"
	"time"

	"github.com/lox/d2wiki/internal/vocab"
)

type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockChildPage        BlockType = "child_page"
	BlockEmbed            BlockType = "embed"
	BlockImage            BlockType = "image"
	BlockVideo            BlockType = "video"
	BlockFile             BlockType = "file"
	BlockPDF              BlockType = "pdf"
	BlockBookmark         BlockType = "bookmark"
	BlockCallout          BlockType = "callout"
	BlockQuote            BlockType = "quote"
	BlockEquation         BlockType = "equation"
	BlockDivider          BlockType = "divider"
	BlockTableOfContents  BlockType = "table_of_contents"
	BlockColumn           BlockType = "column"
	BlockColumnList       BlockType = "column_list"
	BlockLinkPreview      BlockType = "link_preview"
	BlockSyncedBlock      BlockType = "synced_block"
	BlockTemplate         BlockType = "template"
	BlockLinkToPage       BlockType = "link_to_page"
	BlockTable            BlockType = "table"
	BlockTableRow         BlockType = "table_row"
	BlockUnsupported      BlockType = "unsupported"
	BlockCode             BlockType = "code"
)

var BlockTypes = vocab.New("block type",
	vocab.E(BlockParagraph, "paragraph"),
	vocab.E(BlockHeading1, "heading_1"),
	vocab.E(BlockHeading2, "heading_2"),
	vocab.E(BlockHeading3, "heading_3"),
	vocab.E(BlockBulletedListItem, "bulleted_list_item"),
	vocab.E(BlockNumberedListItem, "numbered_list_item"),
	vocab.E(BlockToDo, "to_do"),
	vocab.E(BlockToggle, "toggle"),
	vocab.E(BlockChildPage, "child_page"),
	vocab.E(BlockEmbed, "embed"),
	vocab.E(BlockImage, "image"),
	vocab.E(BlockVideo, "video"),
	vocab.E(BlockFile, "file"),
	vocab.E(BlockPDF, "pdf"),
	vocab.E(BlockBookmark, "bookmark"),
	vocab.E(BlockCallout, "callout"),
	vocab.E(BlockQuote, "quote"),
	vocab.E(BlockEquation, "equation"),
	vocab.E(BlockDivider, "divider"),
	vocab.E(BlockTableOfContents, "table_of_contents"),
	vocab.E(BlockColumn, "column"),
	vocab.E(BlockColumnList, "column_list"),
	vocab.E(BlockLinkPreview, "link_preview"),
	vocab.E(BlockSyncedBlock, "synced_block"),
	vocab.E(BlockTemplate, "template"),
	vocab.E(BlockLinkToPage, "link_to_page"),
	vocab.E(BlockTable, "table"),
	vocab.E(BlockTableRow, "table_row"),
	vocab.E(BlockUnsupported, "unsupported"),
	vocab.E(BlockCode, "code"),
)

// Paragraph is the only block payload that gets interpreted.
type Paragraph struct {
	RichText []RichText
	Color    Color
	Children []Block
}

type Block struct {
	ID             string
	Type           BlockType
	Parent         Parent
	CreatedTime    time.Time
	CreatedBy      PartialUser
	LastEditedTime time.Time
	LastEditedBy   PartialUser
	Archived       bool
	HasChildren    bool

	// Paragraph is set for paragraph blocks. Payload holds the raw type
	// payload for every other type.
	Paragraph *Paragraph
	Payload   json.RawMessage

	// Children is filled by child resolution, not by decoding.
	Children []Block
}

func DecodeBlock(data []byte) (Block, error) {
	return decodeBlock(NewFields("block", data))
}

func decodeBlock(f Fields) (Block, error) {
	var (
		b   Block
		err error
	)
	if b.ID, err = f.String("id"); err != nil {
		return Block{}, err
	}
	rawType, err := f.String("type")
	if err != nil {
		return Block{}, err
	}
	if b.Type, err = BlockTypes.Parse(rawType); err != nil {
		return Block{}, err
	}
	parent, err := f.Object("parent")
	if err != nil {
		return Block{}, err
	}
	if b.Parent, err = decodeParent(parent); err != nil {
		return Block{}, err
	}
	if err := decodeAudit(f, &b.CreatedTime, &b.CreatedBy, &b.LastEditedTime, &b.LastEditedBy); err != nil {
		return Block{}, err
	}
	if b.Archived, err = f.Bool("archived"); err != nil {
		return Block{}, err
	}
	if b.HasChildren, err = f.Bool("has_children"); err != nil {
		return Block{}, err
	}

	payload, err := f.Object(rawType)
	if err != nil {
		return Block{}, err
	}
	if b.Type == BlockParagraph {
		p, err := decodeParagraph(payload)
		if err != nil {
			return Block{}, err
		}
		b.Paragraph = &p
	} else {
		b.Payload = append(json.RawMessage(nil), payload.Raw()...)
	}
	return b, nil
}

func decodeParagraph(f Fields) (Paragraph, error) {
	var (
		p   Paragraph
		err error
	)
	if p.RichText, err = DecodeRichTextArray(f, "rich_text"); err != nil {
		return Paragraph{}, err
	}
	color, err := f.String("color")
	if err != nil {
		return Paragraph{}, err
	}
	if p.Color, err = Colors.Parse(color); err != nil {
		return Paragraph{}, err
	}
	if f.Has("children") {
		p.Children = []Block{}
		err = f.Each([]string{"children"}, func(_ int, item Fields) error {
			child, err := decodeBlock(item)
			if err != nil {
				return err
			}
			p.Children = append(p.Children, child)
			return nil
		})
		if err != nil {
			return Paragraph{}, err
		}
	}
	return p, nil
}

func decodeAudit(f Fields, created *time.Time, createdBy *PartialUser, edited *time.Time, editedBy *PartialUser) error {
	var err error
	if *created, err = f.Time("created_time"); err != nil {
		return err
	}
	cb, err := f.Object("created_by")
	if err != nil {
		return err
	}
	if *createdBy, err = decodePartialUser(cb); err != nil {
		return err
	}
	if *edited, err = f.Time("last_edited_time"); err != nil {
		return err
	}
	eb, err := f.Object("last_edited_by")
	if err != nil {
		return err
	}
	*editedBy, err = decodePartialUser(eb)
	return err
}

func EncodeBlock(b Block) map[string]any {
	obj := map[string]any{
		"object":           "block",
		"id":               b.ID,
		"type":             string(b.Type),
		"parent":           EncodeParent(b.Parent),
		"created_time":     FormatTime(b.CreatedTime),
		"created_by":       EncodePartialUser(b.CreatedBy),
		"last_edited_time": FormatTime(b.LastEditedTime),
		"last_edited_by":   EncodePartialUser(b.LastEditedBy),
		"archived":         b.Archived,
		"has_children":     b.HasChildren,
	}
	switch {
	case b.Paragraph != nil:
		obj[string(b.Type)] = encodeParagraph(*b.Paragraph)
	case len(b.Payload) > 0:
		obj[string(b.Type)] = b.Payload
	default:
		obj[string(b.Type)] = map[string]any{}
	}
	return obj
}

func encodeParagraph(p Paragraph) map[string]any {
	obj := map[string]any{
		"rich_text": EncodeRichTextArray(p.RichText),
		"color":     string(p.Color),
	}
	if p.Children != nil {
		children := make([]any, 0, len(p.Children))
		for _, c := range p.Children {
			children = append(children, EncodeBlock(c))
		}
		obj["children"] = children
	}
	return obj
}

// Paragraphs returns the paragraph payloads of blocks, in order.
func Paragraphs(blocks []Block) []Paragraph {
	var out []Paragraph
	for _, b := range blocks {
		if b.Type == BlockParagraph && b.Paragraph != nil {
			out = append(out, *b.Paragraph)
		}
	}
	return out
}
