package d2

import (
	"strings"

	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/notion"
)

type ExoticWeapon struct {
	ID           string
	Name         string
	Category     WeaponCategory
	Slot         WeaponSlot
	Ammo         *WeaponAmmo
	ExoticPerk   string
	Description  string
	PageURL      *string
	ThumbnailURL *string
}

func DecodeExoticWeapon(data []byte) (ExoticWeapon, error) {
	r, err := decodeRow("exotic weapon", data)
	if err != nil {
		return ExoticWeapon{}, err
	}
	w := ExoticWeapon{ID: r.id, PageURL: r.pageURL, ThumbnailURL: r.thumbnailURL}

	name, err := r.title(PropName)
	if err != nil {
		return ExoticWeapon{}, err
	}
	w.Name = notion.Flatten(name)
	if w.Category, err = selectValue(r, PropCategory, WeaponCategories); err != nil {
		return ExoticWeapon{}, err
	}
	if w.Slot, err = selectValue(r, PropWeaponSlot, WeaponSlots); err != nil {
		return ExoticWeapon{}, err
	}
	if w.Ammo, err = optionalSelect(r, PropAmmo, WeaponAmmos); err != nil {
		return ExoticWeapon{}, err
	}
	perk, err := r.richText(PropExoticPerk)
	if err != nil {
		return ExoticWeapon{}, err
	}
	w.ExoticPerk = notion.Flatten(perk)
	desc, err := r.richText(PropDesc)
	if err != nil {
		return ExoticWeapon{}, err
	}
	w.Description = notion.Flatten(desc)
	return w, nil
}

func (w ExoticWeapon) Encode() map[string]any {
	props := map[string]any{
		PropName:       titleProp(plainRuns(w.Name)),
		PropCategory:   selectProp(w.Category.String()),
		PropWeaponSlot: selectProp(w.Slot.String()),
		PropExoticPerk: richTextProp(plainRuns(w.ExoticPerk)),
		PropDesc:       richTextProp(plainRuns(w.Description)),
	}
	if w.Ammo != nil {
		props[PropAmmo] = selectProp(w.Ammo.String())
	}
	return encodeRow(w.ID, w.PageURL, w.ThumbnailURL, props)
}

func (w ExoticWeapon) Render() embed.Message {
	m := embed.Message{
		Title:        w.Name,
		URL:          w.PageURL,
		Color:        embed.ExoticColor,
		ThumbnailURL: w.ThumbnailURL,
	}
	m.AddField("무기 종류", w.Category.String(), true).
		AddField("슬롯", w.Slot.String(), true)
	if w.Ammo != nil {
		m.AddField("탄약", w.Ammo.String(), true)
	}
	desc := embed.DefaultText
	if w.Description != "" {
		desc = notion.WrapDiff(w.Description)
	}
	m.AddField("경이 특성", embed.Or(w.ExoticPerk), false).
		AddField("설명", desc, false).
		AddSourceField(w.PageURL)
	return m
}

// ExoticArmor is an exotic armor row. Description is not a property of the
// row; it is resolved from the page body and stays nil until then.
type ExoticArmor struct {
	ID           string
	Name         []notion.RichText
	ExoticPerk   []notion.RichText
	Class        GuardianClass
	Category     ArmorCategory
	Description  *string
	PageURL      *string
	ThumbnailURL *string
}

func DecodeExoticArmor(data []byte) (ExoticArmor, error) {
	r, err := decodeRow("exotic armor", data)
	if err != nil {
		return ExoticArmor{}, err
	}
	a := ExoticArmor{ID: r.id, PageURL: r.pageURL, ThumbnailURL: r.thumbnailURL}
	if a.Name, err = r.title(PropName); err != nil {
		return ExoticArmor{}, err
	}
	if a.ExoticPerk, err = r.richText(PropExoticPerk); err != nil {
		return ExoticArmor{}, err
	}
	if a.Class, err = selectValue(r, PropClass, GuardianClasses); err != nil {
		return ExoticArmor{}, err
	}
	if a.Category, err = selectValue(r, PropArmorSlot, ArmorCategories); err != nil {
		return ExoticArmor{}, err
	}
	return a, nil
}

func (a ExoticArmor) Encode() map[string]any {
	return encodeRow(a.ID, a.PageURL, a.ThumbnailURL, map[string]any{
		PropName:       titleProp(a.Name),
		PropExoticPerk: richTextProp(a.ExoticPerk),
		PropClass:      selectProp(a.Class.String()),
		PropArmorSlot:  selectProp(a.Category.String()),
	})
}

// SetDescription builds the description from the page's paragraph blocks.
func (a *ExoticArmor) SetDescription(blocks []notion.Block) {
	paragraphs := notion.Paragraphs(blocks)
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, notion.Colorize(p.RichText))
	}
	desc := strings.Join(lines, "\n")
	a.Description = &desc
}

func (a ExoticArmor) Render() embed.Message {
	m := embed.Message{
		Title:        notion.Flatten(a.Name),
		URL:          a.PageURL,
		Color:        embed.ExoticColor,
		ThumbnailURL: a.ThumbnailURL,
	}
	m.AddField("직업", a.Class.String(), true).
		AddField("부위", a.Category.String(), true).
		AddField("경이 특성", embed.Or(notion.Flatten(a.ExoticPerk)), false).
		AddField("설명", embed.OrNil(a.Description), false).
		AddSourceField(a.PageURL)
	return m
}
