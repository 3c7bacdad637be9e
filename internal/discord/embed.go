package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/lox/d2wiki/internal/embed"
)

// Discord rejects embeds over these sizes.
const (
	maxTitle       = 256
	maxDescription = 4096
	maxFieldName   = 256
	maxFieldValue  = 1024
	maxFields      = 25
)

// ToDiscordEmbed converts a rendered message into a Discord embed.
func ToDiscordEmbed(m embed.Message) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       truncate(m.Title, maxTitle),
		Description: truncate(m.Description, maxDescription),
		Color:       m.Color,
	}
	if m.URL != nil {
		e.URL = *m.URL
	}
	if m.ThumbnailURL != nil {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *m.ThumbnailURL}
	}
	if m.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: m.Footer}
	}
	for i, f := range m.Fields {
		if i == maxFields {
			break
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   truncate(f.Name, maxFieldName),
			Value:  truncate(f.Value, maxFieldValue),
			Inline: f.Inline,
		})
	}
	return e
}

// truncate cuts s to limit runes. A trailing code fence survives the cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	suffix := "…"
	if strings.HasSuffix(s, "```") {
		suffix = "…\n```"
	}
	return string(runes[:limit-len([]rune(suffix))]) + suffix
}
