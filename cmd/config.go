package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/output"
)

type ConfigCmd struct {
	Show  ConfigShowCmd  `cmd:"" default:"withargs" help:"Show effective configuration"`
	Token ConfigTokenCmd `cmd:"" help:"Notion API token setup and status"`
}

type ConfigShowCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runConfigShow(ctx)
}

func runConfigShow(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		output.PrintError(err)
		return err
	}
	path, err := configPath(ctx)
	if err != nil {
		output.PrintError(err)
		return err
	}

	if ctx.JSON {
		return writeJSON(ctx.out(), map[string]any{
			"config_path":       path,
			"base_url":          cfg.API.BaseURL,
			"notion_version":    cfg.API.NotionVersion,
			"api_token_set":     cfg.API.Token != "",
			"discord_token_set": cfg.Discord.Token != "",
			"discord_guild_ids": cfg.Discord.GuildIDs,
			"commands":          cfg.Commands,
			"collections":       cfg.Collections,
			"contributors":      len(cfg.Contributors),
			"log_level":         cfg.Log.Level,
			"log_file":          cfg.Log.File,
			"log_development":   cfg.Log.Development,
		})
	}

	w := ctx.out()
	row := func(label, value string) {
		_, _ = color.New(color.Faint).Fprintf(w, "%-17s", label+":")
		_, _ = fmt.Fprintln(w, value)
	}
	row("Config path", path)
	row("API base URL", cfg.API.BaseURL)
	row("Notion version", cfg.API.NotionVersion)
	row("API token", setOrNot(cfg.API.Token))
	row("Discord token", setOrNot(cfg.Discord.Token))
	row("Discord guilds", orGlobal(cfg.Discord.GuildIDs))
	row("Commands", strings.Join(cfg.Commands, ", "))
	row("Contributors", fmt.Sprint(len(cfg.Contributors)))
	row("Log level", cfg.Log.Level)
	if cfg.Log.File != "" {
		row("Log file", cfg.Log.File)
	}
	_, _ = fmt.Fprintln(w)
	printCollections(w, cfg.Collections)
	return nil
}

func printCollections(w io.Writer, cols config.Collections) {
	_, _ = color.New(color.Bold).Fprintln(w, "Collections")
	for _, c := range []struct{ name, id string }{
		{"perk_row1", cols.PerkRow1},
		{"perk_row2", cols.PerkRow2},
		{"perk_row34", cols.PerkRow34},
		{"elemental_wells", cols.ElementalWells},
		{"exotic_weapons", cols.ExoticWeapons},
		{"exotic_armors", cols.ExoticArmors},
	} {
		_, _ = fmt.Fprintf(w, "  %-16s %s\n", c.name, c.id)
	}
}

func setOrNot(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return "not set"
	}
	return "set"
}

func orGlobal(guilds []string) string {
	if len(guilds) == 0 {
		return "global"
	}
	return strings.Join(guilds, ", ")
}
