package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lox/d2wiki/internal/notion"
)

const (
	configDirName  = ".config/d2wiki"
	configFileName = "config.yaml"

	defaultBaseURL       = "https://api.notion.com/v1"
	defaultNotionVersion = "2022-06-28"
)

// Command groups that can be enabled on the chat surface.
const (
	CommandPerks   = "perks"
	CommandWells   = "wells"
	CommandExotics = "exotics"
	CommandInfo    = "info"
)

var AllCommands = []string{CommandPerks, CommandWells, CommandExotics, CommandInfo}

type Config struct {
	API          APIConfig     `yaml:"api,omitempty"`
	Discord      Discord       `yaml:"discord,omitempty"`
	Commands     []string      `yaml:"commands,omitempty"`
	Contributors []Contributor `yaml:"contributors,omitempty"`
	Collections  Collections   `yaml:"collections,omitempty"`
	Log          Log           `yaml:"log,omitempty"`
}

type APIConfig struct {
	BaseURL       string `yaml:"base_url,omitempty"`
	NotionVersion string `yaml:"notion_version,omitempty"`
	Token         string `yaml:"token,omitempty"`
}

type Discord struct {
	Token    string   `yaml:"token,omitempty"`
	GuildIDs []string `yaml:"guild_ids,omitempty"`
}

// Contributor is credited by the info command.
type Contributor struct {
	ID      string `yaml:"id"`
	Comment string `yaml:"comment"`
}

// Collections holds the Notion database ids the lookups query.
type Collections struct {
	PerkRow1       string `yaml:"perk_row1,omitempty" json:"perk_row1"`
	PerkRow2       string `yaml:"perk_row2,omitempty" json:"perk_row2"`
	PerkRow34      string `yaml:"perk_row34,omitempty" json:"perk_row34"`
	ElementalWells string `yaml:"elemental_wells,omitempty" json:"elemental_wells"`
	ExoticWeapons  string `yaml:"exotic_weapons,omitempty" json:"exotic_weapons"`
	ExoticArmors   string `yaml:"exotic_armors,omitempty" json:"exotic_armors"`
}

type Log struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
	File        string `yaml:"file,omitempty"`
}

func DefaultCollections() Collections {
	return Collections{
		PerkRow1:       "72365f8f-b13a-491c-a2eb-f39c8628d7d8",
		PerkRow2:       "f3168fe6-663b-49af-810c-0de65647ef5f",
		PerkRow34:      "28b23d0a-f78a-4fce-b29c-cb631ccb5613",
		ElementalWells: "5fe7ebc7-654e-4a62-84a0-c8c99c98d5cd",
		ExoticWeapons:  "d6389552-38f3-4f6e-bbb3-dd82fd260028",
		ExoticArmors:   "3e6ed160-7fc2-4a20-80bc-2a089e301e97",
	}
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:       defaultBaseURL,
			NotionVersion: defaultNotionVersion,
		},
		Commands:    slices.Clone(AllCommands),
		Collections: DefaultCollections(),
		Log:         Log{Level: "info"},
	}
}

// Load reads the config at path (the default path when empty), applies
// environment overrides and validates it.
func Load(path string) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return cfg, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile is Load without environment overrides.
func LoadFile(path string) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return cfg, err
	}
	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func read(path string) (Config, error) {
	cfg := Default()

	path, err := resolvePath(path)
	if err != nil {
		return cfg, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the API settings into the config at path, keeping every other
// key already in the file.
func Save(path string, cfg Config) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	normalize(&cfg)

	merged := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		if len(existing) > 0 {
			if err := yaml.Unmarshal(existing, &merged); err != nil {
				return err
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	apiMap := map[string]any{}
	if existingAPI, ok := merged["api"].(map[string]any); ok {
		for k, v := range existingAPI {
			apiMap[k] = v
		}
	}
	apiMap["base_url"] = cfg.API.BaseURL
	apiMap["notion_version"] = cfg.API.NotionVersion
	if cfg.API.Token == "" {
		delete(apiMap, "token")
	} else {
		apiMap["token"] = cfg.API.Token
	}
	merged["api"] = apiMap

	data, err := yaml.Marshal(merged)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func resolvePath(path string) (string, error) {
	if path = strings.TrimSpace(path); path != "" {
		return path, nil
	}
	return Path()
}

// CommandEnabled reports whether the named command group is enabled.
func (c Config) CommandEnabled(group string) bool {
	return slices.Contains(c.Commands, group)
}

type envOverrides struct {
	BaseURL       string   `env:"NOTION_API_BASE_URL"`
	NotionVersion string   `env:"NOTION_API_NOTION_VERSION"`
	Token         string   `env:"NOTION_API_TOKEN"`
	DiscordToken  string   `env:"D2WIKI_DISCORD_TOKEN"`
	GuildIDs      []string `env:"D2WIKI_DISCORD_GUILD_IDS" envSeparator:","`
	LogLevel      string   `env:"D2WIKI_LOG_LEVEL"`
}

func applyEnvOverrides(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if o.BaseURL != "" {
		cfg.API.BaseURL = o.BaseURL
	}
	if o.NotionVersion != "" {
		cfg.API.NotionVersion = o.NotionVersion
	}
	if o.Token != "" {
		cfg.API.Token = o.Token
	}
	if o.DiscordToken != "" {
		cfg.Discord.Token = o.DiscordToken
	}
	if len(o.GuildIDs) > 0 {
		cfg.Discord.GuildIDs = o.GuildIDs
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	return nil
}

func normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.API.BaseURL = strings.TrimSpace(cfg.API.BaseURL)
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.API.NotionVersion = strings.TrimSpace(cfg.API.NotionVersion)
	if cfg.API.NotionVersion == "" {
		cfg.API.NotionVersion = defaultNotionVersion
	}
	cfg.API.Token = strings.TrimSpace(cfg.API.Token)

	cfg.Discord.Token = strings.TrimSpace(cfg.Discord.Token)
	guilds := cfg.Discord.GuildIDs[:0]
	for _, id := range cfg.Discord.GuildIDs {
		if id = strings.TrimSpace(id); id != "" {
			guilds = append(guilds, id)
		}
	}
	cfg.Discord.GuildIDs = guilds

	commands := make([]string, 0, len(cfg.Commands))
	for _, c := range cfg.Commands {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" && !slices.Contains(commands, c) {
			commands = append(commands, c)
		}
	}
	if len(commands) == 0 {
		commands = slices.Clone(AllCommands)
	}
	cfg.Commands = commands

	defaults := DefaultCollections()
	fill := func(v *string, def string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = def
		}
	}
	fill(&cfg.Collections.PerkRow1, defaults.PerkRow1)
	fill(&cfg.Collections.PerkRow2, defaults.PerkRow2)
	fill(&cfg.Collections.PerkRow34, defaults.PerkRow34)
	fill(&cfg.Collections.ElementalWells, defaults.ElementalWells)
	fill(&cfg.Collections.ExoticWeapons, defaults.ExoticWeapons)
	fill(&cfg.Collections.ExoticArmors, defaults.ExoticArmors)

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
}

func validate(cfg *Config) error {
	for _, c := range cfg.Commands {
		if !slices.Contains(AllCommands, c) {
			return fmt.Errorf("unknown command group %q (want one of %s)", c, strings.Join(AllCommands, ", "))
		}
	}

	ids := []struct {
		name string
		v    *string
	}{
		{"perk_row1", &cfg.Collections.PerkRow1},
		{"perk_row2", &cfg.Collections.PerkRow2},
		{"perk_row34", &cfg.Collections.PerkRow34},
		{"elemental_wells", &cfg.Collections.ElementalWells},
		{"exotic_weapons", &cfg.Collections.ExoticWeapons},
		{"exotic_armors", &cfg.Collections.ExoticArmors},
	}
	for _, id := range ids {
		normalized, err := notion.NormalizeID(*id.v)
		if err != nil {
			return fmt.Errorf("collections.%s: %w", id.name, err)
		}
		*id.v = normalized
	}

	for i, c := range cfg.Contributors {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("contributors[%d]: id is required", i)
		}
	}
	return nil
}
