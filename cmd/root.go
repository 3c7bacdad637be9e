package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/logging"
	"github.com/lox/d2wiki/internal/lookup"
	"github.com/lox/d2wiki/internal/output"
	"github.com/lox/d2wiki/internal/query"
)

type CLI struct {
	Config   string           `help:"Config file path (default ~/.config/d2wiki/config.yaml)" type:"path" env:"D2WIKI_CONFIG"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" name:"log-level"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Perk   PerkCmd   `cmd:"" help:"Look up a weapon perk"`
	Well   WellCmd   `cmd:"" help:"Look up an elemental well mod"`
	Weapon WeaponCmd `cmd:"" help:"Look up an exotic weapon"`
	Armor  ArmorCmd  `cmd:"" help:"Look up an exotic armor piece"`
	Page   PageCmd   `cmd:"" help:"Inspect Notion pages"`
	Info   InfoCmd   `cmd:"" help:"Show bot information and contributors"`
	Serve  ServeCmd  `cmd:"" help:"Run the Discord bot"`
	MCP    MCPCmd    `cmd:"" name:"mcp" help:"Serve lookups as MCP tools over stdio"`
	Conf   ConfigCmd `cmd:"" name:"config" help:"Manage configuration"`
}

// Context is passed to every command's Run.
type Context struct {
	ConfigPath string
	LogLevel   string
	Version    string
	JSON       bool

	Stdout io.Writer
}

func (c *CLI) Context(version string) *Context {
	return &Context{
		ConfigPath: c.Config,
		LogLevel:   c.LogLevel,
		Version:    version,
	}
}

func (c *Context) out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Context) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	return cfg, nil
}

// app holds what the lookup commands share.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	query  *query.Client
	lookup *lookup.Service
}

func (c *Context) open() (*app, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(cfg.API, cfg.API.Token, api.WithLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, &output.UserError{
			Message: fmt.Sprintf("create Notion API client: %v", err),
			Hint:    "Run 'd2wiki config token setup' or set NOTION_API_TOKEN.",
		}
	}

	q := query.New(client, cfg.Collections, logger)
	return &app{
		cfg:    cfg,
		logger: logger,
		query:  q,
		lookup: lookup.New(q, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func openBrowserURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func tokenSource(fileCfg config.Config) string {
	switch {
	case strings.TrimSpace(os.Getenv("NOTION_API_TOKEN")) != "":
		return "env"
	case strings.TrimSpace(fileCfg.API.Token) != "":
		return "config"
	default:
		return "none"
	}
}
