package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/output"
)

const integrationsURL = "https://www.notion.so/profile/integrations/internal"

type ConfigTokenCmd struct {
	Setup  TokenSetupCmd  `cmd:"" help:"Set up the Notion API token"`
	Status TokenStatusCmd `cmd:"" default:"withargs" help:"Show Notion API token status"`
	Verify TokenVerifyCmd `cmd:"" help:"Verify the Notion API token"`
	Unset  TokenUnsetCmd  `cmd:"" help:"Remove the saved Notion API token"`
}

type TokenSetupCmd struct {
	Token    string `help:"Notion API token (skips the token prompt)" name:"api-token"`
	NoVerify bool   `help:"Save the token without verifying it against Notion" name:"no-verify"`
	OpenDocs bool   `help:"Open the integrations page in a browser first" name:"open-docs"`
}

func (c *TokenSetupCmd) Run(ctx *Context) error {
	err := runTokenSetup(ctx, tokenSetupOptions{
		Token:    c.Token,
		NoVerify: c.NoVerify,
		OpenDocs: c.OpenDocs,
	})
	if err != nil {
		output.PrintError(err)
	}
	return err
}

type TokenStatusCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *TokenStatusCmd) Run(ctx *Context) error {
	fileCfg, err := config.LoadFile(ctx.ConfigPath)
	if err != nil {
		output.PrintError(err)
		return err
	}
	effectiveCfg, err := ctx.loadConfig()
	if err != nil {
		output.PrintError(err)
		return err
	}
	path, err := configPath(ctx)
	if err != nil {
		output.PrintError(err)
		return err
	}

	source := tokenSource(fileCfg)
	configured := strings.TrimSpace(effectiveCfg.API.Token) != ""

	if c.JSON {
		return writeJSON(ctx.out(), map[string]any{
			"configured":     configured,
			"token_source":   source,
			"config_path":    path,
			"base_url":       effectiveCfg.API.BaseURL,
			"notion_version": effectiveCfg.API.NotionVersion,
		})
	}

	if configured {
		output.PrintSuccess("Notion API token is configured")
	} else {
		output.PrintWarning("Notion API token is not configured")
	}

	w := ctx.out()
	_, _ = fmt.Fprintf(w, "Source:         %s\n", source)
	_, _ = fmt.Fprintf(w, "Config path:    %s\n", path)
	_, _ = fmt.Fprintf(w, "API base URL:   %s\n", effectiveCfg.API.BaseURL)
	_, _ = fmt.Fprintf(w, "Notion version: %s\n", effectiveCfg.API.NotionVersion)
	if source == "env" {
		output.PrintInfo("Token comes from NOTION_API_TOKEN and is not persisted in config.")
	}
	return nil
}

type TokenVerifyCmd struct {
	Token string `help:"Token to verify (defaults to the configured token)" name:"api-token"`
}

func (c *TokenVerifyCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		output.PrintError(err)
		return err
	}

	token := strings.TrimSpace(c.Token)
	if token == "" {
		token = strings.TrimSpace(cfg.API.Token)
	}
	if token == "" {
		err := &output.UserError{Message: "Notion API token is not configured.", Hint: "Run 'd2wiki config token setup' first."}
		output.PrintError(err)
		return err
	}

	user, err := verifyToken(cfg.API, token)
	if err != nil {
		output.PrintError(err)
		return err
	}

	output.PrintSuccess(fmt.Sprintf("Notion API token is valid (%s)", user))
	return nil
}

type TokenUnsetCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *TokenUnsetCmd) Run(ctx *Context) error {
	fileCfg, err := config.LoadFile(ctx.ConfigPath)
	if err != nil {
		output.PrintError(err)
		return err
	}
	path, err := configPath(ctx)
	if err != nil {
		output.PrintError(err)
		return err
	}

	hadToken := strings.TrimSpace(fileCfg.API.Token) != ""
	fileCfg.API.Token = ""
	if err := config.Save(ctx.ConfigPath, fileCfg); err != nil {
		output.PrintError(err)
		return err
	}

	if c.JSON {
		return writeJSON(ctx.out(), map[string]any{
			"had_token":   hadToken,
			"config_path": path,
		})
	}

	if hadToken {
		output.PrintSuccess("Removed saved Notion API token")
	} else {
		output.PrintInfo("No saved Notion API token was set")
	}
	if strings.TrimSpace(os.Getenv("NOTION_API_TOKEN")) != "" {
		output.PrintWarning("NOTION_API_TOKEN is still set in your environment and will override config.")
	}
	return nil
}

type tokenSetupOptions struct {
	Token    string
	NoVerify bool
	OpenDocs bool
}

func runTokenSetup(ctx *Context, opts tokenSetupOptions) error {
	if opts.OpenDocs {
		if err := openBrowserURL(integrationsURL); err != nil {
			output.PrintWarning(fmt.Sprintf("Could not open browser automatically: %v", err))
		}
	}

	cfgEffective, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	cfgFile, err := config.LoadFile(ctx.ConfigPath)
	if err != nil {
		return err
	}

	token := strings.TrimSpace(opts.Token)
	if token == "" {
		if !isInteractiveTerminal() {
			return &output.UserError{
				Message: "Token input requires a terminal.",
				Hint:    "Pass --api-token or set NOTION_API_TOKEN.",
			}
		}
		token, err = runTokenSetupWizard()
		if err != nil {
			if errors.Is(err, errTokenSetupCancelled) {
				output.PrintInfo("Token setup cancelled")
				return nil
			}
			return err
		}
	}

	var user string
	if !opts.NoVerify {
		if user, err = verifyToken(cfgEffective.API, token); err != nil {
			return err
		}
	}

	cfgFile.API.BaseURL = cfgEffective.API.BaseURL
	cfgFile.API.NotionVersion = cfgEffective.API.NotionVersion
	cfgFile.API.Token = token
	if err := config.Save(ctx.ConfigPath, cfgFile); err != nil {
		return err
	}

	output.PrintSuccess("Notion API token saved")
	if !opts.NoVerify {
		output.PrintSuccess(fmt.Sprintf("Notion API token verified (%s)", user))
	}
	return nil
}

// verifyToken returns the display name of the integration the token
// belongs to.
func verifyToken(cfg config.APIConfig, token string) (string, error) {
	client, err := api.NewClient(cfg, token)
	if err != nil {
		return "", err
	}
	user, err := client.VerifyToken(context.Background())
	if err != nil {
		if api.IsUnauthorized(err) {
			return "", &output.UserError{Message: "Notion rejected the token.", Hint: "Create an internal integration at " + integrationsURL}
		}
		return "", err
	}
	return user.DisplayName(), nil
}

func configPath(ctx *Context) (string, error) {
	if ctx.ConfigPath != "" {
		return ctx.ConfigPath, nil
	}
	return config.Path()
}
