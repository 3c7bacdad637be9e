package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/lookup"
	"github.com/lox/d2wiki/internal/output"
)

type PerkCmd struct {
	Query  string `arg:"" help:"Perk name or part of it"`
	Column string `help:"Perk column (barrel, scope, sight, magazine, ammo, trait)" short:"c" required:""`
	JSON   bool   `help:"Output as JSON" short:"j"`
}

func (c *PerkCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	column, err := d2.PerkColumns.Parse(strings.ToLower(strings.TrimSpace(c.Column)))
	if err != nil {
		err := &output.UserError{
			Message: err.Error(),
			Hint:    fmt.Sprintf("Valid columns: %s", strings.Join(d2.PerkColumns.Labels(), ", ")),
		}
		output.PrintError(err)
		return err
	}
	return runLookup(ctx, func(bg context.Context, svc *lookup.Service) (embed.Message, error) {
		return svc.Perk(bg, column, c.Query)
	})
}

type WellCmd struct {
	Query string `arg:"" help:"Elemental well mod name or part of it"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *WellCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runLookup(ctx, func(bg context.Context, svc *lookup.Service) (embed.Message, error) {
		return svc.Well(bg, c.Query)
	})
}

type WeaponCmd struct {
	Query string `arg:"" help:"Exotic weapon name or part of it"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *WeaponCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runLookup(ctx, func(bg context.Context, svc *lookup.Service) (embed.Message, error) {
		return svc.ExoticWeapon(bg, c.Query)
	})
}

type ArmorCmd struct {
	Query string `arg:"" help:"Exotic armor name or part of it"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *ArmorCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runLookup(ctx, func(bg context.Context, svc *lookup.Service) (embed.Message, error) {
		return svc.ExoticArmor(bg, c.Query)
	})
}

func runLookup(ctx *Context, fn func(context.Context, *lookup.Service) (embed.Message, error)) error {
	a, err := ctx.open()
	if err != nil {
		output.PrintError(err)
		return err
	}
	defer a.Close()

	msg, err := fn(context.Background(), a.lookup)
	if err != nil {
		output.PrintError(err)
		return err
	}
	return printMessage(ctx, msg)
}

func printMessage(ctx *Context, msg embed.Message) error {
	if ctx.JSON {
		return writeJSON(ctx.out(), msg)
	}
	return output.PrintMessage(ctx.out(), msg)
}

type InfoCmd struct {
	Links bool `help:"Show links instead of contributors"`
	JSON  bool `help:"Output as JSON" short:"j"`
}

func (c *InfoCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	if c.Links {
		return printMessage(ctx, lookup.Links())
	}

	cfg, err := ctx.loadConfig()
	if err != nil {
		output.PrintError(err)
		return err
	}
	return printMessage(ctx, lookup.Info(cfg.Contributors))
}
