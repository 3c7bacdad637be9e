package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/d2wiki/internal/discord"
	"github.com/lox/d2wiki/internal/mcpserver"
	"github.com/lox/d2wiki/internal/output"
)

type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *Context) error {
	a, err := ctx.open()
	if err != nil {
		output.PrintError(err)
		return err
	}
	defer a.Close()

	bot, err := discord.New(a.cfg, a.lookup, a.logger)
	if err != nil {
		output.PrintError(err)
		return err
	}

	bg, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return bot.Run(bg)
}

type MCPCmd struct{}

func (c *MCPCmd) Run(ctx *Context) error {
	a, err := ctx.open()
	if err != nil {
		output.PrintError(err)
		return err
	}
	defer a.Close()

	bg, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.New(a.lookup, ctx.Version, a.logger).ServeStdio(bg, os.Stdin, os.Stdout)
}
