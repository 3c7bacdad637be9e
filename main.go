package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/d2wiki/cmd"
)

var version = "dev"

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("d2wiki"),
		kong.Description("Destiny 2 lookups backed by Notion databases"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(cli.Context(version))
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
