// Package mcpserver exposes lookups as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/lookup"
)

const (
	ToolPerk         = "lookup_perk"
	ToolWell         = "lookup_elemental_well"
	ToolExoticWeapon = "lookup_exotic_weapon"
	ToolExoticArmor  = "lookup_exotic_armor"
)

type Server struct {
	svc    *lookup.Service
	logger *zap.Logger
	mcp    *server.MCPServer
}

func New(svc *lookup.Service, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		svc:    svc,
		logger: logger.Named("mcp"),
		mcp:    server.NewMCPServer("d2wiki", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool(ToolPerk,
		mcp.WithDescription("Look up a Destiny 2 weapon perk by name in one perk column."),
		queryArg("Perk name or part of it"),
		mcp.WithString("column",
			mcp.Required(),
			mcp.Description("Perk column to search"),
			mcp.Enum(d2.PerkColumns.Labels()...),
		),
	), s.lookupPerk)
	s.mcp.AddTool(mcp.NewTool(ToolWell,
		mcp.WithDescription("Look up a Destiny 2 elemental well mod by name."),
		queryArg("Mod name or part of it"),
	), s.queryTool(ToolWell, svc.Well))
	s.mcp.AddTool(mcp.NewTool(ToolExoticWeapon,
		mcp.WithDescription("Look up a Destiny 2 exotic weapon by name."),
		queryArg("Weapon name or part of it"),
	), s.queryTool(ToolExoticWeapon, svc.ExoticWeapon))
	s.mcp.AddTool(mcp.NewTool(ToolExoticArmor,
		mcp.WithDescription("Look up a Destiny 2 exotic armor piece by name."),
		queryArg("Armor name or part of it"),
	), s.queryTool(ToolExoticArmor, svc.ExoticArmor))

	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over in and out until ctx is cancelled or in
// is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	return stdio.Listen(ctx, in, out)
}

func queryArg(desc string) mcp.ToolOption {
	return mcp.WithString("query", mcp.Required(), mcp.Description(desc))
}

func (s *Server) lookupPerk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label, err := req.RequireString("column")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	column, err := d2.PerkColumns.Parse(label)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := s.svc.Perk(ctx, column, strings.TrimSpace(text))
	return s.result(ToolPerk, m, err), nil
}

func (s *Server) queryTool(name string, fn func(context.Context, string) (embed.Message, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		m, err := fn(ctx, strings.TrimSpace(text))
		return s.result(name, m, err), nil
	}
}

func (s *Server) result(tool string, m embed.Message, err error) *mcp.CallToolResult {
	if err != nil {
		s.logger.Error("tool failed", zap.String("tool", tool), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("%s\n%v", embed.Markdown(m), err))
	}
	return mcp.NewToolResultText(embed.Markdown(m))
}
