package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/notion"
	"github.com/lox/d2wiki/internal/notiontest"
	"github.com/lox/d2wiki/internal/output"
	"github.com/lox/d2wiki/internal/query"
)

func notionContext(t *testing.T) (*Context, *notiontest.Server, *bytes.Buffer) {
	t.Helper()
	ctx := testContext(t)
	srv := notiontest.NewServer(t)
	t.Setenv("NOTION_API_BASE_URL", srv.URL)
	t.Setenv("NOTION_API_TOKEN", "test-token")
	t.Setenv("D2WIKI_LOG_LEVEL", "error")

	var buf bytes.Buffer
	ctx.Stdout = &buf
	return ctx, srv, &buf
}

func TestPerkCmdPrintsJSON(t *testing.T) {
	ctx, srv, buf := notionContext(t)
	srv.SetQuery(config.DefaultCollections().PerkRow1, notiontest.Row("p1", map[string]any{
		d2.PropName: notiontest.Title("Arrowhead Brake"),
		d2.PropDesc: notiontest.RichText("Lightly controls recoil"),
	}))

	cmd := PerkCmd{Query: "Arrowhead", Column: "Barrel", JSON: true}
	require.NoError(t, cmd.Run(ctx))

	var got embed.Message
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Arrowhead Brake", got.Title)
	require.NotEmpty(t, got.Fields)
	assert.Equal(t, embed.SourceFieldName, got.Fields[len(got.Fields)-1].Name)
}

func TestPerkCmdRejectsUnknownColumn(t *testing.T) {
	ctx, srv, _ := notionContext(t)

	cmd := PerkCmd{Query: "x", Column: "stock"}
	err := cmd.Run(ctx)
	require.Error(t, err)
	var userErr *output.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Hint, "barrel")
	assert.Empty(t, srv.Requests())
}

func TestLookupCmdReturnsRemoteError(t *testing.T) {
	ctx, srv, buf := notionContext(t)
	srv.Fail("/databases/", 500)

	cmd := WeaponCmd{Query: "Ace", JSON: true}
	assert.Error(t, cmd.Run(ctx))
	assert.Empty(t, buf.String())
}

func TestLookupCmdWithoutTokenHintsSetup(t *testing.T) {
	ctx := testContext(t)

	cmd := WellCmd{Query: "Font"}
	err := cmd.Run(ctx)
	var userErr *output.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Hint, "config token setup")
}

func TestInfoCmdListsContributors(t *testing.T) {
	ctx := testContext(t)
	var buf bytes.Buffer
	ctx.Stdout = &buf
	require.NoError(t, writeTestConfig(ctx.ConfigPath, "contributors:\n  - id: \"99\"\n    comment: 데이터\n"))

	require.NoError(t, (&InfoCmd{JSON: true}).Run(ctx))

	var got embed.Message
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Fields, 3)
	assert.Equal(t, "<@!99>: 데이터", got.Fields[2].Value)
}

func TestFetchPageView(t *testing.T) {
	srv := notiontest.NewServer(t)
	q := query.New(srv.Client(t), config.DefaultCollections(), zap.NewNop())

	page := notiontest.Page("a1", map[string]any{"이름": notiontest.Title("Celestial Nighthawk")})
	page["parent"] = map[string]any{"type": "database_id", "database_id": "d1"}
	page["icon"] = map[string]any{"type": "emoji", "emoji": "🦅"}
	srv.SetObject("/pages/a1", page)
	srv.SetObject("/databases/d1", notiontest.Database("d1", "Exotic Armor"))
	srv.SetObject("/users/u1", notiontest.User("u1", "Ghost"))
	srv.SetChildren("a1",
		[]any{notiontest.Paragraph("p1", "a1", true, "Golden Gun fires one shot.")},
	)
	srv.SetChildren("p1", []any{notiontest.Paragraph("p2", "p1", false, "Precision kills explode.")})

	view, err := fetchPageView(context.Background(), q, zap.NewNop(), "a1")
	require.NoError(t, err)

	assert.Equal(t, "Celestial Nighthawk", view.Title)
	assert.Equal(t, "🦅", view.Icon)
	assert.Equal(t, "database Exotic Armor", view.Parent)
	assert.Equal(t, "Ghost", view.CreatedBy)
	assert.Equal(t,
		"```ansi\n\x1b[0;37mGolden Gun fires one shot.\n```\n```ansi\n\x1b[0;37mPrecision kills explode.\n```",
		view.Content)
}

func TestFetchPageViewFallsBackToUserID(t *testing.T) {
	srv := notiontest.NewServer(t)
	q := query.New(srv.Client(t), config.DefaultCollections(), zap.NewNop())
	srv.SetObject("/pages/a1", notiontest.Page("a1", nil))
	srv.SetChildren("a1")

	view, err := fetchPageView(context.Background(), q, zap.NewNop(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "u1", view.LastEditedBy)
	assert.Equal(t, "workspace", view.Parent)
	assert.Empty(t, view.Content)
}

func TestFetchPageViewResolvesBlockIDs(t *testing.T) {
	srv := notiontest.NewServer(t)
	q := query.New(srv.Client(t), config.DefaultCollections(), zap.NewNop())
	srv.SetObject("/blocks/b1", notiontest.Paragraph("b1", "a1", true, "Golden Gun fires one shot."))
	srv.SetChildren("b1", []any{notiontest.Paragraph("b2", "b1", false, "Precision kills explode.")})
	srv.SetObject("/pages/a1", notiontest.Page("a1", map[string]any{"이름": notiontest.Title("Celestial Nighthawk")}))
	srv.SetObject("/users/u1", notiontest.User("u1", "Ghost"))

	view, err := fetchPageView(context.Background(), q, zap.NewNop(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "b1", view.ID)
	assert.Equal(t, "paragraph", view.Title)
	assert.Equal(t, "page Celestial Nighthawk", view.Parent)
	assert.Equal(t, "Ghost", view.CreatedBy)
	assert.Equal(t,
		"```ansi\n\x1b[0;37mGolden Gun fires one shot.\n```\n```ansi\n\x1b[0;37mPrecision kills explode.\n```",
		view.Content)
	assert.Equal(t, 1, srv.Count("/pages/b1"))
	assert.Equal(t, 1, srv.Count("/blocks/b1/children"))
}

func TestFetchPageViewMissingEverywhere(t *testing.T) {
	srv := notiontest.NewServer(t)
	q := query.New(srv.Client(t), config.DefaultCollections(), zap.NewNop())

	_, err := fetchPageView(context.Background(), q, zap.NewNop(), "gone")
	require.Error(t, err)
	assert.Equal(t, 1, srv.Count("/blocks/gone"))
}

func TestDescribeParent(t *testing.T) {
	assert.Equal(t, "block b1", describeParent(query.Container{Type: notion.ParentBlock, Block: &notion.Block{ID: "b1"}}))
	assert.Equal(t, "workspace", describeParent(query.Container{Type: notion.ParentWorkspace}))
}

func TestConfigShowJSONRedactsTokens(t *testing.T) {
	ctx, _, buf := notionContext(t)
	ctx.JSON = true

	require.NoError(t, runConfigShow(ctx))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["api_token_set"])
	assert.NotContains(t, buf.String(), "test-token")
	cols, ok := got["collections"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, config.DefaultCollections().ExoticArmors, cols["exotic_armors"])
}
