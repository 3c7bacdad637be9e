package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/notion"
	"github.com/lox/d2wiki/internal/output"
	"github.com/lox/d2wiki/internal/query"
)

type PageCmd struct {
	View PageViewCmd `cmd:"" help:"View a page with its parent, authors and content"`
}

type PageViewCmd struct {
	Page string `arg:"" help:"Page URL or ID"`
	JSON bool   `help:"Output as JSON" short:"j"`
	Raw  bool   `help:"Print content without terminal formatting" short:"r"`
}

func (c *PageViewCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runPageView(ctx, c.Page, c.Raw)
}

func runPageView(ctx *Context, page string, raw bool) error {
	id, err := notion.NormalizeID(page)
	if err != nil {
		err := &output.UserError{Message: fmt.Sprintf("could not extract page ID from %q", page), Hint: "Use the page ID directly instead."}
		output.PrintError(err)
		return err
	}

	a, err := ctx.open()
	if err != nil {
		output.PrintError(err)
		return err
	}
	defer a.Close()

	view, err := fetchPageView(context.Background(), a.query, a.logger, id)
	if err != nil {
		output.PrintError(err)
		return err
	}

	switch {
	case ctx.JSON:
		return writeJSON(ctx.out(), view)
	case raw:
		_, err := fmt.Fprintln(ctx.out(), view.Content)
		return err
	}
	if view.Content == "" {
		output.PrintWarning("No paragraph content found")
	}
	return output.PrintPage(ctx.out(), view)
}

func fetchPageView(ctx context.Context, q *query.Client, logger *zap.Logger, id string) (output.PageView, error) {
	p, err := q.RetrievePage(ctx, id)
	if api.IsNotFound(err) {
		return fetchBlockView(ctx, q, logger, id)
	}
	if err != nil {
		return output.PageView{}, err
	}
	if err := q.ResolvePage(ctx, &p); err != nil {
		return output.PageView{}, err
	}
	parent, err := q.ResolveParent(ctx, p.Parent)
	if err != nil {
		return output.PageView{}, err
	}

	view := output.PageView{
		ID:             p.ID,
		Title:          p.Title(),
		URL:            p.URL,
		Parent:         describeParent(parent),
		CreatedTime:    p.CreatedTime,
		CreatedBy:      userName(ctx, q, logger, p.CreatedBy),
		LastEditedTime: p.LastEditedTime,
		LastEditedBy:   userName(ctx, q, logger, p.LastEditedBy),
		Archived:       p.Archived,
		Content:        pageContent(p.Children),
	}
	if p.Icon != nil {
		view.Icon = p.Icon.Emoji
	}
	return view, nil
}

// fetchBlockView shows a block id like a page, titled by the block type.
func fetchBlockView(ctx context.Context, q *query.Client, logger *zap.Logger, id string) (output.PageView, error) {
	b, err := q.RetrieveBlock(ctx, id)
	if err != nil {
		return output.PageView{}, err
	}
	if err := q.ResolveBlock(ctx, &b); err != nil {
		return output.PageView{}, err
	}
	parent, err := q.ResolveParent(ctx, b.Parent)
	if err != nil {
		return output.PageView{}, err
	}

	return output.PageView{
		ID:             b.ID,
		Title:          string(b.Type),
		Parent:         describeParent(parent),
		CreatedTime:    b.CreatedTime,
		CreatedBy:      userName(ctx, q, logger, b.CreatedBy),
		LastEditedTime: b.LastEditedTime,
		LastEditedBy:   userName(ctx, q, logger, b.LastEditedBy),
		Archived:       b.Archived,
		Content:        pageContent([]notion.Block{b}),
	}, nil
}

// userName resolves a user's display name. Integrations without user
// capabilities get a 403, in which case the id is shown.
func userName(ctx context.Context, q *query.Client, logger *zap.Logger, u notion.PartialUser) string {
	user, err := q.ResolveUser(ctx, u)
	if err != nil {
		logger.Warn("resolving user", zap.String("user_id", u.ID), zap.Error(err))
		return u.ID
	}
	return user.DisplayName()
}

func describeParent(c query.Container) string {
	switch {
	case c.Page != nil:
		return "page " + c.Page.Title()
	case c.Database != nil:
		return "database " + notion.Flatten(c.Database.Title)
	case c.Block != nil:
		return "block " + c.Block.ID
	default:
		return string(c.Type)
	}
}

// pageContent renders every paragraph in document order, nested ones
// included.
func pageContent(blocks []notion.Block) string {
	var parts []string
	var walk func([]notion.Block)
	walk = func(blocks []notion.Block) {
		for _, b := range blocks {
			if b.Paragraph != nil {
				if text := notion.Colorize(b.Paragraph.RichText); text != "" {
					parts = append(parts, text)
				}
			}
			walk(b.Children)
		}
	}
	walk(blocks)
	return strings.Join(parts, "\n")
}
