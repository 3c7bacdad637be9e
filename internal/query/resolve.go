package query

import (
	"context"
	"fmt"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/notion"
)

// Container is the resolved parent of a page, block or database. Exactly one
// of Page, Database and Block is set unless Type is workspace.
type Container struct {
	Type     notion.ParentType
	Page     *notion.Page
	Database *notion.Database
	Block    *notion.Block
}

// ResolveChildren lists every child block of blockID, following cursors and
// descending into blocks that have children of their own.
func (c *Client) ResolveChildren(ctx context.Context, blockID string) ([]notion.Block, error) {
	blocks := []notion.Block{}
	cursor := ""
	for {
		resp, err := c.doc.ListBlockChildren(ctx, blockID, cursor, api.DefaultPageSize)
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", blockID, err)
		}
		for _, raw := range resp.Results {
			b, err := notion.DecodeBlock(raw)
			if err != nil {
				return nil, err
			}
			if b.HasChildren {
				if b.Children, err = c.ResolveChildren(ctx, b.ID); err != nil {
					return nil, err
				}
			}
			blocks = append(blocks, b)
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return blocks, nil
		}
		cursor = *resp.NextCursor
	}
}

func (c *Client) ResolvePage(ctx context.Context, p *notion.Page) error {
	children, err := c.ResolveChildren(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Children = children
	return nil
}

func (c *Client) ResolveBlock(ctx context.Context, b *notion.Block) error {
	children, err := c.ResolveChildren(ctx, b.ID)
	if err != nil {
		return err
	}
	b.Children = children
	return nil
}

// ResolveArmorDescription fills the description of an armor from the
// paragraphs of its page. Armors that already have one are left alone.
func (c *Client) ResolveArmorDescription(ctx context.Context, a *d2.ExoticArmor) error {
	if a.Description != nil {
		return nil
	}
	page, err := c.RetrievePage(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := c.ResolvePage(ctx, &page); err != nil {
		return err
	}
	a.SetDescription(page.Children)
	return nil
}

func (c *Client) RetrievePage(ctx context.Context, id string) (notion.Page, error) {
	raw, err := c.doc.RetrievePage(ctx, id)
	if err != nil {
		return notion.Page{}, fmt.Errorf("retrieve page %s: %w", id, err)
	}
	return notion.DecodePage(raw)
}

func (c *Client) RetrieveBlock(ctx context.Context, id string) (notion.Block, error) {
	raw, err := c.doc.RetrieveBlock(ctx, id)
	if err != nil {
		return notion.Block{}, fmt.Errorf("retrieve block %s: %w", id, err)
	}
	return notion.DecodeBlock(raw)
}

func (c *Client) RetrieveDatabase(ctx context.Context, id string) (notion.Database, error) {
	raw, err := c.doc.RetrieveDatabase(ctx, id)
	if err != nil {
		return notion.Database{}, fmt.Errorf("retrieve database %s: %w", id, err)
	}
	return notion.DecodeDatabase(raw)
}

func (c *Client) RetrieveUser(ctx context.Context, id string) (notion.User, error) {
	raw, err := c.doc.RetrieveUser(ctx, id)
	if err != nil {
		return notion.User{}, fmt.Errorf("retrieve user %s: %w", id, err)
	}
	return notion.DecodeUser(raw)
}

// ResolveParent fetches the container p points at.
func (c *Client) ResolveParent(ctx context.Context, p notion.Parent) (Container, error) {
	out := Container{Type: p.Type}
	switch p.Type {
	case notion.ParentWorkspace:
		return out, nil
	case notion.ParentPage:
		page, err := c.RetrievePage(ctx, p.ID)
		if err != nil {
			return Container{}, err
		}
		out.Page = &page
	case notion.ParentDatabase:
		db, err := c.RetrieveDatabase(ctx, p.ID)
		if err != nil {
			return Container{}, err
		}
		out.Database = &db
	case notion.ParentBlock:
		b, err := c.RetrieveBlock(ctx, p.ID)
		if err != nil {
			return Container{}, err
		}
		out.Block = &b
	default:
		return Container{}, fmt.Errorf("unknown parent type %q", p.Type)
	}
	return out, nil
}

func (c *Client) ResolveUser(ctx context.Context, u notion.PartialUser) (notion.User, error) {
	return c.RetrieveUser(ctx, u.ID)
}
