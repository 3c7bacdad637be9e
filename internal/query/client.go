// Package query fetches rows and page content from Notion and projects them
// into records.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/d2"
)

// DocumentService is the subset of the Notion API the client uses.
type DocumentService interface {
	QueryDatabase(ctx context.Context, databaseID string, body map[string]any) (*api.ListResponse, error)
	RetrievePage(ctx context.Context, pageID string) (json.RawMessage, error)
	RetrieveBlock(ctx context.Context, blockID string) (json.RawMessage, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (json.RawMessage, error)
	RetrieveUser(ctx context.Context, userID string) (json.RawMessage, error)
	ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*api.ListResponse, error)
}

type Client struct {
	doc         DocumentService
	collections config.Collections
	logger      *zap.Logger
}

func New(doc DocumentService, collections config.Collections, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{doc: doc, collections: collections, logger: logger}
}

// Query returns the rows of collectionID whose name contains text. Only the
// first response page is returned.
func (c *Client) Query(ctx context.Context, collectionID, text string) ([]json.RawMessage, error) {
	resp, err := c.doc.QueryDatabase(ctx, collectionID, map[string]any{
		"filter": map[string]any{
			"property": d2.PropName,
			"rich_text": map[string]any{
				"contains": text,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", collectionID, err)
	}
	return resp.Results, nil
}

func (c *Client) Perks(ctx context.Context, column d2.PerkColumn, text string) ([]d2.Perk, error) {
	collection, err := c.perkCollection(column)
	if err != nil {
		return nil, err
	}
	return queryRecords(ctx, c, "perk", collection, text, d2.DecodePerk)
}

func (c *Client) ElementalWells(ctx context.Context, text string) ([]d2.ElementalWellMod, error) {
	return queryRecords(ctx, c, "elemental well mod", c.collections.ElementalWells, text, d2.DecodeElementalWellMod)
}

func (c *Client) ExoticWeapons(ctx context.Context, text string) ([]d2.ExoticWeapon, error) {
	return queryRecords(ctx, c, "exotic weapon", c.collections.ExoticWeapons, text, d2.DecodeExoticWeapon)
}

// ExoticArmors queries armors and resolves each description from its page,
// one after another.
func (c *Client) ExoticArmors(ctx context.Context, text string) ([]d2.ExoticArmor, error) {
	armors, err := queryRecords(ctx, c, "exotic armor", c.collections.ExoticArmors, text, d2.DecodeExoticArmor)
	if err != nil {
		return nil, err
	}
	for i := range armors {
		if err := c.ResolveArmorDescription(ctx, &armors[i]); err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) || ctx.Err() != nil {
				return nil, err
			}
			c.logger.Warn("skipping armor description",
				zap.String("record_id", armors[i].ID),
				zap.Error(err))
		}
	}
	return armors, nil
}

func (c *Client) perkCollection(column d2.PerkColumn) (string, error) {
	if !d2.PerkColumns.Contains(column) {
		return "", fmt.Errorf("unknown perk column %q", column)
	}
	switch column.Row() {
	case d2.PerkRow2:
		return c.collections.PerkRow2, nil
	case d2.PerkRow34:
		return c.collections.PerkRow34, nil
	default:
		return c.collections.PerkRow1, nil
	}
}

// queryRecords decodes each row, skipping rows that fail to decode.
func queryRecords[T any](ctx context.Context, c *Client, entity, collection, text string, decode func([]byte) (T, error)) ([]T, error) {
	rows, err := c.Query(ctx, collection, text)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := decode(row)
		if err != nil {
			id, _ := jsonparser.GetString(row, "id")
			c.logger.Warn("skipping undecodable row",
				zap.String("entity", entity),
				zap.String("record_id", id),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
