package search

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureIndices provisions every collection idempotently: probe for the
// index, create it only when absent. Safe to run on every startup.
func (c *Client) EnsureIndices(ctx context.Context) error {
	for _, kind := range []string{KindUsers, KindFuelEntries} {
		index := c.IndexName(kind)

		exists, err := c.IndexExists(ctx, index)
		if err != nil {
			return fmt.Errorf("check index %s: %w", index, err)
		}
		if exists {
			slog.Debug("index already exists", "index", index)
			continue
		}

		if err := c.CreateIndex(ctx, index, IndexMappings[kind]); err != nil {
			return fmt.Errorf("create index %s: %w", index, err)
		}
		slog.Info("created index", "index", index)
	}
	return nil
}
