// Package store defines the batch cache contract shared by the SQLite and
// Redis backends.
package store

import (
	"context"

	"ticket-analyzer/internal/model"
)

// BatchStore persists the most recent ticket batch. LoadLatest returns the
// batch with the newest upload timestamp, or (nil, nil) when the cache is
// empty. Implementations must never let a read observe a partially written
// batch.
type BatchStore interface {
	Save(ctx context.Context, batch model.TicketBatch) error
	LoadLatest(ctx context.Context) (*model.TicketBatch, error)
	Close() error
}
