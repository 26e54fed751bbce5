// Package resolve picks the ticket data source under a strict three-tier
// policy: an explicit file beats the cached batch, which beats the bundled
// default dataset. The tiers have different failure rules, so the chain is
// written as plain sequential control flow rather than a strategy list.
package resolve

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ticket-analyzer/internal/metrics"
	"ticket-analyzer/internal/model"
	"ticket-analyzer/internal/store"
)

//go:embed base_data.json
var defaultData []byte

// ErrDataUnavailable means every tier failed to produce data. It is terminal
// for the request.
var ErrDataUnavailable = errors.New("no ticket data source available")

// Parser maps raw bytes to tickets. Owned by the parse package; the resolver
// only needs this one method.
type Parser interface {
	Parse(data []byte) ([]model.Ticket, error)
}

// Resolver resolves the ticket list for one analysis run.
type Resolver struct {
	store   store.BatchStore
	parser  Parser
	logger  *slog.Logger
	metrics *metrics.Metrics

	// defaultData is the bundled last-resort dataset; overridable in tests.
	defaultData []byte
	// now stamps saved batches; overridable in tests.
	now func() time.Time
}

// New creates a Resolver. m may be nil to disable tier accounting.
func New(st store.BatchStore, p Parser, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:       st,
		parser:      p,
		logger:      logger,
		metrics:     m,
		defaultData: defaultData,
		now:         time.Now,
	}
}

// Resolve produces the ticket list. An empty explicitPath means "no file
// given". Failures in the explicit-file tier are terminal: user-supplied
// input is never silently replaced by the cache.
func (r *Resolver) Resolve(ctx context.Context, explicitPath string) ([]model.Ticket, error) {
	if explicitPath != "" {
		return r.fromFile(ctx, explicitPath)
	}

	if tickets, ok := r.fromCache(ctx); ok {
		return tickets, nil
	}

	return r.fromDefault(ctx)
}

// fromFile reads and parses the user-supplied file, then persists the batch
// best-effort. Read and parse failures do not fall through to other tiers.
func (r *Resolver) fromFile(ctx context.Context, path string) ([]model.Ticket, error) {
	r.logger.Info("loading tickets from explicit file", slog.String("path", path))
	r.countTier("file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticket file %s: %w", path, err)
	}
	tickets, err := r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("explicit file %s: %w", path, err)
	}

	r.persist(ctx, tickets)
	return tickets, nil
}

// fromCache queries the batch store. A store error is logged and treated as
// a cache miss so the cold-start tier still gets a chance.
func (r *Resolver) fromCache(ctx context.Context) ([]model.Ticket, bool) {
	r.logger.Info("no file provided, checking cached batch")

	batch, err := r.store.LoadLatest(ctx)
	if err != nil {
		r.logger.Warn("batch cache read failed", slog.Any("error", err))
		return nil, false
	}
	if batch == nil {
		return nil, false
	}

	r.countTier("cache")
	r.logger.Info("using cached batch",
		slog.Time("uploaded_at", batch.UploadedAt),
		slog.Int("tickets", len(batch.Tickets)))
	return batch.Tickets, true
}

// fromDefault is the last resort: parse the bundled dataset and populate the
// cache for the next run. There is no further fallback.
func (r *Resolver) fromDefault(ctx context.Context) ([]model.Ticket, error) {
	r.logger.Warn("batch cache empty, cold start from bundled dataset")
	r.countTier("default")

	if len(r.defaultData) == 0 {
		return nil, fmt.Errorf("%w: bundled dataset missing", ErrDataUnavailable)
	}
	tickets, err := r.parser.Parse(r.defaultData)
	if err != nil {
		return nil, fmt.Errorf("%w: bundled dataset unparsable: %v", ErrDataUnavailable, err)
	}

	r.persist(ctx, tickets)
	return tickets, nil
}

// persist writes the batch to the cache. A write failure must not block a
// successful ingestion, so it is logged and swallowed. Empty parses are not
// cached.
func (r *Resolver) persist(ctx context.Context, tickets []model.Ticket) {
	if len(tickets) == 0 {
		r.logger.Warn("parsed ticket list is empty, skipping cache write")
		return
	}
	batch := model.TicketBatch{UploadedAt: r.now(), Tickets: tickets}
	if err := r.store.Save(ctx, batch); err != nil {
		r.logger.Warn("batch cache write failed", slog.Any("error", err))
		return
	}
	r.logger.Info("batch cached", slog.Int("tickets", len(tickets)))
}

func (r *Resolver) countTier(tier string) {
	if r.metrics != nil {
		r.metrics.ResolverTier.WithLabelValues(tier).Inc()
	}
}
