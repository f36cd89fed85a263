package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Dashboard runs at most one aggregation at a time. Starting a new load
// cancels the one in flight; the cancelled load returns no result.
type Dashboard struct {
	aggregator *Aggregator
	logger     *log.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

// NewDashboard creates a Dashboard backed by aggregator.
func NewDashboard(aggregator *Aggregator, logger *log.Logger) *Dashboard {
	return &Dashboard{aggregator: aggregator, logger: logger}
}

// Load performs a fresh aggregation run for token. A nil summary with a nil
// error means the load was cancelled, by ctx, by Cancel or by a newer Load,
// and nothing should be shown.
func (d *Dashboard) Load(ctx context.Context, token string) (*domain.UserSummary, error) {
	if ctx.Err() != nil {
		return nil, nil
	}

	loadCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	if d.cancel != nil {
		d.logger.Println("Dashboard: Cancelling previous load.")
		d.cancel()
	}
	d.generation++
	generation := d.generation
	d.cancel = cancel
	d.mu.Unlock()
	defer d.release(generation, cancel)

	summary, err := d.aggregator.FetchUserSummary(loadCtx, token)

	if IsCancellation(loadCtx.Err()) || IsCancellation(err) {
		d.logger.Println("Dashboard: Load cancelled, discarding results.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load GitHub data: %w", err)
	}
	return summary, nil
}

// Refresh is Load under the name the presentation layer uses for pull-to-refresh.
func (d *Dashboard) Refresh(ctx context.Context, token string) (*domain.UserSummary, error) {
	return d.Load(ctx, token)
}

// Cancel stops the load in flight, if any.
func (d *Dashboard) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// release frees the load's context and forgets it unless a newer load took over.
func (d *Dashboard) release(generation uint64, cancel context.CancelFunc) {
	cancel()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation == generation {
		d.cancel = nil
	}
}
