// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/naka-gawa/github-dashboard/internal/gateway"
)

const (
	// DefaultBatchSize is the number of repositories whose stats are fetched concurrently.
	DefaultBatchSize = 5
	// DefaultBatchPause is the pause between two consecutive batches.
	DefaultBatchPause = 500 * time.Millisecond
)

// Aggregator is the use case for aggregating GitHub stats.
// It orchestrates the fetching and combining of data. An Aggregator keeps no
// state between calls, so concurrent calls never share accumulation buffers.
type Aggregator struct {
	fetcher    gateway.Fetcher
	logger     *log.Logger
	batchSize  int
	batchPause time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBatchSize overrides DefaultBatchSize. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.batchSize = n
		}
	}
}

// WithBatchPause overrides DefaultBatchPause. Negative values are ignored.
func WithBatchPause(d time.Duration) Option {
	return func(a *Aggregator) {
		if d >= 0 {
			a.batchPause = d
		}
	}
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:    fetcher,
		logger:     logger,
		batchSize:  DefaultBatchSize,
		batchPause: DefaultBatchPause,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsCancellation reports whether err stems from the caller cancelling the
// context. Cancellation is not a failure and should not be shown to users.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
