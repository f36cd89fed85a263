package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// FetchAllRepositoryStats lists every repository of the user and fetches
// the stats of each one, see FetchRepositoryStats.
func (a *Aggregator) FetchAllRepositoryStats(ctx context.Context, token string) ([]domain.RepositoryStats, error) {
	repositories, err := a.FetchAllRepositories(ctx, token)
	if err != nil {
		return nil, err
	}
	return a.FetchRepositoryStats(ctx, token, repositories)
}

// FetchRepositoryStats fetches stats for repositories in batches of
// batchSize, pausing batchPause between batches. Within a batch all fetches
// run concurrently. The result keeps the input order. The first failure
// aborts the run and discards everything fetched so far.
func (a *Aggregator) FetchRepositoryStats(ctx context.Context, token string, repositories []domain.Repository) ([]domain.RepositoryStats, error) {
	a.logger.Printf("Usecase: Fetching stats for %d repositories in batches of %d...", len(repositories), a.batchSize)
	results := make([]domain.RepositoryStats, 0, len(repositories))

	for start := 0; start < len(repositories); start += a.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+a.batchSize, len(repositories))

		batch, err := a.fetchBatch(ctx, token, repositories[start:end])
		if err != nil {
			return nil, err
		}
		results = append(results, batch...)
		a.logger.Printf("  Completed %d/%d repositories", end, len(repositories))

		if end < len(repositories) {
			if err := a.sleep(ctx, a.batchPause); err != nil {
				return nil, err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Println("Usecase: Repository stats complete.")
	return results, nil
}

// fetchBatch runs FetchStats for every repository of the batch concurrently.
// Each result lands at its submission index, not in completion order.
func (a *Aggregator) fetchBatch(ctx context.Context, token string, batch []domain.Repository) ([]domain.RepositoryStats, error) {
	results := make([]domain.RepositoryStats, len(batch))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, repository := range batch {
		eg.Go(func() error {
			stats, err := a.FetchStats(egCtx, token, repository)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
