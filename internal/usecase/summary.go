package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// BasicStats is the quick overview that needs no per-repository requests.
type BasicStats struct {
	PublicRepos int `json:"public_repos"`
	TotalStars  int `json:"total_stars"`
}

// FetchUser fetches the authenticated user's profile.
func (a *Aggregator) FetchUser(ctx context.Context, token string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.fetcher.FetchUser(ctx, token)
}

// FetchUserSummary performs a whole aggregation run. The user profile and
// the repository stats are fetched concurrently and then summarised.
func (a *Aggregator) FetchUserSummary(ctx context.Context, token string) (*domain.UserSummary, error) {
	a.logger.Println("Usecase: Starting data aggregation...")

	var (
		user            *domain.User
		repositoryStats []domain.RepositoryStats
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		user, err = a.FetchUser(egCtx, token)
		return err
	})

	eg.Go(func() error {
		var err error
		repositoryStats, err = a.FetchAllRepositoryStats(egCtx, token)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	a.logger.Println("Usecase: Aggregation complete.")
	return domain.Summarize(*user, repositoryStats), nil
}

// FetchPublicRepositoryCount returns the public repository count from the profile.
func (a *Aggregator) FetchPublicRepositoryCount(ctx context.Context, token string) (int, error) {
	user, err := a.FetchUser(ctx, token)
	if err != nil {
		return 0, err
	}
	return user.PublicRepos, nil
}

// FetchBasicStats fetches the public repository count and the total star count concurrently.
func (a *Aggregator) FetchBasicStats(ctx context.Context, token string) (*BasicStats, error) {
	var stats BasicStats

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		stats.PublicRepos, err = a.FetchPublicRepositoryCount(egCtx, token)
		return err
	})

	eg.Go(func() error {
		var err error
		stats.TotalStars, err = a.FetchTotalStars(egCtx, token)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchContributions fetches the contribution calendar. It is not part of an
// aggregation run.
func (a *Aggregator) FetchContributions(ctx context.Context, token string) (*domain.Contributions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.fetcher.FetchContributions(ctx, token)
}
