package usecase

import (
	"context"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// FetchAllRepositories pages through the user's repositories until GitHub
// returns an empty page. Any failed page aborts the whole listing.
func (a *Aggregator) FetchAllRepositories(ctx context.Context, token string) ([]domain.Repository, error) {
	a.logger.Println("Usecase: Fetching repositories...")
	repositories := []domain.Repository{}
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repos, err := a.fetcher.FetchRepositoryPage(ctx, token, page)
		if err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}
		repositories = append(repositories, repos...)
		a.logger.Printf("  Fetched page %d (%d repositories so far)", page, len(repositories))
	}
	a.logger.Printf("Usecase: Found %d repositories.", len(repositories))
	return repositories, nil
}

// FetchPublicRepositories returns only the repositories that are not private.
func (a *Aggregator) FetchPublicRepositories(ctx context.Context, token string) ([]domain.Repository, error) {
	repositories, err := a.FetchAllRepositories(ctx, token)
	if err != nil {
		return nil, err
	}
	public := make([]domain.Repository, 0, len(repositories))
	for _, r := range repositories {
		if !r.IsPrivate {
			public = append(public, r)
		}
	}
	return public, nil
}

// FetchTotalStars sums the stargazers of every repository.
func (a *Aggregator) FetchTotalStars(ctx context.Context, token string) (int, error) {
	repositories, err := a.FetchAllRepositories(ctx, token)
	if err != nil {
		return 0, err
	}
	return sumStars(repositories), nil
}

// FetchPublicRepositoriesStars sums the stargazers of public repositories only.
func (a *Aggregator) FetchPublicRepositoriesStars(ctx context.Context, token string) (int, error) {
	repositories, err := a.FetchPublicRepositories(ctx, token)
	if err != nil {
		return 0, err
	}
	return sumStars(repositories), nil
}

func sumStars(repositories []domain.Repository) int {
	total := 0
	for _, r := range repositories {
		total += r.StargazersCount
	}
	return total
}
