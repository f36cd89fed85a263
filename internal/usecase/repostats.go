package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// FetchStats gathers the open issue count, open pull request count and
// language breakdown of one repository. The three requests run concurrently.
// Issue and pull request failures fail the call; a language failure only
// leaves the language list empty.
func (a *Aggregator) FetchStats(ctx context.Context, token string, repository domain.Repository) (domain.RepositoryStats, error) {
	var (
		openIssues, openPullRequests int
		languages                    []domain.LanguageStat
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		issues, err := a.fetcher.FetchOpenIssues(egCtx, token, repository.FullName)
		if err != nil {
			return err
		}
		openIssues = domain.CountIssues(issues)
		return nil
	})

	eg.Go(func() error {
		prs, err := a.fetcher.FetchOpenPullRequests(egCtx, token, repository.FullName)
		if err != nil {
			return err
		}
		openPullRequests = len(prs)
		return nil
	})

	eg.Go(func() error {
		languages = a.fetchLanguageStats(egCtx, token, repository.FullName)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return domain.RepositoryStats{}, err
	}
	// A cancelled language fetch is swallowed above; the result must not look complete.
	if err := ctx.Err(); err != nil {
		return domain.RepositoryStats{}, err
	}

	return domain.RepositoryStats{
		Repository:       repository,
		OpenIssues:       openIssues,
		OpenPullRequests: openPullRequests,
		LanguageStats:    languages,
	}, nil
}

// fetchLanguageStats never fails: language data is optional, e.g. empty
// repositories have none.
func (a *Aggregator) fetchLanguageStats(ctx context.Context, token, fullName string) []domain.LanguageStat {
	bytesByLanguage, err := a.fetcher.FetchLanguages(ctx, token, fullName)
	if err != nil {
		if !IsCancellation(err) {
			a.logger.Printf("  Language stats unavailable for %s: %v", fullName, err)
		}
		return []domain.LanguageStat{}
	}
	return domain.NewLanguageStats(bytesByLanguage)
}
