package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockFetcher) FetchRepositoryPage(ctx context.Context, token string, page int) ([]domain.Repository, error) {
	args := m.Called(ctx, token, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchOpenIssues(ctx context.Context, token, fullName string) ([]domain.Issue, error) {
	args := m.Called(ctx, token, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *mockFetcher) FetchOpenPullRequests(ctx context.Context, token, fullName string) ([]domain.PullRequest, error) {
	args := m.Called(ctx, token, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequest), args.Error(1)
}

func (m *mockFetcher) FetchLanguages(ctx context.Context, token, fullName string) (map[string]int, error) {
	args := m.Called(ctx, token, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockFetcher) FetchContributions(ctx context.Context, token string) (*domain.Contributions, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contributions), args.Error(1)
}

// newTestAggregator returns an Aggregator that records batch pauses instead of sleeping.
func newTestAggregator(fetcher *mockFetcher, opts ...Option) (*Aggregator, *[]time.Duration) {
	a := NewAggregator(fetcher, log.New(io.Discard, "", 0), opts...)
	pauses := []time.Duration{}
	a.sleep = func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return ctx.Err()
	}
	return a, &pauses
}

func repository(i int, owner string) domain.Repository {
	return domain.Repository{
		ID:              int64(i),
		Name:            fmt.Sprintf("repo-%d", i),
		FullName:        fmt.Sprintf("%s/repo-%d", owner, i),
		StargazersCount: i,
		Owner:           domain.Owner{Login: owner},
	}
}

func repositories(from, n int, owner string) []domain.Repository {
	out := make([]domain.Repository, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, repository(i, owner))
	}
	return out
}

// expectRepository registers successful sub-fetches for one repository.
func expectRepository(fetcher *mockFetcher, token, fullName string) {
	fetcher.On("FetchOpenIssues", mock.Anything, token, fullName).Return([]domain.Issue{
		{Number: 1, HTMLURL: "https://github.com/" + fullName + "/issues/1"},
		{Number: 2, HTMLURL: "https://github.com/" + fullName + "/pull/2"},
	}, nil)
	fetcher.On("FetchOpenPullRequests", mock.Anything, token, fullName).Return([]domain.PullRequest{{Number: 2}}, nil)
	fetcher.On("FetchLanguages", mock.Anything, token, fullName).Return(map[string]int{"Go": 3, "Shell": 1}, nil)
}

func TestAggregator_FetchAllRepositories(t *testing.T) {
	testCases := []struct {
		name          string
		pageSizes     []int
		pageErr       error
		failOnPage    int
		expectedCount int
		expectedCalls int
		expectError   bool
	}{
		{
			name:          "happy path - stops after the first empty page",
			pageSizes:     []int{100, 100, 37, 0},
			expectedCount: 237,
			expectedCalls: 4,
		},
		{
			name:          "no repositories - single empty page",
			pageSizes:     []int{0},
			expectedCount: 0,
			expectedCalls: 1,
		},
		{
			name:          "error case - second page fails",
			pageSizes:     []int{100},
			failOnPage:    2,
			pageErr:       errors.New("github api error"),
			expectedCalls: 2,
			expectError:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			offset := 0
			for i, size := range tc.pageSizes {
				fetcher.On("FetchRepositoryPage", mock.Anything, "tok", i+1).Return(repositories(offset, size, "alice"), nil).Once()
				offset += size
			}
			if tc.failOnPage > 0 {
				fetcher.On("FetchRepositoryPage", mock.Anything, "tok", tc.failOnPage).Return(nil, tc.pageErr).Once()
			}
			aggregator, _ := newTestAggregator(fetcher)

			result, err := aggregator.FetchAllRepositories(context.Background(), "tok")

			if tc.expectError {
				assert.ErrorIs(t, err, tc.pageErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.Len(t, result, tc.expectedCount)
				for i, r := range result {
					assert.Equal(t, int64(i), r.ID, "server order must be preserved")
				}
			}
			fetcher.AssertNumberOfCalls(t, "FetchRepositoryPage", tc.expectedCalls)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAggregator_FetchAllRepositories_CancelledBeforeStart(t *testing.T) {
	fetcher := new(mockFetcher)
	aggregator, _ := newTestAggregator(fetcher)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := aggregator.FetchAllRepositories(ctx, "tok")

	assert.True(t, IsCancellation(err))
	assert.Nil(t, result)
	fetcher.AssertNotCalled(t, "FetchRepositoryPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestAggregator_PublicRepositoriesAndStars(t *testing.T) {
	page := []domain.Repository{
		{ID: 1, FullName: "alice/a", StargazersCount: 10},
		{ID: 2, FullName: "alice/b", StargazersCount: 5, IsPrivate: true},
		{ID: 3, FullName: "bob/c", StargazersCount: 2},
	}
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 1).Return(page, nil)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 2).Return([]domain.Repository{}, nil)
	aggregator, _ := newTestAggregator(fetcher)
	ctx := context.Background()

	public, err := aggregator.FetchPublicRepositories(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{page[0], page[2]}, public)

	total, err := aggregator.FetchTotalStars(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 17, total)

	publicStars, err := aggregator.FetchPublicRepositoriesStars(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 12, publicStars)
}

func TestAggregator_FetchBasicStats(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchUser", mock.Anything, "tok").Return(&domain.User{Login: "alice", PublicRepos: 9}, nil)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 1).Return(repositories(1, 3, "alice"), nil)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 2).Return([]domain.Repository{}, nil)
	aggregator, _ := newTestAggregator(fetcher)

	stats, err := aggregator.FetchBasicStats(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, &BasicStats{PublicRepos: 9, TotalStars: 6}, stats)
	fetcher.AssertExpectations(t)
}

func TestAggregator_FetchUserSummary(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchUser", mock.Anything, "tok").Return(&domain.User{Login: "alice"}, nil)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 1).Return([]domain.Repository{
		repository(1, "alice"), repository(2, "bob"), repository(3, "alice"),
	}, nil)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", 2).Return([]domain.Repository{}, nil)
	for _, name := range []string{"alice/repo-1", "bob/repo-2", "alice/repo-3"} {
		expectRepository(fetcher, "tok", name)
	}
	aggregator, _ := newTestAggregator(fetcher)

	summary, err := aggregator.FetchUserSummary(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "alice", summary.User.Login)
	require.Len(t, summary.RepositoryStats, 3)
	assert.Equal(t, 2, summary.Mine().Count())
	assert.Equal(t, 1, summary.Other().Count())
	assert.Equal(t, 3, summary.TotalOpenIssues())
	assert.Equal(t, 3, summary.TotalOpenPullRequests())
	assert.Equal(t, 6, summary.TotalStars())
	assert.Equal(t, "Go", summary.RepositoryStats[0].LanguageStats[0].Name)
	fetcher.AssertExpectations(t)
}

func TestAggregator_FetchUserSummary_UserFails(t *testing.T) {
	userErr := errors.New("user endpoint down")
	fetcher := new(mockFetcher)
	fetcher.On("FetchUser", mock.Anything, "tok").Return(nil, userErr)
	fetcher.On("FetchRepositoryPage", mock.Anything, "tok", mock.Anything).Return([]domain.Repository{}, nil).Maybe()
	aggregator, _ := newTestAggregator(fetcher)

	summary, err := aggregator.FetchUserSummary(context.Background(), "tok")

	assert.ErrorIs(t, err, userErr)
	assert.Nil(t, summary)
}

func TestAggregator_FetchContributions(t *testing.T) {
	expected := &domain.Contributions{Total: 3, Weeks: []domain.WeekContributions{{Week: 0, Days: []domain.DayContributions{{Date: "2026-01-01", Count: 3}}}}}
	fetcher := new(mockFetcher)
	fetcher.On("FetchContributions", mock.Anything, "tok").Return(expected, nil)
	aggregator, _ := newTestAggregator(fetcher)

	contributions, err := aggregator.FetchContributions(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, expected, contributions)
}
