package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// contributionCalendarQuery fetches the viewer's contribution calendar for the last year.
type contributionCalendarQuery struct {
	Viewer struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
				Weeks              []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		}
	}
}

// FetchContributions fetches the authenticated user's contribution calendar.
// The calendar is only exposed through the GraphQL API.
func (g *GitHubGateway) FetchContributions(ctx context.Context, token string) (*domain.Contributions, error) {
	recorder := &statusRecorder{base: g.transport}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   recorder,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
		Timeout: g.timeout,
	}
	client := githubv4.NewEnterpriseClient(g.graphqlURL, httpClient)

	var q contributionCalendarQuery
	if err := client.Query(ctx, &q, nil); err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", classifyGraphQLError(err, recorder.statusCode))
	}

	calendar := q.Viewer.ContributionsCollection.ContributionCalendar
	contributions := &domain.Contributions{
		Total: int(calendar.TotalContributions),
		Weeks: make([]domain.WeekContributions, 0, len(calendar.Weeks)),
	}
	for i, week := range calendar.Weeks {
		days := make([]domain.DayContributions, 0, len(week.ContributionDays))
		for _, day := range week.ContributionDays {
			days = append(days, domain.DayContributions{
				Date:  string(day.Date),
				Count: int(day.ContributionCount),
			})
		}
		contributions.Weeks = append(contributions.Weeks, domain.WeekContributions{Week: i, Days: days})
	}
	g.logger.Printf("  Fetched contribution calendar: %d contributions over %d weeks", contributions.Total, len(contributions.Weeks))
	return contributions, nil
}
