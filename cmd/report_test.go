package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

func repositoryStats(fullName, owner string, private bool, stars int, languages ...domain.LanguageStat) domain.RepositoryStats {
	return domain.RepositoryStats{
		Repository: domain.Repository{
			FullName:        fullName,
			IsPrivate:       private,
			StargazersCount: stars,
			Owner:           domain.Owner{Login: owner},
		},
		OpenIssues:       1,
		OpenPullRequests: 2,
		LanguageStats:    languages,
	}
}

func testSummary() *domain.UserSummary {
	return domain.Summarize(domain.User{Login: "alice"}, []domain.RepositoryStats{
		repositoryStats("alice/public", "alice", false, 5,
			domain.LanguageStat{Name: "Go", Bytes: 60, Percentage: 60},
			domain.LanguageStat{Name: "Shell", Bytes: 30, Percentage: 30},
			domain.LanguageStat{Name: "Makefile", Bytes: 10, Percentage: 10},
		),
		repositoryStats("alice/private", "alice", true, 1),
		repositoryStats("acme/tools", "acme", false, 10),
	})
}

func TestNewSummaryReport(t *testing.T) {
	report := newSummaryReport(testSummary())

	assert.Equal(t, "alice", report.User.Login)
	assert.Equal(t, domain.PartitionTotals{
		Repositories: 3, PublicRepositories: 2, PrivateRepositories: 1,
		Stars: 16, OpenIssues: 3, OpenPullRequests: 6,
	}, report.All)
	assert.Equal(t, 2, report.Mine.Repositories)
	assert.Equal(t, 6, report.Mine.Stars)
	assert.Equal(t, 1, report.Other.Repositories)
	assert.Equal(t, 10, report.Other.Stars)
	assert.Len(t, report.Repositories, 3)
	assert.Nil(t, report.Contributions)
}

func TestSelectRepositories(t *testing.T) {
	tests := []struct {
		name         string
		owner        string
		publicOnly   bool
		topLanguages int
		want         []string
	}{
		{name: "all", owner: ownerAll, want: []string{"alice/public", "alice/private", "acme/tools"}},
		{name: "mine", owner: ownerMine, want: []string{"alice/public", "alice/private"}},
		{name: "other", owner: ownerOther, want: []string{"acme/tools"}},
		{name: "mine, public only", owner: ownerMine, publicOnly: true, want: []string{"alice/public"}},
		{name: "other, public only", owner: ownerOther, publicOnly: true, want: []string{"acme/tools"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			selected := selectRepositories(testSummary(), tc.owner, tc.publicOnly, tc.topLanguages)

			names := make([]string, 0, len(selected))
			for _, s := range selected {
				names = append(names, s.Repository.FullName)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestSelectRepositories_TopLanguages(t *testing.T) {
	summary := testSummary()

	selected := selectRepositories(summary, ownerMine, true, 2)

	require.Len(t, selected, 1)
	require.Len(t, selected[0].LanguageStats, 2)
	assert.Equal(t, "Go", selected[0].LanguageStats[0].Name)
	assert.Equal(t, "Shell", selected[0].LanguageStats[1].Name)
	assert.Len(t, summary.RepositoryStats[0].LanguageStats, 3, "the summary itself is left untouched")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	err := writeJSON(&buf, map[string]int{"total_stars": 7})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"total_stars\": 7\n}\n", buf.String())
}
