package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

const (
	ownerAll   = "all"
	ownerMine  = "mine"
	ownerOther = "other"
)

// summaryReport is the JSON document printed by the summary command.
type summaryReport struct {
	User          domain.User              `json:"user"`
	All           domain.PartitionTotals   `json:"all"`
	Mine          domain.PartitionTotals   `json:"mine"`
	Other         domain.PartitionTotals   `json:"other"`
	Repositories  []domain.RepositoryStats `json:"repositories"`
	Contributions *domain.Contributions    `json:"contributions,omitempty"`
}

func newSummaryReport(s *domain.UserSummary) *summaryReport {
	return &summaryReport{
		User:         s.User,
		All:          s.All().Totals(),
		Mine:         s.Mine().Totals(),
		Other:        s.Other().Totals(),
		Repositories: s.RepositoryStats,
	}
}

// selectRepositories picks the partition named by owner, optionally drops
// private repositories and trims each language list to the top n entries.
func selectRepositories(s *domain.UserSummary, owner string, publicOnly bool, topLanguages int) []domain.RepositoryStats {
	var partition domain.Partition
	switch owner {
	case ownerMine:
		partition = s.Mine()
	case ownerOther:
		partition = s.Other()
	default:
		partition = s.All()
	}

	selected := make([]domain.RepositoryStats, 0, len(partition))
	for _, stats := range partition {
		if publicOnly && stats.Repository.IsPrivate {
			continue
		}
		if topLanguages > 0 {
			stats.LanguageStats = stats.TopLanguages(topLanguages)
		}
		selected = append(selected, stats)
	}
	return selected
}

// writeJSON prints v as pretty-printed JSON.
func writeJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
