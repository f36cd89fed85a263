package domain

import (
	"slices"
	"sort"

	"github.com/montanaflynn/stats"
)

// LanguageStat is one language's share of a repository's code.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// RepositoryStats holds the counts gathered for a single repository.
// It is the core domain entity of this application.
type RepositoryStats struct {
	Repository       Repository     `json:"repository"`
	OpenIssues       int            `json:"open_issues"`
	OpenPullRequests int            `json:"open_pull_requests"`
	LanguageStats    []LanguageStat `json:"language_stats"`
}

// TopLanguages returns a copy of at most n language stats, largest share first.
func (s RepositoryStats) TopLanguages(n int) []LanguageStat {
	n = min(n, len(s.LanguageStats))
	if n <= 0 {
		return []LanguageStat{}
	}
	return slices.Clone(s.LanguageStats[:n])
}

// NewLanguageStats converts a language to byte-count map into stats ordered by
// percentage, descending. An empty map yields an empty, non-nil slice.
func NewLanguageStats(bytesByLanguage map[string]int) []LanguageStat {
	result := make([]LanguageStat, 0, len(bytesByLanguage))
	if len(bytesByLanguage) == 0 {
		return result
	}

	counts := make([]int, 0, len(bytesByLanguage))
	for _, b := range bytesByLanguage {
		counts = append(counts, b)
	}
	totalBytes, err := stats.Sum(stats.LoadRawData(counts))
	if err != nil {
		totalBytes = 0
	}

	for name, b := range bytesByLanguage {
		percentage := 0.0
		if totalBytes > 0 {
			percentage = float64(b) * 100 / totalBytes
		}
		result = append(result, LanguageStat{Name: name, Bytes: b, Percentage: percentage})
	}

	// Map iteration order is random, so ties fall back to the name.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Percentage != result[j].Percentage {
			return result[i].Percentage > result[j].Percentage
		}
		return result[i].Name < result[j].Name
	})
	return result
}
