package domain

// Partition is a subset of an aggregation run's repository stats.
// Every total is recomputed from the slice on each call.
type Partition []RepositoryStats

// PartitionTotals is a point-in-time snapshot of a partition's reductions.
type PartitionTotals struct {
	Repositories        int `json:"repositories"`
	PublicRepositories  int `json:"public_repositories"`
	PrivateRepositories int `json:"private_repositories"`
	Stars               int `json:"stars"`
	OpenIssues          int `json:"open_issues"`
	OpenPullRequests    int `json:"open_pull_requests"`
}

// Count returns the number of repositories in the partition.
func (p Partition) Count() int { return len(p) }

// PublicCount returns the number of public repositories.
func (p Partition) PublicCount() int {
	n := 0
	for _, s := range p {
		if !s.Repository.IsPrivate {
			n++
		}
	}
	return n
}

// PrivateCount returns the number of private repositories.
func (p Partition) PrivateCount() int {
	n := 0
	for _, s := range p {
		if s.Repository.IsPrivate {
			n++
		}
	}
	return n
}

// Stars returns the sum of stargazers.
func (p Partition) Stars() int {
	n := 0
	for _, s := range p {
		n += s.Repository.StargazersCount
	}
	return n
}

// OpenIssues returns the sum of open issues, pull requests excluded.
func (p Partition) OpenIssues() int {
	n := 0
	for _, s := range p {
		n += s.OpenIssues
	}
	return n
}

// OpenPullRequests returns the sum of open pull requests.
func (p Partition) OpenPullRequests() int {
	n := 0
	for _, s := range p {
		n += s.OpenPullRequests
	}
	return n
}

// Totals computes every reduction at once.
func (p Partition) Totals() PartitionTotals {
	return PartitionTotals{
		Repositories:        p.Count(),
		PublicRepositories:  p.PublicCount(),
		PrivateRepositories: p.PrivateCount(),
		Stars:               p.Stars(),
		OpenIssues:          p.OpenIssues(),
		OpenPullRequests:    p.OpenPullRequests(),
	}
}

// UserSummary is the result of an aggregation run: the user and every
// repository's stats in fetch order. The "mine" and "other" views are derived
// on access and never stored.
type UserSummary struct {
	User            User              `json:"user"`
	RepositoryStats []RepositoryStats `json:"repository_stats"`
}

// Summarize builds the summary for user over the given stats.
func Summarize(user User, repositoryStats []RepositoryStats) *UserSummary {
	if repositoryStats == nil {
		repositoryStats = []RepositoryStats{}
	}
	return &UserSummary{User: user, RepositoryStats: repositoryStats}
}

// All returns every repository in the summary.
func (s *UserSummary) All() Partition {
	return Partition(s.RepositoryStats)
}

// Mine returns the repositories owned by the summary's user.
// The login comparison is exact and case-sensitive.
func (s *UserSummary) Mine() Partition {
	return s.filter(func(rs RepositoryStats) bool {
		return rs.Repository.Owner.Login == s.User.Login
	})
}

// Other returns the repositories owned by anyone else.
func (s *UserSummary) Other() Partition {
	return s.filter(func(rs RepositoryStats) bool {
		return rs.Repository.Owner.Login != s.User.Login
	})
}

func (s *UserSummary) filter(keep func(RepositoryStats) bool) Partition {
	out := Partition{}
	for _, rs := range s.RepositoryStats {
		if keep(rs) {
			out = append(out, rs)
		}
	}
	return out
}

// TotalRepositories returns the number of repositories across both partitions.
func (s *UserSummary) TotalRepositories() int { return s.All().Count() }

// PublicRepositories returns the number of public repositories.
func (s *UserSummary) PublicRepositories() int { return s.All().PublicCount() }

// TotalStars returns the star sum across all repositories.
func (s *UserSummary) TotalStars() int { return s.All().Stars() }

// TotalOpenIssues returns the open issue sum across all repositories.
func (s *UserSummary) TotalOpenIssues() int { return s.All().OpenIssues() }

// TotalOpenPullRequests returns the open pull request sum across all repositories.
func (s *UserSummary) TotalOpenPullRequests() int { return s.All().OpenPullRequests() }
