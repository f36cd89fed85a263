package domain

import (
	"strings"
	"time"
)

// Owner is the account a repository belongs to.
type Owner struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Repository is one entry of the authenticated user's repository listing.
// OpenIssuesCount is reported by GitHub as-is and includes pull requests.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	IsPrivate       bool      `json:"private"`
	StargazersCount int       `json:"stargazers_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	ForksCount      int       `json:"forks_count"`
	Language        string    `json:"language,omitempty"`
	Description     string    `json:"description,omitempty"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Owner           Owner     `json:"owner"`
	IsFork          bool      `json:"fork"`
}

// pullRequestPathSegment marks an issue-endpoint entry as a pull request.
const pullRequestPathSegment = "/pull/"

// Issue is an entry returned by a repository's issues endpoint.
// GitHub returns pull requests from that endpoint too.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	State     string
	HTMLURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPullRequest reports whether the entry is actually a pull request.
func (i Issue) IsPullRequest() bool {
	return strings.Contains(i.HTMLURL, pullRequestPathSegment)
}

// CountIssues returns the number of entries that are real issues,
// skipping the pull requests the issues endpoint mixes in.
func CountIssues(issues []Issue) int {
	count := 0
	for _, issue := range issues {
		if !issue.IsPullRequest() {
			count++
		}
	}
	return count
}

// PullRequest is an entry returned by a repository's pulls endpoint.
type PullRequest struct {
	ID        int64
	Number    int
	Title     string
	State     string
	HTMLURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
