// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL = "https://api.github.com/"
	// DefaultUserAgent identifies this client to GitHub.
	DefaultUserAgent = "github-dashboard"
	// RepositoriesPerPage is the page size used when listing repositories.
	RepositoriesPerPage = 100

	acceptHeader = "application/vnd.github.v3+json"
	listLimit    = 100
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
// Every method takes the bearer token of the account the data is fetched for.
type Fetcher interface {
	FetchUser(ctx context.Context, token string) (*domain.User, error)
	// FetchRepositoryPage returns one page of the user's repositories, most
	// recently updated first. Pages start at 1; an empty page marks the end.
	FetchRepositoryPage(ctx context.Context, token string, page int) ([]domain.Repository, error)
	FetchOpenIssues(ctx context.Context, token, fullName string) ([]domain.Issue, error)
	FetchOpenPullRequests(ctx context.Context, token, fullName string) ([]domain.PullRequest, error)
	FetchLanguages(ctx context.Context, token, fullName string) (map[string]int, error)
	FetchContributions(ctx context.Context, token string) (*domain.Contributions, error)
}

// Compile-time interface satisfaction check.
var _ Fetcher = (*GitHubGateway)(nil)

// GitHubGateway is the concrete implementation of the Fetcher interface.
// It holds no per-token state, so one instance can serve any number of tokens.
type GitHubGateway struct {
	restClient *github.Client
	transport  http.RoundTripper
	timeout    time.Duration
	graphqlURL string
	logger     *log.Logger
}

type options struct {
	baseURL                string
	userAgent              string
	timeout                time.Duration
	baseTransport          http.RoundTripper
	cache                  bool
	waitSecondaryRateLimit bool
}

// Option configures a GitHubGateway.
type Option func(*options)

// WithBaseURL points the gateway at another API root, e.g. GitHub Enterprise or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithTimeout bounds every single HTTP request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces http.DefaultTransport at the bottom of the transport stack.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.baseTransport = rt }
}

// WithCache enables the in-memory conditional request cache.
func WithCache(enabled bool) Option {
	return func(o *options) { o.cache = enabled }
}

// WithSecondaryRateLimitWait makes the client sleep and retry when GitHub
// reports a secondary rate limit instead of failing with an APIError.
func WithSecondaryRateLimitWait(enabled bool) Option {
	return func(o *options) { o.waitSecondaryRateLimit = enabled }
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(logger *log.Logger, opts ...Option) (*GitHubGateway, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	transport := newTransport(o)
	restClient := github.NewClient(&http.Client{Transport: transport, Timeout: o.timeout})
	restClient.BaseURL = baseURL
	restClient.UserAgent = o.userAgent

	return &GitHubGateway{
		restClient: restClient,
		transport:  transport,
		timeout:    o.timeout,
		graphqlURL: graphQLEndpoint(baseURL),
		logger:     logger,
	}, nil
}

func (g *GitHubGateway) FetchUser(ctx context.Context, token string) (*domain.User, error) {
	u, err := request[*github.User](ctx, g, token, "user")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	user := mapUser(u)
	return &user, nil
}

func (g *GitHubGateway) FetchRepositoryPage(ctx context.Context, token string, page int) ([]domain.Repository, error) {
	endpoint := fmt.Sprintf("user/repos?page=%d&per_page=%d&sort=updated", page, RepositoriesPerPage)
	repos, err := request[[]*github.Repository](ctx, g, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository page %d: %w", page, err)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, mapRepository(r))
	}
	return result, nil
}

// FetchOpenIssues returns the first page of open issues. GitHub includes pull
// requests in this listing; callers decide whether to filter them.
func (g *GitHubGateway) FetchOpenIssues(ctx context.Context, token, fullName string) ([]domain.Issue, error) {
	endpoint := fmt.Sprintf("repos/%s/issues?state=open&per_page=%d", fullName, listLimit)
	issues, err := request[[]*github.Issue](ctx, g, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open issues for %s: %w", fullName, err)
	}
	result := make([]domain.Issue, 0, len(issues))
	for _, i := range issues {
		result = append(result, domain.Issue{
			ID:        i.GetID(),
			Number:    i.GetNumber(),
			Title:     i.GetTitle(),
			State:     i.GetState(),
			HTMLURL:   i.GetHTMLURL(),
			CreatedAt: i.GetCreatedAt().Time,
			UpdatedAt: i.GetUpdatedAt().Time,
		})
	}
	return result, nil
}

func (g *GitHubGateway) FetchOpenPullRequests(ctx context.Context, token, fullName string) ([]domain.PullRequest, error) {
	endpoint := fmt.Sprintf("repos/%s/pulls?state=open&per_page=%d", fullName, listLimit)
	prs, err := request[[]*github.PullRequest](ctx, g, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open pull requests for %s: %w", fullName, err)
	}
	result := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, domain.PullRequest{
			ID:        pr.GetID(),
			Number:    pr.GetNumber(),
			Title:     pr.GetTitle(),
			State:     pr.GetState(),
			HTMLURL:   pr.GetHTMLURL(),
			CreatedAt: pr.GetCreatedAt().Time,
			UpdatedAt: pr.GetUpdatedAt().Time,
		})
	}
	return result, nil
}

// FetchLanguages returns the language to byte-count map of a repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, token, fullName string) (map[string]int, error) {
	languages, err := request[map[string]int](ctx, g, token, fmt.Sprintf("repos/%s/languages", fullName))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s: %w", fullName, err)
	}
	if languages == nil {
		languages = map[string]int{}
	}
	return languages, nil
}

// request issues an authenticated GET for endpoint, relative to the base URL,
// and decodes the JSON body into T. There are no retries at this layer.
func request[T any](ctx context.Context, g *GitHubGateway, token, endpoint string) (T, error) {
	var result T

	req, err := g.restClient.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return result, fmt.Errorf("%w %q: %v", ErrInvalidURL, endpoint, err)
	}
	req.Header.Set("Accept", acceptHeader)
	(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)

	resp, err := g.restClient.Do(ctx, req, &result)
	g.logRateLimit(resp, endpoint)
	var acceptedErr *github.AcceptedError
	if errors.As(err, &acceptedErr) {
		return decodeAccepted[T](acceptedErr.Raw)
	}
	if err != nil {
		var zero T
		return zero, classifyRESTError(err)
	}
	return result, nil
}

// decodeAccepted decodes the body of a 202 Accepted response, which go-github
// reports as an error. An empty body yields the zero value, like an empty 200.
func decodeAccepted[T any](raw []byte) (T, error) {
	var result T
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		var zero T
		return zero, &DecodingError{Err: err}
	}
	return result, nil
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (g *GitHubGateway) logRateLimit(resp *github.Response, endpoint string) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	g.logger.Printf("  GET %s (rate %d/%d)", endpoint, resp.Rate.Remaining, resp.Rate.Limit)
	if resp.Rate.Remaining < 100 {
		g.logger.Printf("  GitHub rate limit low: %d remaining, resets in %s",
			resp.Rate.Remaining, time.Until(resp.Rate.Reset.Time).Round(time.Second))
	}
}

// parseBaseURL validates the API root and enforces the trailing slash go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidURL, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// graphQLEndpoint derives the GraphQL URL from the REST root:
// https://api.github.com/ -> /graphql, https://ghe.example.com/api/v3/ -> /api/graphql.
func graphQLEndpoint(base *url.URL) string {
	u := *base
	if strings.HasSuffix(u.Path, "/api/v3/") {
		u.Path = strings.TrimSuffix(u.Path, "v3/") + "graphql"
	} else {
		u.Path += "graphql"
	}
	return u.String()
}

func mapUser(u *github.User) domain.User {
	return domain.User{
		ID:              u.GetID(),
		Login:           u.GetLogin(),
		Name:            u.GetName(),
		AvatarURL:       u.GetAvatarURL(),
		Bio:             u.GetBio(),
		Location:        u.GetLocation(),
		Company:         u.GetCompany(),
		Blog:            u.GetBlog(),
		Email:           u.GetEmail(),
		TwitterUsername: u.GetTwitterUsername(),
		Hireable:        u.Hireable,
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		PublicRepos:     u.GetPublicRepos(),
		PublicGists:     u.GetPublicGists(),
		CreatedAt:       u.GetCreatedAt().Time,
		UpdatedAt:       u.GetUpdatedAt().Time,
	}
}

// mapRepository uses GetXxx() helpers exclusively to avoid nil pointer panics.
func mapRepository(r *github.Repository) domain.Repository {
	owner := r.GetOwner()
	return domain.Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		IsPrivate:       r.GetPrivate(),
		StargazersCount: r.GetStargazersCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		ForksCount:      r.GetForksCount(),
		Language:        r.GetLanguage(),
		Description:     r.GetDescription(),
		HTMLURL:         r.GetHTMLURL(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		Owner: domain.Owner{
			ID:        owner.GetID(),
			Login:     owner.GetLogin(),
			AvatarURL: owner.GetAvatarURL(),
		},
		IsFork: r.GetFork(),
	}
}
