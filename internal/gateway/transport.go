package gateway

import (
	"net/http"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/gregjones/httpcache"
)

// newTransport builds the round-tripper stack shared by the REST and GraphQL clients:
//  1. base transport (http.DefaultTransport unless injected)
//  2. httpcache (ETag-based conditional requests, keyed per Authorization via Vary)
//  3. go-github-ratelimit (sleeps on secondary rate limits), only when enabled
func newTransport(o options) http.RoundTripper {
	transport := o.baseTransport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if o.cache {
		cacheTransport := httpcache.NewMemoryCacheTransport()
		cacheTransport.Transport = transport
		transport = cacheTransport
	}

	if o.waitSecondaryRateLimit {
		transport = github_ratelimit.NewClient(transport).Transport
	}

	return transport
}

// statusRecorder remembers the status code of the last response it carried.
// One recorder serves exactly one GraphQL call.
type statusRecorder struct {
	base       http.RoundTripper
	statusCode int
}

func (s *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.base.RoundTrip(req)
	if resp != nil {
		s.statusCode = resp.StatusCode
	}
	return resp, err
}
