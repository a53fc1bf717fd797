package supabase

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// apiKeyTransport sets the project API key header required by the gateway
// on every request.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("apikey", t.key)
	return t.base.RoundTrip(r)
}

// tokenSource returns the bearer credentials for the REST API. A user access
// token takes precedence over the anonymous project key.
func tokenSource(cfg Config) oauth2.TokenSource {
	access := cfg.AccessToken
	if access == "" {
		access = cfg.APIKey
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: access,
		TokenType:   "Bearer",
	})
}

// newHTTPClient builds an HTTP client that authenticates every request with
// both the apikey header and an Authorization bearer token.
func newHTTPClient(cfg Config, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: tokenSource(cfg),
			Base:   &apiKeyTransport{key: cfg.APIKey, base: base},
		},
	}
}
