package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope"

	// refreshBuffer renews a token this long before eBay says it expires.
	refreshBuffer = 60 * time.Second
)

// TokenError is a rejected client-credentials grant.
type TokenError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *TokenError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("token request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("token request failed (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
}

type accessToken struct {
	value  string
	expiry time.Time
}

func (t accessToken) usableAt(now time.Time) bool {
	return t.value != "" && now.Before(t.expiry.Add(-refreshBuffer))
}

// OAuthTokenProvider obtains application tokens with the OAuth2 client
// credentials grant and caches one per provider. Concurrent callers share a
// single refresh.
type OAuthTokenProvider struct {
	appID    string
	certID   string
	tokenURL string
	scopes   string
	client   *http.Client
	now      func() time.Time

	mu     sync.Mutex
	cached accessToken
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default eBay token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if u != "" {
			p.tokenURL = u
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithScopes replaces the requested OAuth scopes.
func WithScopes(scopes ...string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if len(scopes) > 0 {
			p.scopes = strings.Join(scopes, " ")
		}
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.now = f
	}
}

// NewOAuthTokenProvider creates a token provider for the given application
// keyset.
func NewOAuthTokenProvider(appID, certID string, opts ...OAuthOption) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		appID:    appID,
		certID:   certID,
		tokenURL: defaultTokenURL,
		scopes:   defaultScope,
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns the cached token, fetching a new one when it is missing or
// about to expire.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.usableAt(p.now()) {
		return p.cached.value, nil
	}

	tok, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}
	p.cached = tok
	metrics.EbayTokenRefreshesTotal.Inc()
	return tok.value, nil
}

// Invalidate drops the cached token so the next Token call fetches a new one.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = accessToken{}
}

func (p *OAuthTokenProvider) fetch(ctx context.Context) (accessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", p.scopes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return accessToken{}, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.appID, p.certID)

	resp, err := p.client.Do(req)
	if err != nil {
		return accessToken{}, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return accessToken{}, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		tokErr := &TokenError{StatusCode: resp.StatusCode}
		var payload struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(body, &payload) == nil {
			tokErr.Code = payload.Error
			tokErr.Description = payload.ErrorDescription
		}
		return accessToken{}, tokErr
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return accessToken{}, fmt.Errorf("parsing token response: %w", err)
	}
	if grant.AccessToken == "" {
		return accessToken{}, errors.New("token response missing access_token")
	}

	return accessToken{
		value:  grant.AccessToken,
		expiry: p.now().Add(time.Duration(grant.ExpiresIn) * time.Second),
	}, nil
}
