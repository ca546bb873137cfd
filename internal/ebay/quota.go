package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultQuotaURL = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"

	// browseResourceName is the rate limit resource for item_summary/search.
	browseResourceName = "buy.browse"
)

type rateLimitResponse struct {
	RateLimits []struct {
		Resources []struct {
			Name  string `json:"name"`
			Rates []struct {
				Count      int64  `json:"count"`
				Limit      int64  `json:"limit"`
				Remaining  int64  `json:"remaining"`
				Reset      string `json:"reset"`
				TimeWindow int64  `json:"timeWindow"`
			} `json:"rates"`
		} `json:"resources"`
	} `json:"rateLimits"`
}

// QuotaState is the Browse API quota as reported by eBay.
type QuotaState struct {
	Count      int64
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	TimeWindow time.Duration
}

// QuotaClient reads Browse API quota usage from the eBay Developer
// Analytics API.
type QuotaClient struct {
	tokens   TokenProvider
	quotaURL string
	client   *http.Client
}

// QuotaOption configures the QuotaClient.
type QuotaOption func(*QuotaClient)

// WithQuotaURL overrides the default Analytics API endpoint.
func WithQuotaURL(u string) QuotaOption {
	return func(c *QuotaClient) {
		c.quotaURL = u
	}
}

// NewQuotaClient creates a new quota client.
func NewQuotaClient(tokens TokenProvider, opts ...QuotaOption) *QuotaClient {
	c := &QuotaClient{
		tokens:   tokens,
		quotaURL: defaultQuotaURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BrowseQuota returns the current quota for Browse API searches.
func (c *QuotaClient) BrowseQuota(ctx context.Context) (*QuotaState, error) {
	u, err := url.Parse(c.quotaURL)
	if err != nil {
		return nil, fmt.Errorf("parsing quota URL: %w", err)
	}
	q := u.Query()
	q.Set("api_context", "buy")
	q.Set("api_name", "browse")
	u.RawQuery = q.Encode()

	body, err := authorizedGet(ctx, c.client, c.tokens, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("quota request: %w", err)
	}

	var apiResp rateLimitResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing quota response: %w", err)
	}

	for _, entry := range apiResp.RateLimits {
		for _, res := range entry.Resources {
			if res.Name != browseResourceName || len(res.Rates) == 0 {
				continue
			}
			r := res.Rates[0]
			resetAt, err := time.Parse(time.RFC3339, r.Reset)
			if err != nil {
				return nil, fmt.Errorf("parsing reset time %q: %w", r.Reset, err)
			}
			return &QuotaState{
				Count:      r.Count,
				Limit:      r.Limit,
				Remaining:  r.Remaining,
				ResetAt:    resetAt,
				TimeWindow: time.Duration(r.TimeWindow) * time.Second,
			}, nil
		}
	}

	return nil, fmt.Errorf("resource %q not found in quota response", browseResourceName)
}
