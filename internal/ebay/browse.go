package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultMarketplace = "EBAY_US"
	defaultLimit       = 50

	// Browse caps limit at 200 and limit+offset at 10,000.
	maxLimit  = 200
	maxWindow = 10000
)

// BrowseClient implements Searcher using the eBay Browse API.
type BrowseClient struct {
	tokens      TokenProvider
	browseURL   string
	marketplace string
	shipToZip   string
	client      *http.Client
	rateLimiter *RateLimiter
}

// BrowseOption configures the BrowseClient.
type BrowseOption func(*BrowseClient)

// WithBrowseURL overrides the default Browse API endpoint.
func WithBrowseURL(u string) BrowseOption {
	return func(c *BrowseClient) {
		c.browseURL = u
	}
}

// WithMarketplace overrides the default marketplace.
func WithMarketplace(m string) BrowseOption {
	return func(c *BrowseClient) {
		if m != "" {
			c.marketplace = m
		}
	}
}

// WithShipToPostalCode asks eBay to quote shipping to the given postal
// code. Without it, search results often omit shipping costs.
func WithShipToPostalCode(zip string) BrowseOption {
	return func(c *BrowseClient) {
		c.shipToZip = strings.TrimSpace(zip)
	}
}

// WithBrowseHTTPClient overrides the default HTTP client.
func WithBrowseHTTPClient(hc *http.Client) BrowseOption {
	return func(c *BrowseClient) {
		c.client = hc
	}
}

// WithRateLimiter makes every search claim quota from r before calling eBay.
func WithRateLimiter(r *RateLimiter) BrowseOption {
	return func(c *BrowseClient) {
		c.rateLimiter = r
	}
}

// NewBrowseClient creates a new eBay Browse API client.
func NewBrowseClient(tokens TokenProvider, opts ...BrowseOption) *BrowseClient {
	c := &BrowseClient{
		tokens:      tokens,
		browseURL:   defaultBrowseURL,
		marketplace: defaultMarketplace,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchPage struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next"`
}

// Search implements Searcher.Search by querying the Browse API.
func (c *BrowseClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}

	body, err := authorizedGet(ctx, c.client, c.tokens, c.buildSearchURL(req), c.headers())
	if err != nil {
		return nil, err
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Items:   page.ItemSummaries,
		Total:   page.Total,
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.Next != "" && page.Offset+page.Limit < maxWindow,
	}, nil
}

// acquire claims one call from the limiter, when one is configured.
func (c *BrowseClient) acquire(ctx context.Context) error {
	if c.rateLimiter == nil {
		metrics.EbayAPICallsTotal.Inc()
		return nil
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.EbayDailyLimitHits.Inc()
		}
		return fmt.Errorf("rate limit: %w", err)
	}
	metrics.EbayAPICallsTotal.Inc()
	metrics.EbayDailyUsage.Set(float64(c.rateLimiter.Usage().Used))
	return nil
}

func (c *BrowseClient) headers() http.Header {
	h := http.Header{}
	h.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)
	if c.shipToZip != "" {
		h.Set("X-EBAY-C-ENDUSERCTX", endUserContext(c.marketplace, c.shipToZip))
	}
	return h
}

// endUserContext renders the contextualLocation header value, e.g.
// "contextualLocation=country%3DUS%2Czip%3D19406".
func endUserContext(marketplace, zip string) string {
	country := strings.TrimPrefix(marketplace, "EBAY_")
	if i := strings.LastIndex(country, "_"); i >= 0 {
		country = country[i+1:]
	}
	return "contextualLocation=" + url.QueryEscape("country="+country+",zip="+zip)
}

func (c *BrowseClient) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)

	if req.CategoryID != "" {
		params.Set("category_ids", req.CategoryID)
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	if f := buildFilter(req); f != "" {
		params.Set("filter", f)
	}

	return c.browseURL + "?" + params.Encode()
}

// buildFilter renders the Browse API filter expression, e.g.
// "buyingOptions:{FIXED_PRICE},conditionIds:{1000}".
func buildFilter(req SearchRequest) string {
	var parts []string
	if req.FixedPriceOnly {
		parts = append(parts, "buyingOptions:{FIXED_PRICE}")
	}
	if len(req.ConditionIDs) > 0 {
		parts = append(parts, "conditionIds:{"+strings.Join(req.ConditionIDs, "|")+"}")
	}
	return strings.Join(parts, ",")
}
