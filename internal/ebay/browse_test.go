package ebay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	"github.com/donaldgifford/comp-pricer/internal/ebay/mocks"
)

const emptyPage = `{"itemSummaries":[],"total":0,"offset":0,"limit":50}`

func staticTokens(t *testing.T) *mocks.MockTokenProvider {
	t.Helper()
	m := mocks.NewMockTokenProvider(t)
	m.EXPECT().Token(mock.Anything).Return("test-token", nil).Maybe()
	return m
}

// browseServer answers every search with body and status, recording the
// last request it saw.
func browseServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Pointer[http.Request]) {
	t.Helper()

	var last atomic.Pointer[http.Request]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestBrowseClient_Search_DecodesPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantItems int
		wantMore  bool
	}{
		{
			name: "page with next link",
			body: `{
				"itemSummaries": [
					{"itemId": "v1|1|0", "title": "CeraVe Cleanser 16 oz", "price": {"value": "14.38", "currency": "USD"},
					 "shippingOptions": [{"shippingCostType": "FIXED", "shippingCost": {"value": "6.00", "currency": "USD"}}]},
					{"itemId": "v1|2|0", "title": "CeraVe Cleanser 16oz", "price": {"value": "15.10", "currency": "USD"}}
				],
				"total": 100, "offset": 0, "limit": 2,
				"next": "https://api.ebay.com/buy/browse/v1/item_summary/search?q=cerave&offset=2"
			}`,
			wantItems: 2,
			wantMore:  true,
		},
		{name: "last page", body: emptyPage},
		{
			name:     "offset window exhausted",
			body:     `{"itemSummaries":[],"total":50000,"offset":9800,"limit":200,"next":"https://api.ebay.com/next"}`,
			wantMore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := browseServer(t, http.StatusOK, tt.body)
			c := ebay.NewBrowseClient(staticTokens(t), ebay.WithBrowseURL(srv.URL))

			resp, err := c.Search(context.Background(), ebay.SearchRequest{Query: "cerave"})
			require.NoError(t, err)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.Equal(t, tt.wantMore, resp.HasMore)
		})
	}
}

func TestBrowseClient_Search_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		tokenErr   error
		wantAPI    int
		errContain string
	}{
		{
			name:       "rejected token without retry support",
			status:     http.StatusUnauthorized,
			body:       `{"errors":[{"errorId":1001,"message":"Invalid access token"}]}`,
			wantAPI:    http.StatusUnauthorized,
			errContain: "status 401, id 1001): Invalid access token",
		},
		{
			name:       "throttled",
			status:     http.StatusTooManyRequests,
			body:       `{"errors":[{"errorId":2001,"longMessage":"Too many requests"}]}`,
			wantAPI:    http.StatusTooManyRequests,
			errContain: "Too many requests",
		},
		{
			name:       "html error page",
			status:     http.StatusServiceUnavailable,
			body:       `<html><body>Service Unavailable</body></html>`,
			wantAPI:    http.StatusServiceUnavailable,
			errContain: "Service Unavailable",
		},
		{name: "token failure", status: http.StatusOK, tokenErr: errors.New("token fetch failed"), errContain: "getting auth token"},
		{name: "html with 200", status: http.StatusOK, body: `<!DOCTYPE html><html></html>`, errContain: "parsing search response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := browseServer(t, tt.status, tt.body)

			tokens := mocks.NewMockTokenProvider(t)
			if tt.tokenErr != nil {
				tokens.EXPECT().Token(mock.Anything).Return("", tt.tokenErr)
			} else {
				tokens.EXPECT().Token(mock.Anything).Return("test-token", nil).Once()
			}

			_, err := ebay.NewBrowseClient(tokens, ebay.WithBrowseURL(srv.URL)).
				Search(context.Background(), ebay.SearchRequest{Query: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)

			var apiErr *ebay.APIError
			if tt.wantAPI == 0 {
				assert.NotErrorAs(t, err, &apiErr)
				return
			}
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantAPI, apiErr.StatusCode)
			assert.Equal(t, tt.wantAPI == http.StatusTooManyRequests, ebay.IsThrottled(err))
		})
	}
}

func TestBrowseClient_Search_RetriesOnceWithFreshToken(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, 7200)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// The first grant was revoked upstream.
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"errorId":1001,"message":"Invalid access token"}]}`))
			return
		}
		_, _ = w.Write([]byte(emptyPage))
	}))
	defer srv.Close()

	tokens := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))
	c := ebay.NewBrowseClient(tokens, ebay.WithBrowseURL(srv.URL))

	_, err := c.Search(context.Background(), ebay.SearchRequest{Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(2), ts.grants.Load())
}

func TestBrowseClient_Search_GivesUpAfterSecondRejection(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, 7200)
	srv, _ := browseServer(t, http.StatusUnauthorized, `{"errors":[{"errorId":1001,"message":"Invalid access token"}]}`)

	tokens := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))
	_, err := ebay.NewBrowseClient(tokens, ebay.WithBrowseURL(srv.URL)).
		Search(context.Background(), ebay.SearchRequest{Query: "x"})

	var apiErr *ebay.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, int32(2), ts.grants.Load())
}

func TestBrowseClient_Search_Request(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []ebay.BrowseOption
		req        ebay.SearchRequest
		wantQuery  map[string]string
		wantHeader map[string]string
	}{
		{
			name: "defaults",
			req:  ebay.SearchRequest{Query: "Dove Beauty Bar"},
			wantQuery: map[string]string{
				"q":      "Dove Beauty Bar",
				"limit":  "50",
				"filter": "",
				"offset": "",
			},
			wantHeader: map[string]string{
				"Authorization":           "Bearer test-token",
				"X-EBAY-C-MARKETPLACE-ID": "EBAY_US",
				"X-EBAY-C-ENDUSERCTX":     "",
			},
		},
		{
			name: "category sort and paging",
			req:  ebay.SearchRequest{Query: "lip balm", CategoryID: "11863", Sort: "price", Limit: 25, Offset: 50},
			wantQuery: map[string]string{
				"category_ids": "11863",
				"sort":         "price",
				"limit":        "25",
				"offset":       "50",
			},
		},
		{
			name: "filters",
			req:  ebay.SearchRequest{Query: "lip balm", FixedPriceOnly: true, ConditionIDs: []string{ebay.ConditionIDNew, "1500"}},
			wantQuery: map[string]string{
				"filter": "buyingOptions:{FIXED_PRICE},conditionIds:{1000|1500}",
			},
		},
		{
			name:      "limit clamped to api maximum",
			req:       ebay.SearchRequest{Query: "x", Limit: 500},
			wantQuery: map[string]string{"limit": "200"},
		},
		{
			name: "marketplace and ship-to location",
			opts: []ebay.BrowseOption{ebay.WithMarketplace("EBAY_GB"), ebay.WithShipToPostalCode(" SW1A1AA ")},
			req:  ebay.SearchRequest{Query: "x"},
			wantHeader: map[string]string{
				"X-EBAY-C-MARKETPLACE-ID": "EBAY_GB",
				"X-EBAY-C-ENDUSERCTX":     "contextualLocation=" + url.QueryEscape("country=GB,zip=SW1A1AA"),
			},
		},
		{
			name: "empty marketplace keeps default",
			opts: []ebay.BrowseOption{ebay.WithMarketplace(""), ebay.WithShipToPostalCode("19406")},
			req:  ebay.SearchRequest{Query: "x"},
			wantHeader: map[string]string{
				"X-EBAY-C-MARKETPLACE-ID": "EBAY_US",
				"X-EBAY-C-ENDUSERCTX":     "contextualLocation=country%3DUS%2Czip%3D19406",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, last := browseServer(t, http.StatusOK, emptyPage)
			opts := append([]ebay.BrowseOption{ebay.WithBrowseURL(srv.URL)}, tt.opts...)

			_, err := ebay.NewBrowseClient(staticTokens(t), opts...).Search(context.Background(), tt.req)
			require.NoError(t, err)

			r := last.Load()
			require.NotNil(t, r)
			for k, v := range tt.wantQuery {
				assert.Equalf(t, v, r.URL.Query().Get(k), "query param %q", k)
			}
			for k, v := range tt.wantHeader {
				assert.Equalf(t, v, r.Header.Get(k), "header %q", k)
			}
		})
	}
}

func TestBrowseClient_Search_DailyLimit(t *testing.T) {
	t.Parallel()

	srv, _ := browseServer(t, http.StatusOK, emptyPage)
	rl := ebay.NewRateLimiter(100, 10, 1)
	c := ebay.NewBrowseClient(staticTokens(t), ebay.WithBrowseURL(srv.URL), ebay.WithRateLimiter(rl))

	_, err := c.Search(context.Background(), ebay.SearchRequest{Query: "x"})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), ebay.SearchRequest{Query: "x"})
	require.ErrorIs(t, err, ebay.ErrDailyLimitReached)
	assert.Contains(t, err.Error(), "rate limit:")
	assert.Equal(t, int64(1), rl.Usage().Used)
}
