package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newMux(logger, defaultCatalog()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestTokenHandler(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name       string
		basicAuth  bool
		wantStatus int
	}{
		{name: "with basic auth", basicAuth: true, wantStatus: http.StatusOK},
		{name: "missing basic auth", basicAuth: false, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequest(http.MethodPost, srv.URL+"/identity/v1/oauth2/token", http.NoBody)
			require.NoError(t, err)
			if tt.basicAuth {
				req.SetBasicAuth("app", "cert")
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body["access_token"])
				assert.InDelta(t, 7200, body["expires_in"], 0)
			}
		})
	}
}

func TestSearchHandler(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantCount int
		wantNext  bool
	}{
		{name: "match first page", query: "?q=CeraVe+Hydrating+Facial+Cleanser&limit=2", wantTotal: 5, wantCount: 2, wantNext: true},
		{name: "match last page", query: "?q=hydrating+facial+cleanser&limit=2&offset=4", wantTotal: 5, wantCount: 1},
		{name: "offset past end", query: "?q=hydrating+facial+cleanser&offset=10", wantTotal: 5, wantCount: 0},
		{name: "no match", query: "?q=unknown+widget", wantTotal: 0, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var resp browseAPIResponse
			status := getJSON(t, srv.URL+"/buy/browse/v1/item_summary/search"+tt.query, &resp)
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.ItemSummaries, tt.wantCount)
			assert.Equal(t, tt.wantNext, resp.Next != "")
		})
	}
}

func TestSearchHandler_ShippingOptions(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var resp browseAPIResponse
	getJSON(t, srv.URL+"/buy/browse/v1/item_summary/search?q=hydrating+facial+cleanser", &resp)
	require.Len(t, resp.ItemSummaries, 5)

	fixed := resp.ItemSummaries[0].ShippingOptions
	require.Len(t, fixed, 1)
	assert.Equal(t, "FIXED", fixed[0].ShippingCostType)
	require.NotNil(t, fixed[0].ShippingCost)
	assert.Equal(t, "5.99", fixed[0].ShippingCost.Value)

	calculated := resp.ItemSummaries[2].ShippingOptions
	require.Len(t, calculated, 1)
	assert.Equal(t, "CALCULATED", calculated[0].ShippingCostType)
	assert.Nil(t, calculated[0].ShippingCost)
}

func TestQuotaHandler_CountsSearches(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	for range 3 {
		getJSON(t, srv.URL+"/buy/browse/v1/item_summary/search?q=x", nil)
	}

	var body struct {
		RateLimits []struct {
			Resources []struct {
				Name  string `json:"name"`
				Rates []struct {
					Count     int64  `json:"count"`
					Limit     int64  `json:"limit"`
					Remaining int64  `json:"remaining"`
					Reset     string `json:"reset"`
				} `json:"rates"`
			} `json:"resources"`
		} `json:"rateLimits"`
	}
	status := getJSON(t, srv.URL+"/developer/analytics/v1_beta/rate_limit/?api_context=buy&api_name=browse", &body)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, body.RateLimits, 1)
	require.Len(t, body.RateLimits[0].Resources, 1)
	res := body.RateLimits[0].Resources[0]
	assert.Equal(t, "buy.browse", res.Name)
	require.Len(t, res.Rates, 1)
	assert.Equal(t, int64(3), res.Rates[0].Count)
	assert.Equal(t, int64(dailyLimit), res.Rates[0].Limit)
	assert.Equal(t, int64(dailyLimit-3), res.Rates[0].Remaining)
	assert.NotEmpty(t, res.Rates[0].Reset)
}

func TestRetailHandler(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantPrice  string
	}{
		{name: "carried", path: "/retail/amazon?q=CeraVe+Hydrating+Facial+Cleanser", wantStatus: http.StatusOK, wantPrice: "17.78"},
		{name: "other retailer", path: "/retail/walmart?q=hydrating+facial+cleanser", wantStatus: http.StatusOK, wantPrice: "16.97"},
		{name: "retailer does not carry", path: "/retail/walmart?q=daily+moisturizing+lotion", wantStatus: http.StatusNotFound},
		{name: "unknown product", path: "/retail/amazon?q=widget", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body map[string]any
			status := getJSON(t, srv.URL+tt.path, &body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantPrice, body["price"])
				assert.NotEmpty(t, body["url"])
			}
		})
	}
}

func TestSoldHandler(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var body struct {
		OK              bool         `json:"ok"`
		SamplesCount    int          `json:"samplesCount"`
		Median          string       `json:"median"`
		DeliveredMedian string       `json:"deliveredMedian"`
		AvgShipping     string       `json:"avgShipping"`
		Samples         []soldSample `json:"samples"`
	}
	status := getJSON(t, srv.URL+"/sold?q=hydrating+facial+cleanser&condition=new", &body)
	require.Equal(t, http.StatusOK, status)

	assert.True(t, body.OK)
	assert.Equal(t, 6, body.SamplesCount)
	require.Len(t, body.Samples, 6)
	assert.Equal(t, "20.45", body.Samples[0].DeliveredPrice)
	// Prices sorted: 13.99 14.25 14.50 15.00 16.00 27.00
	assert.Equal(t, "14.75", body.Median)
	// Delivered sorted: 16.00 19.49 20.25 20.45 21.25 34.00
	assert.Equal(t, "20.35", body.DeliveredMedian)
	assert.Equal(t, "5.12", body.AvgShipping)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/sold?q=widget", nil))
}

func TestMedian(t *testing.T) {
	t.Parallel()

	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name string
		in   []decimal.Decimal
		want string
	}{
		{name: "empty", in: nil, want: "0.00"},
		{name: "odd", in: []decimal.Decimal{d("3"), d("1"), d("2")}, want: "2.00"},
		{name: "even", in: []decimal.Decimal{d("1"), d("4"), d("2"), d("3")}, want: "2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, median(tt.in).StringFixed(2))
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "products": [
    {"match": "widget", "title": "Widget", "retail": {"amazon": "9.99"}}
  ]
}`), 0o644))

	cat, err := loadCatalog(path)
	require.NoError(t, err)
	require.Len(t, cat.Products, 1)

	p := cat.find("Acme WIDGET deluxe")
	require.NotNil(t, p)
	assert.Equal(t, "9.99", p.Retail["amazon"])
	assert.Nil(t, cat.find("gadget"))

	_, err = loadCatalog(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading catalog")
}
