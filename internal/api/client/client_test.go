package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		wantNotFound bool
		wantMessage  string
		wantTitle    string
	}{
		{
			name:        "server error problem",
			status:      http.StatusInternalServerError,
			body:        `{"title":"Internal Server Error","status":500,"detail":"boom"}`,
			wantMessage: "API error (HTTP 500): boom",
			wantTitle:   "Internal Server Error",
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			body:         `{"title":"Not Found","status":404,"detail":"product p1 not found"}`,
			wantNotFound: true,
			wantMessage:  "API error (HTTP 404): product p1 not found",
			wantTitle:    "Not Found",
		},
		{
			name:   "validation errors are appended",
			status: http.StatusUnprocessableEntity,
			body: `{"title":"Unprocessable Entity","detail":"validation failed",` +
				`"errors":[{"message":"expected length >= 1","location":"body.brand"}]}`,
			wantMessage: "validation failed; body.brand: expected length >= 1",
			wantTitle:   "Unprocessable Entity",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream timed out\n",
			wantMessage: "API error (HTTP 502): upstream timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, userAgent, r.UserAgent())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetProduct(context.Background(), "p1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMessage)
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantTitle, apiErr.Title)
		})
	}
}

func TestClient_Price(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/pricing", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var q domain.PriceQuery
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "CeraVe", q.Brand)
		assert.Equal(t, "Cleanser 16 oz", q.ProductName)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.PricingResponse{
			Success:         true,
			SuggestedPrice:  14.38,
			ShippingPrice:   6,
			CanCompete:      true,
			MatchConfidence: domain.ConfidenceHigh,
			Debug:           domain.PricingDebug{FinalItemCents: 1438, FinalShipCents: 600},
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Price(context.Background(), &domain.PriceQuery{
		Brand:       "CeraVe",
		ProductName: "Cleanser 16 oz",
	})
	require.NoError(t, err)
	assert.InDelta(t, 14.38, resp.SuggestedPrice, 1e-9)
	assert.Equal(t, int64(1438), resp.Debug.FinalItemCents)
	assert.Equal(t, domain.ConfidenceHigh, resp.MatchConfidence)
}

func TestClient_Split(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pricing/split", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "20.38", body["targetDelivered"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"finalItemCents":1438,"finalShipCents":600,"canCompete":true,"warnings":[]}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Split(context.Background(), &SplitRequest{TargetDelivered: "20.38"})
	require.NoError(t, err)
	assert.Equal(t, int64(1438), res.FinalItemCents)
	assert.Equal(t, int64(600), res.FinalShipCents)
	assert.True(t, res.CanCompete)
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      *ProductListOptions
		wantQuery string
	}{
		{name: "no options", opts: nil, wantQuery: ""},
		{
			name:      "all filters",
			opts:      &ProductListOptions{EnabledOnly: true, Brand: "CeraVe", Search: "clean", Limit: 10, Offset: 20, OrderBy: "brand"},
			wantQuery: "brand=CeraVe&enabled=true&limit=10&offset=20&order_by=brand&search=clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/products", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(ProductList{
					Products: []domain.TrackedProduct{{ID: "p1", Brand: "CeraVe"}},
					Total:    1,
				})
			}))
			defer srv.Close()

			list, err := New(srv.URL).ListProducts(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 1, list.Total)
			require.Len(t, list.Products, 1)
			assert.Equal(t, "p1", list.Products[0].ID)
		})
	}
}

func TestClient_CreateProduct(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products", r.URL.Path)

		var req domain.ProductRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.TrackedProduct{
			ID:          "p-created",
			Brand:       req.Brand,
			ProductName: req.ProductName,
			Enabled:     true,
		})
	}))
	defer srv.Close()

	p, err := New(srv.URL).CreateProduct(context.Background(), &domain.ProductRequest{
		Brand:       "CeraVe",
		ProductName: "Cleanser 16 oz",
	})
	require.NoError(t, err)
	assert.Equal(t, "p-created", p.ID)
	assert.True(t, p.Enabled)
}

func TestClient_ProductMutations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		call       func(*Client) error
		wantMethod string
		wantPath   string
		status     int
	}{
		{
			name:       "update",
			call:       func(c *Client) error { _, err := c.UpdateProduct(context.Background(), "p1", &domain.ProductRequest{}); return err },
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/products/p1",
			status:     http.StatusOK,
		},
		{
			name:       "set enabled",
			call:       func(c *Client) error { return c.SetProductEnabled(context.Background(), "p1", false) },
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/products/p1/enabled",
			status:     http.StatusOK,
		},
		{
			name:       "delete",
			call:       func(c *Client) error { return c.DeleteProduct(context.Background(), "p1") },
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/products/p1",
			status:     http.StatusNoContent,
		},
		{
			name:       "reprice",
			call:       func(c *Client) error { _, err := c.RepriceProduct(context.Background(), "p1"); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/products/p1/reprice",
			status:     http.StatusOK,
		},
		{
			name:       "trigger reprice",
			call:       func(c *Client) error { _, err := c.TriggerReprice(context.Background()); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/reprice",
			status:     http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantMethod, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent {
					_, _ = w.Write([]byte(`{}`))
				}
			}))
			defer srv.Close()

			require.NoError(t, tt.call(New(srv.URL)))
		})
	}
}

func TestClient_ListDecisions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/p1/decisions", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.DecisionRecord{{ID: "d1", FinalItemCents: 1438}})
	}))
	defer srv.Close()

	recs, err := New(srv.URL).ListDecisions(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1438), recs[0].FinalItemCents)
}

func TestClient_Jobs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/jobs":
			_, _ = w.Write([]byte(`[
				{"name":"reprice","last_run":{"id":"r1","job_name":"reprice","status":"succeeded"},"next_run_at":"2026-04-02T18:00:00Z"},
				{"name":"quota_sync"}
			]`))
		case "/api/v1/jobs/reprice":
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode([]domain.JobRun{{ID: "r1"}, {ID: "r0"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	latest, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "reprice", latest[0].Name)
	require.NotNil(t, latest[0].LastRun)
	assert.Equal(t, "succeeded", latest[0].LastRun.Status)
	require.NotNil(t, latest[0].NextRunAt)
	assert.Equal(t, 18, latest[0].NextRunAt.Hour())
	assert.Nil(t, latest[1].LastRun)

	history, err := c.GetJobHistory(context.Background(), "reprice", 3)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestClient_Quota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		used := 10
		if r.Method == http.MethodPost {
			assert.Equal(t, "/api/v1/quota/sync", r.URL.Path)
			used = 1200
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"daily_limit": 5000,
			"daily_used":  used,
			"remaining":   5000 - used,
			"reset_at":    "2026-06-16T14:30:00Z",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	q, err := c.GetQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), q.DailyUsed)

	q, err = c.SyncQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1200), q.DailyUsed)
	assert.Equal(t, int64(3800), q.Remaining)
}
