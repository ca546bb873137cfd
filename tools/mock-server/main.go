// Package main implements a mock comp feed server for local development.
// It simulates the eBay OAuth, Browse search and Analytics quota endpoints
// plus the retail and sold-history feeds, all answering from one product
// catalog, so the pricer can run end to end without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

const dailyLimit = 5000

// catalog is the set of products the mock feeds know about.
type catalog struct {
	Products []catalogProduct `json:"products"`
}

// catalogProduct answers any query containing Match (case-insensitive).
type catalogProduct struct {
	Match  string            `json:"match"`
	Title  string            `json:"title"`
	Retail map[string]string `json:"retail"` // retailer -> dollar price
	Sold   []catalogSale     `json:"sold"`
	Active []catalogListing  `json:"active"`
}

type catalogSale struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Shipping  string `json:"shipping"`
	Condition string `json:"condition"`
}

type catalogListing struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Shipping  string `json:"shipping,omitempty"` // empty means calculated
	Condition string `json:"condition"`
}

func (c *catalog) find(q string) *catalogProduct {
	q = strings.ToLower(q)
	for i := range c.Products {
		if strings.Contains(q, strings.ToLower(c.Products[i].Match)) {
			return &c.Products[i]
		}
	}
	return nil
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	catalogFile := flag.String("catalog", "", "path to a JSON product catalog (default: built-in)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat := defaultCatalog()
	if *catalogFile != "" {
		var err error
		cat, err = loadCatalog(*catalogFile)
		if err != nil {
			logger.Error("failed to load catalog", "path", *catalogFile, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("loaded catalog", "products", len(cat.Products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock comp server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, cat)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, cat *catalog) *http.ServeMux {
	var browseCalls atomic.Int64
	started := time.Now().UTC()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, cat, &browseCalls))
	mux.HandleFunc("GET /developer/analytics/v1_beta/rate_limit/", quotaHandler(&browseCalls, started))
	mux.HandleFunc("GET /retail/{retailer}", retailHandler(logger, cat))
	mux.HandleFunc("GET /sold", soldHandler(logger, cat))
	return mux
}

func loadCatalog(path string) (*catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &c, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Basic Auth must be present; credentials are not checked.
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

type itemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type shippingOption struct {
	ShippingCostType string     `json:"shippingCostType"`
	ShippingCost     *itemPrice `json:"shippingCost,omitempty"`
}

type itemSummary struct {
	ItemID          string           `json:"itemId"`
	Title           string           `json:"title"`
	Price           itemPrice        `json:"price"`
	ItemWebURL      string           `json:"itemWebUrl"`
	Condition       string           `json:"condition"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ShippingOptions []shippingOption `json:"shippingOptions,omitempty"`
}

type browseAPIResponse struct {
	ItemSummaries []itemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next,omitempty"`
}

func toItemSummaries(p *catalogProduct) []itemSummary {
	items := make([]itemSummary, 0, len(p.Active))
	for i, l := range p.Active {
		item := itemSummary{
			ItemID:        fmt.Sprintf("v1|mock%04d|0", i+1),
			Title:         l.Title,
			Price:         itemPrice{Value: l.Price, Currency: "USD"},
			ItemWebURL:    fmt.Sprintf("https://www.ebay.com/itm/mock%04d", i+1),
			Condition:     l.Condition,
			BuyingOptions: []string{"FIXED_PRICE"},
		}
		if l.Shipping == "" {
			item.ShippingOptions = []shippingOption{{ShippingCostType: "CALCULATED"}}
		} else {
			item.ShippingOptions = []shippingOption{{
				ShippingCostType: "FIXED",
				ShippingCost:     &itemPrice{Value: l.Shipping, Currency: "USD"},
			}}
		}
		items = append(items, item)
	}
	return items
}

func searchHandler(logger *slog.Logger, cat *catalog, calls *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		q := r.URL.Query().Get("q")
		limit := queryInt(r, "limit", 50)
		offset := queryInt(r, "offset", 0)

		var matched []itemSummary
		if p := cat.find(q); p != nil {
			matched = toItemSummaries(p)
		}
		total := len(matched)

		if offset >= len(matched) {
			matched = []itemSummary{}
		} else {
			matched = matched[offset:min(offset+limit, len(matched))]
		}

		resp := browseAPIResponse{
			ItemSummaries: matched,
			Total:         total,
			Offset:        offset,
			Limit:         limit,
		}
		if offset+limit < total {
			resp.Next = fmt.Sprintf("/buy/browse/v1/item_summary/search?q=%s&offset=%d&limit=%d",
				q, offset+limit, limit)
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "offset", offset)
	}
}

func quotaHandler(calls *atomic.Int64, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		used := calls.Load()
		writeJSON(w, http.StatusOK, map[string]any{
			"rateLimits": []any{map[string]any{
				"apiContext": "buy",
				"apiName":    "browse",
				"resources": []any{map[string]any{
					"name": "buy.browse",
					"rates": []any{map[string]any{
						"count":      used,
						"limit":      dailyLimit,
						"remaining":  max(dailyLimit-used, 0),
						"reset":      started.Add(24 * time.Hour).Format(time.RFC3339),
						"timeWindow": 86400,
					}},
				}},
			}},
		})
	}
}

func retailHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		retailer := r.PathValue("retailer")
		p := cat.find(r.URL.Query().Get("q"))
		if p == nil || p.Retail[retailer] == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not carried"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"price":        p.Retail[retailer],
			"packQuantity": 1,
			"title":        p.Title,
			"url":          fmt.Sprintf("https://%s.example/p/%s", retailer, strings.ReplaceAll(strings.ToLower(p.Match), " ", "-")),
		})
		logger.Info("retail", "retailer", retailer, "price", p.Retail[retailer])
	}
}

type soldSample struct {
	Price          string `json:"price"`
	Shipping       string `json:"shipping"`
	DeliveredPrice string `json:"deliveredPrice"`
	Title          string `json:"title"`
	Condition      string `json:"condition"`
}

func soldHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := cat.find(r.URL.Query().Get("q"))
		if p == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no sales"})
			return
		}

		samples := make([]soldSample, 0, len(p.Sold))
		var prices, delivered []decimal.Decimal
		shipTotal := decimal.Zero
		for _, s := range p.Sold {
			price := decimal.RequireFromString(s.Price)
			ship := decimal.Zero
			if s.Shipping != "" {
				ship = decimal.RequireFromString(s.Shipping)
			}
			samples = append(samples, soldSample{
				Price:          price.StringFixed(2),
				Shipping:       ship.StringFixed(2),
				DeliveredPrice: price.Add(ship).StringFixed(2),
				Title:          s.Title,
				Condition:      s.Condition,
			})
			prices = append(prices, price)
			delivered = append(delivered, price.Add(ship))
			shipTotal = shipTotal.Add(ship)
		}

		avgShip := decimal.Zero
		if n := len(p.Sold); n > 0 {
			avgShip = shipTotal.Div(decimal.NewFromInt(int64(n))).Round(2)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"ok":              len(samples) > 0,
			"samplesCount":    len(samples),
			"median":          median(prices).StringFixed(2),
			"deliveredMedian": median(delivered).StringFixed(2),
			"avgShipping":     avgShip.StringFixed(2),
			"samples":         samples,
		})
		logger.Info("sold", "query", r.URL.Query().Get("q"), "samples", len(samples))
	}
}

func median(ds []decimal.Decimal) decimal.Decimal {
	if len(ds) == 0 {
		return decimal.Zero
	}
	sorted := slices.Clone(ds)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2)).Round(2)
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 || (v == 0 && key == "limit") {
		return def
	}
	return v
}

func defaultCatalog() *catalog {
	return &catalog{Products: []catalogProduct{
		{
			Match: "hydrating facial cleanser",
			Title: "CeraVe Hydrating Facial Cleanser 16 oz",
			Retail: map[string]string{
				"amazon":  "17.78",
				"walmart": "16.97",
			},
			Sold: []catalogSale{
				{Title: "CeraVe Hydrating Facial Cleanser 16 oz New", Price: "14.50", Shipping: "5.95", Condition: "New"},
				{Title: "CeraVe Hydrating Cleanser 16 fl oz", Price: "15.00", Shipping: "6.25", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16oz", Price: "13.99", Shipping: "5.50", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16 oz Sealed", Price: "16.00", Shipping: "0", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 2 Pack 16 oz", Price: "27.00", Shipping: "7.00", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16 oz", Price: "14.25", Shipping: "6.00", Condition: "New"},
			},
			Active: []catalogListing{
				{Title: "CeraVe Hydrating Facial Cleanser 16 oz", Price: "15.49", Shipping: "5.99", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16 fl oz New", Price: "19.99", Shipping: "0.00", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16oz", Price: "14.95", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 8 oz", Price: "9.99", Shipping: "4.99", Condition: "New"},
				{Title: "CeraVe Hydrating Facial Cleanser 16 oz Used", Price: "8.00", Shipping: "5.00", Condition: "Used"},
			},
		},
		{
			Match:  "daily moisturizing lotion",
			Title:  "CeraVe Daily Moisturizing Lotion 12 oz",
			Retail: map[string]string{"amazon": "14.48"},
		},
	}}
}
