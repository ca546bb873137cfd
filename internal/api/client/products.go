package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// ProductListOptions filters a product listing.
type ProductListOptions struct {
	EnabledOnly bool
	Brand       string
	Condition   string
	Search      string
	Limit       int
	Offset      int
	OrderBy     string
}

func (o *ProductListOptions) values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.EnabledOnly {
		q.Set("enabled", "true")
	}
	if o.Brand != "" {
		q.Set("brand", o.Brand)
	}
	if o.Condition != "" {
		q.Set("condition", o.Condition)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.OrderBy != "" {
		q.Set("order_by", o.OrderBy)
	}
	return q
}

// ProductList is a page of tracked products.
type ProductList struct {
	Products []domain.TrackedProduct `json:"products"`
	Total    int                     `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// RepriceSummary reports the outcome of a reprice pass.
type RepriceSummary struct {
	Status  string `json:"status"`
	Summary struct {
		Products int `json:"products"`
		Priced   int `json:"priced"`
		Errors   int `json:"errors"`
		Alerts   int `json:"alerts"`
	} `json:"summary"`
}

// ListProducts returns a page of tracked products.
func (c *Client) ListProducts(ctx context.Context, opts *ProductListOptions) (*ProductList, error) {
	var resp ProductList
	if err := c.get(ctx, "/api/v1/products", opts.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct returns a single tracked product.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.TrackedProduct, error) {
	var p domain.TrackedProduct
	if err := c.get(ctx, productPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct starts tracking a product.
func (c *Client) CreateProduct(ctx context.Context, req *domain.ProductRequest) (*domain.TrackedProduct, error) {
	var p domain.TrackedProduct
	if err := c.post(ctx, "/api/v1/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces a tracked product's fields.
func (c *Client) UpdateProduct(
	ctx context.Context,
	id string,
	req *domain.ProductRequest,
) (*domain.TrackedProduct, error) {
	var p domain.TrackedProduct
	if err := c.put(ctx, productPath(id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProductEnabled enables or disables scheduled repricing for a product.
func (c *Client) SetProductEnabled(ctx context.Context, id string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return c.put(ctx, productPath(id)+"/enabled", body, nil)
}

// DeleteProduct stops tracking a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.del(ctx, productPath(id))
}

// RepriceProduct prices a product now and returns the recorded decision.
func (c *Client) RepriceProduct(ctx context.Context, id string) (*domain.DecisionRecord, error) {
	var rec domain.DecisionRecord
	if err := c.post(ctx, productPath(id)+"/reprice", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDecisions returns a product's decision history, newest first.
func (c *Client) ListDecisions(ctx context.Context, id string, limit int) ([]domain.DecisionRecord, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var recs []domain.DecisionRecord
	if err := c.get(ctx, productPath(id)+"/decisions", q, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// TriggerReprice runs a full reprice pass over every enabled product.
func (c *Client) TriggerReprice(ctx context.Context) (*RepriceSummary, error) {
	var resp RepriceSummary
	if err := c.post(ctx, "/api/v1/reprice", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func productPath(id string) string {
	return fmt.Sprintf("/api/v1/products/%s", url.PathEscape(id))
}
