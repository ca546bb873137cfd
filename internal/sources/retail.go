package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// retailPayload is the retail lookup response. Dollar amounts arrive as JSON
// numbers or strings; decimal accepts both.
type retailPayload struct {
	Price        *decimal.Decimal `json:"price"`
	PackQuantity int              `json:"packQuantity"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	Weight       string           `json:"weight"`
	Title        string           `json:"title"`
	URL          string           `json:"url"`
}

// RetailSource looks up a retailer's list price over HTTP.
type RetailSource struct {
	name string
	feed httpFeed
}

// NewRetailSource creates a retail source named after its retailer, e.g.
// "amazon" or "walmart".
func NewRetailSource(name, endpoint string, opts ...Option) *RetailSource {
	return &RetailSource{name: name, feed: newHTTPFeed(endpoint, opts)}
}

// Name implements Source.
func (s *RetailSource) Name() string { return s.name }

// Fetch implements Source. A retailer that does not carry the product yields
// a RetailPrice with no price rather than an error.
func (s *RetailSource) Fetch(ctx context.Context, q Query) (domain.Observation, error) {
	params := url.Values{}
	params.Set("q", q.Text())
	params.Set("brand", q.Brand)
	params.Set("title", q.ProductName)

	var p retailPayload
	err := s.feed.getJSON(ctx, params, &p)
	if errors.Is(err, errNotFound) {
		return &domain.RetailPrice{Retailer: s.name, PackQuantity: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s lookup: %w", s.name, err)
	}

	return toRetailPrice(s.name, &p), nil
}

func toRetailPrice(name string, p *retailPayload) *domain.RetailPrice {
	out := &domain.RetailPrice{
		Retailer:     name,
		PackQuantity: p.PackQuantity,
		Weight:       p.Weight,
		Title:        p.Title,
		URL:          p.URL,
	}
	if out.PackQuantity < 1 {
		out.PackQuantity = 1
	}
	if p.Price != nil && p.Price.IsPositive() {
		cents := domain.DollarsToCents(*p.Price)
		out.PriceCents = &cents
	}
	if p.PricePerUnit != nil && p.PricePerUnit.IsPositive() {
		cents := domain.DollarsToCents(*p.PricePerUnit)
		out.PricePerUnitCents = &cents
	}
	return out
}
