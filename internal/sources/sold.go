package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

type soldSamplePayload struct {
	Price          decimal.Decimal  `json:"price"`
	Shipping       decimal.Decimal  `json:"shipping"`
	DeliveredPrice *decimal.Decimal `json:"deliveredPrice"`
	Title          string           `json:"title"`
	Condition      string           `json:"condition"`
}

type soldPayload struct {
	OK              bool                `json:"ok"`
	SamplesCount    int                 `json:"samplesCount"`
	Median          decimal.Decimal     `json:"median"`
	DeliveredMedian decimal.Decimal     `json:"deliveredMedian"`
	AvgShipping     decimal.Decimal     `json:"avgShipping"`
	Samples         []soldSamplePayload `json:"samples"`
}

// SoldSource fetches sold-listing history over HTTP.
type SoldSource struct {
	name string
	feed httpFeed
}

// NewSoldSource creates a sold-history source.
func NewSoldSource(name, endpoint string, opts ...Option) *SoldSource {
	return &SoldSource{name: name, feed: newHTTPFeed(endpoint, opts)}
}

// Name implements Source.
func (s *SoldSource) Name() string { return s.name }

// Fetch implements Source. An unknown product yields an unusable set
// (OK == false) rather than an error.
func (s *SoldSource) Fetch(ctx context.Context, q Query) (domain.Observation, error) {
	params := url.Values{}
	params.Set("q", q.Text())
	if q.Identity.Condition != "" {
		params.Set("condition", string(q.Identity.Condition))
	}

	var p soldPayload
	err := s.feed.getJSON(ctx, params, &p)
	if errors.Is(err, errNotFound) {
		return &domain.SoldHistorySet{Source: s.name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s sold history: %w", s.name, err)
	}

	return toSoldHistory(s.name, &p), nil
}

// toSoldHistory converts the payload, dropping samples with a non-positive
// price. A missing deliveredPrice is price plus shipping.
func toSoldHistory(name string, p *soldPayload) *domain.SoldHistorySet {
	out := &domain.SoldHistorySet{
		Source:               name,
		OK:                   p.OK,
		SamplesCount:         p.SamplesCount,
		MedianCents:          domain.DollarsToCents(p.Median),
		DeliveredMedianCents: domain.DollarsToCents(p.DeliveredMedian),
		AvgShippingCents:     domain.DollarsToCents(p.AvgShipping),
		Samples:              make([]domain.SoldSample, 0, len(p.Samples)),
	}

	for i := range p.Samples {
		sp := &p.Samples[i]
		price := domain.DollarsToCents(sp.Price)
		if price <= 0 {
			continue
		}
		ship := max(domain.DollarsToCents(sp.Shipping), 0)
		delivered := price + ship
		if sp.DeliveredPrice != nil && sp.DeliveredPrice.IsPositive() {
			delivered = domain.DollarsToCents(*sp.DeliveredPrice)
		}
		out.Samples = append(out.Samples, domain.SoldSample{
			PriceCents:     price,
			ShippingCents:  ship,
			DeliveredCents: delivered,
			Title:          sp.Title,
			Condition:      sp.Condition,
		})
	}

	if out.SamplesCount == 0 {
		out.SamplesCount = len(out.Samples)
	}
	return out
}
