package client

import (
	"context"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// SplitRequest asks the server to split a target delivered price.
type SplitRequest struct {
	TargetDeliveredCents int64                     `json:"targetDeliveredCents,omitempty"`
	TargetDelivered      string                    `json:"targetDelivered,omitempty"`
	Settings             *domain.SettingsOverrides `json:"settings,omitempty"`
}

// SplitResult is the server's item/shipping split.
type SplitResult struct {
	TargetDeliveredCents int64                           `json:"targetDeliveredCents"`
	FinalItemCents       int64                           `json:"finalItemCents"`
	FinalShipCents       int64                           `json:"finalShipCents"`
	ItemPrice            string                          `json:"itemPrice"`
	ShippingPrice        string                          `json:"shippingPrice"`
	CanCompete           bool                            `json:"canCompete"`
	FreeShipApplied      bool                            `json:"freeShipApplied"`
	SubsidyCents         int64                           `json:"subsidyCents"`
	SkipListing          bool                            `json:"skipListing"`
	Warnings             []string                        `json:"warnings"`
	Settings             domain.DeliveredPricingSettings `json:"settings"`
}

// Price requests a delivered pricing decision.
func (c *Client) Price(ctx context.Context, q *domain.PriceQuery) (*domain.PricingResponse, error) {
	var resp domain.PricingResponse
	if err := c.post(ctx, "/api/v1/pricing", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Split runs the server-side splitter without fetching comps.
func (c *Client) Split(ctx context.Context, req *SplitRequest) (*SplitResult, error) {
	var resp SplitResult
	if err := c.post(ctx, "/api/v1/pricing/split", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
