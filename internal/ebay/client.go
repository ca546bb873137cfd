// Package ebay fetches active-listing comps from the eBay Browse API. The
// HTTP clients sit behind Searcher and TokenProvider so sources and tests
// can swap them out.
package ebay

import (
	"context"
)

// ConditionIDNew is the Browse API condition ID for brand-new items.
const ConditionIDNew = "1000"

// Searcher runs one Browse API search page.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// TokenProvider hands out OAuth2 application access tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// SearchRequest is one page of an item_summary search.
type SearchRequest struct {
	Query      string
	CategoryID string
	Limit      int
	Offset     int
	// Sort is a Browse sort key such as "price" or "newlyListed".
	Sort string

	ConditionIDs []string
	// FixedPriceOnly drops auctions; a current bid is not a comp price.
	FixedPriceOnly bool
}

// SearchResponse is a decoded search page. HasMore is false once eBay stops
// returning a next link or the offset window is exhausted.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// ItemSummary is the subset of a Browse item summary that comps need.
type ItemSummary struct {
	ItemID          string           `json:"itemId"`
	Title           string           `json:"title"`
	Price           ItemPrice        `json:"price"`
	ItemWebURL      string           `json:"itemWebUrl"`
	Condition       string           `json:"condition"`
	ConditionID     string           `json:"conditionId"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ShippingOptions []ShippingOption `json:"shippingOptions,omitempty"`
}

// ItemPrice is an eBay amount. Value is a decimal string such as "14.38".
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ShippingOption is one way an item ships. CALCULATED options carry no
// cost in search results unless a ship-to location was sent.
type ShippingOption struct {
	ShippingCostType string     `json:"shippingCostType,omitempty"`
	ShippingCost     *ItemPrice `json:"shippingCost,omitempty"`
}
