package domain

// SourceKind identifies the shape of a comp source's payload.
type SourceKind string

// Source kind constants.
const (
	SourceKindRetail SourceKind = "retail"
	SourceKindActive SourceKind = "active"
	SourceKindSold   SourceKind = "sold"
)

// Observation is the tagged variant returned by comp sources. It is sealed:
// the only implementations are RetailPrice, ActiveListingSet and
// SoldHistorySet, and consumers type-switch over them.
type Observation interface {
	Kind() SourceKind
	SourceName() string
	isObservation()
}

// RetailPrice is a single authoritative retail list price.
type RetailPrice struct {
	Retailer          string `json:"retailer"`
	PriceCents        *int64 `json:"price_cents,omitempty"`
	PackQuantity      int    `json:"pack_quantity"`
	PricePerUnitCents *int64 `json:"price_per_unit_cents,omitempty"`
	Weight            string `json:"weight,omitempty"`
	Title             string `json:"title,omitempty"`
	URL               string `json:"url,omitempty"`
}

// Kind implements Observation.
func (*RetailPrice) Kind() SourceKind { return SourceKindRetail }

// SourceName implements Observation.
func (r *RetailPrice) SourceName() string { return r.Retailer }

func (*RetailPrice) isObservation() {}

// ActiveListingSet is the set of active marketplace listings for a query.
type ActiveListingSet struct {
	Source     string          `json:"source"`
	Candidates []CompCandidate `json:"candidates"`
}

// Kind implements Observation.
func (*ActiveListingSet) Kind() SourceKind { return SourceKindActive }

// SourceName implements Observation.
func (a *ActiveListingSet) SourceName() string { return a.Source }

func (*ActiveListingSet) isObservation() {}

// SoldSample is one sold listing from the sold-history feed. Title is
// optional; untitled samples are treated as already matched by the query.
type SoldSample struct {
	PriceCents     int64  `json:"price_cents"`
	ShippingCents  int64  `json:"shipping_cents"`
	DeliveredCents int64  `json:"delivered_cents"`
	Title          string `json:"title,omitempty"`
	Condition      string `json:"condition,omitempty"`
}

// SoldHistorySet is the sold-listing history for a query.
type SoldHistorySet struct {
	Source               string       `json:"source"`
	OK                   bool         `json:"ok"`
	SamplesCount         int          `json:"samples_count"`
	MedianCents          int64        `json:"median_cents"`
	DeliveredMedianCents int64        `json:"delivered_median_cents"`
	AvgShippingCents     int64        `json:"avg_shipping_cents"`
	Samples              []SoldSample `json:"samples"`
}

// Kind implements Observation.
func (*SoldHistorySet) Kind() SourceKind { return SourceKindSold }

// SourceName implements Observation.
func (s *SoldHistorySet) SourceName() string { return s.Source }

func (*SoldHistorySet) isObservation() {}
