// Package domain defines the core business types for the comp pricer.
package domain

import (
	"slices"
	"time"
)

// Condition is the coarse condition bucket used for comp matching.
type Condition string

// Condition constants.
const (
	ConditionNew   Condition = "new"
	ConditionOther Condition = "other"
)

// Size is a measured quantity extracted from a title, e.g. 16 fl oz.
type Size struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// CanonicalIdentity is the normalized identity of the product being priced.
// It is built once per pricing request and never mutated.
type CanonicalIdentity struct {
	Brand       string    `json:"brand"`
	BrandTokens []string  `json:"brand_tokens"`
	Keywords    []string  `json:"keywords"`
	Size        *Size     `json:"size,omitempty"`
	PackCount   int       `json:"pack_count"`
	Condition   Condition `json:"condition"`
}

// CompCandidate is a single observed listing considered as pricing evidence.
type CompCandidate struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	ItemCents int64  `json:"item_cents"`
	ShipCents int64  `json:"ship_cents"`
	URL       string `json:"url,omitempty"`
}

// DeliveredCents returns the buyer-facing total (item + shipping).
func (c *CompCandidate) DeliveredCents() int64 {
	return c.ItemCents + c.ShipCents
}

// Verdict is the comp matcher's classification of a candidate.
type Verdict string

// Verdict constants.
const (
	VerdictMatch     Verdict = "match"
	VerdictAmbiguous Verdict = "ambiguous"
	VerdictReject    Verdict = "reject"
)

// MatchResult is the per-candidate output of the comp matcher.
type MatchResult struct {
	Candidate         CompCandidate `json:"candidate"`
	Verdict           Verdict       `json:"verdict"`
	Reasons           []string      `json:"reasons"`
	Score             int           `json:"score"`
	InferredPackCount int           `json:"inferred_pack_count"`
	InferredSize      *Size         `json:"inferred_size,omitempty"`
	Unknowns          []string      `json:"unknowns,omitempty"`
}

// PriceSample is one delivered-price observation fed to the robust stats engine.
type PriceSample struct {
	ItemCents int64 `json:"item_cents"`
	ShipCents int64 `json:"ship_cents"`
}

// DeliveredCents returns item plus shipping.
func (s PriceSample) DeliveredCents() int64 {
	return s.ItemCents + s.ShipCents
}

// RobustStats summarizes a cleaned delivered-price sample. The zero value is
// the empty-sample sentinel.
type RobustStats struct {
	Count                  int     `json:"count"`
	RawCount               int     `json:"raw_count"`
	Min                    int64   `json:"min"`
	Max                    int64   `json:"max"`
	P20                    int64   `json:"p20"`
	P35                    int64   `json:"p35"`
	P50                    int64   `json:"p50"`
	P65                    int64   `json:"p65"`
	IQR                    int64   `json:"iqr"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	OutliersBelowCount     int     `json:"outliers_below_count"`
	OutliersAboveCount     int     `json:"outliers_above_count"`
	FreeShippingRate       float64 `json:"free_shipping_rate"`
}

// IsEmpty reports whether s is the empty-sample sentinel.
func (s *RobustStats) IsEmpty() bool {
	return s.Count == 0
}

// CompsSource names the evidence tier a decision was priced from.
type CompsSource string

// Comps source constants.
const (
	CompsSourceSold    CompsSource = "sold"
	CompsSourceActive  CompsSource = "active"
	CompsSourceAmazon  CompsSource = "amazon"
	CompsSourceWalmart CompsSource = "walmart"
	CompsSourceRetail  CompsSource = "retail"
	CompsSourceNone    CompsSource = "none"
)

// MatchConfidence is the coarse confidence label attached to a decision.
type MatchConfidence string

// Match confidence constants.
const (
	ConfidenceHigh   MatchConfidence = "high"
	ConfidenceMedium MatchConfidence = "medium"
	ConfidenceLow    MatchConfidence = "low"
)

// Downgrade returns the next lower confidence level.
func (c MatchConfidence) Downgrade() MatchConfidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DeliveredPricingDecision is the engine's output for one pricing request.
type DeliveredPricingDecision struct {
	TargetDeliveredCents int64           `json:"target_delivered_cents"`
	FinalItemCents       int64           `json:"final_item_cents"`
	FinalShipCents       int64           `json:"final_ship_cents"`
	CanCompete           bool            `json:"can_compete"`
	FreeShipApplied      bool            `json:"free_ship_applied"`
	SubsidyCents         int64           `json:"subsidy_cents"`
	SkipListing          bool            `json:"skip_listing"`
	Warnings             []string        `json:"warnings"`
	CompsSource          CompsSource     `json:"comps_source"`
	MatchConfidence      MatchConfidence `json:"match_confidence"`

	// Evidence
	AmazonPriceCents           *int64   `json:"amazon_price_cents,omitempty"`
	WalmartPriceCents          *int64   `json:"walmart_price_cents,omitempty"`
	SoldMedianDeliveredCents   *int64   `json:"sold_median_delivered_cents,omitempty"`
	SoldCount                  int      `json:"sold_count"`
	SoldStrong                 bool     `json:"sold_strong"`
	ActiveFloorDeliveredCents  *int64   `json:"active_floor_delivered_cents,omitempty"`
	ActiveMedianDeliveredCents *int64   `json:"active_median_delivered_cents,omitempty"`
	ActiveCount                int      `json:"active_count"`
	SellThrough                *float64 `json:"sell_through,omitempty"`

	// Shipping
	ShippingEstimateCents  int64  `json:"shipping_estimate_cents"`
	ShippingEstimateSource string `json:"shipping_estimate_source"`

	// Request context
	Identity   CanonicalIdentity        `json:"identity"`
	Settings   DeliveredPricingSettings `json:"settings"`
	Signature  string                   `json:"signature"`
	ComputedAt time.Time                `json:"computed_at"`
}

// TotalCents returns the listed item plus shipping.
func (d *DeliveredPricingDecision) TotalCents() int64 {
	return d.FinalItemCents + d.FinalShipCents
}

// AddWarning appends a warning once.
func (d *DeliveredPricingDecision) AddWarning(w string) {
	if slices.Contains(d.Warnings, w) {
		return
	}
	d.Warnings = append(d.Warnings, w)
}

// TrackedProduct is a product the service re-prices on a schedule.
type TrackedProduct struct {
	ID           string            `json:"id"                       db:"id"`
	Brand        string            `json:"brand"                    db:"brand"`
	ProductName  string            `json:"product_name"             db:"product_name"`
	Condition    string            `json:"condition,omitempty"      db:"condition"`
	Overrides    SettingsOverrides `json:"overrides"                db:"overrides"`
	Enabled      bool              `json:"enabled"                  db:"enabled"`
	LastPricedAt *time.Time        `json:"last_priced_at,omitempty" db:"last_priced_at"`
	CreatedAt    time.Time         `json:"created_at"               db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"               db:"updated_at"`
}

// DecisionRecord is a persisted pricing decision.
type DecisionRecord struct {
	ID                   string                   `json:"id"                     db:"id"`
	ProductID            *string                  `json:"product_id,omitempty"   db:"product_id"`
	Brand                string                   `json:"brand"                  db:"brand"`
	ProductName          string                   `json:"product_name"           db:"product_name"`
	Signature            string                   `json:"signature"              db:"signature"`
	TargetDeliveredCents int64                    `json:"target_delivered_cents" db:"target_delivered_cents"`
	FinalItemCents       int64                    `json:"final_item_cents"       db:"final_item_cents"`
	FinalShipCents       int64                    `json:"final_ship_cents"       db:"final_ship_cents"`
	CanCompete           bool                     `json:"can_compete"            db:"can_compete"`
	SkipListing          bool                     `json:"skip_listing"           db:"skip_listing"`
	CompsSource          CompsSource              `json:"comps_source"           db:"comps_source"`
	MatchConfidence      MatchConfidence          `json:"match_confidence"       db:"match_confidence"`
	Decision             DeliveredPricingDecision `json:"decision"               db:"decision"`
	CreatedAt            time.Time                `json:"created_at"             db:"created_at"`
}

// JobRun records one execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}
