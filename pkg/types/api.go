package domain

// PriceQuery is the body of a pricing request.
type PriceQuery struct {
	Brand       string             `json:"brand,omitempty"       doc:"Product brand"                      example:"CeraVe"                          maxLength:"200"`
	ProductName string             `json:"productName,omitempty" doc:"Product title"                      example:"Hydrating Facial Cleanser 16 oz" maxLength:"500"`
	Condition   string             `json:"condition,omitempty"   doc:"Listing condition (default new)"   example:"new"`
	Settings    *SettingsOverrides `json:"settings,omitempty"    doc:"Per-request settings overrides"`
	Refresh     bool               `json:"refresh,omitempty"     doc:"Bypass the decision cache"`
}

// PricingResponse is the caller-facing pricing result. Prices are dollars.
type PricingResponse struct {
	Success         bool            `json:"success"`
	SuggestedPrice  float64         `json:"suggestedPrice"  doc:"Item price in dollars"     example:"14.38"`
	ShippingPrice   float64         `json:"shippingPrice"   doc:"Shipping charge in dollars" example:"6"`
	FreeShipping    bool            `json:"freeShipping"`
	CanCompete      bool            `json:"canCompete"`
	MatchConfidence MatchConfidence `json:"matchConfidence" enum:"high,medium,low"`
	SkipListing     bool            `json:"skipListing"`
	Debug           PricingDebug    `json:"debug"`
}

// PricingDebug exposes the decision internals behind a PricingResponse.
type PricingDebug struct {
	TargetDeliveredCents       int64       `json:"targetDeliveredCents"`
	FinalItemCents             int64       `json:"finalItemCents"`
	FinalShipCents             int64       `json:"finalShipCents"`
	CompsSource                CompsSource `json:"compsSource"`
	Warnings                   []string    `json:"warnings"`
	FreeShipApplied            bool        `json:"freeShipApplied"`
	SubsidyCents               int64       `json:"subsidyCents"`
	AmazonPriceCents           *int64      `json:"amazonPriceCents,omitempty"`
	WalmartPriceCents          *int64      `json:"walmartPriceCents,omitempty"`
	SoldMedianDeliveredCents   *int64      `json:"soldMedianDeliveredCents,omitempty"`
	SoldCount                  int         `json:"soldCount"`
	SoldStrong                 bool        `json:"soldStrong"`
	ActiveFloorDeliveredCents  *int64      `json:"activeFloorDeliveredCents,omitempty"`
	ActiveMedianDeliveredCents *int64      `json:"activeMedianDeliveredCents,omitempty"`
	ActiveCount                int         `json:"activeCount"`
	SellThrough                *float64    `json:"sellThrough,omitempty"`
	ShippingEstimateCents      int64       `json:"shippingEstimateCents"`
	ShippingEstimateSource     string      `json:"shippingEstimateSource"`
	Signature                  string      `json:"signature"`
}

// NewPricingResponse renders a decision for callers.
func NewPricingResponse(d *DeliveredPricingDecision) PricingResponse {
	warnings := d.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return PricingResponse{
		Success:         true,
		SuggestedPrice:  CentsToDollars(d.FinalItemCents).InexactFloat64(),
		ShippingPrice:   CentsToDollars(d.FinalShipCents).InexactFloat64(),
		FreeShipping:    d.FinalShipCents == 0,
		CanCompete:      d.CanCompete,
		MatchConfidence: d.MatchConfidence,
		SkipListing:     d.SkipListing,
		Debug: PricingDebug{
			TargetDeliveredCents:       d.TargetDeliveredCents,
			FinalItemCents:             d.FinalItemCents,
			FinalShipCents:             d.FinalShipCents,
			CompsSource:                d.CompsSource,
			Warnings:                   warnings,
			FreeShipApplied:            d.FreeShipApplied,
			SubsidyCents:               d.SubsidyCents,
			AmazonPriceCents:           d.AmazonPriceCents,
			WalmartPriceCents:          d.WalmartPriceCents,
			SoldMedianDeliveredCents:   d.SoldMedianDeliveredCents,
			SoldCount:                  d.SoldCount,
			SoldStrong:                 d.SoldStrong,
			ActiveFloorDeliveredCents:  d.ActiveFloorDeliveredCents,
			ActiveMedianDeliveredCents: d.ActiveMedianDeliveredCents,
			ActiveCount:                d.ActiveCount,
			SellThrough:                d.SellThrough,
			ShippingEstimateCents:      d.ShippingEstimateCents,
			ShippingEstimateSource:     d.ShippingEstimateSource,
			Signature:                  d.Signature,
		},
	}
}

// ProductRequest is the body for creating or updating a tracked product.
type ProductRequest struct {
	Brand       string            `json:"brand"                doc:"Product brand"           minLength:"1" maxLength:"200"`
	ProductName string            `json:"product_name"         doc:"Product title"           minLength:"1" maxLength:"500"`
	Condition   string            `json:"condition,omitempty"  doc:"Listing condition"`
	Overrides   SettingsOverrides `json:"overrides,omitempty"  doc:"Pricing settings overrides"`
	Enabled     *bool             `json:"enabled,omitempty"    doc:"Reprice on schedule (default true)"`
}
