package domain

// PricingMode selects how aggressively the engine prices against comps.
type PricingMode string

// Pricing mode constants.
const (
	ModeMarketMatch PricingMode = "market-match"
	ModeFastSale    PricingMode = "fast-sale"
	ModeMaxMargin   PricingMode = "max-margin"
)

// LowPriceMode governs what happens when the split cannot hit the target.
type LowPriceMode string

// Low price mode constants.
const (
	LowPriceFlagOnly    LowPriceMode = "FLAG_ONLY"
	LowPriceAutoSkip    LowPriceMode = "AUTO_SKIP"
	LowPriceAllowAnyway LowPriceMode = "ALLOW_ANYWAY"
)

// DeliveredPricingSettings is the per-request pricing configuration.
type DeliveredPricingSettings struct {
	Mode                        PricingMode  `json:"mode"                             yaml:"mode"`
	ShippingEstimateCents       int64        `json:"shipping_estimate_cents"          yaml:"shipping_estimate_cents"`
	MinItemCents                int64        `json:"min_item_cents"                   yaml:"min_item_cents"`
	UndercutCents               int64        `json:"undercut_cents"                   yaml:"undercut_cents"`
	AllowFreeShippingWhenNeeded bool         `json:"allow_free_shipping_when_needed"  yaml:"allow_free_shipping_when_needed"`
	FreeShippingMaxSubsidyCents int64        `json:"free_shipping_max_subsidy_cents"  yaml:"free_shipping_max_subsidy_cents"`
	LowPriceMode                LowPriceMode `json:"low_price_mode"                   yaml:"low_price_mode"`
	UseSmartShipping            bool         `json:"use_smart_shipping"               yaml:"use_smart_shipping"`
}

// SettingsOverrides is a partial DeliveredPricingSettings. Nil fields keep
// the base value.
type SettingsOverrides struct {
	Mode                        *PricingMode  `json:"mode,omitempty"                            yaml:"mode,omitempty"`
	ShippingEstimateCents       *int64        `json:"shipping_estimate_cents,omitempty"         yaml:"shipping_estimate_cents,omitempty"`
	MinItemCents                *int64        `json:"min_item_cents,omitempty"                  yaml:"min_item_cents,omitempty"`
	UndercutCents               *int64        `json:"undercut_cents,omitempty"                  yaml:"undercut_cents,omitempty"`
	AllowFreeShippingWhenNeeded *bool         `json:"allow_free_shipping_when_needed,omitempty" yaml:"allow_free_shipping_when_needed,omitempty"`
	FreeShippingMaxSubsidyCents *int64        `json:"free_shipping_max_subsidy_cents,omitempty" yaml:"free_shipping_max_subsidy_cents,omitempty"`
	LowPriceMode                *LowPriceMode `json:"low_price_mode,omitempty"                  yaml:"low_price_mode,omitempty"`
	UseSmartShipping            *bool         `json:"use_smart_shipping,omitempty"              yaml:"use_smart_shipping,omitempty"`
}

// IsZero reports whether no override is set.
func (o *SettingsOverrides) IsZero() bool {
	return o == nil || *o == SettingsOverrides{}
}
