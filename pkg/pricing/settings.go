package pricing

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Default settings values.
const (
	DefaultShippingEstimateCents       = 600
	DefaultMinItemCents                = 499
	DefaultUndercutCents               = 100
	DefaultFreeShippingMaxSubsidyCents = 500
)

// DefaultSettings returns the documented default pricing settings.
func DefaultSettings() domain.DeliveredPricingSettings {
	return domain.DeliveredPricingSettings{
		Mode:                        domain.ModeMarketMatch,
		ShippingEstimateCents:       DefaultShippingEstimateCents,
		MinItemCents:                DefaultMinItemCents,
		UndercutCents:               DefaultUndercutCents,
		AllowFreeShippingWhenNeeded: true,
		FreeShippingMaxSubsidyCents: DefaultFreeShippingMaxSubsidyCents,
		LowPriceMode:                domain.LowPriceFlagOnly,
		UseSmartShipping:            true,
	}
}

// Merge applies non-nil overrides on top of base without validating.
func Merge(base domain.DeliveredPricingSettings, o *domain.SettingsOverrides) domain.DeliveredPricingSettings {
	if o == nil {
		return base
	}
	s := base
	if o.Mode != nil {
		s.Mode = *o.Mode
	}
	if o.ShippingEstimateCents != nil {
		s.ShippingEstimateCents = *o.ShippingEstimateCents
	}
	if o.MinItemCents != nil {
		s.MinItemCents = *o.MinItemCents
	}
	if o.UndercutCents != nil {
		s.UndercutCents = *o.UndercutCents
	}
	if o.AllowFreeShippingWhenNeeded != nil {
		s.AllowFreeShippingWhenNeeded = *o.AllowFreeShippingWhenNeeded
	}
	if o.FreeShippingMaxSubsidyCents != nil {
		s.FreeShippingMaxSubsidyCents = *o.FreeShippingMaxSubsidyCents
	}
	if o.LowPriceMode != nil {
		s.LowPriceMode = *o.LowPriceMode
	}
	if o.UseSmartShipping != nil {
		s.UseSmartShipping = *o.UseSmartShipping
	}
	return s
}

// Resolve merges overrides onto base and clamps invalid values back to the
// documented defaults. Each clamped field yields a "settingClamped:<name>"
// warning. Settings are never rejected.
func Resolve(
	base domain.DeliveredPricingSettings,
	o *domain.SettingsOverrides,
) (domain.DeliveredPricingSettings, []string) {
	s := Merge(base, o)
	def := DefaultSettings()

	var warnings []string
	clamp := func(name string) {
		warnings = append(warnings, WarnSettingClampedPrefix+name)
	}

	switch s.Mode {
	case domain.ModeMarketMatch, domain.ModeFastSale, domain.ModeMaxMargin:
	default:
		s.Mode = def.Mode
		clamp("mode")
	}
	if s.ShippingEstimateCents < 0 {
		s.ShippingEstimateCents = def.ShippingEstimateCents
		clamp("shippingEstimateCents")
	}
	if s.MinItemCents <= 0 {
		s.MinItemCents = def.MinItemCents
		clamp("minItemCents")
	}
	if s.UndercutCents < 0 {
		s.UndercutCents = def.UndercutCents
		clamp("undercutCents")
	}
	if s.FreeShippingMaxSubsidyCents < 0 {
		s.FreeShippingMaxSubsidyCents = def.FreeShippingMaxSubsidyCents
		clamp("freeShippingMaxSubsidyCents")
	}
	switch s.LowPriceMode {
	case domain.LowPriceFlagOnly, domain.LowPriceAutoSkip, domain.LowPriceAllowAnyway:
	default:
		s.LowPriceMode = def.LowPriceMode
		clamp("lowPriceMode")
	}

	return s, warnings
}

// Fingerprint returns a short stable hash of settings, used to key cached
// decisions so different settings never share an entry.
func Fingerprint(s domain.DeliveredPricingSettings) string {
	data, err := json.Marshal(s)
	if err != nil {
		return "0"
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
