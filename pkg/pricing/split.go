// Package pricing resolves pricing settings and splits a target delivered
// price into an item price and a shipping charge.
package pricing

import (
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Warning strings emitted by the splitter and settings resolution.
const (
	WarnAutoFreeShipping     = "autoFreeShippingOnLowPrice"
	WarnMinItemFloorHit      = "minItemFloorHit"
	WarnCannotCompete        = "cannotCompete"
	WarnOverpricingAllowed   = "overpricingAllowed"
	WarnSettingClampedPrefix = "settingClamped:"
)

// SplitResult holds the decision fields produced by Split.
type SplitResult struct {
	FinalItemCents  int64    `json:"final_item_cents"`
	FinalShipCents  int64    `json:"final_ship_cents"`
	CanCompete      bool     `json:"can_compete"`
	FreeShipApplied bool     `json:"free_ship_applied"`
	SubsidyCents    int64    `json:"subsidy_cents"`
	SkipListing     bool     `json:"skip_listing"`
	Warnings        []string `json:"warnings"`
}

// TotalCents returns item plus shipping.
func (r *SplitResult) TotalCents() int64 {
	return r.FinalItemCents + r.FinalShipCents
}

// Split divides target into item and shipping.
//
// The normal split charges the shipping estimate and lists the remainder.
// When the remainder falls below the item floor, shipping is absorbed if
// that is allowed, the subsidy fits the cap and the target itself clears the
// floor. Otherwise the item is clamped to the floor and the result cannot
// compete: item + ship is then strictly greater than target.
func Split(target int64, s domain.DeliveredPricingSettings) SplitResult {
	ship := s.ShippingEstimateCents
	subsidyFits := s.AllowFreeShippingWhenNeeded && ship <= s.FreeShippingMaxSubsidyCents

	if rawItem := target - ship; rawItem >= s.MinItemCents {
		return SplitResult{
			FinalItemCents: rawItem,
			FinalShipCents: ship,
			CanCompete:     true,
		}
	}

	if subsidyFits && target >= s.MinItemCents {
		return SplitResult{
			FinalItemCents:  target,
			FinalShipCents:  0,
			CanCompete:      true,
			FreeShipApplied: true,
			SubsidyCents:    ship,
			Warnings:        []string{WarnAutoFreeShipping},
		}
	}

	res := SplitResult{
		FinalItemCents: s.MinItemCents,
		FinalShipCents: ship,
		CanCompete:     false,
		Warnings:       []string{WarnMinItemFloorHit, WarnCannotCompete},
	}
	// Here the free-shipping step failed only on target < minItem, so the
	// floor alone already overshoots target.
	if subsidyFits {
		res.FinalShipCents = 0
		res.FreeShipApplied = true
		res.SubsidyCents = ship
	}
	return res
}

// ApplyLowPriceMode applies the caller's low-price policy to a result that
// cannot compete. Competitive results are returned unchanged.
func ApplyLowPriceMode(r SplitResult, mode domain.LowPriceMode) SplitResult {
	if r.CanCompete {
		return r
	}
	switch mode {
	case domain.LowPriceAutoSkip:
		r.SkipListing = true
	case domain.LowPriceAllowAnyway:
		r.Warnings = append(r.Warnings, WarnOverpricingAllowed)
	}
	return r
}

// Decide runs Split followed by ApplyLowPriceMode.
func Decide(target int64, s domain.DeliveredPricingSettings) SplitResult {
	return ApplyLowPriceMode(Split(target, s), s.LowPriceMode)
}
