package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// settingsFlags binds pricing overrides to flags. Only flags the user set
// become overrides.
type settingsFlags struct {
	mode             string
	shippingEstimate int64
	minItem          int64
	undercut         int64
	allowFreeShip    bool
	maxSubsidy       int64
	lowPriceMode     string
	smartShipping    bool

	flags interface{ Changed(name string) bool }
}

func addSettingsFlags(c *cobra.Command) *settingsFlags {
	s := &settingsFlags{flags: c.Flags()}
	f := c.Flags()
	f.StringVar(&s.mode, "mode", "", "pricing mode (market-match, fast-sale, max-margin)")
	f.Int64Var(&s.shippingEstimate, "shipping-estimate-cents", 0, "shipping charge estimate in cents")
	f.Int64Var(&s.minItem, "min-item-cents", 0, "minimum item price in cents")
	f.Int64Var(&s.undercut, "undercut-cents", 0, "amount to undercut comps by in cents")
	f.BoolVar(&s.allowFreeShip, "allow-free-shipping", true, "allow free shipping when needed to compete")
	f.Int64Var(&s.maxSubsidy, "free-shipping-max-subsidy-cents", 0, "largest shipping subsidy in cents")
	f.StringVar(&s.lowPriceMode, "low-price-mode", "", "low price handling (FLAG_ONLY, AUTO_SKIP, ALLOW_ANYWAY)")
	f.BoolVar(&s.smartShipping, "smart-shipping", true, "derive shipping from sold comps")
	return s
}

// overrides returns nil when no settings flag was set.
func (s *settingsFlags) overrides() *domain.SettingsOverrides {
	o := &domain.SettingsOverrides{}
	if s.flags.Changed("mode") {
		m := domain.PricingMode(s.mode)
		o.Mode = &m
	}
	if s.flags.Changed("shipping-estimate-cents") {
		o.ShippingEstimateCents = &s.shippingEstimate
	}
	if s.flags.Changed("min-item-cents") {
		o.MinItemCents = &s.minItem
	}
	if s.flags.Changed("undercut-cents") {
		o.UndercutCents = &s.undercut
	}
	if s.flags.Changed("allow-free-shipping") {
		o.AllowFreeShippingWhenNeeded = &s.allowFreeShip
	}
	if s.flags.Changed("free-shipping-max-subsidy-cents") {
		o.FreeShippingMaxSubsidyCents = &s.maxSubsidy
	}
	if s.flags.Changed("low-price-mode") {
		m := domain.LowPriceMode(s.lowPriceMode)
		o.LowPriceMode = &m
	}
	if s.flags.Changed("smart-shipping") {
		o.UseSmartShipping = &s.smartShipping
	}
	if o.IsZero() {
		return nil
	}
	return o
}
