package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		overrides    *domain.SettingsOverrides
		want         func(s *domain.DeliveredPricingSettings)
		wantWarnings []string
	}{
		{
			name:      "nil overrides keep defaults",
			overrides: nil,
			want:      func(*domain.DeliveredPricingSettings) {},
		},
		{
			name: "valid overrides apply",
			overrides: &domain.SettingsOverrides{
				Mode:                        ptr(domain.ModeFastSale),
				ShippingEstimateCents:       ptr(int64(450)),
				AllowFreeShippingWhenNeeded: ptr(false),
				LowPriceMode:                ptr(domain.LowPriceAutoSkip),
				UseSmartShipping:            ptr(false),
			},
			want: func(s *domain.DeliveredPricingSettings) {
				s.Mode = domain.ModeFastSale
				s.ShippingEstimateCents = 450
				s.AllowFreeShippingWhenNeeded = false
				s.LowPriceMode = domain.LowPriceAutoSkip
				s.UseSmartShipping = false
			},
		},
		{
			name: "non-positive min item clamps",
			overrides: &domain.SettingsOverrides{
				MinItemCents: ptr(int64(0)),
			},
			want:         func(*domain.DeliveredPricingSettings) {},
			wantWarnings: []string{"settingClamped:minItemCents"},
		},
		{
			name: "negative values and unknown enums clamp",
			overrides: &domain.SettingsOverrides{
				Mode:                        ptr(domain.PricingMode("yolo")),
				ShippingEstimateCents:       ptr(int64(-1)),
				UndercutCents:               ptr(int64(-5)),
				FreeShippingMaxSubsidyCents: ptr(int64(-100)),
				LowPriceMode:                ptr(domain.LowPriceMode("NEVER")),
			},
			want: func(*domain.DeliveredPricingSettings) {},
			wantWarnings: []string{
				"settingClamped:mode",
				"settingClamped:shippingEstimateCents",
				"settingClamped:undercutCents",
				"settingClamped:freeShippingMaxSubsidyCents",
				"settingClamped:lowPriceMode",
			},
		},
		{
			name: "zero shipping estimate is valid",
			overrides: &domain.SettingsOverrides{
				ShippingEstimateCents: ptr(int64(0)),
			},
			want: func(s *domain.DeliveredPricingSettings) {
				s.ShippingEstimateCents = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := pricing.DefaultSettings()
			tt.want(&want)

			got, warnings := pricing.Resolve(pricing.DefaultSettings(), tt.overrides)
			assert.Equal(t, want, got)
			assert.Equal(t, tt.wantWarnings, warnings)
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := pricing.DefaultSettings()
	assert.Equal(t, domain.ModeMarketMatch, s.Mode)
	assert.Equal(t, int64(600), s.ShippingEstimateCents)
	assert.Equal(t, int64(499), s.MinItemCents)
	assert.Equal(t, int64(100), s.UndercutCents)
	assert.True(t, s.AllowFreeShippingWhenNeeded)
	assert.Equal(t, int64(500), s.FreeShippingMaxSubsidyCents)
	assert.Equal(t, domain.LowPriceFlagOnly, s.LowPriceMode)
	assert.True(t, s.UseSmartShipping)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := pricing.DefaultSettings()
	b := pricing.DefaultSettings()
	assert.Equal(t, pricing.Fingerprint(a), pricing.Fingerprint(b))

	b.Mode = domain.ModeMaxMargin
	assert.NotEqual(t, pricing.Fingerprint(a), pricing.Fingerprint(b))
}
