package robust_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/pkg/robust"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func freeShipSamples(delivered ...int64) []domain.PriceSample {
	out := make([]domain.PriceSample, 0, len(delivered))
	for _, d := range delivered {
		out = append(out, domain.PriceSample{ItemCents: d})
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	got := robust.Compute(nil)
	assert.Equal(t, domain.RobustStats{}, got)
	assert.True(t, got.IsEmpty())
}

func TestCompute_NonPositivePricesYieldEmptyStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		samples   []domain.PriceSample
		wantBelow int
	}{
		{name: "single negative", samples: []domain.PriceSample{{ItemCents: -100}}, wantBelow: 1},
		{
			name:      "repeated negative",
			samples:   []domain.PriceSample{{ItemCents: -100}, {ItemCents: -100}},
			wantBelow: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got domain.RobustStats
			require.NotPanics(t, func() { got = robust.Compute(tt.samples) })
			assert.True(t, got.IsEmpty())
			assert.Equal(t, len(tt.samples), got.RawCount)
			assert.Equal(t, tt.wantBelow, got.OutliersBelowCount)
		})
	}
}

func TestCompute_Single(t *testing.T) {
	t.Parallel()

	got := robust.Compute([]domain.PriceSample{{ItemCents: 900, ShipCents: 100}})
	assert.Equal(t, domain.RobustStats{
		Count:    1,
		RawCount: 1,
		Min:      1000,
		Max:      1000,
		P20:      1000,
		P35:      1000,
		P50:      1000,
		P65:      1000,
	}, got)
}

func TestCompute_RemovesIQROutliers(t *testing.T) {
	t.Parallel()

	got := robust.Compute(freeShipSamples(
		1050, 5000, 1000, 1010, 100, 1020, 1030, 1040, 1060, 1070, 1080,
	))

	assert.Equal(t, 9, got.Count)
	assert.Equal(t, 11, got.RawCount)
	assert.Equal(t, int64(1000), got.Min)
	assert.Equal(t, int64(1080), got.Max)
	assert.Equal(t, int64(1010), got.P20)
	assert.Equal(t, int64(1030), got.P35)
	assert.Equal(t, int64(1040), got.P50)
	assert.Equal(t, int64(1050), got.P65)
	assert.Equal(t, int64(60), got.IQR)
	assert.Equal(t, 1, got.OutliersBelowCount)
	assert.Equal(t, 1, got.OutliersAboveCount)
	assert.InDelta(t, 1.0, got.FreeShippingRate, 1e-12)
	assert.InDelta(t, math.Sqrt(6000.0/9)/1040, got.CoefficientOfVariation, 1e-9)
}

func TestCompute_TooGoodToBeTrue(t *testing.T) {
	t.Parallel()

	// IQR fences are wide on three samples; the 70% of p35 floor still
	// removes the mis-scraped price.
	got := robust.Compute(freeShipSamples(1000, 100, 1000))

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 3, got.RawCount)
	assert.Equal(t, int64(1000), got.Min)
	assert.Equal(t, int64(900), got.IQR)
	assert.Equal(t, 1, got.OutliersBelowCount)
	assert.Equal(t, 0, got.OutliersAboveCount)
	assert.Zero(t, got.CoefficientOfVariation)
}

func TestCompute_TwoSamplesKeepsBoth(t *testing.T) {
	t.Parallel()

	// With two samples p35 is the minimum, so the floor filter cannot fire.
	got := robust.Compute(freeShipSamples(100, 1000))

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, int64(100), got.Min)
	assert.Equal(t, 0, got.OutliersBelowCount)
}

func TestCompute_FreeShippingRate(t *testing.T) {
	t.Parallel()

	got := robust.Compute([]domain.PriceSample{
		{ItemCents: 1000, ShipCents: 0},
		{ItemCents: 900, ShipCents: 100},
		{ItemCents: 950, ShipCents: 50},
		{ItemCents: 1000, ShipCents: 0},
	})
	assert.InDelta(t, 0.5, got.FreeShippingRate, 1e-12)
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	first := robust.Compute(freeShipSamples(
		1050, 5000, 1000, 1010, 100, 1020, 1030, 1040, 1060, 1070, 1080,
	))
	second := robust.Compute(freeShipSamples(
		1000, 1010, 1020, 1030, 1040, 1050, 1060, 1070, 1080,
	))

	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, second.RawCount, second.Count)
	assert.Zero(t, second.OutliersBelowCount)
	assert.Zero(t, second.OutliersAboveCount)
	assert.Equal(t, first.P50, second.P50)
}

func TestCompute_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 500 {
		n := 1 + rng.IntN(40)
		samples := make([]domain.PriceSample, n)
		for j := range samples {
			samples[j] = domain.PriceSample{
				ItemCents: 100 + rng.Int64N(5000),
				ShipCents: rng.Int64N(3) * 400,
			}
		}

		got := robust.Compute(samples)
		require.Positive(t, got.Count, "iteration %d", i)
		assert.LessOrEqual(t, got.Count, got.RawCount)
		assert.Equal(t, n, got.RawCount)
		assert.LessOrEqual(t, got.Min, got.P20)
		assert.LessOrEqual(t, got.P20, got.P35)
		assert.LessOrEqual(t, got.P35, got.P50)
		assert.LessOrEqual(t, got.P50, got.P65)
		assert.LessOrEqual(t, got.P65, got.Max)
		assert.Equal(t, got.RawCount-got.Count, got.OutliersBelowCount+got.OutliersAboveCount)
		assert.GreaterOrEqual(t, got.CoefficientOfVariation, 0.0)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	sorted := []int64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120, 130, 140, 150, 160, 170, 180, 190, 200}

	tests := []struct {
		name string
		p    float64
		want int64
	}{
		{name: "p0 clamps low", p: 0, want: 10},
		{name: "p20", p: 0.20, want: 40},
		{name: "p35 exact product", p: 0.35, want: 70},
		{name: "p50", p: 0.50, want: 100},
		{name: "p65", p: 0.65, want: 130},
		{name: "p100", p: 1, want: 200},
		{name: "above one clamps high", p: 1.5, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, robust.Percentile(sorted, tt.p))
		})
	}

	assert.Zero(t, robust.Percentile(nil, 0.5))
}

func TestIsFloorOutlier(t *testing.T) {
	t.Parallel()

	assert.True(t, robust.IsFloorOutlier(domain.RobustStats{Count: 3, Min: 70, P20: 100}))
	assert.False(t, robust.IsFloorOutlier(domain.RobustStats{Count: 3, Min: 80, P20: 100}))
	assert.False(t, robust.IsFloorOutlier(domain.RobustStats{Count: 2, Min: 10, P20: 100}))
}

func TestStrength(t *testing.T) {
	t.Parallel()

	assert.True(t, robust.IsSoldStrong(domain.RobustStats{Count: 10}))
	assert.False(t, robust.IsSoldStrong(domain.RobustStats{Count: 9}))
	assert.True(t, robust.IsActiveStrong(domain.RobustStats{Count: 12}))
	assert.False(t, robust.IsActiveStrong(domain.RobustStats{Count: 11}))
}

func TestSellThrough(t *testing.T) {
	t.Parallel()

	assert.Nil(t, robust.SellThrough(0, 0))

	got := robust.SellThrough(3, 1)
	require.NotNil(t, got)
	assert.InDelta(t, 0.75, *got, 1e-12)

	got = robust.SellThrough(0, 5)
	require.NotNil(t, got)
	assert.Zero(t, *got)
}

func TestMedianNonZeroShipping(t *testing.T) {
	t.Parallel()

	got, ok := robust.MedianNonZeroShipping([]domain.PriceSample{
		{ShipCents: 0}, {ShipCents: 500}, {ShipCents: 700}, {ShipCents: 600},
	})
	assert.True(t, ok)
	assert.Equal(t, int64(600), got)

	_, ok = robust.MedianNonZeroShipping([]domain.PriceSample{{ShipCents: 0}})
	assert.False(t, ok)
}
