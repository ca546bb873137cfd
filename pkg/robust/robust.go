// Package robust summarizes small, outlier-prone delivered-price samples.
package robust

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const (
	iqrFence        = 1.5
	tooGoodFactor   = 0.70
	floorFactor     = 0.80
	floorMinCount   = 3
	percentileTol   = 1e-9
	soldStrongMin   = 10
	activeStrongMin = 12
)

// Compute cleans a sample and summarizes it. IQR fences are taken from the
// raw sample; survivors below 70% of their own p35 are then dropped as
// mis-scraped prices. An empty sample returns the zero RobustStats.
func Compute(samples []domain.PriceSample) domain.RobustStats {
	n := len(samples)
	if n == 0 {
		return domain.RobustStats{}
	}

	raw := make([]int64, 0, n)
	free := 0
	for _, s := range samples {
		if s.ShipCents == 0 {
			free++
		}
		raw = append(raw, s.DeliveredCents())
	}
	slices.Sort(raw)

	q1 := Percentile(raw, 0.25)
	q3 := Percentile(raw, 0.75)
	iqr := q3 - q1
	lo := float64(q1) - iqrFence*float64(iqr)
	hi := float64(q3) + iqrFence*float64(iqr)

	var below, above int
	fenced := make([]int64, 0, n)
	for _, v := range raw {
		switch {
		case float64(v) < lo:
			below++
		case float64(v) > hi:
			above++
		default:
			fenced = append(fenced, v)
		}
	}

	floor := tooGoodFactor * float64(Percentile(fenced, 0.35))
	cleaned := make([]int64, 0, len(fenced))
	for _, v := range fenced {
		if float64(v) < floor {
			below++
			continue
		}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		// Only reachable with non-positive prices, where the floor sits
		// above every value.
		return domain.RobustStats{RawCount: n, OutliersBelowCount: below, OutliersAboveCount: above}
	}

	return domain.RobustStats{
		Count:                  len(cleaned),
		RawCount:               n,
		Min:                    cleaned[0],
		Max:                    cleaned[len(cleaned)-1],
		P20:                    Percentile(cleaned, 0.20),
		P35:                    Percentile(cleaned, 0.35),
		P50:                    Percentile(cleaned, 0.50),
		P65:                    Percentile(cleaned, 0.65),
		IQR:                    iqr,
		CoefficientOfVariation: coefficientOfVariation(cleaned),
		OutliersBelowCount:     below,
		OutliersAboveCount:     above,
		FreeShippingRate:       float64(free) / float64(n),
	}
}

// Percentile returns the ceiling-interpolated percentile of an ascending
// slice: the value at index ceil(n*p)-1, clamped to the slice. It returns 0
// for an empty slice.
func Percentile(sorted []int64, p float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(float64(n)*p-percentileTol)) - 1
	idx = max(0, min(idx, n-1))
	return sorted[idx]
}

// coefficientOfVariation is the population stddev over the mean, or zero
// for fewer than two values or a zero mean.
func coefficientOfVariation(values []int64) float64 {
	if len(values) <= 1 {
		return 0
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// IsFloorOutlier reports whether the cleaned minimum sits suspiciously far
// below the rest of the cluster.
func IsFloorOutlier(s domain.RobustStats) bool {
	return s.Count >= floorMinCount && float64(s.Min) < floorFactor*float64(s.P20)
}

// IsSoldStrong reports whether a sold-history summary is large enough to
// price from on its own.
func IsSoldStrong(s domain.RobustStats) bool {
	return s.Count >= soldStrongMin
}

// IsActiveStrong reports whether an active-listing summary is large enough
// to price from on its own.
func IsActiveStrong(s domain.RobustStats) bool {
	return s.Count >= activeStrongMin
}

// SellThrough returns sold / (sold + active), or nil when both are zero.
func SellThrough(soldCount, activeCount int) *float64 {
	total := soldCount + activeCount
	if total <= 0 {
		return nil
	}
	r := float64(soldCount) / float64(total)
	return &r
}

// MedianNonZeroShipping returns the median shipping charge among samples
// that charge shipping, and false when every sample ships free.
func MedianNonZeroShipping(samples []domain.PriceSample) (int64, bool) {
	ship := make([]int64, 0, len(samples))
	for _, s := range samples {
		if s.ShipCents > 0 {
			ship = append(ship, s.ShipCents)
		}
	}
	if len(ship) == 0 {
		return 0, false
	}
	slices.Sort(ship)
	return Percentile(ship, 0.50), true
}
