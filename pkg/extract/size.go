package extract

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Canonical size units.
const (
	UnitOunce      = "oz"
	UnitFluidOunce = "fl oz"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitPound      = "lb"
	UnitCount      = "ct"
)

// sizeRegex matches a number followed by a weight, volume or count unit.
// Group 1 is the number, group 2 the unit. The leading group keeps model
// numbers such as "B12 L" from reading as 12 liters.
var sizeRegex = regexp.MustCompile(
	`(?i)(?:^|[^a-z0-9.])(\d+(?:\.\d+)?)\s*-?\s*` +
		`(fl\.?\s*oz\.?|fluid\s+ounces?|ounces?|oz\.?|milliliters?|millilitres?|ml|` +
		`kilograms?|kg|grams?|gr|g|pounds?|lbs?|liters?|litres?|l|ct\.?|count)\b`,
)

// ExtractSize returns the first weight, volume or count size in a title, or
// nil when none is present. Small counts ("4 count") are pack counts and are
// skipped here; see ExtractPackCount.
func ExtractSize(title string) *domain.Size {
	for _, m := range sizeRegex.FindAllStringSubmatch(title, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil || value <= 0 {
			continue
		}

		unit := canonicalUnit(m[2])
		if unit == "" {
			continue
		}
		if unit == UnitCount && value >= 2 && value <= maxCountAsPack {
			continue
		}

		return &domain.Size{Value: value, Unit: unit}
	}
	return nil
}

func canonicalUnit(raw string) string {
	u := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(raw), "."))
	u = strings.Join(strings.Fields(strings.ReplaceAll(u, ".", " ")), " ")

	switch {
	case strings.HasPrefix(u, "fl"):
		return UnitFluidOunce
	case u == "oz" || strings.HasPrefix(u, "ounce"):
		return UnitOunce
	case u == "ml" || strings.HasPrefix(u, "millil"):
		return UnitMilliliter
	case u == "kg" || strings.HasPrefix(u, "kilogram"):
		return UnitKilogram
	case u == "g" || u == "gr" || strings.HasPrefix(u, "gram"):
		return UnitGram
	case strings.HasPrefix(u, "lb") || strings.HasPrefix(u, "pound"):
		return UnitPound
	case u == "l" || strings.HasPrefix(u, "lit"):
		return UnitLiter
	case u == "ct" || u == "count":
		return UnitCount
	default:
		return ""
	}
}

// UnitsCompatible reports whether two canonical units can be compared
// directly. Ounces and fluid ounces are treated as the same measure; no
// other cross-unit conversion is attempted.
func UnitsCompatible(a, b string) bool {
	if a == b {
		return true
	}
	ounces := func(u string) bool { return u == UnitOunce || u == UnitFluidOunce }
	return ounces(a) && ounces(b)
}
