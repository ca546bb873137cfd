package extract

import (
	"slices"
	"strings"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// otherMarkers demote a condition containing "new" to the other bucket.
var otherMarkers = []string{
	"like new",
	"new other",
	"new (other)",
	"open box",
	"open-box",
	"refurbished",
	"renewed",
	"used",
	"pre-owned",
	"preowned",
	"for parts",
	"not working",
	"damaged",
}

// newConditionIDs are marketplace numeric condition codes meaning brand new.
var newConditionIDs = []string{"1000"}

// NormalizeCondition buckets a raw condition string into new or other.
// Anything not clearly new or sealed is other, including an empty string.
func NormalizeCondition(raw string) domain.Condition {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return domain.ConditionOther
	}

	if slices.Contains(newConditionIDs, s) {
		return domain.ConditionNew
	}

	for _, marker := range otherMarkers {
		if strings.Contains(s, marker) {
			return domain.ConditionOther
		}
	}

	for _, tok := range Tokenize(s) {
		if tok == "new" || tok == "sealed" {
			return domain.ConditionNew
		}
	}

	return domain.ConditionOther
}
