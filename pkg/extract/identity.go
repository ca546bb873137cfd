// Package extract normalizes product identities and parses listing titles
// into comparable attributes (brand tokens, size, pack count, condition).
package extract

import (
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// BuildIdentity derives the canonical identity of the product being priced.
// An empty condition defaults to new.
func BuildIdentity(brand, productName, condition string) domain.CanonicalIdentity {
	normBrand := NormalizeBrand(brand)
	brandTokens := BrandTokens(normBrand)

	cond := domain.ConditionNew
	if condition != "" {
		cond = NormalizeCondition(condition)
	}

	return domain.CanonicalIdentity{
		Brand:       normBrand,
		BrandTokens: brandTokens,
		Keywords:    keywords(productName, brandTokens),
		Size:        ExtractSize(productName),
		PackCount:   ExtractPackCount(productName),
		Condition:   cond,
	}
}
