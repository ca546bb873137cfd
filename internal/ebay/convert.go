package ebay

import (
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const currencyUSD = "USD"

// ToCandidates converts eBay item summaries into comp candidates. Items with
// an unparseable or non-USD price, or with calculated shipping whose cost is
// not known, are skipped: their delivered price cannot be compared.
func ToCandidates(items []ItemSummary) []domain.CompCandidate {
	out := make([]domain.CompCandidate, 0, len(items))
	for i := range items {
		if c, ok := toCandidate(&items[i]); ok {
			out = append(out, c)
		}
	}
	return out
}

func toCandidate(item *ItemSummary) (domain.CompCandidate, bool) {
	if item.Price.Currency != "" && item.Price.Currency != currencyUSD {
		return domain.CompCandidate{}, false
	}
	itemCents, err := domain.ParseDollarsToCents(item.Price.Value)
	if err != nil || itemCents <= 0 {
		return domain.CompCandidate{}, false
	}

	shipCents, ok := shippingCents(item.ShippingOptions)
	if !ok {
		return domain.CompCandidate{}, false
	}

	condition := item.Condition
	if condition == "" {
		condition = item.ConditionID
	}

	return domain.CompCandidate{
		ID:        item.ItemID,
		Title:     item.Title,
		Condition: condition,
		ItemCents: itemCents,
		ShipCents: shipCents,
		URL:       item.ItemWebURL,
	}, true
}

// shippingCents returns the cheapest listed shipping cost. No options at all
// is read as free shipping.
func shippingCents(opts []ShippingOption) (int64, bool) {
	if len(opts) == 0 {
		return 0, true
	}

	best, found := int64(0), false
	for _, o := range opts {
		if o.ShippingCost == nil {
			continue
		}
		cents, err := domain.ParseDollarsToCents(o.ShippingCost.Value)
		if err != nil || cents < 0 {
			continue
		}
		if !found || cents < best {
			best, found = cents, true
		}
	}
	return best, found
}
