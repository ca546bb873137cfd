package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func TestNewAlertPayload(t *testing.T) {
	t.Parallel()

	product := &domain.TrackedProduct{ID: "p1", Brand: "CeraVe", ProductName: "Cleanser"}

	tests := []struct {
		name       string
		decision   domain.DeliveredPricingDecision
		wantReason AlertReason
		wantNil    bool
	}{
		{
			name:     "competitive decision raises nothing",
			decision: domain.DeliveredPricingDecision{CanCompete: true, FinalItemCents: 1438, FinalShipCents: 600},
			wantNil:  true,
		},
		{
			name:       "cannot compete",
			decision:   domain.DeliveredPricingDecision{TargetDeliveredCents: 600, FinalItemCents: 499, FinalShipCents: 600},
			wantReason: ReasonCannotCompete,
		},
		{
			name:       "skip listing wins over cannot compete",
			decision:   domain.DeliveredPricingDecision{SkipListing: true, FinalItemCents: 499, FinalShipCents: 600},
			wantReason: ReasonSkipListing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewAlertPayload(product, &tt.decision)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, "p1", got.ProductID)
			assert.Equal(t, "$10.99", got.Total)
		})
	}
}
