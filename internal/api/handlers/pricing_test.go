package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/api/handlers"
	"github.com/donaldgifford/comp-pricer/internal/engine"
	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

type fakeDecisionMaker struct {
	decision *domain.DeliveredPricingDecision
	got      []engine.PricingRequest
}

func (f *fakeDecisionMaker) GetDeliveredPricing(
	_ context.Context,
	req engine.PricingRequest,
) *domain.DeliveredPricingDecision {
	f.got = append(f.got, req)
	return f.decision
}

func (*fakeDecisionMaker) BaseSettings() domain.DeliveredPricingSettings {
	return pricing.DefaultSettings()
}

func int64Ptr(v int64) *int64 { return &v }

func TestPricingHandler_Price(t *testing.T) {
	t.Parallel()

	decision := &domain.DeliveredPricingDecision{
		TargetDeliveredCents:     2038,
		FinalItemCents:           1438,
		FinalShipCents:           600,
		CanCompete:               true,
		CompsSource:              domain.CompsSourceSold,
		MatchConfidence:          domain.ConfidenceHigh,
		SoldMedianDeliveredCents: int64Ptr(2038),
		SoldCount:                12,
		SoldStrong:               true,
		ShippingEstimateSource:   engine.ShippingSourceSettings,
		Warnings:                 []string{},
	}

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCalls  int
	}{
		{
			name:       "brand and product",
			body:       map[string]any{"brand": "CeraVe", "productName": "Hydrating Cleanser 16 oz"},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "product only",
			body:       map[string]any{"productName": "Hydrating Cleanser 16 oz"},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "brand only",
			body:       map[string]any{"brand": "CeraVe"},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "both missing",
			body:       map[string]any{"condition": "new"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "whitespace only",
			body:       map[string]any{"brand": "  ", "productName": " "},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeDecisionMaker{decision: decision}
			_, api := humatest.New(t)
			handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(fake, nil))

			resp := api.Post("/api/v1/pricing", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Len(t, fake.got, tt.wantCalls)
		})
	}
}

func TestPricingHandler_Price_ResponseShape(t *testing.T) {
	t.Parallel()

	fake := &fakeDecisionMaker{decision: &domain.DeliveredPricingDecision{
		TargetDeliveredCents:   899,
		FinalItemCents:         899,
		FinalShipCents:         0,
		CanCompete:             true,
		FreeShipApplied:        true,
		SubsidyCents:           600,
		CompsSource:            domain.CompsSourceActive,
		MatchConfidence:        domain.ConfidenceMedium,
		ShippingEstimateSource: engine.ShippingSourceSettings,
		Warnings:               []string{pricing.WarnAutoFreeShipping},
	}}

	_, api := humatest.New(t)
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(fake, nil))

	resp := api.Post("/api/v1/pricing", map[string]any{
		"brand":       "Acme",
		"productName": "Widget",
		"refresh":     true,
		"settings":    map[string]any{"mode": "fast-sale"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var got domain.PricingResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))

	assert.True(t, got.Success)
	assert.InDelta(t, 8.99, got.SuggestedPrice, 1e-9)
	assert.InDelta(t, 0.0, got.ShippingPrice, 1e-9)
	assert.True(t, got.FreeShipping)
	assert.Equal(t, domain.ConfidenceMedium, got.MatchConfidence)
	assert.Equal(t, []string{pricing.WarnAutoFreeShipping}, got.Debug.Warnings)
	assert.Equal(t, int64(600), got.Debug.SubsidyCents)

	require.Len(t, fake.got, 1)
	req := fake.got[0]
	assert.True(t, req.Refresh)
	require.NotNil(t, req.Overrides)
	require.NotNil(t, req.Overrides.Mode)
	assert.Equal(t, domain.ModeFastSale, *req.Overrides.Mode)
}

func TestPricingHandler_Split(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         map[string]any
		wantStatus   int
		wantItem     int64
		wantShip     int64
		wantCompete  bool
		wantWarnings []string
	}{
		{
			name:         "normal split from cents",
			body:         map[string]any{"targetDeliveredCents": 2038},
			wantStatus:   http.StatusOK,
			wantItem:     1438,
			wantShip:     600,
			wantCompete:  true,
			wantWarnings: []string{},
		},
		{
			name:         "dollar string",
			body:         map[string]any{"targetDelivered": "20.38"},
			wantStatus:   http.StatusOK,
			wantItem:     1438,
			wantShip:     600,
			wantCompete:  true,
			wantWarnings: []string{},
		},
		{
			name: "free shipping fallback",
			body: map[string]any{
				"targetDeliveredCents": 800,
				"settings":             map[string]any{"shipping_estimate_cents": 400},
			},
			wantStatus:   http.StatusOK,
			wantItem:     800,
			wantShip:     0,
			wantCompete:  true,
			wantWarnings: []string{pricing.WarnAutoFreeShipping},
		},
		{
			name: "cannot compete with free shipping disabled",
			body: map[string]any{
				"targetDeliveredCents": 899,
				"settings":             map[string]any{"allow_free_shipping_when_needed": false},
			},
			wantStatus:   http.StatusOK,
			wantItem:     499,
			wantShip:     600,
			wantCompete:  false,
			wantWarnings: []string{pricing.WarnMinItemFloorHit, pricing.WarnCannotCompete},
		},
		{
			name: "clamped setting is reported",
			body: map[string]any{
				"targetDeliveredCents": 2038,
				"settings":             map[string]any{"min_item_cents": -5},
			},
			wantStatus:   http.StatusOK,
			wantItem:     1438,
			wantShip:     600,
			wantCompete:  true,
			wantWarnings: []string{pricing.WarnSettingClampedPrefix + "minItemCents"},
		},
		{
			name:       "bad dollar string",
			body:       map[string]any{"targetDelivered": "twenty"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(&fakeDecisionMaker{}, nil))

			resp := api.Post("/api/v1/pricing/split", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got struct {
				FinalItemCents int64    `json:"finalItemCents"`
				FinalShipCents int64    `json:"finalShipCents"`
				CanCompete     bool     `json:"canCompete"`
				Warnings       []string `json:"warnings"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, tt.wantItem, got.FinalItemCents)
			assert.Equal(t, tt.wantShip, got.FinalShipCents)
			assert.Equal(t, tt.wantCompete, got.CanCompete)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestPricingHandler_Match(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(&fakeDecisionMaker{}, nil))

	resp := api.Post("/api/v1/pricing/match", map[string]any{
		"brand":       "CeraVe",
		"productName": "Hydrating Facial Cleanser 16 oz",
		"condition":   "new",
		"candidates": []map[string]any{
			{"id": "a", "title": "CeraVe Hydrating Facial Cleanser 16 oz", "condition": "New"},
			{"id": "b", "title": "CeraVe Hydrating Facial Cleanser 16 oz 2 Pack", "condition": "New"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got struct {
		Results []domain.MatchResult   `json:"results"`
		Counts  map[domain.Verdict]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	assert.Equal(t, domain.VerdictMatch, got.Results[0].Verdict)
	assert.Equal(t, domain.VerdictReject, got.Results[1].Verdict)
	assert.Equal(t, 1, got.Counts[domain.VerdictMatch])
	assert.Equal(t, 1, got.Counts[domain.VerdictReject])
}

func TestPricingHandler_Match_RequiresProductName(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(&fakeDecisionMaker{}, nil))

	resp := api.Post("/api/v1/pricing/match", map[string]any{
		"brand":      "CeraVe",
		"candidates": []map[string]any{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
