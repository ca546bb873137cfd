package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/comp-pricer/internal/engine"
	"github.com/donaldgifford/comp-pricer/pkg/extract"
	"github.com/donaldgifford/comp-pricer/pkg/match"
	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// DecisionMaker produces delivered pricing decisions.
type DecisionMaker interface {
	GetDeliveredPricing(ctx context.Context, req engine.PricingRequest) *domain.DeliveredPricingDecision
	BaseSettings() domain.DeliveredPricingSettings
}

// PricingHandler serves pricing decisions and the pure splitter and
// matcher as debugging endpoints.
type PricingHandler struct {
	pricer     DecisionMaker
	matcher    *match.Matcher
	minSamples int
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(p DecisionMaker, m *match.Matcher) *PricingHandler {
	if m == nil {
		m = match.New()
	}
	return &PricingHandler{pricer: p, matcher: m, minSamples: 3}
}

// --- Input/Output types ---

// PriceInput is the input for a pricing decision.
type PriceInput struct {
	Body domain.PriceQuery
}

// PriceOutput is the response for a pricing decision.
type PriceOutput struct {
	Body domain.PricingResponse
}

// SplitInput is the input for the pure price splitter.
type SplitInput struct {
	Body struct {
		TargetDeliveredCents int64                     `json:"targetDeliveredCents,omitempty" doc:"Target delivered price in cents"        minimum:"0"`
		TargetDelivered      string                    `json:"targetDelivered,omitempty"      doc:"Target delivered price in dollars"      example:"20.38"`
		Settings             *domain.SettingsOverrides `json:"settings,omitempty"             doc:"Settings overrides applied to defaults"`
	}
}

// SplitOutput is the response for the pure price splitter.
type SplitOutput struct {
	Body struct {
		TargetDeliveredCents int64                           `json:"targetDeliveredCents"`
		FinalItemCents       int64                           `json:"finalItemCents"`
		FinalShipCents       int64                           `json:"finalShipCents"`
		ItemPrice            string                          `json:"itemPrice"      example:"$14.38"`
		ShippingPrice        string                          `json:"shippingPrice"  example:"$6.00"`
		CanCompete           bool                            `json:"canCompete"`
		FreeShipApplied      bool                            `json:"freeShipApplied"`
		SubsidyCents         int64                           `json:"subsidyCents"`
		SkipListing          bool                            `json:"skipListing"`
		Warnings             []string                        `json:"warnings"`
		Settings             domain.DeliveredPricingSettings `json:"settings"`
	}
}

// MatchCandidate is one comp submitted to the matcher endpoint.
type MatchCandidate struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"               minLength:"1"`
	Condition string `json:"condition,omitempty"`
	ItemCents int64  `json:"itemCents,omitempty" minimum:"0"`
	ShipCents int64  `json:"shipCents,omitempty" minimum:"0"`
}

// MatchInput is the input for the comp matcher endpoint.
type MatchInput struct {
	Body struct {
		Brand       string           `json:"brand,omitempty"`
		ProductName string           `json:"productName"         minLength:"1"`
		Condition   string           `json:"condition,omitempty"`
		Candidates  []MatchCandidate `json:"candidates"          maxItems:"500"`
	}
}

// MatchOutput is the response for the comp matcher endpoint.
type MatchOutput struct {
	Body struct {
		Identity domain.CanonicalIdentity `json:"identity"`
		Results  []domain.MatchResult     `json:"results"`
		Counts   map[domain.Verdict]int   `json:"counts"`
		Accepted int                      `json:"accepted" doc:"Candidates that would be priced from"`
	}
}

// --- Handlers ---

// Price returns a delivered pricing decision for a brand and product.
func (h *PricingHandler) Price(ctx context.Context, input *PriceInput) (*PriceOutput, error) {
	q := input.Body
	if strings.TrimSpace(q.Brand) == "" && strings.TrimSpace(q.ProductName) == "" {
		return nil, huma.Error400BadRequest("brand or productName is required")
	}

	d := h.pricer.GetDeliveredPricing(ctx, engine.PricingRequest{
		Brand:       q.Brand,
		ProductName: q.ProductName,
		Condition:   q.Condition,
		Overrides:   q.Settings,
		Refresh:     q.Refresh,
	})

	return &PriceOutput{Body: domain.NewPricingResponse(d)}, nil
}

// Split runs the price splitter against a target without fetching comps.
func (h *PricingHandler) Split(_ context.Context, input *SplitInput) (*SplitOutput, error) {
	target := input.Body.TargetDeliveredCents
	if input.Body.TargetDelivered != "" {
		cents, err := domain.ParseDollarsToCents(input.Body.TargetDelivered)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid targetDelivered: " + err.Error())
		}
		target = cents
	}
	if target < 0 {
		return nil, huma.Error400BadRequest("target delivered price must not be negative")
	}

	settings, warnings := pricing.Resolve(h.pricer.BaseSettings(), input.Body.Settings)
	res := pricing.Decide(target, settings)

	resp := &SplitOutput{}
	resp.Body.TargetDeliveredCents = target
	resp.Body.FinalItemCents = res.FinalItemCents
	resp.Body.FinalShipCents = res.FinalShipCents
	resp.Body.ItemPrice = domain.FormatCents(res.FinalItemCents)
	resp.Body.ShippingPrice = domain.FormatCents(res.FinalShipCents)
	resp.Body.CanCompete = res.CanCompete
	resp.Body.FreeShipApplied = res.FreeShipApplied
	resp.Body.SubsidyCents = res.SubsidyCents
	resp.Body.SkipListing = res.SkipListing
	resp.Body.Warnings = append(warnings, res.Warnings...)
	if resp.Body.Warnings == nil {
		resp.Body.Warnings = []string{}
	}
	resp.Body.Settings = settings

	return resp, nil
}

// Match classifies candidate titles against a product identity.
func (h *PricingHandler) Match(_ context.Context, input *MatchInput) (*MatchOutput, error) {
	id := extract.BuildIdentity(input.Body.Brand, input.Body.ProductName, input.Body.Condition)

	cands := make([]domain.CompCandidate, 0, len(input.Body.Candidates))
	for _, c := range input.Body.Candidates {
		cands = append(cands, domain.CompCandidate{
			ID:        c.ID,
			Title:     c.Title,
			Condition: c.Condition,
			ItemCents: c.ItemCents,
			ShipCents: c.ShipCents,
		})
	}

	results := h.matcher.ClassifyAll(id, cands)
	if results == nil {
		results = []domain.MatchResult{}
	}

	resp := &MatchOutput{}
	resp.Body.Identity = id
	resp.Body.Results = results
	resp.Body.Counts = match.Count(results)
	resp.Body.Accepted = len(match.Accepted(results, h.minSamples))

	return resp, nil
}

// RegisterPricingRoutes registers pricing endpoints with the Huma API.
func RegisterPricingRoutes(api huma.API, h *PricingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-delivered-pricing",
		Method:      http.MethodPost,
		Path:        "/api/v1/pricing",
		Summary:     "Price a product",
		Description: "Fetches comps from every configured source and returns the suggested item price, " +
			"shipping charge and the decision details behind them.",
		Tags:   []string{"pricing"},
		Errors: []int{http.StatusBadRequest},
	}, h.Price)

	huma.Register(api, huma.Operation{
		OperationID: "split-price",
		Method:      http.MethodPost,
		Path:        "/api/v1/pricing/split",
		Summary:     "Split a target delivered price",
		Description: "Runs the item/shipping split for a target delivered price without fetching comps.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Split)

	huma.Register(api, huma.Operation{
		OperationID: "match-comps",
		Method:      http.MethodPost,
		Path:        "/api/v1/pricing/match",
		Summary:     "Classify comp titles",
		Description: "Classifies candidate listing titles against a product identity and explains each verdict.",
		Tags:        []string{"pricing"},
	}, h.Match)
}
