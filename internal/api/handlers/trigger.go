package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/comp-pricer/internal/engine"
)

// RepriceRunner runs a full reprice pass over every enabled product.
type RepriceRunner interface {
	RunReprice(ctx context.Context) (*engine.RepriceSummary, error)
}

// RepriceHandler handles manual reprice trigger requests.
type RepriceHandler struct {
	runner RepriceRunner
}

// NewRepriceHandler creates a new RepriceHandler.
func NewRepriceHandler(r RepriceRunner) *RepriceHandler {
	return &RepriceHandler{runner: r}
}

// RepriceOutput is the response body for the reprice endpoint.
type RepriceOutput struct {
	Body struct {
		Status  string                `json:"status"  example:"reprice completed" doc:"Reprice status"`
		Summary engine.RepriceSummary `json:"summary"`
	}
}

// Reprice triggers a full reprice pass outside the schedule.
func (h *RepriceHandler) Reprice(ctx context.Context, _ *struct{}) (*RepriceOutput, error) {
	summary, err := h.runner.RunReprice(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("reprice failed: " + err.Error())
	}

	resp := &RepriceOutput{}
	resp.Body.Status = "reprice completed"
	resp.Body.Summary = *summary
	return resp, nil
}

// RegisterTriggerRoutes registers trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *RepriceHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-reprice",
		Method:      http.MethodPost,
		Path:        "/api/v1/reprice",
		Summary:     "Trigger a reprice pass",
		Description: "Reprices every enabled product with fresh comps, records each decision " +
			"and alerts on products that can no longer compete.",
		Tags:   []string{"products"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Reprice)
}
