package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	"github.com/donaldgifford/comp-pricer/internal/engine"
)

// QuotaSyncer pulls the live eBay quota into the rate limiter.
type QuotaSyncer interface {
	SyncQuota(ctx context.Context) (int, error)
}

// QuotaHandler provides the eBay API quota status endpoints.
type QuotaHandler struct {
	rl     *ebay.RateLimiter
	syncer QuotaSyncer
}

// NewQuotaHandler creates a new QuotaHandler. The syncer may be nil.
func NewQuotaHandler(rl *ebay.RateLimiter, syncer QuotaSyncer) *QuotaHandler {
	return &QuotaHandler{rl: rl, syncer: syncer}
}

// QuotaOutput is the response body for the quota endpoints.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64     `json:"daily_limit" example:"5000"                 doc:"Configured daily API call limit"`
		DailyUsed  int64     `json:"daily_used"  example:"142"                  doc:"API calls used in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   example:"4858"                 doc:"API calls remaining in the current window"`
		ResetAt    time.Time `json:"reset_at"    example:"2026-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
	}
}

// GetQuota returns the current eBay API quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	return h.snapshot(), nil
}

// SyncQuota refreshes the local counters from eBay and returns the result.
func (h *QuotaHandler) SyncQuota(ctx context.Context, _ *struct{}) (*QuotaOutput, error) {
	if h.syncer == nil {
		return nil, huma.Error503ServiceUnavailable("quota sync is not configured")
	}
	if _, err := h.syncer.SyncQuota(ctx); err != nil {
		if errors.Is(err, engine.ErrQuotaSyncDisabled) {
			return nil, huma.Error503ServiceUnavailable(err.Error())
		}
		return nil, huma.Error502BadGateway("quota sync failed: " + err.Error())
	}
	return h.snapshot(), nil
}

func (h *QuotaHandler) snapshot() *QuotaOutput {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp
	}

	u := h.rl.Usage()
	resp.Body.DailyLimit = u.Limit
	resp.Body.DailyUsed = u.Used
	resp.Body.Remaining = u.Remaining()
	resp.Body.ResetAt = u.ResetAt

	return resp
}

// RegisterQuotaRoutes registers the quota endpoints with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get eBay API quota status",
		Description: "Returns the current daily API call usage, remaining quota, and window reset time.",
		Tags:        []string{"ebay"},
	}, h.GetQuota)

	huma.Register(api, huma.Operation{
		OperationID: "sync-quota",
		Method:      http.MethodPost,
		Path:        "/api/v1/quota/sync",
		Summary:     "Sync eBay API quota",
		Description: "Reads the Browse API quota from eBay's analytics endpoint and applies it to the rate limiter.",
		Tags:        []string{"ebay"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.SyncQuota)
}
