package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new HealthHandler. Either dependency may be nil
// when it is not configured.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if every configured dependency is reachable, 503
// otherwise. The decision cache is optional to pricing, so a cache outage
// is reported but does not fail readiness.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()
	resp := ReadinessResponse{Status: "ready"}

	check := func(name string, p Pinger) bool {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, 2)
		}
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = checkUnreachable
			return false
		}
		resp.Checks[name] = checkOK
		return true
	}

	if h.cache != nil {
		metrics.CacheUp.Set(boolGauge(check("cache", h.cache)))
	}
	if h.db != nil {
		up := check("database", h.db)
		metrics.DatabaseUp.Set(boolGauge(up))
		if !up {
			resp.Status = "unavailable"
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
