// Package handlers implements the HTTP API for comp-pricer.
package handlers

// StatusResponse is the body of endpoints that only report an outcome.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Dependency check outcomes reported by /readyz.
const (
	checkOK          = "ok"
	checkUnreachable = "unreachable"
)

// ReadinessResponse reports overall readiness and, when dependencies are
// configured, the outcome of each ping.
type ReadinessResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}
