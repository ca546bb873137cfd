package main

import "errors"

// KnownMetrics is the set of metric names exported by comp-pricer plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"cpr_http_request_duration_seconds": true,
	"cpr_http_requests_total":           true,
	"cpr_http_requests_in_flight":       true,
	"cpr_http_panics_total":             true,

	// Health metrics.
	"cpr_ready_up":    true,
	"cpr_database_up": true,
	"cpr_cache_up":    true,

	// Pricing metrics.
	"cpr_decisions_total":               true,
	"cpr_cannot_compete_total":          true,
	"cpr_decision_duration_seconds":     true,
	"cpr_target_delivered_dollars":      true,
	"cpr_comp_verdicts_total":           true,
	"cpr_source_fetch_duration_seconds": true,
	"cpr_source_failures_total":         true,

	// Cache metrics.
	"cpr_cache_hits_total":   true,
	"cpr_cache_misses_total": true,
	"cpr_cache_errors_total": true,

	// eBay API metrics.
	"cpr_ebay_api_calls_total":        true,
	"cpr_ebay_daily_usage":            true,
	"cpr_ebay_daily_limit_hits_total": true,
	"cpr_ebay_token_refreshes_total":  true,

	// Reprice and scheduler metrics.
	"cpr_reprice_duration_seconds":            true,
	"cpr_reprice_products_total":              true,
	"cpr_reprice_errors_total":                true,
	"cpr_last_reprice_timestamp":              true,
	"cpr_scheduler_next_reprice_timestamp":    true,
	"cpr_scheduler_next_quota_sync_timestamp": true,
	"cpr_scheduler_jobs_total":                true,

	// Notification metrics.
	"cpr_low_price_alerts_total":        true,
	"cpr_notification_failures_total":   true,
	"cpr_notification_duration_seconds": true,

	// Recording rules.
	"cpr:http_requests:rate5m":   true,
	"cpr:http_errors:rate5m":     true,
	"cpr:decisions:rate5m":       true,
	"cpr:cannot_compete:rate5m":  true,
	"cpr:source_failures:rate5m": true,
	"cpr:cache_hit_ratio:5m":     true,
	"cpr:ebay_api_calls:rate5m":  true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
	// PlainRules also writes operator-free rule files under prometheus/plain.
	PlainRules bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
