package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return newTimeseries("Request Rate", "HTTP requests per second").
		WithTarget(PromQuery(`cpr:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max"))
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return newTimeseries("Latency Percentiles", "HTTP request duration percentiles").
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(cpr_http_request_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(cpr_http_request_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.99, sum(rate(cpr_http_request_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le))`,
			"p99",
			"C",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max"))
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return newTimeseries("Error Rate %", "HTTP 5xx error rate as percentage of total requests").
		WithTarget(PromQuery(
			`cpr:http_errors:rate5m / cpr:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// InFlight returns a timeseries panel showing concurrent HTTP requests and
// recovered panics.
func InFlight() *timeseries.PanelBuilder {
	return newTimeseries("In-Flight / Panics", "Requests currently being served and handler panics recovered").
		WithTarget(PromQuery(`cpr_http_requests_in_flight{job="comp-pricer"}`, "in flight", "A")).
		WithTarget(PromQuery(`increase(cpr_http_panics_total{job="comp-pricer"}[5m])`, "panics", "B")).
		FillOpacity(10).
		LineWidth(2)
}
