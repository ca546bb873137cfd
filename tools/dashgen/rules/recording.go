package rules

// RecordingRules returns the pre-computed rates shared by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("cpr-recording-rules", "cpr-recording",
		record("cpr:http_requests:rate5m", `sum(rate(cpr_http_requests_total[5m]))`),
		record("cpr:http_errors:rate5m", `sum(rate(cpr_http_requests_total{status=~"5.."}[5m]))`),
		record("cpr:decisions:rate5m", `sum(rate(cpr_decisions_total[5m]))`),
		record("cpr:cannot_compete:rate5m", `sum(rate(cpr_cannot_compete_total[5m]))`),
		record("cpr:source_failures:rate5m", `sum by (source) (rate(cpr_source_failures_total[5m]))`),
		record("cpr:cache_hit_ratio:5m",
			`sum(rate(cpr_cache_hits_total[5m])) / `+
				`(sum(rate(cpr_cache_hits_total[5m])) + sum(rate(cpr_cache_misses_total[5m])))`),
		record("cpr:ebay_api_calls:rate5m", `rate(cpr_ebay_api_calls_total[5m])`),
	)
}
