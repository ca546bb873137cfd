package rules

// AlertRules returns the operational alerts for comp-pricer.
func AlertRules() PrometheusRule {
	return newPrometheusRule("cpr-alerts", "cpr-alerts",
		alert("CprDown", "critical",
			`absent(up{job="comp-pricer"})`, "2m",
			"Comp Pricer is down",
			"The comp-pricer job has been absent for more than 2 minutes."),
		alert("CprReadinessDown", "critical",
			`cpr_ready_up == 0`, "2m",
			"Comp Pricer readiness check is failing",
			"The readiness probe has been reporting not-ready for more than 2 minutes."),
		alert("CprHighErrorRate", "warning",
			`cpr:http_errors:rate5m / cpr:http_requests:rate5m > 0.05`, "5m",
			"High HTTP error rate on Comp Pricer",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("CprSourceFailing", "warning",
			`cpr:source_failures:rate5m > 0.05`, "15m",
			"Comp source {{ $labels.source }} is failing",
			"Fetches from {{ $labels.source }} have been failing for 15 minutes. Decisions fall back to weaker evidence."),
		alert("CprCannotCompeteHigh", "info",
			`cpr:cannot_compete:rate5m / cpr:decisions:rate5m > 0.25`, "30m",
			"Many products priced above market",
			"More than 25% of pricing decisions hit the floor above the delivered target."),
		alert("CprRepriceStale", "warning",
			`time() - cpr_last_reprice_timestamp > 13 * 3600`, "10m",
			"Reprice has not completed recently",
			"No reprice run has completed in over 13 hours."),
		alert("CprEbayQuotaHigh", "warning",
			`cpr_ebay_daily_usage > 4000`, "5m",
			"eBay API daily usage is above 80% of the quota",
			"Daily eBay API usage has exceeded 4000 calls (limit is 5000)."),
		alert("CprEbayLimitReached", "critical",
			`increase(cpr_ebay_daily_limit_hits_total[5m]) > 0`, "0m",
			"eBay API daily limit has been reached",
			"The eBay Browse API daily quota has been exhausted. Active comps are unavailable until reset."),
		alert("CprNotificationFailures", "warning",
			`increase(cpr_notification_failures_total[5m]) > 0`, "1m",
			"Notification delivery failures detected",
			"One or more low-price alerts (Discord webhooks) have failed to send."),
	)
}
