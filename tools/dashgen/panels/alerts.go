package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LowPriceAlerts returns a timeseries panel showing the rate of low-price
// alerts raised by reprice runs.
func LowPriceAlerts() *timeseries.PanelBuilder {
	return newTimeseries("Low Price Alerts", "Products flagged because the floor sits above the market target").
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(cpr_low_price_alerts_total{job="comp-pricer"}[1h])`, "alerts/h", "A")).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationLatency returns a timeseries panel showing the p95 notification
// webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return newTimeseries("Notification Latency (p95)", "95th percentile Discord webhook latency").
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(cpr_notification_duration_seconds_bucket{job="comp-pricer"}[30m])) by (le))`,
			"p95", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5))
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return newStat("Notification Failures (24h)", "Failed alert notification deliveries in the last 24 hours").
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(cpr_notification_failures_total{job="comp-pricer"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		GraphMode(common.BigValueGraphModeArea)
}
