package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing the eBay API call rate.
func APICallsRate() *timeseries.PanelBuilder {
	return newTimeseries("API Calls Rate", "eBay Browse API calls per second").
		Span(StatWidth).
		WithTarget(PromQuery(`cpr:ebay_api_calls:rate5m`, "calls/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2)
}

// DailyUsage returns a timeseries panel showing the rolling 24h eBay API
// usage with a threshold line at the daily limit.
func DailyUsage() *timeseries.PanelBuilder {
	return newTimeseries("Daily Usage vs Limit", fmt.Sprintf("Rolling 24h eBay API call count (limit: %d)", EbayDailyLimit)).
		Span(StatWidth).
		WithTarget(PromQuery(`cpr_ebay_daily_usage{job="comp-pricer"}`, "usage", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(float64(EbayDailyLimit)*0.8, float64(EbayDailyLimit))).
		ColorScheme(ColorSchemeThresholds())
}

// LimitHits returns a stat panel showing the number of daily limit hits
// in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return newStat("Limit Hits (24h)", "Times the eBay daily limit was reached in the last 24 hours").
		Height(TSHeight).
		WithTarget(PromQuery(`increase(cpr_ebay_daily_limit_hits_total{job="comp-pricer"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenRefreshes returns a stat panel showing OAuth token refreshes in the
// past 24 hours. Tokens live two hours, so more than a dozen suggests the
// cache is being bypassed.
func TokenRefreshes() *stat.PanelBuilder {
	return newStat("Token Refreshes (24h)", "eBay OAuth application token refreshes in the last 24 hours").
		Height(TSHeight).
		WithTarget(PromQuery(`increase(cpr_ebay_token_refreshes_total{job="comp-pricer"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(15, 50)).
		GraphMode(common.BigValueGraphModeArea)
}
