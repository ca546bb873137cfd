package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upStat(title, description, metric string) *stat.PanelBuilder {
	return newStat(title, description).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// ReadyStat returns a stat panel showing the readiness check status.
func ReadyStat() *stat.PanelBuilder {
	return upStat("Ready", "Readiness check status (1 = ready, 0 = not ready)", `cpr_ready_up`)
}

// DatabaseStat returns a stat panel showing database reachability.
func DatabaseStat() *stat.PanelBuilder {
	return upStat("Database", "Database ping status from the last readiness probe", `cpr_database_up`)
}

// CacheStat returns a stat panel showing cache backend reachability.
func CacheStat() *stat.PanelBuilder {
	return upStat("Cache", "Cache backend ping status from the last readiness probe", `cpr_cache_up`)
}

// QuotaGauge returns a gauge panel showing eBay API daily usage as a
// percentage of the limit.
func QuotaGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf("cpr_ebay_daily_usage / %d * 100", EbayDailyLimit)
	return gauge.NewPanelBuilder().
		Title("eBay Quota %").
		Description("Daily eBay API usage as percentage of limit").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return newStat("Uptime", "Time since process start").
		WithTarget(PromQuery(
			`time() - process_start_time_seconds{job="comp-pricer"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}
