package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio returns a stat panel showing the decision cache hit ratio.
func CacheHitRatio() *stat.PanelBuilder {
	return newStat("Cache Hit Ratio", "Share of pricing requests served from the decision cache").
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`cpr:cache_hit_ratio:5m * 100`, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedYellowGreen(30, 60)).
		GraphMode(common.BigValueGraphModeArea)
}

// CacheTraffic returns a timeseries panel showing cache hits and misses.
func CacheTraffic() *timeseries.PanelBuilder {
	return newTimeseries("Cache Hits / Misses", "Decision cache lookups per second").
		Span(ThirdWidth).
		WithTarget(PromQuery(`rate(cpr_cache_hits_total{job="comp-pricer"}[5m])`, "hits", "A")).
		WithTarget(PromQuery(`rate(cpr_cache_misses_total{job="comp-pricer"}[5m])`, "misses", "B")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2)
}

// CacheErrors returns a stat panel showing cache backend errors in the past
// 24 hours. Errors degrade to a miss, so pricing keeps working.
func CacheErrors() *stat.PanelBuilder {
	return newStat("Cache Errors (24h)", "Cache backend errors in the last 24 hours").
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(cpr_cache_errors_total{job="comp-pricer"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 20)).
		GraphMode(common.BigValueGraphModeArea)
}
