package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// DecisionsBySource returns a timeseries panel showing pricing decisions per
// second split by which comps tier produced the target.
func DecisionsBySource() *timeseries.PanelBuilder {
	return newTimeseries("Decisions by Comps Source", "Pricing decisions per second by evidence tier (sold, active, retail, none)").
		WithTarget(PromQuery(
			`sum by (comps_source) (rate(cpr_decisions_total{job="comp-pricer"}[5m]))`,
			"{{comps_source}}", "A",
		)).
		Unit("ops").
		Legend(TableLegend("mean", "last"))
}

// CannotCompetePercent returns a stat panel showing the share of decisions
// where the price floor sits above the market target.
func CannotCompetePercent() *stat.PanelBuilder {
	return newStat("Cannot Compete %", "Decisions where the floor forced a price above the delivered target").
		Height(TSHeight).
		WithTarget(PromQuery(`cpr:cannot_compete:rate5m / cpr:decisions:rate5m * 100`, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(10, 25)).
		GraphMode(common.BigValueGraphModeArea)
}

// ConfidenceBreakdown returns a timeseries panel showing decisions per
// second by match confidence.
func ConfidenceBreakdown() *timeseries.PanelBuilder {
	return newTimeseries("Match Confidence", "Pricing decisions per second by match confidence").
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum by (confidence) (rate(cpr_decisions_total{job="comp-pricer"}[5m]))`,
			"{{confidence}}", "A",
		)).
		Unit("ops")
}

// DecisionLatency returns a timeseries panel showing p50 and p95 end-to-end
// pricing latency including source fan-out.
func DecisionLatency() *timeseries.PanelBuilder {
	return newTimeseries("Decision Latency", "End-to-end pricing latency including comp fetches").
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(cpr_decision_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(cpr_decision_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max"))
}

// TargetDelivered returns a timeseries panel showing the median delivered
// target chosen by the pricer.
func TargetDelivered() *timeseries.PanelBuilder {
	return newTimeseries("Target Delivered Price", "Median and p90 of the delivered target selected per decision").
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(cpr_target_delivered_dollars_bucket{job="comp-pricer"}[1h])) by (le))`,
			"median", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.90, sum(rate(cpr_target_delivered_dollars_bucket{job="comp-pricer"}[1h])) by (le))`,
			"p90", "B",
		)).
		Unit("currencyUSD").
		FillOpacity(10).
		LineWidth(2)
}

// CompVerdicts returns a timeseries panel showing how comps are classified
// by the matcher, by kind and verdict.
func CompVerdicts() *timeseries.PanelBuilder {
	return newTimeseries("Comp Verdicts", "Comps accepted or rejected by the matcher, by kind and verdict").
		WithTarget(PromQuery(
			`sum by (kind, verdict) (rate(cpr_comp_verdicts_total{job="comp-pricer"}[5m]))`,
			"{{kind}} {{verdict}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		Legend(TableLegend("mean", "last"))
}

// SourceLatency returns a timeseries panel showing p95 fetch latency per
// comp source.
func SourceLatency() *timeseries.PanelBuilder {
	return newTimeseries("Source Fetch Latency (p95)", "95th percentile fetch latency per comp source").
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(cpr_source_fetch_duration_seconds_bucket{job="comp-pricer"}[5m])) by (le, source))`,
			"{{source}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max"))
}

// SourceFailures returns a timeseries panel showing failed fetches per
// source. A failing source lowers confidence but never fails a decision.
func SourceFailures() *timeseries.PanelBuilder {
	return newTimeseries("Source Failures", "Failed or timed-out comp fetches per second by source").
		WithTarget(PromQuery(
			`sum by (source) (rate(cpr_source_failures_total{job="comp-pricer"}[5m]))`,
			"{{source}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1))
}
