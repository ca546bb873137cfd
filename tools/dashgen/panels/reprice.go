package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastReprice returns a stat panel showing time since the last completed
// reprice run.
func LastReprice() *stat.PanelBuilder {
	return newStat("Last Reprice", "Time since the last completed reprice run").
		WithTarget(PromQuery(`time() - cpr_last_reprice_timestamp{job="comp-pricer"}`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(7*3600, 13*3600)).
		GraphMode(common.BigValueGraphModeNone)
}

// NextReprice returns a stat panel showing time until the next scheduled
// reprice run.
func NextReprice() *stat.PanelBuilder {
	return newStat("Next Reprice", "Time until the next scheduled reprice run").
		WithTarget(PromQuery(`cpr_scheduler_next_reprice_timestamp{job="comp-pricer"} - time()`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}

// RepriceDuration returns a timeseries panel showing p50 and p95 reprice
// run durations.
func RepriceDuration() *timeseries.PanelBuilder {
	return newTimeseries("Reprice Duration", "Duration of full reprice runs").
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(cpr_reprice_duration_seconds_bucket{job="comp-pricer"}[6h])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(cpr_reprice_duration_seconds_bucket{job="comp-pricer"}[6h])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2)
}

// RepriceThroughput returns a timeseries panel showing products repriced
// and per-product errors.
func RepriceThroughput() *timeseries.PanelBuilder {
	return newTimeseries("Products Repriced", "Products repriced and per-product reprice errors").
		WithTarget(PromQuery(`increase(cpr_reprice_products_total{job="comp-pricer"}[1h])`, "repriced", "A")).
		WithTarget(PromQuery(`increase(cpr_reprice_errors_total{job="comp-pricer"}[1h])`, "errors", "B")).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleBars)
}

// SchedulerJobs returns a timeseries panel showing scheduler job runs by
// job and outcome.
func SchedulerJobs() *timeseries.PanelBuilder {
	return newTimeseries("Scheduler Jobs", "Scheduled job runs by job and status").
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum by (job, status) (increase(cpr_scheduler_jobs_total[1h]))`,
			"{{job}} {{status}}", "A",
		)).
		FillOpacity(10).
		Legend(TableLegend("sum")).
		DrawStyle(common.GraphDrawStyleBars)
}
