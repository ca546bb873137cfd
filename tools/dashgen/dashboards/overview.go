// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/comp-pricer/tools/dashgen/panels"
)

// BuildOverview constructs the comp-pricer overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Comp Pricer Overview").
		Uid("cpr-overview").
		Tags([]string{"cpr", "comp-pricer"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.ReadyStat()).
		WithPanel(panels.DatabaseStat()).
		WithPanel(panels.CacheStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Pricing.
	b.WithRow(dashboard.NewRowBuilder("Pricing").
		WithPanel(panels.DecisionsBySource()).
		WithPanel(panels.CannotCompetePercent()).
		WithPanel(panels.ConfidenceBreakdown()).
		WithPanel(panels.DecisionLatency()).
		WithPanel(panels.TargetDelivered()).
		WithPanel(panels.CompVerdicts()))

	// Row 3: Sources.
	b.WithRow(dashboard.NewRowBuilder("Sources").
		WithPanel(panels.SourceLatency()).
		WithPanel(panels.SourceFailures()))

	// Row 4: Cache.
	b.WithRow(dashboard.NewRowBuilder("Cache").
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.CacheTraffic()).
		WithPanel(panels.CacheErrors()))

	// Row 5: eBay API.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()).
		WithPanel(panels.TokenRefreshes()))

	// Row 6: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.InFlight()))

	// Row 7: Reprice.
	b.WithRow(dashboard.NewRowBuilder("Reprice").
		WithPanel(panels.LastReprice()).
		WithPanel(panels.NextReprice()).
		WithPanel(panels.RepriceDuration()).
		WithPanel(panels.RepriceThroughput()).
		WithPanel(panels.SchedulerJobs()))

	// Row 8: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.LowPriceAlerts()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
