package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/comp-pricer/internal/api/client"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printPricing(r *domain.PricingResponse) error {
	return writePricing(os.Stdout, r)
}

func writePricing(w io.Writer, r *domain.PricingResponse) error {
	d := &r.Debug
	tw := newTabWriter(w)
	tw.writef("Item:\t%s\n", domain.FormatCents(d.FinalItemCents))
	tw.writef("Shipping:\t%s\n", domain.FormatCents(d.FinalShipCents))
	tw.writef("Target:\t%s\n", domain.FormatCents(d.TargetDeliveredCents))
	tw.writef("Can Compete:\t%v\n", r.CanCompete)
	if r.SkipListing {
		tw.writef("Skip Listing:\ttrue\n")
	}
	tw.writef("Comps Source:\t%s\n", d.CompsSource)
	tw.writef("Confidence:\t%s\n", r.MatchConfidence)
	tw.writef("Amazon:\t%s\n", optionalCents(d.AmazonPriceCents))
	tw.writef("Walmart:\t%s\n", optionalCents(d.WalmartPriceCents))
	tw.writef("Sold Median:\t%s (%d sold)\n", optionalCents(d.SoldMedianDeliveredCents), d.SoldCount)
	tw.writef("Active Floor:\t%s (%d active)\n", optionalCents(d.ActiveFloorDeliveredCents), d.ActiveCount)
	tw.writef("Shipping Est:\t%s (%s)\n", domain.FormatCents(d.ShippingEstimateCents), d.ShippingEstimateSource)
	tw.writef("Warnings:\t%s\n", joinOrDash(d.Warnings))
	return tw.finish()
}

func printSplit(r *apiclient.SplitResult) error {
	return writeSplit(os.Stdout, r)
}

func writeSplit(w io.Writer, r *apiclient.SplitResult) error {
	tw := newTabWriter(w)
	tw.writef("Target:\t%s\n", domain.FormatCents(r.TargetDeliveredCents))
	tw.writef("Item:\t%s\n", domain.FormatCents(r.FinalItemCents))
	tw.writef("Shipping:\t%s\n", domain.FormatCents(r.FinalShipCents))
	tw.writef("Can Compete:\t%v\n", r.CanCompete)
	if r.FreeShipApplied {
		tw.writef("Subsidy:\t%s\n", domain.FormatCents(r.SubsidyCents))
	}
	if r.SkipListing {
		tw.writef("Skip Listing:\ttrue\n")
	}
	tw.writef("Mode:\t%s\n", r.Settings.Mode)
	tw.writef("Warnings:\t%s\n", joinOrDash(r.Warnings))
	return tw.finish()
}

func printProductsTable(products []domain.TrackedProduct) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tBRAND\tPRODUCT\tCONDITION\tENABLED\tLAST PRICED\n")
	for i := range products {
		p := &products[i]
		lastPriced := "-"
		if p.LastPricedAt != nil {
			lastPriced = p.LastPricedAt.Format(timeLayout)
		}
		tw.writef("%s\t%s\t%s\t%s\t%v\t%s\n",
			p.ID,
			truncate(p.Brand, 20),
			truncate(p.ProductName, 40),
			orDash(p.Condition),
			p.Enabled,
			lastPriced,
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.TrackedProduct) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Brand:\t%s\n", p.Brand)
	tw.writef("Product:\t%s\n", p.ProductName)
	tw.writef("Condition:\t%s\n", orDash(p.Condition))
	tw.writef("Enabled:\t%v\n", p.Enabled)
	if p.LastPricedAt != nil {
		tw.writef("Last Priced:\t%s\n", p.LastPricedAt.Format(timeLayout))
	}
	if !p.Overrides.IsZero() {
		data, err := json.Marshal(p.Overrides)
		if err != nil {
			return err
		}
		tw.writef("Overrides:\t%s\n", data)
	}
	tw.writef("Created:\t%s\n", p.CreatedAt.Format(timeLayout))
	return tw.finish()
}

func printDecisionsTable(records []domain.DecisionRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("CREATED\tTARGET\tITEM\tSHIP\tCOMPETE\tSOURCE\tCONFIDENCE\n")
	for i := range records {
		r := &records[i]
		tw.writef("%s\t%s\t%s\t%s\t%v\t%s\t%s\n",
			r.CreatedAt.Format(timeLayout),
			domain.FormatCents(r.TargetDeliveredCents),
			domain.FormatCents(r.FinalItemCents),
			domain.FormatCents(r.FinalShipCents),
			r.CanCompete,
			r.CompsSource,
			r.MatchConfidence,
		)
	}
	return tw.finish()
}

func printJobRunsTable(runs []domain.JobRun) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeLayout)
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprintf("%d", *r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format(timeLayout),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func printJobSummaries(jobs []apiclient.JobSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("JOB\tLAST STATUS\tLAST STARTED\tNEXT RUN\n")
	for _, j := range jobs {
		status, started, next := "never run", "-", "-"
		if j.LastRun != nil {
			status = j.LastRun.Status
			started = j.LastRun.StartedAt.Local().Format(timeLayout)
		}
		if j.NextRunAt != nil {
			next = j.NextRunAt.Local().Format(timeLayout)
		}
		tw.writef("%s\t%s\t%s\t%s\n", j.Name, status, started, next)
	}
	return tw.finish()
}

func printQuota(q *apiclient.QuotaStatus) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Daily Limit:\t%d\n", q.DailyLimit)
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets:\t%s\n", q.ResetAt.Local().Format(timeLayout))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optionalCents(c *int64) string {
	if c == nil {
		return "-"
	}
	return domain.FormatCents(*c)
}

func joinOrDash(ss []string) string {
	if len(ss) == 0 {
		return "-"
	}
	return strings.Join(ss, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
