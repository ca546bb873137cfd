package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func jobsCmd() *cobra.Command {
	jobsRoot := &cobra.Command{
		Use:   "jobs",
		Short: "View scheduler job history",
		Long: "View the execution history of scheduled jobs (reprice, quota_sync).\n" +
			"Each run records status, duration, rows affected and any error.",
	}

	jobsRoot.AddCommand(
		jobsListCmd(),
		jobsHistoryCmd(),
	)

	return jobsRoot
}

func jobsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled jobs with their latest run",
		Example: `  comp-pricer jobs list
  comp-pricer jobs list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := newClient().ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(jobs)
			}
			return printJobSummaries(jobs)
		},
	}
}

func jobsHistoryCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history <job_name>",
		Short: "Show run history for a job",
		Args:  cobra.ExactArgs(1),
		Example: `  comp-pricer jobs history reprice
  comp-pricer jobs history quota_sync --limit 5 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := newClient().GetJobHistory(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(runs)
			}
			if len(runs) == 0 {
				fmt.Printf("No runs found for job %q.\n", args[0])
				return nil
			}
			return printJobRunsTable(runs)
		},
	}

	c.Flags().IntVar(&limit, "limit", 20, "number of runs")
	return c
}

func quotaCmd() *cobra.Command {
	quotaRoot := &cobra.Command{
		Use:   "quota",
		Short: "Show the eBay API daily quota",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(q)
			}
			return printQuota(q)
		},
	}

	quotaRoot.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Pull the live quota from eBay into the rate limiter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().SyncQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(q)
			}
			return printQuota(q)
		},
	})

	return quotaRoot
}

func repriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reprice",
		Short: "Reprice every enabled product now",
		Long: "Run a full reprice pass on the server. Blocks until the pass completes;\n" +
			"use 'products reprice <id>' for a single product.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newClient().TriggerReprice(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			fmt.Printf("Repriced %d of %d products (%d errors, %d alerts).\n",
				s.Summary.Priced, s.Summary.Products, s.Summary.Errors, s.Summary.Alerts)
			return nil
		},
	}
}
