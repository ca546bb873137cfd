package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/comp-pricer/internal/api/client"
	"github.com/donaldgifford/comp-pricer/internal/config"
	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func splitCmd() *cobra.Command {
	var remote bool

	c := &cobra.Command{
		Use:   "split <target-delivered>",
		Short: "Split a delivered price into item and shipping",
		Long: "Split a target delivered price (dollars, e.g. 20.38) into an item price\n" +
			"and shipping charge. Runs locally with the built-in defaults unless\n" +
			"--remote is set, in which case the server's defaults apply.",
		Args: cobra.ExactArgs(1),
		Example: `  comp-pricer split 20.38
  comp-pricer split 8.99 --allow-free-shipping=false
  comp-pricer split 20.38 --remote --output json`,
	}
	settings := addSettingsFlags(c)
	c.Flags().BoolVar(&remote, "remote", false, "split on the API server")

	c.RunE = func(cmd *cobra.Command, args []string) error {
		var (
			res *apiclient.SplitResult
			err error
		)
		if remote {
			res, err = newClient().Split(cmd.Context(), &apiclient.SplitRequest{
				TargetDelivered: strings.TrimPrefix(args[0], "$"),
				Settings:        settings.overrides(),
			})
		} else {
			res, err = localSplit(args[0], settings.overrides())
		}
		if err != nil {
			return err
		}

		if jsonOutput() {
			return outputJSON(res)
		}
		return printSplit(res)
	}

	return c
}

// localSplit mirrors the server's split endpoint without a network call.
func localSplit(target string, o *domain.SettingsOverrides) (*apiclient.SplitResult, error) {
	cents, err := domain.ParseDollarsToCents(strings.TrimPrefix(target, "$"))
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}
	if cents < 0 {
		return nil, fmt.Errorf("invalid target %q: must not be negative", target)
	}

	base, _ := config.Default().Pricing.Settings()
	s, warnings := pricing.Resolve(base, o)
	r := pricing.Decide(cents, s)

	return &apiclient.SplitResult{
		TargetDeliveredCents: cents,
		FinalItemCents:       r.FinalItemCents,
		FinalShipCents:       r.FinalShipCents,
		ItemPrice:            domain.FormatCents(r.FinalItemCents),
		ShippingPrice:        domain.FormatCents(r.FinalShipCents),
		CanCompete:           r.CanCompete,
		FreeShipApplied:      r.FreeShipApplied,
		SubsidyCents:         r.SubsidyCents,
		SkipListing:          r.SkipListing,
		Warnings:             append(append([]string{}, warnings...), r.Warnings...),
		Settings:             s,
	}, nil
}
