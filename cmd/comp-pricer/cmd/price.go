package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func priceCmd() *cobra.Command {
	var (
		brand     string
		name      string
		condition string
		refresh   bool
	)

	c := &cobra.Command{
		Use:   "price",
		Short: "Price a product from live comps",
		Long: "Ask the server for a delivered pricing decision: the item price and\n" +
			"shipping charge that compete with current comps.",
		Example: `  comp-pricer price --brand CeraVe --name "Hydrating Facial Cleanser 16 oz"
  comp-pricer price --brand CeraVe --name "Cleanser 16 oz" --mode fast-sale --refresh
  comp-pricer price --brand CeraVe --name "Cleanser 16 oz" --output json`,
	}
	settings := addSettingsFlags(c)

	c.Flags().StringVar(&brand, "brand", "", "product brand")
	c.Flags().StringVar(&name, "name", "", "product name")
	c.Flags().StringVar(&condition, "condition", "", "listing condition (default new)")
	c.Flags().BoolVar(&refresh, "refresh", false, "bypass the decision cache")

	c.RunE = func(cmd *cobra.Command, _ []string) error {
		if strings.TrimSpace(brand) == "" && strings.TrimSpace(name) == "" {
			return errors.New("--brand or --name is required")
		}

		resp, err := newClient().Price(cmd.Context(), &domain.PriceQuery{
			Brand:       brand,
			ProductName: name,
			Condition:   condition,
			Settings:    settings.overrides(),
			Refresh:     refresh,
		})
		if err != nil {
			return err
		}
		if jsonOutput() {
			return outputJSON(resp)
		}
		return printPricing(resp)
	}

	return c
}
