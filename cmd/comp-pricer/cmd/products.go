package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/comp-pricer/internal/api/client"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage tracked products",
		Long: "Tracked products are repriced on schedule. Each keeps its own pricing\n" +
			"overrides and a history of decisions.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsAddCmd(),
		productsUpdateCmd(),
		productsSetEnabledCmd("enable", "Resume scheduled repricing for a product", true),
		productsSetEnabledCmd("disable", "Pause scheduled repricing for a product", false),
		productsDeleteCmd(),
		productsRepriceCmd(),
		productsDecisionsCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	opts := &apiclient.ProductListOptions{}

	c := &cobra.Command{
		Use:   "list",
		Short: "List tracked products",
		Example: `  comp-pricer products list
  comp-pricer products list --brand CeraVe --enabled
  comp-pricer products list --search cleanser --order-by last_priced_at`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := newClient().ListProducts(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(list)
			}
			if len(list.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			if err := printProductsTable(list.Products); err != nil {
				return err
			}
			fmt.Printf("\n%d of %d products\n", len(list.Products), list.Total)
			return nil
		},
	}

	c.Flags().BoolVar(&opts.EnabledOnly, "enabled", false, "only enabled products")
	c.Flags().StringVar(&opts.Brand, "brand", "", "filter by brand")
	c.Flags().StringVar(&opts.Condition, "condition", "", "filter by condition (new, other)")
	c.Flags().StringVar(&opts.Search, "search", "", "substring of the product name")
	c.Flags().IntVar(&opts.Limit, "limit", 0, "number of results (server default 50)")
	c.Flags().IntVar(&opts.Offset, "offset", 0, "pagination offset")
	c.Flags().StringVar(&opts.OrderBy, "order-by", "", "sort field (created_at, brand, last_priced_at)")

	return c
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a tracked product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newClient().GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(p)
		},
	}
}

// productFlags binds the fields of a product request.
type productFlags struct {
	brand     string
	name      string
	condition string
	disabled  bool
	settings  *settingsFlags
}

func addProductFlags(c *cobra.Command) *productFlags {
	f := &productFlags{settings: addSettingsFlags(c)}
	c.Flags().StringVar(&f.brand, "brand", "", "product brand")
	c.Flags().StringVar(&f.name, "name", "", "product name")
	c.Flags().StringVar(&f.condition, "condition", "", "listing condition (default new)")
	c.Flags().BoolVar(&f.disabled, "disabled", false, "do not reprice on schedule")
	return f
}

func (f *productFlags) request() *domain.ProductRequest {
	req := &domain.ProductRequest{
		Brand:       f.brand,
		ProductName: f.name,
		Condition:   f.condition,
	}
	if o := f.settings.overrides(); o != nil {
		req.Overrides = *o
	}
	if f.disabled {
		enabled := false
		req.Enabled = &enabled
	}
	return req
}

func productsAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Track a new product",
		Example: `  comp-pricer products add --brand CeraVe --name "Hydrating Facial Cleanser 16 oz"
  comp-pricer products add --brand CeraVe --name "Cleanser 16 oz" --mode max-margin --undercut-cents 50`,
	}
	f := addProductFlags(c)
	cobra.CheckErr(c.MarkFlagRequired("brand"))
	cobra.CheckErr(c.MarkFlagRequired("name"))

	c.RunE = func(cmd *cobra.Command, _ []string) error {
		p, err := newClient().CreateProduct(cmd.Context(), f.request())
		if err != nil {
			return err
		}
		if jsonOutput() {
			return outputJSON(p)
		}
		fmt.Printf("Product created: %s\n", p.ID)
		return nil
	}

	return c
}

func productsUpdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a tracked product",
		Long: "Replace a tracked product's brand, name, condition and overrides. Fields\n" +
			"not given are taken from the current product; overrides are replaced.",
		Args: cobra.ExactArgs(1),
	}
	f := addProductFlags(c)

	c.RunE = func(cmd *cobra.Command, args []string) error {
		client := newClient()
		cur, err := client.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("brand") {
			f.brand = cur.Brand
		}
		if !cmd.Flags().Changed("name") {
			f.name = cur.ProductName
		}
		if !cmd.Flags().Changed("condition") {
			f.condition = cur.Condition
		}
		if !cmd.Flags().Changed("disabled") {
			f.disabled = !cur.Enabled
		}

		p, err := client.UpdateProduct(cmd.Context(), args[0], f.request())
		if err != nil {
			return err
		}
		if jsonOutput() {
			return outputJSON(p)
		}
		fmt.Printf("Product %s updated.\n", p.ID)
		return nil
	}

	return c
}

func productsSetEnabledCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().SetProductEnabled(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			fmt.Printf("Product %s %sd.\n", args[0], use)
			return nil
		},
	}
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking a product",
		Long:  "Delete a tracked product. Its decision history is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Product %s deleted.\n", args[0])
			return nil
		},
	}
}

func productsRepriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reprice <id>",
		Short: "Reprice one product now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := newClient().RepriceProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rec)
			}
			resp := domain.NewPricingResponse(&rec.Decision)
			return printPricing(&resp)
		},
	}
}

func productsDecisionsCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "decisions <id>",
		Short: "Show a product's pricing history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := newClient().ListDecisions(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(recs)
			}
			if len(recs) == 0 {
				fmt.Println("No decisions recorded.")
				return nil
			}
			return printDecisionsTable(recs)
		},
	}

	c.Flags().IntVar(&limit, "limit", 20, "number of decisions")
	return c
}
