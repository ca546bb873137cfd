// Package cmd implements the comp-pricer CLI: the API server and a client
// for its endpoints.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/comp-pricer/internal/api/client"
)

var rootCmd = &cobra.Command{
	Use:   "comp-pricer",
	Short: "Comp-driven delivered pricing for marketplace listings",
	Long: "comp-pricer prices a product for marketplace listing from live comparables:\n" +
		"retail prices, sold history and active eBay listings. It serves the pricing\n" +
		"engine over HTTP, reprices tracked products on a schedule, and doubles as a\n" +
		"client for its own API.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		String("config", "config.yaml", "server config file path")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	for _, name := range []string{"config", "server", "output"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(priceCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(quotaCmd())
	rootCmd.AddCommand(repriceCmd())
}

// initConfig lets CPR_* environment variables stand in for flags, e.g.
// CPR_SERVER or CPR_CONFIG.
func initConfig() {
	viper.SetEnvPrefix("CPR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func configPath() string {
	return viper.GetString("config")
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
