// Package main generates reference documentation: the CLI command tree as
// markdown and the HTTP API as an OpenAPI document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/comp-pricer/cmd/comp-pricer/cmd"
	"github.com/donaldgifford/comp-pricer/internal/api/handlers"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	spec := flag.String("openapi", "", "also write the OpenAPI document (YAML) to this path")
	flag.Parse()

	if err := genCLIDocs(*output); err != nil {
		log.Fatalf("generating CLI docs: %v", err)
	}
	fmt.Printf("CLI docs generated in %s/\n", *output)

	if *spec == "" {
		return
	}
	if err := genOpenAPI(*spec); err != nil {
		log.Fatalf("generating OpenAPI document: %v", err)
	}
	fmt.Printf("OpenAPI document written to %s\n", *spec)
}

func genCLIDocs(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	return doc.GenMarkdownTree(root, dir)
}

// genOpenAPI registers every operation against nil dependencies; handlers
// are never invoked, only described.
func genOpenAPI(path string) error {
	api := humaecho.New(echo.New(), huma.DefaultConfig("comp-pricer API", cmd.Version))

	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(nil, nil))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(nil, nil))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(nil, nil))
	handlers.RegisterTriggerRoutes(api, handlers.NewRepriceHandler(nil))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(nil, nil))

	data, err := api.OpenAPI().YAML()
	if err != nil {
		return fmt.Errorf("rendering YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
