// Package openapi serves the API's OpenAPI 3.1 document and a Swagger UI.
package openapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>comp-pricer API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/swagger/swagger.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// RegisterRoutes adds Swagger UI and spec endpoints to the Echo instance.
// The document is rendered once, on first request, after every operation
// has been registered.
func RegisterRoutes(e *echo.Echo, spec *huma.OpenAPI) {
	s := &specCache{spec: spec}
	e.GET("/swagger/swagger.json", s.serveJSON)
	e.GET("/swagger/swagger.yaml", s.serveYAML)
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

type specCache struct {
	spec *huma.OpenAPI

	once     sync.Once
	jsonData []byte
	yamlData []byte
	err      error
}

func (s *specCache) render() {
	s.once.Do(func() {
		s.jsonData, s.err = json.MarshalIndent(s.spec, "", "  ")
		if s.err != nil {
			return
		}
		s.yamlData, s.err = s.spec.YAML()
	})
}

func (s *specCache) serveJSON(c echo.Context) error {
	s.render()
	if s.err != nil {
		return c.String(http.StatusInternalServerError, "spec not available")
	}
	return c.Blob(http.StatusOK, "application/json", s.jsonData)
}

func (s *specCache) serveYAML(c echo.Context) error {
	s.render()
	if s.err != nil {
		return c.String(http.StatusInternalServerError, "spec not available")
	}
	return c.Blob(http.StatusOK, "text/yaml", s.yamlData)
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
