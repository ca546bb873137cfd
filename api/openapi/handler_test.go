package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/api/openapi"
)

type pingOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	api := humaecho.New(e, huma.DefaultConfig("comp-pricer API", "test"))
	openapi.RegisterRoutes(e, api.OpenAPI())

	// Registered after the OpenAPI routes: the document must still include it.
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/api/v1/ping",
	}, func(context.Context, *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Status = "ok"
		return out, nil
	})

	return e
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		path            string
		wantStatus      int
		wantContentType string
		wantBody        string
	}{
		{
			name:            "json spec",
			path:            "/swagger/swagger.json",
			wantStatus:      http.StatusOK,
			wantContentType: "application/json",
			wantBody:        `"/api/v1/ping"`,
		},
		{
			name:            "yaml spec",
			path:            "/swagger/swagger.yaml",
			wantStatus:      http.StatusOK,
			wantContentType: "text/yaml",
			wantBody:        "/api/v1/ping:",
		},
		{
			name:            "ui",
			path:            "/swagger/index.html",
			wantStatus:      http.StatusOK,
			wantContentType: "text/html",
			wantBody:        "swagger-ui",
		},
		{
			name:       "redirect",
			path:       "/swagger",
			wantStatus: http.StatusMovedPermanently,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newServer(t)
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantContentType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantContentType)
			}
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
