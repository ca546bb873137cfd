package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	mw "github.com/donaldgifford/comp-pricer/internal/api/middleware"
)

func tracedEcho(t *testing.T) (*echo.Echo, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	e := echo.New()
	e.Use(mw.Tracing(tp, propagation.TraceContext{}))
	return e, sr
}

func TestTracing_Spans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantSpans  int
		wantName   string
		wantStatus int
		wantCode   codes.Code
	}{
		{
			name:   "route template names the span",
			route:  "/api/v1/products/:id",
			target: "/api/v1/products/p-1",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantSpans:  1,
			wantName:   "GET /api/v1/products/:id",
			wantStatus: http.StatusOK,
			wantCode:   codes.Unset,
		},
		{
			name:   "client error is not a span error",
			route:  "/api/v1/jobs/:name/history",
			target: "/api/v1/jobs/nope/history",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound, "unknown job nope")
			},
			wantSpans:  1,
			wantName:   "GET /api/v1/jobs/:name/history",
			wantStatus: http.StatusNotFound,
			wantCode:   codes.Unset,
		},
		{
			name:   "server error marks the span",
			route:  "/api/v1/pricing",
			target: "/api/v1/pricing",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusBadGateway)
			},
			wantSpans:  1,
			wantName:   "GET /api/v1/pricing",
			wantStatus: http.StatusBadGateway,
			wantCode:   codes.Error,
		},
		{
			name:   "probes are skipped",
			route:  "/healthz",
			target: "/healthz",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, sr := tracedEcho(t)
			e.GET(tt.route, tt.handler)
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))

			spans := sr.Ended()
			require.Len(t, spans, tt.wantSpans)
			if tt.wantSpans == 0 {
				return
			}
			s := spans[0]
			assert.Equal(t, tt.wantName, s.Name())
			assert.Equal(t, trace.SpanKindServer, s.SpanKind())
			assert.Contains(t, s.Attributes(), attribute.Int("http.response.status_code", tt.wantStatus))
			assert.Equal(t, tt.wantCode, s.Status().Code)
		})
	}
}

func TestTracing_ContinuesCallerTrace(t *testing.T) {
	t.Parallel()

	e, sr := tracedEcho(t)

	var handlerSpan trace.SpanContext
	e.POST("/api/v1/pricing", func(c echo.Context) error {
		handlerSpan = trace.SpanContextFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	const traceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing", http.NoBody)
	req.Header.Set("traceparent", traceparent)

	carrier := propagation.HeaderCarrier(req.Header)
	parent := trace.SpanContextFromContext(propagation.TraceContext{}.Extract(t.Context(), carrier))
	require.True(t, parent.IsValid())

	e.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, parent.TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, parent.SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[0].SpanContext().SpanID(), handlerSpan.SpanID())
}
