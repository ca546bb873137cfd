// Package middleware provides Echo middleware for comp-pricer.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
)

// unmatchedRoute labels requests no route matched, keeping scanners from
// minting a series per probed URL.
const unmatchedRoute = "unmatched"

var probePaths = map[string]bool{
	"/metrics": true,
	"/healthz": true,
	"/readyz":  true,
}

// Metrics records request duration and count labelled by route template,
// so /api/v1/products/:id is one series. Probes and scrapes are not
// counted; /readyz outcomes drive the ready gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if probePaths[route] {
				err := next(c)
				if route == "/readyz" {
					metrics.ReadyUp.Set(successValue(responseStatus(c, err)))
				}
				return err
			}
			if route == "" || route == "/*" {
				route = unmatchedRoute
			}

			metrics.HTTPRequestsInFlight.Inc()
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)
			metrics.HTTPRequestsInFlight.Dec()

			labels := []string{c.Request().Method, route, strconv.Itoa(responseStatus(c, err))}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}

// responseStatus is the status the client will see. A returned error has
// not been rendered yet, so its code wins over the uncommitted response.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return se.GetStatus()
	}
	return http.StatusInternalServerError
}

func successValue(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
