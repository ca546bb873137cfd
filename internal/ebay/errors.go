package ebay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an unparseable error body is kept.
const maxErrorBody = 512

// APIError is a non-2xx response from an eBay REST API. eBay reports
// failures as {"errors":[{"errorId":..., "message":...}]}; the first entry
// is surfaced, and the raw body is kept when it does not parse.
type APIError struct {
	StatusCode int
	ErrorID    int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if e.ErrorID != 0 {
		return fmt.Sprintf("eBay API error (status %d, id %d): %s", e.StatusCode, e.ErrorID, msg)
	}
	return fmt.Sprintf("eBay API error (status %d): %s", e.StatusCode, msg)
}

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Throttled reports whether eBay refused the call for exceeding a rate limit.
func (e *APIError) Throttled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

type errorEnvelope struct {
	Errors []struct {
		ErrorID     int    `json:"errorId"`
		Message     string `json:"message"`
		LongMessage string `json:"longMessage"`
	} `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && len(env.Errors) > 0 {
		first := env.Errors[0]
		e.ErrorID = first.ErrorID
		e.Message = first.Message
		if e.Message == "" {
			e.Message = first.LongMessage
		}
		return e
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody] + "..."
	}
	e.Body = raw
	return e
}

// IsThrottled reports whether err carries an eBay 429.
func IsThrottled(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Throttled()
}
