package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
)

const (
	colorRed    = 0xE74C3C // skip listing
	colorOrange = 0xE67E22 // cannot compete

	// Discord rejects messages with more than ten embeds.
	maxEmbeds = 10

	// maxRetryWait is the longest Retry-After honored before giving up.
	maxRetryWait = 5 * time.Second
)

// RateLimitedError is a 429 from Discord that was not retried.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("discord rate limited (429), retry after %s", e.RetryAfter)
}

// DiscordNotifier posts alerts to a Discord webhook as embeds.
type DiscordNotifier struct {
	webhookURL string
	username   string
	client     *http.Client
	now        func() time.Time
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithUsername overrides the name messages are posted under.
func WithUsername(name string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.username = name
	}
}

// NewDiscordNotifier creates a notifier for the given webhook URL.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type webhookMessage struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Color       int          `json:"color"`
	Description string       `json:"description,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// SendAlert posts one alert.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	return d.send(ctx, []embed{d.embedFor(alert)})
}

// SendBatchAlert posts a batch as one message. Past ten alerts the last
// embed summarizes the remainder.
func (d *DiscordNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload) error {
	if len(alerts) == 0 {
		return nil
	}

	shown := len(alerts)
	if shown > maxEmbeds {
		shown = maxEmbeds - 1
	}
	embeds := make([]embed, 0, maxEmbeds)
	for i := range shown {
		embeds = append(embeds, d.embedFor(&alerts[i]))
	}
	if rest := len(alerts) - shown; rest > 0 {
		embeds = append(embeds, embed{
			Title:       fmt.Sprintf("... and %d more low-price alerts", rest),
			Color:       colorOrange,
			Description: "Check the products API for the full list.",
		})
	}

	return d.send(ctx, embeds)
}

func (d *DiscordNotifier) embedFor(alert *AlertPayload) embed {
	name := strings.TrimSpace(alert.Brand + " " + alert.ProductName)

	e := embed{
		Title: "Cannot compete: " + name,
		Color: colorOrange,
		Fields: []embedField{
			{Name: "Target", Value: alert.TargetDelivered, Inline: true},
			{Name: "Item", Value: alert.ItemPrice, Inline: true},
			{Name: "Shipping", Value: alert.ShippingPrice, Inline: true},
			{Name: "Total", Value: alert.Total, Inline: true},
			{Name: "Comps", Value: string(alert.CompsSource), Inline: true},
			{Name: "Confidence", Value: string(alert.Confidence), Inline: true},
		},
		Timestamp: d.now().UTC().Format(time.RFC3339),
	}
	if alert.Reason == ReasonSkipListing {
		e.Title = "Skip listing: " + name
		e.Color = colorRed
	}
	if len(alert.Warnings) > 0 {
		e.Description = strings.Join(alert.Warnings, ", ")
	}
	if alert.ProductID != "" {
		e.Footer = &embedFooter{Text: "product " + alert.ProductID}
	}
	return e
}

// send posts the message, retrying once when Discord asks for a short wait.
func (d *DiscordNotifier) send(ctx context.Context, embeds []embed) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(webhookMessage{Username: d.username, Embeds: embeds})
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	err = d.post(ctx, body)
	var rl *RateLimitedError
	if !errors.As(err, &rl) || rl.RetryAfter > maxRetryWait {
		return err
	}

	timer := time.NewTimer(rl.RetryAfter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting to retry discord webhook: %w", ctx.Err())
	case <-timer.C:
	}
	return d.post(ctx, body)
}

func (d *DiscordNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // body is diagnostic only

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitedError{RetryAfter: retryAfter(resp.Header, respBody)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}
	return nil
}

// retryAfter reads the wait from Discord's JSON body (fractional seconds),
// falling back to the Retry-After header.
func retryAfter(h http.Header, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}
	if secs, err := strconv.ParseFloat(h.Get("Retry-After"), 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}
