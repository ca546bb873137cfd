package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 2 << 20
)

// errNotFound marks a 404 from a feed: the product is unknown there.
var errNotFound = errors.New("not found")

// httpFeed is the shared transport for JSON comp feeds.
type httpFeed struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// Option configures an HTTP-backed source.
type Option func(*httpFeed)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *httpFeed) {
		f.client = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *httpFeed) {
		if d > 0 {
			f.client = &http.Client{Timeout: d}
		}
	}
}

// WithAPIKey sends key as the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(f *httpFeed) {
		f.apiKey = key
	}
}

func newHTTPFeed(endpoint string, opts []Option) httpFeed {
	f := httpFeed{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// getJSON issues GET endpoint?params and decodes the JSON body into out.
func (f *httpFeed) getJSON(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("X-API-Key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("feed error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
