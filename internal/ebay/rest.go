package ebay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBody caps how much of a response is read into memory.
const maxResponseBody = 4 << 20

// invalidator is implemented by token providers holding a cached token that
// can be dropped after eBay rejects it.
type invalidator interface {
	Invalidate()
}

// authorizedGet issues a bearer-token GET and returns the body of a 200
// response. A 401 drops the cached token and retries once, which covers
// tokens revoked before their advertised expiry.
func authorizedGet(
	ctx context.Context,
	hc *http.Client,
	tokens TokenProvider,
	target string,
	header http.Header,
) ([]byte, error) {
	body, err := getOnce(ctx, hc, tokens, target, header)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		inv, ok := tokens.(invalidator)
		if !ok {
			return nil, err
		}
		inv.Invalidate()
		return getOnce(ctx, hc, tokens, target, header)
	}
	return body, err
}

func getOnce(
	ctx context.Context,
	hc *http.Client,
	tokens TokenProvider,
	target string,
	header http.Header,
) ([]byte, error) {
	token, err := tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}
