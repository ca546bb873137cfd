package ebay_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
)

// tokenServer issues numbered tokens ("tok-1", "tok-2", ...) and counts
// grants.
type tokenServer struct {
	*httptest.Server
	grants atomic.Int32
	ttl    int
}

func newTokenServer(t *testing.T, ttl int) *tokenServer {
	t.Helper()

	ts := &tokenServer{ttl: ttl}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "app" || pass != "cert" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"client authentication failed"}`))
			return
		}
		n := ts.grants.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d,"token_type":"Application Access Token"}`, n, ts.ttl)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestOAuthTokenProvider_Grant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "my-app", user)
		assert.Equal(t, "my-cert", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "scope-a scope-b", r.FormValue("scope"))

		_, _ = w.Write([]byte(`{"access_token":"granted","expires_in":7200}`))
	}))
	defer srv.Close()

	p := ebay.NewOAuthTokenProvider("my-app", "my-cert",
		ebay.WithTokenURL(srv.URL),
		ebay.WithScopes("scope-a", "scope-b"),
	)

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "granted", tok)
}

func TestOAuthTokenProvider_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		errContain string
	}{
		{
			name:       "bad credentials",
			status:     http.StatusUnauthorized,
			body:       `{"error":"invalid_client","error_description":"client authentication failed"}`,
			wantStatus: http.StatusUnauthorized,
			errContain: "invalid_client - client authentication failed",
		},
		{
			name:       "server error without body",
			status:     http.StatusInternalServerError,
			wantStatus: http.StatusInternalServerError,
			errContain: "status 500",
		},
		{name: "garbage body", status: http.StatusOK, body: "not json", errContain: "parsing token response"},
		{name: "no token in body", status: http.StatusOK, body: `{"expires_in":7200}`, errContain: "missing access_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(srv.URL)).
				Token(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)

			var tokErr *ebay.TokenError
			if tt.wantStatus != 0 {
				require.ErrorAs(t, err, &tokErr)
				assert.Equal(t, tt.wantStatus, tokErr.StatusCode)
			} else {
				assert.NotErrorAs(t, err, &tokErr)
			}
		})
	}
}

func TestOAuthTokenProvider_CachesUntilRefreshBuffer(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, 600)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}
	p := ebay.NewOAuthTokenProvider("app", "cert",
		ebay.WithTokenURL(ts.URL),
		ebay.WithNowFunc(clock.Now),
	)

	steps := []struct {
		at   time.Duration
		want string
	}{
		{at: 0, want: "tok-1"},
		{at: 5 * time.Minute, want: "tok-1"},
		// 600s lifetime minus the 60s buffer.
		{at: 539 * time.Second, want: "tok-1"},
		{at: 540 * time.Second, want: "tok-2"},
	}
	for _, s := range steps {
		clock.Set(now.Add(s.at))
		tok, err := p.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, s.want, tok, "at +%s", s.at)
	}
	assert.Equal(t, int32(2), ts.grants.Load())
}

func TestOAuthTokenProvider_Invalidate(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, 7200)
	p := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))

	first, err := p.Token(context.Background())
	require.NoError(t, err)

	p.Invalidate()

	second, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, int32(2), ts.grants.Load())
}

func TestOAuthTokenProvider_ConcurrentCallersShareGrant(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, 7200)
	p := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			tok, err := p.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok-1", tok)
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), ts.grants.Load())
}
