package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/api/handlers"
	cacheMocks "github.com/donaldgifford/comp-pricer/internal/cache/mocks"
	storeMocks "github.com/donaldgifford/comp-pricer/internal/store/mocks"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Healthz(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		cacheErr   error
		withDB     bool
		withCache  bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies configured",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
		{
			name:       "store ping succeeds",
			withDB:     true,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","checks":{"database":"ok"}}`,
		},
		{
			name:       "store ping fails",
			withDB:     true,
			dbErr:      errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable","checks":{"database":"unreachable"}}`,
		},
		{
			name:       "cache outage does not fail readiness",
			withDB:     true,
			withCache:  true,
			cacheErr:   errors.New("redis down"),
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","checks":{"cache":"unreachable","database":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var db, cache handlers.Pinger
			if tt.withDB {
				ms := storeMocks.NewMockStore(t)
				ms.EXPECT().Ping(mock.Anything).Return(tt.dbErr).Once()
				db = ms
			}
			if tt.withCache {
				mc := cacheMocks.NewMockCache(t)
				mc.EXPECT().Ping(mock.Anything).Return(tt.cacheErr).Once()
				cache = mc
			}

			h := handlers.NewHealthHandler(db, cache)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Readyz(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
