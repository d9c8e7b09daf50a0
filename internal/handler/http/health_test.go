package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Healthy(t *testing.T) {
	router, registry, store := testRouter(t)
	addBreaker(t, registry, "NWS Weather")
	store.Put("NWS Weather", 4, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Version)
	require.Contains(t, body.Checks, "NWS Weather")
	assert.Equal(t, "healthy", body.Checks["NWS Weather"].Status)
	assert.Equal(t, 4, int(body.Checks["NWS Weather"].Details["snapshot_items"].(float64)))
}

func TestHealthHandler_DegradedWhenBreakerOpen(t *testing.T) {
	router, registry, _ := testRouter(t)
	cb := addBreaker(t, registry, "OpenSky Aircraft")
	addBreaker(t, registry, "NWS Weather")

	fail := func() (any, error) { return nil, errors.New("boom") }
	cb.Execute(fail)
	cb.Execute(fail)
	require.True(t, cb.IsOpen())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Degraded integrations never fail the service health check.
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "degraded", body.Checks["OpenSky Aircraft"].Status)
	assert.Equal(t, "healthy", body.Checks["NWS Weather"].Status)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
