package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/config"
	"shoppulse/internal/shared/testutil"
)

func TestRouter_Health(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	router := NewRouter(config.Default(), defaultFake(), logger, "test-version")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test-version", body["version"])
}

func TestRouter_Dashboard(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	router := NewRouter(config.Default(), defaultFake(), logger, "test-version")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?start=2018-01-01&end=2018-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRouter_Metrics(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	router := NewRouter(config.Default(), defaultFake(), logger, "test-version")

	// Generate one request so the counters exist, then scrape.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shoppulse_http_requests_total")
}

func TestRouter_NotFound(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	router := NewRouter(config.Default(), defaultFake(), logger, "test-version")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
