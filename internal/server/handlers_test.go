package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-router/internal/config"
	"session-router/internal/host"
	"session-router/internal/middleware"
	"session-router/internal/routing"
)

// panicProvider triggers the reporting-failure boundary
type panicProvider struct{}

func (panicProvider) RouterConfig() routing.RouterConfig {
	panic("provider blew up")
}

func newTestHandlers(t *testing.T, provider routing.ConfigProvider) *Handlers {
	t.Helper()
	router := middleware.New(provider, host.Capabilities{})
	require.NoError(t, router.Start())
	return NewHandlers(router, nil)
}

func get(t *testing.T, h *Handlers, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestGetStatus(t *testing.T) {
	provider := config.Static{Config: routing.RouterConfig{
		Routes:         []routing.IncomingRoute{{}, {}},
		OutgoingRoutes: []routing.OutgoingRoute{{}},
	}}
	h := newTestHandlers(t, provider)

	rec := get(t, h, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["enabled"])
	assert.Equal(t, float64(2), payload["incomingRules"])
	assert.Equal(t, float64(1), payload["outgoingRules"])
}

func TestGetRules(t *testing.T) {
	provider := config.Static{Config: routing.RouterConfig{
		Routes: []routing.IncomingRoute{
			{SourceSession: "a", TargetSessions: []string{"b", "c"}},
		},
	}}
	h := newTestHandlers(t, provider)

	rec := get(t, h, "/api/rules")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Incoming []struct {
			Summary string `json:"summary"`
		} `json:"incoming"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Incoming, 1)
	assert.Equal(t, "a -> b, c", payload.Incoming[0].Summary)
}

func TestGetStats(t *testing.T) {
	h := newTestHandlers(t, config.Static{})

	rec := get(t, h, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(0), payload["total"])
	assert.Contains(t, payload, "routeHits")
	assert.Contains(t, payload, "uptime")
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandlers(t, config.Static{})

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReportingFaultReturnsInternalErrorPayload(t *testing.T) {
	h := newTestHandlers(t, panicProvider{})

	rec := get(t, h, "/api/status")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
