package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"firefront/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	geo := game.NewGeometry([]game.MapDef{{
		Name:  "plains",
		Arena: []game.Rect{{X: 3, Y: 3, W: 10, H: 10}},
	}})
	hub := game.NewHub(nil)
	world := game.NewWorld(geo, hub, nil)
	return New(":0", world, nil)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestDebugVarsExposed(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bullets_spawned")
	assert.Contains(t, rec.Body.String(), "arena_ticks")
}

func TestWebSocketEndpointRequiresUpgrade(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "a plain GET cannot upgrade")
}
