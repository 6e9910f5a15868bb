package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *BaseServer {
	t.Helper()
	srv, err := New(&HTTPServerConfig{
		ListenAddr:    "127.0.0.1:0",
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		DrainDuration: time.Millisecond,
	})
	require.NoError(t, err)
	return srv
}

func get(srv *BaseServer, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusOK, get(srv, "/livez").Code)
	require.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}

func TestDrainUndrain(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusOK, get(srv, "/drain").Code)
	require.Equal(t, http.StatusServiceUnavailable, get(srv, "/readyz").Code)

	// Draining twice reports the current state without flipping it.
	rec := get(srv, "/drain")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "already draining")

	require.Equal(t, http.StatusOK, get(srv, "/undrain").Code)
	require.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}
