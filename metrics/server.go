package metrics

import (
	"context"
	"net/http"
	"time"
)

// MetricsServer serves the prometheus registry on a dedicated listener, kept
// off the API port so that scrapes never compete with API traffic.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server bound to addr. An empty addr returns a
// disabled server whose ListenAndServe is a no-op.
func New(addr string) (*MetricsServer, error) {
	if addr == "" {
		return &MetricsServer{}, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &MetricsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the registry until Shutdown.
func (s *MetricsServer) ListenAndServe() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
