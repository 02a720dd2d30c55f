package instrumentation

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultMetricsAddr is the default address for the metrics server.
	DefaultMetricsAddr = ":9090"

	defaultMetricsReadTimeout  = 10 * time.Second
	defaultMetricsWriteTimeout = 10 * time.Second
	defaultMetricsIdleTimeout  = 60 * time.Second
)

// MetricsServer serves Prometheus metrics on a dedicated port during
// watch mode. The OpenTelemetry prometheus exporter registers metrics to
// the global Prometheus registry, which promhttp.Handler() exposes.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
}

// NewMetricsServer creates a metrics server listening on addr.
func NewMetricsServer(addr string) *MetricsServer {
	if addr == "" {
		addr = DefaultMetricsAddr
	}
	return &MetricsServer{addr: addr}
}

// Start starts the metrics server in a blocking manner. Call in a
// goroutine for non-blocking operation.
func (s *MetricsServer) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: defaultMetricsReadTimeout,
		WriteTimeout:      defaultMetricsWriteTimeout,
		IdleTimeout:       defaultMetricsIdleTimeout,
	}

	slog.Info("starting metrics server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down metrics server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured address for the metrics server.
func (s *MetricsServer) Addr() string {
	return s.addr
}
