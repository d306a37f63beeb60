// Package server provides the read-only HTTP query API over the
// evaluation ledgers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/ledger"
)

// Server exposes ledgers, summaries, and change notifications over
// HTTP. It only ever reads ledgers; recording stays with the store's
// owner.
type Server struct {
	store      *ledger.Store
	aggregator *ledger.Aggregator
	registry   *ledger.Registry
	logger     *zap.Logger
	addr       string
	server     *http.Server
}

// NewServer creates a server over the given ledger components.
func NewServer(
	store *ledger.Store,
	aggregator *ledger.Aggregator,
	registry *ledger.Registry,
	addr string,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:      store,
		aggregator: aggregator,
		registry:   registry,
		logger:     logger,
		addr:       addr,
	}
}

// Router builds the chi router. Exposed separately so tests can drive
// handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/v1/ledgers", s.handleListLedgers)
	r.Get("/api/v1/ledgers/{source}", s.handleGetLedger)
	r.Get("/api/v1/summary", s.handleAggregateSummary)
	r.Get("/api/v1/events", s.handleEvents)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting query API", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
