package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/ledger"
)

// handleListLedgers returns one summary per source document ledger.
func (s *Server) handleListLedgers(w http.ResponseWriter, r *http.Request) {
	paths, err := s.store.List()
	if err != nil {
		s.logger.Error("list ledgers failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]ledger.SourceSummary, 0, len(paths))
	for _, path := range paths {
		cache, err := ledger.LoadPath(path)
		if err != nil {
			s.logger.Warn("skipping unreadable ledger", zap.String("path", path), zap.Error(err))
			continue
		}
		summaries = append(summaries, ledger.Summarize(cache))
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"ledgers": summaries})
}

// handleGetLedger returns the full ledger for one source document.
func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")

	path := s.store.Path(source)
	if _, err := os.Stat(path); err != nil {
		s.respondError(w, http.StatusNotFound, "ledger not found")
		return
	}

	cache, err := ledger.LoadPath(path)
	if err != nil {
		s.logger.Error("load ledger failed", zap.String("source", source), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, cache)
}

// handleAggregateSummary merges every ledger into one cross-source
// ranking.
func (s *Server) handleAggregateSummary(w http.ResponseWriter, r *http.Request) {
	view, err := s.aggregator.Aggregate(r.Context())
	if err != nil {
		s.logger.Error("aggregate failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"sources": view.Sources,
		"summary": ledger.SummarizeView(view),
	})
}

// handleEvents streams ledger change notifications as server-sent
// events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub := s.registry.Subscribe()
	defer s.registry.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case source, open := <-sub.C:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: ledger_changed\ndata: %s\n\n", source)
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
