package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/ledger"
)

type fixture struct {
	server   *Server
	store    *ledger.Store
	registry *ledger.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	registry := ledger.NewRegistry()
	store, err := ledger.NewStore(t.TempDir(), registry, logger)
	require.NoError(t, err)
	aggregator := ledger.NewAggregator(store, logger)

	return &fixture{
		server:   NewServer(store, aggregator, registry, "localhost:0", logger),
		store:    store,
		registry: registry,
	}
}

func (f *fixture) record(t *testing.T, source string, key domain.ModelKey, overall float64) {
	t.Helper()
	_, err := f.store.Record(&domain.EvaluationResult{
		SourceFile:    source,
		CandidateFile: "candidate.json",
		Model:         key,
		Scores: domain.AggregateScores{
			SchemaCompliance:   overall,
			StructuralAccuracy: overall,
			SemanticAccuracy:   overall,
			ConfigAccuracy:     overall,
			OverallScore:       overall,
		},
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListLedgers(t *testing.T) {
	f := newFixture(t)
	key := domain.NewModelKey("anthropic", "claude-sonnet-4")
	f.record(t, "alpha.pdf", key, 0.9)
	f.record(t, "beta.pdf", key, 0.7)

	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/ledgers")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ledgers []ledger.SourceSummary `json:"ledgers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Ledgers, 2)
	assert.Equal(t, "alpha.pdf", body.Ledgers[0].SourceFile)
	require.NotNil(t, body.Ledgers[0].BestModel)
	assert.Equal(t, 0.9, body.Ledgers[0].BestModel.BestScore)
}

func TestGetLedger(t *testing.T) {
	f := newFixture(t)
	key := domain.NewModelKey("anthropic", "claude-sonnet-4")
	f.record(t, "move_in.pdf", key, 0.85)

	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/ledgers/move_in")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cache ledger.Cache
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cache))
	assert.Equal(t, "move_in.pdf", cache.SourceFile)

	model := cache.Models[key]
	require.NotNil(t, model)
	assert.Equal(t, 1, model.RunCount)
	assert.Equal(t, 0.85, model.BestScore)
}

func TestGetLedgerNotFound(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/ledgers/never_recorded")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAggregateSummary(t *testing.T) {
	f := newFixture(t)
	key := domain.NewModelKey("anthropic", "claude-sonnet-4")
	f.record(t, "alpha.pdf", key, 0.9)
	f.record(t, "beta.pdf", key, 0.5)

	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Sources []string             `json:"sources"`
		Summary ledger.SourceSummary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Len(t, body.Sources, 2)
	assert.Equal(t, 2, body.Summary.TotalRuns)
	require.NotNil(t, body.Summary.BestModel)
	assert.InDelta(t, 0.7, body.Summary.BestModel.AverageScore, 1e-9)
}

func TestEventsStream(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Wait for the handler's subscription before notifying.
	require.Eventually(t, func() bool { return f.registry.Len() == 1 },
		time.Second, 10*time.Millisecond)

	f.registry.Notify("move_in")

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ledger_changed\n", event)

	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data: move_in\n", data)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
