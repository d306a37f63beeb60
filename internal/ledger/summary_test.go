package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgrade/docgrade/internal/domain"
)

func TestSummarizeRankings(t *testing.T) {
	sonnet := domain.NewModelKey("anthropic", "claude-sonnet-4")
	gpt := domain.NewModelKey("openai", "gpt-5")
	gemini := domain.NewModelKey("google", "gemini-2.5-pro")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cache := NewCache("move_in.pdf")
	// gpt peaks highest but averages poorly; gemini is steady.
	cache.Record(resultWithScore("move_in.pdf", gpt, 0.95, base))
	cache.Record(resultWithScore("move_in.pdf", gpt, 0.30, base.Add(time.Hour)))
	cache.Record(resultWithScore("move_in.pdf", gemini, 0.80, base.Add(2*time.Hour)))
	cache.Record(resultWithScore("move_in.pdf", gemini, 0.84, base.Add(3*time.Hour)))
	cache.Record(resultWithScore("move_in.pdf", sonnet, 0.60, base.Add(4*time.Hour)))

	summary := Summarize(cache)

	assert.Equal(t, "move_in.pdf", summary.SourceFile)
	assert.Equal(t, 3, summary.ModelCount)
	assert.Equal(t, 5, summary.TotalRuns)

	require.Len(t, summary.Rankings, 3)
	assert.Equal(t, gpt, summary.Rankings[0].Model)
	assert.Equal(t, gemini, summary.Rankings[1].Model)
	assert.Equal(t, sonnet, summary.Rankings[2].Model)

	require.NotNil(t, summary.BestModel)
	assert.Equal(t, gpt, summary.BestModel.Model)

	require.NotNil(t, summary.BestAverage)
	assert.Equal(t, gemini, summary.BestAverage.Model)
	assert.InDelta(t, 0.82, summary.BestAverage.AverageScore, 1e-9)
}

func TestSummarizeStableTieBreak(t *testing.T) {
	a := domain.NewModelKey("anthropic", "claude-sonnet-4")
	b := domain.NewModelKey("openai", "gpt-5")
	ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cache := NewCache("move_in.pdf")
	cache.Record(resultWithScore("move_in.pdf", a, 0.7, ts))
	cache.Record(resultWithScore("move_in.pdf", b, 0.7, ts.Add(time.Hour)))

	for range 5 {
		summary := Summarize(cache)
		require.Len(t, summary.Rankings, 2)
		assert.Equal(t, a, summary.Rankings[0].Model)
		assert.Equal(t, b, summary.Rankings[1].Model)
	}
}

func TestSummarizeEmptyCache(t *testing.T) {
	summary := Summarize(NewCache("fresh.pdf"))

	assert.Zero(t, summary.ModelCount)
	assert.Nil(t, summary.BestModel)
	assert.Nil(t, summary.BestAverage)
	assert.Empty(t, summary.Rankings)
}

func TestSummarizeViewAcrossSources(t *testing.T) {
	key := domain.NewModelKey("anthropic", "claude-sonnet-4")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	alpha := NewCache("alpha.pdf")
	alpha.Record(resultWithScore("alpha.pdf", key, 0.9, base))
	beta := NewCache("beta.pdf")
	beta.Record(resultWithScore("beta.pdf", key, 0.5, base.Add(time.Hour)))

	summary := SummarizeView(AggregateCaches(alpha, beta))

	assert.Empty(t, summary.SourceFile)
	assert.Equal(t, 2, summary.TotalRuns)
	require.NotNil(t, summary.BestModel)
	assert.Equal(t, 0.9, summary.BestModel.BestScore)
	assert.InDelta(t, 0.7, summary.BestModel.AverageScore, 1e-9)
}
