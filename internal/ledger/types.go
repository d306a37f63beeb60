// Package ledger persists evaluation history as one append-friendly
// JSON ledger per source document and merges ledgers into cross-source
// views at read time.
package ledger

import (
	"sort"
	"time"

	"github.com/docgrade/docgrade/internal/domain"
)

// RunHistoryEntry is a lightweight snapshot of one run's scores plus
// optional cost accounting. Entries are append-only; history is never
// edited, removed, or truncated.
type RunHistoryEntry struct {
	Timestamp          time.Time `json:"timestamp"`
	OverallScore       float64   `json:"overall_score"`
	SchemaCompliance   float64   `json:"schema_compliance"`
	StructuralAccuracy float64   `json:"structural_accuracy"`
	SemanticAccuracy   float64   `json:"semantic_accuracy"`
	ConfigAccuracy     float64   `json:"config_accuracy"`

	Cost         float64 `json:"cost,omitempty"`
	InputTokens  int     `json:"input_tokens,omitempty"`
	OutputTokens int     `json:"output_tokens,omitempty"`
}

// CachedModelResult holds the running statistics for one
// (source document, model) pair. Invariants: run_count equals
// len(run_history), and every total equals the sum of that component
// over run_history.
type CachedModelResult struct {
	ModelID  string `json:"model_id"`
	Provider string `json:"provider"`
	RunCount int    `json:"run_count"`

	TotalSchemaCompliance   float64 `json:"total_schema_compliance"`
	TotalStructuralAccuracy float64 `json:"total_structural_accuracy"`
	TotalSemanticAccuracy   float64 `json:"total_semantic_accuracy"`
	TotalConfigAccuracy     float64 `json:"total_config_accuracy"`
	TotalOverallScore       float64 `json:"total_overall_score"`

	TotalCost         float64 `json:"total_cost"`
	TotalInputTokens  int     `json:"total_input_tokens"`
	TotalOutputTokens int     `json:"total_output_tokens"`

	BestScore        float64    `json:"best_score"`
	BestRunTimestamp *time.Time `json:"best_run_timestamp"`

	LatestScore        float64    `json:"latest_score"`
	LatestRunTimestamp *time.Time `json:"latest_run_timestamp"`

	RunHistory []RunHistoryEntry `json:"run_history"`
}

// AddRun appends one run snapshot and updates every running total.
// Best tracks the maximum score ever observed; latest tracks the most
// recent timestamp regardless of score.
func (r *CachedModelResult) AddRun(entry RunHistoryEntry) {
	r.RunHistory = append(r.RunHistory, entry)
	r.RunCount = len(r.RunHistory)

	r.TotalSchemaCompliance += entry.SchemaCompliance
	r.TotalStructuralAccuracy += entry.StructuralAccuracy
	r.TotalSemanticAccuracy += entry.SemanticAccuracy
	r.TotalConfigAccuracy += entry.ConfigAccuracy
	r.TotalOverallScore += entry.OverallScore
	r.TotalCost += entry.Cost
	r.TotalInputTokens += entry.InputTokens
	r.TotalOutputTokens += entry.OutputTokens

	ts := entry.Timestamp
	if r.BestRunTimestamp == nil || entry.OverallScore > r.BestScore {
		r.BestScore = entry.OverallScore
		r.BestRunTimestamp = &ts
	}
	if r.LatestRunTimestamp == nil || !ts.Before(*r.LatestRunTimestamp) {
		r.LatestScore = entry.OverallScore
		r.LatestRunTimestamp = &ts
	}
}

// AverageOverall returns the mean overall score across all runs, or 0
// when no runs are recorded.
func (r *CachedModelResult) AverageOverall() float64 {
	if r.RunCount == 0 {
		return 0
	}
	return r.TotalOverallScore / float64(r.RunCount)
}

// Merge folds another result for the same model key into this one.
// Totals and counts add; best takes the max; latest takes the newer
// timestamp; histories concatenate in timestamp order.
func (r *CachedModelResult) Merge(other *CachedModelResult) {
	r.RunCount += other.RunCount
	r.TotalSchemaCompliance += other.TotalSchemaCompliance
	r.TotalStructuralAccuracy += other.TotalStructuralAccuracy
	r.TotalSemanticAccuracy += other.TotalSemanticAccuracy
	r.TotalConfigAccuracy += other.TotalConfigAccuracy
	r.TotalOverallScore += other.TotalOverallScore
	r.TotalCost += other.TotalCost
	r.TotalInputTokens += other.TotalInputTokens
	r.TotalOutputTokens += other.TotalOutputTokens

	if other.BestRunTimestamp != nil && (r.BestRunTimestamp == nil || other.BestScore > r.BestScore) {
		r.BestScore = other.BestScore
		r.BestRunTimestamp = other.BestRunTimestamp
	}
	if other.LatestRunTimestamp != nil &&
		(r.LatestRunTimestamp == nil || other.LatestRunTimestamp.After(*r.LatestRunTimestamp)) {
		r.LatestScore = other.LatestScore
		r.LatestRunTimestamp = other.LatestRunTimestamp
	}

	r.RunHistory = append(r.RunHistory, other.RunHistory...)
	sort.SliceStable(r.RunHistory, func(i, j int) bool {
		return r.RunHistory[i].Timestamp.Before(r.RunHistory[j].Timestamp)
	})
}

// Cache is the persisted ledger for one source document: its model
// statistics keyed by composite model key. Mutated only through the
// store's record operation; read by aggregation and presentation.
type Cache struct {
	SourceFile  string                                 `json:"source_file"`
	LastUpdated time.Time                              `json:"last_updated"`
	Models      map[domain.ModelKey]*CachedModelResult `json:"models"`
}

// NewCache creates an empty ledger for a source document.
func NewCache(sourceFile string) *Cache {
	return &Cache{
		SourceFile: sourceFile,
		Models:     make(map[domain.ModelKey]*CachedModelResult),
	}
}

// Record folds one evaluation result into the ledger, creating the
// model entry lazily on first use.
func (c *Cache) Record(result *domain.EvaluationResult) {
	entry := RunHistoryEntry{
		Timestamp:          result.Timestamp,
		OverallScore:       result.Scores.OverallScore,
		SchemaCompliance:   result.Scores.SchemaCompliance,
		StructuralAccuracy: result.Scores.StructuralAccuracy,
		SemanticAccuracy:   result.Scores.SemanticAccuracy,
		ConfigAccuracy:     result.Scores.ConfigAccuracy,
	}
	if result.Usage != nil {
		entry.Cost = result.Usage.Cost
		entry.InputTokens = result.Usage.InputTokens
		entry.OutputTokens = result.Usage.OutputTokens
	}

	model, ok := c.Models[result.Model]
	if !ok {
		model = &CachedModelResult{
			ModelID:  result.Model.ModelID,
			Provider: result.Model.Provider,
		}
		c.Models[result.Model] = model
	}
	model.AddRun(entry)
	c.LastUpdated = result.Timestamp
}
