package ledger

import (
	"sort"

	"github.com/docgrade/docgrade/internal/domain"
)

// ModelRanking is one model's position in a ranked summary.
type ModelRanking struct {
	Model        domain.ModelKey `json:"model"`
	RunCount     int             `json:"run_count"`
	BestScore    float64         `json:"best_score"`
	AverageScore float64         `json:"average_score"`
	LatestScore  float64         `json:"latest_score"`
	TotalCost    float64         `json:"total_cost"`
}

// SourceSummary condenses one source document's ledger: its best and
// average model plus the full ranking.
type SourceSummary struct {
	SourceFile  string         `json:"source_file"`
	ModelCount  int            `json:"model_count"`
	TotalRuns   int            `json:"total_runs"`
	TotalCost   float64        `json:"total_cost"`
	BestModel   *ModelRanking  `json:"best_model,omitempty"`
	BestAverage *ModelRanking  `json:"best_average,omitempty"`
	Rankings    []ModelRanking `json:"rankings"`
}

// Summarize ranks a ledger's models by best score descending, breaking
// ties by average score, then run count, then model key for a stable
// order.
func Summarize(cache *Cache) SourceSummary {
	summary := SourceSummary{SourceFile: cache.SourceFile}

	for key, result := range cache.Models {
		summary.Rankings = append(summary.Rankings, ModelRanking{
			Model:        key,
			RunCount:     result.RunCount,
			BestScore:    result.BestScore,
			AverageScore: result.AverageOverall(),
			LatestScore:  result.LatestScore,
			TotalCost:    result.TotalCost,
		})
		summary.TotalRuns += result.RunCount
		summary.TotalCost += result.TotalCost
	}
	summary.ModelCount = len(summary.Rankings)

	sort.Slice(summary.Rankings, func(i, j int) bool {
		a, b := summary.Rankings[i], summary.Rankings[j]
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		if a.RunCount != b.RunCount {
			return a.RunCount > b.RunCount
		}
		return a.Model.String() < b.Model.String()
	})

	if len(summary.Rankings) > 0 {
		summary.BestModel = &summary.Rankings[0]

		bestAvg := 0
		for i := 1; i < len(summary.Rankings); i++ {
			if summary.Rankings[i].AverageScore > summary.Rankings[bestAvg].AverageScore {
				bestAvg = i
			}
		}
		summary.BestAverage = &summary.Rankings[bestAvg]
	}

	return summary
}

// SummarizeView ranks an aggregated cross-source view the same way a
// single ledger is ranked.
func SummarizeView(view *AggregatedView) SourceSummary {
	cache := &Cache{Models: view.Models}
	summary := Summarize(cache)
	summary.SourceFile = ""
	return summary
}
