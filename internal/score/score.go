// Package score reduces field- and section-level outcomes into a fixed
// set of sub-scores and one weighted overall score.
package score

import (
	"github.com/docgrade/docgrade/internal/domain"
)

// Fixed document-level weighting policy. The four weights sum to 1.0;
// changing them changes the meaning of every persisted overall score,
// so they are constants rather than configuration.
const (
	WeightSchemaCompliance   = 0.15
	WeightStructuralAccuracy = 0.20
	WeightSemanticAccuracy   = 0.30
	WeightConfigAccuracy     = 0.35
)

// Section computes a section's score as the mean field overall score
// over its ground-truth fields. Missing fields count as zero; extra
// fields do not lower the score and are reported separately as a
// precision signal. A section with no ground-truth fields scores zero.
func Section(eval *domain.SectionEvaluation) float64 {
	var sum float64
	count := 0
	for _, f := range eval.Fields {
		switch f.MatchType {
		case domain.MatchExact, domain.MatchPartial:
			sum += f.OverallScore
			count++
		case domain.MatchMissing:
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Apply fills in the section score of every evaluation in place.
func Apply(sections []domain.SectionEvaluation) {
	for i := range sections {
		sections[i].SectionScore = Section(&sections[i])
	}
}

// Aggregate combines schema validation and section evaluations into the
// document-level sub-scores and their weighted overall score.
//
// structural_accuracy is matched fields over ground-truth fields;
// semantic_accuracy is the mean name similarity over matched fields
// (the name similarity already carries any external semantic judgment);
// config_accuracy is the mean config score over matched fields.
func Aggregate(schema domain.SchemaValidationResult, sections []domain.SectionEvaluation) domain.AggregateScores {
	totalSourceFields := 0
	matchedFields := 0
	var semanticSum, configSum float64

	for _, s := range sections {
		totalSourceFields += s.SourceFieldCount
		for _, f := range s.Fields {
			if f.MatchType == domain.MatchExact || f.MatchType == domain.MatchPartial {
				matchedFields++
				semanticSum += f.NameSimilarity
				configSum += f.ConfigScore
			}
		}
	}

	// An empty ground truth leaves nothing to extract; treat structure
	// as fully recovered rather than dividing by zero.
	structural := 1.0
	if totalSourceFields > 0 {
		structural = float64(matchedFields) / float64(totalSourceFields)
	}

	var semantic, config float64
	if matchedFields > 0 {
		semantic = semanticSum / float64(matchedFields)
		config = configSum / float64(matchedFields)
	}

	scores := domain.AggregateScores{
		SchemaCompliance:   schema.ComplianceScore,
		StructuralAccuracy: structural,
		SemanticAccuracy:   semantic,
		ConfigAccuracy:     config,
	}
	scores.OverallScore = WeightSchemaCompliance*scores.SchemaCompliance +
		WeightStructuralAccuracy*scores.StructuralAccuracy +
		WeightSemanticAccuracy*scores.SemanticAccuracy +
		WeightConfigAccuracy*scores.ConfigAccuracy
	return scores
}
