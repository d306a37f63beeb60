package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgrade/docgrade/internal/domain"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightSchemaCompliance + WeightStructuralAccuracy +
		WeightSemanticAccuracy + WeightConfigAccuracy
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func fieldEval(matchType domain.MatchType, nameSim, configScore, overall float64) domain.FieldEvaluation {
	return domain.FieldEvaluation{
		MatchType:      matchType,
		NameSimilarity: nameSim,
		ConfigScore:    configScore,
		OverallScore:   overall,
	}
}

func TestSectionScore(t *testing.T) {
	tests := []struct {
		name   string
		fields []domain.FieldEvaluation
		want   float64
	}{
		{
			name: "all exact",
			fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchExact, 1, 1, 1),
				fieldEval(domain.MatchExact, 1, 1, 1),
			},
			want: 1.0,
		},
		{
			name: "missing field drags the mean down",
			fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchExact, 1, 1, 1),
				fieldEval(domain.MatchMissing, 0, 0, 0),
			},
			want: 0.5,
		},
		{
			name: "extra fields are excluded",
			fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchExact, 1, 1, 1),
				fieldEval(domain.MatchExtra, 0, 0, 0),
			},
			want: 1.0,
		},
		{
			name: "partial contributes its overall score",
			fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchPartial, 0.6, 0.5, 0.6),
				fieldEval(domain.MatchExact, 1, 1, 1),
			},
			want: 0.8,
		},
		{
			name:   "no ground-truth fields",
			fields: nil,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := domain.SectionEvaluation{Fields: tt.fields}
			assert.InDelta(t, tt.want, Section(&eval), 1e-9)
		})
	}
}

func TestApplyFillsEverySection(t *testing.T) {
	sections := []domain.SectionEvaluation{
		{Fields: []domain.FieldEvaluation{fieldEval(domain.MatchExact, 1, 1, 1)}},
		{Fields: []domain.FieldEvaluation{fieldEval(domain.MatchMissing, 0, 0, 0)}},
	}

	Apply(sections)

	assert.Equal(t, 1.0, sections[0].SectionScore)
	assert.Equal(t, 0.0, sections[1].SectionScore)
}

func TestAggregate(t *testing.T) {
	schema := domain.SchemaValidationResult{ComplianceScore: 0.9}
	sections := []domain.SectionEvaluation{
		{
			SourceFieldCount: 2,
			Fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchExact, 1.0, 1.0, 1.0),
				fieldEval(domain.MatchPartial, 0.6, 0.5, 0.55),
			},
		},
		{
			SourceFieldCount: 2,
			Fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchExact, 0.9, 0.8, 0.85),
				fieldEval(domain.MatchMissing, 0, 0, 0),
				fieldEval(domain.MatchExtra, 0, 0, 0),
			},
		},
	}

	scores := Aggregate(schema, sections)

	assert.InDelta(t, 0.9, scores.SchemaCompliance, 1e-9)
	assert.InDelta(t, 3.0/4.0, scores.StructuralAccuracy, 1e-9)
	assert.InDelta(t, (1.0+0.6+0.9)/3, scores.SemanticAccuracy, 1e-9)
	assert.InDelta(t, (1.0+0.5+0.8)/3, scores.ConfigAccuracy, 1e-9)

	want := WeightSchemaCompliance*scores.SchemaCompliance +
		WeightStructuralAccuracy*scores.StructuralAccuracy +
		WeightSemanticAccuracy*scores.SemanticAccuracy +
		WeightConfigAccuracy*scores.ConfigAccuracy
	assert.InDelta(t, want, scores.OverallScore, 1e-9)
}

func TestAggregateEmptyGroundTruth(t *testing.T) {
	scores := Aggregate(domain.SchemaValidationResult{ComplianceScore: 1.0}, nil)

	assert.Equal(t, 1.0, scores.StructuralAccuracy)
	assert.Zero(t, scores.SemanticAccuracy)
	assert.Zero(t, scores.ConfigAccuracy)
	want := WeightSchemaCompliance + WeightStructuralAccuracy
	assert.InDelta(t, want, scores.OverallScore, 1e-9)
}

func TestAggregateNothingMatched(t *testing.T) {
	sections := []domain.SectionEvaluation{
		{
			SourceFieldCount: 2,
			Fields: []domain.FieldEvaluation{
				fieldEval(domain.MatchMissing, 0, 0, 0),
				fieldEval(domain.MatchMissing, 0, 0, 0),
			},
		},
	}

	scores := Aggregate(domain.SchemaValidationResult{ComplianceScore: 0.5}, sections)

	assert.Zero(t, scores.StructuralAccuracy)
	assert.Zero(t, scores.SemanticAccuracy)
	assert.Zero(t, scores.ConfigAccuracy)
	assert.InDelta(t, WeightSchemaCompliance*0.5, scores.OverallScore, 1e-9)
}
