package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgrade/docgrade/internal/domain"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultOptions(), nil, nil)
	require.NoError(t, err)
	return m
}

func ratedField(id int, name string, rating domain.RatingType, options ...string) domain.Field {
	return domain.Field{ID: id, Name: name, RatingType: rating, Options: options}
}

func TestMatchFieldsIdenticalSection(t *testing.T) {
	// Identical ground truth and candidate: every field matches exactly.
	sources := []domain.Field{
		ratedField(1, "Name", domain.RatingTypeCheckbox),
		ratedField(2, "Condition", domain.RatingTypeRadio, "Good", "Fair", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Name", domain.RatingTypeCheckbox),
		ratedField(12, "Condition", domain.RatingTypeRadio, "Good", "Fair", "Poor"),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 2)
	for _, e := range evals {
		assert.Equal(t, domain.MatchExact, e.MatchType)
		assert.Equal(t, 1.0, e.NameSimilarity)
		assert.Equal(t, 1.0, e.OptionsSimilarity)
		assert.True(t, e.RatingTypeMatch)
		assert.InDelta(t, 1.0, e.OverallScore, 1e-9)
		require.NotNil(t, e.CandidateFieldID)
	}
	assert.Equal(t, 1, evals[0].SourceFieldID)
	assert.Equal(t, 11, *evals[0].CandidateFieldID)
}

func TestMatchFieldsMissing(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Overall Condition", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(2, "Cleanliness", domain.RatingTypeRadio, "Clean", "Dirty"),
	}
	candidates := []domain.Field{
		ratedField(21, "Cleanliness", domain.RatingTypeRadio, "Clean", "Dirty"),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 2)
	missing := evals[0]
	assert.Equal(t, domain.MatchMissing, missing.MatchType)
	assert.Equal(t, 1, missing.SourceFieldID)
	assert.Nil(t, missing.CandidateFieldID)
	assert.Zero(t, missing.OverallScore)

	assert.Equal(t, domain.MatchExact, evals[1].MatchType)
}

func TestMatchFieldsExtra(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Condition", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(31, "Condition", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(32, "Notes", domain.RatingTypeCheckbox),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 2)
	assert.Equal(t, domain.MatchExact, evals[0].MatchType)

	extra := evals[1]
	assert.Equal(t, domain.MatchExtra, extra.MatchType)
	require.NotNil(t, extra.CandidateFieldID)
	assert.Equal(t, 32, *extra.CandidateFieldID)
	assert.Equal(t, "Notes", extra.CandidateName)
}

func TestMatchFieldsOutcomesPartitionSlots(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Walls", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(2, "Ceiling", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(3, "Floor", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Walls", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(12, "Smoke Detector", domain.RatingTypeCheckbox),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	// Every ground-truth field accounted for exactly once, every
	// unassigned candidate exactly once.
	bySource := map[int]int{}
	byCandidate := map[int]int{}
	for _, e := range evals {
		assert.Contains(t, []domain.MatchType{
			domain.MatchExact, domain.MatchPartial, domain.MatchMissing, domain.MatchExtra,
		}, e.MatchType)
		if e.MatchType != domain.MatchExtra {
			bySource[e.SourceFieldID]++
		}
		if e.CandidateFieldID != nil {
			byCandidate[*e.CandidateFieldID]++
		}
	}
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, bySource)
	assert.Equal(t, map[int]int{11: 1, 12: 1}, byCandidate)
}

func TestMatchFieldsRatingMismatchBlocksExact(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Condition", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Condition", domain.RatingTypeSelect, "Good", "Poor"),
	}

	m := newTestMatcher(t)
	evals := m.MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 1)
	e := evals[0]
	assert.Equal(t, domain.MatchPartial, e.MatchType)
	assert.False(t, e.RatingTypeMatch)

	// Overall score carries the rating penalty: combined similarity is
	// 1.0, scaled by the penalty, folded with a perfect config score.
	opts := m.Options()
	want := (1-opts.ConfigWeight)*opts.RatingMismatchPenalty + opts.ConfigWeight*1.0
	assert.InDelta(t, want, e.OverallScore, 1e-9)
}

func TestMatchFieldsGreedyPrefersBestPair(t *testing.T) {
	// "Kitchen Sink" must pair with the closer candidate even though a
	// weaker candidate appears first.
	sources := []domain.Field{
		ratedField(1, "Kitchen Sink", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Kitchen Window", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(12, "Kitchen Sink", domain.RatingTypeRadio, "Good", "Poor"),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 2)
	require.NotNil(t, evals[0].CandidateFieldID)
	assert.Equal(t, 12, *evals[0].CandidateFieldID)
	assert.Equal(t, domain.MatchExtra, evals[1].MatchType)
}

func TestMatchFieldsDeterministicTieBreak(t *testing.T) {
	// Two identical candidates: the earlier candidate index wins, and
	// repeated runs agree.
	sources := []domain.Field{
		ratedField(1, "Door", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Door", domain.RatingTypeRadio, "Good", "Poor"),
		ratedField(12, "Door", domain.RatingTypeRadio, "Good", "Poor"),
	}

	m := newTestMatcher(t)
	for range 5 {
		evals := m.MatchFields(context.Background(), sources, candidates)
		require.NotNil(t, evals[0].CandidateFieldID)
		assert.Equal(t, 11, *evals[0].CandidateFieldID)
	}
}

func TestMatchFieldsBelowPartialThreshold(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Refrigerator", domain.RatingTypeRadio, "Working", "Broken"),
	}
	candidates := []domain.Field{
		ratedField(11, "Lawn", domain.RatingTypeCheckbox, "Mowed"),
	}

	evals := newTestMatcher(t).MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 2)
	assert.Equal(t, domain.MatchMissing, evals[0].MatchType)
	assert.Equal(t, domain.MatchExtra, evals[1].MatchType)
}

// staticJudge returns a fixed judgment for every pair.
type staticJudge struct {
	score     float64
	reasoning string
	err       error
}

func (j staticJudge) JudgeFieldSimilarity(context.Context, domain.Field, domain.Field) (Judgment, error) {
	if j.err != nil {
		return Judgment{}, j.err
	}
	return Judgment{Score: j.score, Reasoning: j.reasoning}, nil
}

func TestMatchFieldsSemanticJudgeOverride(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Overall Condition", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "General State", domain.RatingTypeRadio, "Good", "Poor"),
	}

	judge := staticJudge{score: 0.95, reasoning: "same concept, different wording"}
	m, err := NewMatcher(DefaultOptions(), judge, nil)
	require.NoError(t, err)

	// The pair is assigned deterministically; the judgment then overrides
	// the levenshtein-based name similarity and upgrades the match.
	evals := m.MatchFields(context.Background(), sources, candidates)
	require.Len(t, evals, 1)
	assert.Equal(t, 0.95, evals[0].NameSimilarity)
	assert.Equal(t, "same concept, different wording", evals[0].Reasoning)
	assert.Equal(t, domain.MatchExact, evals[0].MatchType)
}

func TestMatchFieldsJudgeFailureFallsBack(t *testing.T) {
	sources := []domain.Field{
		ratedField(1, "Condition", domain.RatingTypeRadio, "Good", "Poor"),
	}
	candidates := []domain.Field{
		ratedField(11, "Condition", domain.RatingTypeRadio, "Good", "Poor"),
	}

	m, err := NewMatcher(DefaultOptions(), staticJudge{err: errors.New("judge unavailable")}, nil)
	require.NoError(t, err)

	evals := m.MatchFields(context.Background(), sources, candidates)

	require.Len(t, evals, 1)
	assert.Equal(t, 1.0, evals[0].NameSimilarity)
	assert.Equal(t, domain.MatchExact, evals[0].MatchType)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Options) {}},
		{name: "exact below partial", mutate: func(o *Options) { o.ExactThreshold = 0.2 }, wantErr: true},
		{name: "weights must sum to one", mutate: func(o *Options) { o.NameWeight = 0.9 }, wantErr: true},
		{name: "threshold out of range", mutate: func(o *Options) { o.SectionThreshold = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
