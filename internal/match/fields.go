package match

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/similarity"
)

// Matcher aligns candidate structure to ground-truth structure and
// classifies every pairing. It is stateless apart from its options and
// safe for concurrent use.
type Matcher struct {
	opts   Options
	judge  Judge
	logger *zap.Logger
}

// NewMatcher creates a Matcher with the given options. The judge is
// optional; when nil, similarity is fully deterministic.
func NewMatcher(opts Options, judge Judge, logger *zap.Logger) (*Matcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{opts: opts, judge: judge, logger: logger}, nil
}

// Options returns the matcher's policy constants.
func (m *Matcher) Options() Options { return m.opts }

// candidatePair is one cell of the similarity matrix during greedy
// assignment.
type candidatePair struct {
	source    int
	candidate int
	sim       float64
}

// assignGreedy performs greedy maximum-weight assignment over a
// pre-computed pair list: the highest-similarity unassigned pair wins
// each round, with ties broken by source order, then candidate order.
// Pairs below the threshold are never assigned. Returns
// source-index -> candidate-index (or -1).
//
// Greedy assignment approximates optimal bipartite matching; the
// deterministic tie-break keeps borderline classifications reproducible
// across runs.
func assignGreedy(pairs []candidatePair, numSources, numCandidates int, threshold float64) []int {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].sim != pairs[j].sim {
			return pairs[i].sim > pairs[j].sim
		}
		if pairs[i].source != pairs[j].source {
			return pairs[i].source < pairs[j].source
		}
		return pairs[i].candidate < pairs[j].candidate
	})

	assigned := make([]int, numSources)
	for i := range assigned {
		assigned[i] = -1
	}
	candidateTaken := make([]bool, numCandidates)

	for _, p := range pairs {
		if p.sim < threshold {
			break
		}
		if assigned[p.source] != -1 || candidateTaken[p.candidate] {
			continue
		}
		assigned[p.source] = p.candidate
		candidateTaken[p.candidate] = true
	}
	return assigned
}

// MatchFields aligns candidate fields to ground-truth fields within one
// aligned section pair and produces one FieldEvaluation per outcome
// slot: every ground-truth field yields exactly one evaluation (exact,
// partial, or missing, in ground-truth order) and every unassigned
// candidate field yields one extra evaluation (in candidate order).
func (m *Matcher) MatchFields(ctx context.Context, sources, candidates []domain.Field) []domain.FieldEvaluation {
	pairs := make([]candidatePair, 0, len(sources)*len(candidates))
	for i, src := range sources {
		for j, cand := range candidates {
			combined := m.opts.NameWeight*similarity.String(src.Name, cand.Name) +
				m.opts.OptionsWeight*similarity.OptionSet(src.Options, cand.Options)
			pairs = append(pairs, candidatePair{source: i, candidate: j, sim: combined})
		}
	}

	assigned := assignGreedy(pairs, len(sources), len(candidates), m.opts.PartialThreshold)

	evaluations := make([]domain.FieldEvaluation, 0, len(sources))
	candidateUsed := make([]bool, len(candidates))

	for i, src := range sources {
		j := assigned[i]
		if j == -1 {
			evaluations = append(evaluations, missingEvaluation(src))
			continue
		}
		candidateUsed[j] = true
		evaluations = append(evaluations, m.evaluatePair(ctx, src, candidates[j]))
	}

	for j, cand := range candidates {
		if !candidateUsed[j] {
			evaluations = append(evaluations, extraEvaluation(cand))
		}
	}

	return evaluations
}

// evaluatePair scores one assigned (ground-truth, candidate) pairing.
func (m *Matcher) evaluatePair(ctx context.Context, src, cand domain.Field) domain.FieldEvaluation {
	nameSim := similarity.String(src.Name, cand.Name)
	reasoning := ""

	if m.judge != nil {
		judgment, err := m.judge.JudgeFieldSimilarity(ctx, src, cand)
		if err != nil {
			m.logger.Warn("semantic judge failed, keeping deterministic similarity",
				zap.String("source_field", src.Name),
				zap.String("candidate_field", cand.Name),
				zap.Error(err))
		} else {
			nameSim = clamp01(judgment.Score)
			reasoning = judgment.Reasoning
		}
	}

	optionsSim := similarity.OptionSet(src.Options, cand.Options)
	combined := m.opts.NameWeight*nameSim + m.opts.OptionsWeight*optionsSim
	ratingMatch := src.RatingType == cand.RatingType

	matchType := domain.MatchPartial
	if combined >= m.opts.ExactThreshold && ratingMatch {
		matchType = domain.MatchExact
	}

	scaled := combined
	if !ratingMatch {
		scaled *= m.opts.RatingMismatchPenalty
	}

	eval := domain.FieldEvaluation{
		SourceFieldID:     src.ID,
		CandidateFieldID:  intPtr(cand.ID),
		SourceName:        src.Name,
		CandidateName:     cand.Name,
		MatchType:         matchType,
		NameSimilarity:    nameSim,
		OptionsSimilarity: optionsSim,
		RatingTypeMatch:   ratingMatch,
		Reasoning:         reasoning,
		OverallScore:      clamp01(scaled),
	}

	if m.opts.CompareConfig {
		comparison, configScore := CompareConfig(src.Config, cand.Config)
		eval.ConfigComparison = &comparison
		eval.ConfigScore = configScore
		eval.OverallScore = clamp01((1-m.opts.ConfigWeight)*scaled + m.opts.ConfigWeight*configScore)
	}

	return eval
}

func missingEvaluation(src domain.Field) domain.FieldEvaluation {
	return domain.FieldEvaluation{
		SourceFieldID:    src.ID,
		CandidateFieldID: nil,
		SourceName:       src.Name,
		MatchType:        domain.MatchMissing,
	}
}

func extraEvaluation(cand domain.Field) domain.FieldEvaluation {
	return domain.FieldEvaluation{
		CandidateFieldID: intPtr(cand.ID),
		CandidateName:    cand.Name,
		MatchType:        domain.MatchExtra,
	}
}

func intPtr(v int) *int { return &v }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
