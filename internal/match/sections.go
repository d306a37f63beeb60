package match

import (
	"context"

	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/similarity"
)

// AlignSections aligns candidate sections to ground-truth sections by
// name similarity before any field-level work happens, then delegates
// each aligned pair to field matching. Both inputs are flattened leaf
// sections in document order.
//
// Every ground-truth section yields one SectionEvaluation in original
// order; unaligned ground-truth sections surface as entirely missing.
// Unaligned candidate sections are returned by name as extra sections:
// retained for reporting, excluded from scoring.
func (m *Matcher) AlignSections(ctx context.Context, sources, candidates []domain.Section) ([]domain.SectionEvaluation, []string) {
	pairs := make([]candidatePair, 0, len(sources)*len(candidates))
	for i, src := range sources {
		for j, cand := range candidates {
			pairs = append(pairs, candidatePair{
				source:    i,
				candidate: j,
				sim:       similarity.String(src.Name, cand.Name),
			})
		}
	}

	assigned := assignGreedy(pairs, len(sources), len(candidates), m.opts.SectionThreshold)

	evaluations := make([]domain.SectionEvaluation, 0, len(sources))
	candidateUsed := make([]bool, len(candidates))

	for i := range sources {
		j := assigned[i]
		if j == -1 {
			evaluations = append(evaluations, m.missingSection(sources[i]))
			continue
		}
		candidateUsed[j] = true
		evaluations = append(evaluations, m.evaluateSectionPair(ctx, sources[i], candidates[j]))
	}

	var extras []string
	for j, cand := range candidates {
		if !candidateUsed[j] {
			extras = append(extras, cand.Name)
		}
	}

	return evaluations, extras
}

func (m *Matcher) evaluateSectionPair(ctx context.Context, src, cand domain.Section) domain.SectionEvaluation {
	fields := m.MatchFields(ctx, src.Fields, cand.Fields)

	eval := domain.SectionEvaluation{
		SourceSectionName:     src.Name,
		CandidateSectionName:  cand.Name,
		SectionNameSimilarity: similarity.String(src.Name, cand.Name),
		SourceFieldCount:      len(src.Fields),
		CandidateFieldCount:   len(cand.Fields),
		FieldCountMatch:       len(src.Fields) == len(cand.Fields),
		Fields:                fields,
	}

	for _, f := range fields {
		switch f.MatchType {
		case domain.MatchExact, domain.MatchPartial:
			eval.MatchedFields++
		case domain.MatchMissing:
			eval.MissingFields++
		case domain.MatchExtra:
			eval.ExtraFields++
		}
	}

	return eval
}

// missingSection builds the evaluation for a ground-truth section with
// no candidate counterpart: every field is missing.
func (m *Matcher) missingSection(src domain.Section) domain.SectionEvaluation {
	fields := make([]domain.FieldEvaluation, 0, len(src.Fields))
	for _, f := range src.Fields {
		fields = append(fields, missingEvaluation(f))
	}
	return domain.SectionEvaluation{
		SourceSectionName: src.Name,
		SourceFieldCount:  len(src.Fields),
		MissingFields:     len(src.Fields),
		Fields:            fields,
	}
}
