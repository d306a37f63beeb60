package match

import (
	"context"

	"github.com/docgrade/docgrade/internal/domain"
)

// Judgment is an externally supplied semantic-similarity verdict for an
// assigned field pairing, typically produced by a language model
// outside this engine.
type Judgment struct {
	// Score replaces the deterministic name similarity for the pair.
	Score float64

	// Reasoning is free-text justification carried into the
	// field evaluation for reporting.
	Reasoning string
}

// Judge supplies semantic-similarity judgments for field pairings that
// the deterministic matcher has already assigned. Implementations live
// outside this engine; a failing judge degrades the pair to its
// deterministic similarity rather than failing the run.
type Judge interface {
	JudgeFieldSimilarity(ctx context.Context, source, candidate domain.Field) (Judgment, error)
}
