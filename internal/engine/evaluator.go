// Package engine runs the full evaluation pipeline: precondition
// checks, schema validation, section alignment, field matching, and
// scoring, producing one immutable EvaluationResult per run.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/match"
	"github.com/docgrade/docgrade/internal/schema"
	"github.com/docgrade/docgrade/internal/score"
)

// SemanticJudge supplies externally-computed similarity judgments for
// assigned field pairs. The adapter that talks to a language model
// lives outside this repository.
type SemanticJudge = match.Judge

// Config assembles an Evaluator. Everything except Options is
// optional.
type Config struct {
	Options match.Options
	Judge   SemanticJudge
	Pricing *Pricing
	Metrics *Metrics
	Logger  *zap.Logger
}

// Evaluator compares candidate documents against ground truth. It is
// stateless between runs and safe for concurrent use.
type Evaluator struct {
	validator *schema.Validator
	matcher   *match.Matcher
	pricing   *Pricing
	metrics   *Metrics
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewEvaluator creates an Evaluator, validating the matching options.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	matcher, err := match.NewMatcher(cfg.Options, cfg.Judge, logger)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Evaluator{
		validator: schema.NewValidator(logger),
		matcher:   matcher,
		pricing:   cfg.Pricing,
		metrics:   cfg.Metrics,
		tracer:    otel.Tracer("docgrade-evaluator"),
		logger:    logger,
	}, nil
}

// Input names one evaluation run: the two documents being compared and
// the identity of the model that produced the candidate.
type Input struct {
	SourceFile    string
	CandidateFile string
	Truth         *domain.Document
	Candidate     *domain.Document

	// RawCandidate optionally carries the candidate's raw JSON bytes.
	// When present, the wire-shape contract check runs over them and its
	// violations participate in the compliance score.
	RawCandidate []byte

	Model domain.ModelKey
	Usage *domain.Usage
}

// Evaluate runs the pipeline and returns one immutable result. A
// malformed document is a fatal per-run error; everything downstream of
// the precondition check degrades to scores rather than errors.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (*domain.EvaluationResult, error) {
	ctx, span := e.tracer.Start(ctx, "Evaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("source_file", in.SourceFile),
			attribute.String("model", in.Model.String()),
		))
	defer span.End()

	started := time.Now()

	if err := in.Truth.Validate(); err != nil {
		e.metrics.observeFailure(in.Model.Provider, in.Model.ModelID)
		return nil, fmt.Errorf("engine: ground truth document: %w", err)
	}
	if err := in.Candidate.Validate(); err != nil {
		e.metrics.observeFailure(in.Model.Provider, in.Model.ModelID)
		return nil, fmt.Errorf("engine: candidate document: %w", err)
	}
	if in.Model.IsZero() {
		e.metrics.observeFailure(in.Model.Provider, in.Model.ModelID)
		return nil, fmt.Errorf("engine: %w: empty model key", domain.ErrInvalidModelKey)
	}

	var validation domain.SchemaValidationResult
	if len(in.RawCandidate) > 0 {
		validation = e.validator.ValidateRaw(in.RawCandidate, in.Candidate)
	} else {
		validation = e.validator.ValidateDocument(in.Candidate)
	}

	truthSections := in.Truth.LeafSections()
	candidateSections := in.Candidate.LeafSections()

	sections, extraSections := e.matcher.AlignSections(ctx, truthSections, candidateSections)
	score.Apply(sections)
	scores := score.Aggregate(validation, sections)

	elapsed := time.Since(started)

	result := &domain.EvaluationResult{
		ID:            uuid.NewString(),
		SourceFile:    in.SourceFile,
		CandidateFile: in.CandidateFile,
		Model:         in.Model,

		SchemaValidation: validation,

		TotalSourceSections:    len(truthSections),
		TotalCandidateSections: len(candidateSections),
		ExtraSections:          extraSections,

		Sections: sections,
		Scores:   scores,

		Timestamp:  time.Now().UTC(),
		DurationMS: elapsed.Milliseconds(),
		Usage:      e.resolveUsage(in),
	}

	e.observe(result, elapsed)

	span.SetAttributes(
		attribute.Float64("eval.overall_score", scores.OverallScore),
		attribute.Int64("eval.latency_ms", elapsed.Milliseconds()),
		attribute.Int("eval.sections", len(sections)),
	)

	e.logger.Info("evaluation complete",
		zap.String("source", in.SourceFile),
		zap.String("model", in.Model.String()),
		zap.Float64("overall_score", scores.OverallScore),
		zap.Duration("elapsed", elapsed))

	return result, nil
}

// resolveUsage fills in the run cost from the pricing table when the
// caller supplied token counts without a cost figure.
func (e *Evaluator) resolveUsage(in Input) *domain.Usage {
	if in.Usage == nil {
		return nil
	}
	usage := *in.Usage
	if usage.Cost == 0 && (usage.InputTokens > 0 || usage.OutputTokens > 0) {
		if cost, ok := e.pricing.Cost(in.Model, usage.InputTokens, usage.OutputTokens); ok {
			usage.Cost = cost
		}
	}
	return &usage
}

func (e *Evaluator) observe(result *domain.EvaluationResult, elapsed time.Duration) {
	provider, model := result.Model.Provider, result.Model.ModelID
	e.metrics.observeSuccess(provider, model, result.Scores.OverallScore, elapsed)
	for _, s := range result.Sections {
		for _, f := range s.Fields {
			e.metrics.observeOutcome(provider, model, string(f.MatchType))
		}
	}
}
