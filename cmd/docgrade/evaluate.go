package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/engine"
	"github.com/docgrade/docgrade/internal/ledger"
)

var evaluateFlags struct {
	truthFile     string
	candidateFile string
	provider      string
	model         string
	inputTokens   int
	outputTokens  int
	cost          float64
	outputFile    string
	detailed      bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one candidate extraction against ground truth and record it",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.truthFile, "truth", "", "ground-truth document (JSON)")
	f.StringVar(&evaluateFlags.candidateFile, "candidate", "", "candidate document (JSON)")
	f.StringVar(&evaluateFlags.provider, "provider", "", "model provider, e.g. anthropic")
	f.StringVar(&evaluateFlags.model, "model", "", "model identifier")
	f.IntVar(&evaluateFlags.inputTokens, "input-tokens", 0, "input tokens consumed producing the candidate")
	f.IntVar(&evaluateFlags.outputTokens, "output-tokens", 0, "output tokens consumed producing the candidate")
	f.Float64Var(&evaluateFlags.cost, "cost", 0, "explicit run cost (overrides the pricing table)")
	f.StringVar(&evaluateFlags.outputFile, "output", "", "write the full evaluation result as JSON to this file")
	f.BoolVar(&evaluateFlags.detailed, "detailed", false, "print a per-section, per-field breakdown")

	for _, name := range []string{"truth", "candidate", "provider", "model"} {
		_ = evaluateCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	truth, _, err := readDocument(evaluateFlags.truthFile)
	if err != nil {
		return err
	}
	candidate, rawCandidate, err := readDocument(evaluateFlags.candidateFile)
	if err != nil {
		return err
	}

	pricing, err := engine.NewPricing(cfg.Pricing)
	if err != nil {
		return err
	}

	evaluator, err := engine.NewEvaluator(engine.Config{
		Options: cfg.Match,
		Pricing: pricing,
		Metrics: engine.NewMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	var usage *domain.Usage
	if evaluateFlags.cost > 0 || evaluateFlags.inputTokens > 0 || evaluateFlags.outputTokens > 0 {
		usage = &domain.Usage{
			Cost:         evaluateFlags.cost,
			InputTokens:  evaluateFlags.inputTokens,
			OutputTokens: evaluateFlags.outputTokens,
		}
	}

	result, err := evaluator.Evaluate(cmd.Context(), engine.Input{
		SourceFile:    evaluateFlags.truthFile,
		CandidateFile: evaluateFlags.candidateFile,
		Truth:         truth,
		Candidate:     candidate,
		RawCandidate:  rawCandidate,
		Model:         domain.NewModelKey(evaluateFlags.provider, evaluateFlags.model),
		Usage:         usage,
	})
	if err != nil {
		return err
	}

	registry := ledger.NewRegistry()
	store, err := ledger.NewStore(cfg.LedgerDir, registry, logger)
	if err != nil {
		return err
	}
	if _, err := store.Record(result); err != nil {
		return err
	}

	if evaluateFlags.outputFile != "" {
		if err := writeResult(evaluateFlags.outputFile, result); err != nil {
			return err
		}
	}

	printScores(cmd, result)
	if evaluateFlags.detailed {
		printBreakdown(cmd, result)
	}
	return nil
}

// readDocument parses a document file, returning both the parsed form
// and the raw bytes so the schema contract check can run over the wire
// shape as written.
func readDocument(path string) (*domain.Document, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read document %q: %w", path, err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode document %q: %w", path, err)
	}
	return &doc, raw, nil
}

// writeResult persists the full evaluation result as indented JSON.
func writeResult(path string, result *domain.EvaluationResult) error {
	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write result %q: %w", path, err)
	}
	return nil
}

func printScores(cmd *cobra.Command, result *domain.EvaluationResult) {
	s := result.Scores
	cmd.Printf("model:               %s\n", result.Model)
	cmd.Printf("schema compliance:   %.4f\n", s.SchemaCompliance)
	cmd.Printf("structural accuracy: %.4f\n", s.StructuralAccuracy)
	cmd.Printf("semantic accuracy:   %.4f\n", s.SemanticAccuracy)
	cmd.Printf("config accuracy:     %.4f\n", s.ConfigAccuracy)
	cmd.Printf("overall score:       %.4f\n", s.OverallScore)
	if len(result.ExtraSections) > 0 {
		cmd.Printf("extra sections:      %v\n", result.ExtraSections)
	}
	if result.Usage != nil && result.Usage.Cost > 0 {
		cmd.Printf("cost:                $%.4f\n", result.Usage.Cost)
	}
}

// printBreakdown prints the per-section, per-field detail behind the
// aggregate numbers.
func printBreakdown(cmd *cobra.Command, result *domain.EvaluationResult) {
	for _, section := range result.Sections {
		name := section.SourceSectionName
		if section.CandidateSectionName != "" && section.CandidateSectionName != name {
			name += " -> " + section.CandidateSectionName
		}
		cmd.Printf("\n%s  score=%.4f  matched=%d missing=%d extra=%d\n",
			name, section.SectionScore,
			section.MatchedFields, section.MissingFields, section.ExtraFields)

		for _, field := range section.Fields {
			switch field.MatchType {
			case domain.MatchMissing:
				cmd.Printf("  [missing] %s\n", field.SourceName)
			case domain.MatchExtra:
				cmd.Printf("  [extra]   %s\n", field.CandidateName)
			default:
				cmd.Printf("  [%s] %s -> %s  score=%.4f name=%.4f options=%.4f\n",
					field.MatchType, field.SourceName, field.CandidateName,
					field.OverallScore, field.NameSimilarity, field.OptionsSimilarity)
			}
		}
	}

	if result.SchemaValidation.ErrorCount > 0 {
		cmd.Printf("\nschema violations (%d):\n", result.SchemaValidation.ErrorCount)
		for _, issue := range result.SchemaValidation.Errors {
			cmd.Printf("  %s: %s\n", issue.Path, issue.Message)
		}
	}
}
