package domain

import "time"

// MatchType classifies the outcome of comparing one ground-truth field
// against at most one candidate field. The four outcomes partition all
// (source, candidate) field slots with no overlap.
type MatchType string

const (
	// MatchExact means the pair's combined similarity cleared the exact
	// threshold and the rating types agree.
	MatchExact MatchType = "exact"

	// MatchPartial means the pair's combined similarity sits between
	// the partial and exact thresholds, or the rating types disagree.
	MatchPartial MatchType = "partial"

	// MatchMissing means the ground-truth field has no candidate
	// counterpart. The candidate field id is always null.
	MatchMissing MatchType = "missing"

	// MatchExtra means the candidate field has no plausible
	// ground-truth counterpart.
	MatchExtra MatchType = "extra"
)

// ValidationIssue is a single structural violation found by the schema
// validator, with a path describing its location.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// SchemaValidationResult reports the outcome of checking a candidate
// document against the recognized structural contract. All violations
// are collected in one pass; validation never aborts early.
type SchemaValidationResult struct {
	Valid           bool              `json:"is_valid"`
	Errors          []ValidationIssue `json:"errors"`
	ErrorCount      int               `json:"error_count"`
	ChecksPerformed int               `json:"checks_performed"`
	ComplianceScore float64           `json:"compliance_score"`
}

// ConfigComparison holds the per-attribute outcome of comparing two
// field configuration records. Boolean attributes record equality; the
// two required-for-selected-options lists record a similarity ratio.
type ConfigComparison struct {
	Mandatory bool `json:"mandatory"`

	NotesEnabled                    bool    `json:"notes_enabled"`
	NotesRequiredForAllOptions      bool    `json:"notes_required_for_all_options"`
	NotesRequiredForSelectedOptions float64 `json:"notes_required_for_selected_options"`

	AttachmentsEnabled                    bool    `json:"attachments_enabled"`
	AttachmentsRequiredForAllOptions      bool    `json:"attachments_required_for_all_options"`
	AttachmentsRequiredForSelectedOptions float64 `json:"attachments_required_for_selected_options"`

	CanCreateWorkOrder   bool `json:"can_create_work_order"`
	WorkOrderCategory    bool `json:"work_order_category"`
	WorkOrderSubCategory bool `json:"work_order_sub_category"`
}

// FieldEvaluation is the result of comparing one ground-truth field to
// zero or one candidate fields (or, for extra fields, a candidate field
// to no ground-truth counterpart).
type FieldEvaluation struct {
	SourceFieldID    int       `json:"source_field_id"`
	CandidateFieldID *int      `json:"candidate_field_id"`
	SourceName       string    `json:"source_name,omitempty"`
	CandidateName    string    `json:"candidate_name,omitempty"`
	MatchType        MatchType `json:"match_type"`

	NameSimilarity    float64 `json:"name_similarity"`
	OptionsSimilarity float64 `json:"options_similarity"`
	RatingTypeMatch   bool    `json:"rating_type_match"`

	ConfigComparison *ConfigComparison `json:"config_comparison,omitempty"`
	Reasoning        string            `json:"reasoning,omitempty"`

	ConfigScore  float64 `json:"config_score"`
	OverallScore float64 `json:"overall_score"`
}

// SectionEvaluation is the result of comparing one aligned section
// pair, or a ground-truth section with no candidate counterpart.
type SectionEvaluation struct {
	SourceSectionName     string  `json:"source_section_name"`
	CandidateSectionName  string  `json:"candidate_section_name,omitempty"`
	SectionNameSimilarity float64 `json:"section_name_similarity"`

	SourceFieldCount    int  `json:"source_field_count"`
	CandidateFieldCount int  `json:"candidate_field_count"`
	FieldCountMatch     bool `json:"field_count_match"`

	MatchedFields int `json:"matched_fields"`
	MissingFields int `json:"missing_fields"`
	ExtraFields   int `json:"extra_fields"`

	Fields       []FieldEvaluation `json:"fields"`
	SectionScore float64           `json:"section_score"`
}

// AggregateScores are the document-level sub-scores and their fixed
// weighted combination. Every component lies in [0,1].
type AggregateScores struct {
	SchemaCompliance   float64 `json:"schema_compliance"`
	StructuralAccuracy float64 `json:"structural_accuracy"`
	SemanticAccuracy   float64 `json:"semantic_accuracy"`
	ConfigAccuracy     float64 `json:"config_accuracy"`
	OverallScore       float64 `json:"overall_score"`
}

// Usage carries the optional cost and token accounting for one run.
type Usage struct {
	Cost         float64 `json:"cost,omitempty"`
	InputTokens  int     `json:"input_tokens,omitempty"`
	OutputTokens int     `json:"output_tokens,omitempty"`
}

// EvaluationResult is the immutable record of one evaluation run.
// It is created once, never mutated, and folded into the ledger by the
// cache's record operation; the ledger is the long-term record.
type EvaluationResult struct {
	ID            string   `json:"id"`
	SourceFile    string   `json:"source_file"`
	CandidateFile string   `json:"candidate_file"`
	Model         ModelKey `json:"model"`

	SchemaValidation SchemaValidationResult `json:"schema_validation"`

	TotalSourceSections    int      `json:"total_source_sections"`
	TotalCandidateSections int      `json:"total_candidate_sections"`
	ExtraSections          []string `json:"extra_sections,omitempty"`

	Sections []SectionEvaluation `json:"sections"`
	Scores   AggregateScores     `json:"scores"`

	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"evaluation_duration_ms,omitempty"`
	Usage      *Usage    `json:"usage,omitempty"`
}
