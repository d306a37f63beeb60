// Package match aligns candidate sections and fields to their
// ground-truth counterparts under uncertainty and classifies every
// pairing into a match outcome.
package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Package-level validator instance for option validation.
var validate = validator.New()

// ErrInvalidOptions is returned when matcher options fail validation.
var ErrInvalidOptions = errors.New("invalid matcher options")

// Options are the policy constants of the alignment and classification
// algorithm. The thresholds and blend weights are deliberately
// configurable rather than hard-coded; the defaults reproduce the
// behavior validated by the scenario tests.
type Options struct {
	// SectionThreshold is the minimum name similarity for a candidate
	// section to be aligned with a ground-truth section.
	SectionThreshold float64 `yaml:"section_threshold" json:"section_threshold" validate:"min=0,max=1"`

	// PartialThreshold is the minimum combined similarity for a field
	// pairing to be assigned at all. Pairs below it are left
	// unassigned and surface as missing/extra.
	PartialThreshold float64 `yaml:"partial_threshold" json:"partial_threshold" validate:"min=0,max=1"`

	// ExactThreshold is the combined similarity at or above which an
	// assigned pairing with matching rating types classifies as exact.
	ExactThreshold float64 `yaml:"exact_threshold" json:"exact_threshold" validate:"min=0,max=1"`

	// NameWeight and OptionsWeight blend name similarity and option-set
	// similarity into the combined similarity. They must sum to 1.
	NameWeight    float64 `yaml:"name_weight" json:"name_weight" validate:"min=0,max=1"`
	OptionsWeight float64 `yaml:"options_weight" json:"options_weight" validate:"min=0,max=1"`

	// RatingMismatchPenalty scales a pairing's similarity when the
	// rating types disagree.
	RatingMismatchPenalty float64 `yaml:"rating_mismatch_penalty" json:"rating_mismatch_penalty" validate:"min=0,max=1"`

	// CompareConfig enables the per-field configuration comparison.
	CompareConfig bool `yaml:"compare_config" json:"compare_config"`

	// ConfigWeight is the weight of the config score when folding it
	// into a field's overall score.
	ConfigWeight float64 `yaml:"config_weight" json:"config_weight" validate:"min=0,max=1"`
}

// DefaultOptions returns the default matching policy.
func DefaultOptions() Options {
	return Options{
		SectionThreshold:      0.5,
		PartialThreshold:      0.3,
		ExactThreshold:        0.9,
		NameWeight:            0.5,
		OptionsWeight:         0.5,
		RatingMismatchPenalty: 0.85,
		CompareConfig:         true,
		ConfigWeight:          0.3,
	}
}

// Validate checks the options for internal consistency.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.ExactThreshold < o.PartialThreshold {
		return fmt.Errorf("%w: exact threshold %.2f below partial threshold %.2f",
			ErrInvalidOptions, o.ExactThreshold, o.PartialThreshold)
	}
	if math.Abs(o.NameWeight+o.OptionsWeight-1.0) > 1e-9 {
		return fmt.Errorf("%w: name and options weights must sum to 1.0, got %.2f",
			ErrInvalidOptions, o.NameWeight+o.OptionsWeight)
	}
	return nil
}
