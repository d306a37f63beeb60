package match

import (
	"github.com/docgrade/docgrade/internal/domain"
	"github.com/docgrade/docgrade/internal/similarity"
)

// Weights of the boolean/enum attribute group versus the two
// required-for-selected-options list similarities in the config score.
const (
	configBooleanWeight = 0.7
	configListWeight    = 0.3
)

// CompareConfig compares the configuration records of an assigned field
// pairing attribute by attribute and reduces the outcome to a single
// score in [0,1]. Eight boolean/enum attributes contribute their match
// fraction; the two option-list requirements contribute their set
// similarity.
func CompareConfig(source, candidate domain.FieldConfig) (domain.ConfigComparison, float64) {
	cc := domain.ConfigComparison{
		Mandatory: source.Mandatory == candidate.Mandatory,

		NotesEnabled:               source.NotesEnabled == candidate.NotesEnabled,
		NotesRequiredForAllOptions: source.NotesRequiredForAllOptions == candidate.NotesRequiredForAllOptions,
		NotesRequiredForSelectedOptions: similarity.OptionSet(
			source.NotesRequiredForSelectedOptions, candidate.NotesRequiredForSelectedOptions),

		AttachmentsEnabled:               source.AttachmentsEnabled == candidate.AttachmentsEnabled,
		AttachmentsRequiredForAllOptions: source.AttachmentsRequiredForAllOptions == candidate.AttachmentsRequiredForAllOptions,
		AttachmentsRequiredForSelectedOptions: similarity.OptionSet(
			source.AttachmentsRequiredForSelectedOptions, candidate.AttachmentsRequiredForSelectedOptions),

		CanCreateWorkOrder:   source.CanCreateWorkOrder == candidate.CanCreateWorkOrder,
		WorkOrderCategory:    source.WorkOrderCategory == candidate.WorkOrderCategory,
		WorkOrderSubCategory: source.WorkOrderSubCategory == candidate.WorkOrderSubCategory,
	}

	booleans := []bool{
		cc.Mandatory,
		cc.NotesEnabled,
		cc.NotesRequiredForAllOptions,
		cc.AttachmentsEnabled,
		cc.AttachmentsRequiredForAllOptions,
		cc.CanCreateWorkOrder,
		cc.WorkOrderCategory,
		cc.WorkOrderSubCategory,
	}
	matched := 0
	for _, b := range booleans {
		if b {
			matched++
		}
	}
	booleanScore := float64(matched) / float64(len(booleans))
	listScore := (cc.NotesRequiredForSelectedOptions + cc.AttachmentsRequiredForSelectedOptions) / 2

	return cc, configBooleanWeight*booleanScore + configListWeight*listScore
}
