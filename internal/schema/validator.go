// Package schema checks candidate documents against the recognized
// structural contract and produces a compliance score.
package schema

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/domain"
)

// Validator collects structural violations from a candidate document in
// a single pass. It is a pure function of its inputs and safe for
// concurrent use.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a Validator. A nil logger defaults to a no-op.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// checkContext accumulates violations and the number of structural
// checks performed so the compliance score can be computed.
type checkContext struct {
	issues  []domain.ValidationIssue
	checks  int
	seenIDs map[int]string
}

func (c *checkContext) check(ok bool, path, message, value string) {
	c.checks++
	if !ok {
		c.issues = append(c.issues, domain.ValidationIssue{Path: path, Message: message, Value: value})
	}
}

// ValidateDocument walks a parsed candidate document and collects every
// structural violation: missing required attributes, values outside
// their enumerated sets, option-count rules, and duplicate field
// identifiers. It never aborts on the first violation.
//
// The compliance score is 1 - error_count/checks_performed, floored at
// zero; a document with zero checks performed is fully compliant.
func (v *Validator) ValidateDocument(doc *domain.Document) domain.SchemaValidationResult {
	ctx := &checkContext{seenIDs: make(map[int]string)}

	if doc != nil {
		ctx.check(doc.Name != "", "name", "document name is required", "")
		for i := range doc.Sections {
			v.validateSection(ctx, &doc.Sections[i], fmt.Sprintf("sections[%d]", i))
		}
	}

	return buildResult(ctx.issues, ctx.checks)
}

// ValidateRaw combines the JSON Schema contract check over raw
// candidate bytes with the structural walk over its parsed form. Each
// contract violation counts as one additional failed check; a clean
// contract pass counts as one successful check.
func (v *Validator) ValidateRaw(raw []byte, doc *domain.Document) domain.SchemaValidationResult {
	res := v.ValidateDocument(doc)

	contractIssues := validateJSON(raw)
	if len(contractIssues) == 0 {
		res.ChecksPerformed++
	} else {
		res.Errors = append(res.Errors, contractIssues...)
		res.ErrorCount += len(contractIssues)
		res.ChecksPerformed += len(contractIssues)
		v.logger.Debug("contract violations in candidate document",
			zap.Int("count", len(contractIssues)))
	}

	return buildResult(res.Errors, res.ChecksPerformed)
}

func (v *Validator) validateSection(ctx *checkContext, s *domain.Section, path string) {
	ctx.check(s.Name != "", path+".name", "section name is required", "")
	ctx.check(s.DisplayType == "" || s.DisplayType.Valid(),
		path+".display_type", "display type outside enumerated set", string(s.DisplayType))

	for i := range s.Fields {
		v.validateField(ctx, &s.Fields[i], fmt.Sprintf("%s.fields[%d]", path, i))
	}
	for i := range s.Sections {
		v.validateSection(ctx, &s.Sections[i], fmt.Sprintf("%s.sections[%d]", path, i))
	}
}

func (v *Validator) validateField(ctx *checkContext, f *domain.Field, path string) {
	ctx.check(f.Name != "", path+".name", "field name is required", "")
	ctx.check(f.ID > 0, path+".id", "field id must be a positive integer", strconv.Itoa(f.ID))

	// Duplicate detection only applies to otherwise usable IDs.
	if f.ID > 0 {
		if prev, dup := ctx.seenIDs[f.ID]; dup {
			ctx.check(false, path+".id",
				fmt.Sprintf("duplicate field id (first seen at %s)", prev), strconv.Itoa(f.ID))
		} else {
			ctx.check(true, path+".id", "", "")
			ctx.seenIDs[f.ID] = path
		}
	}

	ctx.check(f.RatingType.Valid(), path+".rating_type",
		"rating type outside enumerated set", string(f.RatingType))

	// CHECKBOX fields may be optionless; RADIO and SELECT need at
	// least one selectable option to be meaningful.
	needsOptions := f.RatingType == domain.RatingTypeRadio || f.RatingType == domain.RatingTypeSelect
	ctx.check(!needsOptions || len(f.Options) > 0, path+".options",
		"rating type requires at least one option", string(f.RatingType))

	ctx.check(f.Config.WorkOrderCategory.Valid(), path+".config.work_order_category",
		"work order category outside enumerated set", string(f.Config.WorkOrderCategory))
	ctx.check(f.Config.WorkOrderSubCategory.Valid(), path+".config.work_order_sub_category",
		"work order sub-category outside enumerated set", string(f.Config.WorkOrderSubCategory))
}

func buildResult(issues []domain.ValidationIssue, checks int) domain.SchemaValidationResult {
	score := 1.0
	if checks > 0 {
		score = 1.0 - float64(len(issues))/float64(checks)
		if score < 0 {
			score = 0
		}
	}
	return domain.SchemaValidationResult{
		Valid:           len(issues) == 0,
		Errors:          issues,
		ErrorCount:      len(issues),
		ChecksPerformed: checks,
		ComplianceScore: score,
	}
}
