// Package domain defines the core entities of the extraction quality
// scoring engine: structured documents, field/section evaluations,
// aggregate scores, and model identity.
package domain

import "fmt"

// RatingType classifies how a field collects its value.
// A valid field must carry one of the specified rating types.
type RatingType string

const (
	RatingTypeCheckbox RatingType = "RATING_TYPE_CHECKBOX"
	RatingTypeRadio    RatingType = "RATING_TYPE_RADIO"
	RatingTypeSelect   RatingType = "RATING_TYPE_SELECT"
)

// Valid reports whether the rating type is one of the recognized values.
func (r RatingType) Valid() bool {
	switch r {
	case RatingTypeCheckbox, RatingTypeRadio, RatingTypeSelect:
		return true
	}
	return false
}

// SectionDisplayType defines where a section sits in the document
// hierarchy. FIELD_SET is the only leaf type that owns fields.
type SectionDisplayType string

const (
	DisplayTypeUnspecified SectionDisplayType = "SECTION_DISPLAY_TYPE_UNSPECIFIED"
	DisplayTypeTab         SectionDisplayType = "SECTION_DISPLAY_TYPE_TAB"
	DisplayTypeAccordion   SectionDisplayType = "SECTION_DISPLAY_TYPE_ACCORDION"
	DisplayTypeFieldSet    SectionDisplayType = "SECTION_DISPLAY_TYPE_FIELD_SET"
)

// Valid reports whether the display type is one of the recognized values.
func (d SectionDisplayType) Valid() bool {
	switch d {
	case DisplayTypeUnspecified, DisplayTypeTab, DisplayTypeAccordion, DisplayTypeFieldSet:
		return true
	}
	return false
}

// FieldConfig is the per-field configuration record: mandatoriness,
// note and attachment requirements, and work-order linkage.
type FieldConfig struct {
	Mandatory bool `json:"mandatory"`

	NotesEnabled                    bool     `json:"notes_enabled"`
	NotesRequiredForAllOptions      bool     `json:"notes_required_for_all_options"`
	NotesRequiredForSelectedOptions []string `json:"notes_required_for_selected_options,omitempty"`

	AttachmentsEnabled                    bool     `json:"attachments_enabled"`
	AttachmentsRequiredForAllOptions      bool     `json:"attachments_required_for_all_options"`
	AttachmentsRequiredForSelectedOptions []string `json:"attachments_required_for_selected_options,omitempty"`

	CanCreateWorkOrder   bool                 `json:"can_create_work_order"`
	WorkOrderCategory    MaintenanceCategory  `json:"work_order_category,omitempty"`
	WorkOrderSubCategory WorkOrderSubCategory `json:"work_order_sub_category,omitempty"`
}

// Field is the smallest unit of a structured document. The ID is unique
// within its owning document; candidate and ground-truth fields share no
// identity except by content.
type Field struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	RatingType  RatingType  `json:"rating_type"`
	Options     []string    `json:"options,omitempty"`
	Config      FieldConfig `json:"config"`
}

// Section groups fields and child sections. Only leaf sections own
// fields; intermediate sections organize the hierarchy.
type Section struct {
	Name        string             `json:"name"`
	DisplayType SectionDisplayType `json:"display_type,omitempty"`
	Sections    []Section          `json:"sections,omitempty"`
	Fields      []Field            `json:"fields,omitempty"`
}

// Document is a structured representation of an extracted document.
// Ground-truth and candidate documents share this shape but are
// independently constructed.
type Document struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Validate enforces the minimal structural precondition for a document
// to be evaluated at all. A violation here is fatal for the run and
// never touches the ledger; softer contract violations are the schema
// validator's job.
func (d *Document) Validate() error {
	if d == nil {
		return ErrNilDocument
	}
	if d.Name == "" {
		return fmt.Errorf("%w: document name is empty", ErrMalformedDocument)
	}
	var walk func(s *Section) error
	walk = func(s *Section) error {
		if s.Name == "" {
			return fmt.Errorf("%w: section with empty name", ErrMalformedDocument)
		}
		for i := range s.Sections {
			if err := walk(&s.Sections[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range d.Sections {
		if err := walk(&d.Sections[i]); err != nil {
			return err
		}
	}
	return nil
}

// LeafSections flattens the section tree into the ordered list of
// sections that directly own fields. Alignment and matching operate on
// this flattened view.
func (d *Document) LeafSections() []Section {
	var leaves []Section
	var collect func(s Section)
	collect = func(s Section) {
		if len(s.Fields) > 0 {
			leaves = append(leaves, s)
		}
		for _, child := range s.Sections {
			collect(child)
		}
	}
	for _, s := range d.Sections {
		collect(s)
	}
	return leaves
}

// FieldCount returns the total number of fields across the whole tree.
func (d *Document) FieldCount() int {
	total := 0
	var count func(s Section)
	count = func(s Section) {
		total += len(s.Fields)
		for _, child := range s.Sections {
			count(child)
		}
	}
	for _, s := range d.Sections {
		count(s)
	}
	return total
}

// SectionCount returns the total number of sections across the whole tree.
func (d *Document) SectionCount() int {
	total := 0
	var count func(s Section)
	count = func(s Section) {
		total++
		for _, child := range s.Sections {
			count(child)
		}
	}
	for _, s := range d.Sections {
		count(s)
	}
	return total
}
