package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docgrade/docgrade/internal/domain"
)

// documentContract is the JSON Schema for the structured-document wire
// shape. It covers attribute names, types, and enumerated values;
// cross-node rules (duplicate IDs, option-count rules) live in the
// document walk because JSON Schema cannot express them.
const documentContract = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "sections"],
  "properties": {
    "id": {"type": "integer"},
    "name": {"type": "string", "minLength": 1},
    "sections": {"type": "array", "items": {"$ref": "#/$defs/section"}}
  },
  "$defs": {
    "section": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "display_type": {
          "type": "string",
          "enum": [
            "SECTION_DISPLAY_TYPE_UNSPECIFIED",
            "SECTION_DISPLAY_TYPE_TAB",
            "SECTION_DISPLAY_TYPE_ACCORDION",
            "SECTION_DISPLAY_TYPE_FIELD_SET"
          ]
        },
        "sections": {"type": "array", "items": {"$ref": "#/$defs/section"}},
        "fields": {"type": "array", "items": {"$ref": "#/$defs/field"}}
      }
    },
    "field": {
      "type": "object",
      "required": ["id", "name", "rating_type"],
      "properties": {
        "id": {"type": "integer", "minimum": 1},
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "rating_type": {
          "type": "string",
          "enum": ["RATING_TYPE_CHECKBOX", "RATING_TYPE_RADIO", "RATING_TYPE_SELECT"]
        },
        "options": {"type": "array", "items": {"type": "string"}},
        "config": {"type": "object"}
      }
    }
  }
}`

var (
	contractOnce sync.Once
	contract     *jsonschema.Schema
	contractErr  error
)

func compiledContract() (*jsonschema.Schema, error) {
	contractOnce.Do(func() {
		contract, contractErr = jsonschema.CompileString("document.schema.json", documentContract)
	})
	return contract, contractErr
}

// validateJSON checks raw candidate bytes against the embedded contract
// and returns one issue per leaf violation. Malformed JSON yields a
// single issue at the document root.
func validateJSON(raw []byte) []domain.ValidationIssue {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return []domain.ValidationIssue{{Path: "root", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	compiled, err := compiledContract()
	if err != nil {
		return []domain.ValidationIssue{{Path: "root", Message: fmt.Sprintf("contract compilation failed: %v", err)}}
	}

	err = compiled.Validate(decoded)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []domain.ValidationIssue{{Path: "root", Message: err.Error()}}
	}

	var issues []domain.ValidationIssue
	collectLeafCauses(ve, &issues)
	return issues
}

// collectLeafCauses walks the validation error tree and records only
// leaf causes; branch nodes repeat their children's information.
func collectLeafCauses(ve *jsonschema.ValidationError, out *[]domain.ValidationIssue) {
	if len(ve.Causes) == 0 {
		*out = append(*out, domain.ValidationIssue{
			Path:    pointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectLeafCauses(cause, out)
	}
}

// pointerToPath converts a JSON pointer ("/sections/0/fields/1/name")
// into the dotted path form used throughout validation results
// ("sections[0].fields[1].name").
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "root"
	}

	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
