package domain

import (
	"fmt"
	"strings"
)

// ModelKey is the composite identity of an evaluated model. Equality
// and map-key semantics are defined over the (provider, model id) pair,
// replacing ad hoc "provider:model" string concatenation.
type ModelKey struct {
	Provider string `json:"provider"`
	ModelID  string `json:"model_id"`
}

// NewModelKey builds a key from its parts.
func NewModelKey(provider, modelID string) ModelKey {
	return ModelKey{Provider: provider, ModelID: modelID}
}

// String renders the key in its canonical "provider:model_id" wire form.
func (k ModelKey) String() string {
	return k.Provider + ":" + k.ModelID
}

// IsZero reports whether both components are empty.
func (k ModelKey) IsZero() bool { return k.Provider == "" && k.ModelID == "" }

// ParseModelKey parses the canonical "provider:model_id" form. Model
// identifiers may themselves contain colons (e.g. versioned Bedrock
// IDs), so only the first colon separates the provider.
func ParseModelKey(s string) (ModelKey, error) {
	provider, modelID, ok := strings.Cut(s, ":")
	if !ok || provider == "" || modelID == "" {
		return ModelKey{}, fmt.Errorf("%w: %q", ErrInvalidModelKey, s)
	}
	return ModelKey{Provider: provider, ModelID: modelID}, nil
}

// MarshalText implements encoding.TextMarshaler so a ModelKey can serve
// as a JSON object key in the ledger wire format.
func (k ModelKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModelKey) UnmarshalText(text []byte) error {
	parsed, err := ParseModelKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
