package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docgrade/docgrade/internal/domain"
)

// ModelRate holds per-1K-token prices for one model.
type ModelRate struct {
	InputPer1K  float64 `yaml:"input_per_1k"`
	OutputPer1K float64 `yaml:"output_per_1k"`
}

// Pricing derives run cost from token counts when the caller supplies
// usage without a cost figure. Rates are keyed by composite model key.
type Pricing struct {
	rates map[domain.ModelKey]ModelRate
}

// NewPricing builds a pricing table from model-key strings to rates.
func NewPricing(rates map[string]ModelRate) (*Pricing, error) {
	table := make(map[domain.ModelKey]ModelRate, len(rates))
	for raw, rate := range rates {
		key, err := domain.ParseModelKey(raw)
		if err != nil {
			return nil, fmt.Errorf("pricing: %w", err)
		}
		table[key] = rate
	}
	return &Pricing{rates: table}, nil
}

// LoadPricing reads a YAML pricing file of the form:
//
//	models:
//	  anthropic:claude-sonnet-4:
//	    input_per_1k: 0.003
//	    output_per_1k: 0.015
func LoadPricing(path string) (*Pricing, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: read %q: %w", path, err)
	}

	var file struct {
		Models map[string]ModelRate `yaml:"models"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("pricing: decode %q: %w", path, err)
	}
	return NewPricing(file.Models)
}

// Cost returns the price of a run for the given model, or 0 with false
// when the model has no configured rate.
func (p *Pricing) Cost(key domain.ModelKey, inputTokens, outputTokens int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	rate, ok := p.rates[key]
	if !ok {
		return 0, false
	}
	cost := float64(inputTokens)/1000*rate.InputPer1K +
		float64(outputTokens)/1000*rate.OutputPer1K
	return cost, true
}
