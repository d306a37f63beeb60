// Package similarity provides the deterministic string and option-set
// similarity primitives used by section alignment and field matching.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// foldCaser is a package-level Unicode case folder. Folding handles
// characters that a plain ToLower misses (e.g. ß vs ss).
var foldCaser = cases.Fold()

// Normalize lowercases (Unicode case folding) and trims a string so
// that cosmetic differences do not affect comparison.
func Normalize(s string) string {
	return strings.TrimSpace(foldCaser.String(s))
}

// String computes a normalized Levenshtein similarity between two
// strings after Normalize, returning a value in [0,1] where 1.0 means
// identical. An empty side yields 0.0; names and section titles are
// never legitimately empty in a well-formed document.
func String(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(na, nb)

	// Levenshtein operates on runes, so the maximum distance is the
	// larger rune count, not byte length.
	maxLen := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > maxLen {
		maxLen = n
	}

	sim := 1.0 - float64(distance)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	return sim
}

// OptionSet computes the set-overlap ratio |intersection|/|union| over
// two option lists after normalizing each entry. Two empty lists are
// identical (1.0); one empty side scores 0.0. Order is ignored.
func OptionSet(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[Normalize(s)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[Normalize(s)] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
