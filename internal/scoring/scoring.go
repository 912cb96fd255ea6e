// Package scoring implements the weighted-additive decision model and the
// comparative insight analyzer. Everything here is a pure function of the
// property collection and the normalized weight distribution; results are
// recomputed on every call, never cached.
package scoring

import (
	"errors"
	"fmt"

	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/registry"
	"github.com/havenlab/haven/internal/weights"
)

// ErrCategoryMismatch indicates a property's score keys do not exactly cover
// the category registry. This is a contract violation by the caller, not
// recoverable input.
var ErrCategoryMismatch = errors.New("scoring: property scores do not match category registry")

// CategoryScore is one category's contribution to a property's total.
type CategoryScore struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Score computes the weighted-aggregate score for one property on the 0-10
// scale: the sum over categories of normalizedWeight × score. A zero-weight
// category contributes exactly 0 regardless of its score.
func Score(p record.Property, d weights.Distribution) (float64, error) {
	if err := checkCoverage(p); err != nil {
		return 0, err
	}
	var total float64
	for _, key := range registry.Keys() {
		total += d[key] * p.Scores[key]
	}
	return total, nil
}

// Breakdown computes the per-category contributions plus the total for one
// property, for the explain surface.
func Breakdown(p record.Property, d weights.Distribution) ([]CategoryScore, float64, error) {
	if err := checkCoverage(p); err != nil {
		return nil, 0, err
	}
	keys := registry.Keys()
	out := make([]CategoryScore, 0, len(keys))
	var total float64
	for _, key := range keys {
		weighted := d[key] * p.Scores[key]
		out = append(out, CategoryScore{
			Key:      key,
			Label:    registry.Label(key),
			Score:    p.Scores[key],
			Weight:   d[key],
			Weighted: weighted,
		})
		total += weighted
	}
	return out, total, nil
}

func checkCoverage(p record.Property) error {
	if len(p.Scores) != registry.Count() {
		return fmt.Errorf("%w: property %s has %d score entries, registry has %d",
			ErrCategoryMismatch, p.ID, len(p.Scores), registry.Count())
	}
	for _, key := range registry.Keys() {
		if _, ok := p.Scores[key]; !ok {
			return fmt.Errorf("%w: property %s missing %q", ErrCategoryMismatch, p.ID, key)
		}
	}
	return nil
}
