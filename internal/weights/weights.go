// Package weights converts user-entered raw importance values into a
// normalized weight distribution over the category registry.
//
// Policy notes:
//   - Proportion policy: normalized weights sum to exactly 1.0. Raw weights are
//     what persists; the distribution is recomputed on every read.
//   - ZERO-IS-VALID: an exact zero raw weight is a deliberate "exclude this
//     category" signal and survives sanitization. Only an all-zero set falls
//     back to the equal distribution.
package weights

import (
	"fmt"
	"math"

	"github.com/havenlab/haven/internal/registry"
)

// SumTolerance bounds acceptable float drift when validating a distribution.
const SumTolerance = 0.001

// Raw is a user-entered, unnormalized importance mapping. Values are on an
// arbitrary non-negative scale.
type Raw map[string]float64

// Distribution is a normalized weight mapping: non-negative, covering every
// registry key, summing to exactly 1.0.
type Distribution map[string]float64

// Equal returns the default raw weight set: 1 per category.
func Equal() Raw {
	r := make(Raw, registry.Count())
	for _, key := range registry.Keys() {
		r[key] = 1
	}
	return r
}

// Hydrate rebuilds a raw weight set from persisted data. Missing, non-finite,
// or negative entries become 0; a nil input yields the equal set. Entries
// outside the registry are dropped.
func Hydrate(stored map[string]float64) Raw {
	if stored == nil {
		return Equal()
	}
	r := make(Raw, registry.Count())
	for _, key := range registry.Keys() {
		v, ok := stored[key]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			r[key] = 0
			continue
		}
		r[key] = v
	}
	return r
}

// sanitize coerces raw values into non-negative finite numbers over the full
// registry key set. Positive values pass through; everything else becomes 0.
func sanitize(raw Raw) Raw {
	s := make(Raw, registry.Count())
	for _, key := range registry.Keys() {
		v := raw[key]
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			s[key] = 0
			continue
		}
		s[key] = v
	}
	return s
}

// Normalize converts raw importance values into a distribution summing to
// exactly 1.0. Malformed input degrades to the equal distribution; Normalize
// never fails. The last positively-weighted category in registry order absorbs
// the rounding residual so the sum invariant holds exactly, not just within
// tolerance; zero-weighted categories stay at exactly 0.
func Normalize(raw Raw) Distribution {
	s := sanitize(raw)

	var sum float64
	for _, v := range s {
		sum += v
	}
	if sum <= 0 {
		return equalDistribution()
	}

	keys := registry.Keys()
	residual := -1
	for i, key := range keys {
		if s[key] > 0 {
			residual = i
		}
	}

	d := make(Distribution, len(keys))
	var allocated float64
	for i, key := range keys {
		if i == residual {
			continue
		}
		w := s[key] / sum
		d[key] = w
		allocated += w
	}
	d[keys[residual]] = 1.0 - allocated
	return d
}

func equalDistribution() Distribution {
	keys := registry.Keys()
	share := 1.0 / float64(len(keys))
	d := make(Distribution, len(keys))
	var allocated float64
	for i, key := range keys {
		if i == len(keys)-1 {
			d[key] = 1.0 - allocated
			break
		}
		d[key] = share
		allocated += share
	}
	return d
}

// Sum returns the total of all weights in the distribution.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, v := range d {
		sum += v
	}
	return sum
}

// Validate checks that the distribution covers exactly the registry key set,
// sums to 1.0 within tolerance, and contains no negative weight.
func (d Distribution) Validate() error {
	if len(d) != registry.Count() {
		return fmt.Errorf("distribution has %d entries, registry has %d", len(d), registry.Count())
	}
	for _, key := range registry.Keys() {
		v, ok := d[key]
		if !ok {
			return fmt.Errorf("distribution missing category %q", key)
		}
		if v < 0 {
			return fmt.Errorf("negative weight for %q: %f", key, v)
		}
	}
	if math.Abs(d.Sum()-1.0) > SumTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", d.Sum())
	}
	return nil
}

// TopCategory returns the key with the highest normalized weight, earlier
// registry order winning ties.
func (d Distribution) TopCategory() string {
	var top string
	best := math.Inf(-1)
	for _, key := range registry.Keys() {
		if d[key] > best {
			best = d[key]
			top = key
		}
	}
	return top
}
