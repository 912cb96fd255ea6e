package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/registry"
	"github.com/havenlab/haven/internal/weights"
)

// makeProperty builds a test property with every category at base, overridden
// per key. The structural score is the mean of the final scores.
func makeProperty(id string, base float64, overrides map[string]float64) record.Property {
	scores := make(map[string]float64, registry.Count())
	var sum float64
	for _, key := range registry.Keys() {
		v := base
		if o, ok := overrides[key]; ok {
			v = o
		}
		scores[key] = v
		sum += v
	}
	return record.Property{
		ID:              id,
		Address:         id,
		Scores:          scores,
		StructuralScore: sum / float64(registry.Count()),
	}
}

func TestScoreEqualWeightsMatchesMean(t *testing.T) {
	p := makeProperty("p1", 4, map[string]float64{
		registry.PriceFit: 10,
		registry.Schools:  2,
	})
	d := weights.Normalize(weights.Equal())

	total, err := Score(p, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(total-p.StructuralScore) > 1e-9 {
		t.Errorf("equal weights should reproduce the unweighted mean: got %f, want %f", total, p.StructuralScore)
	}
}

func TestScoreZeroWeightContributesNothing(t *testing.T) {
	raw := weights.Equal()
	raw[registry.EmotionalPull] = 0
	d := weights.Normalize(raw)

	low := makeProperty("low", 5, map[string]float64{registry.EmotionalPull: 1})
	high := makeProperty("high", 5, map[string]float64{registry.EmotionalPull: 10})

	lowTotal, err := Score(low, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	highTotal, err := Score(high, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(lowTotal-highTotal) > 1e-9 {
		t.Errorf("zero-weight category must not move the total: %f vs %f", lowTotal, highTotal)
	}
}

func TestScoreRange(t *testing.T) {
	d := weights.Normalize(weights.Equal())

	max := makeProperty("max", 10, nil)
	total, err := Score(max, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(total-10) > 1e-9 {
		t.Errorf("all 10s should score 10, got %f", total)
	}

	min := makeProperty("min", 1, nil)
	total, err = Score(min, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("all 1s should score 1, got %f", total)
	}
}

func TestScoreCategoryMismatch(t *testing.T) {
	p := makeProperty("p1", 5, nil)
	delete(p.Scores, registry.Commute)

	d := weights.Normalize(weights.Equal())
	if _, err := Score(p, d); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch, got %v", err)
	}

	p.Scores["somethingElse"] = 5
	if _, err := Score(p, d); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch for wrong key set, got %v", err)
	}
}

func TestBreakdown(t *testing.T) {
	p := makeProperty("p1", 6, map[string]float64{registry.Location: 9})
	raw := weights.Raw{
		"priceFit": 4, "resalePotential": 1, "condition": 1, "layout": 1,
		"location": 1, "schools": 1, "commute": 0.5, "emotionalPull": 0.5,
	}
	d := weights.Normalize(raw)

	categories, total, err := Breakdown(p, d)
	if err != nil {
		t.Fatalf("Breakdown failed: %v", err)
	}
	if len(categories) != registry.Count() {
		t.Fatalf("expected %d categories, got %d", registry.Count(), len(categories))
	}

	var sum float64
	for i, c := range categories {
		if c.Key != registry.Keys()[i] {
			t.Errorf("category %d out of registry order: %q", i, c.Key)
		}
		if math.Abs(c.Weighted-c.Weight*c.Score) > 1e-9 {
			t.Errorf("%q: weighted %f != weight %f * score %f", c.Key, c.Weighted, c.Weight, c.Score)
		}
		sum += c.Weighted
	}
	if math.Abs(sum-total) > 1e-9 {
		t.Errorf("contributions sum to %f, total is %f", sum, total)
	}

	direct, err := Score(p, d)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(total-direct) > 1e-9 {
		t.Errorf("Breakdown total %f disagrees with Score %f", total, direct)
	}
}
