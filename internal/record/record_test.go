package record

import (
	"math"
	"testing"

	"github.com/havenlab/haven/internal/registry"
)

func fullScores(v float64) map[string]float64 {
	scores := make(map[string]float64, registry.Count())
	for _, key := range registry.Keys() {
		scores[key] = v
	}
	return scores
}

func TestNewPropertyFreezesStructuralScore(t *testing.T) {
	scores := fullScores(6)
	scores[registry.PriceFit] = 10
	scores[registry.EmotionalPull] = 2

	p, err := NewProperty("12 Oak Ln", "", 450000, 3, 2, 1800, "", "", scores)
	if err != nil {
		t.Fatalf("NewProperty failed: %v", err)
	}
	if p.ID == "" {
		t.Error("expected a generated id")
	}

	want := (10.0 + 2.0 + 6.0*6.0) / 8.0
	if math.Abs(p.StructuralScore-want) > 1e-9 {
		t.Errorf("structural score %f, want %f", p.StructuralScore, want)
	}

	// The property keeps its own copy of the scores.
	scores[registry.PriceFit] = 1
	if p.Scores[registry.PriceFit] != 10 {
		t.Error("mutating the input map must not touch the stored scores")
	}
}

func TestNewPropertyValidation(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		scores := fullScores(5)
		delete(scores, registry.Schools)
		if _, err := NewProperty("a", "", 0, 0, 0, 0, "", "", scores); err == nil {
			t.Error("expected error for missing category")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		scores := fullScores(5)
		scores[registry.Layout] = 11
		if _, err := NewProperty("a", "", 0, 0, 0, 0, "", "", scores); err == nil {
			t.Error("expected error for score above 10")
		}
		scores[registry.Layout] = 0
		if _, err := NewProperty("a", "", 0, 0, 0, 0, "", "", scores); err == nil {
			t.Error("expected error for score below 1")
		}
	})
}

func TestDeleteByID(t *testing.T) {
	a, _ := NewProperty("a", "", 0, 0, 0, 0, "", "", fullScores(5))
	b, _ := NewProperty("b", "", 0, 0, 0, 0, "", "", fullScores(5))
	c, _ := NewProperty("c", "", 0, 0, 0, 0, "", "", fullScores(5))
	properties := []Property{a, b, c}

	out := DeleteByID(properties, b.ID)
	if len(out) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(out))
	}
	if out[0].ID != a.ID || out[1].ID != c.ID {
		t.Error("deletion must preserve the order of the remainder")
	}

	out = DeleteByID(out, "does-not-exist")
	if len(out) != 2 {
		t.Error("unknown id should be a no-op")
	}
}

func TestDecodePropertiesLegacyOverallScore(t *testing.T) {
	data := []byte(`[
		{"id":"p1","address":"old record","scores":{"priceFit":7},"overallScore":7},
		{"id":"p2","address":"current record","scores":{"priceFit":8},"structuralScore":8.5,"overallScore":3},
		{"id":"p3","address":"bare record","scores":{"priceFit":4}}
	]`)

	props, err := DecodeProperties(data)
	if err != nil {
		t.Fatalf("DecodeProperties failed: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(props))
	}

	if props[0].StructuralScore != 7 {
		t.Errorf("legacy overallScore should migrate, got %f", props[0].StructuralScore)
	}
	if props[1].StructuralScore != 8.5 {
		t.Errorf("structuralScore must win over overallScore, got %f", props[1].StructuralScore)
	}
	if props[2].StructuralScore != 0 {
		t.Errorf("record with neither field defaults to 0, got %f", props[2].StructuralScore)
	}
}

func TestDecodePropertiesNonNumericScoreFields(t *testing.T) {
	data := []byte(`[
		{"id":"p1","address":"string score","scores":{"priceFit":7},"structuralScore":"7.2","overallScore":6},
		{"id":"p2","address":"null score","scores":{"priceFit":5},"structuralScore":null},
		{"id":"p3","address":"fine","scores":{"priceFit":8},"structuralScore":8}
	]`)

	props, err := DecodeProperties(data)
	if err != nil {
		t.Fatalf("DecodeProperties failed: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("a non-numeric score field must not drop records: got %d of 3", len(props))
	}

	if props[0].StructuralScore != 6 {
		t.Errorf("string structuralScore should fall back to overallScore, got %f", props[0].StructuralScore)
	}
	if props[0].Address != "string score" {
		t.Error("the rest of the record must survive the fallback")
	}
	if props[1].StructuralScore != 0 {
		t.Errorf("null structuralScore with no fallback defaults to 0, got %f", props[1].StructuralScore)
	}
	if props[2].StructuralScore != 8 {
		t.Errorf("numeric structuralScore passes through, got %f", props[2].StructuralScore)
	}
}

func TestDecodePropertiesMalformed(t *testing.T) {
	if _, err := DecodeProperties([]byte(`{"not":"an array"}`)); err == nil {
		t.Error("expected error for non-array payload")
	}
	if _, err := DecodeProperties([]byte(`garbage`)); err == nil {
		t.Error("expected error for non-JSON payload")
	}
}

func TestDecodeRawWeights(t *testing.T) {
	stored, err := DecodeRawWeights([]byte(`{"priceFit":5,"schools":0}`))
	if err != nil {
		t.Fatalf("DecodeRawWeights failed: %v", err)
	}
	if stored["priceFit"] != 5 || stored["schools"] != 0 {
		t.Errorf("unexpected decode result: %v", stored)
	}

	if _, err := DecodeRawWeights([]byte(`[]`)); err == nil {
		t.Error("expected error for non-object payload")
	}
}
