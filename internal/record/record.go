// Package record defines the decision-session entity model and its load-time
// normalization rules for older persisted shapes.
package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenlab/haven/internal/registry"
	"github.com/havenlab/haven/internal/weights"
)

// Property is one candidate home. Scores map every registry category to a
// value in [1,10]. StructuralScore is the unweighted mean of Scores, computed
// once at creation and never recomputed under reweighting.
type Property struct {
	ID              string             `json:"id"`
	Address         string             `json:"address"`
	ListingURL      string             `json:"listingUrl,omitempty"`
	Price           float64            `json:"price"`
	Beds            int                `json:"beds"`
	Baths           float64            `json:"baths"`
	SqFt            float64            `json:"sqFt"`
	Notes           string             `json:"notes,omitempty"`
	ImageBase64     string             `json:"imageBase64,omitempty"`
	Scores          map[string]float64 `json:"scores"`
	StructuralScore float64            `json:"structuralScore"`
}

// Snapshot is the whole-session payload exchanged with the local and remote
// stores: the property collection plus the raw (unnormalized) weight set.
type Snapshot struct {
	Properties []Property  `json:"properties"`
	RawWeights weights.Raw `json:"raw_weights"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ValidateScores checks that scores cover exactly the registry key set with
// values in [1,10]. A mismatched key set is a contract violation by the caller.
func ValidateScores(scores map[string]float64) error {
	if len(scores) != registry.Count() {
		return fmt.Errorf("scores have %d categories, registry has %d", len(scores), registry.Count())
	}
	for _, key := range registry.Keys() {
		v, ok := scores[key]
		if !ok {
			return fmt.Errorf("scores missing category %q", key)
		}
		if v < 1 || v > 10 {
			return fmt.Errorf("score for %q out of range [1,10]: %v", key, v)
		}
	}
	return nil
}

// NewProperty builds a Property with a fresh id and the structural score
// frozen at creation time.
func NewProperty(address, listingURL string, price float64, beds int, baths, sqFt float64, notes, imageBase64 string, scores map[string]float64) (Property, error) {
	if err := ValidateScores(scores); err != nil {
		return Property{}, err
	}
	copied := make(map[string]float64, len(scores))
	var sum float64
	for _, key := range registry.Keys() {
		copied[key] = scores[key]
		sum += scores[key]
	}
	return Property{
		ID:              uuid.NewString(),
		Address:         address,
		ListingURL:      listingURL,
		Price:           price,
		Beds:            beds,
		Baths:           baths,
		SqFt:            sqFt,
		Notes:           notes,
		ImageBase64:     imageBase64,
		Scores:          copied,
		StructuralScore: sum / float64(len(copied)),
	}, nil
}

// DeleteByID removes the property with the given id, leaving the order of the
// remainder unchanged. Unknown ids are a no-op.
func DeleteByID(properties []Property, id string) []Property {
	out := properties[:0:0]
	for _, p := range properties {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
