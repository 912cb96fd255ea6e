package record

import "encoding/json"

// propertyV1 mirrors Property with the score fields held as raw JSON, so that
// records from older schema versions (which carried overallScore instead of
// structuralScore, sometimes as a string) decode without loss.
type propertyV1 struct {
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
	StructuralScore json.RawMessage    `json:"structuralScore"`
	OverallScore    json.RawMessage    `json:"overallScore"`
}

// asNumber reports the field's value only when it is actually a JSON number.
// Absent fields, null, strings, and anything else fall through to the caller's
// next fallback.
func asNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func (v propertyV1) migrate() Property {
	p := Property{
		ID:          v.ID,
		Address:     v.Address,
		ListingURL:  v.ListingURL,
		Price:       v.Price,
		Beds:        v.Beds,
		Baths:       v.Baths,
		SqFt:        v.SqFt,
		Notes:       v.Notes,
		ImageBase64: v.ImageBase64,
		Scores:      v.Scores,
	}
	// A numeric structuralScore wins; a numeric legacy overallScore is the
	// fallback; else 0. The check is per field, so a non-numeric value in one
	// field never discards the record.
	if s, ok := asNumber(v.StructuralScore); ok {
		p.StructuralScore = s
	} else if s, ok := asNumber(v.OverallScore); ok {
		p.StructuralScore = s
	}
	return p
}

// DecodeProperties parses a persisted property collection, applying the
// versioned migration for legacy records. Unparseable data returns an error;
// callers substitute an empty collection rather than surfacing it.
func DecodeProperties(data []byte) ([]Property, error) {
	var stored []propertyV1
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	out := make([]Property, 0, len(stored))
	for _, v := range stored {
		out = append(out, v.migrate())
	}
	return out, nil
}

// DecodeRawWeights parses a persisted raw weight set. Unparseable data returns
// an error; callers fall back to the equal set.
func DecodeRawWeights(data []byte) (map[string]float64, error) {
	var stored map[string]float64
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}
