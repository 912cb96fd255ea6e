package scoring

import (
	"math"
	"sort"

	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/registry"
	"github.com/havenlab/haven/internal/weights"
)

// flipEpsilon ensures the flip projection reports a strict overtake, not a tie.
const flipEpsilon = 0.01

// scaleCeiling is the maximum raw category score.
const scaleCeiling = 10.0

// Ranked is one property with its weighted-aggregate score.
type Ranked struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Total   float64 `json:"total"`
}

// FactorDelta is one category's weighted contribution to the winner's margin
// over the runner-up.
type FactorDelta struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	Weight        float64 `json:"weight"`
	WinnerScore   float64 `json:"winner_score"`
	RunnerUpScore float64 `json:"runner_up_score"`
	Delta         float64 `json:"delta"`
}

// FlipProjection reports the minimum score increase the runner-up would need
// in the single highest-weighted category to overtake the winner.
type FlipProjection struct {
	Category          string  `json:"category"`
	Label             string  `json:"label"`
	Weight            float64 `json:"weight"`
	CurrentScore      float64 `json:"current_score"`
	MinimumIncrease   float64 `json:"minimum_increase"`
	ReachableIncrease float64 `json:"reachable_increase"`
	Possible          bool    `json:"possible"`
	RequiredTarget    float64 `json:"required_target,omitempty"`
	Shortfall         float64 `json:"shortfall,omitempty"`
}

// Balanced identifies the property whose raw scores are most uniform.
type Balanced struct {
	ID       string  `json:"id"`
	Address  string  `json:"address"`
	Variance float64 `json:"variance"`
}

// Gap identifies the category with the widest raw-score spread across the
// collection.
type Gap struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Spread   float64 `json:"spread"`
}

// Mismatch flags when the structurally strongest property differs from the
// emotionally strongest one.
type Mismatch struct {
	StructuralWinnerID string `json:"structural_winner_id"`
	EmotionalWinnerID  string `json:"emotional_winner_id"`
	Mismatch           bool   `json:"mismatch"`
}

// Insights is the full analyzer output. Winner, RunnerUp, Margin, TopFactors,
// and Flip require at least two properties and are nil when unavailable —
// callers branch on presence, never read zero values. MostBalanced, LargestGap,
// and StructuralEmotional require at least one property and are independent of
// the current weights.
type Insights struct {
	Ranking             []Ranked        `json:"ranking"`
	Winner              *Ranked         `json:"winner,omitempty"`
	RunnerUp            *Ranked         `json:"runner_up,omitempty"`
	Margin              *float64        `json:"margin,omitempty"`
	TopFactors          []FactorDelta   `json:"top_factors,omitempty"`
	Flip                *FlipProjection `json:"flip,omitempty"`
	MostBalanced        *Balanced       `json:"most_balanced,omitempty"`
	LargestGap          *Gap            `json:"largest_gap,omitempty"`
	StructuralEmotional *Mismatch       `json:"structural_emotional,omitempty"`
}

// Analyze computes the full insight set for the collection under the given
// distribution. The sort is stable: equal totals keep insertion order.
func Analyze(properties []record.Property, d weights.Distribution) (*Insights, error) {
	out := &Insights{}
	if len(properties) == 0 {
		return out, nil
	}

	ranking := make([]Ranked, 0, len(properties))
	for _, p := range properties {
		total, err := Score(p, d)
		if err != nil {
			return nil, err
		}
		ranking = append(ranking, Ranked{ID: p.ID, Address: p.Address, Total: total})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Total > ranking[j].Total
	})
	out.Ranking = ranking

	out.MostBalanced = mostBalanced(properties)
	out.LargestGap = largestGap(properties)
	out.StructuralEmotional = structuralEmotional(properties)

	if len(properties) < 2 {
		return out, nil
	}

	winner := ranking[0]
	runnerUp := ranking[1]
	out.Winner = &winner
	out.RunnerUp = &runnerUp

	margin := round2(winner.Total - runnerUp.Total)
	out.Margin = &margin

	winnerProp := findByID(properties, winner.ID)
	runnerProp := findByID(properties, runnerUp.ID)
	out.TopFactors = topFactors(winnerProp, runnerProp, d)
	out.Flip = flipProjection(margin, runnerProp, d)

	return out, nil
}

// topFactors attributes the margin to categories: weightedDelta per category
// between the top two, strictly positive only, descending, top 3.
func topFactors(winner, runnerUp record.Property, d weights.Distribution) []FactorDelta {
	deltas := make([]FactorDelta, 0, registry.Count())
	for _, key := range registry.Keys() {
		delta := d[key] * (winner.Scores[key] - runnerUp.Scores[key])
		if delta <= 0 {
			continue
		}
		deltas = append(deltas, FactorDelta{
			Key:           key,
			Label:         registry.Label(key),
			Weight:        d[key],
			WinnerScore:   winner.Scores[key],
			RunnerUpScore: runnerUp.Scores[key],
			Delta:         delta,
		})
	}
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].Delta > deltas[j].Delta
	})
	if len(deltas) > 3 {
		deltas = deltas[:3]
	}
	return deltas
}

// flipProjection examines only the single highest-weighted category.
func flipProjection(margin float64, runnerUp record.Property, d weights.Distribution) *FlipProjection {
	top := d.TopCategory()
	weight := d[top]
	if weight <= 0 {
		return nil
	}
	current := runnerUp.Scores[top]
	minIncrease := round2(margin/weight + flipEpsilon)
	reachable := scaleCeiling - current

	fp := &FlipProjection{
		Category:          top,
		Label:             registry.Label(top),
		Weight:            weight,
		CurrentScore:      current,
		MinimumIncrease:   minIncrease,
		ReachableIncrease: reachable,
	}
	if minIncrease > reachable {
		fp.Possible = false
		fp.Shortfall = round2(minIncrease - reachable)
		return fp
	}
	fp.Possible = true
	fp.RequiredTarget = round2(current + minIncrease)
	return fp
}

// mostBalanced minimizes the population variance of a property's own raw
// scores, independent of the current weights. Earlier insertion order wins ties.
func mostBalanced(properties []record.Property) *Balanced {
	var best *Balanced
	for _, p := range properties {
		v := variance(p.Scores)
		if best == nil || v < best.Variance {
			best = &Balanced{ID: p.ID, Address: p.Address, Variance: v}
		}
	}
	return best
}

func variance(scores map[string]float64) float64 {
	n := float64(registry.Count())
	var sum float64
	for _, key := range registry.Keys() {
		sum += scores[key]
	}
	mean := sum / n
	var sq float64
	for _, key := range registry.Keys() {
		diff := scores[key] - mean
		sq += diff * diff
	}
	return sq / n
}

// largestGap finds the category with the widest max−min spread of raw scores
// across all properties. Earlier registry order wins ties.
func largestGap(properties []record.Property) *Gap {
	keys := registry.Keys()
	best := Gap{Category: keys[0], Label: registry.Label(keys[0])}
	for _, key := range keys {
		lo := math.Inf(1)
		hi := math.Inf(-1)
		for _, p := range properties {
			s := p.Scores[key]
			lo = math.Min(lo, s)
			hi = math.Max(hi, s)
		}
		if spread := hi - lo; spread > best.Spread {
			best = Gap{Category: key, Label: registry.Label(key), Spread: spread}
		}
	}
	return &best
}

// structuralEmotional is an identity comparison between the property with the
// highest frozen structural score and the one with the highest raw emotional
// pull. Earlier insertion order wins ties on both sides.
func structuralEmotional(properties []record.Property) *Mismatch {
	structural := properties[0]
	emotional := properties[0]
	for _, p := range properties[1:] {
		if p.StructuralScore > structural.StructuralScore {
			structural = p
		}
		if p.Scores[registry.EmotionalPull] > emotional.Scores[registry.EmotionalPull] {
			emotional = p
		}
	}
	return &Mismatch{
		StructuralWinnerID: structural.ID,
		EmotionalWinnerID:  emotional.ID,
		Mismatch:           structural.ID != emotional.ID,
	}
}

func findByID(properties []record.Property, id string) record.Property {
	for _, p := range properties {
		if p.ID == id {
			return p
		}
	}
	return record.Property{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
