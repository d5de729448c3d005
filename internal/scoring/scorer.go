package scoring

import (
	"math"
	"sort"

	"github.com/spigell/bizfit/internal/traits"
)

// Presentation range of a match score.
const (
	MinScore = 40
	MaxScore = 96
)

// Score is the result of comparing a user vector with one ideal profile.
type Score struct {
	// Raw is the weighted mean similarity on a 0..100 scale.
	Raw float64 `json:"raw"`
	// Value is Raw rescaled into [MinScore, MaxScore] and rounded.
	Value int `json:"value"`
}

// TraitMatch explains how a single trait contributed to a score.
type TraitMatch struct {
	Trait      traits.Trait `json:"trait"`
	User       float64      `json:"user"`
	Ideal      float64      `json:"ideal"`
	Difference float64      `json:"difference"`
	Similarity float64      `json:"similarity"`
	Weight     float64      `json:"weight"`
	Band       int          `json:"band"`
}

// Loss is the weighted similarity the trait failed to contribute.
func (m TraitMatch) Loss() float64 {
	return (1 - m.Similarity) * m.Weight
}

// Scorer compares trait vectors using a fixed weight table. It is immutable
// and safe for concurrent use.
type Scorer struct {
	weights traits.Weights
	order   []traits.Trait
	total   float64
}

func NewScorer(weights traits.Weights) *Scorer {
	w := make(traits.Weights, len(weights))
	for trait, weight := range weights {
		w[trait] = weight
	}
	return &Scorer{
		weights: w,
		order:   w.Traits(),
		total:   w.Sum(),
	}
}

// Score returns the weighted similarity of user against ideal. Traits absent
// from either vector count as 0.
func (s *Scorer) Score(user, ideal traits.Vector) Score {
	if s.total <= 0 {
		return Score{Raw: 0, Value: present(0)}
	}

	var sum float64
	for _, trait := range s.order {
		sim, _ := Similarity(user[trait] - ideal[trait])
		sum += sim * s.weights[trait]
	}

	raw := 100 * sum / s.total
	return Score{Raw: raw, Value: present(raw)}
}

// Breakdown lists the per-trait comparison, largest weighted loss first.
func (s *Scorer) Breakdown(user, ideal traits.Vector) []TraitMatch {
	matches := make([]TraitMatch, 0, len(s.order))
	for _, trait := range s.order {
		diff := math.Abs(user[trait] - ideal[trait])
		sim, band := Similarity(diff)
		matches = append(matches, TraitMatch{
			Trait:      trait,
			User:       user[trait],
			Ideal:      ideal[trait],
			Difference: diff,
			Similarity: sim,
			Weight:     s.weights[trait],
			Band:       band,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Loss() > matches[j].Loss()
	})
	return matches
}

func present(raw float64) int {
	raw = math.Max(0, math.Min(100, raw))
	return int(math.Round(MinScore + raw/100*(MaxScore-MinScore)))
}
