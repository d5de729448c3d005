package ranking

import "sort"

// Category is the coarse fit label attached to a ranked result.
type Category string

const (
	BestFit     Category = "Best Fit"
	StrongFit   Category = "Strong Fit"
	PossibleFit Category = "Possible Fit"
	PoorFit     Category = "Poor Fit"
)

// Categories lists every category from best to worst.
var Categories = []Category{BestFit, StrongFit, PossibleFit, PoorFit}

const (
	// BestFitSlots is the number of top positions labelled BestFit
	// regardless of their score.
	BestFitSlots = 3

	StrongFitThreshold   = 75
	PossibleFitThreshold = 55
)

// Result is one ranked business model.
type Result struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Score    int      `json:"score"`
	Category Category `json:"category"`
}

// Sort orders results by score, highest first. Equal scores are ordered by
// ID so the order does not depend on the input order.
func Sort(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
}

// CategoryFor returns the category for a result at rank (0-based) with the
// given score.
func CategoryFor(rank, score int) Category {
	switch {
	case rank < BestFitSlots:
		return BestFit
	case score >= StrongFitThreshold:
		return StrongFit
	case score >= PossibleFitThreshold:
		return PossibleFit
	default:
		return PoorFit
	}
}

// Categorize labels a sorted result list in place.
func Categorize(results []Result) {
	for i := range results {
		results[i].Category = CategoryFor(i, results[i].Score)
	}
}
