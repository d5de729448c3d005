package traits

import (
	"maps"
	"slices"
)

// Trait is one of the canonical dimensions shared by respondents and business models.
type Trait string

const (
	IncomeGoal          Trait = "incomeGoal"
	IncomeUrgency       Trait = "incomeUrgency"
	StartupBudget       Trait = "startupBudget"
	TimeAvailability    Trait = "timeAvailability"
	RiskTolerance       Trait = "riskTolerance"
	SalesConfidence     Trait = "salesConfidence"
	TechnicalComfort    Trait = "technicalComfort"
	Creativity          Trait = "creativity"
	ContentComfort      Trait = "contentComfort"
	ClientInteraction   Trait = "clientInteraction"
	SelfMotivation      Trait = "selfMotivation"
	StructureNeed       Trait = "structureNeed"
	Organization        Trait = "organization"
	LearningAgility     Trait = "learningAgility"
	TeamPreference      Trait = "teamPreference"
	Adaptability        Trait = "adaptability"
	Patience            Trait = "patience"
	PassiveIncomeDesire Trait = "passiveIncomeDesire"
	ScaleAmbition       Trait = "scaleAmbition"
	ProductHandling     Trait = "productHandling"
	AnalyticalThinking  Trait = "analyticalThinking"
	StressResilience    Trait = "stressResilience"
	AutonomyDesire      Trait = "autonomyDesire"
)

// All lists every canonical trait in questionnaire order.
var All = []Trait{
	IncomeGoal,
	IncomeUrgency,
	StartupBudget,
	TimeAvailability,
	RiskTolerance,
	SalesConfidence,
	TechnicalComfort,
	Creativity,
	ContentComfort,
	ClientInteraction,
	SelfMotivation,
	StructureNeed,
	Organization,
	LearningAgility,
	TeamPreference,
	Adaptability,
	Patience,
	PassiveIncomeDesire,
	ScaleAmbition,
	ProductHandling,
	AnalyticalThinking,
	StressResilience,
	AutonomyDesire,
}

// Vector maps traits to values in [0, 1].
type Vector map[Trait]float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return Vector{}
	}
	return maps.Clone(v)
}

// Traits returns the vector keys in sorted order.
func (v Vector) Traits() []Trait {
	return slices.Sorted(maps.Keys(v))
}

// Weights maps traits to their relative importance in the aggregate score.
type Weights map[Trait]float64

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	var total float64
	for _, weight := range w {
		total += weight
	}
	return total
}

// Traits returns the weighted traits in sorted order.
func (w Weights) Traits() []Trait {
	return slices.Sorted(maps.Keys(w))
}

// Known reports whether name is one of the canonical traits.
func Known(name string) bool {
	return slices.Contains(All, Trait(name))
}
