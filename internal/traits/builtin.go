package traits

import "fmt"

// builtinWeights is the process-wide importance table.
var builtinWeights = Weights{
	IncomeGoal:          1.0,
	IncomeUrgency:       1.1,
	StartupBudget:       1.2,
	TimeAvailability:    1.3,
	RiskTolerance:       1.2,
	SalesConfidence:     1.4,
	TechnicalComfort:    1.4,
	Creativity:          1.0,
	ContentComfort:      1.3,
	ClientInteraction:   1.1,
	SelfMotivation:      1.2,
	StructureNeed:       0.8,
	Organization:        0.7,
	LearningAgility:     0.8,
	TeamPreference:      0.6,
	Adaptability:        0.8,
	Patience:            1.0,
	PassiveIncomeDesire: 0.9,
	ScaleAmbition:       0.9,
	ProductHandling:     0.9,
	AnalyticalThinking:  0.8,
	StressResilience:    0.7,
	AutonomyDesire:      0.5,
}

// Columns follow the order of All:
//
//	income urgency budget time | risk sales tech creative content client |
//	motivation structure organization learning team adaptability patience |
//	passive scale product analytical stress autonomy
var builtinModels = []Model{
	{ID: "affiliate-marketing", Name: "Affiliate Marketing", Profile: row(
		0.6, 0.3, 0.2, 0.6,
		0.5, 0.4, 0.6, 0.6, 0.6, 0.2,
		0.8, 0.3, 0.6, 0.7, 0.2, 0.7, 0.8,
		0.9, 0.6, 0.1, 0.7, 0.5, 0.8,
	)},
	{ID: "content-creation", Name: "Content Creation", Profile: row(
		0.6, 0.2, 0.2, 0.7,
		0.6, 0.5, 0.5, 0.9, 1.0, 0.3,
		0.9, 0.3, 0.5, 0.7, 0.3, 0.8, 0.9,
		0.6, 0.7, 0.1, 0.4, 0.6, 0.9,
	)},
	{ID: "freelancing", Name: "Freelancing", Profile: row(
		0.5, 0.8, 0.1, 0.6,
		0.4, 0.6, 0.6, 0.6, 0.3, 0.8,
		0.7, 0.5, 0.7, 0.6, 0.3, 0.6, 0.4,
		0.2, 0.4, 0.1, 0.6, 0.6, 0.8,
	)},
	{ID: "e-commerce-dropshipping", Name: "E-commerce Dropshipping", Profile: row(
		0.7, 0.5, 0.5, 0.6,
		0.7, 0.5, 0.6, 0.5, 0.4, 0.3,
		0.7, 0.4, 0.7, 0.7, 0.3, 0.8, 0.5,
		0.6, 0.8, 0.3, 0.8, 0.7, 0.8,
	)},
	{ID: "print-on-demand", Name: "Print on Demand", Profile: row(
		0.4, 0.3, 0.3, 0.4,
		0.4, 0.3, 0.5, 0.9, 0.4, 0.1,
		0.6, 0.4, 0.6, 0.6, 0.2, 0.6, 0.7,
		0.8, 0.5, 0.3, 0.5, 0.4, 0.8,
	)},
	{ID: "virtual-assistant", Name: "Virtual Assistant", Profile: row(
		0.3, 0.9, 0.0, 0.5,
		0.1, 0.3, 0.5, 0.3, 0.2, 0.7,
		0.6, 0.8, 0.9, 0.5, 0.6, 0.5, 0.3,
		0.1, 0.2, 0.1, 0.4, 0.5, 0.4,
	)},
	{ID: "online-coaching", Name: "Online Coaching", Profile: row(
		0.7, 0.5, 0.2, 0.5,
		0.5, 0.8, 0.4, 0.6, 0.8, 1.0,
		0.8, 0.4, 0.6, 0.6, 0.4, 0.6, 0.6,
		0.4, 0.6, 0.0, 0.4, 0.6, 0.7,
	)},
	{ID: "digital-products", Name: "Digital Products", Profile: row(
		0.6, 0.2, 0.2, 0.5,
		0.5, 0.4, 0.6, 0.8, 0.6, 0.2,
		0.8, 0.4, 0.7, 0.7, 0.2, 0.6, 0.8,
		1.0, 0.7, 0.0, 0.6, 0.5, 0.9,
	)},
	{ID: "social-media-agency", Name: "Social Media Marketing Agency", Profile: row(
		0.8, 0.6, 0.2, 0.8,
		0.6, 0.8, 0.6, 0.7, 0.6, 0.9,
		0.8, 0.4, 0.7, 0.7, 0.7, 0.8, 0.5,
		0.3, 0.9, 0.0, 0.6, 0.7, 0.7,
	)},
	{ID: "saas-development", Name: "SaaS Development", Profile: row(
		0.9, 0.1, 0.6, 0.9,
		0.8, 0.5, 1.0, 0.6, 0.3, 0.4,
		0.9, 0.3, 0.7, 0.9, 0.5, 0.8, 0.9,
		0.8, 1.0, 0.0, 0.9, 0.7, 0.9,
	)},
	{ID: "online-tutoring", Name: "Online Tutoring", Profile: row(
		0.3, 0.8, 0.0, 0.4,
		0.2, 0.4, 0.4, 0.4, 0.5, 0.9,
		0.6, 0.7, 0.6, 0.5, 0.3, 0.5, 0.5,
		0.2, 0.2, 0.0, 0.6, 0.5, 0.6,
	)},
	{ID: "copywriting", Name: "Copywriting", Profile: row(
		0.6, 0.7, 0.0, 0.5,
		0.4, 0.6, 0.4, 0.8, 0.3, 0.6,
		0.7, 0.4, 0.6, 0.7, 0.2, 0.6, 0.5,
		0.2, 0.4, 0.0, 0.7, 0.6, 0.8,
	)},
	{ID: "local-service-business", Name: "Local Service Business", Profile: row(
		0.7, 0.7, 0.6, 0.8,
		0.5, 0.7, 0.3, 0.4, 0.3, 0.9,
		0.7, 0.7, 0.8, 0.5, 0.7, 0.6, 0.5,
		0.2, 0.7, 0.8, 0.5, 0.7, 0.6,
	)},
	{ID: "high-ticket-sales", Name: "High-Ticket Sales", Profile: row(
		0.9, 0.8, 0.1, 0.7,
		0.7, 1.0, 0.4, 0.4, 0.5, 1.0,
		0.9, 0.5, 0.6, 0.6, 0.5, 0.7, 0.4,
		0.1, 0.7, 0.0, 0.5, 0.9, 0.6,
	)},
	{ID: "amazon-fba", Name: "Amazon FBA", Profile: row(
		0.8, 0.2, 0.9, 0.6,
		0.8, 0.3, 0.6, 0.4, 0.2, 0.2,
		0.8, 0.6, 0.9, 0.7, 0.3, 0.6, 0.7,
		0.7, 0.9, 1.0, 0.9, 0.7, 0.7,
	)},
	{ID: "podcasting", Name: "Podcasting", Profile: row(
		0.5, 0.1, 0.3, 0.5,
		0.5, 0.6, 0.5, 0.8, 0.9, 0.7,
		0.8, 0.3, 0.5, 0.6, 0.4, 0.6, 0.9,
		0.6, 0.6, 0.0, 0.4, 0.5, 0.8,
	)},
	{ID: "blogging", Name: "Blogging", Profile: row(
		0.5, 0.1, 0.1, 0.5,
		0.4, 0.2, 0.6, 0.8, 0.5, 0.1,
		0.9, 0.4, 0.6, 0.8, 0.1, 0.6, 1.0,
		0.9, 0.5, 0.0, 0.7, 0.4, 0.9,
	)},
	{ID: "web-design-agency", Name: "Web Design Agency", Profile: row(
		0.7, 0.6, 0.2, 0.7,
		0.5, 0.6, 0.9, 0.8, 0.3, 0.8,
		0.8, 0.5, 0.7, 0.8, 0.5, 0.7, 0.5,
		0.3, 0.7, 0.0, 0.7, 0.6, 0.7,
	)},
}

var builtin = mustCatalog(builtinWeights, builtinModels)

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	return builtin
}

func row(values ...float64) Vector {
	if len(values) != len(All) {
		panic(fmt.Sprintf("profile row has %d values, want %d", len(values), len(All)))
	}
	v := make(Vector, len(All))
	for i, trait := range All {
		v[trait] = values[i]
	}
	return v
}

func mustCatalog(weights Weights, models []Model) *Catalog {
	c, err := NewCatalog(weights, models)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}
