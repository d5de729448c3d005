package answers

import "strings"

// AliasVersion identifies the revision of AliasTable. Bump it whenever a
// mapping is added or retargeted so cached results keyed on canonical
// records are invalidated.
const AliasVersion = 2

// AliasTable maps legacy questionnaire keys to their canonical names.
var AliasTable = map[string]string{
	"incomeGoal":                  FieldIncomeGoal,
	"monthlyIncomeGoal":           FieldIncomeGoal,
	"timeToFirstIncome":           FieldFirstIncomeTimeline,
	"startupBudget":               FieldUpfrontInvestment,
	"investmentAmount":            FieldUpfrontInvestment,
	"hoursPerWeek":                FieldWeeklyTime,
	"timeCommitment":              FieldWeeklyTime,
	"riskComfort":                 FieldRiskComfortLevel,
	"salesComfort":                FieldDirectSellingComfort,
	"techSkills":                  FieldTechSkillsRating,
	"toolsUsed":                   FieldFamiliarTools,
	"creativity":                  FieldCreativeWorkEnjoyment,
	"comfortOnCamera":             FieldShowFaceComfort,
	"selfMotivation":              FieldSelfMotivationLevel,
	"needsStructure":              FieldStructurePreference,
	"learningStyle":               FieldLearningPreference,
	"workCollaborationPreference": FieldWorkStylePreference,
	"longTermGoal":                FieldBusinessScaleGoal,
	"inventoryComfort":            FieldPhysicalProductsComfort,
}

// Rename records how a single legacy key was handled during canonicalization.
type Rename struct {
	From     string
	To       string
	Shadowed bool
}

// Canonicalize returns a copy of rec keyed by canonical field names.
// Canonical keys win over legacy ones; a legacy key that loses is reported
// with Shadowed set. Null and blank string values count as absent. The input
// record is never modified.
func Canonicalize(rec Record) (Record, []Rename) {
	out := make(Record, len(rec))
	for key, value := range rec {
		if _, legacy := AliasTable[key]; legacy || absent(value) {
			continue
		}
		out[key] = value
	}

	var renames []Rename
	for _, legacy := range sortedKeys(rec) {
		canonical, ok := AliasTable[legacy]
		if !ok || absent(rec[legacy]) {
			continue
		}
		if _, taken := out[canonical]; taken {
			renames = append(renames, Rename{From: legacy, To: canonical, Shadowed: true})
			continue
		}
		out[canonical] = rec[legacy]
		renames = append(renames, Rename{From: legacy, To: canonical})
	}

	return out, renames
}

func absent(value any) bool {
	if value == nil {
		return true
	}
	s, isString := value.(string)
	return isString && strings.TrimSpace(s) == ""
}
