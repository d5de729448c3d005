package answers

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical questionnaire field names.
const (
	FieldIncomeGoal               = "successIncomeGoal"
	FieldFirstIncomeTimeline      = "firstIncomeTimeline"
	FieldUpfrontInvestment        = "upfrontInvestment"
	FieldWeeklyTime               = "weeklyTimeCommitment"
	FieldTrialErrorComfort        = "trialErrorComfort"
	FieldDiscouragementResilience = "discouragementResilience"
	FieldRiskComfortLevel         = "riskComfortLevel"
	FieldDirectSellingComfort     = "directSellingComfort"
	FieldSelfPromotionComfort     = "selfPromotionComfort"
	FieldTechSkillsRating         = "techSkillsRating"
	FieldFamiliarTools            = "familiarTools"
	FieldCreativeWorkEnjoyment    = "creativeWorkEnjoyment"
	FieldContentCreationComfort   = "contentCreationComfort"
	FieldShowFaceComfort          = "showFaceComfort"
	FieldClientWorkComfort        = "clientWorkComfort"
	FieldDirectCommunication      = "directCommunicationComfort"
	FieldSelfMotivationLevel      = "selfMotivationLevel"
	FieldLongTermConsistency      = "longTermConsistency"
	FieldStructurePreference      = "structurePreference"
	FieldOrganizationLevel        = "organizationLevel"
	FieldNewSkillEnjoyment        = "newSkillEnjoyment"
	FieldLearningPreference       = "learningPreference"
	FieldWorkStylePreference      = "workStylePreference"
	FieldAdaptabilityRating       = "adaptabilityRating"
	FieldPivotWillingness         = "pivotWillingness"
	FieldDelayedGratification     = "delayedGratificationComfort"
	FieldPassiveIncomeImportance  = "passiveIncomeImportance"
	FieldIncomeTypePreference     = "incomeTypePreference"
	FieldBusinessScaleGoal        = "businessScaleGoal"
	FieldPhysicalProductsComfort  = "physicalProductsComfort"
	FieldDataAnalysisComfort      = "dataAnalysisComfort"
	FieldProblemSolvingEnjoyment  = "problemSolvingEnjoyment"
	FieldPressureHandling         = "pressureHandling"
	FieldUncertaintyComfort       = "uncertaintyComfort"
	FieldControlImportance        = "controlImportance"
	FieldFlexibilityImportance    = "flexibilityImportance"
)

// Record is a loosely typed questionnaire answer set. Any field may be absent.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	return sortedKeys(r)
}

// Load reads an answer record from a JSON or YAML file. The format is chosen
// by extension; unknown extensions are parsed as YAML, which also accepts JSON.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes an answer record. ext selects the decoder (".json", ".yaml", ".yml").
func Parse(data []byte, ext string) (Record, error) {
	rec := Record{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode json answers: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode yaml answers: %w", err)
		}
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

func sortedKeys(r Record) []string {
	return slices.Sorted(maps.Keys(r))
}
