package normalizer

import (
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/traits"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func reasons(diags []Diagnostic, field string) []Reason {
	var out []Reason
	for _, d := range diags {
		if d.Field == field {
			out = append(out, d.Reason)
		}
	}
	return out
}

func TestEmptyRecordProducesEveryTrait(t *testing.T) {
	res := New().Normalize(answers.Record{})

	if len(res.Vector) != len(traits.All) {
		t.Fatalf("expected %d traits, got %d", len(traits.All), len(res.Vector))
	}
	for _, trait := range traits.All {
		v, ok := res.Vector[trait]
		if !ok {
			t.Fatalf("missing trait %s", trait)
		}
		if v < 0 || v > 1 {
			t.Fatalf("trait %s out of range: %v", trait, v)
		}
	}

	if !approx(res.Vector[traits.IncomeGoal], 5000.0/15000) {
		t.Fatalf("unexpected income default: %v", res.Vector[traits.IncomeGoal])
	}
	if !approx(res.Vector[traits.StartupBudget], 0.2) {
		t.Fatalf("unexpected budget default: %v", res.Vector[traits.StartupBudget])
	}
	if !approx(res.Vector[traits.TimeAvailability], 0.4) {
		t.Fatalf("unexpected time default: %v", res.Vector[traits.TimeAvailability])
	}
	// The tool list counts toward a ceiling like a quantity, so no tools is 0
	// and the neutral tech rating halves it.
	if !approx(res.Vector[traits.TechnicalComfort], 0.25) {
		t.Fatalf("unexpected technical comfort default: %v", res.Vector[traits.TechnicalComfort])
	}

	if got := reasons(res.Diagnostics, answers.FieldRiskComfortLevel); !reflect.DeepEqual(got, []Reason{ReasonMissing}) {
		t.Fatalf("expected missing diagnostic, got %v", got)
	}
}

func TestMidpointRecord(t *testing.T) {
	rec := answers.Record{
		answers.FieldFamiliarTools:           []any{"Canva", "Notion", "Excel"},
		answers.FieldShowFaceComfort:         "maybe",
		answers.FieldPivotWillingness:        "Not sure",
		answers.FieldPhysicalProductsComfort: "depends",
		answers.FieldLearningPreference:      "Mentorship",
		answers.FieldWorkStylePreference:     "Mix of both",
		answers.FieldIncomeTypePreference:    "Mix of both",
	}
	for _, field := range []string{
		answers.FieldTrialErrorComfort, answers.FieldDiscouragementResilience, answers.FieldRiskComfortLevel,
		answers.FieldDirectSellingComfort, answers.FieldSelfPromotionComfort, answers.FieldTechSkillsRating,
		answers.FieldCreativeWorkEnjoyment, answers.FieldContentCreationComfort, answers.FieldClientWorkComfort,
		answers.FieldDirectCommunication, answers.FieldSelfMotivationLevel, answers.FieldLongTermConsistency,
		answers.FieldStructurePreference, answers.FieldOrganizationLevel, answers.FieldNewSkillEnjoyment,
		answers.FieldAdaptabilityRating, answers.FieldDelayedGratification, answers.FieldPassiveIncomeImportance,
		answers.FieldDataAnalysisComfort, answers.FieldProblemSolvingEnjoyment, answers.FieldPressureHandling,
		answers.FieldUncertaintyComfort, answers.FieldControlImportance, answers.FieldFlexibilityImportance,
	} {
		rec[field] = 3
	}

	res := New().Normalize(rec)

	quantityDriven := map[traits.Trait]bool{
		traits.IncomeGoal:       true,
		traits.StartupBudget:    true,
		traits.TimeAvailability: true,
	}
	for _, trait := range traits.All {
		if quantityDriven[trait] {
			continue
		}
		if !approx(res.Vector[trait], 0.5) {
			t.Fatalf("expected 0.5 for %s, got %v", trait, res.Vector[trait])
		}
	}
}

func TestRiskScenario(t *testing.T) {
	res := New().Normalize(answers.Record{
		answers.FieldTrialErrorComfort:        5,
		answers.FieldDiscouragementResilience: "5",
		answers.FieldRiskComfortLevel:         5.0,
	})
	if res.Vector[traits.RiskTolerance] != 1.0 {
		t.Fatalf("expected riskTolerance 1.0, got %v", res.Vector[traits.RiskTolerance])
	}
}

func TestAliasEquivalence(t *testing.T) {
	legacy := answers.Record{
		"incomeGoal":      "$5,000-$10,000",
		"hoursPerWeek":    "10-20 hours",
		"riskComfort":     4,
		"toolsUsed":       "canva, shopify",
		"comfortOnCamera": "yes",
		"longTermGoal":    "Build a company",
	}
	canonical := answers.Record{
		answers.FieldIncomeGoal:        "$5,000-$10,000",
		answers.FieldWeeklyTime:        "10-20 hours",
		answers.FieldRiskComfortLevel:  4,
		answers.FieldFamiliarTools:     []string{"Canva", "Shopify"},
		answers.FieldShowFaceComfort:   true,
		answers.FieldBusinessScaleGoal: "build a company",
	}

	n := New()
	got := n.Normalize(legacy).Vector
	want := n.Normalize(canonical).Vector
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("legacy and canonical vectors differ:\n got %v\nwant %v", got, want)
	}
}

func TestBlankCanonicalValueFallsBackToLegacy(t *testing.T) {
	base := answers.Record{
		answers.FieldTrialErrorComfort:        5,
		answers.FieldDiscouragementResilience: 5,
	}
	legacyOnly := base.Clone()
	legacyOnly["riskComfort"] = 5

	n := New()
	want := n.Normalize(legacyOnly).Vector[traits.RiskTolerance]
	if want != 1.0 {
		t.Fatalf("expected riskTolerance 1.0 for legacy answer, got %v", want)
	}

	for _, blank := range []any{nil, "", "   "} {
		rec := legacyOnly.Clone()
		rec[answers.FieldRiskComfortLevel] = blank

		res := n.Normalize(rec)
		if got := res.Vector[traits.RiskTolerance]; got != want {
			t.Fatalf("%q: expected %v, got %v", blank, want, got)
		}
		if got := reasons(res.Diagnostics, "riskComfort"); len(got) != 0 {
			t.Fatalf("%q: legacy key should not be shadowed, got %v", blank, got)
		}
	}
}

func TestShadowedLegacyKeyIsReported(t *testing.T) {
	rec := answers.Record{
		answers.FieldTechSkillsRating: 5,
		"techSkills":                  1,
	}
	res := New().Normalize(rec)

	if got := reasons(res.Diagnostics, "techSkills"); !reflect.DeepEqual(got, []Reason{ReasonShadowed}) {
		t.Fatalf("expected shadowed diagnostic, got %v", got)
	}
	if _, ok := rec[answers.FieldIncomeGoal]; ok {
		t.Fatalf("record was modified")
	}
	if len(rec) != 2 {
		t.Fatalf("record was modified: %v", rec)
	}
}

func TestLikert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  any
		want   float64
		reason Reason
	}{
		{name: "low", value: 1, want: 0},
		{name: "high", value: 5, want: 1},
		{name: "numeric string", value: "4", want: 0.75},
		{name: "clamped above", value: 9, want: 1, reason: ReasonClamped},
		{name: "clamped below", value: -2, want: 0, reason: ReasonClamped},
		{name: "invalid", value: "very", want: 0.5, reason: ReasonInvalid},
		{name: "blank", value: "  ", want: 0.5, reason: ReasonMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := New().Normalize(answers.Record{answers.FieldCreativeWorkEnjoyment: tt.value})
			if !approx(res.Vector[traits.Creativity], tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, res.Vector[traits.Creativity])
			}
			got := reasons(res.Diagnostics, answers.FieldCreativeWorkEnjoyment)
			if tt.reason == "" {
				if len(got) != 0 {
					t.Fatalf("unexpected diagnostics: %v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, []Reason{tt.reason}) {
				t.Fatalf("expected %s diagnostic, got %v", tt.reason, got)
			}
		})
	}
}

func TestEnums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		value any
		trait traits.Trait
		want  float64
	}{
		{answers.FieldFirstIncomeTimeline, "Under 1 month", traits.IncomeUrgency, 1.0},
		{answers.FieldFirstIncomeTimeline, "6–12 months", traits.IncomeUrgency, 0.35},
		{answers.FieldFirstIncomeTimeline, "NO RUSH", traits.IncomeUrgency, 0.1},
		{answers.FieldWorkStylePreference, "Large team", traits.TeamPreference, 0.9},
		{answers.FieldBusinessScaleGoal, "Side income", traits.ScaleAmbition, 0.2},
		{answers.FieldBusinessScaleGoal, "world domination", traits.ScaleAmbition, 0.5},
		{answers.FieldBusinessScaleGoal, 7, traits.ScaleAmbition, 0.5},
	}

	for _, tt := range tests {
		res := New().Normalize(answers.Record{tt.field: tt.value})
		if !approx(res.Vector[tt.trait], tt.want) {
			t.Fatalf("%s=%v: expected %v, got %v", tt.field, tt.value, tt.want, res.Vector[tt.trait])
		}
	}

	res := New().Normalize(answers.Record{answers.FieldBusinessScaleGoal: "world domination"})
	if got := reasons(res.Diagnostics, answers.FieldBusinessScaleGoal); !reflect.DeepEqual(got, []Reason{ReasonUnrecognized}) {
		t.Fatalf("expected unrecognized diagnostic, got %v", got)
	}
}

func TestYesNoMaybe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  float64
	}{
		{"Yes", 1},
		{"y", 1},
		{true, 1},
		{"no", 0},
		{false, 0},
		{"FALSE", 0},
		{"unsure", 0.5},
		{"sometimes", 0.5},
		{1, 1},
		{"1", 1},
		{"0", 0},
		{" 0.5 ", 0.5},
		{"perhaps?", 0.5},
	}

	for _, tt := range tests {
		res := New().Normalize(answers.Record{answers.FieldPhysicalProductsComfort: tt.value})
		if got := res.Vector[traits.ProductHandling]; got != tt.want {
			t.Fatalf("%v: expected %v, got %v", tt.value, tt.want, got)
		}
	}

	res := New().Normalize(answers.Record{answers.FieldPhysicalProductsComfort: "3"})
	if got := res.Vector[traits.ProductHandling]; got != 1 {
		t.Fatalf("expected numeric string to clamp to 1, got %v", got)
	}
	if got := reasons(res.Diagnostics, answers.FieldPhysicalProductsComfort); !reflect.DeepEqual(got, []Reason{ReasonClamped}) {
		t.Fatalf("expected clamped diagnostic, got %v", got)
	}
}

func TestQuantities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value any
		trait traits.Trait
		want  float64
	}{
		{"plain income", answers.FieldIncomeGoal, 7500, traits.IncomeGoal, 0.5},
		{"income above ceiling", answers.FieldIncomeGoal, 40000, traits.IncomeGoal, 1},
		{"income k suffix", answers.FieldIncomeGoal, "$3k", traits.IncomeGoal, 0.2},
		{"income bucket", answers.FieldIncomeGoal, "$1,000 – $5,000", traits.IncomeGoal, 0.2},
		{"income per month", answers.FieldIncomeGoal, "$1,500/month", traits.IncomeGoal, 0.1},
		{"budget bucket", answers.FieldUpfrontInvestment, "$5,000+", traits.StartupBudget, 1},
		{"budget nothing", answers.FieldUpfrontInvestment, "Nothing", traits.StartupBudget, 0},
		{"hours bucket", answers.FieldWeeklyTime, "10-20 hours", traits.TimeAvailability, 0.6},
		{"hours range midpoint", answers.FieldWeeklyTime, "4-6 hours", traits.TimeAvailability, 0.2},
		{"hours with unit", answers.FieldWeeklyTime, "20 hours", traits.TimeAvailability, 0.8},
		{"negative clamps", answers.FieldWeeklyTime, -5, traits.TimeAvailability, 0},
		{"unreadable falls back", answers.FieldWeeklyTime, "a lot", traits.TimeAvailability, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := New().Normalize(answers.Record{tt.field: tt.value})
			if !approx(res.Vector[tt.trait], tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, res.Vector[tt.trait])
			}
		})
	}
}

func TestToolsList(t *testing.T) {
	res := New().Normalize(answers.Record{
		answers.FieldTechSkillsRating: 1,
		answers.FieldFamiliarTools:    []any{"Canva", "canva", "VSCode", "Visual Studio Code", "Abacus"},
	})

	// two distinct tools out of six, averaged with a zero Likert signal
	if !approx(res.Vector[traits.TechnicalComfort], (2.0/6)/2) {
		t.Fatalf("unexpected technicalComfort: %v", res.Vector[traits.TechnicalComfort])
	}

	var unknown []string
	for _, d := range res.Diagnostics {
		if d.Reason == ReasonUnknownItem {
			unknown = append(unknown, d.Raw)
		}
	}
	if !reflect.DeepEqual(unknown, []string{"Abacus"}) {
		t.Fatalf("unexpected unknown items: %v", unknown)
	}

	many := New().Normalize(answers.Record{
		answers.FieldTechSkillsRating: 5,
		answers.FieldFamiliarTools:    "canva, wordpress, shopify, excel, notion, zapier, figma, github",
	})
	if many.Vector[traits.TechnicalComfort] != 1 {
		t.Fatalf("expected tool signal to saturate, got %v", many.Vector[traits.TechnicalComfort])
	}
}

func TestRawIsTruncated(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	res := New().Normalize(answers.Record{answers.FieldBusinessScaleGoal: string(long)})
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics")
	}
	for _, d := range res.Diagnostics {
		if d.Field == answers.FieldBusinessScaleGoal && len(d.Raw) != rawLimit+len("...") {
			t.Fatalf("expected truncated raw value, got %d bytes", len(d.Raw))
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	rec := answers.Record{
		"toolsUsed":                      "figma, photoshop",
		answers.FieldFirstIncomeTimeline: "3-6 months",
		answers.FieldPressureHandling:    2,
	}
	n := New()
	first := n.Normalize(rec)
	for i := 0; i < 10; i++ {
		if got := n.Normalize(rec); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestDiagnosticsAreLogged(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	n := New(WithLogger(zap.New(core)))

	n.Normalize(answers.Record{answers.FieldOrganizationLevel: "lots"})

	entries := observed.FilterMessage("answer fallback").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["field"] != answers.FieldOrganizationLevel || ctx["reason"] != string(ReasonInvalid) {
		t.Fatalf("unexpected log fields: %v", ctx)
	}
}
