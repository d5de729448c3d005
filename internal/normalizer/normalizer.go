package normalizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/traits"
	"github.com/spigell/bizfit/internal/utils"
)

// Reason classifies why an answer fell back to a default or was adjusted.
type Reason string

const (
	ReasonMissing      Reason = "missing"
	ReasonUnrecognized Reason = "unrecognized"
	ReasonInvalid      Reason = "invalid"
	ReasonClamped      Reason = "clamped"
	ReasonShadowed     Reason = "shadowed"
	ReasonUnknownItem  Reason = "unknown-item"
)

// Reasons lists every diagnostic reason.
var Reasons = []Reason{
	ReasonMissing,
	ReasonUnrecognized,
	ReasonInvalid,
	ReasonClamped,
	ReasonShadowed,
	ReasonUnknownItem,
}

const rawLimit = 64

const (
	likertMin     = 1
	likertMax     = 5
	likertNeutral = 3
	enumNeutral   = 0.5
)

// Diagnostic reports a single fallback or adjustment made while normalizing.
type Diagnostic struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
	Raw    string `json:"raw,omitempty"`
}

// Result is the normalized trait vector together with the diagnostics
// collected while producing it.
type Result struct {
	Vector      traits.Vector `json:"vector"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}

// Normalizer converts answer records into trait vectors. It holds no
// per-call state and is safe for concurrent use.
type Normalizer struct {
	logger *zap.Logger
}

type Option func(*Normalizer)

// WithLogger sets the logger used to report diagnostics at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps rec onto all 23 traits, each within [0, 1]. It never fails:
// absent or unreadable answers fall back to neutral defaults and are
// reported in the diagnostics. rec is not modified.
func (n *Normalizer) Normalize(rec answers.Record) Result {
	canonical, renames := answers.Canonicalize(rec)
	r := &reader{rec: canonical}
	for _, rename := range renames {
		if rename.Shadowed {
			r.report(rename.From, ReasonShadowed, rec[rename.From])
		}
	}

	v := make(traits.Vector, len(traits.All))

	v[traits.IncomeGoal] = r.quantity(answers.FieldIncomeGoal, incomeGoal)
	v[traits.IncomeUrgency] = r.enum(answers.FieldFirstIncomeTimeline, firstIncomeTimeline)
	v[traits.StartupBudget] = r.quantity(answers.FieldUpfrontInvestment, upfrontInvestment)
	v[traits.TimeAvailability] = r.quantity(answers.FieldWeeklyTime, weeklyTime)

	v[traits.RiskTolerance] = utils.Mean(
		r.likert(answers.FieldTrialErrorComfort),
		r.likert(answers.FieldDiscouragementResilience),
		r.likert(answers.FieldRiskComfortLevel),
	)
	v[traits.SalesConfidence] = utils.Mean(
		r.likert(answers.FieldDirectSellingComfort),
		r.likert(answers.FieldSelfPromotionComfort),
	)
	v[traits.TechnicalComfort] = utils.Mean(
		r.likert(answers.FieldTechSkillsRating),
		r.tools(answers.FieldFamiliarTools),
	)
	v[traits.Creativity] = r.likert(answers.FieldCreativeWorkEnjoyment)
	v[traits.ContentComfort] = utils.Mean(
		r.likert(answers.FieldContentCreationComfort),
		r.yesNo(answers.FieldShowFaceComfort),
	)
	v[traits.ClientInteraction] = utils.Mean(
		r.likert(answers.FieldClientWorkComfort),
		r.likert(answers.FieldDirectCommunication),
	)
	v[traits.SelfMotivation] = utils.Mean(
		r.likert(answers.FieldSelfMotivationLevel),
		r.likert(answers.FieldLongTermConsistency),
	)
	v[traits.StructureNeed] = r.likert(answers.FieldStructurePreference)
	v[traits.Organization] = r.likert(answers.FieldOrganizationLevel)
	v[traits.LearningAgility] = utils.Mean(
		r.likert(answers.FieldNewSkillEnjoyment),
		r.enum(answers.FieldLearningPreference, learningPreference),
	)
	v[traits.TeamPreference] = r.enum(answers.FieldWorkStylePreference, workStylePreference)
	v[traits.Adaptability] = utils.Mean(
		r.likert(answers.FieldAdaptabilityRating),
		r.yesNo(answers.FieldPivotWillingness),
	)
	v[traits.Patience] = r.likert(answers.FieldDelayedGratification)
	v[traits.PassiveIncomeDesire] = utils.Mean(
		r.likert(answers.FieldPassiveIncomeImportance),
		r.enum(answers.FieldIncomeTypePreference, incomeTypePreference),
	)
	v[traits.ScaleAmbition] = r.enum(answers.FieldBusinessScaleGoal, businessScaleGoal)
	v[traits.ProductHandling] = r.yesNo(answers.FieldPhysicalProductsComfort)
	v[traits.AnalyticalThinking] = utils.Mean(
		r.likert(answers.FieldDataAnalysisComfort),
		r.likert(answers.FieldProblemSolvingEnjoyment),
	)
	v[traits.StressResilience] = utils.Mean(
		r.likert(answers.FieldPressureHandling),
		r.likert(answers.FieldUncertaintyComfort),
	)
	v[traits.AutonomyDesire] = utils.Mean(
		r.likert(answers.FieldControlImportance),
		r.likert(answers.FieldFlexibilityImportance),
	)

	for trait, value := range v {
		v[trait] = utils.Clamp01(value)
	}

	for _, d := range r.diagnostics {
		if d.Reason == ReasonMissing {
			continue
		}
		n.logger.Debug("answer fallback",
			zap.String("field", d.Field),
			zap.String("reason", string(d.Reason)),
			zap.String("raw", d.Raw),
		)
	}

	return Result{Vector: v, Diagnostics: r.diagnostics}
}

// reader extracts typed signals from a canonical record and collects
// diagnostics along the way.
type reader struct {
	rec         answers.Record
	diagnostics []Diagnostic
}

func (r *reader) report(field string, reason Reason, raw any) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Field:  field,
		Reason: reason,
		Raw:    utils.TruncateForLog(answers.String(raw), rawLimit),
	})
}

func (r *reader) lookup(field string) (any, bool) {
	value, ok := r.rec[field]
	if !ok || value == nil {
		r.report(field, ReasonMissing, nil)
		return nil, false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		r.report(field, ReasonMissing, nil)
		return nil, false
	}
	return value, true
}

// likert maps a 1..5 rating onto [0, 1].
func (r *reader) likert(field string) float64 {
	value, ok := r.lookup(field)
	if !ok {
		return scaleLikert(likertNeutral)
	}

	f, ok := answers.Float(value)
	if !ok {
		r.report(field, ReasonInvalid, value)
		return scaleLikert(likertNeutral)
	}
	if f < likertMin || f > likertMax {
		r.report(field, ReasonClamped, value)
		f = min(max(f, likertMin), likertMax)
	}
	return scaleLikert(f)
}

func scaleLikert(v float64) float64 {
	return (v - likertMin) / (likertMax - likertMin)
}

func (r *reader) enum(field string, table map[string]float64) float64 {
	value, ok := r.lookup(field)
	if !ok {
		return enumNeutral
	}

	if score, known := table[answers.Fold(answers.String(value))]; known {
		return score
	}
	r.report(field, ReasonUnrecognized, value)
	return enumNeutral
}

func (r *reader) yesNo(field string) float64 {
	value, ok := r.lookup(field)
	if !ok {
		return answerMaybe
	}

	switch val := value.(type) {
	case bool:
		if val {
			return answerYes
		}
		return answerNo
	case string:
		if score, known := yesNoMaybe[answers.Fold(val)]; known {
			return score
		}
	}

	// 1 is yes, 0 is no, fractions sit in between.
	if f, isNumber := answers.Float(value); isNumber {
		if f < 0 || f > 1 {
			r.report(field, ReasonClamped, value)
		}
		return utils.Clamp01(f)
	}

	r.report(field, ReasonUnrecognized, value)
	return answerMaybe
}

func (r *reader) quantity(field string, q quantity) float64 {
	value, ok := r.lookup(field)
	if !ok {
		return q.fallback / q.ceiling
	}

	amount, ok := parseQuantity(value, q.buckets)
	if !ok {
		r.report(field, ReasonUnrecognized, value)
		amount = q.fallback
	}
	if amount < 0 {
		r.report(field, ReasonClamped, value)
	}
	return utils.Clamp01(amount / q.ceiling)
}

// parseQuantity reads a number, a bucket token, or a "low-high unit" range
// (which counts as its midpoint).
func parseQuantity(value any, buckets map[string]float64) (float64, bool) {
	if f, ok := answers.Float(value); ok {
		return f, true
	}

	s, isString := value.(string)
	if !isString {
		return 0, false
	}
	token := answers.Fold(s)
	if amount, ok := buckets[token]; ok {
		return amount, true
	}

	fields := strings.Fields(token)
	if len(fields) == 0 {
		return 0, false
	}
	head, _, _ := strings.Cut(fields[0], "/")
	if lo, hi, isRange := strings.Cut(head, "-"); isRange && lo != "" {
		low, okLow := answers.Float(lo)
		high, okHigh := answers.Float(hi)
		if !okLow || !okHigh {
			return 0, false
		}
		return (low + high) / 2, true
	}
	return answers.Float(head)
}

func (r *reader) tools(field string) float64 {
	value, ok := r.lookup(field)
	if !ok {
		return 0
	}

	seen := make(map[string]struct{})
	for _, item := range answers.StringList(value) {
		tool, known := knownTools[answers.Fold(item)]
		if !known {
			r.report(field, ReasonUnknownItem, item)
			continue
		}
		seen[tool] = struct{}{}
	}
	return utils.Clamp01(float64(len(seen)) / toolCeiling)
}
