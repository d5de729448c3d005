package matching

import (
	"strconv"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/normalizer"
	"github.com/spigell/bizfit/internal/ranking"
	"github.com/spigell/bizfit/internal/scoring"
	"github.com/spigell/bizfit/internal/traits"
)

// Stage names.
const (
	StageNormalize  = "normalize"
	StageScore      = "score"
	StageSort       = "sort"
	StageSpacing    = "spacing"
	StageCategorize = "categorize"
)

// Stage is a single step of the match pipeline.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(r *run) Step
}

// Step describes the result of executing a stage.
type Step struct {
	Name string `json:"name"`
	// Items is the number of entries the stage worked on.
	Items int `json:"items"`
	// Changed is the number of entries the stage altered or flagged.
	Changed int `json:"changed"`
}

// Status represents configuration of a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// run carries the state of one Match call between stages.
type run struct {
	record      answers.Record
	vector      traits.Vector
	diagnostics []normalizer.Diagnostic
	results     []ranking.Result
	unspaced    map[string]int
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}

// requiredStage is embedded by stages the pipeline cannot run without.
type requiredStage struct{}

func (requiredStage) Disable(string) {}

func (requiredStage) IsEnabled() bool { return true }

type normalizeStage struct {
	requiredStage
	normalizer *normalizer.Normalizer
}

func newNormalizeStage(n *normalizer.Normalizer) Stage {
	return &normalizeStage{normalizer: n}
}

func (s *normalizeStage) Name() string { return StageNormalize }

func (s *normalizeStage) Apply(r *run) Step {
	res := s.normalizer.Normalize(r.record)
	r.vector = res.Vector
	r.diagnostics = res.Diagnostics
	return Step{Items: len(res.Vector), Changed: len(res.Diagnostics)}
}

type scoreStage struct {
	requiredStage
	scorer *scoring.Scorer
	models []traits.Model
}

func newScoreStage(scorer *scoring.Scorer, catalog *traits.Catalog) Stage {
	return &scoreStage{scorer: scorer, models: catalog.Models()}
}

func (s *scoreStage) Name() string { return StageScore }

func (s *scoreStage) Apply(r *run) Step {
	r.results = make([]ranking.Result, 0, len(s.models))
	r.unspaced = make(map[string]int, len(s.models))
	for _, m := range s.models {
		score := s.scorer.Score(r.vector, m.Profile)
		r.results = append(r.results, ranking.Result{ID: m.ID, Name: m.Name, Score: score.Value})
		r.unspaced[m.ID] = score.Value
	}
	return Step{Items: len(r.results)}
}

type sortStage struct {
	requiredStage
}

func newSortStage() Stage {
	return &sortStage{}
}

func (s *sortStage) Name() string { return StageSort }

func (s *sortStage) Apply(r *run) Step {
	before := make([]string, len(r.results))
	for i, res := range r.results {
		before[i] = res.ID
	}

	ranking.Sort(r.results)

	moved := 0
	for i, res := range r.results {
		if before[i] != res.ID {
			moved++
		}
	}
	return Step{Items: len(r.results), Changed: moved}
}

type spacingStage struct {
	enabled bool
	reason  string
	spacer  ranking.Spacer
}

func newSpacingStage(spacer ranking.Spacer) Stage {
	return &spacingStage{enabled: true, spacer: spacer}
}

func (s *spacingStage) Name() string { return StageSpacing }

func (s *spacingStage) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *spacingStage) IsEnabled() bool { return s.enabled }

func (s *spacingStage) Apply(r *run) Step {
	adjusted := s.spacer.Apply(r.results)
	return Step{Items: len(r.results), Changed: adjusted}
}

func (s *spacingStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: s.enabled,
		Reason:  s.reason,
		Details: map[string]string{
			"min_gap": strconv.Itoa(s.spacer.MinGap),
			"max_gap": strconv.Itoa(s.spacer.MaxGap),
			"picker":  s.spacer.PickerName(),
		},
	}
}

type categorizeStage struct {
	requiredStage
}

func newCategorizeStage() Stage {
	return &categorizeStage{}
}

func (s *categorizeStage) Name() string { return StageCategorize }

func (s *categorizeStage) Apply(r *run) Step {
	ranking.Categorize(r.results)

	best := 0
	for _, res := range r.results {
		if res.Category == ranking.BestFit {
			best++
		}
	}
	return Step{Items: len(r.results), Changed: best}
}
