package matching

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/normalizer"
	"github.com/spigell/bizfit/internal/ranking"
	"github.com/spigell/bizfit/internal/scoring"
	"github.com/spigell/bizfit/internal/traits"
)

var (
	ErrNoCatalog    = errors.New("catalog is required")
	ErrUnknownModel = errors.New("unknown business model")
)

// Recorder receives every finished outcome. It is used for instrumentation.
type Recorder interface {
	ObserveMatch(o *Outcome)
}

// Outcome is the full result of one match run.
type Outcome struct {
	Vector  traits.Vector    `json:"vector"`
	Results []ranking.Result `json:"results"`
	// Unspaced holds each model's score before spacing, keyed by model ID.
	Unspaced    map[string]int          `json:"unspaced"`
	Diagnostics []normalizer.Diagnostic `json:"diagnostics,omitempty"`
	Steps       []Step                  `json:"steps"`
	Duration    time.Duration           `json:"duration"`
}

// Adjusted returns how many scores the spacing stage lowered.
func (o *Outcome) Adjusted() int {
	for _, s := range o.Steps {
		if s.Name == StageSpacing {
			return s.Changed
		}
	}
	return 0
}

// Engine turns answer records into ranked, categorized business models.
// It is safe for concurrent use; nothing survives a call to Match.
type Engine struct {
	catalog    *traits.Catalog
	normalizer *normalizer.Normalizer
	scorer     *scoring.Scorer
	spacer     ranking.Spacer
	stages     []Stage
	disabled   map[string]string
	logger     *zap.Logger
	recorder   Recorder
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSpacer replaces the default spacing configuration.
func WithSpacer(spacer ranking.Spacer) Option {
	return func(e *Engine) {
		e.spacer = spacer
	}
}

// WithoutSpacing disables the spacing stage. Scores are then reported as
// computed.
func WithoutSpacing(reason string) Option {
	return func(e *Engine) {
		e.disabled[StageSpacing] = reason
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) {
		e.recorder = recorder
	}
}

// New builds an engine around an immutable catalog.
func New(catalog *traits.Catalog, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	e := &Engine{
		catalog:  catalog,
		spacer:   ranking.DefaultSpacer(),
		disabled: make(map[string]string),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.spacer.Validate(); err != nil {
		return nil, fmt.Errorf("spacing: %w", err)
	}

	e.normalizer = normalizer.New(normalizer.WithLogger(e.logger))
	e.scorer = scoring.NewScorer(catalog.Weights())
	e.stages = []Stage{
		newNormalizeStage(e.normalizer),
		newScoreStage(e.scorer, catalog),
		newSortStage(),
		newSpacingStage(e.spacer),
		newCategorizeStage(),
	}
	for name, reason := range e.disabled {
		DisableByName(e.stages, name, reason)
	}

	return e, nil
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *traits.Catalog {
	return e.catalog
}

// Spacer returns the spacing configuration and whether the stage is enabled.
func (e *Engine) Spacer() (ranking.Spacer, bool) {
	for _, s := range e.stages {
		if s.Name() == StageSpacing {
			return e.spacer, s.IsEnabled()
		}
	}
	return e.spacer, false
}

// Describe returns the status of every pipeline stage.
func (e *Engine) Describe() []Status {
	return Describe(e.stages)
}

// Match runs the full pipeline for rec. rec is not modified.
func (e *Engine) Match(rec answers.Record) *Outcome {
	started := time.Now()

	run := &run{record: rec}
	steps := make([]Step, 0, len(e.stages))
	for _, stage := range e.stages {
		if !stage.IsEnabled() {
			e.logger.Debug("stage disabled", zap.String("name", stage.Name()))
			continue
		}

		step := stage.Apply(run)
		step.Name = stage.Name()
		steps = append(steps, step)

		e.logger.Debug("match step",
			zap.String("name", step.Name),
			zap.Int("items", step.Items),
			zap.Int("changed", step.Changed),
		)
	}

	outcome := &Outcome{
		Vector:      run.vector,
		Results:     run.results,
		Unspaced:    run.unspaced,
		Diagnostics: run.diagnostics,
		Steps:       steps,
		Duration:    time.Since(started),
	}

	if e.recorder != nil {
		e.recorder.ObserveMatch(outcome)
	}
	return outcome
}

// Explain compares a trait vector with one model's ideal profile.
func (e *Engine) Explain(vector traits.Vector, modelID string) ([]scoring.TraitMatch, error) {
	model, ok := e.catalog.Model(modelID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelID)
	}
	return e.scorer.Breakdown(vector, model.Profile), nil
}
