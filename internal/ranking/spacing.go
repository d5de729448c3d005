package ranking

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

// Spacing defaults.
const (
	DefaultMinGap = 2
	DefaultMaxGap = 7
)

// NoGap is passed to a GapPicker when there is no previous gap to avoid.
const NoGap = -1

// GapPicker chooses the target gap below the result at index. The returned
// value must be within [minGap, maxGap] and, when the range has more than one
// value, differ from previous.
type GapPicker interface {
	Pick(index, previous, minGap, maxGap int) int
}

var sequenceOffsets = [...]int{1, 3, 0, 2, 4, 1, 5, 2, 0, 3}

// SequencePicker picks gaps from a fixed index-dependent pattern, so the
// same ranking is always spaced the same way.
type SequencePicker struct{}

func (SequencePicker) Name() string { return ModeSequence }

func (SequencePicker) Pick(index, previous, minGap, maxGap int) int {
	span := maxGap - minGap + 1
	if span <= 1 {
		return minGap
	}
	if index < 0 {
		index = -index
	}
	target := minGap + sequenceOffsets[index%len(sequenceOffsets)]%span
	if target == previous {
		target = minGap + (target-minGap+1)%span
	}
	return target
}

// RandomPicker picks gaps at random. It is safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *RandomPicker) Name() string { return ModeRandom }

func (p *RandomPicker) Pick(_, previous, minGap, maxGap int) int {
	span := maxGap - minGap + 1
	if span <= 1 {
		return minGap
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	target := minGap + p.rnd.Intn(span)
	if target == previous {
		target = minGap + (target-minGap+1+p.rnd.Intn(span-1))%span
	}
	return target
}

// Spacer spreads adjacent scores of a sorted ranking apart so the list does
// not read as a wall of near-identical numbers. It only ever lowers scores.
type Spacer struct {
	MinGap int
	MaxGap int
	Picker GapPicker
}

// DefaultSpacer returns a Spacer with the default gaps and the deterministic
// sequence picker.
func DefaultSpacer() Spacer {
	return Spacer{MinGap: DefaultMinGap, MaxGap: DefaultMaxGap, Picker: SequencePicker{}}
}

// PickerName reports the configured picker, "sequence" when none is set.
func (s Spacer) PickerName() string {
	if s.Picker == nil {
		return SequencePicker{}.Name()
	}
	if named, ok := s.Picker.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", s.Picker)
}

// Deterministic reports whether identical input is always spaced identically.
func (s Spacer) Deterministic() bool {
	switch s.Picker.(type) {
	case nil, SequencePicker, *SequencePicker:
		return true
	default:
		return false
	}
}

var ErrInvalidGap = errors.New("invalid spacing gap")

// Validate checks the gap range.
func (s Spacer) Validate() error {
	if s.MinGap < 0 {
		return fmt.Errorf("%w: min gap %d is negative", ErrInvalidGap, s.MinGap)
	}
	if s.MaxGap < s.MinGap {
		return fmt.Errorf("%w: max gap %d is below min gap %d", ErrInvalidGap, s.MaxGap, s.MinGap)
	}
	return nil
}

// Apply adjusts scores of a sorted result list in place and returns how many
// results were lowered. When the gap to the preceding result is below the
// picked target, the score drops to previous minus target, floored at 0.
func (s Spacer) Apply(results []Result) int {
	picker := s.Picker
	if picker == nil {
		picker = SequencePicker{}
	}

	adjusted := 0
	for i := 1; i < len(results); i++ {
		previous := NoGap
		if i >= 2 {
			previous = results[i-2].Score - results[i-1].Score
		}

		target := picker.Pick(i, previous, s.MinGap, s.MaxGap)
		if results[i-1].Score-results[i].Score >= target {
			continue
		}

		lowered := max(results[i-1].Score-target, 0)
		if lowered < results[i].Score {
			results[i].Score = lowered
			adjusted++
		}
	}
	return adjusted
}

// Picker modes accepted by NewPicker.
const (
	ModeSequence = "sequence"
	ModeRandom   = "random"
)

// NewPicker returns the picker for a configured mode. An empty mode selects
// the sequence picker; seed only affects the random picker.
func NewPicker(mode string, seed int64) (GapPicker, error) {
	switch mode {
	case "", ModeSequence:
		return SequencePicker{}, nil
	case ModeRandom:
		return NewRandomPicker(seed), nil
	default:
		return nil, fmt.Errorf("unknown spacing mode %q", mode)
	}
}
