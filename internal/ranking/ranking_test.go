package ranking

import (
	"reflect"
	"sync"
	"testing"
)

func TestSortOrdersByScoreThenID(t *testing.T) {
	results := []Result{
		{ID: "c", Score: 70},
		{ID: "b", Score: 90},
		{ID: "a", Score: 70},
		{ID: "d", Score: 95},
	}

	Sort(results)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []string{"d", "b", "a", "c"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestCategorize(t *testing.T) {
	results := []Result{
		{ID: "a", Score: 50},
		{ID: "b", Score: 45},
		{ID: "c", Score: 41},
		{ID: "d", Score: 80},
		{ID: "e", Score: 75},
		{ID: "f", Score: 74},
		{ID: "g", Score: 55},
		{ID: "h", Score: 54},
	}

	Categorize(results)

	want := []Category{BestFit, BestFit, BestFit, StrongFit, StrongFit, PossibleFit, PossibleFit, PoorFit}
	for i, r := range results {
		if r.Category != want[i] {
			t.Fatalf("result %s: expected %q, got %q", r.ID, want[i], r.Category)
		}
	}
}

func TestSequencePickerAvoidsPreviousGap(t *testing.T) {
	var p SequencePicker
	for index := 0; index < 50; index++ {
		for previous := NoGap; previous <= 9; previous++ {
			got := p.Pick(index, previous, DefaultMinGap, DefaultMaxGap)
			if got < DefaultMinGap || got > DefaultMaxGap {
				t.Fatalf("index %d: gap %d out of range", index, got)
			}
			if got == previous {
				t.Fatalf("index %d: repeated previous gap %d", index, previous)
			}
			if again := p.Pick(index, previous, DefaultMinGap, DefaultMaxGap); again != got {
				t.Fatalf("index %d: picker is not deterministic", index)
			}
		}
	}

	if got := p.Pick(3, 4, 4, 4); got != 4 {
		t.Fatalf("expected the only gap in a single-value range, got %d", got)
	}
}

func TestRandomPickerIsConcurrencySafe(t *testing.T) {
	p := NewRandomPicker(42)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := p.Pick(i, 3, DefaultMinGap, DefaultMaxGap)
				if got < DefaultMinGap || got > DefaultMaxGap || got == 3 {
					t.Errorf("unexpected gap %d", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func spaced(scores ...int) []Result {
	results := make([]Result, len(scores))
	for i, s := range scores {
		results[i] = Result{ID: string(rune('a' + i)), Score: s}
	}
	return results
}

func scoresOf(results []Result) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Score
	}
	return out
}

func TestSpacerInvariants(t *testing.T) {
	inputs := [][]int{
		{96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96, 96},
		{90, 89, 88, 87, 86, 85, 84, 83, 82, 81},
		{96, 80, 79, 60, 59, 58, 45, 44, 43, 40},
		{50, 48, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3},
	}

	for _, picker := range []GapPicker{SequencePicker{}, NewRandomPicker(7)} {
		for _, in := range inputs {
			original := spaced(in...)
			results := spaced(in...)
			s := Spacer{MinGap: DefaultMinGap, MaxGap: DefaultMaxGap, Picker: picker}
			s.Apply(results)

			for i := range results {
				if results[i].Score > original[i].Score {
					t.Fatalf("score raised at %d: %v -> %v", i, scoresOf(original), scoresOf(results))
				}
				if results[i].Score < 0 {
					t.Fatalf("negative score at %d: %v", i, scoresOf(results))
				}
				if i == 0 {
					continue
				}
				gap := results[i-1].Score - results[i].Score
				if gap < 0 {
					t.Fatalf("order inverted at %d: %v", i, scoresOf(results))
				}
				if gap < DefaultMinGap && results[i].Score != 0 {
					t.Fatalf("gap %d below minimum at %d: %v", gap, i, scoresOf(results))
				}
				if results[i].Score != original[i].Score && gap > DefaultMaxGap {
					t.Fatalf("introduced gap %d above maximum at %d: %v", gap, i, scoresOf(results))
				}
			}
		}
	}
}

func TestSpacerKeepsNaturalWideGaps(t *testing.T) {
	results := spaced(96, 60, 20)
	adjusted := DefaultSpacer().Apply(results)
	if adjusted != 0 {
		t.Fatalf("expected no adjustment, got %d", adjusted)
	}
	if !reflect.DeepEqual(scoresOf(results), []int{96, 60, 20}) {
		t.Fatalf("unexpected scores: %v", scoresOf(results))
	}
}

func TestSpacerFloorsAtZero(t *testing.T) {
	results := spaced(4, 4, 4, 4)
	DefaultSpacer().Apply(results)

	if results[len(results)-1].Score != 0 {
		t.Fatalf("expected floor at zero, got %v", scoresOf(results))
	}
}

func TestSpacerIsDeterministic(t *testing.T) {
	first := spaced(88, 88, 87, 85, 85, 70, 69)
	second := spaced(88, 88, 87, 85, 85, 70, 69)

	DefaultSpacer().Apply(first)
	DefaultSpacer().Apply(second)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical spacing: %v vs %v", scoresOf(first), scoresOf(second))
	}
}

func TestSpacerSequenceExample(t *testing.T) {
	results := spaced(90, 90, 90, 90)
	DefaultSpacer().Apply(results)

	// targets follow the pattern 5, 2, 4 for indexes 1..3
	if !reflect.DeepEqual(scoresOf(results), []int{90, 85, 83, 79}) {
		t.Fatalf("unexpected scores: %v", scoresOf(results))
	}
}

func TestSpacerValidate(t *testing.T) {
	if err := DefaultSpacer().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Spacer{MinGap: 5, MaxGap: 3}).Validate(); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if err := (Spacer{MinGap: -1, MaxGap: 3}).Validate(); err == nil {
		t.Fatalf("expected error for negative gap")
	}
}

func TestSpacerDescribesPicker(t *testing.T) {
	if s := DefaultSpacer(); s.PickerName() != "sequence" || !s.Deterministic() {
		t.Fatalf("unexpected default spacer: %s deterministic=%v", s.PickerName(), s.Deterministic())
	}
	s := Spacer{MinGap: 2, MaxGap: 7, Picker: NewRandomPicker(1)}
	if s.PickerName() != "random" || s.Deterministic() {
		t.Fatalf("unexpected random spacer: %s deterministic=%v", s.PickerName(), s.Deterministic())
	}
	if (Spacer{}).PickerName() != "sequence" {
		t.Fatalf("expected sequence picker when none is set")
	}
}

func TestNewPicker(t *testing.T) {
	for mode, want := range map[string]string{"": ModeSequence, ModeSequence: ModeSequence, ModeRandom: ModeRandom} {
		p, err := NewPicker(mode, 1)
		if err != nil {
			t.Fatalf("mode %q: %v", mode, err)
		}
		if got := (Spacer{Picker: p}).PickerName(); got != want {
			t.Fatalf("mode %q: expected %s, got %s", mode, want, got)
		}
	}
	if _, err := NewPicker("chaotic", 1); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
