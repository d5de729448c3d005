package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/bizfit/internal/matching"
	"github.com/spigell/bizfit/internal/normalizer"
	"github.com/spigell/bizfit/internal/ranking"
	"github.com/spigell/bizfit/internal/traits"
)

// Report is the presentable form of one match run.
type Report struct {
	ID          string                  `json:"id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Source      string                  `json:"source,omitempty"`
	Matches     []ranking.Result        `json:"matches"`
	Vector      traits.Vector           `json:"vector"`
	Diagnostics []normalizer.Diagnostic `json:"diagnostics,omitempty"`
}

// New builds a report from a match outcome. source names where the answers
// came from and is informational only.
func New(outcome *matching.Outcome, source string) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
	}
	if outcome == nil {
		return r
	}

	r.Matches = append([]ranking.Result(nil), outcome.Results...)
	r.Vector = outcome.Vector.Clone()
	r.Diagnostics = append([]normalizer.Diagnostic(nil), outcome.Diagnostics...)
	return r
}

func (r *Report) Len() int {
	return len(r.Matches)
}

// Top returns at most n best matches.
func (r *Report) Top(n int) []ranking.Result {
	if n < 0 {
		n = 0
	}
	if n > len(r.Matches) {
		n = len(r.Matches)
	}
	return r.Matches[:n]
}

func (r *Report) FindByID(id string) *ranking.Result {
	for i := range r.Matches {
		if r.Matches[i].ID == id {
			return &r.Matches[i]
		}
	}
	return nil
}

// ByCategory groups match labels by category. Categories without matches are
// omitted.
func (r *Report) ByCategory() map[ranking.Category][]string {
	report := make(map[ranking.Category][]string)
	for _, m := range r.Matches {
		report[m.Category] = append(report[m.Category], fmt.Sprintf("%s (%d)", m.Name, m.Score))
	}
	return report
}

// Labels returns one line per match in ranking order.
func (r *Report) Labels() []string {
	labels := make([]string, 0, len(r.Matches))
	for i, m := range r.Matches {
		labels = append(labels, fmt.Sprintf("%2d. %s / %s / %d / %s", i+1, m.ID, m.Name, m.Score, m.Category))
	}
	return labels
}

func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "bizfit_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
