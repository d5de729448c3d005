package traits

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Model is a business model together with its ideal respondent profile.
type Model struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Profile Vector `json:"profile" yaml:"profile"`
}

// Catalog is the immutable scoring configuration: trait weights and ideal profiles.
// It is safe for concurrent use.
type Catalog struct {
	weights     Weights
	models      []Model
	index       map[string]int
	fingerprint string
}

// ValidationError captures a single catalog problem.
type ValidationError struct {
	Source  string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, e.Source)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationErrors aggregates every problem found in a catalog.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// NewCatalog validates the tables and returns an immutable catalog.
// Every model must define a value for every weighted trait.
func NewCatalog(weights Weights, models []Model) (*Catalog, error) {
	if errs := validate(weights, models); len(errs) > 0 {
		return nil, errs
	}

	c := &Catalog{
		weights: Weights(Vector(weights).Clone()),
		models:  make([]Model, 0, len(models)),
		index:   make(map[string]int, len(models)),
	}
	for i, m := range models {
		c.models = append(c.models, Model{ID: m.ID, Name: m.Name, Profile: m.Profile.Clone()})
		c.index[m.ID] = i
	}
	c.fingerprint = c.computeFingerprint()

	return c, nil
}

func validate(weights Weights, models []Model) ValidationErrors {
	var errs ValidationErrors

	if len(weights) == 0 {
		errs = append(errs, ValidationError{Field: "weights", Message: "must contain at least one trait"})
	}
	for _, trait := range weights.Traits() {
		w := weights[trait]
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			errs = append(errs, ValidationError{
				Field:   "weights." + string(trait),
				Message: fmt.Sprintf("weight must be a positive number, got %v", w),
			})
		}
	}

	if len(models) == 0 {
		errs = append(errs, ValidationError{Field: "models", Message: "must contain at least one model"})
	}

	seen := make(map[string]struct{}, len(models))
	for idx, m := range models {
		path := fmt.Sprintf("models[%d]", idx)
		if strings.TrimSpace(m.ID) == "" {
			errs = append(errs, ValidationError{Field: path + ".id", Message: "is required"})
		} else {
			path = "models." + m.ID
			if _, dup := seen[m.ID]; dup {
				errs = append(errs, ValidationError{Field: path, Message: "duplicate model id"})
			}
			seen[m.ID] = struct{}{}
		}
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, ValidationError{Field: path + ".name", Message: "is required"})
		}

		for _, trait := range weights.Traits() {
			value, ok := m.Profile[trait]
			if !ok {
				errs = append(errs, ValidationError{
					Field:   path + ".profile." + string(trait),
					Message: "missing ideal value for weighted trait",
				})
				continue
			}
			if math.IsNaN(value) || value < 0 || value > 1 {
				errs = append(errs, ValidationError{
					Field:   path + ".profile." + string(trait),
					Message: fmt.Sprintf("ideal value must be within [0, 1], got %v", value),
				})
			}
		}
		for _, trait := range m.Profile.Traits() {
			if _, ok := weights[trait]; !ok {
				errs = append(errs, ValidationError{
					Field:   path + ".profile." + string(trait),
					Message: "trait has no weight",
				})
			}
		}
	}

	return errs
}

// Weights returns a copy of the trait weight table.
func (c *Catalog) Weights() Weights {
	return Weights(Vector(c.weights).Clone())
}

// Traits returns the weighted traits in sorted order.
func (c *Catalog) Traits() []Trait {
	return c.weights.Traits()
}

// Models returns copies of every configured model in catalog order.
func (c *Catalog) Models() []Model {
	out := make([]Model, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, Model{ID: m.ID, Name: m.Name, Profile: m.Profile.Clone()})
	}
	return out
}

// Model looks a model up by id.
func (c *Catalog) Model(id string) (Model, bool) {
	idx, ok := c.index[id]
	if !ok {
		return Model{}, false
	}
	m := c.models[idx]
	return Model{ID: m.ID, Name: m.Name, Profile: m.Profile.Clone()}, true
}

// Len returns the number of configured models.
func (c *Catalog) Len() int {
	return len(c.models)
}

// Fingerprint identifies the catalog content. Equal tables give equal fingerprints.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func (c *Catalog) computeFingerprint() string {
	h := sha256.New()
	for _, trait := range c.weights.Traits() {
		fmt.Fprintf(h, "w:%s=%s\n", trait, strconv.FormatFloat(c.weights[trait], 'g', -1, 64))
	}

	ids := make([]string, 0, len(c.models))
	for _, m := range c.models {
		ids = append(ids, m.ID)
	}
	slices.Sort(ids)

	for _, id := range ids {
		m := c.models[c.index[id]]
		fmt.Fprintf(h, "m:%s|%s\n", m.ID, m.Name)
		for _, trait := range m.Profile.Traits() {
			fmt.Fprintf(h, "p:%s=%s\n", trait, strconv.FormatFloat(m.Profile[trait], 'g', -1, 64))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
