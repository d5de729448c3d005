package traits

import (
	"fmt"
	"os"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchema string

var schemaLoader = gojsonschema.NewStringLoader(catalogSchema)

const documentVersion = 1

type document struct {
	Version int                `mapstructure:"version" yaml:"version"`
	Weights map[string]float64 `mapstructure:"weights" yaml:"weights"`
	Models  []documentModel    `mapstructure:"models" yaml:"models"`
}

type documentModel struct {
	ID      string             `mapstructure:"id" yaml:"id"`
	Name    string             `mapstructure:"name" yaml:"name"`
	Profile map[string]float64 `mapstructure:"profile" yaml:"profile"`
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates a YAML catalog document against the catalog schema and
// builds a Catalog from it. Problems are reported as ValidationErrors.
func Parse(data []byte, source string) (*Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ValidationErrors{{Source: source, Field: "yaml", Message: err.Error()}}
	}
	if raw == nil {
		return nil, ValidationErrors{{Source: source, Message: "catalog document is empty"}}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", source, err)
	}
	if !result.Valid() {
		errs := make(ValidationErrors, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, ValidationError{Source: source, Field: e.Field(), Message: e.Description()})
		}
		return nil, errs
	}

	var doc document
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", source, err)
	}

	var errs ValidationErrors
	weights := make(Weights, len(doc.Weights))
	for name, w := range doc.Weights {
		if !Known(name) {
			errs = append(errs, ValidationError{Source: source, Field: "weights." + name, Message: "unknown trait"})
			continue
		}
		weights[Trait(name)] = w
	}

	models := make([]Model, 0, len(doc.Models))
	for _, m := range doc.Models {
		profile := make(Vector, len(m.Profile))
		for name, v := range m.Profile {
			profile[Trait(name)] = v
		}
		models = append(models, Model{ID: m.ID, Name: m.Name, Profile: profile})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	c, err := NewCatalog(weights, models)
	if err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			for i := range verrs {
				verrs[i].Source = source
			}
			return nil, verrs
		}
		return nil, err
	}
	return c, nil
}

// Encode renders the catalog as a YAML document accepted by Parse.
func Encode(c *Catalog) ([]byte, error) {
	doc := document{
		Version: documentVersion,
		Weights: make(map[string]float64, len(c.weights)),
		Models:  make([]documentModel, 0, len(c.models)),
	}
	for trait, w := range c.weights {
		doc.Weights[string(trait)] = w
	}
	for _, m := range c.models {
		profile := make(map[string]float64, len(m.Profile))
		for trait, v := range m.Profile {
			profile[string(trait)] = v
		}
		doc.Models = append(doc.Models, documentModel{ID: m.ID, Name: m.Name, Profile: profile})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return out, nil
}
