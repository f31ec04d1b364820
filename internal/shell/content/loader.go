// Package content loads landing page bundles from files and the store and
// hands the page layer a usable landing page even when both fail.
package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/titancargo/courier-site/internal/core/domain"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// =============================================================================
// Errors
// =============================================================================

// ErrInvalidBundle is returned when a bundle does not satisfy the schema.
var ErrInvalidBundle = errors.New("invalid content bundle")

// SchemaError lists every schema violation of a bundle, one per field.
type SchemaError struct {
	Source   string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidBundle
}

// =============================================================================
// Bundle Decoding
// =============================================================================

// LoadFile reads a YAML or JSON bundle from path.
func LoadFile(path string) (*domain.LandingPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content bundle: %w", err)
	}
	return Decode(path, data)
}

// Decode parses a YAML or JSON bundle (JSON is valid YAML), validates it
// against the bundle schema and converts it to a landing page. source names
// the bundle in error messages.
func Decode(source string, data []byte) (*domain.LandingPage, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if doc == nil {
		return nil, &SchemaError{Source: source, Problems: []string{"(root): document is empty"}}
	}

	// Round-trip through JSON so the schema sees exactly what the domain
	// decoder will see.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", source, err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &SchemaError{Source: source, Problems: problems}
	}

	var page domain.LandingPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return &page, nil
}
