package resume

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func documentSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ValidateMap validates a decoded document map against the embedded resume
// schema. Used on import and before whole-document writes; field patches are
// validated structurally by FieldRef instead.
func ValidateMap(m map[string]any) error {
	s, err := documentSchema()
	if err != nil {
		return fmt.Errorf("failed to load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks the typed document against the embedded schema.
func (d Document) Validate() error {
	m, err := d.ToMap()
	if err != nil {
		return err
	}
	return ValidateMap(m)
}
