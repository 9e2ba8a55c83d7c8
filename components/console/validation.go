package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadValidator checks a backend response payload against the schema
// registered for its endpoint. Endpoints with no schema pass.
type PayloadValidator interface {
	Validate(endpoint string, payload any) error
}

// JSONSchemaValidator compiles endpoint schemas on first use and caches the
// compiled form.
type JSONSchemaValidator struct {
	schemas  map[string]map[string]any
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator from endpoint name to JSON
// schema documents.
func NewJSONSchemaValidator(schemas map[string]map[string]any) *JSONSchemaValidator {
	return &JSONSchemaValidator{
		schemas:  schemas,
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the payload satisfies the endpoint's schema.
func (v *JSONSchemaValidator) Validate(endpoint string, payload any) error {
	raw, ok := v.schemas[endpoint]
	if !ok || len(raw) == 0 {
		return nil
	}
	schema, err := v.schemaFor(endpoint, raw)
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("console: marshal payload for %s: %w", endpoint, err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("console: normalize payload for %s: %w", endpoint, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("console: payload for %s failed validation: %w", endpoint, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(endpoint string, raw map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[endpoint]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("console: marshal schema %s: %w", endpoint, err)
	}
	compiler := jsonschema.NewCompiler()
	name := endpoint + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("console: load schema %s: %w", endpoint, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("console: compile schema %s: %w", endpoint, err)
	}
	v.mu.Lock()
	v.compiled[endpoint] = compiled
	v.mu.Unlock()
	return compiled, nil
}
