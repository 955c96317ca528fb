// Package schema generates and checks JSON Schemas for block payloads. A
// block can publish the schema of the payloads it accepts and reject
// non-conforming input before touching it.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v5"
)

// Generate reflects a JSON Schema (Draft 2020-12) from a Go struct.
func Generate(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(v)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// Validator checks JSON documents against one compiled schema.
type Validator struct {
	schema *jsv.Schema
}

// NewValidator compiles schemaJSON under the given resource name.
func NewValidator(name string, schemaJSON []byte) (*Validator, error) {
	compiler := jsv.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(string(schemaJSON))); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Validator{schema: sch}, nil
}

// ForStruct compiles a validator straight from a Go struct's reflected
// schema.
func ForStruct(name string, v any) (*Validator, error) {
	data, err := Generate(v)
	if err != nil {
		return nil, err
	}
	return NewValidator(name, data)
}

// Validate checks a JSON document against the schema.
func (v *Validator) Validate(doc []byte) error {
	var obj any
	if err := json.Unmarshal(doc, &obj); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := v.schema.Validate(obj); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
