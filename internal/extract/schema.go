package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dami-akins/formintake/internal/catalog"
	"github.com/dami-akins/formintake/internal/common"
)

// RecordSchema derives the JSON Schema for the flat attribute record handed
// to the prediction collaborator: one nullable, typed property per catalog
// field, with enums on the categorical ones.
func RecordSchema(cat *catalog.Catalog) map[string]any {
	props := make(map[string]any, cat.Size())
	for _, spec := range cat.Fields() {
		props[spec.CanonicalName] = fieldSchema(spec)
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "InsuranceApplicationRecord",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func fieldSchema(spec catalog.FieldSpec) map[string]any {
	m := map[string]any{}
	if spec.Description != "" {
		m["description"] = spec.Description
	}
	switch spec.Type {
	case catalog.TypeInt:
		m["type"] = []string{"integer", "null"}
	case catalog.TypeFloat:
		m["type"] = []string{"number", "null"}
	case catalog.TypeBool:
		m["type"] = []string{"boolean", "null"}
	default:
		m["type"] = []string{"string", "null"}
		if len(spec.ValidValues) > 0 {
			enum := make([]any, 0, len(spec.ValidValues)+1)
			for _, v := range spec.ValidValues {
				enum = append(enum, v)
			}
			m["enum"] = append(enum, nil)
		}
	}
	return m
}

// RecordValidator checks outbound attribute records against the catalog
// schema. A validation failure flags an off-contract value (wrong type, or a
// categorical value the cast could not canonicalize) for review.
type RecordValidator struct {
	schema *jsonschema.Schema
}

func NewRecordValidator(cat *catalog.Catalog) (*RecordValidator, error) {
	raw, err := json.Marshal(RecordSchema(cat))
	if err != nil {
		return nil, fmt.Errorf("marshal record schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("record.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	return &RecordValidator{schema: schema}, nil
}

// ValidateRecord checks one flat record. The record is round-tripped through
// JSON first so Go ints and typed values validate as plain JSON numbers.
func (v *RecordValidator) ValidateRecord(record map[string]any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return nil
}
