package schema

import (
	"fmt"
	"slices"

	"rendix/internal/domain"
)

// FieldType classifies a record field's semantic type.
type FieldType string

const (
	FieldString     FieldType = "string"
	FieldNumber     FieldType = "number"
	FieldDate       FieldType = "date"
	FieldEnum       FieldType = "enum"
	FieldStringList FieldType = "string_list"
	FieldList       FieldType = "list"
)

// Transform names a field-specific canonicalization applied after the
// generic per-type normalization.
type Transform string

const (
	TransformNone       Transform = ""
	TransformPlate      Transform = "plate"
	TransformPersonName Transform = "person_name"
)

// FieldSpec declares one field of a record schema. Description is the
// instruction text shown to the model for this field.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Required    bool
	Enum        []string    // allowed values when Type == FieldEnum
	Fallback    string      // enum member unmatched labels map onto; empty means unmatched becomes null
	Description string
	Fields      []FieldSpec // element fields when Type == FieldList
	Transform   Transform
	DefaultNow  bool // date fields absent from the document take the run's current date
}

// RecordSchema is the declarative contract for one document type's output
// shape. Field order is the record's canonical column order.
type RecordSchema struct {
	DocumentType domain.DocumentType
	Name         string
	Fields       []FieldSpec
}

// Field returns the FieldSpec for the named field.
func (s RecordSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns every declared field name in order.
func (s RecordSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// RequiredFields returns the names of fields that must be present and
// non-null in a conforming record.
func (s RecordSchema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Validate checks the schema declaration itself. A failure here is a
// deployment defect, reported at startup, never at request time.
func (s RecordSchema) Validate() error {
	if !s.DocumentType.Valid() {
		return fmt.Errorf("schema %q: %w: %q", s.Name, domain.ErrUnknownDocumentType, s.DocumentType)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: schema for %q has no name", domain.ErrMalformedSchema, s.DocumentType)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema %q declares no fields", domain.ErrMalformedSchema, s.Name)
	}
	return validateFields(s.Name, s.Fields)
}

func validateFields(schemaName string, fields []FieldSpec) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%w: schema %q has an unnamed field", domain.ErrMalformedSchema, schemaName)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: schema %q declares field %q twice", domain.ErrMalformedSchema, schemaName, f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case FieldString, FieldNumber, FieldDate, FieldStringList:
		case FieldEnum:
			if len(f.Enum) == 0 {
				return fmt.Errorf("%w: enum field %q has no values", domain.ErrMalformedSchema, f.Name)
			}
			if f.Fallback != "" && !slices.Contains(f.Enum, f.Fallback) {
				return fmt.Errorf("%w: enum field %q falls back to %q, which it does not declare", domain.ErrMalformedSchema, f.Name, f.Fallback)
			}
		case FieldList:
			if len(f.Fields) == 0 {
				return fmt.Errorf("%w: list field %q has no element fields", domain.ErrMalformedSchema, f.Name)
			}
			if err := validateFields(schemaName, f.Fields); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: field %q has unknown type %q", domain.ErrMalformedSchema, f.Name, f.Type)
		}
	}
	return nil
}

// JSONSchema renders the shape contract sent to the model as a JSON-Schema
// (draft 2020-12 subset) generic map. Optional fields admit null so the model
// can obey the "never fabricate, use null" rule; date format is left to the
// instruction text and the normalizer, not the shape check.
func (s RecordSchema) JSONSchema() map[string]any {
	return objectSchema(s.Fields)
}

func objectSchema(fields []FieldSpec) map[string]any {
	props := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	obj := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func fieldSchema(f FieldSpec) map[string]any {
	var prop map[string]any
	switch f.Type {
	case FieldNumber:
		prop = scalarProp("number", f.Required)
	case FieldEnum:
		if f.Required {
			prop = map[string]any{"type": "string", "enum": f.Enum}
		} else {
			prop = map[string]any{"anyOf": []any{
				map[string]any{"type": "string", "enum": f.Enum},
				map[string]any{"type": "null"},
			}}
		}
	case FieldStringList:
		prop = map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case FieldList:
		prop = map[string]any{
			"type":  "array",
			"items": objectSchema(f.Fields),
		}
	default: // FieldString, FieldDate
		prop = scalarProp("string", f.Required)
	}
	if f.Description != "" {
		prop["description"] = f.Description
	}
	return prop
}

func scalarProp(typ string, required bool) map[string]any {
	if required {
		return map[string]any{"type": typ}
	}
	return map[string]any{"type": []any{typ, "null"}}
}
