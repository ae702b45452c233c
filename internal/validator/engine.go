package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rendix/internal/domain"
	"rendix/internal/schema"
)

// Engine validates normalized records against their declared schemas. Shape
// contracts are compiled once at construction, so a malformed schema surfaces
// at startup rather than on the first request.
type Engine struct {
	specs    map[domain.DocumentType]schema.RecordSchema
	compiled map[domain.DocumentType]*jsonschema.Schema
}

// NewEngine validates and compiles every given schema.
func NewEngine(schemas ...schema.RecordSchema) (*Engine, error) {
	e := &Engine{
		specs:    make(map[domain.DocumentType]schema.RecordSchema, len(schemas)),
		compiled: make(map[domain.DocumentType]*jsonschema.Schema, len(schemas)),
	}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		compiled, err := compileShape(s)
		if err != nil {
			return nil, fmt.Errorf("%w: compiling shape contract for %q: %v", domain.ErrMalformedSchema, s.Name, err)
		}
		e.specs[s.DocumentType] = s
		e.compiled[s.DocumentType] = compiled
	}
	return e, nil
}

func compileShape(s schema.RecordSchema) (*jsonschema.Schema, error) {
	b, err := json.Marshal(s.JSONSchema())
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	resource := s.Name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return compiler.Compile(resource)
}

// ValidateRecord checks a normalized record against its schema: required
// fields present and non-null, enum values inside their declared sets, list
// entries well-formed, and the record as a whole conforming to the shape
// contract given to the model. Failures come back as *Error wrapping
// domain.ErrRecordInvalid.
func (e *Engine) ValidateRecord(dt domain.DocumentType, rec domain.Record) error {
	s, ok := e.specs[dt]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, dt)
	}

	failures := checkFields("", s.Fields, rec)

	if len(failures) == 0 {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record for shape check: %w", err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decoding record for shape check: %w", err)
		}
		if err := e.compiled[dt].Validate(v); err != nil {
			failures = append(failures, failure("", s.Name, "", fmt.Sprintf("shape contract violation: %v", err)))
		}
	}

	if len(failures) > 0 {
		return &Error{Schema: s.Name, Failures: failures}
	}
	return nil
}

func checkFields(prefix string, fields []schema.FieldSpec, rec domain.Record) []Result {
	var failures []Result
	for _, f := range fields {
		path := prefix + f.Name
		v := rec[f.Name]

		if v == nil {
			if f.Required {
				failures = append(failures, failure(path, "non-null "+string(f.Type), "null",
					fmt.Sprintf("required field %s is null", path)))
			}
			continue
		}

		switch f.Type {
		case schema.FieldNumber:
			if _, ok := v.(float64); !ok {
				failures = append(failures, typeFailure(path, "number", v))
			}
		case schema.FieldString, schema.FieldDate:
			if _, ok := v.(string); !ok {
				failures = append(failures, typeFailure(path, "string", v))
			}
		case schema.FieldEnum:
			s, ok := v.(string)
			if !ok {
				failures = append(failures, typeFailure(path, "string", v))
				break
			}
			member := false
			for _, allowed := range f.Enum {
				if s == allowed {
					member = true
					break
				}
			}
			if !member {
				failures = append(failures, failure(path, "one of "+strings.Join(f.Enum, ", "), s,
					fmt.Sprintf("field %s holds %q, outside its declared value set", path, s)))
			}
		case schema.FieldStringList:
			ss, ok := v.([]string)
			if !ok {
				failures = append(failures, typeFailure(path, "list of strings", v))
				break
			}
			if f.Required && len(ss) == 0 {
				failures = append(failures, failure(path, "non-empty list", "empty list",
					fmt.Sprintf("required field %s is empty", path)))
			}
		case schema.FieldList:
			entries, ok := v.([]domain.Record)
			if !ok {
				failures = append(failures, typeFailure(path, "list of records", v))
				break
			}
			for i, entry := range entries {
				entryPrefix := fmt.Sprintf("%s[%d].", path, i)
				failures = append(failures, checkFields(entryPrefix, f.Fields, entry)...)
			}
		}
	}
	return failures
}

func typeFailure(path, expected string, v any) Result {
	return failure(path, expected, fmt.Sprintf("%T", v),
		fmt.Sprintf("field %s holds a %T, not a %s", path, v, expected))
}
