package validator

import (
	"fmt"
	"strings"

	"rendix/internal/domain"
)

// Result represents a single field-level validation outcome.
type Result struct {
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"field_path"`
	ExpectedValue string `json:"expected_value"`
	ActualValue   string `json:"actual_value"`
	Message       string `json:"message"`
}

// Error reports a record that does not satisfy its schema. It carries every
// field-level failure so callers can tell exactly which constraints broke.
type Error struct {
	Schema   string
	Failures []Result
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("record does not conform to schema %q: %s", e.Schema, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() error {
	return domain.ErrRecordInvalid
}

func failure(fieldPath, expected, actual, msg string) Result {
	return Result{
		Passed: false, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}
