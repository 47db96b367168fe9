// Package errs holds the error kinds shared by services and the HTTP layer.
// Services wrap a kind into their own sentinels (fmt.Errorf("...: %w", kind))
// so that handlers can map any service error with errors.Is.
package errs

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrUnavailable     = errors.New("service unavailable")
)

// FieldsError is a validation or conflict failure tied to request fields.
type FieldsError struct {
	kind   error
	Fields map[string]string
}

func (e *FieldsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.kind.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FieldsError) Unwrap() error {
	return e.kind
}

func Validation(field, msg string) error {
	return &FieldsError{kind: ErrValidation, Fields: map[string]string{field: msg}}
}

func Conflict(field, msg string) error {
	return &FieldsError{kind: ErrConflict, Fields: map[string]string{field: msg}}
}
