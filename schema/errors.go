package schema

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigError through errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ErrorKind is the stable discriminant of a ConfigError.
type ErrorKind int

const (
	// MalformedReference is a relation target that is not "app.Model".
	MalformedReference ErrorKind = iota + 1
	// UnresolvedReference is a relation target naming an unknown app or model.
	UnresolvedReference
	// InvalidOnDelete is an on-delete action outside the recognized set.
	InvalidOnDelete
	// SetNullNotNullable is SET_NULL on a relation that is not nullable.
	SetNullNotNullable
	// CyclicReference means no emission order satisfies the required foreign keys.
	CyclicReference
	// InvalidPrimaryKey covers duplicate, self-referencing or non-integer generated keys.
	InvalidPrimaryKey
	// UnknownField is a composite unique or index tuple naming a missing field.
	UnknownField
	// DuplicateModel is the same "app.Model" declared twice.
	DuplicateModel
	// InvalidField is a field whose type attributes cannot be rendered.
	InvalidField
	// DuplicateTable is a table name claimed by two models or join tables.
	DuplicateTable
)

var kindNames = map[ErrorKind]string{
	MalformedReference:  "malformed_reference",
	UnresolvedReference: "unresolved_reference",
	InvalidOnDelete:     "invalid_on_delete",
	SetNullNotNullable:  "set_null_not_nullable",
	CyclicReference:     "cyclic_reference",
	InvalidPrimaryKey:   "invalid_primary_key",
	UnknownField:        "unknown_field",
	DuplicateModel:      "duplicate_model",
	InvalidField:        "invalid_field",
	DuplicateTable:      "duplicate_table",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON reports stay readable.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ConfigError reports an invalid model declaration.
type ConfigError struct {
	Kind   ErrorKind `json:"kind"`
	Model  string    `json:"model,omitempty"` // "app.Model"
	Field  string    `json:"field,omitempty"` // field or relation name
	Detail string    `json:"detail"`
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	switch {
	case e.Model != "" && e.Field != "":
		return fmt.Sprintf("%s.%s: %s", e.Model, e.Field, e.Detail)
	case e.Model != "":
		return fmt.Sprintf("%s: %s", e.Model, e.Detail)
	}
	return e.Detail
}

// Is reports whether the target is ErrConfiguration.
func (e *ConfigError) Is(err error) bool {
	return err == ErrConfiguration
}

// NewConfigError returns a ConfigError with a formatted detail.
func NewConfigError(kind ErrorKind, model, field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Kind:   kind,
		Model:  model,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is, or wraps, a ConfigError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *ConfigError
	return errors.As(err, &e) && e.Kind == kind
}
