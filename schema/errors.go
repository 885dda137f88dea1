package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrRedefinition indicates a type name was registered twice.
	ErrRedefinition = errors.New("apigen: type redefinition")
	// ErrUnknownType indicates a reference to a type that is not registered.
	ErrUnknownType = errors.New("apigen: unknown type")
	// ErrUnexpectedField indicates the document supplied a field the entity does not declare.
	ErrUnexpectedField = errors.New("apigen: unexpected field")
	// ErrMissingField indicates the document omitted a required field.
	ErrMissingField = errors.New("apigen: missing required field")
	// ErrInvalidSchema indicates a schema definition error.
	ErrInvalidSchema = errors.New("apigen: invalid schema")
	// ErrEmptyAPI indicates a document that declares no entities.
	ErrEmptyAPI = errors.New("apigen: api defines no entities")
	// ErrAliasCycle indicates an alias chain that never reaches a concrete type.
	ErrAliasCycle = errors.New("apigen: alias cycle")
)

// RedefinitionError is returned when a type name is already registered.
type RedefinitionError struct {
	Name      string
	Existing  string // description of the registered definition
	Redefined string // description of the rejected definition
}

// Error implements the error interface.
func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("apigen: %s already defined as %s, can't redefine as %s", e.Name, e.Existing, e.Redefined)
}

// Is reports whether the target matches ErrRedefinition.
func (e *RedefinitionError) Is(target error) bool {
	return target == ErrRedefinition
}

// UnknownTypeError is returned when a type name cannot be found in the registry.
type UnknownTypeError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("apigen: type %q is not in the type registry", e.Name)
}

// Is reports whether the target matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// CycleError is returned when following alias base types revisits an alias.
type CycleError struct {
	Chain []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "apigen: alias cycle: " + strings.Join(e.Chain, " -> ")
}

// Is reports whether the target matches ErrAliasCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrAliasCycle
}

// FieldError collects every field binding problem of one entity so they
// can be reported together.
type FieldError struct {
	Kind       string   // entity kind, e.g. "struct"
	Name       string   // entity name, if it was supplied
	Unexpected []string // fields the entity does not declare
	Missing    []string // required fields that were not supplied
	Invalid    []string // fields whose value has the wrong shape
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString("apigen: ")
	b.WriteString(e.Kind)
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	var parts []string
	if len(e.Unexpected) > 0 {
		parts = append(parts, fmt.Sprintf("%v are not attributes of %s", e.Unexpected, e.Kind))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%v are required attributes but were not set", e.Missing))
	}
	parts = append(parts, e.Invalid...)
	b.WriteString(": ")
	b.WriteString(strings.Join(parts, "; "))
	return b.String()
}

// Is reports whether the target matches one of the sentinels this error carries.
func (e *FieldError) Is(target error) bool {
	switch target {
	case ErrUnexpectedField:
		return len(e.Unexpected) > 0
	case ErrMissingField:
		return len(e.Missing) > 0
	case ErrInvalidSchema:
		return true
	}
	return false
}

func (e *FieldError) empty() bool {
	return len(e.Unexpected) == 0 && len(e.Missing) == 0 && len(e.Invalid) == 0
}

// ValidationError represents a structural invariant violation of an entity.
type ValidationError struct {
	Kind    string // entity kind, e.g. "method"
	Name    string // entity name
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("apigen: validation error")
	if e.Kind != "" {
		b.WriteString(" on ")
		b.WriteString(e.Kind)
	}
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidSchema.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewValidationError creates a new ValidationError.
func NewValidationError(kind, name, message string, cause error) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Name:    name,
		Message: message,
		Cause:   cause,
	}
}

// IsFieldError reports whether the error is a FieldError.
func IsFieldError(err error) bool {
	var fieldErr *FieldError
	return errors.As(err, &fieldErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
