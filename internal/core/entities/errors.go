// Package entities contains the domain entities for archetect.
// These are pure Go structs with validation logic and zero external dependencies.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors used by validation helpers.
var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrInvalidName = errors.New("name contains invalid characters")
	ErrEmptyID     = errors.New("id cannot be empty")
	ErrEmptyPath   = errors.New("path cannot be empty")
)

// Kind identifies one member of the error taxonomy.
type Kind string

const (
	KindReference            Kind = "ReferenceError"
	KindOffline              Kind = "OfflineError"
	KindFetch                Kind = "FetchError"
	KindRequirements         Kind = "RequirementsError"
	KindManifest             Kind = "ManifestError"
	KindCatalogCycle         Kind = "CatalogCycleError"
	KindInvalidPromptSetting Kind = "InvalidPromptSettingError"
	KindAnswerType           Kind = "AnswerTypeError"
	KindAnswerValidation     Kind = "AnswerValidationError"
	KindHeadlessNoAnswer     Kind = "HeadlessNoAnswerError"
	KindAnswerNotOptional    Kind = "AnswerNotOptionalError"
	KindUnexpectedResponse   Kind = "UnexpectedResponseError"
	KindPrompt               Kind = "PromptError"
	KindRender               Kind = "RenderError"
	KindIO                   Kind = "IoError"
	KindScriptAbort          Kind = "ScriptAbortError"
	KindGeneral              Kind = "GeneralError"
)

// Error is the single error type that carries one taxonomy Kind plus
// attribution (the prompt key or script location it originated from) and
// an optional wrapped cause. All errors surfaced by the core are of this
// type so the top-level driver can branch on Kind without string matching.
type Error struct {
	Kind    Kind
	Message string
	Key     string // prompt key or identifier this error is attributed to, if any
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Key != "" {
		fmt.Fprintf(&b, "[%s]", e.Key)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%s)", e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs a taxonomy error with no attribution or cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewKeyedError constructs a taxonomy error attributed to a prompt/answer key.
func NewKeyedError(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Key: key, Message: message}
}

// Wrap constructs a taxonomy error that wraps an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is an *Error of the given Kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if as, ok := err.(*Error); ok {
			e = as
			break
		}
		err = errors.Unwrap(err)
	}
	return e != nil && e.Kind == kind
}

// ValidationError represents a single field-validation failure with context.
type ValidationError struct {
	Entity  string // Entity type (e.g., "Reference", "PromptInfo")
	Field   string // Field that failed validation
	Value   string // The invalid value (may be truncated)
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError creates a new validation error, truncating long values.
func NewValidationError(entity, field, value, message string, err error) *ValidationError {
	if len(value) > 50 {
		value = value[:47] + "..."
	}
	return &ValidationError{Entity: entity, Field: field, Value: value, Message: message, Err: err}
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(ve))
	for i, err := range ve {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (ve ValidationErrors) HasErrors() bool { return len(ve) > 0 }

func (ve *ValidationErrors) Add(entity, field, value, message string, err error) {
	*ve = append(*ve, NewValidationError(entity, field, value, message, err))
}

// NotFoundError represents an entity-not-found error (e.g. a catalog group or entry).
type NotFoundError struct {
	Entity string
	ID     string
	Parent string
}

func (e *NotFoundError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s '%s' not found in %s", e.Entity, e.ID, e.Parent)
	}
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// DuplicateError represents a duplicate-entity error.
type DuplicateError struct {
	Entity string
	ID     string
	Parent string
}

func (e *DuplicateError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s '%s' already exists in %s", e.Entity, e.ID, e.Parent)
	}
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.ID)
}
