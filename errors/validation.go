package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of validation failure, per the error
// taxonomy grouping used throughout the core (unexpected content, missing
// obligations, bad values, unresolved schema references).
type ErrorCode string

const (
	// ErrNoRoot indicates the document has no root element.
	ErrNoRoot ErrorCode = "rng-no-root"
	// ErrSchemaNotLoaded indicates validation was attempted without a compiled grammar.
	ErrSchemaNotLoaded ErrorCode = "rng-schema-not-loaded"
	// ErrXMLParse indicates the document could not be tokenized.
	ErrXMLParse ErrorCode = "rng-parse-error"

	// ErrUnexpectedElement indicates a start tag that no live walker accepts.
	ErrUnexpectedElement ErrorCode = "rng-unexpected-element"
	// ErrUnexpectedAttribute indicates an attribute that no live walker accepts.
	ErrUnexpectedAttribute ErrorCode = "rng-unexpected-attribute"
	// ErrUnexpectedText indicates text content where none is permitted.
	ErrUnexpectedText ErrorCode = "rng-unexpected-text"
	// ErrUnexpectedEndTag indicates an end tag that no live walker accepts.
	ErrUnexpectedEndTag ErrorCode = "rng-unexpected-end-tag"

	// ErrMissingAttribute indicates a required attribute absent at leaveStartTag.
	ErrMissingAttribute ErrorCode = "rng-missing-attribute"
	// ErrIncompleteContent indicates end-of-element or end-of-document while
	// a required child element, text value or repetition is still owed.
	ErrIncompleteContent ErrorCode = "rng-incomplete-content"

	// ErrBadValue indicates a text or attribute value rejected by Value,
	// Data or List (lexical parse failure or facet/equality mismatch).
	ErrBadValue ErrorCode = "rng-bad-value"
	// ErrChoiceExhausted indicates that no remaining branch of a Choice can
	// terminate where the Choice has to end.
	ErrChoiceExhausted ErrorCode = "rng-choice-exhausted"

	// ErrUnresolvedReference indicates a Ref with no matching Define.
	ErrUnresolvedReference ErrorCode = "rng-unresolved-reference"
	// ErrUnknownDatatype indicates a Value/Data naming a type its library
	// does not recognize.
	ErrUnknownDatatype ErrorCode = "rng-unknown-datatype"
	// ErrUnboundPrefix indicates a QName whose namespace prefix has no
	// binding in the current context.
	ErrUnboundPrefix ErrorCode = "rng-unbound-prefix"
)

// Validation describes a single rng-core validation failure: a stable
// code, a human message, and the instance path it occurred at (empty when
// the failure isn't tied to a specific element/attribute, e.g.
// rng-no-root). The core never tracks source line/column itself — it
// consumes an abstract event stream, not a byte offset (spec.md §1) — so
// positional context is a caller concern; a tokenizer-backed caller such
// as cmd/rngcheck can fold a line/column into Path itself if it wants one
// reported.
//
//nolint:errname // public API name uses the domain term "validation", not Go's "error" convention.
type Validation struct {
	Code    string
	Message string
	Path    string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Error formats the validation as "[code] message" plus " at path" when a
// path is present.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}
	if v.Path == "" {
		return fmt.Sprintf("[%s] %s", v.Code, v.Message)
	}
	return fmt.Sprintf("[%s] %s at %s", v.Code, v.Message, v.Path)
}

// NewValidation builds a Validation with a code, message, and optional path.
func NewValidation(code ErrorCode, msg, path string) Validation {
	return Validation{Code: string(code), Message: msg, Path: path}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, path, format string, args ...any) Validation {
	return NewValidation(code, fmt.Sprintf(format, args...), path)
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
