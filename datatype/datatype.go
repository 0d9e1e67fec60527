// Package datatype defines the small interface the core consumes to parse,
// compare and facet-check lexical values. Concrete datatype libraries
// (XSD, custom) are external collaborators per spec.md §1; this package
// also ships a minimal reference library used by the core's own tests.
package datatype

import "github.com/raffazizzi/salve/nsresolve"

// Param is one named facet parameter, e.g. {Name: "minLength", Value: "3"}.
type Param struct {
	Name  string
	Value string
}

// Value is an opaque parsed representation produced by ParseValue.
// Datatype implementations decide its concrete shape; the core only ever
// passes it back to Equal or discards it.
type Value any

// Datatype is the contract a datatype library implementation must satisfy
// for use by Value and Data patterns.
type Datatype interface {
	// Name identifies the datatype for diagnostics, e.g. "NMTOKEN".
	Name() string

	// ParseValue parses a lexical form into a Value, using ctx to resolve
	// QName-like content when NeedsContext reports true. An error means
	// the lexical form does not belong to this datatype at all.
	ParseValue(lexical string, ctx *nsresolve.Context) (Value, error)

	// Equal compares two Values already produced by ParseValue (possibly
	// under different contexts, for QName/NOTATION values).
	Equal(a, b Value) bool

	// NeedsContext reports whether ParseValue consults ctx (true for
	// QName and NOTATION; false for nearly everything else).
	NeedsContext() bool

	// AllowParams validates that params are well-formed facet parameters
	// for this datatype (e.g. minLength must parse as a non-negative
	// integer). It does not check a value against them.
	AllowParams(params []Param) error

	// Disallows reports whether lexical, interpreted under params and ctx,
	// is NOT a member of the datatype. A nil return means the value is
	// allowed; a non-nil Mismatch carries the diagnostic.
	Disallows(lexical string, params []Param, ctx *nsresolve.Context) *Mismatch
}

// Mismatch describes why a lexical value was rejected by Disallows.
type Mismatch struct {
	Reason string
}

func (m *Mismatch) Error() string {
	if m == nil {
		return ""
	}
	return m.Reason
}

// Library resolves a (datatypeLibrary URI, local type name) pair to a
// Datatype implementation, as referenced from Value and Data patterns.
type Library interface {
	Datatype(datatypeLibraryURI, typeName string) (Datatype, error)
}
