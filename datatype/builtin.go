package datatype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raffazizzi/salve/nsresolve"
)

// BuiltinLibraryURI is the datatypeLibrary value recognized by Builtins,
// matching Relax NG's convention that the empty string selects the
// built-in "string"/"token" library distinct from XSD's.
const BuiltinLibraryURI = ""

// Builtin type names recognized by the reference library.
const (
	TypeString  = "string"
	TypeToken   = "token"
	TypeNMTOKEN = "NMTOKEN"
	TypeQName   = "QName"
)

// Builtins is a minimal reference Library sufficient to exercise Value and
// Data patterns end to end. It is grounded on the teacher's
// internal/builtins registry (Get/GetNS by name) but only implements the
// handful of types this core's tests need.
var Builtins Library = builtinLibrary{}

type builtinLibrary struct{}

func (builtinLibrary) Datatype(libraryURI, typeName string) (Datatype, error) {
	if libraryURI != BuiltinLibraryURI {
		return nil, fmt.Errorf("datatype: unknown library %q", libraryURI)
	}
	switch typeName {
	case TypeString:
		return stringType{}, nil
	case TypeToken:
		return tokenType{}, nil
	case TypeNMTOKEN:
		return nmtokenType{}, nil
	case TypeQName:
		return qnameType{}, nil
	default:
		return nil, fmt.Errorf("datatype: unknown builtin type %q", typeName)
	}
}

// stringType matches any lexical form verbatim (no whitespace collapse).
type stringType struct{}

func (stringType) Name() string { return TypeString }

func (stringType) ParseValue(lexical string, _ *nsresolve.Context) (Value, error) {
	return lexical, nil
}

func (stringType) Equal(a, b Value) bool { return a.(string) == b.(string) }

func (stringType) NeedsContext() bool { return false }

func (stringType) AllowParams(params []Param) error {
	return allowLengthFacets(params)
}

func (t stringType) Disallows(lexical string, params []Param, ctx *nsresolve.Context) *Mismatch {
	return disallowByLength(lexical, params)
}

// tokenType collapses internal whitespace before comparison, per XML
// Schema's "token" whitespace facet.
type tokenType struct{}

func (tokenType) Name() string { return TypeToken }

func (tokenType) ParseValue(lexical string, _ *nsresolve.Context) (Value, error) {
	return collapseWhitespace(lexical), nil
}

func (tokenType) Equal(a, b Value) bool { return a.(string) == b.(string) }

func (tokenType) NeedsContext() bool { return false }

func (tokenType) AllowParams(params []Param) error {
	return allowLengthFacets(params)
}

func (t tokenType) Disallows(lexical string, params []Param, ctx *nsresolve.Context) *Mismatch {
	return disallowByLength(collapseWhitespace(lexical), params)
}

// nmtokenType collapses whitespace like token, and additionally rejects
// any lexical form containing characters not legal in an XML Name token.
type nmtokenType struct{}

func (nmtokenType) Name() string { return TypeNMTOKEN }

func (nmtokenType) ParseValue(lexical string, _ *nsresolve.Context) (Value, error) {
	v := collapseWhitespace(lexical)
	if !isNMToken(v) {
		return nil, fmt.Errorf("datatype: %q is not a valid NMTOKEN", v)
	}
	return v, nil
}

func (nmtokenType) Equal(a, b Value) bool { return a.(string) == b.(string) }

func (nmtokenType) NeedsContext() bool { return false }

func (nmtokenType) AllowParams(params []Param) error {
	return allowLengthFacets(params)
}

func (t nmtokenType) Disallows(lexical string, params []Param, ctx *nsresolve.Context) *Mismatch {
	v := collapseWhitespace(lexical)
	if !isNMToken(v) {
		return &Mismatch{Reason: fmt.Sprintf("%q is not a valid NMTOKEN", v)}
	}
	return disallowByLength(v, params)
}

func isNMToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_' || r == ':':
		default:
			return false
		}
	}
	return true
}

// qnameType needs the namespace context to resolve a prefixed lexical form
// to a (uri, local) pair before comparison, per spec.md §3.1's note about
// Value's "synthetic name resolver seeded with the declared namespace".
type qnameType struct{}

func (qnameType) Name() string { return TypeQName }

type qnameValue struct{ uri, local string }

func (qnameType) ParseValue(lexical string, ctx *nsresolve.Context) (Value, error) {
	trimmed := collapseWhitespace(lexical)
	if trimmed == "" {
		return nil, fmt.Errorf("datatype: QName value is empty")
	}
	if ctx == nil {
		ctx = nsresolve.New()
	}
	uri, local, err := ctx.ResolveName(trimmed, false)
	if err != nil {
		return nil, err
	}
	return qnameValue{uri: uri, local: local}, nil
}

func (qnameType) Equal(a, b Value) bool {
	av, bv := a.(qnameValue), b.(qnameValue)
	return av.uri == bv.uri && av.local == bv.local
}

func (qnameType) NeedsContext() bool { return true }

func (qnameType) AllowParams(params []Param) error {
	if len(params) != 0 {
		return fmt.Errorf("datatype: QName accepts no facet parameters")
	}
	return nil
}

func (t qnameType) Disallows(lexical string, params []Param, ctx *nsresolve.Context) *Mismatch {
	if _, err := t.ParseValue(lexical, ctx); err != nil {
		return &Mismatch{Reason: err.Error()}
	}
	return nil
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func allowLengthFacets(params []Param) error {
	for _, p := range params {
		switch p.Name {
		case "length", "minLength", "maxLength":
			n, err := strconv.Atoi(p.Value)
			if err != nil {
				return fmt.Errorf("datatype: facet %s: %w", p.Name, err)
			}
			if n < 0 {
				return fmt.Errorf("datatype: facet %s: negative value %d", p.Name, n)
			}
		default:
			return fmt.Errorf("datatype: unsupported facet %q", p.Name)
		}
	}
	return nil
}

func disallowByLength(lexical string, params []Param) *Mismatch {
	n := len([]rune(lexical))
	for _, p := range params {
		limit, _ := strconv.Atoi(p.Value)
		switch p.Name {
		case "length":
			if n != limit {
				return &Mismatch{Reason: fmt.Sprintf("length %d != %d", n, limit)}
			}
		case "minLength":
			if n < limit {
				return &Mismatch{Reason: fmt.Sprintf("length %d < minLength %d", n, limit)}
			}
		case "maxLength":
			if n > limit {
				return &Mismatch{Reason: fmt.Sprintf("length %d > maxLength %d", n, limit)}
			}
		}
	}
	return nil
}
