// Package nameclass implements the Relax NG name-pattern algebra used by
// element and attribute patterns: Name, NameChoice, NsName and AnyName,
// each with an optional except sub-pattern.
package nameclass

import "fmt"

// Pattern is the interface implemented by every name-class node.
// Match is total: it never panics and always returns a bool.
type Pattern interface {
	// Match reports whether the pattern admits the (namespace, local name) pair.
	Match(ns, local string) bool
	// Simple reports whether the tree below (and including) this node is
	// built only from Name and NameChoice.
	Simple() bool
	// ToArray flattens a Simple() pattern into its constituent Names.
	// Calling it on a non-simple pattern returns nil.
	ToArray() []Name
	// String renders the pattern for diagnostics and error messages.
	String() string
}

// Name matches exactly one (namespace, local name) pair.
type Name struct {
	NS    string
	Local string
}

func (n Name) Match(ns, local string) bool { return n.NS == ns && n.Local == local }
func (n Name) Simple() bool                { return true }
func (n Name) ToArray() []Name             { return []Name{n} }
func (n Name) String() string              { return fmt.Sprintf("{%s}%s", n.NS, n.Local) }

// NameChoice matches whatever either branch matches.
type NameChoice struct {
	A, B Pattern
}

func (c NameChoice) Match(ns, local string) bool {
	return c.A.Match(ns, local) || c.B.Match(ns, local)
}

func (c NameChoice) Simple() bool {
	return c.A.Simple() && c.B.Simple()
}

func (c NameChoice) ToArray() []Name {
	if !c.Simple() {
		return nil
	}
	return append(c.A.ToArray(), c.B.ToArray()...)
}

func (c NameChoice) String() string {
	return fmt.Sprintf("(%s | %s)", c.A, c.B)
}

// NsName matches any local name within a fixed namespace, optionally
// excluding names matched by Except.
type NsName struct {
	NS     string
	Except Pattern // nil means no exception
}

func (n NsName) Match(ns, local string) bool {
	if ns != n.NS {
		return false
	}
	if n.Except != nil && n.Except.Match(ns, local) {
		return false
	}
	return true
}

func (n NsName) Simple() bool    { return false }
func (n NsName) ToArray() []Name { return nil }

func (n NsName) String() string {
	if n.Except == nil {
		return fmt.Sprintf("%s:*", n.NS)
	}
	return fmt.Sprintf("%s:* - %s", n.NS, n.Except)
}

// AnyName matches any (namespace, local name) pair, optionally excluding
// names matched by Except.
type AnyName struct {
	Except Pattern // nil means no exception
}

func (a AnyName) Match(ns, local string) bool {
	if a.Except != nil && a.Except.Match(ns, local) {
		return false
	}
	return true
}

func (a AnyName) Simple() bool    { return false }
func (a AnyName) ToArray() []Name { return nil }

func (a AnyName) String() string {
	if a.Except == nil {
		return "*"
	}
	return fmt.Sprintf("* - %s", a.Except)
}
