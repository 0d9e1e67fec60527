package pattern

import "github.com/raffazizzi/salve/nameclass"

// Empty creates a pattern matching the empty sequence.
func (a *Arena) Empty(origin string) ID {
	return a.alloc(Node{Kind: KindEmpty, Origin: origin, DataExcept: NoID, RefResolved: NoID})
}

// NotAllowed creates a pattern matching nothing.
func (a *Arena) NotAllowed(origin string) ID {
	return a.alloc(Node{Kind: KindNotAllowed, Origin: origin, DataExcept: NoID, RefResolved: NoID})
}

// Text creates a pattern matching any text run, including empty.
func (a *Arena) Text(origin string) ID {
	return a.alloc(Node{Kind: KindText, Origin: origin, DataExcept: NoID, RefResolved: NoID})
}

// Value creates a leaf matching a single text run whose lexical form
// equals raw under typ/datatypeLibraryURI, resolved in namespace ns.
func (a *Arena) Value(origin, raw, typ, datatypeLibraryURI, ns string) ID {
	return a.alloc(Node{
		Kind: KindValue, Origin: origin,
		ValueRaw: raw, ValueType: typ, ValueDatatypeNS: datatypeLibraryURI, ValueNS: ns,
		DataExcept: NoID, RefResolved: NoID,
	})
}

// Data creates a leaf matching text satisfying typ's facet parameters,
// with an optional except sub-pattern (pass NoID for none).
func (a *Arena) Data(origin, typ, datatypeLibraryURI string, params []Param, except ID) ID {
	return a.alloc(Node{
		Kind: KindData, Origin: origin,
		DataType: typ, DataLibraryURI: datatypeLibraryURI, DataParams: params, DataExcept: except,
		RefResolved: NoID,
	})
}

// Attribute creates a pattern consuming one attribute matching nameClass
// whose value satisfies content.
func (a *Arena) Attribute(origin string, nameClass nameclass.Pattern, content ID) ID {
	return a.alloc(Node{
		Kind: KindAttribute, Origin: origin,
		NameClassField: nameClass, Child: content,
		DataExcept: NoID, RefResolved: NoID,
	})
}

// Element creates a pattern matching a balanced start/end-tag region whose
// content satisfies content.
func (a *Arena) Element(origin string, nameClass nameclass.Pattern, content ID) ID {
	return a.alloc(Node{
		Kind: KindElement, Origin: origin,
		NameClassField: nameClass, Child: content,
		DataExcept: NoID, RefResolved: NoID,
	})
}

// OneOrMore creates a pattern matching one-or-more repetitions of content.
func (a *Arena) OneOrMore(origin string, content ID) ID {
	return a.alloc(Node{Kind: KindOneOrMore, Origin: origin, Child: content, DataExcept: NoID, RefResolved: NoID})
}

// List creates a pattern treating a text run as whitespace-separated
// tokens, each validated in order against content.
func (a *Arena) List(origin string, content ID) ID {
	return a.alloc(Node{Kind: KindList, Origin: origin, Child: content, DataExcept: NoID, RefResolved: NoID})
}

// Define creates a named production body, the target of Ref nodes.
func (a *Arena) Define(origin, name string, body ID) ID {
	return a.alloc(Node{Kind: KindDefine, Origin: origin, DefineName: name, Child: body, DataExcept: NoID, RefResolved: NoID})
}

// Group creates a pattern matching first then second.
func (a *Arena) Group(origin string, first, second ID) ID {
	return a.alloc(Node{Kind: KindGroup, Origin: origin, A: first, B: second, DataExcept: NoID, RefResolved: NoID})
}

// Choice creates a pattern matching either first or second.
func (a *Arena) Choice(origin string, first, second ID) ID {
	return a.alloc(Node{Kind: KindChoice, Origin: origin, A: first, B: second, DataExcept: NoID, RefResolved: NoID})
}

// Interleave creates a pattern matching an arbitrary interleaving of
// events drawn from first and second.
func (a *Arena) Interleave(origin string, first, second ID) ID {
	return a.alloc(Node{Kind: KindInterleave, Origin: origin, A: first, B: second, DataExcept: NoID, RefResolved: NoID})
}

// Ref creates a reference to the Define of the given name, resolved by a
// later call to Resolve.
func (a *Arena) Ref(origin, name string) ID {
	return a.alloc(Node{Kind: KindRef, Origin: origin, RefName: name, DataExcept: NoID, RefResolved: NoID})
}

// Grammar creates the root pattern: a start pattern plus a definition
// table. Only salve.Grammar.NewWalker (in the root package) creates the
// top-level name resolver (spec.md §3.1).
func (a *Arena) Grammar(origin string, start ID, defines map[string]ID) ID {
	if defines == nil {
		defines = map[string]ID{}
	}
	return a.alloc(Node{
		Kind: KindGrammar, Origin: origin, Start: start, Defines: defines,
		DataExcept: NoID, RefResolved: NoID,
	})
}
