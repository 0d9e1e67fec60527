// Package pattern implements the immutable Relax NG pattern tree: leaves,
// unary and binary combinators, references and the grammar root, plus the
// resolution and preparation passes that run once after construction.
// See spec.md §3.1, §4.1, §9.
package pattern

import "github.com/raffazizzi/salve/nameclass"

// ID is an index into an Arena. Patterns never hold pointers into each
// other directly; cyclic grammars (mutual recursion among definitions) are
// expressed as indices so the tree can be built and walked without ever
// materializing a pointer cycle (spec.md §9 "Cyclic patterns via refs").
type ID int

// NoID marks the absence of a node reference (e.g. Data.Except when there
// is no exception pattern).
const NoID ID = -1

// Kind tags the closed set of pattern node variants. A tagged-variant
// dispatch is used throughout instead of an open interface hierarchy,
// per spec.md §9 "Polymorphic dispatch".
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNotAllowed
	KindText
	KindValue
	KindData
	KindList
	KindAttribute
	KindElement
	KindOneOrMore
	KindGroup
	KindChoice
	KindInterleave
	KindDefine
	KindRef
	KindGrammar
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindNotAllowed:
		return "NotAllowed"
	case KindText:
		return "Text"
	case KindValue:
		return "Value"
	case KindData:
		return "Data"
	case KindList:
		return "List"
	case KindAttribute:
		return "Attribute"
	case KindElement:
		return "Element"
	case KindOneOrMore:
		return "OneOrMore"
	case KindGroup:
		return "Group"
	case KindChoice:
		return "Choice"
	case KindInterleave:
		return "Interleave"
	case KindDefine:
		return "Define"
	case KindRef:
		return "Ref"
	case KindGrammar:
		return "Grammar"
	default:
		return "unknown"
	}
}

// Node is one pattern-tree node. Fields not relevant to Kind are zero.
// The node carries a stable ID (for hashing/memoization) and an Origin
// path string used only for debugging (spec.md §3.1).
type Node struct {
	ID     ID
	Kind   Kind
	Origin string

	// Value leaf.
	ValueRaw        string
	ValueType       string
	ValueDatatypeNS string // datatypeLibrary URI
	ValueNS         string // namespace active where the raw form was authored

	// Data leaf.
	DataType       string
	DataLibraryURI string
	DataParams     []Param
	DataExcept     ID // NoID if absent

	// Unary: Attribute, Element, OneOrMore, List, Define.
	Child          ID
	NameClassField nameclass.Pattern // Attribute, Element
	DefineName     string            // Define

	// Binary: Group, Choice, Interleave.
	A, B ID

	// Ref.
	RefName     string
	RefResolved ID // NoID until Resolve runs

	// Grammar.
	Start   ID
	Defines map[string]ID

	// Preparation results (spec.md §4.1.2).
	HasAttribute bool
	prepared     bool
}

// Param mirrors datatype.Param without importing the datatype package
// directly into the pattern's public surface (kept here as a narrow
// value type so pattern doesn't need datatype's Library/Datatype types).
type Param struct {
	Name  string
	Value string
}

// Arena owns the flat vector of pattern nodes. A pattern tree is built
// once against one Arena and is immutable and shared thereafter; Arena
// itself holds no mutable state once construction finishes except the
// per-node `RefResolved` binding written by Resolve and the
// `prepared`/`HasAttribute` bookkeeping written by Prepare.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Node returns a pointer to the node at id. The arena never shrinks or
// reorders its nodes, but appending a node may reallocate the backing
// slice, after which a previously returned pointer refers to a stale copy;
// callers should re-fetch via Node() rather than cache pointers across
// arena mutation.
func (a *Arena) Node(id ID) *Node {
	return &a.nodes[id]
}

// Len reports the number of nodes currently in the arena.
func (a *Arena) Len() int { return len(a.nodes) }

// alloc appends n to the arena. Callers must set DataExcept/RefResolved to
// NoID explicitly when not applicable; alloc does not default them, since
// zero is a valid ID.
func (a *Arena) alloc(n Node) ID {
	n.ID = ID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return n.ID
}
