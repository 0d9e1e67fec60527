// Package walker implements the mutable matching automaton described in
// spec.md §4: one walker type per pattern kind, driven by the event
// stream, reporting acceptance, possibility sets and terminability.
//
// Discipline every walker in this package upholds, relied on throughout:
// a FireEvent call that returns NoMatch must leave the walker's observable
// state unchanged. This lets composites like Choice and Interleave try an
// event against a branch without first cloning defensively.
package walker

import (
	"github.com/raffazizzi/salve/datatype"
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nsresolve"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// Result is the outcome of dispatching one event to a walker.
type Result uint8

const (
	// Ok means the event was consumed without error.
	Ok Result = iota
	// NoMatch means this walker cannot consume the event at all; composite
	// walkers use it to route events between subwalkers. Never user-visible.
	NoMatch
	// Errors means the event was consumed but validation failed; the
	// walker has entered a local recovery state.
	Errors
)

// Walker is the contract every pattern-kind walker implements (spec.md §4.2).
type Walker interface {
	// Possible returns a fresh, caller-owned set of events legal next.
	Possible() *rngevent.Set
	// FireEvent advances state in response to in.
	FireEvent(in rngevent.Input) (Result, errors.ValidationList)
	// End asserts terminality. attribute restricts the check to attribute
	// obligations only (used at leaveStartTag).
	End(attribute bool) (Result, errors.ValidationList)
	// CanEnd is the non-destructive predicate equivalent to End succeeding.
	CanEnd(attribute bool) bool
	// Clone returns a deep copy, sharing sub-walkers already copied
	// through memo.
	Clone(memo *Memo) Walker
	// SuppressAttributes declares that no further attribute events will be
	// accepted, propagating to subwalkers.
	SuppressAttributes()
}

// Env bundles the read-only collaborators every walker needs to
// instantiate subwalkers and validate leaf content: the arena the pattern
// tree lives in, the datatype library, the live namespace context (only
// consulted by Value/Data), and the schema-wide element-by-name index used
// for misplaced-element recovery (spec.md §4.5).
type Env struct {
	Arena    *pattern.Arena
	Library  datatype.Library
	Elements map[pattern.NameKey][]pattern.ID
	Ctx      *nsresolve.Context
}

// Memo maps an original walker to its copy within one Clone() call, so a
// sub-walker reached twice (via a shared Define target) is copied once
// (spec.md §9 "Cloning via memo"). Discard the memo once the clone
// operation completes.
//
// Env, when set, rebinds every walker in the cloned tree to a new
// environment (a cloned namespace context, in particular) instead of
// sharing the original tree's Env. A whole-tree Clone() is always driven
// top-down from a single call, so setting Env once here before the clone
// begins is enough to give the resulting tree its own independent
// namespace-resolution snapshot (spec.md §4.4 "clone... preserves the
// name-resolver snapshot").
type Memo struct {
	copies map[Walker]Walker
	Env    *Env
}

// NewMemo returns an empty clone memo.
func NewMemo() *Memo {
	return &Memo{copies: make(map[Walker]Walker)}
}

// envFor resolves the environment a cloned walker should use: the memo's
// override if one was set, otherwise the original walker's own env.
func (m *Memo) envFor(orig *Env) *Env {
	if m.Env != nil {
		return m.Env
	}
	return orig
}

func (m *Memo) get(orig Walker) (Walker, bool) {
	w, ok := m.copies[orig]
	return w, ok
}

func (m *Memo) put(orig, cp Walker) {
	m.copies[orig] = cp
}

// cloneChild clones child through memo, deduplicating repeated targets.
func cloneChild(memo *Memo, child Walker) Walker {
	if child == nil {
		return nil
	}
	if cp, ok := memo.get(child); ok {
		return cp
	}
	cp := child.Clone(memo)
	memo.put(child, cp)
	return cp
}

// NewWalker instantiates the walker for the pattern node at id. Ref nodes
// are flattened: NewWalker for a Ref returns the walker of its resolved
// Define's body directly, with no dedicated ref-walker layer (spec.md §9
// "Ref/Define collapse").
func NewWalker(env *Env, id pattern.ID) (Walker, error) {
	n := env.Arena.Node(id)
	switch n.Kind {
	case pattern.KindEmpty:
		return emptySingleton, nil
	case pattern.KindNotAllowed:
		return notAllowedSingleton, nil
	case pattern.KindText:
		return newTextWalker(), nil
	case pattern.KindValue:
		return newValueWalker(env, n)
	case pattern.KindData:
		return newDataWalker(env, n), nil
	case pattern.KindList:
		return newListWalker(env, n), nil
	case pattern.KindAttribute:
		return newAttributeWalker(env, n), nil
	case pattern.KindElement:
		return newElementWalker(env, n), nil
	case pattern.KindOneOrMore:
		return newOneOrMoreWalker(env, n)
	case pattern.KindGroup:
		return newGroupWalker(env, n)
	case pattern.KindChoice:
		return newChoiceWalker(env, n)
	case pattern.KindInterleave:
		return newInterleaveWalker(env, n)
	case pattern.KindDefine:
		return newDefineWalker(env, n)
	case pattern.KindRef:
		if n.RefResolved == pattern.NoID {
			return nil, errUnresolvedRef(n)
		}
		if def := env.Arena.Node(n.RefResolved); def.Kind == pattern.KindDefine {
			return NewWalker(env, def.Child)
		}
		return NewWalker(env, n.RefResolved)
	case pattern.KindGrammar:
		return NewWalker(env, n.Start)
	default:
		return nil, errUnknownKind(n)
	}
}
