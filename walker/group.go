package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// groupWalker matches first then second in sequence. Both sub-walkers are
// instantiated eagerly; an event tried against a first finds it either
// accepts, rejects with errors, or is routed to b when a reports NoMatch
// and a.CanEnd(false) is true, so an event legitimately belonging to b
// can still reach it mid-sequence (spec.md §4.3 "Group").
type groupWalker struct {
	a, b  Walker
	cache *rngevent.Set
}

func newGroupWalker(env *Env, n *pattern.Node) (Walker, error) {
	a, err := NewWalker(env, n.A)
	if err != nil {
		return nil, err
	}
	b, err := NewWalker(env, n.B)
	if err != nil {
		return nil, err
	}
	return &groupWalker{a: a, b: b}, nil
}

func (w *groupWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := w.a.Possible()
	if w.a.CanEnd(false) {
		s.Union(w.b.Possible())
	}
	w.cache = s
	return s.Clone()
}

func (w *groupWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	res, errs := w.a.FireEvent(in)
	if res != NoMatch {
		w.cache = nil
		return res, errs
	}
	if w.a.CanEnd(false) {
		res2, errs2 := w.b.FireEvent(in)
		if res2 != NoMatch {
			w.cache = nil
		}
		return res2, errs2
	}
	return NoMatch, nil
}

func (w *groupWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	_, errsA := w.a.End(attribute)
	_, errsB := w.b.End(attribute)
	return Errors, append(errsA, errsB...)
}

func (w *groupWalker) CanEnd(attribute bool) bool {
	return w.a.CanEnd(attribute) && w.b.CanEnd(attribute)
}

func (w *groupWalker) Clone(memo *Memo) Walker {
	return &groupWalker{a: cloneChild(memo, w.a), b: cloneChild(memo, w.b)}
}

func (w *groupWalker) SuppressAttributes() {
	w.a.SuppressAttributes()
	w.b.SuppressAttributes()
	w.cache = nil
}
