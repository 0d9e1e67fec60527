package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// oneOrMoreWalker matches one or more repetitions of content. It holds a
// walker for the iteration currently in progress; when that walker can
// end and itself reports NoMatch for an event, a fresh iteration walker is
// started and retried (spec.md §4.3 "OneOrMore"). current.CanEnd already
// reflects having completed at least the one mandatory iteration, so no
// separate "has completed once" bookkeeping is needed.
type oneOrMoreWalker struct {
	env       *Env
	contentID pattern.ID
	current   Walker
	cache     *rngevent.Set
}

func newOneOrMoreWalker(env *Env, n *pattern.Node) (Walker, error) {
	current, err := NewWalker(env, n.Child)
	if err != nil {
		return nil, err
	}
	return &oneOrMoreWalker{env: env, contentID: n.Child, current: current}, nil
}

func (w *oneOrMoreWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := w.current.Possible()
	if w.current.CanEnd(false) {
		fresh, err := NewWalker(w.env, w.contentID)
		if err == nil {
			s.Union(fresh.Possible())
		}
	}
	w.cache = s
	return s.Clone()
}

func (w *oneOrMoreWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	res, errs := w.current.FireEvent(in)
	if res != NoMatch {
		w.cache = nil
		return res, errs
	}
	if w.current.CanEnd(false) {
		fresh, err := NewWalker(w.env, w.contentID)
		if err == nil {
			res2, errs2 := fresh.FireEvent(in)
			if res2 != NoMatch {
				w.current = fresh
				w.cache = nil
				return res2, errs2
			}
		}
	}
	return NoMatch, nil
}

func (w *oneOrMoreWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return w.current.End(attribute)
}

func (w *oneOrMoreWalker) CanEnd(attribute bool) bool {
	return w.current.CanEnd(attribute)
}

func (w *oneOrMoreWalker) Clone(memo *Memo) Walker {
	return &oneOrMoreWalker{env: memo.envFor(w.env), contentID: w.contentID, current: cloneChild(memo, w.current)}
}

func (w *oneOrMoreWalker) SuppressAttributes() {
	w.current.SuppressAttributes()
	w.cache = nil
}
