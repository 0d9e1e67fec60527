package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// interleaveWalker matches an arbitrary interleaving of events drawn from
// two sub-patterns. Each event is routed to whichever side accepts it;
// when both could, the side not chosen last is tried first, alternating
// preference so neither side starves (spec.md §4.3 "Interleave"). An
// attribute event naturally reaches only the side whose Attribute pattern
// names it, since the other side simply reports NoMatch for it.
type interleaveWalker struct {
	a, b       Walker
	lastChosen int // 0 or 1
	cache      *rngevent.Set
}

func newInterleaveWalker(env *Env, n *pattern.Node) (Walker, error) {
	a, err := NewWalker(env, n.A)
	if err != nil {
		return nil, err
	}
	b, err := NewWalker(env, n.B)
	if err != nil {
		return nil, err
	}
	return &interleaveWalker{a: a, b: b, lastChosen: 1}, nil
}

func (w *interleaveWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := w.a.Possible()
	s.Union(w.b.Possible())
	w.cache = s
	return s.Clone()
}

func (w *interleaveWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	first, second := w.a, w.b
	firstIdx, secondIdx := 0, 1
	if w.lastChosen == 0 {
		first, second = w.b, w.a
		firstIdx, secondIdx = 1, 0
	}
	res, errs := first.FireEvent(in)
	if res != NoMatch {
		w.lastChosen = firstIdx
		w.cache = nil
		return res, errs
	}
	res2, errs2 := second.FireEvent(in)
	if res2 != NoMatch {
		w.lastChosen = secondIdx
		w.cache = nil
		return res2, errs2
	}
	return NoMatch, nil
}

func (w *interleaveWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	_, errsA := w.a.End(attribute)
	_, errsB := w.b.End(attribute)
	return Errors, append(errsA, errsB...)
}

func (w *interleaveWalker) CanEnd(attribute bool) bool {
	return w.a.CanEnd(attribute) && w.b.CanEnd(attribute)
}

func (w *interleaveWalker) Clone(memo *Memo) Walker {
	return &interleaveWalker{a: cloneChild(memo, w.a), b: cloneChild(memo, w.b), lastChosen: w.lastChosen}
}

func (w *interleaveWalker) SuppressAttributes() {
	w.a.SuppressAttributes()
	w.b.SuppressAttributes()
	w.cache = nil
}
