package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// choiceWalker matches whatever either branch matches. Both branches are
// live from construction; each event is tried against every still-live
// branch (a branch that returns NoMatch never mutates, per this package's
// no-mutation-on-NoMatch discipline, so this is cheap and safe without
// defensive cloning). A branch that reports NoMatch is dropped from the
// live set; once only one remains, the choice behaves exactly as that
// branch from then on (spec.md §4.3 "Choice").
type choiceWalker struct {
	branches [2]Walker
	live     [2]bool
	cache    *rngevent.Set
}

func newChoiceWalker(env *Env, n *pattern.Node) (Walker, error) {
	a, err := NewWalker(env, n.A)
	if err != nil {
		return nil, err
	}
	b, err := NewWalker(env, n.B)
	if err != nil {
		return nil, err
	}
	return &choiceWalker{branches: [2]Walker{a, b}, live: [2]bool{true, true}}, nil
}

func (w *choiceWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := rngevent.NewSet()
	for i, alive := range w.live {
		if alive {
			s.Union(w.branches[i].Possible())
		}
	}
	w.cache = s
	return s.Clone()
}

func (w *choiceWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	var results [2]Result
	anyOk := false
	anyErrors := false
	var merged errors.ValidationList
	for i, alive := range w.live {
		if !alive {
			continue
		}
		res, errs := w.branches[i].FireEvent(in)
		results[i] = res
		switch res {
		case Ok:
			anyOk = true
		case Errors:
			anyErrors = true
			merged = append(merged, errs...)
		}
	}
	// If no live branch accepted the event at all, the whole Choice
	// rejects it; every branch that returned NoMatch left its own state
	// unchanged (this package's no-mutation-on-NoMatch discipline), so
	// nothing here needs to be rolled back either.
	if !anyOk && !anyErrors {
		return NoMatch, nil
	}
	// The event was accepted by at least one branch: any branch that
	// rejected it is no longer a possible continuation and is dropped.
	for i, alive := range w.live {
		if alive && results[i] == NoMatch {
			w.live[i] = false
		}
	}
	w.cache = nil
	if anyOk {
		return Ok, nil
	}
	return Errors, merged
}

func (w *choiceWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrChoiceExhausted, "no remaining choice branch can terminate here", "")}
}

func (w *choiceWalker) CanEnd(attribute bool) bool {
	for i, alive := range w.live {
		if alive && w.branches[i].CanEnd(attribute) {
			return true
		}
	}
	return false
}

func (w *choiceWalker) Clone(memo *Memo) Walker {
	cp := &choiceWalker{live: w.live}
	for i, b := range w.branches {
		if w.live[i] {
			cp.branches[i] = cloneChild(memo, b)
		} else {
			cp.branches[i] = b
		}
	}
	return cp
}

func (w *choiceWalker) SuppressAttributes() {
	for i, alive := range w.live {
		if alive {
			w.branches[i].SuppressAttributes()
		}
	}
	w.cache = nil
}
