package walker

import (
	"strings"

	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// listWalker treats one text run as whitespace-separated tokens, each
// validated independently against a fresh instance of content, in order.
// An input with zero tokens is legal iff content itself accepts the empty
// sequence (spec.md §4.3 "List").
type listWalker struct {
	env       *Env
	contentID pattern.ID
	done      bool
	matched   bool
	cache     *rngevent.Set
}

func newListWalker(env *Env, n *pattern.Node) Walker {
	return &listWalker{env: env, contentID: n.Child}
}

func (w *listWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := rngevent.NewSet()
	if !w.done {
		s.Add(rngevent.TextAny())
	}
	w.cache = s
	return s.Clone()
}

func (w *listWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if in.Kind != rngevent.Text || w.done {
		return NoMatch, nil
	}
	w.done = true
	w.cache = nil

	tokens := strings.Fields(in.Value)
	if len(tokens) == 0 {
		fresh, err := NewWalker(w.env, w.contentID)
		if err != nil {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "invalid list content pattern: %v", err)}
		}
		if !fresh.CanEnd(false) {
			return Errors, errors.ValidationList{errors.NewValidation(errors.ErrBadValue, "empty list is not allowed here", "")}
		}
		w.matched = true
		return Ok, nil
	}

	var errs errors.ValidationList
	for _, tok := range tokens {
		fresh, err := NewWalker(w.env, w.contentID)
		if err != nil {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "invalid list content pattern: %v", err)}
		}
		res, ferrs := fresh.FireEvent(rngevent.NewText(tok))
		if res == NoMatch {
			errs = append(errs, errors.NewValidationf(errors.ErrBadValue, "", "list token %q is not a valid value", tok))
			continue
		}
		errs = append(errs, ferrs...)
		if !fresh.CanEnd(false) {
			errs = append(errs, errors.NewValidationf(errors.ErrBadValue, "", "list token %q is incomplete", tok))
		}
	}
	if len(errs) > 0 {
		return Errors, errs
	}
	w.matched = true
	return Ok, nil
}

func (w *listWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrIncompleteContent, "expected list value not supplied", "")}
}

func (w *listWalker) CanEnd(attribute bool) bool {
	if attribute {
		return true
	}
	return w.matched
}

func (w *listWalker) Clone(memo *Memo) Walker {
	cp := *w
	cp.env = memo.envFor(w.env)
	cp.cache = nil
	return &cp
}

func (w *listWalker) SuppressAttributes() {}
