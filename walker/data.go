package walker

import (
	"github.com/raffazizzi/salve/datatype"
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// dataWalker matches a single text run whose lexical form is accepted by a
// datatype under a set of facet parameters, optionally rejecting values
// also accepted by an except sub-pattern (spec.md §4.3 "Data"). The
// exception is tried only after the base datatype match succeeds.
type dataWalker struct {
	env       *Env
	typ       string
	libURI    string
	params    []pattern.Param
	exceptID  pattern.ID
	done      bool
	matched   bool
	cache     *rngevent.Set
}

func newDataWalker(env *Env, n *pattern.Node) Walker {
	return &dataWalker{
		env:      env,
		typ:      n.DataType,
		libURI:   n.DataLibraryURI,
		params:   n.DataParams,
		exceptID: n.DataExcept,
	}
}

func (w *dataWalker) Possible() *rngevent.Set {
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

func (w *dataWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if in.Kind != rngevent.Text || w.done {
		return NoMatch, nil
	}
	w.done = true
	w.cache = nil

	dt, err := w.env.Library.Datatype(w.libURI, w.typ)
	if err != nil {
		return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrUnknownDatatype, "", "unknown datatype %q: %v", w.typ, err)}
	}

	params := make([]datatype.Param, len(w.params))
	for i, p := range w.params {
		params[i] = datatype.Param{Name: p.Name, Value: p.Value}
	}
	if mismatch := dt.Disallows(in.Value, params, w.env.Ctx); mismatch != nil {
		return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "%q is not a valid %s: %s", in.Value, w.typ, mismatch.Error())}
	}

	if w.exceptID != pattern.NoID {
		except, err := NewWalker(w.env, w.exceptID)
		if err != nil {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "invalid exception pattern: %v", err)}
		}
		res, _ := except.FireEvent(rngevent.NewText(in.Value))
		if res == Ok && except.CanEnd(false) {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "value %q matches the excluded pattern", in.Value)}
		}
	}

	w.matched = true
	return Ok, nil
}

func (w *dataWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrIncompleteContent, "expected value not supplied", "")}
}

func (w *dataWalker) CanEnd(attribute bool) bool {
	if attribute {
		return true
	}
	return w.matched
}

func (w *dataWalker) Clone(memo *Memo) Walker {
	cp := *w
	cp.env = memo.envFor(w.env)
	cp.cache = nil
	return &cp
}

func (w *dataWalker) SuppressAttributes() {}
