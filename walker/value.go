package walker

import (
	"fmt"

	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nsresolve"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// valueWalker matches a single text run whose parsed value equals a target
// parsed once, at construction time, under the namespace in effect where
// the schema authored the raw lexical form (spec.md §4.3 "Value").
type valueWalker struct {
	env     *Env
	typ     string
	libURI  string
	target  interface{}
	empty   bool
	matched bool
	done    bool
	cache   *rngevent.Set
}

func newValueWalker(env *Env, n *pattern.Node) (Walker, error) {
	dt, err := env.Library.Datatype(n.ValueDatatypeNS, n.ValueType)
	if err != nil {
		return nil, errUnknownDatatype(n.ValueType, err)
	}
	synth := nsresolve.New()
	if n.ValueNS != "" {
		synth.DefinePrefix("", n.ValueNS)
	}
	target, err := dt.ParseValue(n.ValueRaw, synth)
	if err != nil {
		return nil, fmt.Errorf("walker: invalid %s value %q: %w", n.ValueType, n.ValueRaw, err)
	}
	return &valueWalker{
		env:    env,
		typ:    n.ValueType,
		libURI: n.ValueDatatypeNS,
		target: target,
		empty:  n.ValueRaw == "",
	}, nil
}

func (w *valueWalker) Possible() *rngevent.Set {
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

func (w *valueWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if in.Kind != rngevent.Text || w.done {
		return NoMatch, nil
	}
	w.done = true
	w.cache = nil
	dt, err := w.env.Library.Datatype(w.libURI, w.typ)
	if err != nil {
		return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrUnknownDatatype, "", "unknown datatype %q: %v", w.typ, err)}
	}
	parsed, err := dt.ParseValue(in.Value, w.env.Ctx)
	if err != nil {
		return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "%q is not a valid %s: %v", in.Value, w.typ, err)}
	}
	if !dt.Equal(parsed, w.target) {
		return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "value %q does not equal the expected value", in.Value)}
	}
	w.matched = true
	return Ok, nil
}

func (w *valueWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrIncompleteContent, "expected value not supplied", "")}
}

func (w *valueWalker) CanEnd(attribute bool) bool {
	if attribute {
		return true
	}
	return w.matched || w.empty
}

func (w *valueWalker) Clone(memo *Memo) Walker {
	cp := *w
	cp.env = memo.envFor(w.env)
	cp.cache = nil
	return &cp
}

func (w *valueWalker) SuppressAttributes() {}
