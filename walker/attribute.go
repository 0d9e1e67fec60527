package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// attributeWalker matches exactly one attribute whose name satisfies a
// name class and whose value satisfies a content pattern (spec.md §4.3
// "Attribute"). It is itself a required, single-occurrence pattern;
// optionality comes from an enclosing Choice with Empty.
type attributeWalker struct {
	env        *Env
	nameClass  nameclass.Pattern
	contentID  pattern.ID
	nameSeen   bool
	done       bool
	content    Walker
	suppressed bool
	cache      *rngevent.Set
}

func newAttributeWalker(env *Env, n *pattern.Node) Walker {
	return &attributeWalker{env: env, nameClass: n.NameClassField, contentID: n.Child}
}

func (w *attributeWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := rngevent.NewSet()
	if w.suppressed || w.done {
		w.cache = s
		return s.Clone()
	}
	if !w.nameSeen {
		s.Add(rngevent.NewPossibleAttributeName(w.nameClass))
	} else {
		// Phase (b): offer attributeValue iff the content walker would
		// accept a text event (spec.md §4.3: filtered to text/value events).
		contentPoss := w.content.Possible()
		for _, p := range contentPoss.ToSlice() {
			if p.Kind == rngevent.Text {
				s.Add(rngevent.Possibility{Kind: rngevent.AttributeValue, Value: "*"})
				break
			}
		}
	}
	w.cache = s
	return s.Clone()
}

func (w *attributeWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if w.done {
		return NoMatch, nil
	}
	switch in.Kind {
	case rngevent.AttributeName:
		if w.nameSeen {
			return NoMatch, nil
		}
		if !w.nameClass.Match(in.URI, in.Local) {
			return NoMatch, nil
		}
		content, err := NewWalker(w.env, w.contentID)
		if err != nil {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "invalid attribute content pattern: %v", err)}
		}
		w.content = content
		w.nameSeen = true
		w.cache = nil
		return Ok, nil
	case rngevent.AttributeValue:
		if !w.nameSeen {
			return NoMatch, nil
		}
		w.cache = nil
		res, errs := w.content.FireEvent(rngevent.NewText(in.Value))
		w.done = true
		if res == NoMatch {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "%q is not a valid value for this attribute", in.Value)}
		}
		if res == Ok && !w.content.CanEnd(false) {
			return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrBadValue, "", "%q is not a complete value for this attribute", in.Value)}
		}
		return res, errs
	default:
		return NoMatch, nil
	}
}

func (w *attributeWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrMissingAttribute, "required attribute is missing", "")}
}

func (w *attributeWalker) CanEnd(attribute bool) bool {
	return w.done
}

func (w *attributeWalker) Clone(memo *Memo) Walker {
	cp := &attributeWalker{
		env: memo.envFor(w.env), nameClass: w.nameClass, contentID: w.contentID,
		nameSeen: w.nameSeen, done: w.done, suppressed: w.suppressed,
	}
	if w.content != nil {
		cp.content = cloneChild(memo, w.content)
	}
	return cp
}

func (w *attributeWalker) SuppressAttributes() {
	w.suppressed = true
	w.cache = nil
}
