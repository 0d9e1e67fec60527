package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

type elementState uint8

const (
	stateBeforeStart elementState = iota
	stateInStartTag
	stateInContent
	stateAfterEnd
	stateRecoveringSubstitute
	stateRecoveringSuspended
)

// elementWalker drives the four-phase life cycle of a balanced
// start-tag/content/end-tag region (spec.md §4.3 "Element", §4.4). It
// holds a single content walker spanning both the attribute phase and the
// content phase; SuppressAttributes is invoked on it automatically at
// leaveStartTag so its possibility set stops offering attribute events,
// which is simpler than and behaviorally equivalent to splitting content
// into separate attribute/content sub-walkers.
type elementWalker struct {
	env       *Env
	nameClass nameclass.Pattern
	contentID pattern.ID

	state   elementState
	uri     string
	local   string
	content Walker

	// recovery (spec.md §4.5)
	substitute   *elementWalker
	suspendDepth int

	cache *rngevent.Set
}

func newElementWalker(env *Env, n *pattern.Node) Walker {
	return &elementWalker{env: env, nameClass: n.NameClassField, contentID: n.Child}
}

func (w *elementWalker) Possible() *rngevent.Set {
	if w.cache != nil {
		return w.cache.Clone()
	}
	s := rngevent.NewSet()
	switch w.state {
	case stateBeforeStart:
		s.Add(rngevent.NewPossibleEnterStartTag(w.nameClass))
	case stateInStartTag:
		for _, p := range w.content.Possible().ToSlice() {
			if p.Kind == rngevent.AttributeName {
				s.Add(p)
			}
		}
		if w.content.CanEnd(true) {
			s.Add(rngevent.PossibleLeaveStartTag())
		}
	case stateInContent:
		s.Union(w.content.Possible())
		if w.content.CanEnd(false) {
			s.Add(rngevent.NewPossibleEndTag(nameclass.Name{NS: w.uri, Local: w.local}))
		}
	case stateRecoveringSubstitute:
		s.Union(w.substitute.Possible())
	}
	w.cache = s
	return s.Clone()
}

func (w *elementWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	w.cache = nil
	switch w.state {
	case stateBeforeStart:
		if in.Kind == rngevent.EnterStartTag && w.nameClass.Match(in.URI, in.Local) {
			content, err := NewWalker(w.env, w.contentID)
			if err != nil {
				return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrUnresolvedReference, "", "invalid element content: %v", err)}
			}
			w.content = content
			w.uri, w.local = in.URI, in.Local
			w.state = stateInStartTag
			return Ok, nil
		}
		return NoMatch, nil

	case stateInStartTag:
		switch in.Kind {
		case rngevent.AttributeName, rngevent.AttributeValue:
			res, errs := w.content.FireEvent(in)
			if res == NoMatch {
				return Errors, errors.ValidationList{errors.NewValidationf(errors.ErrUnexpectedAttribute, "", "unexpected attribute")}
			}
			return res, errs
		case rngevent.LeaveStartTag:
			w.content.SuppressAttributes()
			res, errs := w.content.End(true)
			w.state = stateInContent
			return res, errs
		default:
			return NoMatch, nil
		}

	case stateInContent:
		switch in.Kind {
		case rngevent.EndTag:
			// A still-open nested element gets first claim on this event
			// (its own closing tag reaches it only through here, since
			// every event is dispatched from the document root down); only
			// once content has nothing left to say about it do we check
			// whether it closes this element itself.
			if res, errs := w.content.FireEvent(in); res != NoMatch {
				return res, errs
			}
			if in.URI != w.uri || in.Local != w.local {
				return NoMatch, nil
			}
			res, errs := w.content.End(false)
			w.state = stateAfterEnd
			return res, errs
		case rngevent.EnterStartTag:
			res, errs := w.content.FireEvent(in)
			if res != NoMatch {
				return res, errs
			}
			return w.recover(in)
		default:
			res, errs := w.content.FireEvent(in)
			if res == NoMatch {
				return Errors, errors.ValidationList{errors.NewValidation(errors.ErrUnexpectedText, "unexpected content", "")}
			}
			return res, errs
		}

	case stateRecoveringSubstitute:
		res, errs := w.substitute.FireEvent(in)
		if w.substitute.state == stateAfterEnd {
			w.state = stateInContent
			w.substitute = nil
		}
		return res, errs

	case stateRecoveringSuspended:
		switch in.Kind {
		case rngevent.EnterStartTag:
			w.suspendDepth++
			return Ok, nil
		case rngevent.EndTag:
			w.suspendDepth--
			if w.suspendDepth == 0 {
				w.state = stateInContent
			}
			return Ok, nil
		default:
			return Ok, nil
		}

	default: // stateAfterEnd
		return NoMatch, nil
	}
}

// recover implements the misplaced-element heuristic (spec.md §4.5): when
// no walker in the live content accepts a start tag, consult the
// schema-wide element-by-name index. Exactly one candidate definition
// substitutes a fresh walker for it, transparently validated from here;
// zero or multiple candidates suspend validation of the unrecognized
// subtree until its matching end tag, after which the original content
// walker resumes untouched.
func (w *elementWalker) recover(in rngevent.Input) (Result, errors.ValidationList) {
	errs := errors.ValidationList{errors.NewValidationf(errors.ErrUnexpectedElement, "", "unexpected element {%s}%s", in.URI, in.Local)}

	key := pattern.NameKey{NS: in.URI, Local: in.Local}
	ids := w.env.Elements[key]
	if len(ids) == 1 {
		sub, err := NewWalker(w.env, ids[0])
		if err == nil {
			if ew, ok := sub.(*elementWalker); ok {
				ew.FireEvent(in)
				w.substitute = ew
				w.state = stateRecoveringSubstitute
				return Errors, errs
			}
		}
	}
	w.state = stateRecoveringSuspended
	w.suspendDepth = 1
	return Errors, errs
}

func (w *elementWalker) End(attribute bool) (Result, errors.ValidationList) {
	if w.CanEnd(attribute) {
		return Ok, nil
	}
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrIncompleteContent, "element is not complete", "")}
}

func (w *elementWalker) CanEnd(attribute bool) bool {
	if attribute {
		return true
	}
	switch w.state {
	case stateAfterEnd:
		return true
	case stateInContent:
		return w.content.CanEnd(false)
	default:
		return false
	}
}

func (w *elementWalker) Clone(memo *Memo) Walker {
	cp := &elementWalker{
		env: memo.envFor(w.env), nameClass: w.nameClass, contentID: w.contentID,
		state: w.state, uri: w.uri, local: w.local,
		suspendDepth: w.suspendDepth,
	}
	if w.content != nil {
		cp.content = cloneChild(memo, w.content)
	}
	if w.substitute != nil {
		cp.substitute = cloneChild(memo, w.substitute).(*elementWalker)
	}
	return cp
}

func (w *elementWalker) SuppressAttributes() {
	if w.content != nil {
		w.content.SuppressAttributes()
	}
	w.cache = nil
}
