package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/rngevent"
)

// emptyWalker matches only the empty sequence. Its state is vacuous, so a
// single process-wide instance stands in for every Empty node; Clone
// returns the same instance (spec.md §4.3 "Empty").
type emptyWalker struct{}

var emptySingleton Walker = &emptyWalker{}

func (w *emptyWalker) Possible() *rngevent.Set { return rngevent.NewSet() }

func (w *emptyWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if in.Kind == rngevent.Text && isWhitespace(in.Value) {
		return Ok, nil
	}
	return NoMatch, nil
}

func (w *emptyWalker) End(attribute bool) (Result, errors.ValidationList) { return Ok, nil }
func (w *emptyWalker) CanEnd(attribute bool) bool                        { return true }
func (w *emptyWalker) Clone(memo *Memo) Walker                           { return w }
func (w *emptyWalker) SuppressAttributes()                               {}

func isWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

// notAllowedWalker matches nothing, not even the empty sequence. It too is
// stateless and shared.
type notAllowedWalker struct{}

var notAllowedSingleton Walker = &notAllowedWalker{}

func (w *notAllowedWalker) Possible() *rngevent.Set { return rngevent.NewSet() }

func (w *notAllowedWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	return NoMatch, nil
}

func (w *notAllowedWalker) End(attribute bool) (Result, errors.ValidationList) {
	return Errors, errors.ValidationList{errors.NewValidation(errors.ErrIncompleteContent, "notAllowed can never terminate", "")}
}
func (w *notAllowedWalker) CanEnd(attribute bool) bool { return false }
func (w *notAllowedWalker) Clone(memo *Memo) Walker    { return w }
func (w *notAllowedWalker) SuppressAttributes()        {}

// textWalker matches any text run, including none at all. Stateless.
type textWalker struct{}

func newTextWalker() Walker { return &textWalker{} }

func (w *textWalker) Possible() *rngevent.Set {
	s := rngevent.NewSet()
	s.Add(rngevent.TextAny())
	return s
}

func (w *textWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	if in.Kind == rngevent.Text {
		return Ok, nil
	}
	return NoMatch, nil
}

func (w *textWalker) End(attribute bool) (Result, errors.ValidationList) { return Ok, nil }
func (w *textWalker) CanEnd(attribute bool) bool                        { return true }
func (w *textWalker) Clone(memo *Memo) Walker                           { return &textWalker{} }
func (w *textWalker) SuppressAttributes()                               {}
