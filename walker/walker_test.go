package walker_test

import (
	"testing"

	"github.com/raffazizzi/salve/datatype"
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/nsresolve"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
	"github.com/raffazizzi/salve/walker"
)

func newEnv(a *pattern.Arena, grammar pattern.ID) (*walker.Env, error) {
	if err := pattern.Resolve(a, grammar); err != nil {
		return nil, err
	}
	prepared, err := pattern.Prepare(a, grammar)
	if err != nil {
		return nil, err
	}
	return &walker.Env{
		Arena:    a,
		Library:  datatype.Builtins,
		Elements: prepared.ElementsByName,
		Ctx:      nsresolve.New(),
	}, nil
}

// element foo { empty }
func TestEmptyElementAccepted(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	empty := a.Empty("")
	foo := a.Element("", nameclass.Name{Local: "foo"}, empty)
	grammar := a.Grammar("", foo, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "foo")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("enterStartTag: res=%v errs=%v", res, errs)
	}

	poss := w.Possible()
	if poss.Len() != 1 || !poss.Contains(rngevent.Possibility{Kind: rngevent.LeaveStartTag}) {
		t.Fatalf("expected possible() == {leaveStartTag}, got %v", poss.ToSlice())
	}

	if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("leaveStartTag: res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "foo")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag: res=%v errs=%v", res, errs)
	}
	if res, errs := w.End(false); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("end: res=%v errs=%v", res, errs)
	}
}

// element foo { attribute a { text } }
func TestRequiredAttributeMissing(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	text := a.Text("")
	attr := a.Attribute("", nameclass.Name{Local: "a"}, text)
	foo := a.Element("", nameclass.Name{Local: "foo"}, attr)
	grammar := a.Grammar("", foo, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "foo")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("enterStartTag: res=%v errs=%v", res, errs)
	}
	res, errs := w.FireEvent(rngevent.NewLeaveStartTag())
	if res != walker.Errors {
		t.Fatalf("expected leaveStartTag to report Errors, got %v", res)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	if errs[0].Code != string(errors.ErrMissingAttribute) {
		t.Fatalf("expected rng-missing-attribute, got %s", errs[0].Code)
	}
}

// element root { element (a | b) { empty } }
func TestChoiceOfTwoNames(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	nameChoice := nameclass.NameChoice{A: nameclass.Name{Local: "a"}, B: nameclass.Name{Local: "b"}}
	inner := a.Element("", nameChoice, a.Empty(""))
	root := a.Element("", nameclass.Name{Local: "root"}, inner)
	grammar := a.Grammar("", root, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	run := func(child string) (walker.Result, error) {
		w, err := walker.NewWalker(env, grammar)
		if err != nil {
			return 0, err
		}
		if _, errs := w.FireEvent(rngevent.NewEnterStartTag("", "root")); len(errs) != 0 {
			return 0, errs
		}
		if _, errs := w.FireEvent(rngevent.NewLeaveStartTag()); len(errs) != 0 {
			return 0, errs
		}
		poss := w.Possible()
		found := false
		for _, p := range poss.ToSlice() {
			if p.Kind == rngevent.EnterStartTag && p.Name != nil && p.Name.Match("", "a") && p.Name.Match("", "b") {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected possible() to offer enterStartTag(a|b), got %v", poss.ToSlice())
		}
		res, errs := w.FireEvent(rngevent.NewEnterStartTag("", child))
		if len(errs) != 0 {
			return res, errs
		}
		return res, nil
	}

	if res, err := run("a"); err != nil || res != walker.Ok {
		t.Fatalf("firing enterStartTag(a): res=%v err=%v", res, err)
	}
	if res, err := run("b"); err != nil || res != walker.Ok {
		t.Fatalf("firing enterStartTag(b) from the same prior state: res=%v err=%v", res, err)
	}
}

// Cloning commutes with fireEvent: the clone advances independently of
// the original.
func TestCloneIndependence(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	empty := a.Empty("")
	foo := a.Element("", nameclass.Name{Local: "foo"}, empty)
	grammar := a.Grammar("", foo, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	if _, errs := w.FireEvent(rngevent.NewEnterStartTag("", "foo")); len(errs) != 0 {
		t.Fatalf("enterStartTag: %v", errs)
	}

	memo := walker.NewMemo()
	clone := w.Clone(memo)

	if res, errs := clone.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("clone leaveStartTag: res=%v errs=%v", res, errs)
	}
	if !clone.CanEnd(false) {
		t.Fatal("expected clone to be able to end its content after leaveStartTag")
	}
	// The original must be untouched: it never saw leaveStartTag, so its
	// only legal next event is still leaveStartTag itself, and it cannot
	// yet end its content.
	if w.CanEnd(false) {
		t.Fatal("expected original to still require leaveStartTag before it can end")
	}
	poss := w.Possible()
	if poss.Len() != 1 || !poss.Contains(rngevent.Possibility{Kind: rngevent.LeaveStartTag}) {
		t.Fatalf("expected original to be untouched by the clone's progress, got %v", poss.ToSlice())
	}
}

// A NoMatch against a live walker must not mutate its observable state.
func TestNoMatchLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	emptyA := a.Empty("")
	emptyB := a.Empty("")
	elemA := a.Element("", nameclass.Name{Local: "a"}, emptyA)
	elemB := a.Element("", nameclass.Name{Local: "b"}, emptyB)
	choice := a.Choice("", elemA, elemB)
	grammar := a.Grammar("", choice, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	before := w.Possible()
	if res, _ := w.FireEvent(rngevent.NewEndTag("", "nonexistent")); res != walker.NoMatch {
		t.Fatalf("expected NoMatch for an unrelated endTag, got %v", res)
	}
	after := w.Possible()
	if before.Len() != after.Len() {
		t.Fatalf("possible() changed after a NoMatch dispatch: before=%v after=%v", before.ToSlice(), after.ToSlice())
	}

	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "a")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("expected enterStartTag(a) to still succeed after the unrelated NoMatch: res=%v errs=%v", res, errs)
	}
}

// element root { interleave(attribute a { text }, attribute b { text }) }
//
// Both attribute orders must be accepted: interleave routes each event to
// whichever side's name class matches it, independent of declaration order
// (spec.md §4.3 "Interleave").
func TestInterleaveAcceptsEitherAttributeOrder(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	attrA := a.Attribute("", nameclass.Name{Local: "a"}, a.Text(""))
	attrB := a.Attribute("", nameclass.Name{Local: "b"}, a.Text(""))
	interleave := a.Interleave("", attrA, attrB)
	root := a.Element("", nameclass.Name{Local: "root"}, interleave)
	grammar := a.Grammar("", root, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	run := func(first, second string) {
		w, err := walker.NewWalker(env, grammar)
		if err != nil {
			t.Fatalf("NewWalker: %v", err)
		}
		if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "root")); res != walker.Ok || len(errs) != 0 {
			t.Fatalf("enterStartTag: res=%v errs=%v", res, errs)
		}
		for _, name := range []string{first, second} {
			if res, errs := w.FireEvent(rngevent.NewAttributeName("", name)); res != walker.Ok || len(errs) != 0 {
				t.Fatalf("attributeName(%s): res=%v errs=%v", name, res, errs)
			}
			if res, errs := w.FireEvent(rngevent.NewAttributeValue("x")); res != walker.Ok || len(errs) != 0 {
				t.Fatalf("attributeValue for %s: res=%v errs=%v", name, res, errs)
			}
		}
		if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
			t.Fatalf("leaveStartTag: res=%v errs=%v", res, errs)
		}
		if res, errs := w.FireEvent(rngevent.NewEndTag("", "root")); res != walker.Ok || len(errs) != 0 {
			t.Fatalf("endTag: res=%v errs=%v", res, errs)
		}
		if res, errs := w.End(false); res != walker.Ok || len(errs) != 0 {
			t.Fatalf("end: res=%v errs=%v", res, errs)
		}
	}

	run("a", "b")
	run("b", "a")
}

// element root { element other { empty } | element known { empty } }
//
// Once the document commits to the "other" branch, "known" is no longer
// live anywhere in the choice, but it is still the schema's sole
// definition of that name, so an encounter with it substitutes a fresh
// walker rather than suspending. The substitute is transparently validated
// in place of "other"'s own (rejecting) content, and control resumes into
// "other"'s own stateInContent once the substitute's end tag closes it
// (spec.md §4.5).
func TestMisplacedElementSubstitutesUniqueCandidate(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	known := a.Element("", nameclass.Name{Local: "known"}, a.Empty(""))
	other := a.Element("", nameclass.Name{Local: "other"}, a.Empty(""))
	root := a.Element("", nameclass.Name{Local: "root"}, a.Choice("", other, known))
	grammar := a.Grammar("", root, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "root")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("enterStartTag(root): res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("leaveStartTag(root): res=%v errs=%v", res, errs)
	}

	// Commit to the "other" branch: the choice drops its "known" branch as
	// soon as "known" stops being a live possibility here.
	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "other")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("enterStartTag(other): res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("leaveStartTag(other): res=%v errs=%v", res, errs)
	}

	// "known" is now misplaced: "other"'s own (empty) content rejects it,
	// but it is the schema's sole definition of that name, so it
	// substitutes rather than suspends.
	res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "known"))
	if res != walker.Errors {
		t.Fatalf("expected the misplaced element to be reported, got %v", res)
	}
	if len(errs) != 1 || errs[0].Code != string(errors.ErrUnexpectedElement) {
		t.Fatalf("expected exactly one rng-unexpected-element, got %v", errs)
	}

	// The substitute is itself a known-content element: it must accept and
	// close its own empty content before control returns to "other"'s own
	// enclosing content (stateInContent).
	if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("leaveStartTag(known) inside the substitute: res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "known")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag(known) closing the substitute: res=%v errs=%v", res, errs)
	}

	// Resumed into "other"'s own (already-satisfied) content: its own end
	// tag now closes it cleanly, not another recovery.
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "other")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag(other) resuming its own content: res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "root")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag(root): res=%v errs=%v", res, errs)
	}
	if res, errs := w.End(false); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("end: res=%v errs=%v", res, errs)
	}
}

// element root { empty }
//
// A start tag with no corresponding definition anywhere in the schema's
// element-by-name index has zero candidates, so recovery suspends
// validation of the unrecognized subtree by depth until its matching end
// tag, then resumes the original content untouched (spec.md §4.5).
func TestMisplacedElementSuspendsWithNoCandidate(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	root := a.Element("", nameclass.Name{Local: "root"}, a.Empty(""))
	grammar := a.Grammar("", root, nil)

	env, err := newEnv(a, grammar)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	w, err := walker.NewWalker(env, grammar)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "root")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("enterStartTag(root): res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewLeaveStartTag()); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("leaveStartTag: res=%v errs=%v", res, errs)
	}

	res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "unknown"))
	if res != walker.Errors {
		t.Fatalf("expected the misplaced element to be reported, got %v", res)
	}
	if len(errs) != 1 || errs[0].Code != string(errors.ErrUnexpectedElement) {
		t.Fatalf("expected exactly one rng-unexpected-element, got %v", errs)
	}

	// A nested start/end pair inside the unrecognized subtree must be
	// absorbed silently: suspension tracks depth, not content.
	if res, errs := w.FireEvent(rngevent.NewEnterStartTag("", "nested")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("nested enterStartTag while suspended: res=%v errs=%v", res, errs)
	}
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "nested")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("nested endTag while suspended: res=%v errs=%v", res, errs)
	}

	// Still suspended until the outer "unknown" end tag closes it: a
	// suspended element cannot report CanEnd even though its own content
	// (empty) was already satisfiable before the recovery began.
	if w.CanEnd(false) {
		t.Fatal("expected CanEnd(false) to be false while still suspended")
	}
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "unknown")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag(unknown) resuming root's own content: res=%v errs=%v", res, errs)
	}

	// root's own content (empty) was never touched by the suspended
	// subtree, so the outer end tag and End() now succeed cleanly.
	if res, errs := w.FireEvent(rngevent.NewEndTag("", "root")); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("endTag(root): res=%v errs=%v", res, errs)
	}
	if res, errs := w.End(false); res != walker.Ok || len(errs) != 0 {
		t.Fatalf("end: res=%v errs=%v", res, errs)
	}
}
