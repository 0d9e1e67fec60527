package salve_test

import (
	"testing"

	"github.com/raffazizzi/salve"
	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/rngevent"
)

func TestEngineAcquireReleaseReusesSessions(t *testing.T) {
	t.Parallel()

	a, grammar := buildFooGrammar()
	g, err := salve.Compile(a, grammar)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine := salve.NewEngine(g)

	s1, err := engine.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, errs := s1.FireEvent(rngevent.NewEnterStartTag("", "foo")); len(errs) != 0 {
		t.Fatalf("enterStartTag: %v", errs)
	}
	engine.Release(s1)

	s2, err := engine.Acquire()
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	// A freshly acquired session must start from scratch, not resume s1's
	// half-open element.
	poss := s2.Possible()
	want := rngevent.Possibility{Kind: rngevent.EnterStartTag, Name: nameclass.Name{Local: "foo"}}
	if poss.Len() != 1 || !poss.Contains(want) {
		t.Fatalf("expected a fresh session to only accept enterStartTag(foo), got %v", poss.ToSlice())
	}
}

func TestEngineNewSessionIsIndependentOfPool(t *testing.T) {
	t.Parallel()

	a, grammar := buildFooGrammar()
	g, err := salve.Compile(a, grammar)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine := salve.NewEngine(g)

	s, err := engine.NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, errs := s.FireEvent(rngevent.NewEnterStartTag("", "foo")); len(errs) != 0 {
		t.Fatalf("enterStartTag: %v", errs)
	}
}
