package salve_test

import (
	"testing"

	"github.com/raffazizzi/salve"
	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// element foo { attribute a { text } }
func buildFooGrammar() (*pattern.Arena, pattern.ID) {
	a := pattern.NewArena()
	text := a.Text("")
	attr := a.Attribute("", nameclass.Name{Local: "a"}, text)
	foo := a.Element("", nameclass.Name{Local: "foo"}, attr)
	return a, a.Grammar("", foo, nil)
}

func TestCompileRejectsUnresolvedRef(t *testing.T) {
	t.Parallel()

	a := pattern.NewArena()
	ref := a.Ref("", "missing")
	grammar := a.Grammar("", ref, nil)

	if _, err := salve.Compile(a, grammar); err == nil {
		t.Fatal("expected Compile to reject a grammar with an unresolved ref")
	}
}

func TestCompileAndValidateAccepts(t *testing.T) {
	t.Parallel()

	a, grammar := buildFooGrammar()
	g, err := salve.Compile(a, grammar)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	v, err := g.NewWalker()
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	steps := []rngevent.Input{
		rngevent.NewEnterStartTag("", "foo"),
		rngevent.NewAttributeName("", "a"),
		rngevent.NewAttributeValue("x"),
		rngevent.NewLeaveStartTag(),
		rngevent.NewEndTag("", "foo"),
	}
	for _, e := range steps {
		if res, errs := v.FireEvent(e); res != salve.Ok {
			t.Fatalf("event %v: res=%v errs=%v", e, res, errs)
		}
	}
	if res, errs := v.End(); res != salve.Ok {
		t.Fatalf("End: res=%v errs=%v", res, errs)
	}
	if len(v.Errors()) != 0 {
		t.Fatalf("expected no accumulated errors, got %v", v.Errors())
	}
}

func TestValidateReportsMissingAttribute(t *testing.T) {
	t.Parallel()

	a, grammar := buildFooGrammar()
	g, err := salve.Compile(a, grammar)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	v, err := g.NewWalker()
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}

	if _, errs := v.FireEvent(rngevent.NewEnterStartTag("", "foo")); len(errs) != 0 {
		t.Fatalf("enterStartTag: %v", errs)
	}
	res, errs := v.FireEvent(rngevent.NewLeaveStartTag())
	if res != salve.Errors || len(errs) != 1 {
		t.Fatalf("expected one error at leaveStartTag, got res=%v errs=%v", res, errs)
	}
	if len(v.Errors()) != 1 {
		t.Fatalf("expected the session log to retain the one error, got %v", v.Errors())
	}
}

func TestManifestStaleness(t *testing.T) {
	t.Parallel()

	a, grammar := buildFooGrammar()
	hash := func(b []byte) string { return string(rune(len(b))) }
	g, err := salve.Compile(a, grammar, salve.WithHashFunc(hash))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	entry := g.Hash("foo.json", []byte("abc"))
	if entry.Stale(hash, []byte("abc")) {
		t.Fatal("expected identical content to report fresh")
	}
	if !entry.Stale(hash, []byte("abcdef")) {
		t.Fatal("expected changed content to report stale")
	}
}
