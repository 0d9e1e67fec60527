package nameclass_test

import (
	"testing"

	"github.com/raffazizzi/salve/nameclass"
)

func TestNameMatch(t *testing.T) {
	t.Parallel()

	n := nameclass.Name{NS: "", Local: "foo"}
	if !n.Match("", "foo") {
		t.Fatal("expected match")
	}
	if n.Match("ns", "foo") {
		t.Fatal("expected no match on different namespace")
	}
	if n.Match("", "bar") {
		t.Fatal("expected no match on different local name")
	}
}

func TestNameChoiceSimpleAndToArray(t *testing.T) {
	t.Parallel()

	a := nameclass.Name{NS: "", Local: "a"}
	b := nameclass.Name{NS: "", Local: "b"}
	choice := nameclass.NameChoice{A: a, B: b}

	if !choice.Simple() {
		t.Fatal("NameChoice of two Names must be Simple")
	}
	arr := choice.ToArray()
	if len(arr) != 2 || arr[0] != a || arr[1] != b {
		t.Fatalf("unexpected ToArray result: %v", arr)
	}
	if !choice.Match("", "a") || !choice.Match("", "b") {
		t.Fatal("expected choice to match either branch")
	}
	if choice.Match("", "c") {
		t.Fatal("expected no match for unrelated name")
	}
}

func TestNsNameExcept(t *testing.T) {
	t.Parallel()

	except := nameclass.Name{NS: "urn:x", Local: "forbidden"}
	n := nameclass.NsName{NS: "urn:x", Except: except}

	if !n.Match("urn:x", "allowed") {
		t.Fatal("expected match for non-excluded name")
	}
	if n.Match("urn:x", "forbidden") {
		t.Fatal("expected except to block the match")
	}
	if n.Match("urn:y", "allowed") {
		t.Fatal("expected no match for different namespace")
	}
	if n.Simple() {
		t.Fatal("NsName must not be Simple")
	}
}

func TestAnyNameExcept(t *testing.T) {
	t.Parallel()

	any := nameclass.AnyName{}
	if !any.Match("anything", "goes") {
		t.Fatal("expected AnyName to match everything")
	}

	excluded := nameclass.NameChoice{
		A: nameclass.Name{NS: "", Local: "x"},
		B: nameclass.Name{NS: "", Local: "y"},
	}
	withExcept := nameclass.AnyName{Except: excluded}
	if withExcept.Match("", "x") {
		t.Fatal("expected except to block x")
	}
	if !withExcept.Match("", "z") {
		t.Fatal("expected z to be allowed")
	}
}

func TestSimplePatternsAreNonEmpty(t *testing.T) {
	t.Parallel()

	// ∀ name pattern N built only from Name/NameChoice, N.simple() = true
	// and N.toArray() is non-empty.
	patterns := []nameclass.Pattern{
		nameclass.Name{NS: "", Local: "a"},
		nameclass.NameChoice{
			A: nameclass.Name{NS: "", Local: "a"},
			B: nameclass.NameChoice{
				A: nameclass.Name{NS: "", Local: "b"},
				B: nameclass.Name{NS: "", Local: "c"},
			},
		},
	}
	for _, p := range patterns {
		if !p.Simple() {
			t.Fatalf("%s: expected Simple() == true", p)
		}
		if len(p.ToArray()) == 0 {
			t.Fatalf("%s: expected non-empty ToArray()", p)
		}
	}
}
