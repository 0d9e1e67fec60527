package rngevent_test

import (
	"reflect"
	"testing"

	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/rngevent"
)

func TestExpandAttributeNameAndValue(t *testing.T) {
	t.Parallel()

	in := rngevent.NewAttributeNameAndValue("", "a", "1")
	got := in.Expand()
	want := []rngevent.Input{
		rngevent.NewAttributeName("", "a"),
		rngevent.NewAttributeValue("1"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExpandStartTagAndAttributes(t *testing.T) {
	t.Parallel()

	in := rngevent.NewStartTagAndAttributes("", "foo", []rngevent.Attr{
		{URI: "", Local: "a", Value: "1"},
		{URI: "", Local: "b", Value: "2"},
	})
	got := in.Expand()
	if len(got) != 6 {
		t.Fatalf("got %d events, want 6", len(got))
	}
	if got[0].Kind != rngevent.EnterStartTag {
		t.Fatalf("first event kind = %v, want EnterStartTag", got[0].Kind)
	}
	if got[len(got)-1].Kind != rngevent.LeaveStartTag {
		t.Fatalf("last event kind = %v, want LeaveStartTag", got[len(got)-1].Kind)
	}
}

func TestSetNeverContainsCompactEvents(t *testing.T) {
	t.Parallel()

	s := rngevent.NewSet()
	s.Add(rngevent.TextAny())
	s.Add(rngevent.PossibleLeaveStartTag())
	for _, p := range s.ToSlice() {
		if p.Kind.IsCompact() {
			t.Fatalf("possibility set contains compact kind %v", p.Kind)
		}
	}
}

func TestSetDeduplicates(t *testing.T) {
	t.Parallel()

	s := rngevent.NewSet()
	n := nameclass.Name{NS: "", Local: "foo"}
	s.Add(rngevent.NewPossibleEnterStartTag(n))
	s.Add(rngevent.NewPossibleEnterStartTag(nameclass.Name{NS: "", Local: "foo"}))
	if s.Len() != 1 {
		t.Fatalf("expected deduplication to one entry, got %d", s.Len())
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := rngevent.NewSet()
	s.Add(rngevent.TextAny())
	clone := s.Clone()
	clone.Add(rngevent.PossibleLeaveStartTag())

	if s.Len() == clone.Len() {
		t.Fatal("expected clone mutation not to affect original")
	}
}

func TestUnion(t *testing.T) {
	t.Parallel()

	a := rngevent.NewSet()
	a.Add(rngevent.TextAny())
	b := rngevent.NewSet()
	b.Add(rngevent.PossibleLeaveStartTag())

	a.Union(b)
	if a.Len() != 2 {
		t.Fatalf("expected union of 2 distinct events, got %d", a.Len())
	}
}
