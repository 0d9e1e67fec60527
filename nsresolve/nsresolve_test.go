package nsresolve_test

import (
	"testing"

	"github.com/raffazizzi/salve/nsresolve"
)

func TestResolveNameDefaultNamespace(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	c.EnterContextWithMapping(map[string]string{"": "urn:default"})

	uri, local, err := c.ResolveName("foo", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "urn:default" || local != "foo" {
		t.Fatalf("got (%q, %q)", uri, local)
	}
}

func TestResolveNameAttributeIgnoresDefault(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	c.EnterContextWithMapping(map[string]string{"": "urn:default"})

	uri, local, err := c.ResolveName("foo", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "" || local != "foo" {
		t.Fatalf("expected no-namespace attribute, got (%q, %q)", uri, local)
	}
}

func TestResolveNamePrefixed(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	c.DefinePrefix("p", "urn:p")

	uri, local, err := c.ResolveName("p:bar", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "urn:p" || local != "bar" {
		t.Fatalf("got (%q, %q)", uri, local)
	}
}

func TestResolveNameUnboundPrefix(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	if _, _, err := c.ResolveName("p:bar", false); err == nil {
		t.Fatal("expected error for unbound prefix")
	}
}

func TestResolveXMLPrefixImplicit(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	uri, local, err := c.ResolveName("xml:lang", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != nsresolve.XMLNamespace || local != "lang" {
		t.Fatalf("got (%q, %q)", uri, local)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	c.DefinePrefix("p", "urn:p")
	clone := c.Clone()
	clone.DefinePrefix("q", "urn:q")

	if _, _, err := c.ResolveName("q:x", false); err == nil {
		t.Fatal("expected original context to be unaffected by clone mutation")
	}
	if _, _, err := clone.ResolveName("q:x", false); err != nil {
		t.Fatalf("expected clone to resolve q: %v", err)
	}
}

func TestLeaveContextShadowing(t *testing.T) {
	t.Parallel()

	c := nsresolve.New()
	c.DefinePrefix("p", "urn:outer")
	c.EnterContext()
	c.DefinePrefix("p", "urn:inner")

	if uri, _, _ := c.ResolveName("p:x", false); uri != "urn:inner" {
		t.Fatalf("expected inner binding, got %q", uri)
	}
	c.LeaveContext()
	if uri, _, _ := c.ResolveName("p:x", false); uri != "urn:outer" {
		t.Fatalf("expected outer binding restored, got %q", uri)
	}
}
