// Package rngevent defines the value-typed parse events exchanged between
// the external tokenizer and the walker machinery, plus the possibility-set
// type walkers return from possible(). See spec.md §3.3, §4.2, §6.2.
package rngevent

import "github.com/raffazizzi/salve/nameclass"

// Kind identifies the shape of an event.
type Kind uint8

const (
	EnterStartTag Kind = iota
	LeaveStartTag
	EndTag
	AttributeName
	AttributeValue
	Text
	// AttributeNameAndValue and StartTagAndAttributes are compact input
	// events only; they are expanded by the walker and never appear in a
	// possibility set (spec.md §4.2 "Compact events").
	AttributeNameAndValue
	StartTagAndAttributes
)

func (k Kind) String() string {
	switch k {
	case EnterStartTag:
		return "enterStartTag"
	case LeaveStartTag:
		return "leaveStartTag"
	case EndTag:
		return "endTag"
	case AttributeName:
		return "attributeName"
	case AttributeValue:
		return "attributeValue"
	case Text:
		return "text"
	case AttributeNameAndValue:
		return "attributeNameAndValue"
	case StartTagAndAttributes:
		return "startTagAndAttributes"
	default:
		return "unknown"
	}
}

// IsCompact reports whether the kind is one of the two compact input-only
// shapes that must never be returned in a possibility set.
func (k Kind) IsCompact() bool {
	return k == AttributeNameAndValue || k == StartTagAndAttributes
}

// nameBearing reports whether events of this kind carry a name (a concrete
// (uri, local) pair on input, a nameclass.Pattern in a possibility set).
func (k Kind) nameBearing() bool {
	switch k {
	case EnterStartTag, EndTag, AttributeName, AttributeNameAndValue, StartTagAndAttributes:
		return true
	default:
		return false
	}
}

// Attr is one (uri, local, value) triple used by StartTagAndAttributes.
type Attr struct {
	URI, Local, Value string
}

// Input is an event fed to a walker's FireEvent. Name-bearing kinds carry
// concrete URI/Local; Text and AttributeValue carry Value; the two compact
// kinds carry both a name and, where relevant, a value or attribute list.
type Input struct {
	Kind  Kind
	URI   string
	Local string
	Value string
	Attrs []Attr // only populated for StartTagAndAttributes
}

func NewEnterStartTag(uri, local string) Input { return Input{Kind: EnterStartTag, URI: uri, Local: local} }
func NewLeaveStartTag() Input                  { return Input{Kind: LeaveStartTag} }
func NewEndTag(uri, local string) Input        { return Input{Kind: EndTag, URI: uri, Local: local} }
func NewAttributeName(uri, local string) Input { return Input{Kind: AttributeName, URI: uri, Local: local} }
func NewAttributeValue(v string) Input         { return Input{Kind: AttributeValue, Value: v} }
func NewText(v string) Input                   { return Input{Kind: Text, Value: v} }

func NewAttributeNameAndValue(uri, local, v string) Input {
	return Input{Kind: AttributeNameAndValue, URI: uri, Local: local, Value: v}
}

func NewStartTagAndAttributes(uri, local string, attrs []Attr) Input {
	return Input{Kind: StartTagAndAttributes, URI: uri, Local: local, Attrs: attrs}
}

// Expand turns a compact input event into the sequence of primitive input
// events it stands for (spec.md §4.2). Non-compact events expand to
// themselves.
func (e Input) Expand() []Input {
	switch e.Kind {
	case AttributeNameAndValue:
		return []Input{
			NewAttributeName(e.URI, e.Local),
			NewAttributeValue(e.Value),
		}
	case StartTagAndAttributes:
		out := make([]Input, 0, 2+2*len(e.Attrs)+1)
		out = append(out, NewEnterStartTag(e.URI, e.Local))
		for _, a := range e.Attrs {
			out = append(out, NewAttributeName(a.URI, a.Local), NewAttributeValue(a.Value))
		}
		out = append(out, NewLeaveStartTag())
		return out
	default:
		return []Input{e}
	}
}

// Possibility is an event as returned by possible(): name-bearing kinds
// carry a name pattern rather than a concrete name, per spec.md §9.
type Possibility struct {
	Kind  Kind
	Name  nameclass.Pattern // nil unless Kind.nameBearing()
	Value string            // "*" placeholder for Text and AttributeValue; unused otherwise
}

func (p Possibility) key() string {
	if p.Kind.nameBearing() && p.Name != nil {
		return p.Kind.String() + "\x00" + p.Name.String()
	}
	return p.Kind.String() + "\x00" + p.Value
}

// String renders the possibility for diagnostics.
func (p Possibility) String() string {
	if p.Kind.nameBearing() && p.Name != nil {
		return p.Kind.String() + "(" + p.Name.String() + ")"
	}
	if p.Value != "" {
		return p.Kind.String() + "(" + p.Value + ")"
	}
	return p.Kind.String()
}

// TextAny returns the canonical "any text" possibility, used by patterns that
// accept arbitrary text runs.
func TextAny() Possibility { return Possibility{Kind: Text, Value: "*"} }

func NewPossibleEnterStartTag(n nameclass.Pattern) Possibility {
	return Possibility{Kind: EnterStartTag, Name: n}
}

func NewPossibleEndTag(n nameclass.Pattern) Possibility {
	return Possibility{Kind: EndTag, Name: n}
}

func NewPossibleAttributeName(n nameclass.Pattern) Possibility {
	return Possibility{Kind: AttributeName, Name: n}
}

func PossibleLeaveStartTag() Possibility { return Possibility{Kind: LeaveStartTag} }
