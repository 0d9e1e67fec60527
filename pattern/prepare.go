package pattern

import "github.com/raffazizzi/salve/nameclass"

// Namespaces is the set of namespace URIs collected from name classes
// during Prepare, for callers that want to preconfigure a resolver.
type Namespaces map[string]bool

// NameKey is a concrete (namespace, local name) pair used to index
// Element patterns for misplaced-element recovery (spec.md §4.5).
type NameKey struct {
	NS, Local string
}

// Prepared holds the outputs of the Prepare pass.
type Prepared struct {
	Namespaces Namespaces
	// ElementsByName indexes every Element pattern in the grammar whose
	// name class is Simple() (built only of Name/NameChoice) by each
	// concrete name it admits. Wildcard-named elements (NsName, AnyName)
	// are not indexed: the one-definition recovery heuristic only applies
	// to concretely named elements (spec.md §4.5, Non-goals).
	ElementsByName map[NameKey][]ID
}

// Prepare runs the second construction pass (spec.md §4.1.2): it collects
// the namespace URIs appearing in name classes, computes, per composite
// node, whether its subtree contains an Attribute pattern, and builds the
// element-by-name index used for misplaced-element recovery. Like Resolve,
// it does not re-walk a node it has already visited, so it terminates on
// cyclic grammars. Resolve must run first.
func Prepare(a *Arena, grammar ID) (Prepared, error) {
	g := a.Node(grammar)
	ns := Namespaces{}
	byName := make(map[NameKey][]ID)
	visited := make(map[ID]bool)

	var compute func(id ID) bool
	compute = func(id ID) bool {
		if visited[id] {
			return a.Node(id).HasAttribute
		}
		n := a.Node(id)
		visited[id] = true

		switch n.Kind {
		case KindAttribute:
			collectNames(n.NameClassField, ns)
			compute(n.Child)
			n.HasAttribute = true
			n.prepared = true
			return true
		case KindElement:
			collectNames(n.NameClassField, ns)
			indexElement(n, byName)
			compute(n.Child)
			// An Element's own attributes are internal to it: from the
			// perspective of its parent, the Element node itself does not
			// carry an attribute obligation (spec.md §4.1.2).
			n.HasAttribute = false
			n.prepared = true
			return false
		case KindGroup, KindChoice, KindInterleave:
			ha := compute(n.A)
			if compute(n.B) {
				ha = true
			}
			n.HasAttribute = ha
			n.prepared = true
			return ha
		case KindOneOrMore, KindList, KindDefine:
			ha := compute(n.Child)
			n.HasAttribute = ha
			n.prepared = true
			return ha
		case KindRef:
			if n.RefResolved == NoID {
				return false
			}
			ha := compute(n.RefResolved)
			n.HasAttribute = ha
			n.prepared = true
			return ha
		case KindData:
			if n.DataExcept != NoID {
				compute(n.DataExcept)
			}
			n.prepared = true
			return false
		default:
			n.prepared = true
			return false
		}
	}

	compute(g.Start)
	return Prepared{Namespaces: ns, ElementsByName: byName}, nil
}

func indexElement(n *Node, out map[NameKey][]ID) {
	if n.NameClassField == nil || !n.NameClassField.Simple() {
		return
	}
	for _, name := range n.NameClassField.ToArray() {
		key := NameKey{NS: name.NS, Local: name.Local}
		out[key] = append(out[key], n.ID)
	}
}

func collectNames(p nameclass.Pattern, out Namespaces) {
	switch v := p.(type) {
	case nil:
		return
	case nameclass.Name:
		out[v.NS] = true
	case nameclass.NameChoice:
		collectNames(v.A, out)
		collectNames(v.B, out)
	case nameclass.NsName:
		out[v.NS] = true
		if v.Except != nil {
			collectNames(v.Except, out)
		}
	case nameclass.AnyName:
		if v.Except != nil {
			collectNames(v.Except, out)
		}
	}
}
