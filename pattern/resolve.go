package pattern

import "fmt"

// Resolve binds every Ref reachable from grammar's start pattern (and,
// transitively, from each Define's body) to its Define's node ID. The
// traversal never crosses a ref->define boundary twice: once a Define's
// body has been walked, later Refs to the same Define are bound without
// re-walking it, which is what keeps this pass finite on a cyclic grammar
// (spec.md §4.1.1, §9).
func Resolve(a *Arena, grammar ID) error {
	g := a.Node(grammar)
	if g.Kind != KindGrammar {
		return fmt.Errorf("pattern: Resolve requires a Grammar node, got %s", g.Kind)
	}

	visitedDefines := make(map[string]bool)

	var walk func(id ID) error
	walk = func(id ID) error {
		n := a.Node(id)
		switch n.Kind {
		case KindRef:
			target, ok := g.Defines[n.RefName]
			if !ok {
				return fmt.Errorf("pattern: unresolved reference %q at %s", n.RefName, n.Origin)
			}
			n.RefResolved = target
			def := a.Node(target)
			if !visitedDefines[def.DefineName] {
				visitedDefines[def.DefineName] = true
				if err := walk(def.Child); err != nil {
					return err
				}
			}
			return nil
		case KindGroup, KindChoice, KindInterleave:
			if err := walk(n.A); err != nil {
				return err
			}
			return walk(n.B)
		case KindAttribute, KindElement, KindOneOrMore, KindList, KindDefine:
			return walk(n.Child)
		case KindData:
			if n.DataExcept != NoID {
				return walk(n.DataExcept)
			}
			return nil
		default:
			return nil
		}
	}

	return walk(g.Start)
}
