package walker

import (
	"fmt"

	"github.com/raffazizzi/salve/pattern"
)

func errUnresolvedRef(n *pattern.Node) error {
	return fmt.Errorf("walker: unresolved reference %q at %s", n.RefName, n.Origin)
}

func errUnknownKind(n *pattern.Node) error {
	return fmt.Errorf("walker: unknown pattern kind %s at %s", n.Kind, n.Origin)
}

func errUnknownDatatype(typ string, cause error) error {
	return fmt.Errorf("walker: unknown datatype %q: %w", typ, cause)
}
