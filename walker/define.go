package walker

import (
	"github.com/raffazizzi/salve/errors"
	"github.com/raffazizzi/salve/pattern"
	"github.com/raffazizzi/salve/rngevent"
)

// defineWalker is a transparent pass-through to its body's walker, used
// when NewWalker is asked for a Define node itself. A Ref never goes
// through it: NewWalker for a Ref instantiates its Define's body walker
// directly, so there is neither a ref-walker nor a define-walker layer on
// that path (spec.md §9 "Ref/Define collapse").
type defineWalker struct {
	child Walker
}

func newDefineWalker(env *Env, n *pattern.Node) (Walker, error) {
	child, err := NewWalker(env, n.Child)
	if err != nil {
		return nil, err
	}
	return &defineWalker{child: child}, nil
}

func (w *defineWalker) Possible() *rngevent.Set { return w.child.Possible() }

func (w *defineWalker) FireEvent(in rngevent.Input) (Result, errors.ValidationList) {
	return w.child.FireEvent(in)
}

func (w *defineWalker) End(attribute bool) (Result, errors.ValidationList) {
	return w.child.End(attribute)
}

func (w *defineWalker) CanEnd(attribute bool) bool { return w.child.CanEnd(attribute) }

func (w *defineWalker) Clone(memo *Memo) Walker {
	return &defineWalker{child: cloneChild(memo, w.child)}
}

func (w *defineWalker) SuppressAttributes() { w.child.SuppressAttributes() }
