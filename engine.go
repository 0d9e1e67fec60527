package salve

import "sync"

// Engine holds one compiled grammar and hands out many independent Sessions
// for validating documents against it. It is safe for concurrent use by
// multiple goroutines; each Session pulled from it advances its own walker
// tree and is not shared.
type Engine struct {
	grammar *Grammar
	pool    sync.Pool
}

// Session wraps a *Validator acquired from an Engine's pool. Sessions are
// not safe for concurrent use.
type Session struct {
	*Validator
	engine *Engine
}

// NewEngine returns an Engine backed by grammar.
func NewEngine(grammar *Grammar) *Engine {
	e := &Engine{grammar: grammar}
	e.pool.New = func() any { return &Session{} }
	return e
}

// Acquire pulls a Session from the pool (building a fresh walker tree via
// opts) and returns it for the caller to drive through one document. The
// caller must call Release when done with it.
func (e *Engine) Acquire(opts ...ValidateOption) (*Session, error) {
	if e == nil || e.grammar == nil {
		return nil, schemaNotLoadedError()
	}
	v, err := e.grammar.NewWalker(opts...)
	if err != nil {
		return nil, err
	}
	s, _ := e.pool.Get().(*Session)
	if s == nil {
		s = &Session{}
	}
	s.engine = e
	s.Validator = v
	return s, nil
}

// Release returns s to its engine's pool. The session must not be used
// again afterward unless re-acquired.
func (e *Engine) Release(s *Session) {
	if e == nil || s == nil {
		return
	}
	s.Validator = nil
	e.pool.Put(s)
}

// NewSession returns a new, unpooled Session bound to this engine, for
// callers that don't want pool reuse.
func (e *Engine) NewSession(opts ...ValidateOption) (*Session, error) {
	if e == nil || e.grammar == nil {
		return nil, schemaNotLoadedError()
	}
	v, err := e.grammar.NewWalker(opts...)
	if err != nil {
		return nil, err
	}
	return &Session{Validator: v, engine: e}, nil
}
