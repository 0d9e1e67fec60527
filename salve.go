// Package salve implements a streaming Relax NG-subset XML validator: a
// simplified pattern tree walked by a Brzozowski-style derivative automaton
// driven by an externally supplied parse-event stream. See spec.md for the
// full design; this file holds the compiled-grammar type and the
// compile-time options that configure it.
package salve

import (
	"fmt"

	"github.com/raffazizzi/salve/datatype"
	"github.com/raffazizzi/salve/pattern"
)

// Grammar is a compiled, immutable Relax NG pattern tree ready to spawn
// walkers. A Grammar is safe for concurrent use by multiple goroutines: it
// is read-only once Compile returns, and each NewWalker call builds an
// independent mutable walker tree over it.
type Grammar struct {
	arena    *pattern.Arena
	start    pattern.ID
	prepared pattern.Prepared
	library  datatype.Library
	manifest []Manifest
	hashFunc HashFunc
}

// CompileOption configures Compile.
type CompileOption interface{ apply(*compileOptions) }

type compileOptions struct {
	library  datatype.Library
	manifest []Manifest
	hashFunc HashFunc
}

type compileOptionFunc func(*compileOptions)

func (f compileOptionFunc) apply(cfg *compileOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithDatatypeLibrary overrides the datatype library consulted by Value and
// Data patterns. Defaults to datatype.Builtins.
func WithDatatypeLibrary(lib datatype.Library) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.library = lib
	})
}

// WithManifest attaches freshness metadata (file path plus content hash per
// entry) to the compiled Grammar, retrievable via Grammar.Manifest. It has
// no effect on validation; a caller can compare it against current file
// contents (Manifest.Stale) to decide whether a schema needs recompiling.
func WithManifest(entries []Manifest) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.manifest = entries
	})
}

// WithHashFunc sets the hash function Grammar uses to build manifest
// entries on demand (via Grammar.Hash), e.g. a CLI that wants to compute
// {filePath, hash} pairs for the schema files it loaded without hardcoding
// an algorithm in the core.
func WithHashFunc(hash HashFunc) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.hashFunc = hash
	})
}

func applyCompileOptions(opts []CompileOption) compileOptions {
	cfg := compileOptions{library: datatype.Builtins}
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return cfg
}

// Compile resolves every Ref reachable from grammar's start pattern and
// runs the preparation pass (name-class namespace collection and the
// element-by-name index used for misplaced-element recovery), returning a
// Grammar ready to spawn walkers. arena and grammar are typically produced
// by a schema compiler (e.g. an RNG-to-pattern translator) built on top of
// the pattern package; Compile itself only resolves and prepares an
// already-built tree.
func Compile(arena *pattern.Arena, grammar pattern.ID, opts ...CompileOption) (*Grammar, error) {
	cfg := applyCompileOptions(opts)

	if err := pattern.Resolve(arena, grammar); err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}
	prepared, err := pattern.Prepare(arena, grammar)
	if err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}

	return &Grammar{
		arena:    arena,
		start:    grammar,
		prepared: prepared,
		library:  cfg.library,
		manifest: cfg.manifest,
		hashFunc: cfg.hashFunc,
	}, nil
}

// Manifest reports the freshness metadata attached at compile time, or nil
// if none was supplied.
func (g *Grammar) Manifest() []Manifest {
	if g == nil {
		return nil
	}
	return g.manifest
}

// Hash builds a Manifest entry for filePath/content using the HashFunc
// supplied via WithHashFunc. It returns the zero Manifest if no HashFunc
// was configured.
func (g *Grammar) Hash(filePath string, content []byte) Manifest {
	if g == nil || g.hashFunc == nil {
		return Manifest{}
	}
	return NewManifestEntry(g.hashFunc, filePath, content)
}

// Namespaces reports the namespace URIs collected from name classes during
// compilation, for callers that want to preconfigure a resolver context.
func (g *Grammar) Namespaces() pattern.Namespaces {
	if g == nil {
		return nil
	}
	return g.prepared.Namespaces
}

func schemaNotLoadedError() error {
	return &notLoadedError{}
}

type notLoadedError struct{}

func (e *notLoadedError) Error() string { return "salve: grammar not compiled" }
