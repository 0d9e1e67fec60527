// Package rngjson implements the schema JSON serialization boundary
// (spec.md §6.1, §6.3): a simplified pattern tree round-trips through a
// compact `{"v": <n>, "o": <bitfield>, "d": [...]}` document, where "d" is
// a recursive array-encoded tree and every node is `[kind, ...args]`. The
// codec underneath is goccy/go-json, a drop-in replacement for
// encoding/json, rather than the standard library (SPEC_FULL.md's domain
// stack).
package rngjson

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/pattern"
)

// Version is the current major version of the on-disk format. ReadTree
// rejects any document whose "v" differs.
const Version = 3

// optElementPaths is bit 0 of the option bitfield: when set, every node
// carries its Origin path string as a trailing element.
const optElementPaths = 1 << 0

// Option configures WriteTree.
type Option func(*writeOptions)

type writeOptions struct {
	includePaths bool
}

// WithElementPaths includes each node's Origin path string in the
// serialized form (option bit 0), at the cost of a larger document.
func WithElementPaths() Option {
	return func(o *writeOptions) { o.includePaths = true }
}

type document struct {
	V int `json:"v"`
	O int `json:"o"`
	D any `json:"d"`
}

// WriteTree serializes the pattern tree rooted at root into the stable
// JSON schema format.
func WriteTree(arena *pattern.Arena, root pattern.ID, opts ...Option) (string, error) {
	var cfg writeOptions
	for _, o := range opts {
		o(&cfg)
	}

	o := 0
	if cfg.includePaths {
		o |= optElementPaths
	}

	w := &writer{arena: arena, includePaths: cfg.includePaths}
	d, err := w.node(root)
	if err != nil {
		return "", fmt.Errorf("rngjson: write tree: %w", err)
	}

	out, err := json.Marshal(document{V: Version, O: o, D: d})
	if err != nil {
		return "", fmt.Errorf("rngjson: write tree: %w", err)
	}
	return string(out), nil
}

// ReadTree parses data, rejecting an unsupported major version, and
// rebuilds the pattern tree into a fresh Arena. The returned tree is
// unresolved: the caller must still run pattern.Resolve (and
// pattern.Prepare, or salve.Compile, which does both) before walking it.
func ReadTree(data string) (*pattern.Arena, pattern.ID, error) {
	var doc document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, pattern.NoID, fmt.Errorf("rngjson: read tree: %w", err)
	}
	if doc.V != Version {
		return nil, pattern.NoID, fmt.Errorf("rngjson: read tree: unsupported version %d (want %d)", doc.V, Version)
	}

	arena := pattern.NewArena()
	r := &reader{arena: arena, includePaths: doc.O&optElementPaths != 0}
	root, err := r.node(doc.D)
	if err != nil {
		return nil, pattern.NoID, fmt.Errorf("rngjson: read tree: %w", err)
	}
	return arena, root, nil
}

// writer walks an existing Arena, producing []any node encodings.
type writer struct {
	arena        *pattern.Arena
	includePaths bool
}

func (w *writer) node(id pattern.ID) (any, error) {
	if id == pattern.NoID {
		return nil, nil
	}
	n := w.arena.Node(id)
	switch n.Kind {
	case pattern.KindEmpty:
		return w.tag("empty", n.Origin), nil
	case pattern.KindNotAllowed:
		return w.tag("notAllowed", n.Origin), nil
	case pattern.KindText:
		return w.tag("text", n.Origin), nil
	case pattern.KindValue:
		return w.tag("value", n.Origin, n.ValueRaw, n.ValueType, n.ValueDatatypeNS, n.ValueNS), nil
	case pattern.KindData:
		params := make([][2]string, len(n.DataParams))
		for i, p := range n.DataParams {
			params[i] = [2]string{p.Name, p.Value}
		}
		except, err := w.node(n.DataExcept)
		if err != nil {
			return nil, err
		}
		return w.tag("data", n.Origin, n.DataType, n.DataLibraryURI, params, except), nil
	case pattern.KindList:
		child, err := w.node(n.Child)
		if err != nil {
			return nil, err
		}
		return w.tag("list", n.Origin, child), nil
	case pattern.KindAttribute:
		nc, err := w.nameClass(n.NameClassField)
		if err != nil {
			return nil, err
		}
		child, err := w.node(n.Child)
		if err != nil {
			return nil, err
		}
		return w.tag("attribute", n.Origin, nc, child), nil
	case pattern.KindElement:
		nc, err := w.nameClass(n.NameClassField)
		if err != nil {
			return nil, err
		}
		child, err := w.node(n.Child)
		if err != nil {
			return nil, err
		}
		return w.tag("element", n.Origin, nc, child), nil
	case pattern.KindOneOrMore:
		child, err := w.node(n.Child)
		if err != nil {
			return nil, err
		}
		return w.tag("oneOrMore", n.Origin, child), nil
	case pattern.KindDefine:
		child, err := w.node(n.Child)
		if err != nil {
			return nil, err
		}
		return w.tag("define", n.Origin, n.DefineName, child), nil
	case pattern.KindGroup, pattern.KindChoice, pattern.KindInterleave:
		a, err := w.node(n.A)
		if err != nil {
			return nil, err
		}
		b, err := w.node(n.B)
		if err != nil {
			return nil, err
		}
		return w.tag(binaryTag(n.Kind), n.Origin, a, b), nil
	case pattern.KindRef:
		return w.tag("ref", n.Origin, n.RefName), nil
	case pattern.KindGrammar:
		start, err := w.node(n.Start)
		if err != nil {
			return nil, err
		}
		defines := make([][2]any, 0, len(n.Defines))
		for name, id := range n.Defines {
			body, err := w.node(id)
			if err != nil {
				return nil, err
			}
			defines = append(defines, [2]any{name, body})
		}
		return w.tag("grammar", n.Origin, start, defines), nil
	default:
		return nil, fmt.Errorf("rngjson: unknown pattern kind %s", n.Kind)
	}
}

func binaryTag(k pattern.Kind) string {
	switch k {
	case pattern.KindGroup:
		return "group"
	case pattern.KindChoice:
		return "choice"
	case pattern.KindInterleave:
		return "interleave"
	default:
		return "unknown"
	}
}

func (w *writer) tag(kind string, origin string, args ...any) []any {
	out := make([]any, 0, 2+len(args))
	out = append(out, kind)
	out = append(out, args...)
	if w.includePaths {
		out = append(out, origin)
	}
	return out
}

func (w *writer) nameClass(p nameclass.Pattern) (any, error) {
	switch v := p.(type) {
	case nameclass.Name:
		return []any{"name", v.NS, v.Local}, nil
	case nameclass.NameChoice:
		a, err := w.nameClass(v.A)
		if err != nil {
			return nil, err
		}
		b, err := w.nameClass(v.B)
		if err != nil {
			return nil, err
		}
		return []any{"nameChoice", a, b}, nil
	case nameclass.NsName:
		except, err := w.nameClassOrNil(v.Except)
		if err != nil {
			return nil, err
		}
		return []any{"nsName", v.NS, except}, nil
	case nameclass.AnyName:
		except, err := w.nameClassOrNil(v.Except)
		if err != nil {
			return nil, err
		}
		return []any{"anyName", except}, nil
	default:
		return nil, fmt.Errorf("rngjson: unknown name class %T", p)
	}
}

func (w *writer) nameClassOrNil(p nameclass.Pattern) (any, error) {
	if p == nil {
		return nil, nil
	}
	return w.nameClass(p)
}
