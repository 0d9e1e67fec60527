package rngjson

import (
	"fmt"

	"github.com/raffazizzi/salve/nameclass"
	"github.com/raffazizzi/salve/pattern"
)

// reader rebuilds an Arena from the generic []any shape produced by
// unmarshaling a "d" node into an `any`.
type reader struct {
	arena        *pattern.Arena
	includePaths bool
}

func (r *reader) node(raw any) (pattern.ID, error) {
	if raw == nil {
		return pattern.NoID, nil
	}
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return pattern.NoID, fmt.Errorf("malformed node: %v", raw)
	}
	kind, ok := arr[0].(string)
	if !ok {
		return pattern.NoID, fmt.Errorf("malformed node kind: %v", arr[0])
	}
	args := arr[1:]

	origin := ""
	takeOrigin := func(fixed int) error {
		if !r.includePaths {
			return nil
		}
		if len(args) != fixed+1 {
			return fmt.Errorf("node %q: expected trailing origin", kind)
		}
		s, ok := args[fixed].(string)
		if !ok {
			return fmt.Errorf("node %q: origin is not a string", kind)
		}
		origin = s
		args = args[:fixed]
		return nil
	}

	switch kind {
	case "empty":
		if err := takeOrigin(0); err != nil {
			return pattern.NoID, err
		}
		return r.arena.Empty(origin), nil
	case "notAllowed":
		if err := takeOrigin(0); err != nil {
			return pattern.NoID, err
		}
		return r.arena.NotAllowed(origin), nil
	case "text":
		if err := takeOrigin(0); err != nil {
			return pattern.NoID, err
		}
		return r.arena.Text(origin), nil
	case "value":
		if err := takeOrigin(4); err != nil {
			return pattern.NoID, err
		}
		raw, typ, dtNS, ns, err := str4(args)
		if err != nil {
			return pattern.NoID, fmt.Errorf("node %q: %w", kind, err)
		}
		return r.arena.Value(origin, raw, typ, dtNS, ns), nil
	case "data":
		if err := takeOrigin(4); err != nil {
			return pattern.NoID, err
		}
		if len(args) != 4 {
			return pattern.NoID, fmt.Errorf("node %q: expected 4 args, got %d", kind, len(args))
		}
		typ, ok := args[0].(string)
		if !ok {
			return pattern.NoID, fmt.Errorf("node %q: type is not a string", kind)
		}
		dtURI, ok := args[1].(string)
		if !ok {
			return pattern.NoID, fmt.Errorf("node %q: datatypeLibrary is not a string", kind)
		}
		params, err := r.params(args[2])
		if err != nil {
			return pattern.NoID, fmt.Errorf("node %q: %w", kind, err)
		}
		except, err := r.node(args[3])
		if err != nil {
			return pattern.NoID, err
		}
		return r.arena.Data(origin, typ, dtURI, params, except), nil
	case "list":
		if err := takeOrigin(1); err != nil {
			return pattern.NoID, err
		}
		child, err := r.node(single(args))
		if err != nil {
			return pattern.NoID, err
		}
		return r.arena.List(origin, child), nil
	case "attribute", "element":
		if err := takeOrigin(2); err != nil {
			return pattern.NoID, err
		}
		if len(args) != 2 {
			return pattern.NoID, fmt.Errorf("node %q: expected 2 args, got %d", kind, len(args))
		}
		nc, err := r.nameClass(args[0])
		if err != nil {
			return pattern.NoID, err
		}
		child, err := r.node(args[1])
		if err != nil {
			return pattern.NoID, err
		}
		if kind == "attribute" {
			return r.arena.Attribute(origin, nc, child), nil
		}
		return r.arena.Element(origin, nc, child), nil
	case "oneOrMore":
		if err := takeOrigin(1); err != nil {
			return pattern.NoID, err
		}
		child, err := r.node(single(args))
		if err != nil {
			return pattern.NoID, err
		}
		return r.arena.OneOrMore(origin, child), nil
	case "define":
		if err := takeOrigin(2); err != nil {
			return pattern.NoID, err
		}
		if len(args) != 2 {
			return pattern.NoID, fmt.Errorf("node %q: expected 2 args, got %d", kind, len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return pattern.NoID, fmt.Errorf("node %q: name is not a string", kind)
		}
		child, err := r.node(args[1])
		if err != nil {
			return pattern.NoID, err
		}
		return r.arena.Define(origin, name, child), nil
	case "group", "choice", "interleave":
		if err := takeOrigin(2); err != nil {
			return pattern.NoID, err
		}
		if len(args) != 2 {
			return pattern.NoID, fmt.Errorf("node %q: expected 2 args, got %d", kind, len(args))
		}
		a, err := r.node(args[0])
		if err != nil {
			return pattern.NoID, err
		}
		b, err := r.node(args[1])
		if err != nil {
			return pattern.NoID, err
		}
		switch kind {
		case "group":
			return r.arena.Group(origin, a, b), nil
		case "choice":
			return r.arena.Choice(origin, a, b), nil
		default:
			return r.arena.Interleave(origin, a, b), nil
		}
	case "ref":
		if err := takeOrigin(1); err != nil {
			return pattern.NoID, err
		}
		name, ok := single(args).(string)
		if !ok {
			return pattern.NoID, fmt.Errorf("node %q: name is not a string", kind)
		}
		return r.arena.Ref(origin, name), nil
	case "grammar":
		if err := takeOrigin(2); err != nil {
			return pattern.NoID, err
		}
		if len(args) != 2 {
			return pattern.NoID, fmt.Errorf("node %q: expected 2 args, got %d", kind, len(args))
		}
		defList, ok := args[1].([]any)
		if !ok {
			return pattern.NoID, fmt.Errorf("node %q: defines is not an array", kind)
		}
		defines := make(map[string]pattern.ID, len(defList))
		for _, entry := range defList {
			pair, ok := entry.([]any)
			if !ok || len(pair) != 2 {
				return pattern.NoID, fmt.Errorf("node %q: malformed define entry", kind)
			}
			name, ok := pair[0].(string)
			if !ok {
				return pattern.NoID, fmt.Errorf("node %q: define name is not a string", kind)
			}
			id, err := r.node(pair[1])
			if err != nil {
				return pattern.NoID, err
			}
			defines[name] = id
		}
		start, err := r.node(args[0])
		if err != nil {
			return pattern.NoID, err
		}
		return r.arena.Grammar(origin, start, defines), nil
	default:
		return pattern.NoID, fmt.Errorf("unknown node kind %q", kind)
	}
}

func (r *reader) params(raw any) ([]pattern.Param, error) {
	if raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("params is not an array")
	}
	out := make([]pattern.Param, 0, len(arr))
	for _, entry := range arr {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("malformed param entry")
		}
		name, ok1 := pair[0].(string)
		value, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("param entry is not a (string, string) pair")
		}
		out = append(out, pattern.Param{Name: name, Value: value})
	}
	return out, nil
}

func (r *reader) nameClass(raw any) (nameclass.Pattern, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("malformed name class: %v", raw)
	}
	kind, ok := arr[0].(string)
	if !ok {
		return nil, fmt.Errorf("malformed name class kind: %v", arr[0])
	}
	switch kind {
	case "name":
		if len(arr) != 3 {
			return nil, fmt.Errorf("name class %q: expected 2 args", kind)
		}
		ns, ok1 := arr[1].(string)
		local, ok2 := arr[2].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("name class %q: args are not strings", kind)
		}
		return nameclass.Name{NS: ns, Local: local}, nil
	case "nameChoice":
		if len(arr) != 3 {
			return nil, fmt.Errorf("name class %q: expected 2 args", kind)
		}
		a, err := r.nameClass(arr[1])
		if err != nil {
			return nil, err
		}
		b, err := r.nameClass(arr[2])
		if err != nil {
			return nil, err
		}
		return nameclass.NameChoice{A: a, B: b}, nil
	case "nsName":
		if len(arr) != 3 {
			return nil, fmt.Errorf("name class %q: expected 2 args", kind)
		}
		ns, ok := arr[1].(string)
		if !ok {
			return nil, fmt.Errorf("name class %q: ns is not a string", kind)
		}
		except, err := r.nameClassOrNil(arr[2])
		if err != nil {
			return nil, err
		}
		return nameclass.NsName{NS: ns, Except: except}, nil
	case "anyName":
		if len(arr) != 2 {
			return nil, fmt.Errorf("name class %q: expected 1 arg", kind)
		}
		except, err := r.nameClassOrNil(arr[1])
		if err != nil {
			return nil, err
		}
		return nameclass.AnyName{Except: except}, nil
	default:
		return nil, fmt.Errorf("unknown name class kind %q", kind)
	}
}

func (r *reader) nameClassOrNil(raw any) (nameclass.Pattern, error) {
	if raw == nil {
		return nil, nil
	}
	return r.nameClass(raw)
}

func single(args []any) any {
	if len(args) != 1 {
		return nil
	}
	return args[0]
}

func str4(args []any) (a, b, c, d string, err error) {
	if len(args) != 4 {
		return "", "", "", "", fmt.Errorf("expected 4 string args, got %d", len(args))
	}
	vals := make([]string, 4)
	for i, v := range args {
		s, ok := v.(string)
		if !ok {
			return "", "", "", "", fmt.Errorf("arg %d is not a string", i)
		}
		vals[i] = s
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
