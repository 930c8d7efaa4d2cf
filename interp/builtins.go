package interp

import (
	"fmt"
	"strings"
)

// preludeScope returns the bindings every module starts with, before any
// of its own statements run: the Object namespace, the m() vnode builder,
// and dedent.
func preludeScope() Scope {
	s := Scope{}
	object := NewMap()
	object.Set("entries", Builtin(builtinObjectEntries))
	object.Set("fromEntries", Builtin(builtinObjectFromEntries))
	s["Object"] = object
	s["m"] = &MBuiltin{Call: Builtin(builtinM), Trust: Builtin(builtinMTrust)}
	s["dedent"] = Builtin(builtinDedent)
	return s
}

// builtinMTrust wraps a string so the external HTML serializer emits it
// verbatim instead of escaping it.
func builtinMTrust(in *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("m.trust() takes exactly one argument")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("m.trust() argument must be a string")
	}
	return TrustedHtml{String: s}, nil
}

func builtinObjectEntries(in *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("Object.entries() takes exactly one argument")
	}
	m, ok := args[0].(*Map)
	if !ok {
		return nil, fmt.Errorf("Object.entries() argument must be an object")
	}
	out := make([]Value, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out = append(out, []Value{k, v})
	}
	return out, nil
}

func builtinObjectFromEntries(in *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("Object.fromEntries() takes exactly one argument")
	}
	list, ok := args[0].([]Value)
	if !ok {
		return nil, fmt.Errorf("Object.fromEntries() argument must be a list")
	}
	m := NewMap()
	for _, entry := range list {
		pair, ok := entry.([]Value)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("Object.fromEntries() entries must be [key, value] pairs")
		}
		key, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("Object.fromEntries() keys must be strings")
		}
		m.Set(key, pair[1])
	}
	return m, nil
}

func builtinDedent(in *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("dedent() takes exactly one argument")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("dedent() argument must be a string")
	}
	return dedent(s), nil
}

func listMap(in *Interpreter, list []Value, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf(".map() takes exactly one argument")
	}
	fn, ok := args[0].(*Closure)
	if !ok {
		return nil, fmt.Errorf(".map() argument must be a function")
	}
	out := make([]Value, len(list))
	for i, v := range list {
		res, err := in.callClosure(fn, []Value{v, float64(i)})
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

func listFilter(in *Interpreter, list []Value, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf(".filter() takes exactly one argument")
	}
	fn, ok := args[0].(*Closure)
	if !ok {
		return nil, fmt.Errorf(".filter() argument must be a function")
	}
	var out []Value
	for i, v := range list {
		res, err := in.callClosure(fn, []Value{v, float64(i)})
		if err != nil {
			return nil, err
		}
		keep, ok := res.(bool)
		if !ok {
			return nil, fmt.Errorf(".filter() predicate must return a boolean")
		}
		if keep {
			out = append(out, v)
		}
	}
	if out == nil {
		out = []Value{}
	}
	return out, nil
}

func listReduce(in *Interpreter, list []Value, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf(".reduce() takes exactly two arguments")
	}
	fn, ok := args[0].(*Closure)
	if !ok {
		return nil, fmt.Errorf(".reduce() first argument must be a function")
	}
	acc := args[1]
	for i, v := range list {
		res, err := in.callClosure(fn, []Value{acc, v, float64(i)})
		if err != nil {
			return nil, err
		}
		acc = res
	}
	return acc, nil
}

func listIncludes(in *Interpreter, list []Value, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf(".includes() takes exactly one argument")
	}
	for _, v := range list {
		if valuesEqual(v, args[0]) {
			return true, nil
		}
	}
	return false, nil
}

// builtinM builds a vnode: {tag, attrs, children}. The first argument is a
// CSS-selector-like string ("div#id.class.class"); an optional second
// attrs object follows, then any number of children, which are flattened
// (nested lists inlined, numbers stringified, null dropped).
func builtinM(in *Interpreter, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("m() requires a selector argument")
	}
	selector, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("m() selector must be a string")
	}
	tag, id, classes := parseSelector(selector)

	rest := args[1:]
	attrs := NewMap()
	allClasses := append([]string{}, classes...)
	if len(rest) > 0 {
		if am, ok := rest[0].(*Map); ok && !isVNode(rest[0]) {
			for _, k := range am.Keys() {
				if k == "class" {
					continue
				}
				v, _ := am.Get(k)
				attrs.Set(k, v)
			}
			if classVal, hasClass := am.Get("class"); hasClass {
				list, ok := classVal.([]Value)
				if !ok {
					return nil, fmt.Errorf("m() class attribute must be a list of strings")
				}
				for _, c := range list {
					s, ok := c.(string)
					if !ok {
						return nil, fmt.Errorf("m() class attribute must be a list of strings")
					}
					allClasses = append(allClasses, strings.TrimSpace(s))
				}
			}
			rest = rest[1:]
		}
	}
	if id != "" {
		attrs.Set("id", id)
	}
	attrs.Set("className", strings.TrimSpace(strings.Join(allClasses, " ")))

	var children []Value
	for _, r := range rest {
		children = append(children, flattenChild(r)...)
	}
	if children == nil {
		children = []Value{}
	}

	result := NewMap()
	result.Set("tag", tag)
	result.Set("attrs", attrs)
	result.Set("children", children)
	return result, nil
}

func flattenChild(v Value) []Value {
	switch x := v.(type) {
	case nil:
		return nil
	case []Value:
		var out []Value
		for _, c := range x {
			out = append(out, flattenChild(c)...)
		}
		return out
	case float64:
		return []Value{formatNumber(x)}
	default:
		return []Value{v}
	}
}

// isVNode reports whether v looks like something m() built itself, as
// opposed to a plain attrs object: anything renderable as a child,
// otherwise, is not an attrs map.
func isVNode(v Value) bool {
	m, ok := v.(*Map)
	if !ok {
		return false
	}
	_, hasTag := m.Get("tag")
	_, hasChildren := m.Get("children")
	return hasTag && hasChildren
}

// parseSelector splits a CSS-selector-like string into a tag name
// (defaulting to "div"), an optional #id, and zero or more .classes.
func parseSelector(sel string) (tag, id string, classes []string) {
	tag = "div"
	n := len(sel)
	i := 0
	start := 0
	for i < n && sel[i] != '.' && sel[i] != '#' {
		i++
	}
	if i > start {
		tag = sel[start:i]
	}
	for i < n {
		delim := sel[i]
		i++
		start = i
		for i < n && sel[i] != '.' && sel[i] != '#' {
			i++
		}
		part := sel[start:i]
		if delim == '#' {
			id = part
		} else {
			classes = append(classes, part)
		}
	}
	return tag, id, classes
}
