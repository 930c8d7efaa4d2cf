// Package interp tree-walks a parsed dnjs module, evaluating its
// statements top to bottom against a scope built incrementally as consts,
// imports, and exports are executed.
package interp

import (
	"strconv"

	"github.com/leontrolski/dnjs/ast"
)

// Value is any of: nil (null), Undefined, bool, float64, string, []Value,
// *Map, *Closure, Builtin, *MBuiltin, or TrustedHtml. There is no interface
// method set; the evaluator
// and builtins switch on the dynamic type directly, the way a tree-walking
// interpreter over a dynamically typed language normally does.
type Value interface{}

// Map is an insertion-ordered string-keyed dictionary: dnjs object literals
// and module export sets both preserve the order keys were first seen in,
// since that order is what a JSON or HTML rendering of the value needs.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty, ready-to-use Map.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

// Set stores v under k, appending k to the key order the first time it's seen.
func (m *Map) Set(k string, v Value) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k, if any.
func (m *Map) Get(k string) (Value, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string {
	return m.keys
}

// Len reports the number of keys in m.
func (m *Map) Len() int {
	return len(m.keys)
}

// Closure is a dnjs arrow function: a parameter pattern, a quoted body, and
// the scope it closed over at definition time.
type Closure struct {
	Param ast.Node
	Body  ast.Node
	Scope Scope
}

// Builtin is a function implemented in Go rather than dnjs, callable the
// same way a Closure is.
type Builtin func(in *Interpreter, args []Value) (Value, error)

// TrustedHtml wraps a string that an HTML serializer should emit verbatim
// rather than escape. Produced by m.trust(s); consumed by the external
// HTML serializer.
type TrustedHtml struct {
	String string
}

// Undefined is the value an object/member lookup on an absent key yields.
// It is distinct from null: null is a value someone wrote down, undefined
// is what you get for asking about something that isn't there. The zero
// value is the only instance; compare and store it by value, not pointer.
type Undefined struct{}

// MBuiltin is the callable bound to "m" in the prelude. It's a distinct
// type from Builtin, rather than a bare Builtin value, so member access
// can resolve m.trust without every function value in the language
// needing a property namespace.
type MBuiltin struct {
	Call  Builtin
	Trust Builtin
}

// formatNumber renders a float the way a template interpolation or a JSON
// dump would: no trailing ".0" for whole numbers, shortest round-tripping
// representation otherwise.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
