package interp

import (
	"fmt"

	"github.com/leontrolski/dnjs/token"
)

// Interpret loads and fully evaluates the module at path, along with every
// module it transitively imports, and returns the resulting Module. This is
// the full-fidelity entry point for callers that want exports, the default
// export, and the bare-expression value all at once.
func Interpret(path string) (*Module, error) {
	in := NewInterpreter()
	return in.LoadFile(path)
}

// GetDefaultExport evaluates the module at path and returns its default
// export, falling back to its bare-expression value when it has no
// default export. It fails when the module has neither.
func GetDefaultExport(path string) (Value, error) {
	m, err := Interpret(path)
	if err != nil {
		return nil, err
	}
	if !m.HasDefaultExport && !m.HasValue {
		return nil, fmt.Errorf("%s has no default export", path)
	}
	if m.HasDefaultExport {
		return m.DefaultExport, nil
	}
	return m.Value, nil
}

// GetNamedExport evaluates the module at path and returns the export bound
// to name. It fails when name is not among the module's exports.
func GetNamedExport(path, name string) (Value, error) {
	m, err := Interpret(path)
	if err != nil {
		return nil, err
	}
	v, ok := m.Exports.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s not in %s exports", name, path)
	}
	return v, nil
}

// IsCallable reports whether v can be passed to (*Interpreter).Call.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Closure, Builtin, *MBuiltin:
		return true
	default:
		return false
	}
}

// ClosureParamNames returns the parameter names fn was declared with, for
// use in a usage message, when fn is a Closure with a many-shaped (plain
// argument list) parameter pattern. It returns ok=false for single-pattern
// closures and for Builtin/MBuiltin values, which have no declared names.
func ClosureParamNames(fn Value) (names []string, ok bool) {
	c, isClosure := fn.(*Closure)
	if !isClosure || c.Param.Token.Type != token.DMany {
		return nil, false
	}
	return collectNames(c.Param), true
}
