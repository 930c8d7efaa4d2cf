package interp

import (
	"strconv"

	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/token"
)

// eval walks a single expression node to a Value, looking up names in
// scope and dispatching purely on node.Token.Type, the same uniform-node
// convention the parser builds its tree with.
func (in *Interpreter) eval(scope Scope, node ast.Node) (Value, error) {
	switch node.Token.Type {
	case token.Name:
		v, ok := scope[node.Token.Value]
		if !ok {
			return nil, diag.New(node.Token, "variable %s is not in scope", node.Token.Value)
		}
		return v, nil

	case token.Number:
		f, err := strconv.ParseFloat(node.Token.Value, 64)
		if err != nil {
			return nil, diag.New(node.Token, "invalid number literal %s", node.Token.Value)
		}
		return f, nil

	case token.String:
		return decodeString(node.Token.Value), nil

	case token.Literal:
		switch node.Token.Value {
		case "null":
			return nil, nil
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, diag.New(node.Token, "unknown literal %s", node.Token.Value)

	case token.Template:
		return in.evalTemplate(scope, node)

	case token.LBrack:
		return in.evalArray(scope, node)

	case token.LBrace:
		return in.evalObject(scope, node)

	case token.Arrow:
		return &Closure{Param: node.Children[0], Body: node.Children[1], Scope: scope}, nil

	case token.Apply:
		return in.evalApply(scope, node)

	case token.Dot:
		return in.evalMember(scope, node)

	case token.TripleEqual:
		l, err := in.eval(scope, node.Children[0])
		if err != nil {
			return nil, err
		}
		r, err := in.eval(scope, node.Children[1])
		if err != nil {
			return nil, err
		}
		return valuesEqual(l, r), nil

	case token.Question:
		cond, err := in.eval(scope, node.Children[0])
		if err != nil {
			return nil, err
		}
		b, ok := cond.(bool)
		if !ok {
			return nil, diag.New(node.Token, "ternary condition must be a boolean")
		}
		if b {
			return in.eval(scope, node.Children[1])
		}
		return in.eval(scope, node.Children[2])

	default:
		return nil, diag.New(node.Token, "cannot evaluate %s", node.Token.String())
	}
}

func (in *Interpreter) evalTemplate(scope Scope, node ast.Node) (Value, error) {
	var b []byte
	for _, c := range node.Children {
		if c.Token.Type == token.Template {
			b = append(b, decodeTemplateChunk(c.Token.Value)...)
			continue
		}
		v, err := in.eval(scope, c)
		if err != nil {
			return nil, err
		}
		b = append(b, stringifyForTemplate(v)...)
	}
	return string(b), nil
}

func (in *Interpreter) evalArray(scope Scope, node ast.Node) (Value, error) {
	var out []Value
	for _, c := range node.Children {
		if c.Token.Type == token.Ellipsis {
			v, err := in.eval(scope, c.Children[0])
			if err != nil {
				return nil, err
			}
			list, ok := v.([]Value)
			if !ok {
				return nil, diag.New(c.Token, "cannot spread a non-list value")
			}
			out = append(out, list...)
			continue
		}
		v, err := in.eval(scope, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if out == nil {
		out = []Value{}
	}
	return out, nil
}

func (in *Interpreter) evalObject(scope Scope, node ast.Node) (Value, error) {
	m := NewMap()
	for _, c := range node.Children {
		switch c.Token.Type {
		case token.Colon:
			key := keyText(c.Children[0])
			v, err := in.eval(scope, c.Children[1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		case token.Ellipsis:
			v, err := in.eval(scope, c.Children[0])
			if err != nil {
				return nil, err
			}
			src, ok := v.(*Map)
			if !ok {
				return nil, diag.New(c.Token, "cannot spread a non-object value")
			}
			for _, k := range src.Keys() {
				val, _ := src.Get(k)
				m.Set(k, val)
			}
		case token.Name:
			v, ok := scope[c.Token.Value]
			if !ok {
				return nil, diag.New(c.Token, "variable %s is not in scope", c.Token.Value)
			}
			m.Set(c.Token.Value, v)
		default:
			return nil, diag.New(c.Token, "invalid object member %s", c.Token.String())
		}
	}
	return m, nil
}

func keyText(n ast.Node) string {
	if n.Token.Type == token.String {
		return decodeString(n.Token.Value)
	}
	return n.Token.Value
}

// Call invokes fn, a Closure, Builtin, or MBuiltin value, with args. It's
// the entry point an embedder uses to apply a dnjs function value to
// arguments it built itself, rather than to arguments that came from a
// parsed call expression.
func (in *Interpreter) Call(fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case *Closure:
		return in.callClosure(f, args)
	case Builtin:
		return f(in, args)
	case *MBuiltin:
		return f.Call(in, args)
	default:
		return nil, diag.New(token.Token{}, "value is not callable")
	}
}

func (in *Interpreter) evalApply(scope Scope, node ast.Node) (Value, error) {
	callee, err := in.eval(scope, node.Children[0])
	if err != nil {
		return nil, err
	}
	var args []Value
	for _, a := range node.Children[1].Children {
		if a.Token.Type == token.Ellipsis {
			v, err := in.eval(scope, a.Children[0])
			if err != nil {
				return nil, err
			}
			list, ok := v.([]Value)
			if !ok {
				return nil, diag.New(a.Token, "cannot spread a non-list value as call arguments")
			}
			args = append(args, list...)
			continue
		}
		v, err := in.eval(scope, a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	switch fn := callee.(type) {
	case *Closure:
		return in.callClosure(fn, args)
	case Builtin:
		return fn(in, args)
	case *MBuiltin:
		return fn.Call(in, args)
	default:
		return nil, diag.New(node.Token, "value is not callable")
	}
}

// callClosure copies fn's captured scope, binds args against fn's
// parameter pattern (positionally if it's a many-shaped parameter list,
// against the single argument otherwise), and evaluates the body in that
// copy.
func (in *Interpreter) callClosure(fn *Closure, args []Value) (Value, error) {
	callScope := fn.Scope.Copy()
	if fn.Param.Token.Type == token.DMany {
		if err := bindPattern(callScope, fn.Param, args); err != nil {
			return nil, err
		}
	} else {
		var arg Value
		if len(args) > 0 {
			arg = args[0]
		}
		if err := bindPattern(callScope, fn.Param, arg); err != nil {
			return nil, err
		}
	}
	return in.eval(callScope, fn.Body)
}

func (in *Interpreter) evalMember(scope Scope, node ast.Node) (Value, error) {
	obj, err := in.eval(scope, node.Children[0])
	if err != nil {
		return nil, err
	}
	prop := node.Children[1].Token.Value
	return memberAccess(obj, prop, node.Token)
}

func memberAccess(obj Value, prop string, tok token.Token) (Value, error) {
	switch v := obj.(type) {
	case []Value:
		switch prop {
		case "length":
			return float64(len(v)), nil
		case "map":
			return Builtin(func(in *Interpreter, args []Value) (Value, error) { return listMap(in, v, args) }), nil
		case "filter":
			return Builtin(func(in *Interpreter, args []Value) (Value, error) { return listFilter(in, v, args) }), nil
		case "reduce":
			return Builtin(func(in *Interpreter, args []Value) (Value, error) { return listReduce(in, v, args) }), nil
		case "includes":
			return Builtin(func(in *Interpreter, args []Value) (Value, error) { return listIncludes(in, v, args) }), nil
		default:
			return nil, diag.New(tok, "list has no property %s", prop)
		}
	case string:
		if prop == "length" {
			return float64(len([]rune(v))), nil
		}
		return nil, diag.New(tok, "string has no property %s", prop)
	case *Map:
		val, ok := v.Get(prop)
		if !ok {
			return Undefined{}, nil
		}
		return val, nil
	case *MBuiltin:
		if prop == "trust" {
			return v.Trust, nil
		}
		return nil, diag.New(tok, "m has no property %s", prop)
	case Undefined:
		return nil, diag.New(tok, "cannot access property %s of undefined", prop)
	default:
		return nil, diag.New(tok, "cannot access property %s on this value", prop)
	}
}
