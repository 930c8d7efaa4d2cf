package interp

import (
	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/token"
)

// bindPattern introduces names into scope for a binding pattern (a
// retagged d_name/d_brack/d_brace/d_many node) matched against v, the way
// a const statement, an arrow call, or an import target all need to.
func bindPattern(scope Scope, pattern ast.Node, v Value) error {
	switch pattern.Token.Type {
	case token.DName:
		scope[pattern.Token.Value] = v
		return nil

	case token.DBrack:
		list, ok := v.([]Value)
		if !ok {
			return diag.New(pattern.Token, "cannot destructure a non-list value")
		}
		i := 0
		for _, child := range pattern.Children {
			if child.Token.Type == token.Ellipsis {
				rest := append([]Value{}, list[i:]...)
				if err := bindPattern(scope, child.Children[0], rest); err != nil {
					return err
				}
				i = len(list)
				continue
			}
			var elem Value
			if i < len(list) {
				elem = list[i]
			}
			if err := bindPattern(scope, child, elem); err != nil {
				return err
			}
			i++
		}
		return nil

	case token.DBrace:
		m, ok := v.(*Map)
		if !ok {
			return diag.New(pattern.Token, "cannot destructure a non-object value")
		}
		used := map[string]bool{}
		for _, child := range pattern.Children {
			switch child.Token.Type {
			case token.DName:
				key := child.Token.Value
				val, _ := m.Get(key)
				scope[key] = val
				used[key] = true
			case token.Colon:
				key := child.Children[0].Token.Value
				val, _ := m.Get(key)
				used[key] = true
				if err := bindPattern(scope, child.Children[1], val); err != nil {
					return err
				}
			case token.Ellipsis:
				rest := NewMap()
				for _, k := range m.Keys() {
					if !used[k] {
						rv, _ := m.Get(k)
						rest.Set(k, rv)
					}
				}
				if err := bindPattern(scope, child.Children[0], rest); err != nil {
					return err
				}
			}
		}
		return nil

	case token.DMany:
		list, ok := v.([]Value)
		if !ok {
			return diag.New(pattern.Token, "cannot bind arguments against a non-list value")
		}
		i := 0
		for _, child := range pattern.Children {
			if child.Token.Type == token.Ellipsis {
				rest := append([]Value{}, list[i:]...)
				if err := bindPattern(scope, child.Children[0], rest); err != nil {
					return err
				}
				i = len(list)
				continue
			}
			var elem Value
			if i < len(list) {
				elem = list[i]
			}
			if err := bindPattern(scope, child, elem); err != nil {
				return err
			}
			i++
		}
		return nil

	default:
		return diag.New(pattern.Token, "invalid binding target %s", pattern.Token.String())
	}
}

// collectNames returns every d_name leaf reachable from pattern, in the
// order they appear, the names a const statement binds regardless of
// whether it destructures.
func collectNames(pattern ast.Node) []string {
	switch pattern.Token.Type {
	case token.DName:
		return []string{pattern.Token.Value}
	case token.DBrack, token.DMany:
		var out []string
		for _, c := range pattern.Children {
			if c.Token.Type == token.Ellipsis {
				out = append(out, collectNames(c.Children[0])...)
				continue
			}
			out = append(out, collectNames(c)...)
		}
		return out
	case token.DBrace:
		var out []string
		for _, c := range pattern.Children {
			switch c.Token.Type {
			case token.DName:
				out = append(out, c.Token.Value)
			case token.Colon:
				out = append(out, collectNames(c.Children[1])...)
			case token.Ellipsis:
				out = append(out, collectNames(c.Children[0])...)
			}
		}
		return out
	default:
		return nil
	}
}
