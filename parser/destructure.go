package parser

import (
	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/token"
)

// retagPattern walks an already-parsed value expression and retags it as a
// binding pattern, in place: name becomes d_name, an array literal becomes
// d_brack (each element itself retagged), an object literal becomes d_brace
// (each value side of a pair retagged, each shorthand name retagged), and a
// bare parameter list becomes d_many. It's applied wherever a parsed subtree
// turns out to sit in binding position: an arrow function's parameter list,
// a const target, an import target.
func retagPattern(n ast.Node) (ast.Node, error) {
	switch n.Token.Type {
	case token.Name, token.DName:
		n.Token.Type = token.DName
		return n, nil

	case token.LBrack, token.DBrack:
		n.Token.Type = token.DBrack
		for i, c := range n.Children {
			if c.Token.Type == token.Ellipsis {
				inner, err := retagPattern(c.Children[0])
				if err != nil {
					return ast.Node{}, err
				}
				c.Children[0] = inner
				n.Children[i] = c
				continue
			}
			retagged, err := retagPattern(c)
			if err != nil {
				return ast.Node{}, err
			}
			n.Children[i] = retagged
		}
		return n, nil

	case token.LBrace, token.DBrace:
		n.Token.Type = token.DBrace
		for i, c := range n.Children {
			switch c.Token.Type {
			case token.Ellipsis:
				inner, err := retagPattern(c.Children[0])
				if err != nil {
					return ast.Node{}, err
				}
				c.Children[0] = inner
				n.Children[i] = c
			case token.Colon:
				valuePattern, err := retagPattern(c.Children[1])
				if err != nil {
					return ast.Node{}, err
				}
				c.Children[1] = valuePattern
				n.Children[i] = c
			case token.Name, token.DName:
				c.Token.Type = token.DName
				n.Children[i] = c
			default:
				return ast.Node{}, diag.New(c.Token, "invalid destructure target %s", c.Token.String())
			}
		}
		return n, nil

	case token.Many:
		n.Token.Type = token.DMany
		for i, c := range n.Children {
			if c.Token.Type == token.Ellipsis {
				inner, err := retagPattern(c.Children[0])
				if err != nil {
					return ast.Node{}, err
				}
				c.Children[0] = inner
				n.Children[i] = c
				continue
			}
			retagged, err := retagPattern(c)
			if err != nil {
				return ast.Node{}, err
			}
			n.Children[i] = retagged
		}
		return n, nil

	default:
		return ast.Node{}, diag.New(n.Token, "invalid destructure target %s", n.Token.String())
	}
}
