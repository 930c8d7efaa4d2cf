package ast

import "github.com/leontrolski/dnjs/token"

// position describes the set of token types allowed at one child slot of a
// construct. A nil allow set with any=true means "any value expression";
// repeat marks the last slot as "this position, zero or more times".
type position struct {
	allow  map[token.Type]bool
	any    bool
	repeat bool
}

func anyValue() position { return position{any: true} }

func only(types ...token.Type) position {
	m := make(map[token.Type]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return position{allow: m}
}

func (p position) repeated() position {
	p.repeat = true
	return p
}

func (p position) matches(t token.Type) bool {
	if p.any {
		return true
	}
	return p.allow[t]
}

// schema maps a construct's token type to the positional rules its
// children must satisfy. Constructs produced only by retagging (d_name,
// d_brack, d_brace, d_many) are validated by the destructure logic itself
// (see parser.retagPattern) rather than here, since they only exist after
// a separate pass over an already-validated tree.
var schema = map[token.Type][]position{
	token.LBrack: {anyValueOrSpread().repeated()},
	token.LBrace: {objectMember().repeated()},
	token.Template: {
		// A template alternates chunk/value/chunk/.../chunk; validated
		// structurally in nudTemplate itself (it must start and end on a
		// Template chunk), so here it's treated as "anything, repeated".
		position{any: true}.repeated(),
	},
	token.Ellipsis:    {anyValue()},
	token.Import:      {only(token.From)},
	token.Const:       {only(token.Assign)},
	token.Export:      {only(token.Const, token.Default)},
	token.Default:     {anyValue()},
	token.Dot:         {anyValue(), only(token.DName)},
	token.Apply:       {anyValue(), only(token.Many)},
	token.TripleEqual: {anyValue(), anyValue()},
	token.Question:    {anyValue(), anyValue(), anyValue()},
	token.Arrow:       {pattern(), anyValue()},
	token.Assign:      {pattern(), anyValue()},
	token.From:        {pattern(), only(token.String)},
	token.Colon:       {only(token.DName, token.String), anyValue()},
	token.Many:        {anyValueOrSpread().repeated()},
}

func anyValueOrSpread() position {
	return position{any: true}
}

func objectMember() position {
	return only(token.Colon, token.Ellipsis, token.Name)
}

func pattern() position {
	return only(token.DName, token.DBrack, token.DBrace, token.DMany)
}

// Validate checks that n's children satisfy the child-shape schema for
// n.Token.Type. Constructs with no schema entry (atoms, and the
// destructure-retagged types) are accepted unconditionally.
func Validate(n Node) error {
	positions, ok := schema[n.Token.Type]
	if !ok {
		return nil
	}
	for i, c := range n.Children {
		var p position
		switch {
		case i < len(positions):
			p = positions[i]
		case len(positions) > 0 && positions[len(positions)-1].repeat:
			p = positions[len(positions)-1]
		default:
			return &ShapeError{Node: n, Index: i}
		}
		if !p.matches(c.Token.Type) {
			return &ShapeError{Node: n, Index: i}
		}
	}
	return nil
}

// ShapeError reports that a node's child at Index violates the
// construct's child-shape schema.
type ShapeError struct {
	Node  Node
	Index int
}

func (e *ShapeError) Error() string {
	return "invalid child shape for " + string(e.Node.Token.Type)
}
