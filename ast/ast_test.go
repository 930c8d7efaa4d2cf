package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/token"
)

func TestNodeStringLeaf(t *testing.T) {
	n := ast.New(token.Token{Type: token.Number, Value: "42"})
	require.Equal(t, "42", n.String())
}

func TestNodeStringInterior(t *testing.T) {
	a := ast.New(token.Token{Type: token.Number, Value: "1"})
	b := ast.New(token.Token{Type: token.Number, Value: "2"})
	n := ast.NewWithChildren(token.Token{Type: token.Many}, []ast.Node{a, b})
	require.Equal(t, `["many" 1 2]`, n.String())
}

func TestQuoted(t *testing.T) {
	n := ast.New(token.Token{Type: token.Number, Value: "1"})
	require.False(t, n.IsQuoted)
	q := n.Quoted()
	require.True(t, q.IsQuoted)
	require.False(t, n.IsQuoted, "Quoted must not mutate the receiver")
}

func TestValidateRejectsWrongChildShape(t *testing.T) {
	// Dot's second child must be d_name, not a bare number.
	left := ast.New(token.Token{Type: token.Name, Value: "a"})
	bad := ast.New(token.Token{Type: token.Number, Value: "1"})
	n := ast.NewWithChildren(token.Token{Type: token.Dot}, []ast.Node{left, bad})
	require.Error(t, ast.Validate(n))
}

func TestValidateAcceptsRepeatedArrayElements(t *testing.T) {
	a := ast.New(token.Token{Type: token.Number, Value: "1"})
	b := ast.New(token.Token{Type: token.Number, Value: "2"})
	n := ast.NewWithChildren(token.Token{Type: token.LBrack}, []ast.Node{a, b})
	require.NoError(t, ast.Validate(n))
}

func TestDump(t *testing.T) {
	n := ast.NewWithChildren(
		token.Token{Type: token.Arrow, Position: token.Position{Line: 1, Column: 1}},
		[]ast.Node{
			ast.New(token.Token{Type: token.DMany}),
			ast.New(token.Token{Type: token.Number, Value: "1"}).Quoted(),
		},
	)
	var buf bytes.Buffer
	require.NoError(t, ast.Dump(&buf, n))
	out := buf.String()
	require.Contains(t, out, "=>")
	require.Contains(t, out, "Quoted")
}
