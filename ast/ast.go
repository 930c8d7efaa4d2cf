// Package ast defines the single, uniform node shape used for every dnjs
// syntax tree: what distinguishes a function call from an array literal is
// Token.Type plus the child-shape schema the parser enforces, not a
// discriminated node kind.
package ast

import (
	"strings"

	"github.com/leontrolski/dnjs/token"
)

// Node is the one record every piece of dnjs syntax is built from.
//
// IsQuoted marks a node whose evaluation is deferred: the body of an arrow
// function and both arms of a ternary are quoted at parse time and only
// evaluated by the construct that owns them (a call, a branch selection).
type Node struct {
	Token    token.Token
	Children []Node
	IsQuoted bool
}

// New builds a leaf node (no children) for an atom token.
func New(tok token.Token) Node {
	return Node{Token: tok}
}

// NewWithChildren builds an interior node.
func NewWithChildren(tok token.Token, children []Node) Node {
	return Node{Token: tok, Children: children}
}

// Quoted returns a copy of n marked as deferred.
func (n Node) Quoted() Node {
	n.IsQuoted = true
	return n
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String renders n as a compact S-expression, matching the uniform-node
// convention: a node with no children prints its token's value, anything
// else prints ["type" child child ...].
func (n Node) String() string {
	if n.IsLeaf() {
		return n.Token.Value
	}
	var b strings.Builder
	b.WriteString(`["`)
	b.WriteString(string(n.Token.Type))
	b.WriteString(`"`)
	for _, c := range n.Children {
		b.WriteString(" ")
		b.WriteString(c.String())
	}
	b.WriteString("]")
	return b.String()
}
