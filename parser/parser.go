// Package parser turns a dnjs token stream into a forest of statement-level
// AST nodes using a Pratt (top-down operator precedence) engine: every token
// type carries at most one null (prefix) rule and one left (infix) rule,
// keyed by binding power, and the tree shape falls out of which rules fire.
package parser

import (
	"strings"

	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/lexer"
	"github.com/leontrolski/dnjs/token"
)

// Binding powers, lowest to highest. Two constructs sharing a binding power
// associate left to right unless a rule's right-hand recursive call passes
// a lower rbp to allow right-associative chaining (see ledTernary).
const (
	bpLowest      = 0
	bpColon       = 2
	bpUnaryPrefix = 3
	bpAssign      = 9
	bpArrow       = 10
	bpTernary     = 11
	bpEquality    = 11
	bpMember      = 20
)

type nudFn func(p *Parser, tok token.Token) (ast.Node, error)
type ledFn func(p *Parser, left ast.Node, tok token.Token) (ast.Node, error)

type leftEntry struct {
	fn  ledFn
	lbp int
	rbp int
}

var nullRules = map[token.Type]nudFn{}
var leftRules = map[token.Type]leftEntry{}

func registerNull(fn nudFn, types ...token.Type) {
	for _, t := range types {
		nullRules[t] = fn
	}
}

func registerLeft(lbp, rbp int, fn ledFn, types ...token.Type) {
	for _, t := range types {
		leftRules[t] = leftEntry{fn: fn, lbp: lbp, rbp: rbp}
	}
}

func init() {
	registerNull(nudAtom, token.Name, token.String, token.Number, token.Literal)
	registerNull(nudTemplate, token.Template)
	registerNull(nudParen, token.LParen)
	registerNull(nudArray, token.LBrack)
	registerNull(nudObject, token.LBrace)
	registerNull(nudEllipsis, token.Ellipsis)
	registerNull(nudImport, token.Import)
	registerNull(nudConst, token.Const)
	registerNull(nudExport, token.Export)
	registerNull(nudDefault, token.Default)

	registerLeft(bpMember, bpMember, ledDot, token.Dot)
	registerLeft(bpMember, bpMember, ledCall, token.LParen)
	registerLeft(bpEquality, bpEquality, ledEquality, token.TripleEqual)
	registerLeft(bpTernary, bpTernary, ledTernary, token.Question)
	registerLeft(bpArrow, bpArrow, ledArrow, token.Arrow)
	registerLeft(bpAssign, bpAssign, ledAssign, token.Assign)
	registerLeft(bpAssign, bpAssign, ledFrom, token.From)
	registerLeft(bpColon, bpColon, ledColon, token.Colon)
}

// Parser holds the token stream being consumed. Every method advances it.
type Parser struct {
	ts *lexer.TokenStream
}

// New wraps ts for parsing.
func New(ts *lexer.TokenStream) *Parser {
	return &Parser{ts: ts}
}

// ParseModule parses every statement in ts, in order, enforcing that each
// one starts on its own source line.
func ParseModule(ts *lexer.TokenStream) ([]ast.Node, error) {
	p := New(ts)
	var statements []ast.Node
	for p.ts.Current.Type != token.EOF {
		stmt, err := p.parse(bpLowest)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		if err := p.checkStatementBoundary(); err != nil {
			return nil, err
		}
	}
	return statements, nil
}

// checkStatementBoundary fails if the next statement's first token sits on
// the same source line as the statement just parsed. TokenStream tracks the
// line on which the last consumed token starts, which (lines never decrease
// as the stream advances) is the highest starting line among the tokens of
// the statement that just finished.
func (p *Parser) checkStatementBoundary() error {
	if p.ts.Current.Type == token.EOF {
		return nil
	}
	if p.ts.Current.Line <= p.ts.PreviousLine() {
		return diag.New(p.ts.Current, "expected statement to start on a new line")
	}
	return nil
}

// parse is the Pratt engine's core loop: dispatch a null rule to build the
// initial node, then keep extending it with left rules whose binding power
// beats rbp.
func (p *Parser) parse(rbp int) (ast.Node, error) {
	cur := p.ts.Current
	nud, ok := nullRules[cur.Type]
	if !ok {
		if cur.Type == token.EOF {
			return ast.Node{}, diag.New(cur, "unexpected end of input")
		}
		return ast.Node{}, diag.New(cur, "unexpected token %s, expected an expression", cur.String())
	}
	node, err := nud(p, cur)
	if err != nil {
		return ast.Node{}, err
	}
	for {
		cur = p.ts.Current
		left, ok := leftRules[cur.Type]
		if !ok || rbp >= left.lbp {
			break
		}
		node, err = left.fn(p, node, cur)
		if err != nil {
			return ast.Node{}, err
		}
	}
	return node, nil
}

func (p *Parser) expect(typ token.Type) (token.Token, error) {
	cur := p.ts.Current
	if cur.Type != typ {
		return token.Token{}, diag.New(cur, "expected %s, got %s", typ, cur.String())
	}
	p.ts.Advance()
	return cur, nil
}

// parseElement parses one element of a comma-separated list (array/object
// literal members, call arguments, parenthesized parameter lists),
// including a leading spread.
func (p *Parser) parseElement() (ast.Node, error) {
	if p.ts.Current.Type == token.Ellipsis {
		tok := p.ts.Current
		p.ts.Advance()
		inner, err := p.parse(bpUnaryPrefix)
		if err != nil {
			return ast.Node{}, err
		}
		return build(tok, []ast.Node{inner})
	}
	return p.parse(bpLowest)
}

// parseList parses a comma-separated, optionally trailing-comma-terminated
// list of elements up to (but not consuming) closer.
func (p *Parser) parseList(closer token.Type) ([]ast.Node, error) {
	var children []ast.Node
	if p.ts.Current.Type == closer {
		return children, nil
	}
	for {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		children = append(children, el)
		if p.ts.Current.Type != token.Comma {
			break
		}
		p.ts.Advance()
		if p.ts.Current.Type == closer {
			break
		}
	}
	return children, nil
}

// build constructs an interior node and validates it against the
// child-shape schema before handing it back: the parser is the single
// source of truth for shape, and every construct goes through here.
func build(tok token.Token, children []ast.Node) (ast.Node, error) {
	n := ast.NewWithChildren(tok, children)
	if err := ast.Validate(n); err != nil {
		return ast.Node{}, diag.New(tok, "%v", err)
	}
	return n, nil
}

// --- null (prefix) rules ---

func nudAtom(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	return ast.New(tok), nil
}

// nudTemplate consumes a chunk/value/chunk/value/.../chunk run. A chunk's
// raw text ending in "${" means another interpolated value follows; one
// ending in a bare closing backtick finishes the template.
func nudTemplate(p *Parser, tok token.Token) (ast.Node, error) {
	chunk := tok
	p.ts.Advance()
	children := []ast.Node{ast.New(chunk)}
	for strings.HasSuffix(chunk.Value, "${") {
		val, err := p.parse(bpLowest)
		if err != nil {
			return ast.Node{}, err
		}
		children = append(children, val)
		if p.ts.Current.Type != token.Template {
			return ast.Node{}, diag.New(p.ts.Current, "expected template continuation, got %s", p.ts.Current.String())
		}
		chunk = p.ts.Current
		p.ts.Advance()
		children = append(children, ast.New(chunk))
	}
	return build(tok, children)
}

// nudParen handles both plain grouping, "(expr)", which is transparent, and
// a parenthesized parameter/argument-style list, "(a, b)", which becomes a
// many node.
func nudParen(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	if p.ts.Current.Type == token.RParen {
		p.ts.Advance()
		return build(token.Token{Type: token.Many, Source: tok.Source, Position: tok.Position}, nil)
	}
	first, err := p.parseElement()
	if err != nil {
		return ast.Node{}, err
	}
	if p.ts.Current.Type != token.Comma {
		if _, err := p.expect(token.RParen); err != nil {
			return ast.Node{}, err
		}
		return first, nil
	}
	children := []ast.Node{first}
	for p.ts.Current.Type == token.Comma {
		p.ts.Advance()
		if p.ts.Current.Type == token.RParen {
			break
		}
		el, err := p.parseElement()
		if err != nil {
			return ast.Node{}, err
		}
		children = append(children, el)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.Node{}, err
	}
	return build(token.Token{Type: token.Many, Source: tok.Source, Position: tok.Position}, children)
}

func nudArray(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	children, err := p.parseList(token.RBrack)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.RBrack); err != nil {
		return ast.Node{}, err
	}
	return build(tok, children)
}

func nudObject(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	children, err := p.parseList(token.RBrace)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return ast.Node{}, err
	}
	return build(tok, children)
}

func nudEllipsis(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	inner, err := p.parse(bpUnaryPrefix)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{inner})
}

func nudImport(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	inner, err := p.parse(bpUnaryPrefix)
	if err != nil {
		return ast.Node{}, err
	}
	if inner.Token.Type != token.From {
		return ast.Node{}, diag.New(p.ts.Current, "expected 'from' in import statement")
	}
	return build(tok, []ast.Node{inner})
}

func nudConst(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	inner, err := p.parse(bpUnaryPrefix)
	if err != nil {
		return ast.Node{}, err
	}
	if inner.Token.Type != token.Assign {
		return ast.Node{}, diag.New(p.ts.Current, "expected '=' in const statement")
	}
	return build(tok, []ast.Node{inner})
}

func nudExport(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	inner, err := p.parse(bpUnaryPrefix)
	if err != nil {
		return ast.Node{}, err
	}
	if inner.Token.Type != token.Const && inner.Token.Type != token.Default {
		return ast.Node{}, diag.New(p.ts.Current, "expected 'const' or 'default' after export")
	}
	return build(tok, []ast.Node{inner})
}

func nudDefault(p *Parser, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	inner, err := p.parse(bpUnaryPrefix)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{inner})
}

// --- left (infix) rules ---

func ledDot(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	propTok, err := p.expect(token.Name)
	if err != nil {
		return ast.Node{}, err
	}
	propTok.Type = token.DName
	return build(tok, []ast.Node{left, ast.New(propTok)})
}

func ledCall(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	args, err := p.parseList(token.RParen)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.Node{}, err
	}
	many, err := build(token.Token{Type: token.Many, Source: tok.Source, Position: tok.Position}, args)
	if err != nil {
		return ast.Node{}, err
	}
	return build(token.Token{Type: token.Apply, Source: tok.Source, Position: tok.Position}, []ast.Node{left, many})
}

func ledEquality(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	right, err := p.parse(bpEquality)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{left, right})
}

// ledTernary parses "cond ? a : b". The true branch is parsed tight enough
// to stop before the colon (which would otherwise be mistaken for an object
// key separator); the false branch is parsed loosely enough to let a
// following "? :" chain as the expected right-associative else-if.
func ledTernary(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	trueBranch, err := p.parse(bpColon)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.Node{}, err
	}
	falseBranch, err := p.parse(bpLowest)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{left, trueBranch.Quoted(), falseBranch.Quoted()})
}

func ledArrow(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	pattern, err := retagPattern(left)
	if err != nil {
		return ast.Node{}, err
	}
	body, err := p.parse(bpLowest)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{pattern, body.Quoted()})
}

func ledAssign(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	pattern, err := retagPattern(left)
	if err != nil {
		return ast.Node{}, err
	}
	value, err := p.parse(bpAssign)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{pattern, value})
}

func ledFrom(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	pattern, err := retagPattern(left)
	if err != nil {
		return ast.Node{}, err
	}
	path, err := p.expect(token.String)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{pattern, ast.New(path)})
}

func ledColon(p *Parser, left ast.Node, tok token.Token) (ast.Node, error) {
	p.ts.Advance()
	key := left
	if key.Token.Type == token.Name {
		key.Token.Type = token.DName
	}
	value, err := p.parse(bpColon)
	if err != nil {
		return ast.Node{}, err
	}
	return build(tok, []ast.Node{key, value})
}
