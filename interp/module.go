package interp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/leontrolski/dnjs/ast"
	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/lexer"
	"github.com/leontrolski/dnjs/parser"
	"github.com/leontrolski/dnjs/token"
)

// Module is one loaded and fully executed dnjs file: its scope after every
// top-level statement has run, what it exports by name, its default
// export if it declared one, and the value of its last bare top-level
// expression, if it had one (an open question in the source language this
// codebase resolves by keeping the last such expression, discarding any
// that came before it).
type Module struct {
	Path             string
	Scope            Scope
	Exports          *Map
	DefaultExport    Value
	HasDefaultExport bool
	Value            Value
	HasValue         bool
}

// Interpreter loads and caches modules by resolved path, detecting import
// cycles via an in-flight stack.
type Interpreter struct {
	modules map[string]*Module
	loading map[string]bool
	stack   []string
}

// NewInterpreter returns an Interpreter with an empty module cache.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		modules: map[string]*Module{},
		loading: map[string]bool{},
	}
}

// LoadFile loads and executes the module at path, and every module it
// transitively imports, returning the cached result if this Interpreter
// has already loaded it.
func (in *Interpreter) LoadFile(path string) (*Module, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return in.loadModule(abs)
}

func (in *Interpreter) loadModule(absPath string) (*Module, error) {
	if m, ok := in.modules[absPath]; ok {
		return m, nil
	}
	if in.loading[absPath] {
		return nil, diag.New(token.Token{}, "import cycle detected: %s -> %s", strings.Join(in.stack, " -> "), absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	in.loading[absPath] = true
	in.stack = append(in.stack, absPath)
	defer func() {
		delete(in.loading, absPath)
		in.stack = in.stack[:len(in.stack)-1]
	}()

	ts := lexer.NewTokenStream(token.SourceID(absPath), string(data))
	statements, err := parser.ParseModule(ts)
	if err != nil {
		return nil, err
	}

	m := &Module{Path: absPath, Scope: preludeScope(), Exports: NewMap()}
	for _, stmt := range statements {
		if err := in.execStatement(m, stmt); err != nil {
			return nil, err
		}
	}

	in.modules[absPath] = m
	return m, nil
}

func (in *Interpreter) execStatement(m *Module, node ast.Node) error {
	switch node.Token.Type {
	case token.Import:
		return in.execImport(m, node)
	case token.Const:
		return in.execConstInto(m.Scope, m.Exports, node, false)
	case token.Export:
		return in.execExport(m, node)
	default:
		v, err := in.eval(m.Scope, node)
		if err != nil {
			return err
		}
		m.Value = v
		m.HasValue = true
		return nil
	}
}

// execConstInto evaluates a const statement's value and binds it into
// scope, additionally recording every bound name into exports when export
// is true.
func (in *Interpreter) execConstInto(scope Scope, exports *Map, constNode ast.Node, export bool) error {
	assignNode := constNode.Children[0]
	pattern := assignNode.Children[0]
	value, err := in.eval(scope, assignNode.Children[1])
	if err != nil {
		return err
	}
	if err := bindPattern(scope, pattern, value); err != nil {
		return err
	}
	if export {
		for _, name := range collectNames(pattern) {
			exports.Set(name, scope[name])
		}
	}
	return nil
}

func (in *Interpreter) execExport(m *Module, node ast.Node) error {
	child := node.Children[0]
	switch child.Token.Type {
	case token.Const:
		return in.execConstInto(m.Scope, m.Exports, child, true)
	case token.Default:
		v, err := in.eval(m.Scope, child.Children[0])
		if err != nil {
			return err
		}
		m.DefaultExport = v
		m.HasDefaultExport = true
		return nil
	default:
		return diag.New(child.Token, "invalid export statement")
	}
}

func (in *Interpreter) execImport(m *Module, node ast.Node) error {
	fromNode := node.Children[0]
	pattern := fromNode.Children[0]
	pathNode := fromNode.Children[1]
	rel := decodeString(pathNode.Token.Value)

	if !strings.HasPrefix(rel, "./") && !strings.HasPrefix(rel, "../") {
		// Non-relative imports address a host ecosystem this interpreter
		// isn't responsible for; ignore them rather than erroring.
		return nil
	}
	if !strings.HasSuffix(rel, ".dn.js") {
		return diag.New(pathNode.Token, "import path must end in .dn.js, got %q", rel)
	}
	importPath := filepath.Clean(filepath.Join(filepath.Dir(m.Path), rel))
	imported, err := in.loadModule(importPath)
	if err != nil {
		return err
	}

	switch pattern.Token.Type {
	case token.DName:
		if !imported.HasDefaultExport {
			return diag.New(pattern.Token, "module %s has no default export", rel)
		}
		m.Scope[pattern.Token.Value] = imported.DefaultExport
		return nil
	case token.DBrace:
		for _, child := range pattern.Children {
			switch child.Token.Type {
			case token.DName:
				val, ok := imported.Exports.Get(child.Token.Value)
				if !ok {
					return diag.New(child.Token, "module %s has no export named %s", rel, child.Token.Value)
				}
				m.Scope[child.Token.Value] = val
			case token.Colon:
				key := child.Children[0].Token.Value
				val, ok := imported.Exports.Get(key)
				if !ok {
					return diag.New(child.Token, "module %s has no export named %s", rel, key)
				}
				if err := bindPattern(m.Scope, child.Children[1], val); err != nil {
					return err
				}
			default:
				return diag.New(child.Token, "invalid import target")
			}
		}
		return nil
	default:
		return diag.New(pattern.Token, "invalid import target")
	}
}
