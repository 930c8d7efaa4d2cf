package interp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/interp"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestConstAndTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "const name = \"oli\"\nconst x = `hello ${name},\nyou are ${29}`\n")
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello oli,\nyou are 29", m.Scope["x"])
}

func TestArrowDestructureObjectLiteral(t *testing.T) {
	dir := t.TempDir()
	src := `const f = (v, i) => ({i, v})
const result = f("a", 0)
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	result, ok := m.Scope["result"].(*interp.Map)
	require.True(t, ok)
	v, ok := result.Get("v")
	require.True(t, ok)
	require.Equal(t, "a", v)
	i, ok := result.Get("i")
	require.True(t, ok)
	require.Equal(t, 0.0, i)
}

func TestTernaryNumericEqualityTolerance(t *testing.T) {
	dir := t.TempDir()
	src := "const x = 0.30000000000000004 === 0.3 ? \"close\" : \"far\"\n"
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "close", m.Scope["x"])
}

func TestImportDefaultAndNamed(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "lib.dn.js", "export const one = 1\nexport default 42\n")
	path := writeModule(t, dir, "main.dn.js", "import def from \"./lib.dn.js\"\nimport { one } from \"./lib.dn.js\"\nconst total = def\n")
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 42.0, m.Scope["def"])
	require.Equal(t, 1.0, m.Scope["one"])
	require.Equal(t, 42.0, m.Scope["total"])
}

func TestNonRelativeImportIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "import React from \"react\"\nexport default 1\n")
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1.0, m.DefaultExport)
}

func TestImportCycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.dn.js", "import b from \"./b.dn.js\"\nexport default 1\n")
	path := writeModule(t, dir, "b.dn.js", "import a from \"./a.dn.js\"\nexport default 2\n")
	in := interp.NewInterpreter()
	_, err := in.LoadFile(path)
	require.Error(t, err)
}

func TestClosureDoesNotMutateCapturedScope(t *testing.T) {
	dir := t.TempDir()
	src := `const makeAdder = (n) => ((m) => n)
const addFive = makeAdder(5)
const first = addFive(100)
const second = addFive(200)
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 5.0, m.Scope["first"])
	require.Equal(t, 5.0, m.Scope["second"])
}

func TestBareExpressionSetsModuleValue(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "const x = 1\n1\n2\n")
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.True(t, m.HasValue)
	require.Equal(t, 2.0, m.Value)
}

func TestMBuilderSelectorAndClassFolding(t *testing.T) {
	dir := t.TempDir()
	src := `const node = m("div#main.a.b", {class: ["c", " d "]}, "hello", null, [1, 2])
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	node, ok := m.Scope["node"].(*interp.Map)
	require.True(t, ok)
	tag, _ := node.Get("tag")
	require.Equal(t, "div", tag)
	attrs, _ := node.Get("attrs")
	attrMap := attrs.(*interp.Map)
	id, _ := attrMap.Get("id")
	require.Equal(t, "main", id)
	className, _ := attrMap.Get("className")
	require.Equal(t, "a b c d", className)
	children, _ := node.Get("children")
	childList := children.([]interp.Value)
	require.Equal(t, []interp.Value{"hello", "1", "2"}, childList)
}

func TestMBuilderClassAttributeMustBeAList(t *testing.T) {
	dir := t.TempDir()
	src := `const node = m("div", {class: "c"})
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	_, err := in.LoadFile(path)
	require.Error(t, err)
}

func TestMBuilderClassNameAlwaysSet(t *testing.T) {
	dir := t.TempDir()
	src := `const node = m("div")
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	node := m.Scope["node"].(*interp.Map)
	attrs, _ := node.Get("attrs")
	attrMap := attrs.(*interp.Map)
	className, ok := attrMap.Get("className")
	require.True(t, ok)
	require.Equal(t, "", className)
}

func TestDestructureWithRest(t *testing.T) {
	dir := t.TempDir()
	src := `const [first, ...rest] = [1, 2, 3]
`
	path := writeModule(t, dir, "a.dn.js", src)
	in := interp.NewInterpreter()
	m, err := in.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1.0, m.Scope["first"])
	require.Equal(t, []interp.Value{2.0, 3.0}, m.Scope["rest"])
}
