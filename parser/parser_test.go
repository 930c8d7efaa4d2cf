package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/lexer"
	"github.com/leontrolski/dnjs/parser"
	"github.com/leontrolski/dnjs/token"
)

func TestParseConstNumber(t *testing.T) {
	ts := lexer.NewInMemoryTokenStream("const x = 1\n")
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	constNode := stmts[0]
	require.Equal(t, token.Const, constNode.Token.Type)
	assignNode := constNode.Children[0]
	require.Equal(t, token.Assign, assignNode.Token.Type)
	require.Equal(t, token.DName, assignNode.Children[0].Token.Type)
	require.Equal(t, token.Number, assignNode.Children[1].Token.Type)
}

func TestParseArrowWithDestructure(t *testing.T) {
	src := "const f = (v, i) => ({i, v})\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	constNode := stmts[0]
	require.Equal(t, token.Const, constNode.Token.Type)
	assignNode := constNode.Children[0]
	require.Equal(t, token.Assign, assignNode.Token.Type)
	require.Equal(t, token.DName, assignNode.Children[0].Token.Type)

	arrowNode := assignNode.Children[1]
	require.Equal(t, token.Arrow, arrowNode.Token.Type)
	require.Equal(t, token.DMany, arrowNode.Children[0].Token.Type)
	require.Len(t, arrowNode.Children[0].Children, 2)
	require.Equal(t, token.DName, arrowNode.Children[0].Children[0].Token.Type)
	require.True(t, arrowNode.Children[1].IsQuoted)
}

func TestParseTernaryQuotesBothArms(t *testing.T) {
	src := "const x = a === b ? 1 : 2\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	value := stmts[0].Children[0].Children[1]
	require.Equal(t, token.Question, value.Token.Type)
	require.False(t, value.Children[0].IsQuoted)
	require.True(t, value.Children[1].IsQuoted)
	require.True(t, value.Children[2].IsQuoted)
}

func TestParseTemplateChunks(t *testing.T) {
	src := "const x = `hello ${\"oli\"},\nyou are ${29}`\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	tmpl := stmts[0].Children[0].Children[1]
	require.Equal(t, token.Template, tmpl.Token.Type)
	require.Len(t, tmpl.Children, 5)
	require.Equal(t, token.Template, tmpl.Children[0].Token.Type)
	require.Equal(t, token.String, tmpl.Children[1].Token.Type)
	require.Equal(t, token.Template, tmpl.Children[2].Token.Type)
	require.Equal(t, token.Number, tmpl.Children[3].Token.Type)
	require.Equal(t, token.Template, tmpl.Children[4].Token.Type)
}

func TestParseImportNamed(t *testing.T) {
	src := "import { A, B } from \"./p.dn.js\"\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	importNode := stmts[0]
	require.Equal(t, token.Import, importNode.Token.Type)
	fromNode := importNode.Children[0]
	require.Equal(t, token.From, fromNode.Token.Type)
	pattern := fromNode.Children[0]
	require.Equal(t, token.DBrace, pattern.Token.Type)
	require.Len(t, pattern.Children, 2)
	require.Equal(t, token.DName, pattern.Children[0].Token.Type)
	require.Equal(t, token.String, fromNode.Children[1].Token.Type)
}

func TestParseExportDefault(t *testing.T) {
	src := "export default 1\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	exportNode := stmts[0]
	require.Equal(t, token.Export, exportNode.Token.Type)
	require.Equal(t, token.Default, exportNode.Children[0].Token.Type)
}

func TestStatementBoundaryViolation(t *testing.T) {
	ts := lexer.NewInMemoryTokenStream("const x = 1 const y = 2\n")
	_, err := parser.ParseModule(ts)
	require.Error(t, err)
}

func TestObjectLiteralNumericKeyViolatesShape(t *testing.T) {
	ts := lexer.NewInMemoryTokenStream("const x = {1: 2}\n")
	_, err := parser.ParseModule(ts)
	require.Error(t, err)
}

func TestCallAndMemberAccess(t *testing.T) {
	src := "const x = a.b(1, 2)\n"
	ts := lexer.NewInMemoryTokenStream(src)
	stmts, err := parser.ParseModule(ts)
	require.NoError(t, err)
	value := stmts[0].Children[0].Children[1]
	require.Equal(t, token.Apply, value.Token.Type)
	member := value.Children[0]
	require.Equal(t, token.Dot, member.Token.Type)
	require.Equal(t, token.DName, member.Children[1].Token.Type)
	require.Equal(t, token.Many, value.Children[1].Token.Type)
	require.Len(t, value.Children[1].Children, 2)
}
