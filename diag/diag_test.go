package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/diag"
	"github.com/leontrolski/dnjs/token"
)

func TestFormatInMemorySource(t *testing.T) {
	src := "const foo = 1\nexport default bar\n"
	id := token.Register(src)
	tok := token.Token{
		Type:     token.Name,
		Value:    "bar",
		Source:   id,
		Position: token.Position{Line: 2, Column: 15},
	}
	err := diag.New(tok, "variable %s is not in scope", "bar")
	out := diag.Format(err)

	require.Contains(t, out, "<ParserError 'line':2>")
	require.Contains(t, out, "variable bar is not in scope")
	require.Contains(t, out, "export default bar")
	lines := splitLines(out)
	caretLine := lines[len(lines)-1]
	require.Equal(t, tok.Column-1, len(caretLine)-1)
	require.Equal(t, byte('^'), caretLine[len(caretLine)-1])
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func TestErrorMessageFallback(t *testing.T) {
	tok := token.Token{Type: token.Name, Value: "x", Position: token.Position{Line: 1, Column: 1}}
	err := diag.New(tok, "boom")
	require.Equal(t, "'line':1:1: boom", err.Error())
}
