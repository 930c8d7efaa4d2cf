package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/token"
)

func TestTokenString(t *testing.T) {
	tok := token.Token{Type: token.Name, Value: "foo"}
	require.Equal(t, `name("foo")`, tok.String())

	eof := token.Token{Type: token.EOF}
	require.Equal(t, "eof", eof.String())
}

func TestIsAtom(t *testing.T) {
	require.True(t, token.Token{Type: token.Name}.IsAtom())
	require.True(t, token.Token{Type: token.Template}.IsAtom())
	require.False(t, token.Token{Type: token.LParen}.IsAtom())
}

func TestRegistryRoundTrip(t *testing.T) {
	id := token.Register("const x = 1\n")
	require.True(t, token.IsSynthetic(id))

	src, ok := token.Lookup(id)
	require.True(t, ok)
	require.Equal(t, "const x = 1\n", src)

	require.False(t, token.IsSynthetic(token.SourceID("/tmp/does-not-exist.dn.js")))
}
