// Package lexer wraps scanner.Scanner with a lookahead-1 token stream: the
// shape the parser actually consumes.
package lexer

import (
	"os"

	"github.com/leontrolski/dnjs/scanner"
	"github.com/leontrolski/dnjs/token"
)

// TokenStream exposes a single-token lookahead over a source buffer.
// Newlines are filtered out of Current/Advance's default view (they matter
// only for the parser's statement-separator check), but TokenStream still
// tracks the line of the most recently consumed token so that check can be
// performed without re-scanning.
type TokenStream struct {
	sc      scanner.Scanner
	Current token.Token
	prevLine int
}

// NewTokenStream reads src and prepares a stream over it, reporting
// positions against sourceID.
func NewTokenStream(sourceID token.SourceID, src string) *TokenStream {
	ts := &TokenStream{}
	ts.sc.Init(sourceID, src)
	ts.Advance()
	return ts
}

// NewFileTokenStream reads the file at path and prepares a stream over its
// contents. The path itself becomes the SourceID, so diagnostics quote the
// file directly rather than going through the in-memory registry.
func NewFileTokenStream(path string) (*TokenStream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTokenStream(token.SourceID(path), string(data)), nil
}

// NewInMemoryTokenStream registers src under a synthetic handle and
// prepares a stream over it. Use this for sources with no backing file.
func NewInMemoryTokenStream(src string) *TokenStream {
	id := token.Register(src)
	return NewTokenStream(id, src)
}

// Advance consumes the current token and returns the next one, skipping
// newlines. It records the line of the token it just consumed so
// PreviousLine reflects the statement that is ending.
func (ts *TokenStream) Advance() token.Token {
	if ts.Current.Type != "" {
		ts.prevLine = ts.Current.Line
	}
	for {
		tok := ts.sc.Scan()
		if tok.Type == token.Newline {
			continue
		}
		ts.Current = tok
		return ts.Current
	}
}

// PreviousLine returns the source line of the token most recently consumed
// by Advance. Used by the parser to enforce "statements on separate lines".
func (ts *TokenStream) PreviousLine() int {
	return ts.prevLine
}
