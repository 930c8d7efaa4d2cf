// Package diag implements the single diagnostic variant every scan, parse,
// import, and runtime failure in this codebase funnels through: a message
// plus the offending token. Rendering quotes the original source line and
// places a caret under the token's column.
package diag

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/xerrors"

	"github.com/leontrolski/dnjs/token"
)

// Error is the one error variant the core ever returns. There is
// deliberately no machine-readable error code: callers distinguish failure
// kinds, if they need to, by matching on Message.
type Error struct {
	Message string
	Token   token.Token
}

// New builds a diagnostic for tok, formatting Message the way fmt.Sprintf
// would.
func New(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Token: tok}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", sourceLabel(e.Token.Source), e.Token.Position.String(), e.Message)
}

// Unwrap returns nil: an *Error is always the innermost link of an error
// chain. xerrors.As still finds one wrapped further up the call stack with
// xerrors.Errorf("...: %w", err), through the wrappers' own Unwrap.
func (e *Error) Unwrap() error { return nil }

func sourceLabel(id token.SourceID) string {
	if id == "" || token.IsSynthetic(id) {
		return "'line'"
	}
	return string(id)
}

// sourceText returns the full text of the token's source, trying the
// in-memory registry first (synthetic handles) and falling back to a file
// read (real paths). It never errors; a miss just means Format degrades to
// printing the header and message alone.
func sourceText(id token.SourceID) (string, bool) {
	if src, ok := token.Lookup(id); ok {
		return src, true
	}
	data, err := os.ReadFile(string(id))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Format renders e the way every parse/interpret failure in this codebase
// is shown to a human:
//
//	<ParserError path-or-'line':lineno>
//	message
//	the offending source line, trimmed
//	spaces then a caret under the token's column
func Format(err error) string {
	var e *Error
	if !xerrors.As(err, &e) {
		return err.Error()
	}

	label := sourceLabel(e.Token.Source)
	header := fmt.Sprintf("<ParserError %s:%d>", label, e.Token.Line)

	src, ok := sourceText(e.Token.Source)
	if !ok {
		return strings.Join([]string{header, e.Message}, "\n")
	}

	lines := strings.Split(src, "\n")
	lineIdx := e.Token.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return strings.Join([]string{header, e.Message}, "\n")
	}
	line := strings.TrimRight(lines[lineIdx], " \t")
	caretCol := e.Token.Column - 1
	if caretCol < 0 {
		caretCol = 0
	}
	caret := strings.Repeat(" ", caretCol) + "^"

	return strings.Join([]string{header, e.Message, line, caret}, "\n")
}
