// Package scanner turns a source buffer into dnjs tokens, one at a time.
//
// It never returns an error: malformed input surfaces as an Unexpected
// token, which the parser turns into a diagnostic. This mirrors how the
// rest of this codebase treats scanning as a total function over its input.
package scanner

import (
	"strings"
	"unicode"

	"github.com/leontrolski/dnjs/token"
)

var punctuationValues = []string{
	"=", "=>", "(", ")", "{", "}", "[", "]", ",", ":", ".", "...", "?", "===",
}

// punctuationTrie maps a prefix string to whatever characters may follow it
// among the punctuation values. An empty continuation set means the prefix
// cannot be extended further.
var punctuationTrie = buildTrie(punctuationValues)

func buildTrie(values []string) map[string]map[byte]bool {
	trie := map[string]map[byte]bool{"": {}}
	for _, v := range values {
		for i := 0; i < len(v); i++ {
			prefix := v[:i]
			c := v[i]
			if trie[prefix] == nil {
				trie[prefix] = map[byte]bool{}
			}
			trie[prefix][c] = true
			if trie[prefix+string(c)] == nil {
				trie[prefix+string(c)] = map[byte]bool{}
			}
		}
	}
	return trie
}

func isPunctuationValue(s string) bool {
	for _, v := range punctuationValues {
		if v == s {
			return true
		}
	}
	return false
}

var keywordValues = map[string]bool{
	"import": true, "from": true, "export": true, "default": true, "const": true,
}

var literalValues = map[string]bool{"null": true, "true": true, "false": true}

func isNameBegin(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameAll(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Scanner holds the scanner's internal state while processing a given text.
// It must be initialized via Init before use.
type Scanner struct {
	source        []rune
	sourceID      token.SourceID
	pos           int
	line          int
	column        int
	templateDepth int
}

// Init prepares s to scan text, reporting positions against sourceID.
func (s *Scanner) Init(sourceID token.SourceID, text string) {
	// Always end on exactly one trailing newline, so statement-boundary and
	// EOF handling never have to special-case a missing final newline.
	text = strings.TrimRight(text, " \t\r\n") + "\n"
	s.source = []rune(text)
	s.sourceID = sourceID
	s.pos = 0
	s.line = 1
	s.column = 1
	s.templateDepth = 0
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.source)
}

func (s *Scanner) char() rune {
	if s.eof() {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) peek(offset int) rune {
	i := s.pos + offset
	if i < 0 || i >= len(s.source) {
		return 0
	}
	return s.source[i]
}

func (s *Scanner) inc() {
	s.pos++
	s.column++
}

func (s *Scanner) incLine() {
	s.pos++
	s.line++
	s.column = 1
}

func (s *Scanner) atLineComment() bool {
	return s.char() == '/' && s.peek(1) == '/'
}

func (s *Scanner) pos0() token.Position {
	return token.Position{Offset: s.pos, Line: s.line, Column: s.column}
}

func (s *Scanner) make(typ token.Type, value string, pos token.Position) token.Token {
	return token.Token{Type: typ, Value: value, Source: s.sourceID, Position: pos}
}

// Scan returns the next token, advancing the scanner past it. Call it
// repeatedly until it returns a token of type token.EOF.
func (s *Scanner) Scan() token.Token {
	for !s.eof() && (isHorizontalSpace(s.char()) || s.atLineComment()) {
		if s.atLineComment() {
			for !s.eof() && s.char() != '\n' {
				s.inc()
			}
		} else {
			s.inc()
		}
	}

	startPos := s.pos0()

	if s.eof() {
		return s.make(token.EOF, "", startPos)
	}

	c := s.char()

	if c == '\n' {
		s.incLine()
		return s.make(token.Newline, "\n", startPos)
	}

	if c == '"' {
		return s.scanString(startPos)
	}

	if c == '`' || (c == '}' && s.templateDepth > 0) {
		return s.scanTemplate(startPos)
	}

	if prefix, ok := s.matchPunctuation(); ok {
		typ := token.Unexpected
		if isPunctuationValue(prefix) {
			typ = punctuationType(prefix)
		}
		return s.make(typ, prefix, startPos)
	}

	if c == '-' || isDigit(c) {
		return s.scanNumber(startPos)
	}

	if isNameBegin(c) {
		return s.scanName(startPos)
	}

	s.inc()
	return s.make(token.Unexpected, string(c), startPos)
}

func isHorizontalSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\f', '\r':
		return true
	default:
		return false
	}
}

func punctuationType(s string) token.Type {
	switch s {
	case "=":
		return token.Assign
	case "=>":
		return token.Arrow
	case "(":
		return token.LParen
	case ")":
		return token.RParen
	case "{":
		return token.LBrace
	case "}":
		return token.RBrace
	case "[":
		return token.LBrack
	case "]":
		return token.RBrack
	case ",":
		return token.Comma
	case ":":
		return token.Colon
	case ".":
		return token.Dot
	case "...":
		return token.Ellipsis
	case "?":
		return token.Question
	case "===":
		return token.TripleEqual
	default:
		return token.Unexpected
	}
}

// matchPunctuation consumes the longest run of characters that extends a
// valid punctuation prefix, trie-style. It reports the matched text and
// whether the trie recognized the very first character.
func (s *Scanner) matchPunctuation() (string, bool) {
	c := s.char()
	prefix := string(c)
	if _, ok := punctuationTrie[""][byte(c)]; !ok || c > unicode.MaxASCII {
		return "", false
	}
	s.inc()
	for {
		next, ok := punctuationTrie[prefix]
		if !ok {
			break
		}
		c := s.char()
		if c > unicode.MaxASCII || !next[byte(c)] {
			break
		}
		prefix += string(c)
		s.inc()
	}
	return prefix, true
}

func (s *Scanner) scanString(startPos token.Position) token.Token {
	var b strings.Builder
	b.WriteRune('"')
	s.inc()
	for {
		if s.eof() {
			return s.make(token.Unexpected, b.String(), startPos)
		}
		c := s.char()
		if c == '\n' {
			b.WriteRune(c)
			s.inc()
			return s.make(token.Unexpected, b.String(), startPos)
		}
		if c == '\\' {
			b.WriteRune(c)
			s.inc()
			if !s.eof() {
				b.WriteRune(s.char())
				s.inc()
			}
			continue
		}
		b.WriteRune(c)
		s.inc()
		if c == '"' {
			return s.make(token.String, b.String(), startPos)
		}
	}
}

// scanTemplate scans either the opening backtick run up to the first `
// or ${, or (when re-entered with templateDepth > 0) a `}`-initiated
// continuation chunk up to the next ${ or the closing `.
func (s *Scanner) scanTemplate(startPos token.Position) token.Token {
	var b strings.Builder
	opening := s.char()
	if opening == '`' {
		s.templateDepth++
	}
	b.WriteRune(opening)
	s.inc()
	for {
		if s.eof() {
			return s.make(token.Unexpected, b.String(), startPos)
		}
		c := s.char()
		switch {
		case c == '\\':
			b.WriteRune(c)
			s.inc()
			if !s.eof() {
				b.WriteRune(s.char())
				s.inc()
			}
		case c == '$' && s.peek(1) == '{':
			b.WriteRune(c)
			s.inc()
			b.WriteRune(s.char())
			s.inc()
			return s.make(token.Template, b.String(), startPos)
		case c == '`':
			s.templateDepth--
			b.WriteRune(c)
			s.inc()
			return s.make(token.Template, b.String(), startPos)
		case c == '\n':
			b.WriteRune(c)
			s.incLine()
		default:
			b.WriteRune(c)
			s.inc()
		}
	}
}

func (s *Scanner) scanNumber(startPos token.Position) token.Token {
	var b strings.Builder
	b.WriteRune(s.char())
	s.inc()
	seenDecimalPoint := false
	for !s.eof() {
		c := s.char()
		if c != '.' && !isDigit(c) {
			break
		}
		if c == '.' {
			if seenDecimalPoint {
				b.WriteRune(c)
				s.inc()
				return s.make(token.Unexpected, b.String(), startPos)
			}
			seenDecimalPoint = true
		}
		b.WriteRune(c)
		s.inc()
	}
	return s.make(token.Number, b.String(), startPos)
}

func (s *Scanner) scanName(startPos token.Position) token.Token {
	var b strings.Builder
	b.WriteRune(s.char())
	s.inc()
	for !s.eof() && isNameAll(s.char()) {
		b.WriteRune(s.char())
		s.inc()
	}
	word := b.String()
	switch {
	case keywordValues[word]:
		return s.make(token.Type(word), word, startPos)
	case literalValues[word]:
		return s.make(token.Literal, word, startPos)
	default:
		return s.make(token.Name, word, startPos)
	}
}
