package interp

import "strings"

// decodeString turns a scanned string token's raw text, quotes included,
// into its represented value.
func decodeString(raw string) string {
	s := strings.TrimPrefix(raw, `"`)
	s = strings.TrimSuffix(s, `"`)
	return unescapeCString(s)
}

// decodeTemplateChunk strips a template token's leading marker (the
// opening backtick, or the "}" that resumes a chunk after an
// interpolation) and its trailing marker (the closing backtick, or the
// "${" that starts the next interpolation), then unescapes what's left.
func decodeTemplateChunk(raw string) string {
	s := raw
	if len(s) > 0 && (s[0] == '`' || s[0] == '}') {
		s = s[1:]
	}
	switch {
	case strings.HasSuffix(s, "${"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "`"):
		s = s[:len(s)-1]
	}
	return unescapeCString(s)
}

// unescapeCString decodes the standard C-string backslash escapes dnjs
// string and template literals use.
func unescapeCString(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] == '\\' && i+1 < len(r) {
			i++
			switch r[i] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(r[i])
			}
			continue
		}
		b.WriteRune(r[i])
	}
	return b.String()
}

// stringifyForTemplate renders a value the way a template interpolation
// does: numbers lose any trailing ".0", null, undefined, booleans and
// strings print plainly, and any other value (a list, an object, a
// function) renders as the empty string.
func stringifyForTemplate(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case Undefined:
		return "undefined"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(x)
	case string:
		return x
	default:
		return ""
	}
}

// dedent strips the longest common leading whitespace run shared by every
// non-blank line, then trims the result, mirroring Python's
// textwrap.dedent(s).strip().
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	minIndent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
