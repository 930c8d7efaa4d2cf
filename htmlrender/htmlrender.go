// Package htmlrender serializes a dnjs value produced by the m() vnode
// builder into an HTML string. It is an external collaborator in the
// sense spec.md draws: it consumes interp.Value and never reaches back
// into the evaluator.
//
// Grounded on original_source/dnjs/html.py's to_html/make_value_js_friendly.
package htmlrender

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/leontrolski/dnjs/interp"
)

// selfClosing lists the HTML void elements that never carry children and
// are rendered without a closing tag.
var selfClosing = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// preformatted lists tags whose children are rendered inline, with no
// indentation or wrapping newlines, so whitespace inside them survives.
var preformatted = map[string]bool{"pre": true, "code": true, "textarea": true}

// IsRenderable reports whether v is a value to_html/ToHTML knows how to
// turn into markup: null, a scalar, a list, or a vnode shaped
// {tag, attrs, children}.
func IsRenderable(v interp.Value) bool {
	switch x := v.(type) {
	case nil, string, float64, bool, interp.TrustedHtml:
		return true
	case []interp.Value:
		return true
	case *interp.Map:
		return isVNode(x)
	default:
		return false
	}
}

func isVNode(m *interp.Map) bool {
	_, hasTag := m.Get("tag")
	_, hasAttrs := m.Get("attrs")
	_, hasChildren := m.Get("children")
	return hasTag && hasAttrs && hasChildren
}

// ToHTML renders value as an HTML string. When prettify is true, nested
// elements are indented one level per depth and separated by newlines;
// otherwise the whole tree is emitted on a single line with no
// indentation, matching dnjs's CLI --compact flag.
func ToHTML(value interp.Value, prettify bool) (string, error) {
	return toHTML(value, 0, prettify)
}

func toHTML(value interp.Value, indent int, prettify bool) (string, error) {
	if !IsRenderable(value) {
		return "", fmt.Errorf("value of type %T is not renderable as HTML", value)
	}
	pad := ""
	if prettify {
		pad = strings.Repeat("    ", indent)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case interp.TrustedHtml:
		return pad + v.String, nil
	case string:
		return pad + html.EscapeString(v), nil
	case float64:
		return pad + strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return pad + strconv.FormatBool(v), nil
	case []interp.Value:
		var parts []string
		for _, c := range v {
			s, err := toHTML(c, indent, prettify)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		sep := ""
		if prettify {
			sep = "\n"
		}
		return strings.Join(parts, sep), nil
	case *interp.Map:
		return vnodeToHTML(v, indent, prettify)
	default:
		return "", fmt.Errorf("value of type %T is not renderable as HTML", value)
	}
}

func vnodeToHTML(node *interp.Map, indent int, prettify bool) (string, error) {
	tagVal, _ := node.Get("tag")
	tag, _ := tagVal.(string)
	attrsVal, _ := node.Get("attrs")
	attrs, _ := attrsVal.(*interp.Map)
	childrenVal, _ := node.Get("children")
	children, _ := childrenVal.([]interp.Value)

	nl, pad := "", ""
	if prettify {
		nl = "\n"
		pad = strings.Repeat("    ", indent)
	}

	attrsStr, err := attrsToHTML(attrs)
	if err != nil {
		return "", err
	}

	selfClose := selfClosing[tag] && len(children) == 0
	var b strings.Builder
	b.WriteString(pad)
	b.WriteString("<")
	b.WriteString(html.EscapeString(tag))
	b.WriteString(attrsStr)
	b.WriteString(">")
	if selfClose {
		return b.String(), nil
	}

	if preformatted[tag] {
		for _, c := range children {
			s, err := toHTML(c, 0, false)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteString("</")
		b.WriteString(html.EscapeString(tag))
		b.WriteString(">")
		return b.String(), nil
	}

	b.WriteString(nl)
	var parts []string
	for _, c := range children {
		s, err := toHTML(c, indent+1, prettify)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	sep := ""
	if prettify {
		sep = "\n"
	}
	b.WriteString(strings.Join(parts, sep))
	b.WriteString(nl)
	b.WriteString(pad)
	b.WriteString("</")
	b.WriteString(html.EscapeString(tag))
	b.WriteString(">")
	return b.String(), nil
}

func attrsToHTML(attrs *interp.Map) (string, error) {
	if attrs == nil {
		return "", nil
	}
	var b strings.Builder
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		name := k
		if name == "className" {
			name = "class"
			s, ok := v.(string)
			if !ok || s == "" {
				continue
			}
		}
		if v == nil {
			continue
		}
		switch x := v.(type) {
		case bool:
			if x {
				b.WriteString(" ")
				b.WriteString(html.EscapeString(name))
			}
		case float64:
			b.WriteString(" ")
			b.WriteString(html.EscapeString(name))
			b.WriteString(`="`)
			b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
			b.WriteString(`"`)
		case string:
			b.WriteString(" ")
			b.WriteString(html.EscapeString(name))
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(x))
			b.WriteString(`"`)
		default:
			return "", fmt.Errorf("unable to convert attribute %q of type %T to HTML", k, v)
		}
	}
	return b.String(), nil
}
