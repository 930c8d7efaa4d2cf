// Package cssrender serializes a dnjs object-of-objects value into a CSS
// stylesheet: each top-level key is a selector, each nested key/value pair
// a declaration.
//
// Grounded on original_source/dnjs/css.py's to_css.
package cssrender

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leontrolski/dnjs/interp"
)

// ToCSS renders value, which must be a *interp.Map whose values are
// themselves *interp.Map of declaration name to scalar, as a stylesheet.
// When prettify is false, each rule is emitted on a single line, matching
// dnjs's CLI --compact flag.
func ToCSS(value interp.Value, prettify bool) (string, error) {
	rules, ok := value.(*interp.Map)
	if !ok {
		return "", fmt.Errorf("--css value must be an object, got %T", value)
	}
	var lines []string
	for _, selector := range rules.Keys() {
		declVal, _ := rules.Get(selector)
		decls, ok := declVal.(*interp.Map)
		if !ok {
			return "", fmt.Errorf("rule %q must be an object of declarations, got %T", selector, declVal)
		}
		line, err := renderRule(selector, decls, prettify)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	sep := "\n"
	if !prettify {
		sep = " "
	}
	return strings.Join(lines, sep), nil
}

func renderRule(selector string, decls *interp.Map, prettify bool) (string, error) {
	var parts []string
	for _, prop := range decls.Keys() {
		v, _ := decls.Get(prop)
		s, err := declScalar(prop, v)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if !prettify {
		return fmt.Sprintf("%s { %s }", selector, strings.Join(parts, " ")), nil
	}
	indented := make([]string, len(parts))
	for i, p := range parts {
		indented[i] = "    " + p
	}
	return fmt.Sprintf("%s {\n%s\n}", selector, strings.Join(indented, "\n")), nil
}

func declScalar(prop string, v interp.Value) (string, error) {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%s: %s;", prop, x), nil
	case float64:
		return fmt.Sprintf("%s: %s;", prop, strconv.FormatFloat(x, 'f', -1, 64)), nil
	default:
		return "", fmt.Errorf("declaration %q must be a string or number, got %T", prop, v)
	}
}
