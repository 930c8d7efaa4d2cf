package cssrender_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/cssrender"
	"github.com/leontrolski/dnjs/interp"
)

func TestToCSSPrettyRendersOneRulePerSelector(t *testing.T) {
	decls := interp.NewMap()
	decls.Set("color", "red")
	decls.Set("margin", 0.0)
	rules := interp.NewMap()
	rules.Set(".a", decls)

	out, err := cssrender.ToCSS(rules, true)
	require.NoError(t, err)
	require.Equal(t, ".a {\n    color: red;\n    margin: 0;\n}", out)
}

func TestToCSSCompactIsOneLinePerRule(t *testing.T) {
	decls := interp.NewMap()
	decls.Set("color", "red")
	rules := interp.NewMap()
	rules.Set(".a", decls)

	out, err := cssrender.ToCSS(rules, false)
	require.NoError(t, err)
	require.Equal(t, ".a { color: red; }", out)
}

func TestToCSSRejectsNonObjectValue(t *testing.T) {
	_, err := cssrender.ToCSS("not an object", true)
	require.Error(t, err)
}

func TestToCSSRejectsNonObjectDeclarations(t *testing.T) {
	rules := interp.NewMap()
	rules.Set(".a", "nope")
	_, err := cssrender.ToCSS(rules, true)
	require.Error(t, err)
}
