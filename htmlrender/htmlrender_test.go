package htmlrender_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/htmlrender"
	"github.com/leontrolski/dnjs/interp"
)

func vnode(tag string, attrs *interp.Map, children ...interp.Value) *interp.Map {
	m := interp.NewMap()
	m.Set("tag", tag)
	if attrs == nil {
		attrs = interp.NewMap()
	}
	m.Set("attrs", attrs)
	m.Set("children", []interp.Value(children))
	return m
}

func TestToHTMLEscapesText(t *testing.T) {
	out, err := htmlrender.ToHTML("<b>", false)
	require.NoError(t, err)
	require.Equal(t, "&lt;b&gt;", out)
}

func TestToHTMLRendersVNodeWithAttrsAndChildren(t *testing.T) {
	attrs := interp.NewMap()
	attrs.Set("id", "main")
	n := vnode("div", attrs, "hello")
	out, err := htmlrender.ToHTML(n, false)
	require.NoError(t, err)
	require.Equal(t, `<div id="main">hello</div>`, out)
}

func TestToHTMLSelfClosesVoidElements(t *testing.T) {
	n := vnode("br", nil)
	out, err := htmlrender.ToHTML(n, false)
	require.NoError(t, err)
	require.Equal(t, "<br>", out)
}

func TestToHTMLRendersClassNameAsClass(t *testing.T) {
	attrs := interp.NewMap()
	attrs.Set("className", "a b")
	n := vnode("span", attrs)
	out, err := htmlrender.ToHTML(n, false)
	require.NoError(t, err)
	require.Equal(t, `<span class="a b"></span>`, out)
}

func TestToHTMLTrustedHtmlEmittedVerbatim(t *testing.T) {
	n := vnode("div", nil, interp.TrustedHtml{String: "<i>raw</i>"})
	out, err := htmlrender.ToHTML(n, false)
	require.NoError(t, err)
	require.Equal(t, "<div><i>raw</i></div>", out)
}

func TestToHTMLPrettifyIndentsNestedElements(t *testing.T) {
	inner := vnode("span", nil, "x")
	outer := vnode("div", nil, inner)
	out, err := htmlrender.ToHTML(outer, true)
	require.NoError(t, err)
	require.Equal(t, "<div>\n    <span>\n        x\n    </span>\n</div>", out)
}

func TestToHTMLRejectsUnrenderableValue(t *testing.T) {
	_, err := htmlrender.ToHTML(map[string]int{"a": 1}, false)
	require.Error(t, err)
}
