package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/interp"
)

func TestRawifyScalars(t *testing.T) {
	require.Equal(t, "null", rawify(nil))
	require.Equal(t, "true", rawify(true))
	require.Equal(t, "hello", rawify("hello"))
	require.Equal(t, "1.5", rawify(1.5))
}

func TestRawifyStructuredFallsBackToJSON(t *testing.T) {
	require.Equal(t, "[1,2]", rawify([]interp.Value{1.0, 2.0}))
}

func TestCheckSinglePostProcessRejectsTwoFlags(t *testing.T) {
	err := checkSinglePostProcess(&options{html: true, css: true})
	require.Error(t, err)
}

func TestCheckSinglePostProcessAllowsOne(t *testing.T) {
	err := checkSinglePostProcess(&options{html: true})
	require.NoError(t, err)
}

func TestApplyPositionalArgsRejectsArgsForNonFunction(t *testing.T) {
	_, err := applyPositionalArgs(interp.NewInterpreter(), "not callable", []string{"a.json"}, "mod.dn.js")
	require.Error(t, err)
}

func TestApplyPositionalArgsPassesThroughNonCallableWithNoArgs(t *testing.T) {
	v, err := applyPositionalArgs(interp.NewInterpreter(), "value", nil, "mod.dn.js")
	require.NoError(t, err)
	require.Equal(t, "value", v)
}
