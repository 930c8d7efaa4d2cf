package interp_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/interp"
)

func TestMapMarshalJSONPreservesInsertionOrder(t *testing.T) {
	m := interp.NewMap()
	m.Set("b", 1.0)
	m.Set("a", 2.0)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":2}`, string(out))
}

func TestFromJSONDecodesObjectPreservingKeyOrder(t *testing.T) {
	v, err := interp.FromJSON([]byte(`{"z": 1, "a": [1, 2, "x"], "n": null}`))
	require.NoError(t, err)
	m, ok := v.(*interp.Map)
	require.True(t, ok)
	require.Equal(t, []string{"z", "a", "n"}, m.Keys())
	a, _ := m.Get("a")
	require.Equal(t, []interp.Value{1.0, 2.0, "x"}, a)
	n, _ := m.Get("n")
	require.Nil(t, n)
}

func TestFromJSONRoundTripsThroughMarshal(t *testing.T) {
	v, err := interp.FromJSON([]byte(`{"one": 1, "two": "x"}`))
	require.NoError(t, err)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"one":1,"two":"x"}`, string(out))
}
