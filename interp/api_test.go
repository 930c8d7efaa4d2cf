package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/interp"
)

func TestGetDefaultExportFallsBackToBareValue(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "const x = 1\n42\n")
	v, err := interp.GetDefaultExport(path)
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestGetDefaultExportPrefersDefaultExport(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "export default 1\n2\n")
	v, err := interp.GetDefaultExport(path)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestGetDefaultExportFailsWithNeither(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "const x = 1\n")
	_, err := interp.GetDefaultExport(path)
	require.Error(t, err)
}

func TestGetNamedExport(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "export const one = 1\n")
	v, err := interp.GetNamedExport(path, "one")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestGetNamedExportMissing(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "a.dn.js", "export const one = 1\n")
	_, err := interp.GetNamedExport(path, "two")
	require.Error(t, err)
}
