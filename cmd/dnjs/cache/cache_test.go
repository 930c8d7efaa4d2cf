package cache_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leontrolski/dnjs/cmd/dnjs/cache"
)

func TestStoreThenLookupRoundTrips(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dnjs-cache.db")
	c, err := cache.Open(dbPath)
	require.NoError(t, err)

	mtime := time.Unix(1700000000, 0)
	require.NoError(t, c.Store("/a.dn.js", mtime, `{"x":1}`))

	got, ok := c.Lookup("/a.dn.js", mtime)
	require.True(t, ok)
	require.Equal(t, `{"x":1}`, got)
}

func TestLookupMissesOnMTimeChange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dnjs-cache.db")
	c, err := cache.Open(dbPath)
	require.NoError(t, err)

	mtime := time.Unix(1700000000, 0)
	require.NoError(t, c.Store("/a.dn.js", mtime, `{"x":1}`))

	_, ok := c.Lookup("/a.dn.js", mtime.Add(time.Second))
	require.False(t, ok)
}

func TestLookupMissesOnUnknownPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dnjs-cache.db")
	c, err := cache.Open(dbPath)
	require.NoError(t, err)

	_, ok := c.Lookup("/missing.dn.js", time.Now())
	require.False(t, ok)
}

func TestStoreReplacesExistingEntry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dnjs-cache.db")
	c, err := cache.Open(dbPath)
	require.NoError(t, err)

	mtime := time.Unix(1700000000, 0)
	require.NoError(t, c.Store("/a.dn.js", mtime, `1`))
	require.NoError(t, c.Store("/a.dn.js", mtime, `2`))

	got, ok := c.Lookup("/a.dn.js", mtime)
	require.True(t, ok)
	require.Equal(t, `2`, got)
}
