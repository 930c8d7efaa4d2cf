// Package cache memoizes a module's default-export evaluation across CLI
// invocations, keyed by its absolute path and modification time, so a
// file that hasn't changed since it was last evaluated doesn't have to be
// re-parsed and re-interpreted.
//
// Grounded on the gorm.Open(sqlite.Open(...))/AutoMigrate wiring pattern
// generator/gen_main.go in the example pack produces for its own
// generated main functions.
package cache

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Entry is one row of the module cache: the evaluated default export of
// the module at Path, as of the last time its mtime was MTimeUnix,
// serialized to JSON since gorm has no notion of a dnjs Value.
type Entry struct {
	Path          string `gorm:"primaryKey"`
	MTimeUnix     int64
	DefaultExport string
}

// Cache wraps a *gorm.DB scoped to the dnjs module cache table.
type Cache struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at dbPath and
// ensures the Entry table exists.
func Open(dbPath string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Lookup returns the cached default-export JSON for path, provided the
// file's current mtime still matches what was cached.
func (c *Cache) Lookup(path string, mtime time.Time) (json string, ok bool) {
	var e Entry
	err := c.db.First(&e, "path = ?", path).Error
	if err != nil {
		return "", false
	}
	if e.MTimeUnix != mtime.Unix() {
		return "", false
	}
	return e.DefaultExport, true
}

// Store records defaultExportJSON as the cached evaluation of the module
// at path, replacing any previous entry.
func (c *Cache) Store(path string, mtime time.Time, defaultExportJSON string) error {
	e := Entry{Path: path, MTimeUnix: mtime.Unix(), DefaultExport: defaultExportJSON}
	return c.db.Save(&e).Error
}
