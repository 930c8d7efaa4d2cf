package token

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// registry backs diagnostics for in-memory sources: a process-wide table
// from synthetic handle to source text. Entries live for the lifetime of
// the process; there is no eviction. This is an acceptable leak for a
// batch-style tool.
var (
	registryMu sync.RWMutex
	registry   = map[SourceID]string{}
	nextHandle uint64
)

// Register stores src under a freshly minted synthetic SourceID and returns
// it. Use this for sources that have no backing file (stdin, embedded
// snippets, test fixtures) so that diagnostics can still quote the
// offending line.
func Register(src string) SourceID {
	n := atomic.AddUint64(&nextHandle, 1)
	id := SourceID(fmt.Sprintf("<mem:%d>", n))
	registryMu.Lock()
	registry[id] = src
	registryMu.Unlock()
	return id
}

// IsSynthetic reports whether id was produced by Register rather than
// naming a filesystem path.
func IsSynthetic(id SourceID) bool {
	registryMu.RLock()
	_, ok := registry[id]
	registryMu.RUnlock()
	return ok
}

// Lookup returns the source text registered under id, if any.
func Lookup(id SourceID) (string, bool) {
	registryMu.RLock()
	src, ok := registry[id]
	registryMu.RUnlock()
	return src, ok
}
