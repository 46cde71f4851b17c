// Package kv defines the synchronous key-value contract everything in the
// application persists through, plus interchangeable backends: an in-memory
// map, a single JSON file, Redis, and SQLite.
//
// Values are UTF-8 text (JSON for structured keys). A Get after a completed
// Set of the same key through the same Store observes that Set; no guarantee
// is made across separate Store instances over shared media.
package kv

import (
	"fmt"
	"strings"
)

// Store is a string-keyed, string-valued store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set writes value under key, overwriting any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Close releases backend resources.
	Close() error
}

// Open selects a backend by name. dsn is backend-specific: a file path for
// "file" and "sqlite", a redis URL for "redis", ignored for "memory".
func Open(backend, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return OpenFile(dsn)
	case "redis":
		return OpenRedis(dsn)
	case "sqlite":
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
