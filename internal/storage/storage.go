// Package storage implements the local persistence layer for the
// playground client: a small key-value abstraction with in-memory,
// file and SQLite backends. The durable database lives under the
// configured data dir and uses modernc.org/sqlite (pure Go, CGo-free).
//
// Corrupt or unavailable storage is never fatal; callers degrade to
// defaults per the error taxonomy.
package storage

import "errors"

// ErrNotFound is returned by Get when the key has no persisted value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the interface every backend implements. Keys are namespaced by
// the caller (typically "<userID>/<name>").
type KV interface {
	// Get retrieves the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, overwriting prior content.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
