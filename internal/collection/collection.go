// Package collection provides a bounded, ordered, persistent list used
// for the favorites store: newest first, fixed capacity, oldest items
// evicted on overflow.
package collection

import (
	"encoding/json"
	"errors"

	apperrors "playground-client/internal/errors"
	"playground-client/internal/logger"
	"playground-client/internal/storage"
)

// Bounded is a capacity-limited ordered collection persisted through a
// KV backend as a JSON array.
type Bounded[T any] struct {
	kv       storage.KV
	capacity int
}

// NewBounded creates a bounded collection over kv with the given capacity.
func NewBounded[T any](kv storage.KV, capacity int) *Bounded[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[T]{kv: kv, capacity: capacity}
}

// Capacity returns the configured maximum size.
func (b *Bounded[T]) Capacity() int {
	return b.capacity
}

// Insert prepends item to list and truncates the tail so the result
// never exceeds the capacity. The returned list is newest first.
func (b *Bounded[T]) Insert(list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	out = append(out, list...)

	if len(out) > b.capacity {
		out = out[:b.capacity]
	}

	return out
}

// Load reads the persisted list for key. Missing or corrupt state
// degrades to an empty list; corruption is logged, never fatal.
func (b *Bounded[T]) Load(key string) []T {
	data, err := b.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Log.WithError(err).WithField("key", key).Warn("Failed to load collection, starting empty")
		}
		return []T{}
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Corrupt collection state, starting empty")
		return []T{}
	}

	if len(list) > b.capacity {
		list = list[:b.capacity]
	}

	return list
}

// Save persists the full list under key, overwriting prior content.
func (b *Bounded[T]) Save(key string, list []T) error {
	data, err := json.Marshal(list)
	if err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "encoding collection "+key, err)
	}

	if err := b.kv.Put(key, data); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "persisting collection "+key, err)
	}

	return nil
}
