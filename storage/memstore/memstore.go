/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package memstore is a standalone, exported in-memory
// memocache.Storage, for callers who want an explicit dependency and a
// capacity hint rather than the package's unexported zero-config
// default.
package memstore

import (
	"context"
	"sync"

	"github.com/nscaledev/memocache"
)

// Store is an in-memory memocache.Storage[T] guarded by a single mutex.
// It never evicts on its own; pair it with an memocache.EvictionStrategy
// (e.g. memocache/eviction/lru) if unbounded growth is a concern.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[memocache.Key]memocache.Entry[T]
}

// New returns an empty Store, optionally pre-sizing its backing map.
func New[T any](sizeHint int) *Store[T] {
	return &Store[T]{entries: make(map[memocache.Key]memocache.Entry[T], sizeHint)}
}

func (s *Store[T]) Get(_ context.Context, key memocache.Key) (memocache.Entry[T], bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]

	return entry, ok, nil
}

func (s *Store[T]) Offer(_ context.Context, key memocache.Key, entry memocache.Entry[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry

	return nil
}

func (s *Store[T]) Release(_ context.Context, key memocache.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

// Len reports the number of entries currently held, mostly useful in
// tests asserting eviction behavior.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
