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

// Package lru is a memocache.EvictionStrategy backed by an LRU of keys,
// for bounding a cache's key count independent of storage backend.
package lru

import (
	"sync"

	"github.com/nscaledev/memocache"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Strategy is a memocache.EvictionStrategy that nominates the least
// recently read-or-written key once more than capacity distinct keys are
// known. It tracks only keys, never values, matching eviction's
// key-only visibility.
type Strategy struct {
	mu    sync.Mutex
	cache *lru.Cache[memocache.Key, struct{}]
	// evicted accumulates keys the underlying LRU already dropped via its
	// own capacity eviction, so NextToRelease can surface them for the
	// caller to actually release from storage.
	evicted []memocache.Key
}

// New returns a Strategy that tracks up to capacity keys before its
// internal LRU starts evicting the least recently touched one.
func New(capacity int) (*Strategy, error) {
	s := &Strategy{}

	cache, err := lru.NewWithEvict[memocache.Key, struct{}](capacity, func(key memocache.Key, _ struct{}) {
		s.mu.Lock()
		s.evicted = append(s.evicted, key)
		s.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	s.cache = cache

	return s, nil
}

func (s *Strategy) MarkRead(key memocache.Key) {
	s.cache.Get(key)
}

func (s *Strategy) MarkWritten(meta memocache.WrittenMeta) {
	s.cache.Add(meta.Key, struct{}{})
}

func (s *Strategy) MarkReleased(key memocache.Key) {
	s.cache.Remove(key)
}

func (s *Strategy) NextToRelease() (memocache.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.evicted) == 0 {
		return 0, false
	}

	key := s.evicted[0]
	s.evicted = s.evicted[1:]

	return key, true
}
