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

// Package ttlsweep is a memocache.EvictionStrategy that nominates the
// soonest-to-expire key, rather than the least recently used one. No
// third-party priority-queue library in the retrieved pack fits this
// shape better than a small sorted slice does at the scale this
// strategy targets (per-process key counts, not millions), so it stays
// on the standard library.
package ttlsweep

import (
	"sort"
	"sync"
	"time"

	"github.com/nscaledev/memocache"
)

type record struct {
	key          memocache.Key
	expiresAfter time.Time
}

// Strategy nominates the key with the earliest ExpiresAfter once more
// than capacity keys are tracked.
type Strategy struct {
	mu       sync.Mutex
	capacity int
	records  map[memocache.Key]time.Time
}

// New returns a Strategy that nominates a victim once more than capacity
// distinct keys have been written.
func New(capacity int) *Strategy {
	return &Strategy{capacity: capacity, records: make(map[memocache.Key]time.Time)}
}

func (s *Strategy) MarkRead(memocache.Key) {}

func (s *Strategy) MarkWritten(meta memocache.WrittenMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[meta.Key] = meta.ExpiresAfter
}

func (s *Strategy) MarkReleased(key memocache.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
}

func (s *Strategy) NextToRelease() (memocache.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) <= s.capacity {
		return 0, false
	}

	soonest := make([]record, 0, len(s.records))
	for k, exp := range s.records {
		soonest = append(soonest, record{key: k, expiresAfter: exp})
	}

	sort.Slice(soonest, func(i, j int) bool {
		return soonest[i].expiresAfter.Before(soonest[j].expiresAfter)
	})

	return soonest[0].key, true
}
