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

package memocache

import "time"

// EntryBuilder stamps an Entry's timestamps from configured durations
// (§4.1 C3). Implementations must uphold created <= update_after <=
// expires_after.
type EntryBuilder[T any] interface {
	Build(key Key, value T, now time.Time) Entry[T]
}

// DurationEntryBuilder is the default EntryBuilder: created is now, and
// the two freshness boundaries are fixed offsets from it.
type DurationEntryBuilder[T any] struct {
	UpdateAfter time.Duration
	ExpireAfter time.Duration
}

// NewDurationEntryBuilder returns an EntryBuilder that stamps entries
// updateAfter/expireAfter from their creation time. Config validation
// guarantees expireAfter >= updateAfter before this is ever constructed
// from a Config.
func NewDurationEntryBuilder[T any](updateAfter, expireAfter time.Duration) EntryBuilder[T] {
	return DurationEntryBuilder[T]{UpdateAfter: updateAfter, ExpireAfter: expireAfter}
}

func (b DurationEntryBuilder[T]) Build(_ Key, value T, now time.Time) Entry[T] {
	return Entry[T]{
		Value:        value,
		Created:      now,
		UpdateAfter:  now.Add(b.UpdateAfter),
		ExpiresAfter: now.Add(b.ExpireAfter),
	}
}
