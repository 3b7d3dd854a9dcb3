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

// EvictionStrategy observes read/write/release events and nominates the
// next victim key (§4.5). It is advisory: the coordinator treats a
// nomination as a best-effort background release that must never delay
// the calling request, and whose failure is swallowed and logged.
type EvictionStrategy interface {
	MarkRead(key Key)
	MarkWritten(meta WrittenMeta)
	MarkReleased(key Key)
	NextToRelease() (Key, bool)
}

// neverEvict is the unexported default EvictionStrategy: it never
// nominates a victim. Suitable for small, bounded keyspaces or when the
// caller prefers to manage capacity with a storage backend that evicts
// internally (e.g. a Redis backend with its own maxmemory policy).
type neverEvict struct{}

// NewNeverEvict returns an EvictionStrategy that never nominates a
// victim for release.
func NewNeverEvict() EvictionStrategy {
	return neverEvict{}
}

func (neverEvict) MarkRead(Key)               {}
func (neverEvict) MarkWritten(WrittenMeta)     {}
func (neverEvict) MarkReleased(Key)            {}
func (neverEvict) NextToRelease() (Key, bool) { return 0, false }
