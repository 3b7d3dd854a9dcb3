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

// SerDe converts an Entry to and from bytes for storage backends that
// need a wire/disk representation (§6.1). Implementations are composable:
// an encoding SerDe (e.g. base64) wraps an inner SerDe (e.g. a binary
// codec), and the round trip must be lossless modulo any configured
// value transformation. The core coordinator never calls a SerDe
// directly; only a Storage backend does, internally.
type SerDe[T any] interface {
	Serialize(entry Entry[T]) ([]byte, error)
	Deserialize(data []byte) (Entry[T], error)
}
