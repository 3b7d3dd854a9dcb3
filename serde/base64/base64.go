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

// Package base64 wraps another memocache.SerDe and encodes its bytes as
// base64, for storage backends that can only hold text (e.g. a
// string-typed column or a transport that mangles raw binary).
package base64

import (
	"encoding/base64"
	"fmt"

	"github.com/nscaledev/memocache"
)

// SerDe composes an inner memocache.SerDe with a base64 text encoding.
type SerDe[T any] struct {
	inner memocache.SerDe[T]
}

// Wrap returns a SerDe that base64-encodes whatever inner produces.
func Wrap[T any](inner memocache.SerDe[T]) SerDe[T] {
	return SerDe[T]{inner: inner}
}

func (s SerDe[T]) Serialize(entry memocache.Entry[T]) ([]byte, error) {
	raw, err := s.inner.Serialize(entry)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(encoded, raw)

	return encoded, nil
}

func (s SerDe[T]) Deserialize(data []byte) (memocache.Entry[T], error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(data)))

	n, err := base64.StdEncoding.Decode(raw, data)
	if err != nil {
		return memocache.Entry[T]{}, fmt.Errorf("base64 decode: %w", err)
	}

	return s.inner.Deserialize(raw[:n])
}
