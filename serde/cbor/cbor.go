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

// Package cbor is a memocache.SerDe backed by a compact binary codec,
// for storage backends where wire size matters more than
// human-readability.
package cbor

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/nscaledev/memocache"
)

type wireEntry[T any] struct {
	Value        T         `cbor:"1,keyasint"`
	Created      time.Time `cbor:"2,keyasint"`
	UpdateAfter  time.Time `cbor:"3,keyasint"`
	ExpiresAfter time.Time `cbor:"4,keyasint"`
}

// encMode writes time.Time fields as RFC 3339 text with nanosecond
// precision, so the timestamps survive a round trip unchanged.
//
//nolint:gochecknoglobals
var encMode, _ = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()

// SerDe is a CBOR-backed memocache.SerDe.
type SerDe[T any] struct{}

// New returns a CBOR SerDe.
func New[T any]() SerDe[T] {
	return SerDe[T]{}
}

func (SerDe[T]) Serialize(entry memocache.Entry[T]) ([]byte, error) {
	data, err := encMode.Marshal(wireEntry[T]{
		Value:        entry.Value,
		Created:      entry.Created,
		UpdateAfter:  entry.UpdateAfter,
		ExpiresAfter: entry.ExpiresAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("cbor marshal: %w", err)
	}

	return data, nil
}

func (SerDe[T]) Deserialize(data []byte) (memocache.Entry[T], error) {
	var w wireEntry[T]

	if err := cbor.Unmarshal(data, &w); err != nil {
		return memocache.Entry[T]{}, fmt.Errorf("cbor unmarshal: %w", err)
	}

	return memocache.Entry[T]{
		Value:        w.Value,
		Created:      w.Created,
		UpdateAfter:  w.UpdateAfter,
		ExpiresAfter: w.ExpiresAfter,
	}, nil
}
