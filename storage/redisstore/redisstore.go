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

// Package redisstore is a Redis-backed memocache.Storage, for sharing a
// cache across process instances. Entries are serialized with a
// caller-supplied memocache.SerDe (see memocache/serde) since Redis only
// deals in bytes.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nscaledev/memocache"
	"github.com/redis/go-redis/v9"
)

// Store is a memocache.Storage[T] backed by a Redis client. Keys are
// namespaced under prefix to let multiple cached identities share one
// Redis keyspace without collisions.
type Store[T any] struct {
	client *redis.Client
	serde  memocache.SerDe[T]
	prefix string
	// expireSlack is added on top of an entry's own ExpiresAfter when
	// setting the Redis key TTL, so a slow-to-refresh caller can still
	// read the now-hard-expired entry for one more round trip instead of
	// racing Redis's own eviction.
	expireSlack time.Duration
}

// New returns a Store. expireSlack should normally be a small multiple
// of the expected Redis round-trip time.
func New[T any](client *redis.Client, serde memocache.SerDe[T], prefix string, expireSlack time.Duration) *Store[T] {
	return &Store[T]{client: client, serde: serde, prefix: prefix, expireSlack: expireSlack}
}

func (s *Store[T]) redisKey(key memocache.Key) string {
	return fmt.Sprintf("%s:%d", s.prefix, uint64(key))
}

func (s *Store[T]) Get(ctx context.Context, key memocache.Key) (memocache.Entry[T], bool, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return memocache.Entry[T]{}, false, nil
	}

	if err != nil {
		return memocache.Entry[T]{}, false, fmt.Errorf("redisstore get: %w", err)
	}

	entry, err := s.serde.Deserialize(data)
	if err != nil {
		return memocache.Entry[T]{}, false, fmt.Errorf("redisstore deserialize: %w", err)
	}

	return entry, true, nil
}

func (s *Store[T]) Offer(ctx context.Context, key memocache.Key, entry memocache.Entry[T]) error {
	data, err := s.serde.Serialize(entry)
	if err != nil {
		return fmt.Errorf("redisstore serialize: %w", err)
	}

	ttl := time.Until(entry.ExpiresAfter) + s.expireSlack
	if ttl <= 0 {
		ttl = s.expireSlack
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisstore set: %w", err)
	}

	return nil
}

func (s *Store[T]) Release(ctx context.Context, key memocache.Key) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redisstore del: %w", err)
	}

	return nil
}
