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

import "context"

// Invalidator is the Invalidation Handle (C10): a narrow capability
// bound to one cached identity that lets a caller evict specific
// argument combinations without holding a reference back to the owning
// Engine. It closes over only the three collaborators it needs - the
// storage, the key extractor, and the identity - so a leaked Invalidator
// cannot be used to reconfigure or otherwise reach into the Engine that
// created it.
type Invalidator[T any] struct {
	storage      Storage[T]
	keyExtractor KeyExtractor
	identity     string
}

func newInvalidator[T any](storage Storage[T], keyExtractor KeyExtractor, identity string) *Invalidator[T] {
	return &Invalidator[T]{storage: storage, keyExtractor: keyExtractor, identity: identity}
}

// Invalidate removes the entry for identity called with args, if any.
// It is not coordinated with an in-flight refresh: a refresh already
// under way for the same key will still complete and may re-populate
// storage after Invalidate returns.
func (inv *Invalidator[T]) Invalidate(ctx context.Context, args ...any) error {
	key := inv.keyExtractor.FormatKey(inv.identity, args)

	return inv.storage.Release(ctx, key)
}
