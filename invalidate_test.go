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

package memocache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscaledev/memocache"
	"github.com/nscaledev/memocache/storage/memstore"
)

func TestInvalidatorRemovesOnlyItsOwnKey(t *testing.T) {
	t.Parallel()

	engine, err := memocache.New[string]()
	require.NoError(t, err)

	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()

	constant := func(v string) memocache.WorkFactory[string] {
		return func() (memocache.WorkFunc[string], error) {
			return func(context.Context) (string, error) { return v, nil }, nil
		}
	}

	value, err := engine.Call(ctx, "m", []any{"a"}, constant("A"))
	require.NoError(t, err)
	require.Equal(t, "A", value)

	value, err = engine.Call(ctx, "m", []any{"b"}, constant("B"))
	require.NoError(t, err)
	require.Equal(t, "B", value)

	require.NoError(t, engine.Invalidator("m").Invalidate(ctx, "a"))

	var invocations int

	tracking := func(v string) memocache.WorkFactory[string] {
		return func() (memocache.WorkFunc[string], error) {
			return func(context.Context) (string, error) {
				invocations++

				return v, nil
			}, nil
		}
	}

	value, err = engine.Call(ctx, "m", []any{"a"}, tracking("A2"))
	require.NoError(t, err)
	require.Equal(t, "A2", value, "invalidated key must be refetched")
	require.Equal(t, 1, invocations)

	value, err = engine.Call(ctx, "m", []any{"b"}, tracking("unexpected"))
	require.NoError(t, err)
	require.Equal(t, "B", value, "an uninvalidated key must be unaffected")
	require.Equal(t, 1, invocations, "the untouched key must not have triggered work")
}

func TestInvalidatorUsesItsBoundIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memstore.New[string](0)

	engine, err := memocache.New[string](memocache.WithStorage[string](store))
	require.NoError(t, err)

	t.Cleanup(func() { _ = engine.Close() })

	constant := func(v string) memocache.WorkFactory[string] {
		return func() (memocache.WorkFunc[string], error) {
			return func(context.Context) (string, error) { return v, nil }, nil
		}
	}

	_, err = engine.Call(ctx, "methodOne", []any{"x"}, constant("one"))
	require.NoError(t, err)
	_, err = engine.Call(ctx, "methodTwo", []any{"x"}, constant("two"))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len(), "distinct identities with the same args must not collide")

	require.NoError(t, engine.Invalidator("methodOne").Invalidate(ctx, "x"))
	require.Equal(t, 1, store.Len(), "only methodOne's entry should be gone")
}

func TestInvalidateOnMissingKeyIsANoOp(t *testing.T) {
	t.Parallel()

	engine, err := memocache.New[string]()
	require.NoError(t, err)

	t.Cleanup(func() { _ = engine.Close() })

	require.NoError(t, engine.Invalidator("never-called").Invalidate(context.Background(), "anything"))
}
