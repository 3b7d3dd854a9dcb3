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

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// WorkFunc produces a fresh value for a key. It is expected to respect
// ctx cancellation; the coordinator applies MethodTimeout by wrapping ctx
// before calling it.
type WorkFunc[T any] func(ctx context.Context) (T, error)

// WorkFactory instantiates a WorkFunc for one refresh attempt. Spec.md
// §4.1 C1 treats "build the work callable" as a step that can itself
// fail synchronously, distinct from the work failing once invoked; a
// factory function is how that two-phase fallibility is expressed in
// Go, where a plain closure has no separate construction step of its
// own.
type WorkFactory[T any] func() (WorkFunc[T], error)

// Coordinator is the Refresh Coordinator (C8): it owns the single-flight
// decision for one key's refresh and drives it to completion, talking
// only to a statusTracker, a Storage, and an EvictionStrategy. It never
// reads or writes Config fields directly other than the snapshot handed
// to Do, so a Coordinator has no mutable state of its own beyond the
// tracker registry.
type Coordinator[T any] struct {
	tracker *statusTracker[T]

	// dispatchAsync runs a closure outside the path that produces the
	// caller's result, used for the eviction release nominated by a
	// successful refresh (§4.5/§8 S7: "storage.release(K0) is invoked
	// asynchronously and its failure does not affect the K1 result"). The
	// owning Engine supplies one bound to its own background lifetime;
	// standalone use (e.g. tests) gets a synchronous fallback.
	dispatchAsync func(func())
}

func newCoordinator[T any](dispatchAsync func(func())) *Coordinator[T] {
	if dispatchAsync == nil {
		dispatchAsync = func(fn func()) { fn() }
	}

	return &Coordinator[T]{tracker: newStatusTracker[T](), dispatchAsync: dispatchAsync}
}

// isBeingUpdated reports whether key has a refresh in flight right now.
func (c *Coordinator[T]) isBeingUpdated(key Key) bool {
	return c.tracker.isBeingUpdated(key)
}

// Do drives a single refresh of key to completion, coalescing concurrent
// callers for the same key into one leader and N followers per §4.2.
// current is the entry the caller already had in hand when it decided to
// refresh (nil on a true miss). Per §4.2 step 1, a follower that finds a
// refresh already in flight returns current immediately without waiting
// when current is non-nil - it already has something usable, and the
// in-flight refresh is left to continue unobserved - and only blocks on
// awaitUpdated when current is nil, since there is nothing better to
// return.
//
// factory is called before any claim is taken (§4.2 steps 2-3), so a
// factory failure never registers this key as being updated: a
// concurrent caller arriving in that window does not coalesce onto a
// leader that was always going to fail, and instead gets the chance to
// become its own leader.
func (c *Coordinator[T]) Do(
	ctx context.Context,
	identity string,
	key Key,
	current *Entry[T],
	factory WorkFactory[T],
	cfg *Config[T],
) (Entry[T], error) {
	work, err := factory()
	if err != nil {
		return Entry[T]{}, errCachedMethodFailed("work factory failed", err)
	}

	l, isLeader := c.tracker.claim(key)

	if !isLeader {
		if current != nil {
			return *current, nil
		}

		waitCtx, cancel := context.WithTimeout(ctx, cfg.UpdateLockTimeout)
		defer cancel()

		entry, err := c.tracker.awaitUpdated(waitCtx, l)
		if err != nil {
			if waitCtx.Err() != nil {
				return Entry[T]{}, errCachedMethodFailed("update lock timed out", fmt.Errorf("%w: %w", ErrRefreshTimedOut, err))
			}

			return Entry[T]{}, err
		}

		return entry, nil
	}

	return c.lead(ctx, identity, key, l, work, cfg)
}

// lead runs the leader path: run the already-built work callable under
// MethodTimeout, store the result, and release every follower waiting on
// l. It always completes l exactly once, including on panic recovery,
// which is the safety net spec.md §4.2 requires so a follower can never
// be left waiting forever because the leader's goroutine died abnormally.
func (c *Coordinator[T]) lead(
	ctx context.Context,
	identity string,
	key Key,
	l *latch[T],
	work WorkFunc[T],
	cfg *Config[T],
) (entry Entry[T], err error) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = errCachedMethodFailed("work panicked", fmt.Errorf("%v", r))
			c.tracker.markUpdateAborted(key, l, err)
		}

		cfg.observeRefresh(identity, time.Since(started), err)
	}()

	workCtx, cancel := context.WithTimeout(ctx, cfg.MethodTimeout)
	defer cancel()

	value, err := work(workCtx)
	if err != nil {
		switch {
		case errors.Is(workCtx.Err(), context.DeadlineExceeded):
			err = errCachedMethodFailed("refresh timed out", fmt.Errorf("%w: %w", ErrRefreshTimedOut, err))
		case errors.Is(workCtx.Err(), context.Canceled):
			// The leader's own ctx (a caller's request ctx, or the
			// Engine's background lifetime ctx for a soft-stale refresh)
			// was canceled out from under it - e.g. Engine.Close ran
			// mid-refresh. The work is abandoned rather than timed out.
			err = errCachedMethodFailed("refresh abandoned before completion", fmt.Errorf("%w: %w", ErrUnfinishedRefresh, err))
		default:
			err = errCachedMethodFailed("work failed", err)
		}

		c.tracker.markUpdateAborted(key, l, err)

		return Entry[T]{}, err
	}

	entry = cfg.EntryBuilder.Build(key, value, time.Now())

	if offerErr := cfg.Storage.Offer(ctx, key, entry); offerErr != nil {
		cfg.log().Error(offerErr, "failed to offer refreshed entry to storage", "identity", identity)
	}

	cfg.EvictionStrategy.MarkWritten(WrittenMeta{
		Key:          key,
		Created:      entry.Created,
		UpdateAfter:  entry.UpdateAfter,
		ExpiresAfter: entry.ExpiresAfter,
	})

	c.tracker.markUpdated(key, l, entry)

	c.dispatchAsync(func() {
		c.releaseOneVictim(context.Background(), cfg)
	})

	return entry, nil
}

// releaseOneVictim asks the EvictionStrategy for its next nomination and
// releases it from storage if there is one. It is best-effort: a release
// failure is logged, never propagated, since eviction is advisory (§4.5).
func (c *Coordinator[T]) releaseOneVictim(ctx context.Context, cfg *Config[T]) {
	victim, ok := cfg.EvictionStrategy.NextToRelease()
	if !ok {
		return
	}

	if err := cfg.Storage.Release(ctx, victim); err != nil {
		cfg.log().Error(err, "failed to release evicted entry from storage")

		return
	}

	cfg.EvictionStrategy.MarkReleased(victim)
}
