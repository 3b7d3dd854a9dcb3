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
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// CallOption adjusts the behavior of a single Call.
type CallOption func(*callOptions)

type callOptions struct {
	forceRefresh bool
}

// ForceRefresh skips the freshness check entirely and always drives a
// synchronous refresh through the Coordinator, still coalescing with any
// refresh already in flight for the same key.
func ForceRefresh() CallOption {
	return func(o *callOptions) { o.forceRefresh = true }
}

// Engine is the Wrapper Facade (C9): the single entry point user code
// calls through. It owns a Config snapshot (swappable via Reconfigure),
// one Coordinator shared by every key, and a background lifetime distinct from any
// individual caller's context, so a soft-stale refresh scheduled on
// behalf of one request keeps running after that request returns.
type Engine[T any] struct {
	cfg         atomic.Pointer[Config[T]]
	coordinator *Coordinator[T]

	bgCtx    context.Context
	bgCancel context.CancelFunc
	bgGroup  *errgroup.Group
}

// New builds an Engine from the given options. The returned Engine is
// ready to serve Call immediately; Close must eventually be called to
// stop its background refresh goroutines.
func New[T any](opts ...Option[T]) (*Engine[T], error) {
	cfg, err := NewConfig[T](opts...)
	if err != nil {
		return nil, err
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	group, bgCtx := errgroup.WithContext(bgCtx)

	e := &Engine[T]{
		bgCtx:    bgCtx,
		bgCancel: cancel,
		bgGroup:  group,
	}
	e.coordinator = newCoordinator[T](func(fn func()) {
		e.bgGroup.Go(func() error {
			fn()

			return nil
		})
	})
	e.cfg.Store(&cfg)

	return e, nil
}

// Reconfigure atomically swaps in a new Config built from the given
// options. Snapshots already in flight inside a Call keep using the
// Config they captured at the start of that call (§4.3 step 2); only
// calls starting after Reconfigure returns observe the new settings.
func (e *Engine[T]) Reconfigure(opts ...Option[T]) error {
	cfg, err := NewConfig[T](opts...)
	if err != nil {
		return err
	}

	e.cfg.Store(&cfg)

	return nil
}

// Close cancels the Engine's background context and waits for every
// background goroutine to return. A soft-stale refresh still running at
// that point is abandoned: its work sees a canceled ctx, and if the work
// returns an error for it the refresh fails with ErrUnfinishedRefresh.
// Close does not stop a Call made after it from starting a background
// refresh on the canceled context. It does not touch
// storage; entries already offered remain in place.
func (e *Engine[T]) Close() error {
	e.bgCancel()

	return e.bgGroup.Wait()
}

// Invalidator returns a two-phase-bound invalidation handle for identity
// (C10), independent of any particular Call's arguments.
func (e *Engine[T]) Invalidator(identity string) *Invalidator[T] {
	cfg := e.snapshot()

	return newInvalidator[T](cfg.Storage, cfg.KeyExtractor, identity)
}

func (e *Engine[T]) snapshot() Config[T] {
	return *e.cfg.Load()
}

// Call is the single memoized entry point (§4.3). identity names the
// cached method (used for keying alongside args and for metrics/logs);
// args are hashed by the configured KeyExtractor; factory builds the
// work to run on a cache miss or refresh.
func (e *Engine[T]) Call(
	ctx context.Context,
	identity string,
	args []any,
	factory WorkFactory[T],
	opts ...CallOption,
) (T, error) {
	var zero T

	cfg := e.snapshot()
	if !cfg.readyCheck() {
		return zero, errNotConfigured()
	}

	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := cfg.KeyExtractor.FormatKey(identity, args)

	current, found, getErr := cfg.Storage.Get(ctx, key)
	if getErr != nil {
		cfg.log().Error(getErr, "storage get failed, treating as miss", "identity", identity)

		found = false
	}

	var (
		freshness  Freshness
		currentPtr *Entry[T]
	)

	if found {
		entry := current
		freshness = Classify(&entry, time.Now())
		cfg.EvictionStrategy.MarkRead(key)
		currentPtr = &entry
	} else {
		freshness = Missing
	}

	// A hard-expired entry must not be served, so it is not handed to the
	// coordinator as a fallback a follower could return.
	if freshness == HardExpired && !o.forceRefresh {
		currentPtr = nil
	}

	if o.forceRefresh {
		freshness = HardExpired
	}

	cfg.observeDispatch(identity, freshness)

	switch freshness {
	case Fresh:
		return cfg.apply(current.Value), nil

	case SoftStale:
		e.scheduleBackgroundRefresh(identity, key, currentPtr, factory, &cfg)

		return cfg.apply(current.Value), nil

	case Missing, HardExpired:
		entry, err := e.coordinator.Do(ctx, identity, key, currentPtr, factory, &cfg)
		if err != nil {
			return zero, err
		}

		return cfg.apply(entry.Value), nil

	default:
		return zero, errCachedMethodFailed("unreachable freshness classification", nil)
	}
}

// scheduleBackgroundRefresh kicks off a detached refresh for key if one
// isn't already in flight, bound to the Engine's own background context
// rather than the triggering call's ctx, so cancelling the caller's
// request never cuts a soft-stale refresh short (§5's "detached from the
// caller" reading).
func (e *Engine[T]) scheduleBackgroundRefresh(identity string, key Key, current *Entry[T], factory WorkFactory[T], cfg *Config[T]) {
	if e.coordinator.isBeingUpdated(key) {
		return
	}

	e.bgGroup.Go(func() error {
		if _, err := e.coordinator.Do(e.bgCtx, identity, key, current, factory, cfg); err != nil {
			cfg.log().Error(err, "background refresh failed", "identity", identity)
		}

		return nil
	})
}
