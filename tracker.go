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
	"sync"
)

// latch is the in-flight record for a single key's refresh. Exactly one
// goroutine holds the "leader" role for a latch - the one that created
// it via statusTracker.claim - and is responsible for calling markUpdated
// or markUpdateAborted exactly once. Every other caller for the same key
// becomes a follower and blocks on done.
type latch[T any] struct {
	done chan struct{}

	// result and err are only safe to read after done is closed; the
	// channel close is the synchronization point (happens-before).
	result Entry[T]
	err    error
}

// statusTracker is the Update Status Tracker (C7): a mutex-protected
// registry mapping Key to an in-flight latch. The mutex closes the
// TOCTOU gap spec.md §4.2 and §5 call out explicitly between checking
// "is this key already being updated" and registering "this key is now
// being updated" - claim performs both under one critical section.
type statusTracker[T any] struct {
	mu      sync.Mutex
	inFlight map[Key]*latch[T]
}

func newStatusTracker[T any]() *statusTracker[T] {
	return &statusTracker[T]{inFlight: make(map[Key]*latch[T])}
}

// claim atomically checks for an in-flight refresh of key and, if there
// isn't one, registers the caller as its leader. The second return value
// reports which role the caller was given: true means leader (go do the
// work and call markUpdated/markUpdateAborted), false means follower (go
// await the returned latch).
func (t *statusTracker[T]) claim(key Key) (*latch[T], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.inFlight[key]; ok {
		return l, false
	}

	l := &latch[T]{done: make(chan struct{})}
	t.inFlight[key] = l

	return l, true
}

// isBeingUpdated reports whether key currently has a leader in flight,
// without claiming anything. Exposed for callers (and tests) that want
// to observe tracker state without participating in the refresh.
func (t *statusTracker[T]) isBeingUpdated(key Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.inFlight[key]

	return ok
}

// markUpdated completes a leader's latch successfully, waking every
// follower with the produced entry, and removes the key from the
// registry so the next Call for it starts a fresh claim.
func (t *statusTracker[T]) markUpdated(key Key, l *latch[T], result Entry[T]) {
	l.result = result

	t.release(key, l)
}

// markUpdateAborted completes a leader's latch with an error - the work
// itself failing, timing out, being abandoned via context cancellation,
// or a panic recovered from the work - and wakes every follower with
// that same error (§4.2's "failure" branch: followers observe the
// leader's failure rather than retrying blindly). A work-factory
// failure never reaches here: the factory runs before a claim is taken,
// so it has no latch to abort (see Coordinator.Do).
func (t *statusTracker[T]) markUpdateAborted(key Key, l *latch[T], err error) {
	l.err = err

	t.release(key, l)
}

func (t *statusTracker[T]) release(key Key, l *latch[T]) {
	t.mu.Lock()
	if t.inFlight[key] == l {
		delete(t.inFlight, key)
	}
	t.mu.Unlock()

	close(l.done)
}

// awaitUpdated blocks until l's leader finishes or ctx is done, whichever
// comes first. A ctx cancellation here does not abort the leader's
// work - it only stops this particular follower from waiting on it,
// matching §4.2's guidance that a follower's own timeout is independent
// of the refresh it is waiting on.
func (t *statusTracker[T]) awaitUpdated(ctx context.Context, l *latch[T]) (Entry[T], error) {
	select {
	case <-l.done:
		return l.result, l.err
	case <-ctx.Done():
		return Entry[T]{}, ctx.Err()
	}
}
