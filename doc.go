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

// Package memocache memoizes the result of an asynchronous (goroutine
// backed) computation, keyed by call arguments, with two freshness tiers:
// a soft update boundary that triggers a background refresh while still
// serving the stale value, and a hard expiry that forces callers to block
// on a fresh value.
//
// Concurrent callers for the same key never cause more than one refresh to
// run at a time: latecomers either get the value already in hand, or attach
// to the in-flight refresh and receive its eventual outcome, including
// failure.
//
// Storage, eviction policy, serialization and key derivation are pluggable
// collaborators behind narrow interfaces; this package only owns the
// freshness/refresh state machine that coordinates them.
package memocache
