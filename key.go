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
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key is a stable, comparable, hashable identifier derived from a
// memoized callable's identity and its call arguments. Keys are used as
// map keys throughout this package, so equality must be exact.
type Key uint64

// KeyExtractor derives a Key from a callable identity and its positional
// call arguments. force_refresh (§6.1) is a call option, not an argument,
// and must never reach the extractor.
type KeyExtractor interface {
	FormatKey(identity string, args []any) Key
}

// xxhashKeyExtractor is the default KeyExtractor. It hashes a %#v
// rendering of the identity and each argument with xxhash, a fast
// non-cryptographic hash already pulled in transitively by the teacher
// repo and promoted here to a direct dependency.
//
// Caveat: %#v includes pointer addresses for pointer-typed arguments, so
// two calls with logically-equal-but-distinct pointers will miss each
// other in the cache. Callers with pointer-heavy argument sets should
// supply a KeyExtractor of their own (e.g. one that derefences and
// formats the pointee, or that uses a domain-specific identifier).
type xxhashKeyExtractor struct{}

// NewXXHashKeyExtractor returns the default KeyExtractor.
func NewXXHashKeyExtractor() KeyExtractor {
	return xxhashKeyExtractor{}
}

func (xxhashKeyExtractor) FormatKey(identity string, args []any) Key {
	h := xxhash.New()

	fmt.Fprintf(h, "%s\x00", identity)

	for _, a := range args {
		fmt.Fprintf(h, "%#v\x00", a)
	}

	return Key(h.Sum64())
}
