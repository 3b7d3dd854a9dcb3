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
	"time"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
)

const (
	// defaultMethodTimeout bounds one user-work execution when a Config
	// doesn't specify one explicitly.
	defaultMethodTimeout = 5 * time.Second

	// defaultUpdateAfter is the soft freshness boundary applied by
	// default.
	defaultUpdateAfter = 30 * time.Second

	// defaultExpireAfter is the hard freshness boundary applied by
	// default.
	defaultExpireAfter = 60 * time.Second

	// lockTimeoutSlack is added to MethodTimeout to derive
	// UpdateLockTimeout when the latter isn't set explicitly, matching
	// the original implementation's "method timeout plus a small slack"
	// default (see SPEC_FULL.md's supplemented-features section).
	lockTimeoutSlack = 2 * time.Second
)

// validate is a single, package-level validator instance; per the
// library's own docs it is safe for concurrent use once struct/field
// caches are warm, and is the pattern the ipiton-alert-history-service
// example uses for its config validation.
//
//nolint:gochecknoglobals
var validate = validator.New(validator.WithRequiredStructEnabled())

// Recorder observes dispatch and refresh outcomes for metrics purposes.
// It sits entirely off the coordinator's blocking path: a nil Recorder
// (the Config default) costs nothing.
type Recorder interface {
	ObserveDispatch(identity string, freshness Freshness)
	ObserveRefresh(identity string, d time.Duration, err error)
}

// Config binds every collaborator and tunable named in spec.md §6.3. A
// Config is copied by value into a snapshot at the start of every call
// (§4.3 step 2): because every field here is either a value type or an
// interface (itself just a pointer-sized handle to a collaborator), a
// plain struct copy *is* the "freeze a configuration snapshot" step -
// later calls to Reconfigure on the owning Engine swap in a new *Config
// without perturbing a snapshot already in flight.
type Config[T any] struct {
	// MethodTimeout bounds one user-work execution.
	MethodTimeout time.Duration `validate:"required,gt=0"`
	// UpdateAfter is the duration from Created to the soft-stale
	// boundary.
	UpdateAfter time.Duration `validate:"required,gt=0"`
	// ExpireAfter is the duration from Created to hard expiry; must be
	// >= UpdateAfter.
	ExpireAfter time.Duration `validate:"required,gtefield=UpdateAfter"`
	// UpdateLockTimeout bounds how long a waiter blocks inside
	// awaitUpdated. Defaults to MethodTimeout+lockTimeoutSlack.
	UpdateLockTimeout time.Duration `validate:"required,gt=0"`

	// Storage is the backend collaborator (§4.4).
	Storage Storage[T] `validate:"required"`
	// KeyExtractor derives keys from call arguments (§6.1).
	KeyExtractor KeyExtractor `validate:"required"`
	// EvictionStrategy nominates victims for background release (§4.5).
	EvictionStrategy EvictionStrategy `validate:"required"`
	// EntryBuilder stamps new entries (§4.1 C3).
	EntryBuilder EntryBuilder[T] `validate:"required"`
	// PostProcessing is applied to the chosen entry's value before it is
	// returned to the caller (§4.3 step 9). Must be pure.
	PostProcessing func(T) T `validate:"-"`
	// Log is the structured log sink threaded through instead of a
	// process-wide logger lookup (§9 design note). Defaults to
	// logr.Discard().
	Log logr.Logger `validate:"-"`
	// Metrics is an optional observability hook; nil disables it.
	Metrics Recorder `validate:"-"`

	ready bool
}

// Option configures a Config, in the teacher's functional-option-over-
// struct style (pkg/options).
type Option[T any] func(*Config[T])

func WithMethodTimeout[T any](d time.Duration) Option[T] {
	return func(c *Config[T]) { c.MethodTimeout = d }
}

func WithUpdateAfter[T any](d time.Duration) Option[T] {
	return func(c *Config[T]) { c.UpdateAfter = d }
}

func WithExpireAfter[T any](d time.Duration) Option[T] {
	return func(c *Config[T]) { c.ExpireAfter = d }
}

func WithUpdateLockTimeout[T any](d time.Duration) Option[T] {
	return func(c *Config[T]) { c.UpdateLockTimeout = d }
}

func WithStorage[T any](s Storage[T]) Option[T] {
	return func(c *Config[T]) { c.Storage = s }
}

func WithKeyExtractor[T any](k KeyExtractor) Option[T] {
	return func(c *Config[T]) { c.KeyExtractor = k }
}

func WithEvictionStrategy[T any](e EvictionStrategy) Option[T] {
	return func(c *Config[T]) { c.EvictionStrategy = e }
}

func WithEntryBuilder[T any](b EntryBuilder[T]) Option[T] {
	return func(c *Config[T]) { c.EntryBuilder = b }
}

func WithPostProcessing[T any](f func(T) T) Option[T] {
	return func(c *Config[T]) { c.PostProcessing = f }
}

func WithLog[T any](log logr.Logger) Option[T] {
	return func(c *Config[T]) { c.Log = log }
}

func WithMetrics[T any](r Recorder) Option[T] {
	return func(c *Config[T]) { c.Metrics = r }
}

// NewConfig builds a Config from the given options, applying defaults for
// anything left unset, then validates it. A Config built this way always
// has readyCheck()==true; a Config assembled by hand (e.g. zero value) does
// not, which is exactly the NotConfigured condition §4.3 step 1 checks
// for.
func NewConfig[T any](opts ...Option[T]) (Config[T], error) {
	cfg := Config[T]{
		MethodTimeout: defaultMethodTimeout,
		UpdateAfter:   defaultUpdateAfter,
		ExpireAfter:   defaultExpireAfter,
		KeyExtractor:  NewXXHashKeyExtractor(),
		Storage:       newMapStorage[T](),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config[T]{}, err
	}

	cfg.ready = true

	return cfg, nil
}

// applyDefaults fills in anything derivable from the rest of the struct
// that wasn't set explicitly. It must run before Validate.
func (c *Config[T]) applyDefaults() {
	if c.UpdateLockTimeout == 0 {
		c.UpdateLockTimeout = c.MethodTimeout + lockTimeoutSlack
	}

	if c.EvictionStrategy == nil {
		c.EvictionStrategy = NewNeverEvict()
	}

	if c.EntryBuilder == nil {
		c.EntryBuilder = NewDurationEntryBuilder[T](c.UpdateAfter, c.ExpireAfter)
	}

	if c.PostProcessing == nil {
		c.PostProcessing = func(v T) T { return v }
	}

	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
}

// Validate checks every cross-field invariant spec.md §6.3 implies
// (notably ExpireAfter >= UpdateAfter) and that every required
// collaborator is present.
func (c *Config[T]) Validate() error {
	return validate.Struct(c)
}

// readyCheck reports whether the snapshot passed Validate at construction
// time (§4.3 step 1's "configuration reports itself unready" check).
func (c *Config[T]) readyCheck() bool {
	return c.ready
}

// log returns the configured sink, defaulting to a discard logger so
// callers who never wire one get silence instead of a panic.
func (c *Config[T]) log() logr.Logger {
	if c.Log.GetSink() == nil {
		return logr.Discard()
	}

	return c.Log
}

// apply runs the configured post-processing transform.
func (c *Config[T]) apply(value T) T {
	if c.PostProcessing == nil {
		return value
	}

	return c.PostProcessing(value)
}

// observeDispatch reports a dispatch classification if metrics are wired.
func (c *Config[T]) observeDispatch(identity string, f Freshness) {
	if c.Metrics != nil {
		c.Metrics.ObserveDispatch(identity, f)
	}
}

// observeRefresh reports a refresh outcome if metrics are wired.
func (c *Config[T]) observeRefresh(identity string, d time.Duration, err error) {
	if c.Metrics != nil {
		c.Metrics.ObserveRefresh(identity, d, err)
	}
}
