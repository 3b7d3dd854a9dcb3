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

// Command memocachedemo drives a memocache.Engine against a simulated
// backend and prints how many calls succeeded and how many were served
// without blocking on work; per-call freshness classifications go to the
// Prometheus recorder, not to the console. It exists to exercise the
// engine end to end, not as a production service.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/nscaledev/memocache"
	"github.com/nscaledev/memocache/memocachemetrics"
	"github.com/nscaledev/memocache/serde/jsoncodec"
	"github.com/nscaledev/memocache/storage/memstore"
	"github.com/nscaledev/memocache/storage/redisstore"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "memocachedemo",
		Short: "Exercise a memocache.Engine against a simulated backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(v, cmd.Flags()); err != nil {
				return err
			}

			if err := opts.loadFromViper(v); err != nil {
				return err
			}

			return run(cmd.Context(), opts)
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

func run(ctx context.Context, opts *options) error {
	log := stdr.New(nil)

	engine, err := buildEngine(opts, log)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	defer engine.Close() //nolint:errcheck

	var calls, fastCalls int64

	factory := func(identity string) memocache.WorkFactory[int64] {
		return func() (memocache.WorkFunc[int64], error) {
			return func(ctx context.Context) (int64, error) {
				latency := opts.LatencyMin + time.Duration(rand.Int63n(int64(opts.LatencyMax-opts.LatencyMin+1))) //nolint:gosec

				select {
				case <-time.After(latency):
				case <-ctx.Done():
					return 0, ctx.Err()
				}

				return time.Now().UnixNano(), nil
			}, nil
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)

	for i := 0; i < opts.Calls; i++ {
		group.Go(func() error {
			identity := "demo.Value"

			callCtx, cancel := context.WithTimeout(ctx, opts.MethodTimeout*2)
			defer cancel()

			fast, err := callAndTime(callCtx, engine, identity, factory(identity))
			if err != nil {
				log.Error(err, "call failed")

				return nil
			}

			atomic.AddInt64(&calls, 1)

			if fast {
				atomic.AddInt64(&fastCalls, 1)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	fmt.Printf("calls=%d served-without-blocking-on-work=%d\n", calls, fastCalls)
	fmt.Println("per-identity dispatch and refresh counts are exported to the default Prometheus registry")

	return nil
}

// callAndTime reports whether a call returned in under one millisecond,
// i.e. was served from storage rather than blocking on a refresh. It's a rough signal for the demo's
// own console output; ObserveDispatch on the wired Recorder is the
// source of truth for freshness counts.
func callAndTime(
	ctx context.Context,
	engine *memocache.Engine[int64],
	identity string,
	factory memocache.WorkFactory[int64],
) (bool, error) {
	before := time.Now()

	if _, err := engine.Call(ctx, identity, nil, factory); err != nil {
		return false, err
	}

	return time.Since(before) < time.Millisecond, nil
}

func buildEngine(opts *options, log logr.Logger) (*memocache.Engine[int64], error) {
	recorder, err := memocachemetrics.New("memocachedemo", prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}

	configOpts := []memocache.Option[int64]{
		memocache.WithMethodTimeout[int64](opts.MethodTimeout),
		memocache.WithUpdateAfter[int64](opts.UpdateAfter),
		memocache.WithExpireAfter[int64](opts.ExpireAfter),
		memocache.WithLog[int64](log),
		memocache.WithMetrics[int64](recorder),
	}

	if opts.UpdateLockTimeout > 0 {
		configOpts = append(configOpts, memocache.WithUpdateLockTimeout[int64](opts.UpdateLockTimeout))
	}

	switch opts.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		store := redisstore.New[int64](client, jsoncodec.New[int64](), "memocachedemo", time.Minute)
		configOpts = append(configOpts, memocache.WithStorage[int64](store))
	default:
		configOpts = append(configOpts, memocache.WithStorage[int64](memstore.New[int64](0)))
	}

	return memocache.New(configOpts...)
}
