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

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// options holds every knob the demo CLI exposes, bound from flags and
// overridable via MEMOCACHEDEMO_*-prefixed environment variables.
type options struct {
	MethodTimeout     time.Duration
	UpdateAfter       time.Duration
	ExpireAfter       time.Duration
	UpdateLockTimeout time.Duration

	Backend   string
	RedisAddr string

	LatencyMin time.Duration
	LatencyMax time.Duration

	Calls       int
	Concurrency int
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.DurationVar(&o.MethodTimeout, "method-timeout", 2*time.Second, "How long to wait for a single refresh to complete.")
	flags.DurationVar(&o.UpdateAfter, "update-after", 2*time.Second, "Soft freshness boundary.")
	flags.DurationVar(&o.ExpireAfter, "expire-after", 5*time.Second, "Hard freshness boundary.")
	flags.DurationVar(&o.UpdateLockTimeout, "update-lock-timeout", 0, "How long a follower waits on an in-flight refresh (0 derives from method-timeout).")

	flags.StringVar(&o.Backend, "storage-backend", "memory", "Storage backend: memory or redis.")
	flags.StringVar(&o.RedisAddr, "redis-addr", "localhost:6379", "Redis address, used when storage-backend=redis.")

	flags.DurationVar(&o.LatencyMin, "simulated-latency-min", 50*time.Millisecond, "Minimum simulated backend latency.")
	flags.DurationVar(&o.LatencyMax, "simulated-latency-max", 150*time.Millisecond, "Maximum simulated backend latency.")

	flags.IntVar(&o.Calls, "calls", 20, "Number of demo calls to make.")
	flags.IntVar(&o.Concurrency, "concurrency", 4, "Number of concurrent callers.")
}

// bindViper binds flags into v so MEMOCACHEDEMO_-prefixed environment
// variables can override them, matching the teacher pack's
// env-override-over-flags configuration layering.
func bindViper(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix("memocachedemo")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	return nil
}

func (o *options) loadFromViper(v *viper.Viper) error {
	o.MethodTimeout = v.GetDuration("method-timeout")
	o.UpdateAfter = v.GetDuration("update-after")
	o.ExpireAfter = v.GetDuration("expire-after")
	o.UpdateLockTimeout = v.GetDuration("update-lock-timeout")
	o.Backend = v.GetString("storage-backend")
	o.RedisAddr = v.GetString("redis-addr")
	o.LatencyMin = v.GetDuration("simulated-latency-min")
	o.LatencyMax = v.GetDuration("simulated-latency-max")
	o.Calls = v.GetInt("calls")
	o.Concurrency = v.GetInt("concurrency")

	if o.Backend != "memory" && o.Backend != "redis" {
		return errors.New("storage-backend must be memory or redis")
	}

	return nil
}
