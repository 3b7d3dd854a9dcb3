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

// Package memocachemetrics provides a Prometheus-backed implementation of
// memocache.Recorder.
package memocachemetrics

import (
	"fmt"
	"time"

	"github.com/nscaledev/memocache"
	"github.com/prometheus/client_golang/prometheus"
)

var freshnessLabels = []string{"identity", "freshness"}

// Recorder is a memocache.Recorder backed by a set of Prometheus
// collectors, one per cached subsystem (named by appName at
// construction, matching the per-app metric naming the pack's caching
// layers use).
type Recorder struct {
	dispatch       *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	refreshLatency *prometheus.HistogramVec
}

// New builds a Recorder with metric names prefixed by appName and
// registers its collectors against reg. Passing prometheus.DefaultRegisterer
// registers against the global registry.
func New(appName string, reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		dispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_memocache_dispatch_total", appName),
			Help: "Count of Call dispatches by identity and freshness classification.",
		}, freshnessLabels),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_memocache_refresh_total", appName),
			Help: "Count of refresh attempts by identity and outcome.",
		}, []string{"identity", "outcome"}),
		refreshLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_memocache_refresh_duration_seconds", appName),
			Help:    "Duration of refresh work callables, by identity.",
			Buckets: prometheus.DefBuckets,
		}, []string{"identity"}),
	}

	for _, c := range []prometheus.Collector{r.dispatch, r.refreshes, r.refreshLatency} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering memocache collector: %w", err)
		}
	}

	return r, nil
}

// ObserveDispatch implements memocache.Recorder.
func (r *Recorder) ObserveDispatch(identity string, freshness memocache.Freshness) {
	r.dispatch.WithLabelValues(identity, freshness.String()).Inc()
}

// ObserveRefresh implements memocache.Recorder.
func (r *Recorder) ObserveRefresh(identity string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	r.refreshes.WithLabelValues(identity, outcome).Inc()
	r.refreshLatency.WithLabelValues(identity).Observe(d.Seconds())
}
