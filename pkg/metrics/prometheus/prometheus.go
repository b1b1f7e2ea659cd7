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

// Package prometheus implements refresh.Metrics on top of client_golang,
// the same instrumentation library used elsewhere in this stack.
package prometheus

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unikorn-cloud/hotcache/pkg/refresh"
)

// Metrics is a refresh.Metrics sink that publishes counters and histograms
// under a caller-chosen name label, so a single registry can host several
// caches.
type Metrics struct {
	fetchSuccess    prometheus.Counter
	fetchFailure    prometheus.Counter
	processFailure  prometheus.Counter
	updateApplied   prometheus.Counter
	fetchDuration   prometheus.Observer
	processDuration prometheus.Observer
}

var _ refresh.Metrics = (*Metrics)(nil)

// New registers the metric vectors against registry under cacheName and
// returns a Metrics handle bound to that one cache instance. Callers
// typically register one Metrics per refresh.Cache they build; several
// caches sharing a registry reuse the same underlying vectors, keyed apart
// by the "cache" label.
func New(registry prometheus.Registerer, cacheName string) *Metrics {
	counters := registerOrReuseCounterVec(registry, prometheus.CounterOpts{
		Namespace: "hotcache",
		Name:      "refresh_total",
		Help:      "Total number of refresh attempts by outcome.",
	}, []string{"cache", "outcome"})

	durations := registerOrReuseHistogramVec(registry, prometheus.HistogramOpts{
		Namespace: "hotcache",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of refresh phases in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"cache", "phase"})

	return &Metrics{
		fetchSuccess:    counters.WithLabelValues(cacheName, "fetch_success"),
		fetchFailure:    counters.WithLabelValues(cacheName, "fetch_failure"),
		processFailure:  counters.WithLabelValues(cacheName, "process_failure"),
		updateApplied:   counters.WithLabelValues(cacheName, "update_applied"),
		fetchDuration:   durations.WithLabelValues(cacheName, "fetch"),
		processDuration: durations.WithLabelValues(cacheName, "process"),
	}
}

// registerOrReuseCounterVec registers a new CounterVec, or, if one with the
// same descriptor is already registered on registry (a second cache sharing
// the registry), reuses the existing collector instead of panicking.
func registerOrReuseCounterVec(registry prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(opts, labels)

	if err := registry.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector.(*prometheus.CounterVec)
		}

		panic(err)
	}

	return vec
}

// registerOrReuseHistogramVec is registerOrReuseCounterVec for HistogramVec.
func registerOrReuseHistogramVec(registry prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(opts, labels)

	if err := registry.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector.(*prometheus.HistogramVec)
		}

		panic(err)
	}

	return vec
}

// RecordFetchSuccess implements refresh.Metrics.
func (m *Metrics) RecordFetchSuccess() {
	m.fetchSuccess.Inc()
}

// RecordFetchFailure implements refresh.Metrics.
func (m *Metrics) RecordFetchFailure() {
	m.fetchFailure.Inc()
}

// RecordProcessFailure implements refresh.Metrics.
func (m *Metrics) RecordProcessFailure() {
	m.processFailure.Inc()
}

// RecordUpdate implements refresh.Metrics.
func (m *Metrics) RecordUpdate(fetch, process time.Duration) {
	m.updateApplied.Inc()
	m.fetchDuration.Observe(fetch.Seconds())
	m.processDuration.Observe(process.Seconds())
}
