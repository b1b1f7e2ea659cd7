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

package refresh

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"golang.org/x/sync/errgroup"
)

// Builder enforces spec §4.7's required-field completeness statically:
// source, processor, and fetch_interval must be set, in that order, before
// Build becomes available at all. Each stage exposes only the next
// required setter (spec §9's "typestate / phantom witnesses" option),
// rather than validating a flat option struct at Build time.
//
// NewBuilder[V, C]() starts the chain:
//
//	cache, err := refresh.NewBuilder[string, *refresh.Map[string, int]]().
//		WithSource(source).
//		WithProcessor(processor).
//		WithInterval(30 * time.Second).
//		Build(ctx)

// SourceStage is the entry point of the builder chain.
type SourceStage[V comparable, C any] struct{}

// NewBuilder starts a new Builder chain for a cache whose Source mints
// versions of type V and whose Processor produces collections of type C.
func NewBuilder[V comparable, C any]() *SourceStage[V, C] {
	return &SourceStage[V, C]{}
}

// WithSource supplies the required Source and advances to ProcessorStage.
func (SourceStage[V, C]) WithSource(source Source[V]) *ProcessorStage[V, C] {
	return &ProcessorStage[V, C]{source: source}
}

// ProcessorStage requires a Processor next.
type ProcessorStage[V comparable, C any] struct {
	source Source[V]
}

// WithProcessor supplies the required Processor and advances to IntervalStage.
func (s ProcessorStage[V, C]) WithProcessor(processor Processor[C]) *IntervalStage[V, C] {
	return &IntervalStage[V, C]{source: s.source, processor: processor}
}

// IntervalStage requires fetch_interval next.
type IntervalStage[V comparable, C any] struct {
	source    Source[V]
	processor Processor[C]
}

// WithInterval supplies the required poll interval and advances to
// OptionalStage, from which Build becomes reachable. interval==0 is
// accepted here (it is a value, not a missing field) but rejected by
// Build with a BuildError, per spec §9.
func (s IntervalStage[V, C]) WithInterval(interval time.Duration) *OptionalStage[V, C] {
	return &OptionalStage[V, C]{
		source:    s.source,
		processor: s.processor,
		interval:  interval,
		metrics:   noopMetrics{},
	}
}

// OptionalStage carries every required field and exposes the optional
// ones (spec §6), plus Build.
type OptionalStage[V comparable, C any] struct {
	source    Source[V]
	processor Processor[C]
	interval  time.Duration
	name      string
	fallback  fallback[C]
	onUpdate  OnUpdate[V, C]
	onFailure OnFailure[V]
	metrics   Metrics
	taskGroup *errgroup.Group
	logger    logr.Logger
	hasLogger bool
}

// WithName labels the cache for thread naming and log fields in the
// thread-backed flavor. It is silently ignored by the task-backed flavor
// (spec §9's documented asymmetry).
func (s *OptionalStage[V, C]) WithName(name string) *OptionalStage[V, C] {
	s.name = name
	return s
}

// WithFallback supplies a value to publish if the initial synchronous
// fetch fails, instead of failing Build outright (spec §4.6).
func (s *OptionalStage[V, C]) WithFallback(value C) *OptionalStage[V, C] {
	s.fallback = fallback[C]{set: true, value: value}
	return s
}

// WithOnUpdate registers a callback invoked after every successful publish.
func (s *OptionalStage[V, C]) WithOnUpdate(fn OnUpdate[V, C]) *OptionalStage[V, C] {
	s.onUpdate = fn
	return s
}

// WithOnFailure registers a callback invoked on every fetch or process
// failure, including recovered panics.
func (s *OptionalStage[V, C]) WithOnFailure(fn OnFailure[V]) *OptionalStage[V, C] {
	s.onFailure = fn
	return s
}

// WithMetrics registers a Metrics sink. See pkg/metrics/prometheus for a
// concrete implementation.
func (s *OptionalStage[V, C]) WithMetrics(metrics Metrics) *OptionalStage[V, C] {
	s.metrics = metrics
	return s
}

// WithLogger overrides the logr.Logger used for the default OnFailure
// logging (when no OnFailure callback is registered), instead of the
// package-wide log.Log. See pkg/refresh/refreshtest for a zap-backed
// example.
func (s *OptionalStage[V, C]) WithLogger(logger logr.Logger) *OptionalStage[V, C] {
	s.logger = logger
	s.hasLogger = true

	return s
}

// WithTaskExecution selects the cooperative-suspension refresher flavor
// (spec §5), joining the background refresher through group instead of a
// dedicated OS thread. If never called, Build defaults to the
// thread-backed flavor.
func (s *OptionalStage[V, C]) WithTaskExecution(group *errgroup.Group) *OptionalStage[V, C] {
	s.taskGroup = group
	return s
}

// Build validates fetch_interval, performs one synchronous refresh
// attempt, establishes the initial snapshot per the fallback policy,
// spawns the background refresher, and returns a ready-to-use Cache.
//
// Build returns a BuildError in two cases: fetch_interval is not positive
// (Field is "fetch_interval"), or the initial refresh fails and no fallback
// was configured (spec §4.6, §7).
func (s *OptionalStage[V, C]) Build(ctx context.Context) (*Cache[V, C], error) {
	if s.interval <= 0 {
		return nil, &BuildError{Field: "fetch_interval", Cause: ErrInvalidInterval}
	}

	// WithName applies to the thread-backed flavor only.
	name := s.name
	if s.taskGroup != nil {
		name = ""
	}

	c := &Cache[V, C]{
		source:    s.source,
		processor: s.processor,
		interval:  s.interval,
		name:      name,
		onUpdate:  s.onUpdate,
		onFailure: s.onFailure,
		metrics:   s.metrics,
		logger:    s.logger,
		hasLogger: s.hasLogger,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		refreshCh: make(chan *refreshRequest),
	}

	if err := c.attempt(ctx); err != nil {
		if !s.fallback.set {
			return nil, &BuildError{Cause: err}
		}

		c.cell.publish(&snapshot[V, C]{collection: s.fallback.value, meta: snapshotMeta{isFallback: true}})
	}

	if s.taskGroup != nil {
		startTaskRefresher(ctx, s.taskGroup, c)
	} else {
		startThreadRefresher(ctx, c)
	}

	attachFinalizer(c)

	return c, nil
}
