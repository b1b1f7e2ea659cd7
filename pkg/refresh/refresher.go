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
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// tracer is shared by both refresher flavors to wrap each attempt in a span,
// the same way pkg/server/middleware/opentelemetry wraps request handling.
var tracer = otel.Tracer("github.com/unikorn-cloud/hotcache/pkg/refresh")

// Cache is the running cache instance: the snapshot cell, the Source and
// Processor pair, the callbacks, the metrics handle, and the fallback
// policy. It is created by Builder.Build and mutated only by its
// refresher.
type Cache[V comparable, C any] struct {
	cell cell[V, C]

	source    Source[V]
	processor Processor[C]
	interval  time.Duration
	name      string

	onUpdate  OnUpdate[V, C]
	onFailure OnFailure[V]
	metrics   Metrics

	// logger, if hasLogger is true, replaces the package-wide log.Log as
	// the sink for the default OnFailure logging below. Builder.WithLogger
	// sets both; otherwise log.Log (whatever the process last configured
	// via log.SetLogger) is used, matching this stack's usual controller
	// and server wiring.
	logger    logr.Logger
	hasLogger bool

	lastCheck  atomic.Int64 // UnixNano, 0 = never
	lastUpdate atomic.Int64 // UnixNano, 0 = never

	stopCh       chan struct{}
	doneCh       chan struct{}
	refreshCh    chan *refreshRequest
	shutdownFlag atomic.Bool

	// pendingLock guards pending. Concurrent Refresh callers coalesce onto
	// a single request that the refresher has not yet started, rather than
	// each queuing their own,
	// adapted from pkg/util/cache's Invalidate/pending fields.
	pendingLock sync.Mutex
	pending     *refreshRequest

	// cancel is non-nil only for the task-backed flavor. Shutdown calls it
	// in addition to closing stopCh so that an in-flight, context-aware
	// Fetch/Process is cancelled rather than awaited to completion (spec
	// §5); the thread-backed flavor leaves this nil and Shutdown simply
	// waits for the current attempt to finish naturally.
	cancel context.CancelFunc
}

// refreshRequest is a synchronous invalidation request, adapted from
// pkg/util/cache's invalidationRequest: a client blocks on done until the
// refresher goroutine has run attempt() and recorded err.
type refreshRequest struct {
	done chan struct{}
	err  error
}

// attempt runs one fetch -> process -> publish cycle. It never returns a
// panic to its caller: Source and Processor panics are recovered here and
// degraded to OnFailure, matching spec §4.4's failure isolation guarantee.
// The returned error is non-nil only when the cycle did not result in
// Unchanged or a successful publish; Builder.Build inspects it to decide
// between success, fallback, and BuildError, while the refresher loops
// simply discard it (OnFailure has already been invoked internally).
func (c *Cache[V, C]) attempt(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "refresh.attempt")
	defer span.End()

	phase := PhaseFetch

	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)

			if phase == PhaseProcess {
				c.metrics.RecordProcessFailure()
				pe := &ProcessError{Phase: PhaseProcess, Cause: err}
				c.safeOnFailure(pe, PhaseProcess)
				err = pe
			} else {
				c.metrics.RecordFetchFailure()
				fe := &FetchError{Phase: PhaseFetch, Cause: err}
				c.safeOnFailure(fe, PhaseFetch)
				err = fe
			}

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var (
		prev   V
		prevOK bool
	)

	if s := c.cell.load(); s != nil && !s.meta.isFallback {
		prev, prevOK = s.version, true
	}

	fetchStart := time.Now()
	outcome := c.source.Fetch(ctx, prev, prevOK)
	fetchDuration := time.Since(fetchStart)

	switch outcome.kind {
	case outcomeUnchanged:
		c.metrics.RecordFetchSuccess()
		c.recordCheck()

		return nil

	case outcomeFailure:
		c.metrics.RecordFetchFailure()

		fe := &FetchError{Phase: PhaseFetch, Cause: outcome.cause}
		c.safeOnFailure(fe, PhaseFetch)

		span.RecordError(fe)
		span.SetStatus(codes.Error, fe.Error())

		return fe
	}

	// outcomeUpdated: always processed and, on success, always published --
	// version equality with the current snapshot is not treated as a no-op
	// (DESIGN.md, Open Question 3).
	c.metrics.RecordFetchSuccess()
	c.recordCheck()

	phase = PhaseProcess

	processStart := time.Now()
	collection, perr := c.processor.Process(outcome.payload)
	processDuration := time.Since(processStart)

	if perr != nil {
		c.metrics.RecordProcessFailure()

		pe := &ProcessError{Phase: PhaseProcess, Cause: perr}
		c.safeOnFailure(pe, PhaseProcess)

		span.RecordError(pe)
		span.SetStatus(codes.Error, pe.Error())

		return pe
	}

	c.cell.publish(&snapshot[V, C]{version: outcome.version, collection: collection})
	c.recordUpdate()

	c.metrics.RecordUpdate(fetchDuration, processDuration)
	c.safeOnUpdate(prev, prevOK, outcome.version, collection)

	return nil
}

// safeOnUpdate invokes the caller's OnUpdate, recovering any panic and
// degrading it to OnFailure(PhaseCallback).
func (c *Cache[V, C]) safeOnUpdate(previous V, previousOK bool, current V, collection C) {
	if c.onUpdate == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.safeOnFailure(&CallbackError{Phase: PhaseCallback, Cause: panicError(r)}, PhaseCallback)
		}
	}()

	c.onUpdate(previous, previousOK, current, collection)
}

// safeOnFailure invokes the caller's OnFailure, or logs via logr if none is
// registered. A panic inside OnFailure itself is recovered and logged, never
// re-delivered to OnFailure (recursion protection, spec §4.5).
func (c *Cache[V, C]) safeOnFailure(cause error, phase Phase) {
	logger := log.Log
	if c.hasLogger {
		logger = c.logger
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(panicError(r), "panic inside cache OnFailure callback swallowed", "cachePhase", phase.String())
		}
	}()

	if c.onFailure != nil {
		c.onFailure(cause, phase)
		return
	}

	logger.Error(cause, "cache refresh failed", "cachePhase", phase.String(), "cache", c.name)
}

func (c *Cache[V, C]) recordCheck() {
	c.lastCheck.Store(time.Now().UnixNano())
}

func (c *Cache[V, C]) recordUpdate() {
	now := time.Now().UnixNano()
	c.lastCheck.Store(now)
	c.lastUpdate.Store(now)
}
