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
	"runtime"
	"time"
)

// Snapshot returns the collection and version of the currently published
// snapshot, and false if the cache has never published one (which cannot
// happen for a Cache returned by a successful Builder.Build, but can be
// reached by a zero-value Cache in tests).
func (c *Cache[V, C]) Snapshot() (collection C, version V, ok bool) {
	s := c.cell.load()
	if s == nil {
		var zeroC C

		var zeroV V

		return zeroC, zeroV, false
	}

	return s.collection, s.version, true
}

// LastSuccessfulCheck returns the time of the most recent Unchanged or
// Updated outcome, and false if none has occurred yet.
func (c *Cache[V, C]) LastSuccessfulCheck() (time.Time, bool) {
	return unixNanoToTime(c.lastCheck.Load())
}

// LastSuccessfulUpdate returns the time of the most recent successful
// publish, and false if none has occurred yet. It is monotonic
// non-decreasing across the cache's lifetime and always <=
// LastSuccessfulCheck.
func (c *Cache[V, C]) LastSuccessfulUpdate() (time.Time, bool) {
	return unixNanoToTime(c.lastUpdate.Load())
}

func unixNanoToTime(nanos int64) (time.Time, bool) {
	if nanos == 0 {
		return time.Time{}, false
	}

	return time.Unix(0, nanos), true
}

// Refresh performs a synchronous refresh and only returns once it has
// completed, guaranteeing on success that the cache reflects any upstream
// change visible at the time Refresh was called. Concurrent callers coalesce
// onto a single refresh that the refresher has not yet started, rather than
// each queuing their own; a caller arriving while an attempt is already
// running waits for a fresh one. Adapted from pkg/util/cache's Invalidate.
func (c *Cache[V, C]) Refresh() error {
	c.pendingLock.Lock()

	if c.pending != nil {
		request := c.pending
		c.pendingLock.Unlock()

		<-request.done

		return request.err
	}

	request := &refreshRequest{done: make(chan struct{})}
	c.pending = request
	c.pendingLock.Unlock()

	if err := c.sendRefresh(request); err != nil {
		return err
	}

	<-request.done

	return request.err
}

// sendRefresh sends request to the refresher goroutine, recovering the
// panic that results from sending on a channel closed by Shutdown.
func (c *Cache[V, C]) sendRefresh(request *refreshRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			request.err = ErrShutdown

			c.pendingLock.Lock()
			c.pending = nil
			c.pendingLock.Unlock()

			close(request.done)

			err = ErrShutdown
		}
	}()

	if c.shutdownFlag.Load() {
		request.err = ErrShutdown

		c.pendingLock.Lock()
		c.pending = nil
		c.pendingLock.Unlock()

		close(request.done)

		return ErrShutdown
	}

	c.refreshCh <- request

	return nil
}

// Shutdown signals the refresher to stop and blocks until it has. It is
// idempotent: calling it more than once, or concurrently, is safe. After
// Shutdown returns, no further OnUpdate or OnFailure callback fires and no
// further refreshes occur.
func (c *Cache[V, C]) Shutdown() {
	if !c.shutdownFlag.CompareAndSwap(false, true) {
		<-c.doneCh
		return
	}

	close(c.stopCh)

	if c.cancel != nil {
		c.cancel()
	}

	<-c.doneCh
}

// attachFinalizer arranges for Shutdown to run, best-effort, if the last
// reference to c is dropped without an explicit call -- the closest
// approximation to spec §4.8's "drop of the last handle initiates
// shutdown" available in a garbage-collected language.
func attachFinalizer[V comparable, C any](c *Cache[V, C]) {
	runtime.SetFinalizer(c, func(c *Cache[V, C]) {
		c.Shutdown()
	})
}
