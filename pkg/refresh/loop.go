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
)

// loop is the refresher's state machine, shared by both execution flavors
// (refresher_thread.go, refresher_task.go). It implements the Idle ->
// Sleeping -> Fetching -> {Processing -> Publishing | Sleeping} cycle of
// spec §4.4 by delegating each Fetching/Processing/Publishing step to
// attempt, and sleeping on a time.Timer in between.
//
// fetch_interval is measured from the END of one attempt to the START of
// the next, not from fixed wall-clock offsets: a time.Ticker would fire on
// its own schedule regardless of how long attempt took, shrinking the gap
// after a slow attempt. The timer is therefore only armed via Reset once
// attempt returns, whether it was triggered by the timer itself or by a
// manual Refresh request racing ahead of it.
//
// The only suspension points are: the timer, the stop signal, a manual
// Refresh request, and whatever Source.Fetch/Processor.Process do
// internally -- satisfying spec §5's requirement that every other
// operation has bounded, non-suspending cost.
func (c *Cache[V, C]) loop(ctx context.Context) {
	defer close(c.doneCh)

	timer := time.NewTimer(c.interval)
	defer timer.Stop()

	for {
		select {
		case <-c.stopCh:
			close(c.refreshCh)
			return

		case <-ctx.Done():
			close(c.refreshCh)
			return

		case request := <-c.refreshCh:
			// This request is about to be attempted: clear pending so
			// that the next Refresh caller creates its own request
			// instead of coalescing onto one that's already in flight.
			c.pendingLock.Lock()
			c.pending = nil
			c.pendingLock.Unlock()

			request.err = c.attempt(ctx)
			close(request.done)

			stopAndDrainTimer(timer)
			timer.Reset(c.interval)

		case <-timer.C:
			_ = c.attempt(ctx)

			timer.Reset(c.interval)
		}
	}
}

// stopAndDrainTimer stops timer and drains any pending fire that raced
// with the stop, the standard idiom for safely Reset-ing a time.Timer that
// might already have fired (time.Timer.Reset's own documentation calls
// this out as a prerequisite).
func stopAndDrainTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
