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
	"runtime"
	"runtime/pprof"
)

// startThreadRefresher runs the refresher on a dedicated goroutine pinned
// to its own OS thread for its entire lifetime via runtime.LockOSThread --
// the idiomatic Go rendering of spec §5's thread-backed flavor, where
// Source.Fetch and Processor.Process are free to block without parking
// any other goroutine's underlying M.
//
// Shutdown does not cancel ctx: it only closes stopCh and waits for the
// loop to observe it, so an in-flight blocking Fetch/Process always runs
// to completion (spec §5: "in the thread flavor, shutdown waits for it to
// complete").
//
// If c.name was set via WithName, the goroutine is tagged with a pprof
// label so it's identifiable in a stack dump or profile -- the closest Go
// analog to naming a dedicated OS thread. The name also appears as the
// "cache" field of the default failure log line. Build clears it for the
// task flavor, so WithName has no effect there.
func startThreadRefresher[V comparable, C any](ctx context.Context, c *Cache[V, C]) {
	run := func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		c.loop(ctx)
	}

	go func() {
		if c.name == "" {
			run()
			return
		}

		pprof.Do(ctx, pprof.Labels("cache", c.name), func(context.Context) { run() })
	}()
}
