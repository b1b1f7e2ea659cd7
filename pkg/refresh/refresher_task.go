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

	"golang.org/x/sync/errgroup"
)

// startTaskRefresher runs the refresher as a task joined through group, the
// cooperative-suspension flavor of spec §5. Unlike the thread flavor it
// does not pin an OS thread: the refresher is an ordinary goroutine whose
// only long suspensions are inside Source.Fetch/Processor.Process, every
// other operation being the bounded select in loop.
//
// Shutdown cancels the derived context in addition to closing stopCh, so a
// context-aware Fetch/Process in flight is cancelled rather than awaited
// (spec §5: "in the cooperative flavor... it is cancelled").
func startTaskRefresher[V comparable, C any](ctx context.Context, group *errgroup.Group, c *Cache[V, C]) {
	taskCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	group.Go(func() error {
		c.loop(taskCtx)
		return nil
	})
}
