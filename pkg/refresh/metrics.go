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

import "time"

// Metrics is an optional sink for cache observability. The methods are
// called by Build's initial refresh on the goroutine calling Build, and
// afterwards only from the refresher's own goroutine (the thread flavor's
// locked OS thread, or the task flavor's errgroup-managed goroutine), never
// concurrently, so implementations do not need to guard against concurrent
// calls from this package.
//
// See pkg/metrics/prometheus for a concrete implementation.
type Metrics interface {
	// RecordFetchSuccess is called on every Unchanged or Updated outcome.
	RecordFetchSuccess()
	// RecordFetchFailure is called on every Failure outcome from Source.Fetch.
	RecordFetchFailure()
	// RecordProcessFailure is called on every Processor.Process error.
	RecordProcessFailure()
	// RecordUpdate is called once per successful publish with the time
	// spent in Source.Fetch and Processor.Process respectively.
	RecordUpdate(fetch, process time.Duration)
}

// noopMetrics is used when the builder's metrics option is never set.
type noopMetrics struct{}

func (noopMetrics) RecordFetchSuccess()                        {}
func (noopMetrics) RecordFetchFailure()                        {}
func (noopMetrics) RecordProcessFailure()                      {}
func (noopMetrics) RecordUpdate(fetch, process time.Duration)  {}

var _ Metrics = noopMetrics{}
