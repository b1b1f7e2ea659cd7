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

// OnUpdate is invoked exactly once per successful publish, after the swap
// is visible to readers. previousOK is false only for the very first
// publish (including a fallback-then-real-update transition, since the
// fallback's sentinel version is never surfaced as a "previous" value).
// The callback runs on the refresher's goroutine (for the publish made by
// Build's initial refresh, on the goroutine calling Build); it MUST NOT
// block long.
type OnUpdate[V comparable, C any] func(previous V, previousOK bool, current V, collection C)

// OnFailure is invoked on each fetch or process failure, and on a recovered
// panic from Source, Processor, or a callback. A failure raised from
// within OnFailure itself is swallowed, not re-delivered.
type OnFailure[V comparable] func(cause error, phase Phase)
