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

// fallback carries the optional seed collection published when the initial
// synchronous refresh fails. It is consumed at most once: Build either
// discards it (initial fetch succeeded) or publishes it and then lets the
// refresher replace it on the first real success.
type fallback[C any] struct {
	set   bool
	value C
}

// snapshotMeta carries the bookkeeping published alongside a Collection:
// whether this snapshot is the synthetic fallback, which must never be
// mistaken for a real prior version when computing "previous" for the next
// Fetch call (spec §4.6).
type snapshotMeta struct {
	isFallback bool
}
