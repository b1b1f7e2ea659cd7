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

import "context"

// RawPayload is the opaque byte stream handed from a Source to a Processor.
// Its internal structure is purely a Source/Processor agreement.
type RawPayload []byte

// outcomeKind discriminates the three Outcome variants.
type outcomeKind int

const (
	outcomeUnchanged outcomeKind = iota
	outcomeUpdated
	outcomeFailure
)

// Outcome is the result of a single Source.Fetch call. Exactly one of the
// three variants is populated, constructed via Unchanged, Updated, or
// Failure below.
type Outcome[V comparable] struct {
	kind    outcomeKind
	version V
	payload RawPayload
	cause   error
}

// Unchanged reports that the upstream dataset is confirmed equal to the
// version passed into Fetch. No payload is returned.
func Unchanged[V comparable]() Outcome[V] {
	return Outcome[V]{kind: outcomeUnchanged}
}

// Updated reports that the upstream dataset has (possibly new) data at
// version, carried in payload. The refresher treats this authoritatively:
// it is always processed and, on success, always published, even if version
// happens to equal the version of the currently published snapshot (see
// DESIGN.md, Open Question 3).
func Updated[V comparable](version V, payload RawPayload) Outcome[V] {
	return Outcome[V]{kind: outcomeUpdated, version: version, payload: payload}
}

// Failure reports that the fetch could not be completed. The refresher does
// not interpret cause beyond surfacing it to OnFailure and metrics.
func Failure[V comparable](cause error) Outcome[V] {
	return Outcome[V]{kind: outcomeFailure, cause: cause}
}

// Source is a conditional fetch of raw bytes given a prior version. Sources
// that cannot detect "unchanged" upstream MUST always return Updated;
// correctness is preserved, efficiency is reduced.
//
// Sources SHOULD be cancel-safe: if the refresher cancels a fetch (during
// shutdown or timeout) partial side effects are tolerable, but the Source
// must not corrupt subsequent fetches.
type Source[V comparable] interface {
	// Fetch retrieves the dataset if it differs from previous. previous is
	// the version of the most recently published successful snapshot, or
	// the zero value of V with ok=false if there has not yet been one.
	Fetch(ctx context.Context, previous V, ok bool) Outcome[V]
}

// SourceFunc adapts a function to a Source, the way many single-method
// collaborators in this module are exposed (see pkg/messaging.Consumer in
// the sibling core module for the analogous pattern).
type SourceFunc[V comparable] func(ctx context.Context, previous V, ok bool) Outcome[V]

// Fetch implements Source.
func (f SourceFunc[V]) Fetch(ctx context.Context, previous V, ok bool) Outcome[V] {
	return f(ctx, previous, ok)
}
