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
	"errors"
	"fmt"
)

var (
	// ErrMissingField names the missing-required-field build failure. The
	// typestate Builder cannot reach Build without every required field, so
	// Build never returns it.
	ErrMissingField = errors.New("required cache field not set")
	// ErrInvalidInterval is wrapped into a BuildError when fetch_interval is zero.
	ErrInvalidInterval = errors.New("fetch interval must be greater than zero")
	// ErrShutdown is returned from Refresh (and Invalidate-style callers)
	// once the cache has been shut down.
	ErrShutdown = errors.New("cache is shut down")
	// ErrNotReady describes a cache with no published snapshot. The read
	// accessors do not return it: Snapshot, Get and Contains report that
	// state as ok=false (or false) instead.
	ErrNotReady = errors.New("cache has no published snapshot")
)

// BuildError is returned from Builder.Build when construction cannot
// proceed: either fetch_interval is invalid, or the initial synchronous
// refresh failed with no fallback configured.
type BuildError struct {
	Field string
	Cause error
}

func (e *BuildError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cache build failed: %s: %s", e.Field, e.Cause)
	}

	return fmt.Sprintf("cache build failed: %s", e.Cause)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// FetchError wraps a Source.Fetch failure (or recovered panic) with the
// phase it occurred in, always PhaseFetch.
type FetchError struct {
	Phase Phase
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source fetch failed: %s", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ProcessError wraps a Processor.Process failure (or recovered panic) with
// the phase it occurred in, always PhaseProcess.
type ProcessError struct {
	Phase Phase
	Cause error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("processor failed: %s", e.Cause)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// CallbackError wraps a panic recovered from a user-supplied OnUpdate or
// OnFailure callback. It is itself only ever passed to OnFailure, and a
// failure raised from within that second call is swallowed rather than
// recursing (spec §4.5).
type CallbackError struct {
	Phase Phase
	Cause error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback panicked: %s", e.Cause)
}

func (e *CallbackError) Unwrap() error {
	return e.Cause
}

// panicError turns a recover() value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}

	return fmt.Errorf("panic: %v", v)
}
