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

// Package lineproc implements the line-oriented Processor contract
// described in spec §4.2/§6: each line of a RawPayload is passed to a
// user-supplied function returning one of produce-entry, skip, or fail.
// Blank lines and comment lines are conventionally skipped, but the
// processor itself only ever aborts the whole dataset on fail.
package lineproc

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/unikorn-cloud/hotcache/pkg/refresh"
)

// Result is the three-valued outcome of a MapLineFunc/SetLineFunc
// invocation for a single line.
type Result int

const (
	// Accept means the line produced a valid entry.
	Accept Result = iota
	// Skip means the line is intentionally ignored (blank, comment, etc).
	Skip
	// Fail means the line is malformed; the whole dataset is rejected.
	Fail
)

// MapLineFunc parses a single line into a key/value entry.
type MapLineFunc[K comparable, Val any] func(line string) (key K, value Val, result Result, err error)

// SetLineFunc parses a single line into a set member.
type SetLineFunc[T comparable] func(line string) (member T, result Result, err error)

// SkipBlankAndComments wraps a MapLineFunc so that blank lines and lines
// beginning with "#" are skipped before fn ever sees them, the default
// convention spec §4.2 describes.
func SkipBlankAndComments[K comparable, Val any](fn MapLineFunc[K, Val]) MapLineFunc[K, Val] {
	return func(line string) (K, Val, Result, error) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			var zeroK K

			var zeroVal Val

			return zeroK, zeroVal, Skip, nil
		}

		return fn(line)
	}
}

// SkipBlankAndCommentsSet is SkipBlankAndComments for SetLineFunc.
func SkipBlankAndCommentsSet[T comparable](fn SetLineFunc[T]) SetLineFunc[T] {
	return func(line string) (T, Result, error) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			var zero T

			return zero, Skip, nil
		}

		return fn(line)
	}
}

// Map builds a refresh.Processor that scans payload line by line, applying
// fn to each, and assembles the accepted entries into a refresh.Map. A
// single Fail aborts the entire dataset; nothing partial is ever returned.
func Map[K comparable, Val any](fn MapLineFunc[K, Val]) refresh.Processor[*refresh.Map[K, Val]] {
	return refresh.ProcessorFunc[*refresh.Map[K, Val]](func(payload refresh.RawPayload) (*refresh.Map[K, Val], error) {
		entries := map[K]Val{}

		scanner := bufio.NewScanner(bytes.NewReader(payload))

		lineNo := 0

		for scanner.Scan() {
			lineNo++

			key, value, result, err := fn(scanner.Text())

			switch result {
			case Skip:
				continue
			case Fail:
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			case Accept:
				entries[key] = value
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scanning payload: %w", err)
		}

		return refresh.NewMap(entries), nil
	})
}

// Set builds a refresh.Processor that scans payload line by line, applying
// fn to each, and assembles the accepted entries into a refresh.Set.
func Set[T comparable](fn SetLineFunc[T]) refresh.Processor[*refresh.Set[T]] {
	return refresh.ProcessorFunc[*refresh.Set[T]](func(payload refresh.RawPayload) (*refresh.Set[T], error) {
		members := make([]T, 0)

		scanner := bufio.NewScanner(bytes.NewReader(payload))

		lineNo := 0

		for scanner.Scan() {
			lineNo++

			member, result, err := fn(scanner.Text())

			switch result {
			case Skip:
				continue
			case Fail:
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			case Accept:
				members = append(members, member)
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scanning payload: %w", err)
		}

		return refresh.NewSet(members), nil
	})
}
