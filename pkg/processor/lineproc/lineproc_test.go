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

package lineproc_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/hotcache/pkg/processor/lineproc"
	"github.com/unikorn-cloud/hotcache/pkg/refresh"
)

func TestMapAcceptsAndSkips(t *testing.T) {
	t.Parallel()

	fn := lineproc.SkipBlankAndComments(func(line string) (string, int, lineproc.Result, error) {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return "", 0, lineproc.Fail, errMalformed(line)
		}

		val, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", 0, lineproc.Fail, err
		}

		return parts[0], val, lineproc.Accept, nil
	})

	processor := lineproc.Map(fn)

	collection, err := processor.Process(refresh.RawPayload("# comment\n\nalpha=1\nbeta=2\n"))
	require.NoError(t, err)
	require.Equal(t, 2, collection.Len())

	v, ok := collection.Get("alpha")
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = collection.Get("beta")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestMapFailsDatasetOnMalformedLine(t *testing.T) {
	t.Parallel()

	fn := lineproc.SkipBlankAndComments(func(line string) (string, int, lineproc.Result, error) {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return "", 0, lineproc.Fail, errMalformed(line)
		}

		return parts[0], 0, lineproc.Accept, nil
	})

	processor := lineproc.Map(fn)

	_, err := processor.Process(refresh.RawPayload("alpha=1\nnotkv\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestSetAcceptsAndSkips(t *testing.T) {
	t.Parallel()

	fn := lineproc.SkipBlankAndCommentsSet(func(line string) (string, lineproc.Result, error) {
		return strings.TrimSpace(line), lineproc.Accept, nil
	})

	processor := lineproc.Set(fn)

	collection, err := processor.Process(refresh.RawPayload("# a set\nalpha\n\nbeta\n"))
	require.NoError(t, err)
	require.Equal(t, 2, collection.Len())
	require.True(t, collection.Contains("alpha"))
	require.True(t, collection.Contains("beta"))
}

type malformedLineError struct {
	line string
}

func (e *malformedLineError) Error() string {
	return "malformed line: " + e.line
}

func errMalformed(line string) error {
	return &malformedLineError{line: line}
}
