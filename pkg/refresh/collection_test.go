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

package refresh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/hotcache/pkg/refresh"
)

func TestMapGetPtr(t *testing.T) {
	t.Parallel()

	m := refresh.NewMap(map[string]int{"a": 1})

	got := m.GetPtr("a")
	require.NotNil(t, got)
	require.Equal(t, 1, *got)

	require.Nil(t, m.GetPtr("missing"))
}

func TestObjectValue(t *testing.T) {
	t.Parallel()

	type config struct {
		Name string
	}

	o := refresh.NewObject(&config{Name: "test"})
	require.Equal(t, "test", o.Value().Name)
}
