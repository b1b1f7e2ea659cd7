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

package prometheus_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	hotprom "github.com/unikorn-cloud/hotcache/pkg/metrics/prometheus"
)

func TestMetricsRecordsCounters(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics := hotprom.New(registry, "testcache")

	metrics.RecordFetchSuccess()
	metrics.RecordFetchFailure()
	metrics.RecordProcessFailure()
	metrics.RecordUpdate(10*time.Millisecond, 5*time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	var foundCounters, foundDurations bool

	for _, family := range families {
		switch family.GetName() {
		case "hotcache_refresh_total":
			foundCounters = true

			require.Len(t, family.GetMetric(), 4)
		case "hotcache_refresh_duration_seconds":
			foundDurations = true

			require.Len(t, family.GetMetric(), 2)
		}
	}

	require.True(t, foundCounters)
	require.True(t, foundDurations)
}

func TestNewRegistersOncePerCache(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	hotprom.New(registry, "cache-a")
	hotprom.New(registry, "cache-b")

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == "hotcache_refresh_total" {
			require.Len(t, family.GetMetric(), 8)
		}
	}
}
