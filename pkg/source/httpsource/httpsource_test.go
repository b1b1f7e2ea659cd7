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

package httpsource_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/hotcache/pkg/refresh"
	"github.com/unikorn-cloud/hotcache/pkg/source/httpsource"
)

func TestFetchUpdatedThenUnchanged(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++

		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", `"v1"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	source := httpsource.New(httpsource.Options{URL: server.URL, Timeout: 5 * time.Second})

	cache, err := refresh.NewBuilder[string, refresh.RawPayload]().
		WithSource(source).
		WithProcessor(refresh.ProcessorFunc[refresh.RawPayload](func(p refresh.RawPayload) (refresh.RawPayload, error) {
			return p, nil
		})).
		WithInterval(time.Hour).
		Build(t.Context())
	require.NoError(t, err)

	t.Cleanup(cache.Shutdown)

	payload, version, ok := cache.Snapshot()
	require.True(t, ok)
	require.Equal(t, `"v1"`, version)
	require.Equal(t, refresh.RawPayload("hello"), payload)

	require.NoError(t, cache.Refresh())
	require.Equal(t, 2, hits)
}

func TestFetchRejectsOtherStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := httpsource.New(httpsource.Options{URL: server.URL, Timeout: 5 * time.Second})

	_, err := refresh.NewBuilder[string, refresh.RawPayload]().
		WithSource(source).
		WithProcessor(refresh.ProcessorFunc[refresh.RawPayload](func(p refresh.RawPayload) (refresh.RawPayload, error) {
			return p, nil
		})).
		WithInterval(time.Hour).
		Build(t.Context())
	require.Error(t, err)
}

func TestFetchSendsBearerToken(t *testing.T) {
	t.Parallel()

	var seen string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Header().Set("ETag", `"v1"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	source := httpsource.New(httpsource.Options{URL: server.URL, Timeout: 5 * time.Second, BearerToken: "secret"})

	source.Fetch(t.Context(), "", false)

	require.Equal(t, "Bearer secret", seen)
}
