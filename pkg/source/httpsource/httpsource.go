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

// Package httpsource implements a refresh.Source that conditionally GETs a
// URL, using the ETag response header as the Version token. This lets the
// upstream server, rather than the cache, decide what "unchanged" means,
// which spec §4.1 allows as a Version implementation for HTTP-backed data.
package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/unikorn-cloud/hotcache/pkg/refresh"
)

// Source polls a single HTTP resource, using its ETag as the Version.
type Source struct {
	client *http.Client
	url    string
	bearer string
}

var _ refresh.Source[string] = (*Source)(nil)

// New builds a Source from opts, with its own http.Client whose Timeout is
// opts.Timeout.
func New(opts Options) *Source {
	return &Source{
		client: &http.Client{Timeout: opts.Timeout},
		url:    opts.URL,
		bearer: opts.BearerToken,
	}
}

// Fetch issues a GET, setting If-None-Match to previous when ok is true. A
// 304 response yields Unchanged; a 200 yields Updated with the ETag header
// as the new version; any other status or transport error yields Failure.
func (s *Source) Fetch(ctx context.Context, previous string, ok bool) refresh.Outcome[string] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return refresh.Failure[string](fmt.Errorf("building request: %w", err))
	}

	if ok && previous != "" {
		req.Header.Set("If-None-Match", previous)
	}

	if s.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+s.bearer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return refresh.Failure[string](fmt.Errorf("performing request: %w", err))
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return refresh.Unchanged[string]()

	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return refresh.Failure[string](fmt.Errorf("reading response body: %w", err))
		}

		return refresh.Updated(resp.Header.Get("ETag"), refresh.RawPayload(body))

	default:
		return refresh.Failure[string](fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.url))
	}
}
