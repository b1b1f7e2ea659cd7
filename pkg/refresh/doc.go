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

// Package refresh implements an in-process, always-hot cache over datasets
// small enough to live entirely in memory.
//
// A background refresher polls a Source on a fixed interval, hands the raw
// bytes it returns to a Processor, and atomically publishes the resulting
// Collection so that readers never block on I/O. When the Source is
// temporarily unavailable the last successful Collection remains visible.
//
// # Building a cache
//
//	c, err := refresh.NewBuilder[string, *refresh.Map[string, int]]().
//		WithSource(mySource).
//		WithProcessor(myProcessor).
//		WithInterval(30 * time.Second).
//		Build(ctx)
//
// Build performs one synchronous refresh before returning, so a successfully
// constructed Cache is immediately usable.
//
// # Logging
//
// Diagnostics that have no caller-registered OnFailure callback are logged
// through github.com/go-logr/logr, retrieved via
// sigs.k8s.io/controller-runtime/pkg/log, the same way the rest of this
// module's services wire up zap.
package refresh
