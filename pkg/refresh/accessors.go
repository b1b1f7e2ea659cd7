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

// Get performs a zero-copy read of a single entry from a cache whose
// Collection is a Map view. It is a free function rather than a method
// because Go generics do not support specializing Cache's methods by the
// instantiated Collection type parameter.
func Get[V comparable, K comparable, Val any](c *Cache[V, *Map[K, Val]], key K) (Val, bool) {
	collection, _, ok := c.Snapshot()
	if !ok {
		var zero Val

		return zero, false
	}

	return collection.Get(key)
}

// Contains performs a zero-copy membership test against a cache whose
// Collection is a Set view.
func Contains[V comparable, T comparable](c *Cache[V, *Set[T]], item T) bool {
	collection, _, ok := c.Snapshot()
	if !ok {
		return false
	}

	return collection.Contains(item)
}
