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

// Processor consumes a RawPayload fully and deterministically produces a
// Collection. On any failure the entire dataset is rejected; no partial
// snapshot is ever published.
type Processor[C any] interface {
	Process(payload RawPayload) (C, error)
}

// ProcessorFunc adapts a function to a Processor.
type ProcessorFunc[C any] func(payload RawPayload) (C, error)

// Process implements Processor.
func (f ProcessorFunc[C]) Process(payload RawPayload) (C, error) {
	return f(payload)
}
