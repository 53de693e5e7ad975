// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package editscript

import "znkr.io/editscript/internal/edits"

// Apply replays p against x and returns the result. New elements are taken from y.
//
// Apply panics if p is not a well formed script for x and y, e.g. if it's not ordered or if an
// index is out of range.
func Apply[T any](p Patch, x, y []T) []T {
	if err := edits.Validate(p, len(x), len(y)); err != nil {
		panic("editscript: malformed patch: " + err.Error())
	}

	ins, del := p.Stat()
	out := make([]T, 0, len(x)-del+ins)
	i := 0
	for s := 0; s <= len(x); s++ {
		for i < len(p) && p[i].Old == s && p[i].Op == Insert {
			out = append(out, y[p[i].New])
			i++
		}
		if s == len(x) {
			break
		}
		if i < len(p) && p[i].Old == s && p[i].Op == Delete {
			i++
			continue
		}
		out = append(out, x[s])
	}
	return out
}
