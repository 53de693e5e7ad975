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

// Package seqview provides copy-free windows into a shared backing slice.
//
// A View records an offset and a length into storage that is shared by every view derived from
// it. Sub-views compose offsets, so an index reported by any view can be translated back into an
// index of the backing slice with [View.Start].
package seqview

import "fmt"

// View is a window x[off:off+n] into a shared backing slice.
//
// Views are small values and meant to be passed by value. They never copy or modify the backing
// slice.
type View[T any] struct {
	data []T
	off  int
	n    int
}

// Of returns a view covering all of data.
func Of[T any](data []T) View[T] {
	return View[T]{data: data, off: 0, n: len(data)}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return v.n }

// Start returns the offset of the view in the backing slice.
func (v View[T]) Start() int { return v.off }

// End returns the offset one past the last element of the view in the backing slice.
func (v View[T]) End() int { return v.off + v.n }

// At returns the i-th element of the view. It panics if i is not in [0, Len()).
func (v View[T]) At(i int) T {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("seqview: index %d out of range [0:%d]", i, v.n))
	}
	return v.data[v.off+i]
}

// Slice returns the view v[lo:hi] that shares the backing slice with v. It panics unless
// 0 <= lo <= hi <= Len().
func (v View[T]) Slice(lo, hi int) View[T] {
	if lo < 0 || hi < lo || hi > v.n {
		panic(fmt.Sprintf("seqview: slice bounds [%d:%d] out of range [0:%d]", lo, hi, v.n))
	}
	return View[T]{data: v.data, off: v.off + lo, n: hi - lo}
}
