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

// Package greedy computes the length of a shortest edit script with the forward greedy search of
// Myers' algorithm.
//
// The search expands furthest reaching d-paths from (0, 0) for d = 0, 1, 2, ... until one of them
// reaches (N, M). Only the endpoint of the furthest reaching path on each diagonal is kept, so the
// working memory is a single v-array; the path itself is forgotten. See package bisect for the
// variant that also produces the edit script.
package greedy

import (
	"znkr.io/editscript/internal/diagonal"
	"znkr.io/editscript/internal/seqview"
)

// Distance returns the minimal number of insertions and deletions that transform x into y.
func Distance[T any](x, y seqview.View[T], eq func(a, b T) bool) int {
	N, M := x.Len(), y.Len()
	dmax := N + M

	// The furthest reaching d-paths live on diagonals in [-M, N]. The table needs a second slot
	// for the empty case where the d=0 iteration reads v[1].
	v := diagonal.New(max(2, dmax+1))

	// A d=0 path starts with a "vertical" step from diagonal 1 at s=0.
	v.Set(1, 0)

	// A path deleting all of x and inserting all of y has length N+M, so this loop terminates
	// with d <= dmax.
	for d := 0; d <= dmax; d++ {
		// A d-path can't end on diagonals beyond the edit grid. Once d exceeds M (or N), the lower
		// (or upper) end of the range moves back inwards keeping the parity of d.
		kmin := -(d - 2*max(0, d-M))
		kmax := d - 2*max(0, d-N)

		for k := kmin; k <= kmax; k += 2 {
			// Pick the furthest reaching (d-1)-path on k+1 followed by a vertical step or on k-1
			// followed by a horizontal step. On ties the horizontal step (a deletion) wins.
			var s int
			if k == -d || k != d && v.Get(k-1) < v.Get(k+1) {
				s = v.Get(k + 1)
			} else {
				s = v.Get(k-1) + 1
			}
			t := s - k

			for s < N && t < M && eq(x.At(s), y.At(t)) {
				s++
				t++
			}
			v.Set(k, s)

			if s >= N && t >= M {
				return d
			}
		}
	}
	panic("never reached")
}
