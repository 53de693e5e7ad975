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

// Package bisect computes shortest edit scripts with the linear space variant of Myers'
// algorithm.
//
// # Edit graph
//
// For inputs x = "ABCABBA" and y = "CBABAC" all possible edits form the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A horizontal edge deletes an element of x, a vertical edge inserts an element of y, and a
// diagonal edge is a match. A shortest edit script is a path from (0,0) to (N,M) with the fewest
// horizontal and vertical edges. We use s and t for the horizontal and vertical coordinates and
// k = s - t for diagonals.
//
// A d-path is a path with exactly d non-diagonal edges. A d-path ends on a diagonal in
// {-d, -d+2, ..., d-2, d}, and the furthest reaching d-path on diagonal k is a furthest reaching
// (d-1)-path on k-1 followed by a horizontal edge, or on k+1 followed by a vertical edge, followed
// by as many diagonal edges as possible (a snake).
//
// # Middle snake
//
// Instead of remembering every d-path, we search forwards from (0,0) and backwards from (N,M) at
// the same time. The backward search runs on the reversed inputs, so its diagonal k corresponds to
// the forward diagonal (N-M)-k. When the two frontiers overlap on some diagonal, the snake that
// caused the overlap lies on a shortest path. The inputs are split at that snake and both halves
// are solved recursively. Since only the current v-arrays are needed, the working memory per level
// is linear.
//
// The length of a shortest path has the same parity as N-M. If it's odd, the overlap happens
// during a forward iteration, otherwise during a backward iteration, so each direction only needs
// to check for overlaps for one parity.
//
// Common prefixes and suffixes are removed before each split. Without them, both halves of a split
// have a strictly shorter path than the whole, which guarantees progress.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package bisect

import (
	"znkr.io/editscript/internal/diagonal"
	"znkr.io/editscript/internal/edits"
	"znkr.io/editscript/internal/seqview"
)

// Script returns a shortest edit script that transforms x into y.
//
// Indices in the script refer to the backing slices of x and y. If iterative is set, the
// recursion is replaced by an explicit stack. The result is the same in both cases.
func Script[T any](x, y seqview.View[T], eq func(a, b T) bool, iterative bool) []edits.Edit {
	var b builder[T]
	b.eq = eq

	// Both v-arrays of every level fit into the space needed for the top level. Allocate it once
	// and reuse it.
	b.buf = make([]int, 2*vlen(x.Len(), y.Len()))

	if iterative {
		b.compareIter(x, y)
	} else {
		b.compare(x, y)
	}
	return b.out
}

type builder[T any] struct {
	eq  func(a, b T) bool
	buf []int
	out []edits.Edit
}

type task[T any] struct {
	x, y seqview.View[T]
}

// vlen returns the capacity of a v-array for inputs of length n and m.
//
// Within one iteration, a search reads and writes at most 2*min(n,m)+2 consecutive diagonals.
// With an even capacity, a slot is never shared by diagonals of different parity.
func vlen(n, m int) int {
	return 2*min(n, m) + 2
}

// bounds returns the range of diagonals to search for d-paths in an n x m grid.
func bounds(d, n, m int) (kmin, kmax int) {
	kmin = -(d - 2*max(0, d-m))
	kmax = d - 2*max(0, d-n)
	return
}

func (b *builder[T]) compare(x, y seqview.View[T]) {
	x, y = b.trim(x, y)
	if b.trivial(x, y) {
		return
	}
	s0, s1, t0, t1 := b.split(x, y)
	b.compare(x.Slice(0, s0), y.Slice(0, t0))
	b.compare(x.Slice(s1, x.Len()), y.Slice(t1, y.Len()))
}

func (b *builder[T]) compareIter(x, y seqview.View[T]) {
	stack := []task[T]{{x, y}}
	for len(stack) > 0 {
		tk := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := b.trim(tk.x, tk.y)
		if b.trivial(x, y) {
			continue
		}
		s0, s1, t0, t1 := b.split(x, y)

		// Push the second half first, so that edits are emitted in order.
		stack = append(stack,
			task[T]{x.Slice(s1, x.Len()), y.Slice(t1, y.Len())},
			task[T]{x.Slice(0, s0), y.Slice(0, t0)},
		)
	}
}

// trim removes the common prefix and suffix of x and y.
func (b *builder[T]) trim(x, y seqview.View[T]) (seqview.View[T], seqview.View[T]) {
	N, M := x.Len(), y.Len()
	smin, tmin := 0, 0
	for smin < N && tmin < M && b.eq(x.At(smin), y.At(tmin)) {
		smin++
		tmin++
	}
	smax, tmax := N, M
	for smax > smin && tmax > tmin && b.eq(x.At(smax-1), y.At(tmax-1)) {
		smax--
		tmax--
	}
	return x.Slice(smin, smax), y.Slice(tmin, tmax)
}

// trivial emits the edits for x and y if one of them is empty and reports whether it did.
func (b *builder[T]) trivial(x, y seqview.View[T]) bool {
	switch {
	case y.Len() == 0:
		// Everything in x is a deletion.
		for s := x.Start(); s < x.End(); s++ {
			b.out = append(b.out, edits.Del(s))
		}
		return true
	case x.Len() == 0:
		// Everything in y is an insertion, all of them at the position of x.
		for t := y.Start(); t < y.End(); t++ {
			b.out = append(b.out, edits.Ins(x.Start(), t))
		}
		return true
	default:
		return false
	}
}

// split finds a middle snake of a shortest path from (0,0) to (N,M) and returns its start
// (s0, t0) and end (s1, t1).
//
// Important: x and y must not be empty and must not have a common prefix or suffix.
func (b *builder[T]) split(x, y seqview.View[T]) (s0, s1, t0, t1 int) {
	N, M := x.Len(), y.Len()
	eq := b.eq

	c := vlen(N, M)
	vf := diagonal.Over(b.buf[:c])
	vb := diagonal.Over(b.buf[c : 2*c])

	delta := N - M
	odd := delta%2 != 0

	// Diagonals written by the last forward and backward iteration respectively. Empty until the
	// first iteration is done.
	fmin, fmax := 1, 0
	bmin, bmax := 1, 0

	// There is a path of length N+M, so there must be an overlap once d reaches ⌈(N+M)/2⌉.
	for d := 0; d <= (N+M+1)/2; d++ {
		// Forwards iteration.
		fmin, fmax = bounds(d, N, M)
		for k := fmin; k <= fmax; k += 2 {
			var s int
			if k == -d || k != d && vf.Get(k-1) < vf.Get(k+1) {
				s = vf.Get(k + 1)
			} else {
				// Ties prefer deletions over insertions.
				s = vf.Get(k-1) + 1
			}
			t := s - k

			ps, pt := s, t
			for s < N && t < M && eq(x.At(s), y.At(t)) {
				s++
				t++
			}
			vf.Set(k, s)

			// Check for an overlap with the backward (d-1)-paths.
			if odd {
				if r := delta - k; bmin <= r && r <= bmax && s+vb.Get(r) >= N {
					return ps, s, pt, t
				}
			}
		}

		// Backwards iteration.
		//
		// This is the forward iteration on the reversed inputs. Here s and t count the elements
		// from the end of x and y.
		bmin, bmax = bounds(d, N, M)
		for k := bmin; k <= bmax; k += 2 {
			var s int
			if k == -d || k != d && vb.Get(k-1) < vb.Get(k+1) {
				s = vb.Get(k + 1)
			} else {
				s = vb.Get(k-1) + 1
			}
			t := s - k

			ps, pt := s, t
			for s < N && t < M && eq(x.At(N-1-s), y.At(M-1-t)) {
				s++
				t++
			}
			vb.Set(k, s)

			// Check for an overlap with the forward d-paths.
			if !odd {
				if f := delta - k; fmin <= f && f <= fmax && s+vf.Get(f) >= N {
					return N - s, N - ps, M - t, M - pt
				}
			}
		}
	}
	panic("never reached")
}
