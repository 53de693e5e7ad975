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

import (
	"znkr.io/editscript/internal/bisect"
	"znkr.io/editscript/internal/config"
	"znkr.io/editscript/internal/edits"
	"znkr.io/editscript/internal/greedy"
	"znkr.io/editscript/internal/seqview"
)

// Op describes an edit operation.
type Op = edits.Op

const (
	Insert = edits.Insert // An insertion of an element from y
	Delete = edits.Delete // A deletion of an element from x
)

// Edit describes a single edit of a script.
//
//   - For Insert, y[New] is inserted in front of x[Old]. If Old is len(x), the element is appended.
//   - For Delete, x[Old] is removed and New is -1.
type Edit = edits.Edit

// Patch is an edit script.
//
// Edits are ordered by Old. If there is an insertion and a deletion with the same Old, the
// insertion comes first. Insertions appear in the order of New.
type Patch []Edit

// Len returns the number of edits in p.
func (p Patch) Len() int { return len(p) }

// Stat returns the number of insertions and deletions in p.
func (p Patch) Stat() (ins, del int) { return edits.Stat(p) }

// Distance returns the length of a shortest edit script that transforms x into y.
//
// Distance is cheaper than computing the script with [Script] if only the length is needed.
func Distance[T comparable](x, y []T) int {
	return greedy.Distance(seqview.Of(x), seqview.Of(y), equal[T])
}

// DistanceFunc returns the length of a shortest edit script that transforms x into y using the
// provided equality comparison.
func DistanceFunc[T any](x, y []T, eq func(a, b T) bool) int {
	return greedy.Distance(seqview.Of(x), seqview.Of(y), eq)
}

// Script compares the contents of x and y and returns a shortest edit script that transforms x
// into y.
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [editscript.Iterative], [editscript.Verify]
//
// Important: The output is minimal, but if there are several scripts of minimal length, the one
// chosen may change with minor version upgrades.
func Script[T comparable](x, y []T, opts ...Option) Patch {
	return ScriptFunc(x, y, equal[T], opts...)
}

// ScriptFunc compares the contents of x and y using the provided equality comparison and returns
// a shortest edit script that transforms x into y.
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [editscript.Iterative], [editscript.Verify]
func ScriptFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) Patch {
	cfg := config.FromOptions(opts, config.Iterative|config.Verify)
	p := Patch(bisect.Script(seqview.Of(x), seqview.Of(y), eq, cfg.Iterative))
	if cfg.Verify {
		verify(p, x, y, eq)
	}
	return p
}

func verify[T any](p Patch, x, y []T, eq func(a, b T) bool) {
	z := Apply(p, x, y)
	if len(z) != len(y) {
		panic("editscript: script does not reproduce y")
	}
	for i := range z {
		if !eq(z[i], y[i]) {
			panic("editscript: script does not reproduce y")
		}
	}
}

func equal[T comparable](a, b T) bool { return a == b }
