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

// Package textdiff provides functions to compute and apply edit scripts between texts line by
// line.
//
// A line is a sequence of bytes terminated by '\n', the last line of a text may be unterminated.
// Lines are compared including their newline character, so "foo" and "foo\n" are different lines.
// Indices in the returned scripts refer to lines as returned by [Lines].
package textdiff

import (
	"znkr.io/editscript"
	"znkr.io/editscript/internal/byteview"
)

// Lines splits s into lines. Every line but the last ends in '\n'. Concatenating all lines yields
// s.
func Lines(s string) []string {
	lines := byteview.SplitLines(byteview.From(s))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Distance returns the minimal number of line insertions and deletions to transform x into y.
func Distance[T string | []byte](x, y T) int {
	xlines := byteview.SplitLines(byteview.From(x))
	ylines := byteview.SplitLines(byteview.From(y))
	return editscript.Distance(xlines, ylines)
}

// Script compares the lines in x and y and returns a shortest edit script that transforms x into
// y.
//
// The following options are supported: [editscript.Iterative], [editscript.Verify]
func Script[T string | []byte](x, y T, opts ...editscript.Option) editscript.Patch {
	xlines := byteview.SplitLines(byteview.From(x))
	ylines := byteview.SplitLines(byteview.From(y))
	return editscript.Script(xlines, ylines, opts...)
}

// Apply replays the line edits in p against x and returns the result. Inserted lines are taken
// from y.
//
// Apply panics if p is not a well formed script for the lines of x and y.
func Apply[T string | []byte](p editscript.Patch, x, y T) T {
	xlines := byteview.SplitLines(byteview.From(x))
	ylines := byteview.SplitLines(byteview.From(y))
	zlines := editscript.Apply(p, xlines, ylines)

	n := 0
	for _, l := range zlines {
		n += l.Len()
	}
	var b byteview.Builder[T]
	b.Grow(n)
	for _, l := range zlines {
		b.WriteByteView(l)
	}
	return b.Build()
}
