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

// Package byteview provides immutable views of strings and []byte that can be compared with ==.
package byteview

import (
	"slices"
	"strings"
	"sync"
	"unsafe"
)

// ByteView is a read-only view of text. Two views are equal if their contents are equal.
type ByteView struct {
	data string
}

// From returns a view of in without copying it. The caller must not modify a []byte input while
// the view is in use.
func From[T string | []byte](in T) ByteView {
	switch in := any(in).(type) {
	case string:
		return ByteView{in}
	case []byte:
		return ByteView{unsafe.String(unsafe.SliceData(in), len(in))}
	}
	panic("never reached")
}

func (v ByteView) Len() int { return len(v.data) }

func (v ByteView) String() string { return v.data }

// SplitLines splits v after every '\n'. The last line has no newline character if v doesn't end
// in one. Concatenating all lines yields v.
func SplitLines(v ByteView) []ByteView {
	s := v.data
	n := strings.Count(s, "\n")
	if len(s) > 0 && s[len(s)-1] != '\n' {
		n++
	}
	lines := make([]ByteView, 0, n)
	for len(s) > 0 {
		m := strings.IndexByte(s, '\n') + 1
		if m == 0 {
			m = len(s)
		}
		lines = append(lines, ByteView{s[:m]})
		s = s[m:]
	}
	return lines
}

// Builder assembles a string or []byte from views.
type Builder[T string | []byte] struct {
	_   [0]sync.Mutex // don't copy
	buf []byte
}

func (b *Builder[T]) Grow(n int) {
	b.buf = slices.Grow(b.buf, n)
}

func (b *Builder[T]) WriteByteView(v ByteView) {
	b.buf = append(b.buf, v.data...)
}

// Build returns the assembled output and resets b.
func (b *Builder[T]) Build() T {
	defer func() {
		b.buf = nil
	}()
	switch any((*T)(nil)).(type) {
	case *string:
		return T(unsafe.String(unsafe.SliceData(b.buf), len(b.buf)))
	case *[]byte:
		return T(b.buf)
	}
	panic("never reached")
}
