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

// Package diagonal provides the v-array used by the searches in this module: a fixed capacity
// table indexed by a diagonal k = s - t which may be negative.
//
// Diagonals are mapped into the table with ((k mod capacity) + capacity) mod capacity. Callers
// are responsible for choosing a capacity that is large enough that no two diagonals live at the
// same time map to the same slot.
package diagonal

import "fmt"

// Table stores the furthest reaching s-coordinate for diagonals k.
type Table struct {
	v []int
}

// New returns a zeroed table with the given capacity.
func New(capacity int) Table {
	if capacity < 1 {
		panic(fmt.Sprintf("diagonal: invalid capacity %d", capacity))
	}
	return Table{v: make([]int, capacity)}
}

// Over returns a table using buf as storage. The buffer is cleared and the capacity of the table
// is len(buf).
func Over(buf []int) Table {
	if len(buf) < 1 {
		panic(fmt.Sprintf("diagonal: invalid capacity %d", len(buf)))
	}
	clear(buf)
	return Table{v: buf}
}

// Cap returns the capacity of the table.
func (t Table) Cap() int { return len(t.v) }

// Get returns the value stored for diagonal k.
func (t Table) Get(k int) int { return t.v[t.index(k)] }

// Set stores s for diagonal k.
func (t Table) Set(k, s int) { t.v[t.index(k)] = s }

func (t Table) index(k int) int {
	n := len(t.v)
	return ((k % n) + n) % n
}
