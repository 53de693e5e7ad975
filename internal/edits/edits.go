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

// Package edits contains the edit representation that is produced by the script builder,
// consumed by the applier and exposed by the public API.
package edits

import (
	"fmt"
	"strconv"
)

// Op is the kind of an edit.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op uint8

const (
	Insert Op = iota + 1 // Insert an element of the new sequence
	Delete               // Delete an element of the old sequence
)

// Edit is a single insertion or deletion.
//
//   - For Insert, New is inserted before the element at Old in the old sequence (or at the end if
//     Old is the length of the old sequence).
//   - For Delete, the element at Old is removed and New is -1.
type Edit struct {
	Op  Op
	Old int
	New int
}

// Ins returns an edit that inserts y[t] before x[s].
func Ins(s, t int) Edit { return Edit{Op: Insert, Old: s, New: t} }

// Del returns an edit that deletes x[s].
func Del(s int) Edit { return Edit{Op: Delete, Old: s, New: -1} }

func (e Edit) String() string {
	switch e.Op {
	case Insert:
		return "insert(" + strconv.Itoa(e.Old) + ", " + strconv.Itoa(e.New) + ")"
	case Delete:
		return "delete(" + strconv.Itoa(e.Old) + ")"
	default:
		return e.Op.String()
	}
}

// Stat returns the number of insertions and deletions in es.
func Stat(es []Edit) (ins, del int) {
	for _, e := range es {
		switch e.Op {
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	return ins, del
}

// Validate checks that es is a well formed script for an old sequence of length n and a new
// sequence of length m:
//
//   - edits are ordered by Old, for the same Old insertions come before the deletion,
//   - every element of the old sequence is deleted at most once,
//   - insertions reference the new sequence in increasing order,
//   - all indices are in range.
func Validate(es []Edit, n, m int) error {
	s, t := 0, -1 // last Old, last inserted New
	deleted := -1 // last deleted Old
	for i, e := range es {
		if e.Old < s {
			return fmt.Errorf("edit %d (%v): not ordered, previous edit is at %d", i, e, s)
		}
		switch e.Op {
		case Insert:
			if e.Old > n {
				return fmt.Errorf("edit %d (%v): old index out of range [0:%d]", i, e, n)
			}
			if e.New < 0 || e.New >= m {
				return fmt.Errorf("edit %d (%v): new index out of range [0:%d)", i, e, m)
			}
			if e.Old == deleted {
				return fmt.Errorf("edit %d (%v): insertion after deletion at the same index", i, e)
			}
			if e.New <= t {
				return fmt.Errorf("edit %d (%v): new index not increasing, previous insertion is %d", i, e, t)
			}
			t = e.New
		case Delete:
			if e.Old >= n {
				return fmt.Errorf("edit %d (%v): old index out of range [0:%d)", i, e, n)
			}
			if e.Old == deleted {
				return fmt.Errorf("edit %d (%v): duplicate deletion", i, e)
			}
			deleted = e.Old
		default:
			return fmt.Errorf("edit %d: invalid op %v", i, e.Op)
		}
		s = e.Old
	}
	return nil
}
