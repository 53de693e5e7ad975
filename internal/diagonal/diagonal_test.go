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

package diagonal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTable(t *testing.T) {
	tbl := New(5)
	for k := -2; k <= 2; k++ {
		tbl.Set(k, 10*k)
	}
	for k := -2; k <= 2; k++ {
		if got, want := tbl.Get(k), 10*k; got != want {
			t.Errorf("Get(%d) = %d, want %d", k, got, want)
		}
	}

	// Diagonals that are a multiple of the capacity apart share a slot.
	tbl.Set(7, 70)
	if got := tbl.Get(2); got != 70 {
		t.Errorf("Get(2) = %d after Set(7, 70), want 70", got)
	}
	if got := tbl.Get(-3); got != 70 {
		t.Errorf("Get(-3) = %d after Set(7, 70), want 70", got)
	}
}

func TestIndex(t *testing.T) {
	tbl := New(4)
	var got []int
	for k := -6; k <= 6; k++ {
		got = append(got, tbl.index(k))
	}
	want := []int{2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("index(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestOverClears(t *testing.T) {
	buf := []int{1, 2, 3, 4, 5, 6}
	tbl := Over(buf[:4])
	if tbl.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", tbl.Cap())
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 5, 6}, buf); diff != "" {
		t.Errorf("buffer differs [-want,+got]:\n%s", diff)
	}
	tbl.Set(-1, 9)
	if buf[3] != 9 {
		t.Errorf("Set(-1, 9) did not write to the shared buffer: %v", buf)
	}
}

func TestInvalidCapacity(t *testing.T) {
	for _, f := range []func(){
		func() { New(0) },
		func() { New(-1) },
		func() { Over(nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected a panic")
				}
			}()
			f()
		}()
	}
}
