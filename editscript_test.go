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
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/editscript/internal/config"
	"znkr.io/editscript/internal/edits"
)

func TestScript(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want Patch
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: nil,
		},
		{
			name: "empty",
			x:    nil,
			y:    nil,
			want: nil,
		},
		{
			name: "x-empty",
			x:    nil,
			y:    []string{"foo", "bar", "baz"},
			want: Patch{
				{Op: Insert, Old: 0, New: 0},
				{Op: Insert, Old: 0, New: 1},
				{Op: Insert, Old: 0, New: 2},
			},
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			y:    nil,
			want: Patch{
				{Op: Delete, Old: 0, New: -1},
				{Op: Delete, Old: 1, New: -1},
				{Op: Delete, Old: 2, New: -1},
			},
		},
		{
			name: "same-prefix",
			x:    []string{"foo", "bar"},
			y:    []string{"foo", "baz"},
			want: Patch{
				{Op: Delete, Old: 1, New: -1},
				{Op: Insert, Old: 2, New: 1},
			},
		},
		{
			name: "same-suffix",
			x:    []string{"foo", "bar"},
			y:    []string{"loo", "bar"},
			want: Patch{
				{Op: Delete, Old: 0, New: -1},
				{Op: Insert, Old: 1, New: 0},
			},
		},
		{
			name: "single-change",
			x:    []string{"a"},
			y:    []string{"b"},
			// The insert is anchored after the deleted element so that no insert follows a
			// delete at the same index.
			want: Patch{
				{Op: Delete, Old: 0, New: -1},
				{Op: Insert, Old: 1, New: 0},
			},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    strings.Split("ABCABBA", ""),
			y:    strings.Split("CBABAC", ""),
			want: Patch{
				{Op: Delete, Old: 0, New: -1},
				{Op: Insert, Old: 1, New: 0},
				{Op: Delete, Old: 2, New: -1},
				{Op: Delete, Old: 5, New: -1},
				{Op: Insert, Old: 7, New: 5},
			},
		},
		{
			name: "insert-in-front",
			x:    []string{"b", "c"},
			y:    []string{"a", "b", "c"},
			want: Patch{
				{Op: Insert, Old: 0, New: 0},
			},
		},
		{
			name: "append",
			x:    []string{"a", "b"},
			y:    []string{"a", "b", "c", "d"},
			want: Patch{
				{Op: Insert, Old: 2, New: 2},
				{Op: Insert, Old: 2, New: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, opts := range [][]Option{nil, {Iterative()}, {Verify()}} {
				got := Script(tt.x, tt.y, opts...)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Script(...) result are different [-want,+got]:\n%s", diff)
				}
				if got, want := Distance(tt.x, tt.y), len(tt.want); got != want {
					t.Errorf("Distance(...) = %d, want %d", got, want)
				}
			}
		})
	}
}

func TestScriptIsContentAgnostic(t *testing.T) {
	upper := Script([]byte("ABCABBA"), []byte("CBABAC"))
	lower := Script([]byte("abcabba"), []byte("cbabac"))
	if diff := cmp.Diff(upper, lower); diff != "" {
		t.Errorf("Script(...) depends on the content [-upper,+lower]:\n%s", diff)
	}
	if got := Distance([]byte("abcabba"), []byte("cbabac")); got != 5 {
		t.Errorf("Distance(abcabba, cbabac) = %d, want 5", got)
	}
	if got := string(Apply(lower, []byte("abcabba"), []byte("cbabac"))); got != "cbabac" {
		t.Errorf("Apply(...) = %q, want %q", got, "cbabac")
	}
}

func TestScriptFunc(t *testing.T) {
	x := []string{"Foo", "BAR", "baz"}
	y := []string{"foo", "bar", "qux"}
	got := ScriptFunc(x, y, strings.EqualFold)
	want := Patch{
		{Op: Delete, Old: 2, New: -1},
		{Op: Insert, Old: 3, New: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScriptFunc(...) result are different [-want,+got]:\n%s", diff)
	}
	if got := DistanceFunc(x, y, strings.EqualFold); got != 2 {
		t.Errorf("DistanceFunc(...) = %d, want 2", got)
	}
}

func TestPatchStat(t *testing.T) {
	p := Script([]rune("Hello, World"), []rune("Hello, 世界"))
	ins, del := p.Stat()
	if ins != 2 || del != 5 {
		t.Errorf("Stat() = (%d, %d), want (2, 5)", ins, del)
	}
	if got, want := p.Len(), ins+del; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestProperties(t *testing.T) {
	for i := range 100 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		t.Run(fmt.Sprintf("seed=%x", seed[:8]), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			x := randomInput(rng, 2+rng.IntN(20), rng.IntN(200))
			y := randomInput(rng, 2+rng.IntN(20), rng.IntN(200))
			if rng.IntN(2) == 0 {
				// Derive y from x for inputs with long common runs.
				y = mutate(rng, x, rng.IntN(10))
			}

			p := Script(x, y)
			if err := edits.Validate(p, len(x), len(y)); err != nil {
				t.Fatalf("Script(...) is malformed: %v", err)
			}
			if diff := cmp.Diff(y, Apply(p, x, y), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Apply(Script(x, y), x, y) != y [-want,+got]:\n%s", diff)
			}
			d := Distance(x, y)
			if d != p.Len() {
				t.Errorf("Distance(x, y) = %d, but Script(x, y) has %d edits", d, p.Len())
			}
			if r := Distance(y, x); d != r {
				t.Errorf("Distance(x, y) = %d != Distance(y, x) = %d", d, r)
			}
			if d > len(x)+len(y) {
				t.Errorf("Distance(x, y) = %d > %d", d, len(x)+len(y))
			}
			if diff := cmp.Diff(p, Script(x, y, Iterative())); diff != "" {
				t.Errorf("Script(..., Iterative()) result are different [-recursive,+iterative]:\n%s", diff)
			}
			if len(Script(x, x)) != 0 || Distance(y, y) != 0 {
				t.Errorf("comparing a slice with itself is not empty")
			}
		})
	}
}

func TestApplyPanics(t *testing.T) {
	tests := []struct {
		name string
		p    Patch
	}{
		{"unordered", Patch{{Op: Delete, Old: 1, New: -1}, {Op: Delete, Old: 0, New: -1}}},
		{"delete-out-of-range", Patch{{Op: Delete, Old: 3, New: -1}}},
		{"insert-out-of-range", Patch{{Op: Insert, Old: 0, New: 3}}},
		{"insert-after-delete", Patch{{Op: Delete, Old: 0, New: -1}, {Op: Insert, Old: 0, New: 0}}},
		{"duplicate-delete", Patch{{Op: Delete, Old: 0, New: -1}, {Op: Delete, Old: 0, New: -1}}},
		{"invalid-op", Patch{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Apply(...) did not panic")
				}
			}()
			Apply(tt.p, []byte("abc"), []byte("xyz"))
		})
	}
}

func TestOptionNotAllowed(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Script(...) accepted an unknown option")
		}
	}()
	Script([]int{1}, []int{2}, func(cfg *config.Config) config.Flag { return 1 << 10 })
}

func randomInput(rng *rand.Rand, alphabet, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('a' + rng.IntN(alphabet))
	}
	return out
}

func mutate(rng *rand.Rand, x []byte, n int) []byte {
	y := append([]byte(nil), x...)
	for range n {
		i := rng.IntN(len(y) + 1)
		if rng.IntN(2) == 0 && i < len(y) {
			y = append(y[:i], y[i+1:]...)
		} else {
			y = append(y[:i], append([]byte{'#'}, y[i:]...)...)
		}
	}
	return y
}

func FuzzScript(f *testing.F) {
	f.Add([]byte("abcabba"), []byte("cbabac"))
	f.Add([]byte("a"), []byte("b"))
	f.Add([]byte(""), []byte("abc"))
	f.Fuzz(func(t *testing.T, x, y []byte) {
		if len(x) > 1000 || len(y) > 1000 {
			t.Skip()
		}
		p := Script(x, y, Verify())
		if got, want := p.Len(), Distance(x, y); got != want {
			t.Errorf("Script(%q, %q) has %d edits, want %d", x, y, got, want)
		}
	})
}

func BenchmarkScript(b *testing.B) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte("BenchmarkScript"))))
	x := randomInput(rng, 26, 10000)
	y := mutate(rng, x, 100)
	for _, iterative := range []bool{false, true} {
		b.Run(fmt.Sprintf("iterative=%v", iterative), func(b *testing.B) {
			var opts []Option
			if iterative {
				opts = append(opts, Iterative())
			}
			b.ReportAllocs()
			for b.Loop() {
				_ = Script(x, y, opts...)
			}
		})
	}
}
