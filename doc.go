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

// Package editscript computes shortest edit scripts between two slices and applies them.
//
// An edit script is a sequence of single element insertions and deletions that transforms a slice
// x into a slice y. [Script] returns a script of minimal length, [Distance] returns only the length,
// and [Apply] replays a script to reconstruct y from x.
//
// Both functions implement Myers' O(ND) difference algorithm. [Distance] uses the forward greedy
// search and [Script] the linear space refinement that splits the problem at a middle snake.
// Time complexity is O((N+M)D) and space complexity is O(N+M), where N = len(x), M = len(y) and
// D is the length of a shortest edit script.
//
// Note: For a line-by-line comparison of text, please see [znkr.io/editscript/textdiff].
//
// [znkr.io/editscript/textdiff]: https://pkg.go.dev/znkr.io/editscript/textdiff
package editscript
