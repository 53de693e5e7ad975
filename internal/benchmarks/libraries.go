package benchmarks

import (
	"bytes"
	"context"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	pkgdiff "github.com/pkg/diff/edit"
	"github.com/pkg/diff/myers"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/editscript"
	"znkr.io/editscript/textdiff"
)

// Impl is a line based diff implementation. Edits returns the number of inserted and deleted lines
// it needs to transform x into y.
type Impl struct {
	Name  string
	Edits func(x, y []byte) int
}

var Impls = []Impl{
	{
		Name: "editscript",
		Edits: func(x, y []byte) int {
			return textdiff.Script(x, y).Len()
		},
	},
	{
		Name: "editscript-iterative",
		Edits: func(x, y []byte) int {
			return textdiff.Script(x, y, editscript.Iterative()).Len()
		},
	},
	{
		Name: "editscript-distance",
		Edits: func(x, y []byte) int {
			return textdiff.Distance(x, y)
		},
	},
	{
		Name: "go-internal",
		Edits: func(x, y []byte) int {
			return countUnified(gointernal.Diff("x", x, "y", y))
		},
	},
	{
		Name: "udiff",
		Edits: func(x, y []byte) int {
			return countUnified([]byte(udiff.Unified("x", "y", string(x), string(y))))
		},
	},
	{
		Name: "godebug",
		Edits: func(x, y []byte) int {
			// godebug prefixes every line of the output with "+", "-" or " " and has no header.
			return countUnified([]byte(godebug.Diff(string(x), string(y))))
		},
	},
	{
		Name: "diffmatchpatch",
		Edits: func(x, y []byte) int {
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			n := 0
			for _, diff := range diffs {
				if diff.Type == diffmatchpatch.DiffEqual {
					continue
				}
				n += len(textdiff.Lines(diff.Text))
			}
			return n
		},
	},
	{
		Name: "mb0",
		Edits: func(x, y []byte) int {
			d := lines{
				x: textdiff.Lines(string(x)),
				y: textdiff.Lines(string(y)),
			}
			n := 0
			for _, ch := range mb0.Diff(len(d.x), len(d.y), d) {
				n += ch.Del + ch.Ins
			}
			return n
		},
	},
	{
		Name: "pkg-diff",
		Edits: func(x, y []byte) int {
			d := lines{
				x: textdiff.Lines(string(x)),
				y: textdiff.Lines(string(y)),
			}
			n := 0
			for _, r := range myers.Diff(context.Background(), d).Ranges {
				switch r.Op() {
				case pkgdiff.Del:
					n += r.HighA - r.LowA
				case pkgdiff.Ins:
					n += r.HighB - r.LowB
				}
			}
			return n
		},
	},
}

// countUnified counts the lines starting with "+" or "-" in a unified diff, skipping the file
// header.
func countUnified(out []byte) int {
	n := 0
	for line := range bytes.Lines(out) {
		if bytes.HasPrefix(line, []byte("--- ")) || bytes.HasPrefix(line, []byte("+++ ")) {
			continue
		}
		if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
			n++
		}
	}
	return n
}

// lines adapts two line slices to the comparison interfaces of mb0/diff and pkg/diff.
type lines struct {
	x, y []string
}

func (d lines) Equal(i, j int) bool { return d.x[i] == d.y[j] }
func (d lines) LenA() int           { return len(d.x) }
func (d lines) LenB() int           { return len(d.y) }

// Lookup returns the implementation with the given name.
func Lookup(name string) (Impl, bool) {
	for _, impl := range Impls {
		if impl.Name == name {
			return impl, true
		}
	}
	return Impl{}, false
}

// Names returns the names of all implementations.
func Names() string {
	names := make([]string, len(Impls))
	for i, impl := range Impls {
		names[i] = impl.Name
	}
	return strings.Join(names, ",")
}
