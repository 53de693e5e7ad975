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

// eval validates the edit script algorithms on many inputs. Every input pair is compared, the
// resulting script is applied and checked against the expected output, and the length of the
// script is checked against the distance computed independently.
//
// Inputs are random byte sequences or, with --repo, the changed files in the history of a git
// repository compared line by line.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"
	"znkr.io/editscript"
	"znkr.io/editscript/internal/cmd/eval/internal/git"
	"znkr.io/editscript/internal/edits"
	"znkr.io/editscript/textdiff"
)

type config struct {
	Pairs    int    `default:"1000" help:"Number of random pairs to evaluate."`
	MaxLen   int    `default:"200" help:"Maximum length of a random sequence."`
	Alphabet int    `default:"4" help:"Number of distinct symbols in random sequences."`
	Seed     uint64 `default:"1" help:"Seed for random sequences."`
	Repo     string `type:"existingdir" help:"Evaluate the history of this git repository instead of random sequences."`
	Sample   int    `help:"If >0, sample commits to the value of the flag."`
	Parallel int    `default:"${nproc}" help:"Number of evaluations to run in parallel."`
	Stats    string `type:"path" help:"File to store stats in (CSV)."`
	Progress bool   `default:"true" negatable:"" help:"Show a progress bar."`
	Verbose  bool   `short:"v" help:"Log every evaluation."`
}

func main() {
	var cfg config
	kong.Parse(&cfg,
		kong.Description("Validates edit scripts by applying them."),
		kong.Vars{"nproc": strconv.Itoa(runtime.GOMAXPROCS(0))},
	)
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, &cfg, os.Stderr); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// input is a pair of sequences to compare. Line inputs are compared with textdiff, other inputs
// byte by byte.
type input struct {
	name  string
	x, y  []byte
	lines bool
}

type result struct {
	name     string
	variant  string
	N, M, D  int
	duration time.Duration
}

var errFailed = errors.New("evaluation failed")

func run(ctx context.Context, cfg *config, stderr io.Writer) error {
	if cfg.Parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1, got %d", cfg.Parallel)
	}

	var stats *statsWriter
	if cfg.Stats != "" {
		f, err := os.Create(cfg.Stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer f.Close()
		stats = newStatsWriter(f)
	}

	var out io.Writer = io.Discard
	if cfg.Progress {
		out = stderr
	}
	p := mpb.New(mpb.WithOutput(out), mpb.WithWidth(80))
	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name("evaluating", decor.WC{C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
		),
	)

	inputs := make(chan input)
	var total atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(inputs)
		send := func(in input) bool {
			bar.SetTotal(total.Add(1), false)
			select {
			case inputs <- in:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if cfg.Repo != "" {
			return readRepo(ctx, cfg, send)
		}
		generate(cfg, send)
		return nil
	})

	var evaluated, failed int64
	g.Go(func() error {
		var err error
		evaluated, failed, err = consume(ctx, inputs, cfg.Parallel, stats, bar.Increment)
		return err
	})

	err := g.Wait()
	bar.SetTotal(-1, true)
	p.Wait()
	if stats != nil {
		if ferr := stats.flush(); ferr != nil && err == nil {
			err = fmt.Errorf("writing stats: %w", ferr)
		}
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"evaluated": evaluated,
		"failed":    failed,
	}).Info("evaluation finished")
	if failed > 0 {
		return fmt.Errorf("%w for %d of %d inputs", errFailed, failed, evaluated)
	}
	return nil
}

// consume evaluates inputs on up to parallel workers until inputs is closed or ctx is canceled.
// A failure to write stats stops the evaluation. done is called after each input.
func consume(ctx context.Context, inputs <-chan input, parallel int, stats *statsWriter, done func()) (evaluated, failed int64, err error) {
	var nevaluated, nfailed atomic.Int64
	workers, wctx := errgroup.WithContext(ctx)
	workers.SetLimit(parallel)
	for in := range inputs {
		if wctx.Err() != nil {
			break
		}
		workers.Go(func() error {
			defer done()
			results, err := evaluate(in)
			nevaluated.Add(1)
			if err != nil {
				nfailed.Add(1)
				logrus.WithField("input", in.name).Error(err)
				return nil
			}
			for _, r := range results {
				logrus.WithFields(logrus.Fields{
					"input":    r.name,
					"variant":  r.variant,
					"N":        r.N,
					"M":        r.M,
					"D":        r.D,
					"duration": r.duration,
				}).Debug("evaluated")
				if stats != nil {
					if err := stats.write(r); err != nil {
						return fmt.Errorf("writing stats: %w", err)
					}
				}
			}
			return nil
		})
	}
	err = workers.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return nevaluated.Load(), nfailed.Load(), err
}

// generate sends cfg.Pairs random pairs. Half of the pairs are derived from each other to get
// long common subsequences.
func generate(cfg *config, send func(input) bool) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	random := func(n int) []byte {
		out := make([]byte, n)
		for i := range out {
			out[i] = byte('a' + rng.IntN(max(1, cfg.Alphabet)))
		}
		return out
	}
	for i := range cfg.Pairs {
		x := random(rng.IntN(cfg.MaxLen + 1))
		var y []byte
		if i%2 == 0 {
			y = random(rng.IntN(cfg.MaxLen + 1))
		} else {
			y = slices.Clone(x)
			for range rng.IntN(10) {
				j := rng.IntN(len(y) + 1)
				if rng.IntN(2) == 0 && j < len(y) {
					y = slices.Delete(y, j, j+1)
				} else {
					y = slices.Insert(y, j, '#')
				}
			}
		}
		if !send(input{name: "random-" + strconv.Itoa(i), x: x, y: y}) {
			return
		}
	}
}

// readRepo sends every file change in the history of cfg.Repo.
func readRepo(ctx context.Context, cfg *config, send func(input) bool) error {
	repo, err := git.Open(ctx, cfg.Repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %w", err)
	}
	defer repo.Close()

	commits, err := repo.RevList(ctx)
	if err != nil {
		return fmt.Errorf("reading rev-list: %w", err)
	}
	if cfg.Sample > 0 && cfg.Sample < len(commits) {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
		rng.Shuffle(len(commits), func(i, j int) { commits[i], commits[j] = commits[j], commits[i] })
		commits = commits[:cfg.Sample]
	}

	for _, commit := range commits {
		changes, err := repo.Changes(ctx, commit)
		if err != nil {
			logrus.WithField("commit", commit).Warnf("skipping commit: %v", err)
			continue
		}
		for _, c := range changes {
			x, err := repo.ReadBlob(c.OldID)
			if err != nil {
				return err
			}
			y, err := repo.ReadBlob(c.NewID)
			if err != nil {
				return err
			}
			if !send(input{name: c.Commit + ":" + c.Name, x: x, y: y, lines: true}) {
				return ctx.Err()
			}
		}
	}
	return nil
}

// evaluate builds the scripts for in with all variants and checks them.
func evaluate(in input) ([]result, error) {
	variants := []struct {
		name string
		opts []editscript.Option
	}{
		{"recursive", nil},
		{"iterative", []editscript.Option{editscript.Iterative()}},
	}

	var (
		n, m   int
		script func(opts []editscript.Option) editscript.Patch
		apply  func(p editscript.Patch) []byte
		dist   func() int
	)
	if in.lines {
		n, m = len(textdiff.Lines(string(in.x))), len(textdiff.Lines(string(in.y)))
		script = func(opts []editscript.Option) editscript.Patch { return textdiff.Script(in.x, in.y, opts...) }
		apply = func(p editscript.Patch) []byte { return textdiff.Apply(p, in.x, in.y) }
		dist = func() int { return textdiff.Distance(in.x, in.y) }
	} else {
		n, m = len(in.x), len(in.y)
		script = func(opts []editscript.Option) editscript.Patch { return editscript.Script(in.x, in.y, opts...) }
		apply = func(p editscript.Patch) []byte { return editscript.Apply(p, in.x, in.y) }
		dist = func() int { return editscript.Distance(in.x, in.y) }
	}

	d := dist()
	var first editscript.Patch
	results := make([]result, 0, len(variants))
	for i, v := range variants {
		start := time.Now()
		p := script(v.opts)
		duration := time.Since(start)

		if err := edits.Validate(p, n, m); err != nil {
			return nil, fmt.Errorf("%s: malformed script: %w", v.name, err)
		}
		if got := apply(p); string(got) != string(in.y) {
			return nil, fmt.Errorf("%s: applying the script doesn't reproduce the input", v.name)
		}
		if p.Len() != d {
			return nil, fmt.Errorf("%s: script has %d edits, distance is %d", v.name, p.Len(), d)
		}
		if i == 0 {
			first = p
		} else if !slices.Equal(first, p) {
			return nil, fmt.Errorf("%s: script differs from %s", v.name, variants[0].name)
		}
		results = append(results, result{
			name:     in.name,
			variant:  v.name,
			N:        n,
			M:        m,
			D:        d,
			duration: duration,
		})
	}
	return results, nil
}

type statsWriter struct {
	mu sync.Mutex
	w  *csv.Writer
}

func newStatsWriter(w io.Writer) *statsWriter {
	cw := csv.NewWriter(w)
	cw.Write([]string{"input", "variant", "N", "M", "D", "duration_ns"})
	return &statsWriter{w: cw}
}

func (s *statsWriter) write(r result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write([]string{
		r.name,
		r.variant,
		strconv.Itoa(r.N),
		strconv.Itoa(r.M),
		strconv.Itoa(r.D),
		strconv.FormatInt(r.duration.Nanoseconds(), 10),
	})
}

func (s *statsWriter) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	return s.w.Error()
}
