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

// editscript prints a shortest edit script between two inputs and verifies it by applying it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"znkr.io/editscript"
	"znkr.io/editscript/textdiff"
)

type cli struct {
	Mode      string `enum:"bytes,runes,lines" default:"lines" help:"Unit of comparison: ${enum}."`
	Inline    bool   `short:"i" help:"Treat the arguments as the inputs instead of file names."`
	Iterative bool   `help:"Build the script without recursion."`
	Distance  bool   `short:"d" help:"Only print the length of a shortest edit script."`
	Verbose   bool   `short:"v" help:"Log every edit."`

	X string `arg:"" help:"Old input."`
	Y string `arg:"" help:"New input."`
}

var errVerify = errors.New("script doesn't reproduce the new input")

func main() {
	os.Exit(main1())
}

func main1() int {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var c cli
	parser, err := kong.New(&c,
		kong.Name("editscript"),
		kong.Description("Prints a shortest edit script that transforms X into Y."),
		kong.UsageOnError(),
	)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.Errorf("%s", err)
		return 2
	}
	if c.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(&c, os.Stdout, log); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

func run(c *cli, stdout io.Writer, log *logrus.Logger) error {
	x, y := []byte(c.X), []byte(c.Y)
	if !c.Inline {
		var err error
		if x, err = os.ReadFile(c.X); err != nil {
			return fmt.Errorf("reading old input: %w", err)
		}
		if y, err = os.ReadFile(c.Y); err != nil {
			return fmt.Errorf("reading new input: %w", err)
		}
	}

	var opts []editscript.Option
	if c.Iterative {
		opts = append(opts, editscript.Iterative())
	}

	switch c.Mode {
	case "bytes":
		return compare(c, stdout, log, x, y, opts, func(b byte) string { return strconv.QuoteRune(rune(b)) })
	case "runes":
		return compare(c, stdout, log, []rune(string(x)), []rune(string(y)), opts, strconv.QuoteRune)
	case "lines":
		xlines, ylines := textdiff.Lines(string(x)), textdiff.Lines(string(y))
		if err := compare(c, stdout, log, xlines, ylines, opts, strconv.Quote); err != nil {
			return err
		}
		if c.Distance {
			return nil
		}
		// Check the text front end against the line slices.
		if got := textdiff.Apply(textdiff.Script(x, y, opts...), x, y); string(got) != string(y) {
			return errVerify
		}
		return nil
	default:
		panic("never reached")
	}
}

func compare[T comparable](c *cli, w io.Writer, log *logrus.Logger, x, y []T, opts []editscript.Option, quote func(T) string) error {
	if c.Distance {
		_, err := fmt.Fprintln(w, editscript.Distance(x, y))
		return err
	}

	p := editscript.Script(x, y, opts...)
	for _, e := range p {
		var line string
		switch e.Op {
		case editscript.Delete:
			line = fmt.Sprintf("%v\t-%s", e, quote(x[e.Old]))
		case editscript.Insert:
			line = fmt.Sprintf("%v\t+%s", e, quote(y[e.New]))
		default:
			panic("never reached")
		}
		log.Debug(line)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	ins, del := p.Stat()
	if got := editscript.Apply(p, x, y); !slices.Equal(got, y) {
		log.WithFields(logrus.Fields{"insertions": ins, "deletions": del}).Error("verification failed")
		return errVerify
	}
	log.WithFields(logrus.Fields{
		"mode":       c.Mode,
		"distance":   p.Len(),
		"insertions": ins,
		"deletions":  del,
	}).Info("script verified")
	return nil
}
