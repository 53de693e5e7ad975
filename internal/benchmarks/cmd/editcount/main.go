// editcount is a small CLI to manually compare the number of line edits found by the libraries
// used for benchmarking.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"znkr.io/editscript/internal/benchmarks"
)

var cli struct {
	Lib []string `short:"l" help:"Libraries to compare. Defaults to all."`
	X   string   `arg:"" type:"existingfile" help:"Old file."`
	Y   string   `arg:"" type:"existingfile" help:"New file."`
}

func main() {
	kctx := kong.Parse(&cli, kong.Description("Prints the number of line edits every library needs."))
	kctx.FatalIfErrorf(run())
}

func run() error {
	x, err := os.ReadFile(cli.X)
	if err != nil {
		return err
	}
	y, err := os.ReadFile(cli.Y)
	if err != nil {
		return err
	}

	impls := benchmarks.Impls
	if len(cli.Lib) > 0 {
		impls = nil
		for _, name := range cli.Lib {
			impl, ok := benchmarks.Lookup(name)
			if !ok {
				return fmt.Errorf("lib not found %q, available: %s", name, benchmarks.Names())
			}
			impls = append(impls, impl)
		}
	}
	for _, impl := range impls {
		fmt.Printf("%-22s %d\n", impl.Name, impl.Edits(x, y))
	}
	return nil
}
