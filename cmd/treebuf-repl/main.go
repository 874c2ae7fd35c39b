// SPDX-License-Identifier: MIT

// Command treebuf-repl is the line-oriented driver for the treebuffer
// core engine: spec.md's "command-line REPL" external collaborator. It
// reads each file named on the command line in turn, falls back to an
// interactive, line-edited session against stdin when invoked with no
// file arguments, and accepts "-" anywhere in the argument list to read
// stdin non-interactively (but only once — a second use is fatal, per
// spec.md §6's exit code 1).
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/rgrig/treebuffer/internal/repl"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	app := &cli.App{
		Name:      "treebuf-repl",
		Usage:     "drive the treebuffer core engine from a line-oriented command script",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "stats",
				Usage: "append-only statistics file attached to each tree `initialize` runs",
				Value: "treebuffer.stats",
			},
			&cli.BoolFlag{
				Name:  "no-stats",
				Usage: "disable statistics collection entirely",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		log.Printf("E: %s", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	statsPath := c.String("stats")
	if c.Bool("no-stats") {
		statsPath = ""
	}

	session := repl.New(os.Stdout, os.Stderr, statsPath)
	defer session.Close()

	files := c.Args().Slice()
	usedStdin := false

	for _, name := range files {
		var f *os.File
		if name == "-" {
			if usedStdin {
				fmt.Fprintln(os.Stderr, "E: Can't read stdin multiple times.")
				return cli.Exit("", 1)
			}
			usedStdin = true
			f = os.Stdin
		} else {
			var err error
			f, err = os.Open(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "E: Cannot process %s. Skipping.\n", name)
				continue
			}
		}

		src := repl.NewScannerSource(f)
		err := session.Run(src)
		if f != os.Stdin {
			f.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "E: %s\n", err)
			return cli.Exit("", 2)
		}
	}

	if len(files) == 0 {
		state := liner.NewLiner()
		defer state.Close()
		state.SetCtrlCAborts(true)

		src := repl.NewLinerSource(state)
		err := session.Run(src)
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "E: %s\n", err)
			return cli.Exit("", 2)
		}
	}

	return nil
}
