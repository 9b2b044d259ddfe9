// Command webzcheck validates cyber-heist logic puzzles: it proves each
// puzzle consistent, uniquely solvable, and in agreement with its declared
// solution, and reports every verdict without stopping at the first bad
// puzzle.
//
// With no arguments it validates the numbered corpus in -puzzles; with
// arguments it validates exactly those files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spydir/spydirwebz/internal/batch"
	"github.com/spydir/spydirwebz/internal/gini"
	"github.com/spydir/spydirwebz/internal/gopher"
	"github.com/spydir/spydirwebz/internal/storage"
	"github.com/spydir/spydirwebz/internal/validate"
	"github.com/spydir/spydirwebz/pkg/puzzle"
	"github.com/spydir/spydirwebz/pkg/sat"
)

func main() {
	var (
		puzzlesDir = flag.String("puzzles", "puzzles", "directory holding the numbered puzzle corpus")
		backend    = flag.String("backend", "gini", "solver backend: gini or gophersat")
		timeout    = flag.Duration("timeout", 30*time.Second, "solve budget per puzzle (0 = unbounded)")
		workers    = flag.Int("workers", 0, "parallel validations (0 = one per CPU)")
		asJSON     = flag.Bool("json", false, "emit the report as JSON")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	be, err := pickBackend(*backend)
	if err != nil {
		log.Error("bad flags", "err", err)
		os.Exit(2)
	}

	store := storage.NewFS(*puzzlesDir)
	ctx := context.Background()

	paths := flag.Args()
	if len(paths) == 0 {
		paths, err = store.List(ctx)
		if err != nil {
			log.Error("listing corpus", "dir", *puzzlesDir, "err", err)
			os.Exit(2)
		}
		if len(paths) == 0 {
			log.Warn("no puzzles found", "dir", *puzzlesDir)
		}
	}

	runner := batch.NewRunner(validate.New(be), store, *workers, *timeout, log)
	report := runner.Run(ctx, paths)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Error("writing report", "err", err)
			os.Exit(2)
		}
	} else {
		printReport(report)
	}

	for _, e := range report.Entries {
		if e.Result == nil || !e.Result.Ok() {
			os.Exit(1)
		}
	}
}

func pickBackend(name string) (sat.Backend, error) {
	switch name {
	case "gini":
		return gini.New(), nil
	case "gophersat":
		return gopher.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func printReport(report batch.Report) {
	for _, e := range report.Entries {
		switch {
		case e.Result == nil:
			fmt.Printf("%s: error: %s\n", e.Path, e.Err)
		case e.Result.Status == puzzle.StatusValid:
			fmt.Printf("%s: valid (%s)\n", e.Path, e.Result.Solution.Triplet())
		default:
			fmt.Printf("%s: %s: %s\n", e.Path, e.Result.Status, e.Result.Explanation)
		}
	}
	counts := report.Counts()
	fmt.Printf("%d puzzles: %d valid, %d rejected, %d errors\n",
		len(report.Entries),
		counts[string(puzzle.StatusValid)],
		len(report.Entries)-counts[string(puzzle.StatusValid)]-counts["error"],
		counts["error"])
}
