// Package batch validates many puzzle files in parallel. Each puzzle gets
// its own solver session, so runs share nothing and the only coordination
// is the worker pool handing out files.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spydir/spydirwebz/internal/storage"
	"github.com/spydir/spydirwebz/internal/validate"
	"github.com/spydir/spydirwebz/pkg/puzzle"
)

// Entry is the outcome for one puzzle file. Verdicts land in Result
// (including malformed input); only non-verdict failures such as solver
// timeouts or unreadable files set Err.
type Entry struct {
	ID     string         `json:"id"`
	Path   string         `json:"path"`
	Result *puzzle.Result `json:"result,omitempty"`
	Err    string         `json:"error,omitempty"`
}

// Report collects the entries of one batch run in input order.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Counts tallies entries per status; non-verdict failures count under the
// "error" key.
func (r Report) Counts() map[string]int {
	counts := map[string]int{}
	for _, e := range r.Entries {
		if e.Result != nil {
			counts[string(e.Result.Status)]++
		} else {
			counts["error"]++
		}
	}
	return counts
}

// Runner loads puzzles from a store and validates them across a bounded
// pool of workers.
type Runner struct {
	validator *validate.Validator
	store     *storage.FS
	workers   int
	timeout   time.Duration
	log       *slog.Logger
}

// NewRunner builds a runner. A workers value of 0 or less means one worker
// per CPU; timeout bounds each puzzle's solve, 0 meaning unbounded.
func NewRunner(v *validate.Validator, store *storage.FS, workers int, timeout time.Duration, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{validator: v, store: store, workers: workers, timeout: timeout, log: log}
}

// Run validates every path and returns a report with one entry per path,
// in input order. Individual failures never abort the batch.
func (r *Runner) Run(ctx context.Context, paths []string) Report {
	entries := make([]Entry, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = r.one(ctx, paths[i])
			}
		}()
	}
submit:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break submit
		}
	}
	close(jobs)
	wg.Wait()

	// Jobs never handed out (cancelled mid-batch) still get an entry.
	for i := range entries {
		if entries[i].ID == "" {
			entries[i] = Entry{ID: uuid.NewString(), Path: paths[i], Err: context.Canceled.Error()}
		}
	}
	return Report{Entries: entries}
}

func (r *Runner) one(ctx context.Context, path string) Entry {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	entry := Entry{ID: uuid.NewString(), Path: path}
	log := r.log.With("id", entry.ID, "path", path)

	p, err := r.store.Load(ctx, path)
	if err != nil {
		var malformed *puzzle.MalformedError
		if errors.As(err, &malformed) {
			entry.Result = &puzzle.Result{Status: puzzle.StatusMalformed, Explanation: malformed.Error()}
			log.Warn("puzzle rejected", "status", puzzle.StatusMalformed)
			return entry
		}
		entry.Err = err.Error()
		log.Error("puzzle unreadable", "err", err)
		return entry
	}

	result, err := r.validator.Validate(ctx, p)
	if err != nil {
		var malformed *puzzle.MalformedError
		if errors.As(err, &malformed) {
			entry.Result = &puzzle.Result{Status: puzzle.StatusMalformed, Explanation: malformed.Error()}
		} else {
			entry.Err = err.Error()
		}
		log.Warn("validation failed", "err", err)
		return entry
	}
	entry.Result = result
	log.Info("validated", "status", result.Status)
	return entry
}
