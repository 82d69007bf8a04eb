// Package runner runs several checkers over the tokens of one book. The
// checkers share no state, so each runs on its own worker; results come back
// in the order the checkers were given.
package runner

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// Result holds the findings of one checker.
type Result struct {
	CheckID  uuid.UUID
	Name     string
	Findings []checks.TokenSubstring
	Duration time.Duration
	Skipped  bool // the context was cancelled before the check ran
}

// Runner runs a fixed set of checkers.
type Runner struct {
	checkers []checks.Checker
	workers  int
}

// New creates a runner for checkers.
func New(checkers ...checks.Checker) *Runner {
	return &Runner{checkers: checkers}
}

// WithWorkers sets the number of concurrent checks (0 for the default).
func (r *Runner) WithWorkers(n int) *Runner {
	r.workers = n
	return r
}

// Checkers returns the checkers in run order.
func (r *Runner) Checkers() []checks.Checker {
	return slices.Clone(r.checkers)
}

type job struct {
	index   int
	checker checks.Checker
}

type jobResult struct {
	index  int
	result Result
}

// Run checks the tokens of book with every checker. Tokens are shared
// read-only between the workers. When ctx is cancelled, checks not yet
// started are skipped and ctx.Err() is returned with the partial results.
func (r *Runner) Run(ctx context.Context, book string, tokens []checks.Token) ([]Result, error) {
	results := make([]Result, len(r.checkers))
	if len(r.checkers) == 0 {
		return results, nil
	}

	pool := NewWorkerPool[job, jobResult](r.workers, len(r.checkers))
	pool.Start(func(j job) jobResult {
		return jobResult{index: j.index, result: runOne(ctx, book, j.checker, tokens)}
	})
	for i, c := range r.checkers {
		pool.Submit(job{index: i, checker: c})
	}
	pool.Close()

	for res := range pool.Results() {
		results[res.index] = res.result
	}
	return results, ctx.Err()
}

func runOne(ctx context.Context, book string, c checks.Checker, tokens []checks.Token) Result {
	res := Result{CheckID: c.ID(), Name: c.Name()}
	if ctx.Err() != nil {
		res.Skipped = true
		return res
	}

	logging.CheckStarted(ctx, c.Name(), book, len(tokens))
	start := time.Now()
	rec := &checks.Recorder{}
	c.Check(slices.Values(tokens), rec.Record)
	res.Findings = rec.Results
	res.Duration = time.Since(start)
	logging.CheckFinished(ctx, c.Name(), book, len(res.Findings), res.Duration)
	return res
}

// Count returns the total number of findings in results.
func Count(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Findings)
	}
	return n
}
