// Package scanner is the outer scanning framework (an external
// collaborator relative to the core engine, §5): it runs independent
// decode jobs in parallel, each owning its own builder tree and context
// stack, with no state shared across jobs.
package scanner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"formatscan/internal/decode"
	"formatscan/internal/fsinput"
	"formatscan/internal/result"
	"formatscan/internal/telemetry"
)

// Job is one unit of scan work: decode f against in starting at position.
type Job struct {
	Format   decode.Format
	Input    fsinput.Input
	Position int64
}

// Outcome pairs a Job with its decode result or, on genuine failure, the
// error that stopped it. Exactly one of Result/Err is set.
type Outcome struct {
	Job    Job
	Result *result.Result
	Err    error
}

// ScanAll decodes every job concurrently, bounded by parallelism (use 0
// for no limit). A single job's failure never aborts the others — each
// job's error is captured on its own Outcome, so the returned error from
// ScanAll itself is only ever about job orchestration, never a decode
// failure. log may be the zero Logger (telemetry.Noop()).
func ScanAll(ctx context.Context, jobs []Job, parallelism int, log telemetry.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	log.Info("scan start", map[string]any{"jobs": len(jobs), "parallelism": parallelism})
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := decode.Decode(gctx, job.Format, job.Input, job.Position, log)
			outcomes[i] = Outcome{Job: job, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait() // per-job errors are captured on each Outcome, never here
	log.Info("scan done", map[string]any{"jobs": len(jobs)})
	return outcomes, nil
}
