package battle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// Job is one independent run.
type Job struct {
	Tables  *data.Tables
	Avatar  model.Avatar
	StageID int32
	Seed    int32
	Options []Option
}

// Run executes the job with its own random source.
func (j Job) Run() (Result, error) {
	sim, err := New(j.Tables, j.Avatar, j.StageID, random.New(j.Seed), j.Options...)
	if err != nil {
		return Result{}, err
	}
	return sim.Simulate()
}

// RunParallel runs jobs on up to workers goroutines and returns results in
// job order. Runs share nothing but the read-only tables, so results equal
// those of a sequential run. The first error cancels the remaining jobs.
func RunParallel(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := job.Run()
			if err != nil {
				return fmt.Errorf("job %d (stage %d, seed %d): %w", i, job.StageID, job.Seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
