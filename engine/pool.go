package engine

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"sim-engine/models"
)

// AtBatJob is one unit of work for RunBatch: everything SimulateAtBat
// needs, plus a per-job seed so results are reproducible independent of
// which worker picks up which job (§5: "no shared mutable state between
// workers").
type AtBatJob struct {
	Batter, Pitcher models.Player
	Defense         map[models.FieldPosition]models.Player
	Bases           models.BaseState
	Outs, Inning    int
	Seed            int64
}

// RunBatch resolves a batch of at-bats concurrently on a bounded worker
// pool, grounded on the season runner's worker fan-out but rebuilt on
// errgroup: each job owns its own *rand.Rand seeded independently, so
// results are order-independent and reproducible regardless of
// scheduling (§5). Results are returned in job order.
//
// A season runner composes this with its own inning/half-inning state
// machine; RunBatch itself only resolves independent at-bats and knows
// nothing about innings, lineups, or game completion.
func RunBatch(ctx context.Context, jobs []AtBatJob, workers int) ([]models.AtBatOutcome, error) {
	results := make([]models.AtBatOutcome, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(job.Seed))
			results[i] = SimulateAtBat(job.Batter, job.Pitcher, job.Defense, job.Bases, job.Outs, job.Inning, rng)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
