package cmd

import (
	"github.com/spf13/cobra"

	"sim-engine/engine"
	"sim-engine/models"
)

// BatchCmd creates the batch command: runs a batch of independent
// at-bats through engine.RunBatch's worker pool and prints an outcome
// tally, the terminal equivalent of the season runner's batch endpoint.
func BatchCmd() *cobra.Command {
	var count, workers int

	c := &cobra.Command{
		Use:   "batch",
		Short: "Resolve many at-bats concurrently and tally the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			batter := models.Player{
				ID: "batter", Name: "batter",
				Batting: &models.BattingAttributes{
					Contact: 55, Power: 55, Trajectory: 2, Speed: 55,
					Arm: 50, Fielding: 50, Catching: 50, Eye: 55,
				},
			}
			pitcher := models.Player{
				ID: "pitcher", Name: "pitcher",
				Pitching: &models.PitchingAttributes{
					VelocityKMH: 145, Control: 55, Stamina: 70,
					MentalToughness: 55, Arm: 45, Fielding: 45, Catching: 45,
					Pitches: []models.Pitch{{Type: models.PitchFastball, Level: 4}},
				},
			}
			defense := averageDefense()

			baseSeed := resolveSeed()
			jobs := make([]engine.AtBatJob, count)
			for i := range jobs {
				jobs[i] = engine.AtBatJob{
					Batter: batter, Pitcher: pitcher, Defense: defense,
					Bases: models.BaseState{}, Outs: 0, Inning: 1,
					Seed: baseSeed + int64(i),
				}
			}

			results, err := engine.RunBatch(cmd.Context(), jobs, workers)
			if err != nil {
				return err
			}

			tally := make(map[string]int, 16)
			stolenAttempts, stolenSuccesses := 0, 0
			totalHits, totalRuns, totalErrors := 0, 0, 0
			for _, r := range results {
				tally[r.Result.String()]++
				if r.StolenBaseAttempted {
					stolenAttempts++
					if r.StolenBaseSuccess {
						stolenSuccesses++
					}
				}
				totalHits += r.BattingDelta.H
				totalRuns += r.RunsScored
				for _, d := range r.FieldingDeltas {
					totalErrors += d.Errors
				}
			}

			logger().Info("batch complete",
				"count", count,
				"workers", workers,
				"seed", baseSeed,
				"stolen_base_attempts", stolenAttempts,
				"stolen_base_successes", stolenSuccesses,
				"total_hits", totalHits,
				"total_runs", totalRuns,
				"total_errors", totalErrors,
			)
			for result, n := range tally {
				logger().Info(result, "count", n)
			}
			return nil
		},
	}

	c.Flags().IntVar(&count, "count", 100, "number of at-bats to simulate")
	c.Flags().IntVar(&workers, "workers", 4, "worker pool size")
	return c
}
