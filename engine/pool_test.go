package engine

import (
	"context"
	"testing"

	"sim-engine/models"
)

func TestRunBatchReturnsResultsInJobOrder(t *testing.T) {
	batter, pitcher := avgBatter(), avgPitcher()
	defense := avgDefense()

	jobs := make([]AtBatJob, 20)
	for i := range jobs {
		jobs[i] = AtBatJob{
			Batter: batter, Pitcher: pitcher, Defense: defense,
			Bases: models.BaseState{}, Outs: 0, Inning: 1,
			Seed: int64(i),
		}
	}

	results, err := RunBatch(context.Background(), jobs, 4)
	if err != nil {
		t.Fatalf("RunBatch returned an error: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}

	single, err := RunBatch(context.Background(), jobs, 1)
	if err != nil {
		t.Fatalf("single-worker RunBatch returned an error: %v", err)
	}
	for i := range results {
		if results[i].Result != single[i].Result {
			t.Errorf("job %d: concurrent result %v differs from single-worker result %v for the same seed", i, results[i].Result, single[i].Result)
		}
	}
}

func TestRunBatchEmptyJobsReturnsEmptySlice(t *testing.T) {
	results, err := RunBatch(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("unexpected error on empty batch: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected zero results for an empty job list, got %d", len(results))
	}
}

func TestRunBatchRespectsCancelledContext(t *testing.T) {
	batter, pitcher := avgBatter(), avgPitcher()
	defense := avgDefense()
	jobs := []AtBatJob{{Batter: batter, Pitcher: pitcher, Defense: defense, Seed: 1}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, jobs, 2)
	if err == nil {
		t.Error("expected an error from a pre-cancelled context")
	}
}
