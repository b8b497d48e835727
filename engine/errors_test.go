package engine

import (
	"testing"

	"sim-engine/models"
)

func TestDegenerateTrajectoryResolvesToGroundout(t *testing.T) {
	batter, pitcher := avgBatter(), avgPitcher()
	res := DegenerateTrajectory(batter, pitcher, models.BaseState{}, 1)
	if res.Result != models.ResultGroundout {
		t.Errorf("DegenerateTrajectory should resolve to a groundout, got %v", res.Result)
	}
	if res.NewBases.Outs != 2 {
		t.Errorf("DegenerateTrajectory should add one out, got %d", res.NewBases.Outs)
	}
	if len(res.Credits.Putouts) != 1 || res.Credits.Putouts[0] != models.PositionPitcher {
		t.Errorf("DegenerateTrajectory should credit the pitcher the putout, got %+v", res.Credits)
	}
}

func TestAttributionAmbiguousRequiresAllCreditsEmpty(t *testing.T) {
	if AttributionAmbiguous(models.FieldingCredits{Putouts: []models.FieldPosition{models.PositionPitcher}}) {
		t.Error("a play with a recorded putout should not be ambiguous")
	}
	if !AttributionAmbiguous(models.FieldingCredits{}) {
		t.Error("a play with no putouts, assists, or errors should be ambiguous")
	}
}
