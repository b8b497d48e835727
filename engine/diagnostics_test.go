package engine

import (
	"testing"

	"sim-engine/models"
)

func TestCalcBallLandingMatchesBuildTrajectory(t *testing.T) {
	report := CalcBallLanding(45, 28, 160)
	bbType := models.ClassifyBattedBallType(28, 160)
	traj := BuildTrajectory(models.BattedBall{Direction: 45, LaunchAngle: 28, ExitVelocity: 160, Type: bbType})

	if report.LandingDistance != traj.LandingDistance {
		t.Errorf("CalcBallLanding distance = %v, want %v", report.LandingDistance, traj.LandingDistance)
	}
	if report.IsGroundBall != traj.IsGroundBall {
		t.Errorf("CalcBallLanding ground flag = %v, want %v", report.IsGroundBall, traj.IsGroundBall)
	}
	if report.BattedBallType != bbType {
		t.Errorf("CalcBallLanding type = %v, want %v", report.BattedBallType, bbType)
	}
}

func TestEvaluateFieldersReturnsAllNinePositions(t *testing.T) {
	landing := CalcBallLanding(45, 28, 160)
	records := EvaluateFielders(landing, nil, models.BaseState{}, 0)

	if len(records) != 9 {
		t.Fatalf("expected one record per fielder, got %d", len(records))
	}
	seen := make(map[models.FieldPosition]bool)
	for _, r := range records {
		seen[r.Position] = true
	}
	for i := 1; i <= 9; i++ {
		if !seen[models.FieldPosition(i)] {
			t.Errorf("missing a decision record for position %d", i)
		}
	}
}

func TestEvaluateFieldersHonorsCustomPositions(t *testing.T) {
	landing := CalcBallLanding(45, 2, 110)
	custom := map[models.FieldPosition]models.Vec2{
		models.PositionShortstop: landing.LandingPos,
	}
	records := EvaluateFielders(landing, custom, models.BaseState{}, 0)

	var ssRecord *FielderDecisionRecord
	for i := range records {
		if records[i].Position == models.PositionShortstop {
			ssRecord = &records[i]
		}
	}
	if ssRecord == nil {
		t.Fatal("missing shortstop record")
	}
	if !ssRecord.CanReach {
		t.Error("a shortstop starting exactly on the ball's landing spot should be able to reach it")
	}
}

func TestEvaluateFieldersGroundBallTrajectoryIsConsistent(t *testing.T) {
	landing := CalcBallLanding(60, 3, 130)
	if !landing.IsGroundBall {
		t.Fatal("fixture expected to classify as a ground ball")
	}
	traj := models.NewTrajectoryFromLanding(landing.IsGroundBall, landing.LandingPos, landing.LandingDistance, landing.FlightTime, landing.MaxHeight)
	stopPos := traj.PositionAt(traj.StopTime())
	if stopPos.Dist(landing.LandingPos) > 0.01 {
		t.Errorf("reconstructed trajectory should stop at the reported landing point: got %v want %v", stopPos, landing.LandingPos)
	}
}
