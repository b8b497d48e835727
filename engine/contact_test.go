package engine

import (
	"math/rand"
	"testing"

	"sim-engine/models"
)

func TestSampleBattedBallWithinBounds(t *testing.T) {
	batter, pitcher := avgBatter(), avgPitcher()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		bb := SampleBattedBall(batter, pitcher, rng)
		if bb.Direction < models.MinDirection || bb.Direction > models.MaxDirection {
			t.Fatalf("direction %v out of [%v,%v]", bb.Direction, models.MinDirection, models.MaxDirection)
		}
		if bb.LaunchAngle < models.MinLaunchAngle || bb.LaunchAngle > models.MaxLaunchAngle {
			t.Fatalf("launch angle %v out of [%v,%v]", bb.LaunchAngle, models.MinLaunchAngle, models.MaxLaunchAngle)
		}
		if bb.ExitVelocity < models.MinExitVelocity || bb.ExitVelocity > models.MaxExitVelocity {
			t.Fatalf("exit velocity %v out of [%v,%v]", bb.ExitVelocity, models.MinExitVelocity, models.MaxExitVelocity)
		}
	}
}

func TestPullAngleByHandedness(t *testing.T) {
	if pullAngle(models.HandRight) >= pullAngle(models.HandLeft) {
		t.Error("a left-handed batter should pull toward a larger direction angle than a right-handed one")
	}
}

func TestSinkerBiasDepressesLaunchAngle(t *testing.T) {
	batter := avgBatter()
	plainPitcher := avgPitcher()
	sinkerPitcher := models.Player{
		ID: "sinkerballer",
		Pitching: &models.PitchingAttributes{
			VelocityKMH: 140, Control: 50,
			Pitches: []models.Pitch{{Type: models.PitchSinker, Level: 7}},
		},
	}

	var plainSum, sinkerSum float64
	const n = 2000
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < n; i++ {
		plainSum += SampleBattedBall(batter, plainPitcher, rng).LaunchAngle
	}
	for i := 0; i < n; i++ {
		sinkerSum += SampleBattedBall(batter, sinkerPitcher, rng).LaunchAngle
	}

	if sinkerSum/n >= plainSum/n {
		t.Errorf("a high-level sinker should depress average launch angle: plain=%v sinker=%v", plainSum/n, sinkerSum/n)
	}
}

func TestTrajectoryAngleOffsetMonotonic(t *testing.T) {
	prev := trajectoryAngleOffset(1)
	for class := 2; class <= 4; class++ {
		cur := trajectoryAngleOffset(class)
		if cur <= prev {
			t.Errorf("trajectoryAngleOffset(%d)=%v should exceed trajectoryAngleOffset(%d)=%v", class, cur, class-1, prev)
		}
		prev = cur
	}
}
