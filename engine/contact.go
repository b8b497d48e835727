package engine

import (
	"math/rand"

	"sim-engine/models"
)

// trajectoryAngleOffset maps a batter's 1..4 trajectory class to a
// launch-angle offset in degrees (§4.2).
func trajectoryAngleOffset(class int) float64 {
	switch class {
	case 1:
		return -3
	case 2:
		return 0
	case 3:
		return 3
	case 4:
		return 6
	default:
		return 0
	}
}

// pullAngle returns the handedness-driven pull direction mean (§4.2).
func pullAngle(hand models.Hand) float64 {
	if hand == models.HandLeft {
		return 52
	}
	return 38
}

// SampleBattedBall produces a BattedBall from batter and pitcher
// attributes via timing/offset sampling (§4.2). rng is the caller-owned
// pseudo-random generator; identical (attributes, rng state) always
// yields identical output (§5 randomness injection).
func SampleBattedBall(batter, pitcher models.Player, rng *rand.Rand) models.BattedBall {
	bat := batter.Batting
	if bat == nil {
		bat = &models.BattingAttributes{Contact: 50, Power: 50, Trajectory: 2}
	}

	powerBias := (bat.Power - 50) / 50 * 10
	dirMean := pullAngle(batter.BatHand) + powerBias

	direction := dirMean + rng.NormFloat64()*18
	if direction < 0 || direction > 90 {
		direction = dirMean + rng.NormFloat64()*38
	}
	direction = clamp(direction, models.MinDirection, models.MaxDirection)

	sinkerBias := 0.0
	if pitcher.Pitching != nil {
		sinkerBias = pitcher.Pitching.SinkerBias()
	}
	launchMean := 15 + bat.Power/100*10 - bat.Contact/100*5 +
		trajectoryAngleOffset(bat.Trajectory) - sinkerBias
	launchAngle := clamp(launchMean+rng.NormFloat64()*16, models.MinLaunchAngle, models.MaxLaunchAngle)

	breaking := 0.0
	if pitcher.Pitching != nil {
		breaking = float64(pitcher.Pitching.BreakingQuality())
	}
	evMean := 130 + bat.Power/100*40 + bat.Contact/100*10 - breaking*1.5
	exitVelocity := clamp(evMean+rng.NormFloat64()*18, models.MinExitVelocity, models.MaxExitVelocity)

	return models.BattedBall{
		Direction:    direction,
		LaunchAngle:  launchAngle,
		ExitVelocity: exitVelocity,
		Type:         models.ClassifyBattedBallType(launchAngle, exitVelocity),
	}
}
