package engine

import "sim-engine/models"

// BuildTrajectory constructs the BallTrajectory for a sampled BattedBall
// per §4.4, routing to the fly or ground-ball model by type.
func BuildTrajectory(bb models.BattedBall) *models.BallTrajectory {
	if bb.Type == models.GroundBall {
		return models.NewGroundTrajectory(bb.Direction, bb.LaunchAngle, bb.ExitVelocity)
	}
	return models.NewFlyTrajectory(bb.Direction, bb.LaunchAngle, bb.ExitVelocity)
}

// IsHomeRun applies §4.1's two-part home-run test: effective landing
// distance at least the fence distance for this direction, and height at
// the fence at least fence height. The height is read on the
// carry-adjusted path, i.e. at the raw distance fence/CarryFactor. Ground
// balls are never home runs (§8's ground-ball cap).
func IsHomeRun(traj *models.BallTrajectory, trajectoryClass int) bool {
	if traj.IsGroundBall {
		return false
	}
	fence := models.FenceDistance(traj.Direction)
	effective := traj.EffectiveDistance(trajectoryClass)
	if effective < fence {
		return false
	}
	heightAtFence := traj.HeightAtDistance(fence / models.CarryFactor(trajectoryClass))
	return heightAtFence >= models.FenceHeight
}

// IsPhysicalDegeneracy reports §7's PhysicalDegeneracy condition: a
// trajectory with zero landing distance or zero flight/stop time, which
// the tick loop would otherwise divide by zero trying to resolve.
func IsPhysicalDegeneracy(traj *models.BallTrajectory) bool {
	if traj.LandingDistance <= 0 {
		return true
	}
	if traj.IsGroundBall {
		return traj.StopTime() <= 0
	}
	return traj.FlightTime <= 0
}
