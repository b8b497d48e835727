package engine

import "sim-engine/models"

// ClassifyBattedBallType is the §6 diagnostic interface
// classify_batted_ball_type: inputs launch angle and exit velocity,
// output the ball-type enum. The monotonic-in-angle classification logic
// itself lives on models.BattedBallType since it is also used internally
// by the contact model; this is the named external entry point.
func ClassifyBattedBallType(launchAngle, exitVelocity float64) models.BattedBallType {
	return models.ClassifyBattedBallType(launchAngle, exitVelocity)
}

// ResolveHitTypeFromLanding is the §6 diagnostic interface
// resolve_hit_type_from_landing: given a landing point, batter speed, and
// the fence distance in that direction, determine single/double/triple.
// A landing under 25 m is always a single (the short-landing cap); beyond
// that it uses fixed distance/speed thresholds rather than the engine's
// time race, and it takes no ball type, so no ground-ball cap applies.
func ResolveHitTypeFromLanding(landingDistance, batterSpeed, fenceDistance float64) models.AtBatResult {
	switch {
	case landingDistance < 25:
		return models.ResultSingle
	case landingDistance >= fenceDistance*0.85:
		if batterSpeed >= 70 {
			return models.ResultTriple
		}
		return models.ResultDouble
	case landingDistance >= 55:
		return models.ResultDouble
	default:
		return models.ResultSingle
	}
}
