package engine

import (
	"math/rand"

	"sim-engine/models"
)

// PlayResolution is the fully-resolved outcome of the fielding phase:
// the at-bat result, fielding credits, the new base state, and the
// runs/RBI produced (§4.9, §4.10).
type PlayResolution struct {
	Result               models.AtBatResult
	Credits              models.FieldingCredits
	NewBases             models.BaseState
	RunsScored           int
	RBI                  int
	AttributionAmbiguous bool
}

func throwSpeed(arm float64) float64        { return 30 + 20*arm/100 }
func secureTimePhase1(fielding float64) float64 { return 0.20 + 0.20*(1-fielding/100) }
func secureTimePhase2(fielding float64) float64 { return 0.15 + 0.15*(1-fielding/100) }
func transferTime(arm float64) float64      { return 0.25 + 0.15*(1-arm/100) }
func pickupTime(catching float64) float64   { return 0.3 + 0.4*(1-catching/100) }

func runnerToFirstTime(speed float64) float64 {
	return 0.65 + models.BaseLength/models.RunnerSpeed(speed)
}

func runnerToBaseTime(n int, speed float64) float64 {
	return 0.3 + float64(n)*models.BaseLength/models.RunnerSpeed(speed)
}

func dpSuccessRate(batterSpeed float64) float64 {
	return clamp(0.65+0.15*(100-batterSpeed)/100, 0, 1)
}

// newBaseRunner seats the batter as a new BaseRunner once they reach
// base, copying the batter's ID/Name and speed (50 when Batting is nil).
func newBaseRunner(batter models.Player) *models.BaseRunner {
	speed := 50.0
	if batter.Batting != nil {
		speed = batter.Batting.Speed
	}
	return &models.BaseRunner{PlayerID: batter.ID, Name: batter.Name, Speed: speed}
}

// advanceOnForce shifts existing runners forward by one base wherever a
// force applies, used by walks and the force-advancement portion of a
// ground-ball play.
func advanceOnForce(bases models.BaseState, batter models.Player) (models.BaseState, int) {
	runs := 0
	next := bases
	if bases.First != nil {
		if bases.Second != nil {
			if bases.Third != nil {
				runs++
			}
			next.Third = bases.Second
		}
		next.Second = bases.First
	}
	next.First = newBaseRunner(batter)
	return next, runs
}

// ResolveGroundBallIntercepted implements §4.9's intercepted-grounder
// time race: defense time (arrival + secure + transfer + throw) against
// runner-to-first, with a double-play upgrade when a force is in effect.
func ResolveGroundBallIntercepted(fielder *models.FielderAgent, catchPos models.Vec2, arrivalTime float64, phase2 bool, batter models.Player, bases models.BaseState, outs int, rng *rand.Rand) PlayResolution {
	secure := secureTimePhase1(fielder.Skills.Fielding)
	if phase2 {
		secure = secureTimePhase2(fielder.Skills.Fielding)
	}
	transfer := transferTime(fielder.Skills.Arm)
	throwDist := catchPos.Dist(models.BasePosition(models.BaseFirst))
	defenseTime := arrivalTime + secure + transfer + throwDist/throwSpeed(fielder.Skills.Arm)

	batterSpeed := 50.0
	if batter.Batting != nil {
		batterSpeed = batter.Batting.Speed
	}
	runnerTime := runnerToFirstTime(batterSpeed)

	if defenseTime >= runnerTime {
		newBases, runs := advanceOnForce(bases, batter)
		newBases.Outs = outs
		return PlayResolution{
			Result:     models.ResultInfieldHit,
			NewBases:   newBases,
			RunsScored: runs,
			RBI:        runs,
		}
	}

	if bases.ForceAt(models.BaseSecond) && outs < 2 && rng.Float64() < dpSuccessRate(batterSpeed) {
		newBases := bases
		newBases.First = nil
		newBases.Outs = outs + 2
		return PlayResolution{
			Result: models.ResultDoublePlay,
			Credits: models.FieldingCredits{
				Assists: []models.FieldPosition{fielder.Position, models.PositionSecondBase},
				Putouts: []models.FieldPosition{models.PositionSecondBase, models.PositionFirstBase},
			},
			NewBases: newBases,
		}
	}

	newBases := bases
	newBases.Outs = outs + 1
	assists := []models.FieldPosition{}
	if fielder.Position != models.PositionFirstBase {
		assists = append(assists, fielder.Position)
	}
	return PlayResolution{
		Result: models.ResultGroundout,
		Credits: models.FieldingCredits{
			Putouts: []models.FieldPosition{models.PositionFirstBase},
			Assists: assists,
		},
		NewBases: newBases,
	}
}

// ResolveGroundBallMissed implements the error and hard-hit-through
// branches of a ground-ball intercept attempt gone wrong (§4.8, §9): a
// genuine miss on a catchable ball is an error; a failed attempt on a
// hard-hit (>=20 m/s) ball through an unreachable gap is scored a hit.
func ResolveGroundBallMissed(fielder *models.FielderAgent, catchPos models.Vec2, isHardHitThrough bool, batter models.Player, bases models.BaseState, outs int) PlayResolution {
	newBases, runs := advanceOnForce(bases, batter)
	newBases.Outs = outs

	if isHardHitThrough {
		return PlayResolution{Result: models.ResultSingle, NewBases: newBases, RunsScored: runs, RBI: runs}
	}
	return PlayResolution{
		Result:     models.ResultError,
		Credits:    models.FieldingCredits{Errors: []models.FieldPosition{fielder.Position}},
		NewBases:   newBases,
		RunsScored: runs,
	}
}

// ResolveGroundBallUnreachable handles a grounder no agent could reach
// before it stopped: existing runners advance on force only, and the
// batter gets a single, or a double when the ball stopped 35 m or more
// from home. The retriever argument is not consulted and no time race is
// run.
func ResolveGroundBallUnreachable(retriever *models.FielderAgent, landing models.Vec2, batter models.Player, bases models.BaseState, outs int) PlayResolution {
	newBases, runs := advanceOnForce(bases, batter)
	newBases.Outs = outs
	result := models.ResultSingle
	if landing.Len() >= 35 {
		result = models.ResultDouble
	}
	return PlayResolution{Result: result, NewBases: newBases, RunsScored: runs, RBI: runs}
}

// ResolveFlyCaught implements §4.9's caught-fly branch: flyout/lineout/
// popout by batted-ball type, with a sacrifice-fly upgrade when a tag-up
// throw fails to beat the runner home.
func ResolveFlyCaught(fielder *models.FielderAgent, bbType models.BattedBallType, bases models.BaseState, outs int, rng *rand.Rand) PlayResolution {
	result := models.ResultFlyout
	switch bbType {
	case models.LineDrive:
		result = models.ResultLineout
	case models.Popup:
		result = models.ResultPopout
	}

	newBases := bases
	newBases.Outs = outs + 1
	runs := 0

	if bases.Third != nil && outs < 2 {
		tagUpSuccess := 0.55 + fielder.Skills.Arm/100*0.1
		if rng.Float64() < tagUpSuccess {
			newBases.Third = nil
			runs = 1
			return PlayResolution{
				Result:  models.ResultSacrificeFly,
				Credits: models.FieldingCredits{Putouts: []models.FieldPosition{fielder.Position}},
				NewBases: newBases, RunsScored: runs, RBI: runs,
			}
		}
	}

	return PlayResolution{
		Result:   result,
		Credits:  models.FieldingCredits{Putouts: []models.FieldPosition{fielder.Position}},
		NewBases: newBases,
	}
}

// landingZoneBouncePenalty returns §4.9's bounce penalty (s) as a
// function of landing distance: a shot near the fence costs extra pickup
// time scrambling off the wall.
func landingZoneBouncePenalty(distance, fenceDistance float64) float64 {
	if distance >= fenceDistance-5 {
		return 1.2
	}
	if distance >= 70 {
		return 0.6
	}
	return 0.2
}

// ResolveFlyUncaught implements §4.9's hit-advancement protocol for an
// uncaught fly/line ball: defense-time-to-base vs runner-time-to-base,
// assigning the batter to the furthest base it can reach under the
// short-landing (<25 m) cap. It takes no ball type, so it applies no
// ground-ball cap; ground balls are resolved by the ground-ball functions
// above. rollDistance is the ball's post-landing
// roll (models.BallTrajectory.PostLandingRollDistance) the retriever has
// to additionally cover past its initial read of the landing spot.
func ResolveFlyUncaught(retriever *models.FielderAgent, distance, fenceDistance, rollDistance float64, batter models.Player, bases models.BaseState, outs int) PlayResolution {
	batterSpeed := 50.0
	if batter.Batting != nil {
		batterSpeed = batter.Batting.Speed
	}

	bounce := landingZoneBouncePenalty(distance, fenceDistance)
	pickup := pickupTime(retriever.Skills.Catching)
	ballArrival := distance / 30.0 // rough flight-to-landing approximation already spent by the tick loop
	additionalRun := rollDistance / models.MaxSpeed(retriever.Skills.Speed)

	defenseTo := func(base models.Base) float64 {
		throwDist := models.BasePosition(base).Dist(models.Vec2{})
		return ballArrival + additionalRun + bounce + pickup + throwDist/throwSpeed(retriever.Skills.Arm)
	}
	runnerTo := func(n int) float64 { return runnerToBaseTime(n, batterSpeed) }

	result := models.ResultSingle
	if distance >= 25 {
		if runnerTo(2) < defenseTo(models.BaseSecond)-0.3 {
			result = models.ResultDouble
			if runnerTo(3) < defenseTo(models.BaseThird)-0.9 {
				result = models.ResultTriple
			}
		}
	}
	if distance < 25 {
		result = models.ResultSingle
	}

	newBases, runsOnForce := advanceOnForce(bases, batter)
	switch result {
	case models.ResultDouble:
		newBases = bases
		newBases.First = nil
		newBases.Second = newBaseRunner(batter)
		runsOnForce = 0
		if bases.Third != nil {
			runsOnForce++
		}
		if bases.Second != nil {
			runsOnForce++
		}
		if bases.First != nil {
			newBases.Third = bases.First
		}
	case models.ResultTriple:
		newBases = models.BaseState{Third: newBaseRunner(batter)}
		runsOnForce = bases.Count()
	}
	newBases.Outs = outs

	return PlayResolution{Result: result, NewBases: newBases, RunsScored: runsOnForce, RBI: runsOnForce}
}

// StolenBaseAttempt implements §4.9's pre-at-bat stolen base: a success
// advances the runner and credits a stolen base; a failure credits the
// catcher an assist, the covering fielder a putout, and adds an out.
func StolenBaseAttempt(runner *models.BaseRunner, from models.Base, catcherArm float64, catcher, covering models.FieldPosition, outs int, rng *rand.Rand) (success bool, newOuts int, credits models.FieldingCredits) {
	successRate := clamp(0.35+runner.Speed/100*0.45-catcherArm/100*0.25, 0.2, 0.9)
	if rng.Float64() < successRate {
		return true, outs, models.FieldingCredits{}
	}
	return false, outs + 1, models.FieldingCredits{
		Putouts: []models.FieldPosition{covering},
		Assists: []models.FieldPosition{catcher},
	}
}

// stealAttemptChance is the probability a lead runner with an open base
// ahead tries for it before the pitch, increasing with speed. This is the
// attempt gate; StolenBaseAttempt itself is the outcome roll.
func stealAttemptChance(speed float64) float64 {
	return 0.25 + 0.20*speed/100
}

// minStealSpeed is the speed rating below which a runner never attempts a
// steal (§4.9 supplement): the lead runner has to be a real basestealing
// threat, not just unobstructed.
const minStealSpeed = 70.0

// MaybeAttemptStolenBase runs the pre-at-bat stolen-base step (SPEC_FULL
// §4): the most advanced runner with the next base open and enough speed
// may try for it before the pitch. Restricted to fewer than two outs so a
// caught stealing here never ends the half-inning before a pitch is
// thrown — SimulateAtBat has no result value for that case. Returns the
// (possibly unchanged) base state, outs, any fielding credits from a
// caught stealing, and whether an attempt happened at all.
func MaybeAttemptStolenBase(bases models.BaseState, catcherArm float64, catcher models.FieldPosition, outs int, rng *rand.Rand) (models.BaseState, int, models.FieldingCredits, bool) {
	if outs >= 2 {
		return bases, outs, models.FieldingCredits{}, false
	}

	attempt := func(runner *models.BaseRunner, from models.Base, covering models.FieldPosition) (models.BaseState, int, models.FieldingCredits, bool) {
		if rng.Float64() >= stealAttemptChance(runner.Speed) {
			return bases, outs, models.FieldingCredits{}, false
		}
		success, newOuts, credits := StolenBaseAttempt(runner, from, catcherArm, catcher, covering, outs, rng)
		newBases := bases
		if from == models.BaseSecond {
			newBases.Second = nil
			if success {
				newBases.Third = runner
			}
		} else {
			newBases.First = nil
			if success {
				newBases.Second = runner
			}
		}
		newBases.Outs = newOuts
		return newBases, newOuts, credits, true
	}

	switch {
	case bases.Third == nil && bases.Second != nil && bases.Second.Speed >= minStealSpeed:
		return attempt(bases.Second, models.BaseSecond, models.PositionThirdBase)
	case bases.Second == nil && bases.First != nil && bases.First.Speed >= minStealSpeed:
		return attempt(bases.First, models.BaseFirst, models.PositionSecondBase)
	default:
		return bases, outs, models.FieldingCredits{}, false
	}
}
