package engine

import (
	"math/rand"

	"sim-engine/models"
)

// SimulateAtBat is the core's single inbound entry point (§6
// simulate_at_bat): given a batter, pitcher, defense, base/out state,
// and a caller-owned rng, it resolves exactly one plate appearance and
// returns a fully-formed AtBatOutcome. It never returns an error (§7):
// every recoverable failure mode is absorbed into the outcome itself.
func SimulateAtBat(
	batter, pitcher models.Player,
	defense map[models.FieldPosition]models.Player,
	bases models.BaseState,
	outs, inning int,
	rng *rand.Rand,
) models.AtBatOutcome {
	return simulateAtBat(batter, pitcher, defense, bases, outs, inning, rng, nil)
}

// SimulateAtBatWithTrace is SimulateAtBat with a TickTracer attached, for
// a caller (the diagnostic server's websocket stream) that wants to watch
// the tick loop's Pass-1/Pass-2 decisions as they happen rather than only
// receive the final outcome (§9). tracer is only invoked for at-bats that
// reach the tick loop; a strikeout, walk, home run, or degenerate
// trajectory never calls it.
func SimulateAtBatWithTrace(
	batter, pitcher models.Player,
	defense map[models.FieldPosition]models.Player,
	bases models.BaseState,
	outs, inning int,
	rng *rand.Rand,
	tracer TickTracer,
) models.AtBatOutcome {
	return simulateAtBat(batter, pitcher, defense, bases, outs, inning, rng, tracer)
}

func simulateAtBat(
	batter, pitcher models.Player,
	defense map[models.FieldPosition]models.Player,
	bases models.BaseState,
	outs, inning int,
	rng *rand.Rand,
	tracer TickTracer,
) models.AtBatOutcome {
	catcherArm := 50.0
	if defense != nil {
		if c, ok := defense[models.PositionCatcher]; ok && c.Batting != nil {
			catcherArm = c.Batting.Arm
		}
	}
	stolenBases, stolenOuts, stolenCredits, stolenAttempted := MaybeAttemptStolenBase(bases, catcherArm, models.PositionCatcher, outs, rng)
	if stolenAttempted {
		bases, outs = stolenBases, stolenOuts
	}

	ctx := models.GameContext{Outs: outs, Inning: inning}
	leverage := ctx.Leverage(bases)

	outcome := models.AtBatOutcome{
		BasesBefore:         bases,
		OutsBefore:          outs,
		PitchType:           choosePitchType(pitcher, rng),
		HighLeverage:        leverage >= 1.8,
		StolenBaseAttempted: stolenAttempted,
		StolenBaseSuccess:   stolenAttempted && len(stolenCredits.Putouts) == 0,
		StolenBaseCredits:   stolenCredits,
	}
	outcome.PitchLocation = models.PitchLocation{
		X: rng.NormFloat64() * 0.3,
		Y: 0.9 + rng.NormFloat64()*0.3,
	}

	if result, done := SamplePreContact(batter, pitcher, rng); done {
		return AttributeDeltas(finishPreContact(outcome, result, batter, pitcher, bases, outs), batter, pitcher, defense)
	}

	bb := SampleBattedBall(batter, pitcher, rng).Clamp()
	outcome.BattedBallType = &bb.Type
	outcome.Direction = &bb.Direction
	outcome.LaunchAngle = &bb.LaunchAngle
	outcome.ExitVelocity = &bb.ExitVelocity

	traj := BuildTrajectory(bb)

	if IsPhysicalDegeneracy(traj) {
		res := DegenerateTrajectory(batter, pitcher, bases, outs)
		return AttributeDeltas(applyResolution(outcome, res, batter, pitcher), batter, pitcher, defense)
	}

	trajClass := 2
	if batter.Batting != nil {
		trajClass = batter.Batting.Trajectory
	}
	if IsHomeRun(traj, trajClass) {
		return AttributeDeltas(finishHomeRun(outcome, batter, pitcher, bases, outs), batter, pitcher, defense)
	}

	agentsMap, missing := BuildAgents(defense)
	outcome.MissingDefensePositions = missing
	agentsMap.AssignPerception(traj, rng)

	tickOut := RunTickLoop(agentsMap, traj, bases, rng, tracer)

	if tickOut.Forced {
		outcome.ForcedResolution = true
		res := resolveForced(tickOut, batter, bases, outs)
		return AttributeDeltas(applyResolution(outcome, res, batter, pitcher), batter, pitcher, defense)
	}

	res := resolveTickOutcome(tickOut, bb, traj, batter, bases, outs, rng)
	outcome.FielderPos = fielderPosOf(tickOut.Fielder)
	return AttributeDeltas(applyResolution(outcome, res, batter, pitcher), batter, pitcher, defense)
}

func fielderPosOf(f *models.FielderAgent) *models.FieldPosition {
	if f == nil {
		return nil
	}
	p := f.Position
	return &p
}

func choosePitchType(pitcher models.Player, rng *rand.Rand) models.PitchType {
	if pitcher.Pitching == nil || len(pitcher.Pitching.Pitches) == 0 {
		return models.PitchFastball
	}
	idx := rng.Intn(len(pitcher.Pitching.Pitches))
	return pitcher.Pitching.Pitches[idx].Type
}

// finishPreContact builds the outcome for a strikeout, walk, or HBP
// resolved before the ball is put in play (§4.3).
func finishPreContact(outcome models.AtBatOutcome, result models.AtBatResult, batter, pitcher models.Player, bases models.BaseState, outs int) models.AtBatOutcome {
	outcome.Result = result
	newBases := bases

	switch result {
	case models.ResultStrikeout:
		newBases.Outs = outs + 1
		outcome.FieldingCredits = CreditsForStrikeout(models.PositionCatcher)
	case models.ResultWalk, models.ResultHitByPitch:
		advanced, runs := advanceOnForce(bases, batter)
		newBases = advanced
		newBases.Outs = outs
		outcome.RunsScored = runs
		outcome.RBI = runs
	}

	outcome.NewBaseState = newBases
	outcome.AttributionAmbiguous = AttributionAmbiguous(outcome.FieldingCredits) && result != models.ResultWalk && result != models.ResultHitByPitch
	return outcome
}

func finishHomeRun(outcome models.AtBatOutcome, batter, pitcher models.Player, bases models.BaseState, outs int) models.AtBatOutcome {
	outcome.Result = models.ResultHomeRun
	runs := 1 + bases.Count()
	outcome.RunsScored = runs
	outcome.RBI = runs
	outcome.NewBaseState = models.BaseState{Outs: outs}
	return outcome
}

// resolveForced implements §4.11's bounded-time-exhaustion fallback: the
// play is forced to a triple and every runner on base scores. No fielding
// credit is attributed, and the retriever forceResolve picked is not
// recorded on the resolution.
func resolveForced(tickOut TickOutcome, batter models.Player, bases models.BaseState, outs int) PlayResolution {
	newBases := models.BaseState{Third: newBaseRunner(batter), Outs: outs}
	runs := bases.Count()
	return PlayResolution{Result: models.ResultTriple, NewBases: newBases, RunsScored: runs, RBI: runs}
}

// resolveTickOutcome dispatches a completed tick-loop result to the
// appropriate runners.go resolution function (§4.9).
func resolveTickOutcome(tickOut TickOutcome, bb models.BattedBall, traj *models.BallTrajectory, batter models.Player, bases models.BaseState, outs int, rng *rand.Rand) PlayResolution {
	switch tickOut.Attempt {
	case CatchGroundIntercept:
		res := ResolveCatch(CatchGroundIntercept, tickOut.Fielder.Skills.Fielding, tickOut.BallSpeedAtIntercept, tickOut.DistanceBeyondReach, rng)
		if res.Caught {
			return ResolveGroundBallIntercepted(tickOut.Fielder, tickOut.Fielder.Pos, tickOut.ElapsedTime, false, batter, bases, outs, rng)
		}
		return ResolveGroundBallMissed(tickOut.Fielder, tickOut.Fielder.Pos, res.IsHardHitThrough, batter, bases, outs)

	case CatchGroundChase:
		return ResolveGroundBallIntercepted(tickOut.Fielder, tickOut.Fielder.Pos, tickOut.ElapsedTime, true, batter, bases, outs, rng)

	case CatchStandard, CatchRunning, CatchDiving:
		fielding := 50.0
		if tickOut.Fielder != nil {
			fielding = tickOut.Fielder.Skills.Fielding
		}
		res := ResolveCatch(tickOut.Attempt, fielding, 0, tickOut.DistanceBeyondReach, rng)
		if res.Caught {
			return ResolveFlyCaught(tickOut.Fielder, bb.Type, bases, outs, rng)
		}
		retriever := tickOut.Fielder
		return ResolveFlyUncaught(retriever, traj.LandingDistance, models.FenceDistance(traj.Direction), traj.PostLandingRollDistance(), batter, bases, outs)

	default: // CatchUnreachable or nil fielder: ball got away
		retriever := tickOut.Retriever
		if retriever == nil {
			retriever = tickOut.Fielder
		}
		if traj.IsGroundBall {
			if retriever == nil {
				return ResolveGroundBallUnreachable(nil, traj.PositionAt(traj.StopTime()), batter, bases, outs)
			}
			return ResolveGroundBallUnreachable(retriever, traj.PositionAt(traj.StopTime()), batter, bases, outs)
		}
		return ResolveFlyUncaught(retriever, traj.LandingDistance, models.FenceDistance(traj.Direction), traj.PostLandingRollDistance(), batter, bases, outs)
	}
}

func applyResolution(outcome models.AtBatOutcome, res PlayResolution, batter, pitcher models.Player) models.AtBatOutcome {
	outcome.Result = res.Result
	outcome.FieldingCredits = res.Credits
	outcome.NewBaseState = res.NewBases
	outcome.RunsScored = res.RunsScored
	outcome.RBI = res.RBI
	outcome.AttributionAmbiguous = res.AttributionAmbiguous || (AttributionAmbiguous(res.Credits) && res.Result.IsOut())
	return outcome
}
