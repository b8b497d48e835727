package engine

import (
	"math/rand"

	"sim-engine/models"
)

// AgentSet is the nine fielders for one at-bat, indexed 0..8 for
// positions 1..9 (§5: "agents can be an ordered array indexed by
// position").
type AgentSet [9]*models.FielderAgent

// BuildAgents creates the per-at-bat fielder agents from the current
// defense (§3 "created at the start of an at-bat from the current
// defensive lineup"). Any missing position is substituted with a dummy
// fielder and flagged (§7 ImpossibleConfiguration, §4.11).
func BuildAgents(defense map[models.FieldPosition]models.Player) (AgentSet, []models.FieldPosition) {
	var agents AgentSet
	var substituted []models.FieldPosition
	for i := 0; i < 9; i++ {
		pos := models.FieldPosition(i + 1)
		p, ok := defense[pos]
		if !ok {
			p = models.DummyPlayer(pos)
			substituted = append(substituted, pos)
		}
		agents[i] = models.NewFielderAgent(p)
	}
	return agents, substituted
}

// AssignPerception samples each agent's perceived landing point once, up
// front, per §3's perception model. Fly/line/popup balls get Gaussian
// noise that decays with max height; ground balls are perceived exactly
// (a grounder's path is not subject to the same height-judgment error).
func (agents *AgentSet) AssignPerception(traj *models.BallTrajectory, rng *rand.Rand) {
	sigma := 0.0
	if !traj.IsGroundBall {
		sigma = models.PerceptionSigmaForHeight(traj.MaxHeight)
	}
	for _, a := range agents {
		a.PerceptionSigma = sigma
		if sigma <= 0 || rng == nil {
			a.PerceivedLanding = traj.LandingPos
			continue
		}
		a.PerceivedLanding = models.Vec2{
			X: traj.LandingPos.X + rng.NormFloat64()*sigma,
			Y: traj.LandingPos.Y + rng.NormFloat64()*sigma,
		}
	}
}

// closenessScore maps a distance into [-1,1]: 1 at distance 0, -1 at or
// beyond maxRelevant (§4.6's proximity/mobility factors).
func closenessScore(dist, maxRelevant float64) float64 {
	return 1 - 2*clamp(dist/maxRelevant, 0, 1)
}

const proximityRelevantDist = 60.0

// groundIntercept is the result of searching a ground ball's path for
// the earliest point an agent could reach it (§4.6 Pass 1).
type groundIntercept struct {
	found       bool
	chaseToStop bool
	target      models.Vec2
	arrivalTime float64
	marginM     float64
}

// findGroundIntercept searches the ball's remaining path from ballElapsed
// forward for the earliest time the agent's reachable radius (including
// catch reach) covers the ball's position, per §4.6. Falling back to the
// stop point, then to chase-to-stop within stopTime+4.0s.
func findGroundIntercept(agent *models.FielderAgent, traj *models.BallTrajectory, ballElapsed float64) groundIntercept {
	const step = 0.1
	stopTime := traj.StopTime()
	maxSpeed := agent.CurrentMaxSpeed()
	if agent.State == models.StateReady || agent.State == models.StateReacting {
		maxSpeed = models.MaxSpeed(agent.Skills.Speed)
	}
	catchReach := agent.CatchReach()

	for tc := ballElapsed; tc <= stopTime; tc += step {
		window := tc - ballElapsed
		ballPos := traj.PositionAt(tc)
		reach := models.ReachableDistance(window, maxSpeed) + catchReach
		d := agent.Pos.Dist(ballPos)
		if d <= reach {
			return groundIntercept{found: true, target: ballPos, arrivalTime: tc, marginM: reach - d}
		}
	}

	stopPos := traj.PositionAt(stopTime)
	window := stopTime - ballElapsed
	reach := models.ReachableDistance(window, maxSpeed) + catchReach
	d := agent.Pos.Dist(stopPos)
	if d <= reach {
		return groundIntercept{found: true, chaseToStop: true, target: stopPos, arrivalTime: stopTime, marginM: reach - d}
	}

	chaseWindow := stopTime + 4.0 - ballElapsed
	reach = models.ReachableDistance(chaseWindow, maxSpeed) + catchReach
	if d <= reach {
		return groundIntercept{found: true, chaseToStop: true, target: stopPos, arrivalTime: ballElapsed + d/maxSpeed, marginM: reach - d}
	}

	return groundIntercept{found: false}
}

// scorePursuitPass1 computes one agent's raw, order-independent pursuit
// score for the current tick (§4.6 Pass 1).
func scorePursuitPass1(agent *models.FielderAgent, traj *models.BallTrajectory, ballElapsed float64) {
	if traj.IsGroundBall {
		gi := findGroundIntercept(agent, traj, ballElapsed)
		if !gi.found {
			agent.PursuitScore = -1
			return
		}
		proximity := closenessScore(models.HomePosition(agent.Position).Dist(gi.target), proximityRelevantDist)
		mobility := closenessScore(agent.Pos.Dist(gi.target), proximityRelevantDist)
		marginScore := 0.5 + 0.5*clamp(gi.marginM/5, 0, 1)
		agent.PursuitScore = clamp(0.3*proximity+0.2*mobility+0.4*marginScore, -1, 1)
		agent.TargetPos = gi.target
		agent.EstimatedArrival = gi.arrivalTime
		return
	}

	remaining := traj.FlightTime - ballElapsed
	if remaining < 0 {
		remaining = 0
	}
	dist := agent.Pos.Dist(agent.PerceivedLanding)
	maxSpeed := models.MaxSpeed(agent.Skills.Speed)
	reachable := models.ReachableDistance(remaining+1.0, maxSpeed) + agent.CatchReach()
	if dist > reachable {
		agent.PursuitScore = -1
		return
	}
	margin := reachable - dist
	proximity := closenessScore(models.HomePosition(agent.Position).Dist(agent.PerceivedLanding), proximityRelevantDist)
	mobility := closenessScore(dist, proximityRelevantDist)
	marginScore := clamp(margin/5, 0, 1)
	agent.PursuitScore = clamp(0.3*proximity+0.2*mobility+0.4*marginScore, -1, 1)
	agent.TargetPos = agent.PerceivedLanding
	agent.EstimatedArrival = ballElapsed + remaining
}

// RunPass1 scores every agent independently (§5: order-independent by
// construction — each agent reads only its own state plus the immutable
// trajectory).
func RunPass1(agents AgentSet, traj *models.BallTrajectory, ballElapsed float64) {
	for _, a := range agents {
		if a.State == models.StateFielding || a.State == models.StateThrowing {
			continue
		}
		scorePursuitPass1(a, traj, ballElapsed)
	}
}

// coverDamping applies §4.6's cover damping: 0.5x on ground balls,
// distance-scaled on fly balls (0.15 near, 0.7 deep).
func coverDamping(traj *models.BallTrajectory) float64 {
	if traj.IsGroundBall {
		return 0.5
	}
	return clamp(0.15+(traj.LandingDistance/100)*0.55, 0.15, 0.7)
}

// coverScore scores an agent covering base: -1 unless the agent's
// position naturally covers that base, otherwise its damped closeness to it.
func coverScore(agent *models.FielderAgent, base models.Base, traj *models.BallTrajectory) float64 {
	natural := map[models.FieldPosition]models.Base{
		models.PositionFirstBase:  models.BaseFirst,
		models.PositionSecondBase: models.BaseSecond,
		models.PositionShortstop:  models.BaseSecond,
		models.PositionThirdBase:  models.BaseThird,
		models.PositionCatcher:    models.BaseHome,
	}
	if natural[agent.Position] != base {
		return -1
	}
	proximity := closenessScore(agent.Pos.Dist(models.BasePosition(base)), 30)
	return clamp(proximity*coverDamping(traj), -1, 1)
}

// backupScore gives a modest score to an outfielder or off-ball infielder
// backing up the play's most likely throw lane.
func backupScore(agent *models.FielderAgent, traj *models.BallTrajectory) float64 {
	if agent.Position.IsOutfield() {
		return 0.2
	}
	return 0.1
}

const holdScore = 0.05

// relayEligible reports whether the ball qualifies for a relay role: a
// high ball landing >=60m (§4.6).
func relayEligible(traj *models.BallTrajectory) bool {
	return !traj.IsGroundBall && traj.LandingDistance >= 60
}

// cutoffPoint returns the relay cutoff target, 40% of the landing
// distance along the ball's direction (§4.6).
func cutoffPoint(traj *models.BallTrajectory) models.Vec2 {
	return traj.LandingPos.Scale(0.4)
}

// RunPass2 converts Pass-1 scores into final per-agent actions,
// respecting concurrency caps and calloff priority (§4.6 Pass 2). It
// reads the complete, already-computed set of Pass-1 outputs and writes
// only to each agent's own fields, so results are independent of
// iteration order (§5).
func RunPass2(agents AgentSet, traj *models.BallTrajectory, bases models.BaseState) {
	pursuitCap := 1
	if !traj.IsGroundBall && traj.MaxHeight < 5 {
		pursuitCap = 2
	} else if traj.IsGroundBall {
		pursuitCap = 2
	}

	for _, a := range agents {
		if a.State == models.StateFielding || a.State == models.StateThrowing {
			continue
		}
		if a.PursuitScore <= -1 {
			continue
		}
		higher := 0
		for _, other := range agents {
			if other == a {
				continue
			}
			if other.PursuitScore > a.PursuitScore {
				higher++
			}
		}
		if higher >= pursuitCap {
			a.PursuitScore = -1
			a.HasYielded = true
		}
	}

	relayAssigned := false
	for _, a := range agents {
		if a.State == models.StateFielding || a.State == models.StateThrowing {
			continue
		}

		best := models.ActionHold
		bestScore := holdScore
		var bestBase *models.Base

		if a.PursuitScore > bestScore {
			best = models.ActionPursue
			bestScore = a.PursuitScore
			bestBase = nil
		}

		for _, base := range []models.Base{models.BaseFirst, models.BaseSecond, models.BaseThird, models.BaseHome} {
			cs := coverScore(a, base, traj)
			if cs > bestScore {
				best = models.ActionCover
				bestScore = cs
				b := base
				bestBase = &b
			}
		}

		if bs := backupScore(a, traj); bs > bestScore {
			best = models.ActionBackup
			bestScore = bs
			bestBase = nil
		}

		if !relayAssigned && relayEligible(traj) && a.PursuitScore <= -1 && !a.Position.IsOutfield() {
			rs := 0.8 * closenessScore(models.HomePosition(a.Position).Dist(cutoffPoint(traj)), proximityRelevantDist)
			if rs > bestScore {
				best = models.ActionRelay
				bestScore = rs
				bestBase = nil
				relayAssigned = true
			}
		}

		a.Action = best
		a.CoverBase = bestBase
		a.CallingIntensity = clamp(bestScore, 0, 1)

		switch best {
		case models.ActionPursue:
			if a.State == models.StateReady {
				a.State = models.StateReacting
			} else if a.ReactionLeft <= 0 {
				a.State = models.StatePursuing
			}
		case models.ActionCover:
			a.State = models.StateCovering
			if bestBase != nil {
				a.TargetPos = models.BasePosition(*bestBase)
			}
		case models.ActionBackup:
			a.State = models.StateBackingUp
		case models.ActionRelay:
			a.State = models.StateBackingUp
			a.TargetPos = cutoffPoint(traj)
		case models.ActionHold:
			a.State = models.StateHolding
		}
	}
}
