package engine

import (
	"math/rand"

	"sim-engine/models"
)

// Tick durations (§4.7): coarser while the ball is still live in the
// air/on the ground, finer once it has been secured and a throw is in
// flight. Only PursuitTickSec is used by the loop below; runner resolution
// computes its time races in closed form and does not step ThrowTickSec.
const (
	PursuitTickSec = 0.1
	ThrowTickSec   = 0.05
)

// StandingReachHeight is the height below which a fly ball is considered
// catchable by an agent already within reach, without a running or
// diving attempt (§4.7).
const StandingReachHeight = 2.0

// Bounded maximum simulation time by ball type (§4.7, §5).
const (
	MaxGrounderTimeSec = 8.0
	MaxFlyTimeSec      = 12.0
)

// CatchAttemptKind classifies how a fielder reached the ball, which
// determines which success formula in catch.go applies (§4.8).
type CatchAttemptKind int

const (
	CatchNone CatchAttemptKind = iota
	CatchStandard
	CatchRunning
	CatchDiving
	CatchGroundIntercept
	CatchGroundChase
	CatchUnreachable
)

// TickOutcome is the result of running the tick loop to completion: the
// fielder (if any) that reached FIELDING, how it reached the ball, and
// enough context for catch.go and runners.go to resolve the play.
type TickOutcome struct {
	Fielder             *models.FielderAgent
	ElapsedTime         float64
	Attempt             CatchAttemptKind
	DistanceBeyondReach float64
	BallSpeedAtIntercept float64
	Forced              bool
	Retriever           *models.FielderAgent
}

// nearestOutfielder returns the outfield agent closest to pos, used as
// the retriever of last resort (§4.9, §4.11).
func nearestOutfielder(agents AgentSet, pos models.Vec2) *models.FielderAgent {
	var best *models.FielderAgent
	bestDist := -1.0
	for _, a := range agents {
		if !a.Position.IsOutfield() {
			continue
		}
		d := a.Pos.Dist(pos)
		if best == nil || d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best
}

// nearestInfielder returns the infield agent closest to pos, used as a
// retriever when a ball stops shallow (§4.9).
func nearestInfielder(agents AgentSet, pos models.Vec2) *models.FielderAgent {
	var best *models.FielderAgent
	bestDist := -1.0
	for _, a := range agents {
		if !a.Position.IsInfield() {
			continue
		}
		d := a.Pos.Dist(pos)
		if best == nil || d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best
}

// AgentSnapshot is one fielder's state at a single tick, the unit a
// TickTracer receives (§9's "state transitions per fielder per tick").
type AgentSnapshot struct {
	Position models.FieldPosition
	Pos      models.Vec2
	State    models.FielderState
	Action   models.FielderAction
}

// TickSnapshot is the full-field state at one instant of the tick loop:
// where the ball is and what every fielder is doing about it.
type TickSnapshot struct {
	Time    float64
	BallPos models.Vec2
	Agents  []AgentSnapshot
}

// TickTracer observes the tick loop as it runs, one call per tick, ahead
// of the loop's own catch/force-resolve decision. A nil tracer costs
// nothing beyond a branch per tick.
type TickTracer func(TickSnapshot)

func snapshotAgents(agents AgentSet, traj *models.BallTrajectory, t float64) TickSnapshot {
	snap := TickSnapshot{Time: t, BallPos: traj.PositionAt(t), Agents: make([]AgentSnapshot, 0, len(agents))}
	for _, a := range agents {
		if a == nil {
			continue
		}
		snap.Agents = append(snap.Agents, AgentSnapshot{
			Position: a.Position,
			Pos:      a.Pos,
			State:    a.State,
			Action:   a.Action,
		})
	}
	return snap
}

// RunTickLoop advances the tick simulation (§4.7) until a fielder reaches
// FIELDING, the ball stops and is claimed (chase-to-stop), or the bounded
// time cap is exhausted and the play is force-resolved (§4.11). tracer may
// be nil; when set, it is called once per tick with the field's state so a
// caller can broadcast the play as it unfolds instead of only its outcome.
func RunTickLoop(agents AgentSet, traj *models.BallTrajectory, bases models.BaseState, rng *rand.Rand, tracer TickTracer) TickOutcome {
	maxTime := MaxFlyTimeSec
	if traj.IsGroundBall {
		maxTime = MaxGrounderTimeSec
	}

	if tracer != nil {
		tracer(snapshotAgents(agents, traj, 0))
	}

	t := 0.0
	for t < maxTime {
		RunPass1(agents, traj, t)
		RunPass2(agents, traj, bases)

		next := t + PursuitTickSec
		for _, a := range agents {
			if a.State == models.StateFielding || a.State == models.StateThrowing {
				continue
			}
			a.Step(PursuitTickSec)
		}

		if tracer != nil {
			tracer(snapshotAgents(agents, traj, next))
		}

		if traj.IsGroundBall {
			if out, ok := checkGroundCatch(agents, traj, next); ok {
				return out
			}
			if next >= traj.StopTime() {
				if out, ok := checkChaseToStop(agents, traj, next); ok {
					return out
				}
			}
		} else {
			if out, ok := checkFlyCatch(agents, traj, next); ok {
				return out
			}
		}

		t = next
	}

	return forceResolve(agents, traj)
}

func checkGroundCatch(agents AgentSet, traj *models.BallTrajectory, t float64) (TickOutcome, bool) {
	ballPos := traj.PositionAt(t)
	for _, a := range agents {
		if a.State != models.StatePursuing {
			continue
		}
		reach := a.CatchReach()
		d := a.Pos.Dist(ballPos)
		if d <= reach {
			a.State = models.StateFielding
			return TickOutcome{
				Fielder:              a,
				ElapsedTime:          t,
				Attempt:              CatchGroundIntercept,
				BallSpeedAtIntercept: traj.SpeedAt(t),
				DistanceBeyondReach:  reach - d,
			}, true
		}
	}
	return TickOutcome{}, false
}

func checkChaseToStop(agents AgentSet, traj *models.BallTrajectory, t float64) (TickOutcome, bool) {
	stopPos := traj.PositionAt(traj.StopTime())
	for _, a := range agents {
		if a.State == models.StateFielding || a.State == models.StateThrowing {
			continue
		}
		if a.Pos.Dist(stopPos) <= a.CatchReach() && a.Position.IsInfield() {
			a.State = models.StateFielding
			return TickOutcome{
				Fielder:     a,
				ElapsedTime: t,
				Attempt:     CatchGroundChase,
			}, true
		}
	}
	return TickOutcome{}, false
}

func checkFlyCatch(agents AgentSet, traj *models.BallTrajectory, t float64) (TickOutcome, bool) {
	height := traj.HeightAt(t)
	ballPos := traj.PositionAt(t)

	if height <= StandingReachHeight {
		for _, a := range agents {
			if a.State != models.StatePursuing {
				continue
			}
			d := a.Pos.Dist(ballPos)
			if d <= a.CatchReach() {
				a.State = models.StateFielding
				return TickOutcome{Fielder: a, ElapsedTime: t, Attempt: CatchStandard}, true
			}
		}
	}

	if t >= traj.FlightTime {
		landing := traj.LandingPos
		var best *models.FielderAgent
		bestDist := -1.0
		for _, a := range agents {
			if a.State == models.StateFielding || a.State == models.StateThrowing {
				continue
			}
			d := a.Pos.Dist(landing)
			if best == nil || d < bestDist {
				best = a
				bestDist = d
			}
		}
		if best == nil {
			return TickOutcome{}, false
		}
		reach := best.CatchReach()
		beyond := bestDist - reach
		switch {
		case bestDist <= reach:
			best.State = models.StateFielding
			return TickOutcome{Fielder: best, ElapsedTime: t, Attempt: CatchStandard}, true
		case beyond <= 1.5:
			best.State = models.StateFielding
			return TickOutcome{Fielder: best, ElapsedTime: t, Attempt: CatchRunning, DistanceBeyondReach: beyond}, true
		case beyond <= 3.0:
			best.State = models.StateFielding
			return TickOutcome{Fielder: best, ElapsedTime: t, Attempt: CatchDiving, DistanceBeyondReach: beyond}, true
		default:
			best.State = models.StateFielding
			return TickOutcome{Fielder: best, ElapsedTime: t, Attempt: CatchUnreachable, DistanceBeyondReach: beyond}, true
		}
	}

	return TickOutcome{}, false
}

// forceResolve handles §4.11's bounded-time-exhaustion case: no fielder
// reached the ball within the time cap. A retriever is chosen (nearest
// outfielder, or a close infielder on a shallow-stopped grounder) and the
// play is flagged forced.
func forceResolve(agents AgentSet, traj *models.BallTrajectory) TickOutcome {
	var landing models.Vec2
	if traj.IsGroundBall {
		landing = traj.PositionAt(traj.StopTime())
	} else {
		landing = traj.LandingPos
	}

	retriever := nearestOutfielder(agents, landing)
	if retriever == nil || (traj.IsGroundBall && landing.Len() < 20) {
		if r := nearestInfielder(agents, landing); r != nil {
			retriever = r
		}
	}

	return TickOutcome{
		Retriever: retriever,
		Forced:    true,
		Attempt:   CatchUnreachable,
	}
}
