package engine

import "sim-engine/models"

// LandingReport is the §6 diagnostic output of calc_ball_landing.
type LandingReport struct {
	LandingPos      models.Vec2
	LandingDistance float64
	FlightTime      float64
	MaxHeight       float64
	IsGroundBall    bool
	BattedBallType  models.BattedBallType
}

// CalcBallLanding is the §6 diagnostic interface calc_ball_landing:
// inputs direction/launch_angle/exit_velocity, output landing and flight
// metadata, independent of any particular defense or at-bat.
func CalcBallLanding(direction, launchAngle, exitVelocity float64) LandingReport {
	bbType := models.ClassifyBattedBallType(launchAngle, exitVelocity)
	traj := BuildTrajectory(models.BattedBall{
		Direction: direction, LaunchAngle: launchAngle, ExitVelocity: exitVelocity, Type: bbType,
	})
	return LandingReport{
		LandingPos:      traj.LandingPos,
		LandingDistance: traj.LandingDistance,
		FlightTime:      traj.StopTime(),
		MaxHeight:       traj.MaxHeight,
		IsGroundBall:    traj.IsGroundBall,
		BattedBallType:  bbType,
	}
}

// FielderDecisionRecord is one row of the §6 diagnostic output of
// evaluate_fielders: a fielder's computed role, reach time, and whether
// it can reach the ball at all.
type FielderDecisionRecord struct {
	Position       models.FieldPosition
	Role           models.FielderAction
	ReachTime      float64
	CanReach       bool
	InterceptPoint models.Vec2
}

// EvaluateFielders is the §6 diagnostic interface evaluate_fielders: runs
// a single Pass-1/Pass-2 scoring round (at ball-elapsed time zero) over a
// caller-supplied fielder layout and reports each agent's computed
// decision, without running the full tick loop to resolution.
func EvaluateFielders(landing LandingReport, fielderPositions map[models.FieldPosition]models.Vec2, bases models.BaseState, outs int) []FielderDecisionRecord {
	traj := models.NewTrajectoryFromLanding(landing.IsGroundBall, landing.LandingPos, landing.LandingDistance, landing.FlightTime, landing.MaxHeight)

	var agents AgentSet
	for i := 0; i < 9; i++ {
		pos := models.FieldPosition(i + 1)
		p := models.DummyPlayer(pos)
		agent := models.NewFielderAgent(p)
		if custom, ok := fielderPositions[pos]; ok {
			agent.Pos = custom
		}
		agents[i] = agent
	}
	agents.AssignPerception(traj, nil)

	RunPass1(agents, traj, 0)
	RunPass2(agents, traj, bases)

	records := make([]FielderDecisionRecord, 0, 9)
	for _, a := range agents {
		records = append(records, FielderDecisionRecord{
			Position:       a.Position,
			Role:           a.Action,
			ReachTime:      a.EstimatedArrival,
			CanReach:       a.PursuitScore > -1,
			InterceptPoint: a.TargetPos,
		})
	}
	return records
}
