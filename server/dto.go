package server

import (
	"sim-engine/engine"
	"sim-engine/models"
)

// The diagnostic HTTP server speaks its own JSON shapes rather than
// exposing the engine's internal structs directly, the same separation
// sim-engine's main.go draws between SimulationRequest/Response and the
// simulation package's own types.

// ballLandingRequest is the body of POST /v1/calc-ball-landing.
type ballLandingRequest struct {
	Direction    float64 `json:"direction"`
	LaunchAngle  float64 `json:"launch_angle"`
	ExitVelocity float64 `json:"exit_velocity"`
}

type ballLandingResponse struct {
	LandingPos      vec2JSON `json:"landing_pos"`
	LandingDistance float64  `json:"landing_distance"`
	FlightTime      float64  `json:"flight_time"`
	MaxHeight       float64  `json:"max_height"`
	IsGroundBall    bool     `json:"is_ground_ball"`
	BattedBallType  string   `json:"batted_ball_type"`
}

type vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// classifyRequest is the body of POST /v1/classify-batted-ball.
type classifyRequest struct {
	LaunchAngle  float64 `json:"launch_angle"`
	ExitVelocity float64 `json:"exit_velocity"`
}

type classifyResponse struct {
	BattedBallType string `json:"batted_ball_type"`
}

// resolveHitTypeRequest is the body of POST /v1/resolve-hit-type.
type resolveHitTypeRequest struct {
	LandingDistance float64 `json:"landing_distance"`
	BatterSpeed     float64 `json:"batter_speed"`
	FenceDistance   float64 `json:"fence_distance"`
}

type resolveHitTypeResponse struct {
	Result string `json:"result"`
}

// fielderPositionJSON is a caller-supplied override of one fielder's
// starting location, keyed by position abbreviation in the request body.
type evaluateFieldersRequest struct {
	Landing           ballLandingResponse        `json:"landing"`
	FielderPositions  map[string]vec2JSON        `json:"fielder_positions,omitempty"`
	Bases             baseStateJSON              `json:"bases"`
	Outs              int                        `json:"outs"`
}

type baseStateJSON struct {
	First  *baseRunnerJSON `json:"first,omitempty"`
	Second *baseRunnerJSON `json:"second,omitempty"`
	Third  *baseRunnerJSON `json:"third,omitempty"`
}

type baseRunnerJSON struct {
	PlayerID string  `json:"player_id"`
	Speed    float64 `json:"speed"`
}

func (b baseStateJSON) toModel() models.BaseState {
	toRunner := func(r *baseRunnerJSON) *models.BaseRunner {
		if r == nil {
			return nil
		}
		return &models.BaseRunner{PlayerID: r.PlayerID, Speed: r.Speed}
	}
	return models.BaseState{
		First:  toRunner(b.First),
		Second: toRunner(b.Second),
		Third:  toRunner(b.Third),
	}
}

type fielderDecisionJSON struct {
	Position       string   `json:"position"`
	Role           string   `json:"role"`
	ReachTime      float64  `json:"reach_time"`
	CanReach       bool     `json:"can_reach"`
	InterceptPoint vec2JSON `json:"intercept_point"`
}

var fielderActionNames = [...]string{"pursue", "cover", "backup", "hold", "relay"}

func actionName(a models.FielderAction) string {
	if int(a) < 0 || int(a) >= len(fielderActionNames) {
		return "unknown"
	}
	return fielderActionNames[a]
}

// simulateAtBatRequest is the body of POST /v1/simulate-at-bat. Batter,
// pitcher, and defense are flattened scouting bundles rather than full
// models.Player values; the server fills in the structural fields
// (ID/name/handedness) the engine doesn't read during resolution.
type simulateAtBatRequest struct {
	Batter   battingLineJSON            `json:"batter"`
	Pitcher  pitchingLineJSON           `json:"pitcher"`
	Defense  map[string]defenderLineJSON `json:"defense"`
	Bases    baseStateJSON              `json:"bases"`
	Outs     int                        `json:"outs"`
	Inning   int                        `json:"inning"`
	Seed     int64                      `json:"seed"`
}

type battingLineJSON struct {
	Contact    float64 `json:"contact"`
	Power      float64 `json:"power"`
	Trajectory int     `json:"trajectory"`
	Speed      float64 `json:"speed"`
	Arm        float64 `json:"arm"`
	Fielding   float64 `json:"fielding"`
	Catching   float64 `json:"catching"`
	Eye        float64 `json:"eye"`
}

func (b battingLineJSON) toModel() *models.BattingAttributes {
	return &models.BattingAttributes{
		Contact: b.Contact, Power: b.Power, Trajectory: b.Trajectory,
		Speed: b.Speed, Arm: b.Arm, Fielding: b.Fielding,
		Catching: b.Catching, Eye: b.Eye,
	}
}

type pitchJSON struct {
	Type  string `json:"type"`
	Level int    `json:"level"`
}

type pitchingLineJSON struct {
	VelocityKMH     float64     `json:"velocity_kmh"`
	Control         float64     `json:"control"`
	Pitches         []pitchJSON `json:"pitches"`
	Stamina         float64     `json:"stamina"`
	MentalToughness float64     `json:"mental_toughness"`
	Arm             float64     `json:"arm"`
	Fielding        float64     `json:"fielding"`
	Catching        float64     `json:"catching"`
}

var pitchTypeByName = map[string]models.PitchType{
	"fastball": models.PitchFastball, "sinker": models.PitchSinker,
	"slider": models.PitchSlider, "curveball": models.PitchCurveball,
	"changeup": models.PitchChangeup, "cutter": models.PitchCutter,
	"splitter": models.PitchSplitter, "knuckleball": models.PitchKnuckleball,
}

func (p pitchingLineJSON) toModel() *models.PitchingAttributes {
	pitches := make([]models.Pitch, 0, len(p.Pitches))
	for _, pj := range p.Pitches {
		pt, ok := pitchTypeByName[pj.Type]
		if !ok {
			pt = models.PitchFastball
		}
		pitches = append(pitches, models.Pitch{Type: pt, Level: pj.Level})
	}
	return &models.PitchingAttributes{
		VelocityKMH: p.VelocityKMH, Control: p.Control, Pitches: pitches,
		Stamina: p.Stamina, MentalToughness: p.MentalToughness,
		Arm: p.Arm, Fielding: p.Fielding, Catching: p.Catching,
	}
}

type defenderLineJSON struct {
	Batting battingLineJSON `json:"batting"`
}

var positionByAbbrev = map[string]models.FieldPosition{
	"P": models.PositionPitcher, "C": models.PositionCatcher,
	"1B": models.PositionFirstBase, "2B": models.PositionSecondBase,
	"3B": models.PositionThirdBase, "SS": models.PositionShortstop,
	"LF": models.PositionLeftField, "CF": models.PositionCenterField,
	"RF": models.PositionRightField,
}

type simulateAtBatResponse struct {
	Result                  string               `json:"result"`
	BattedBallType          *string              `json:"batted_ball_type,omitempty"`
	FielderPos              *string              `json:"fielder_position,omitempty"`
	RunsScored              int                  `json:"runs_scored"`
	RBI                     int                  `json:"rbi"`
	NewBaseState            baseStateJSON        `json:"new_base_state"`
	ForcedResolution        bool                 `json:"forced_resolution"`
	AttributionAmbiguous    bool                 `json:"attribution_ambiguous"`
	HighLeverage            bool                 `json:"high_leverage"`
	StolenBaseAttempted     bool                 `json:"stolen_base_attempted"`
	StolenBaseSuccess       bool                 `json:"stolen_base_success"`
	MissingDefensePositions []string             `json:"missing_defense_positions,omitempty"`
	BattingDelta            battingDeltaJSON     `json:"batting_delta"`
	PitchingDelta           pitchingDeltaJSON    `json:"pitching_delta"`
	FieldingDeltas          []fieldingDeltaJSON  `json:"fielding_deltas,omitempty"`
}

type battingDeltaJSON struct {
	PA      int `json:"pa"`
	AB      int `json:"ab"`
	H       int `json:"h"`
	Doubles int `json:"doubles"`
	Triples int `json:"triples"`
	HR      int `json:"hr"`
	BB      int `json:"bb"`
	HBP     int `json:"hbp"`
	SO      int `json:"so"`
	RBI     int `json:"rbi"`
	R       int `json:"r"`
}

func fromBattingDelta(d models.PlayerBattingDelta) battingDeltaJSON {
	return battingDeltaJSON{
		PA: d.PA, AB: d.AB, H: d.H, Doubles: d.Doubles, Triples: d.Triples,
		HR: d.HR, BB: d.BB, HBP: d.HBP, SO: d.SO, RBI: d.RBI, R: d.R,
	}
}

type pitchingDeltaJSON struct {
	BF        int `json:"bf"`
	H         int `json:"h"`
	HR        int `json:"hr"`
	BB        int `json:"bb"`
	HBP       int `json:"hbp"`
	SO        int `json:"so"`
	ER        int `json:"er"`
	OutsAdded int `json:"outs_added"`
}

func fromPitchingDelta(d models.PlayerPitchingDelta) pitchingDeltaJSON {
	return pitchingDeltaJSON{
		BF: d.BF, H: d.H, HR: d.HR, BB: d.BB, HBP: d.HBP,
		SO: d.SO, ER: d.ER, OutsAdded: d.OutsAdded,
	}
}

type fieldingDeltaJSON struct {
	PlayerID string `json:"player_id"`
	Position string `json:"position"`
	Putouts  int    `json:"putouts"`
	Assists  int    `json:"assists"`
	Errors   int    `json:"errors"`
}

func fromFieldingDeltas(deltas []models.PlayerFieldingDelta) []fieldingDeltaJSON {
	out := make([]fieldingDeltaJSON, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, fieldingDeltaJSON{
			PlayerID: d.PlayerID, Position: d.Position.String(),
			Putouts: d.Putouts, Assists: d.Assists, Errors: d.Errors,
		})
	}
	return out
}

type agentSnapshotJSON struct {
	Position string   `json:"position"`
	Pos      vec2JSON `json:"pos"`
	State    string   `json:"state"`
	Action   string   `json:"action"`
}

type tickSnapshotJSON struct {
	Time    float64              `json:"time"`
	BallPos vec2JSON             `json:"ball_pos"`
	Agents  []agentSnapshotJSON  `json:"agents"`
}

func fromTickSnapshot(s engine.TickSnapshot) tickSnapshotJSON {
	agents := make([]agentSnapshotJSON, 0, len(s.Agents))
	for _, a := range s.Agents {
		agents = append(agents, agentSnapshotJSON{
			Position: a.Position.String(),
			Pos:      vec2JSON{X: a.Pos.X, Y: a.Pos.Y},
			State:    a.State.String(),
			Action:   actionName(a.Action),
		})
	}
	return tickSnapshotJSON{
		Time:    s.Time,
		BallPos: vec2JSON{X: s.BallPos.X, Y: s.BallPos.Y},
		Agents:  agents,
	}
}

func fromBaseState(bs models.BaseState) baseStateJSON {
	fromRunner := func(r *models.BaseRunner) *baseRunnerJSON {
		if r == nil {
			return nil
		}
		return &baseRunnerJSON{PlayerID: r.PlayerID, Speed: r.Speed}
	}
	return baseStateJSON{First: fromRunner(bs.First), Second: fromRunner(bs.Second), Third: fromRunner(bs.Third)}
}
