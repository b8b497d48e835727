package models

// Player is a read-only external collaborator: the batter, pitcher, and
// fielders passed into the engine for a single at-bat. The core never
// mutates a Player; season/roster/contract state is an external concern
// (see spec §1 Non-goals).
type Player struct {
	ID        string
	Name      string
	Age       int
	Position  FieldPosition
	BatHand   Hand
	ThrowHand Hand

	Batting  *BattingAttributes  // nil for pure pitchers
	Pitching *PitchingAttributes // nil for position players

	CareerStats CareerStats
}

// Hand is batting/throwing handedness.
type Hand int

const (
	HandRight Hand = iota
	HandLeft
	HandSwitch
)

// BattingAttributes is the 0-100 scouting bundle used by the contact
// model (§3).
type BattingAttributes struct {
	Contact    float64
	Power      float64
	Trajectory int // 1..4, see CarryFactor
	Speed      float64
	Arm        float64
	Fielding   float64
	Catching   float64
	Eye        float64
}

// PitchType enumerates the pitches in a pitcher's repertoire.
type PitchType int

const (
	PitchFastball PitchType = iota
	PitchSinker
	PitchSlider
	PitchCurveball
	PitchChangeup
	PitchCutter
	PitchSplitter
	PitchKnuckleball
)

// Pitch is one entry in a pitcher's mix: a type at a quality level 0..7.
type Pitch struct {
	Type  PitchType
	Level int // 0..7
}

// PitchingAttributes is the 0-100 scouting bundle for pitchers, plus
// velocity (km/h) and a repertoire of pitches with quality levels (§3).
type PitchingAttributes struct {
	VelocityKMH     float64
	Control         float64
	Pitches         []Pitch
	Stamina         float64
	MentalToughness float64
	Arm             float64
	Fielding        float64
	Catching        float64
}

// BestPitchLevel returns the highest level among the pitcher's repertoire,
// used by the finisher bonus in pre-contact sampling (§4.3).
func (pa *PitchingAttributes) BestPitchLevel() int {
	best := 0
	for _, p := range pa.Pitches {
		if p.Level > best {
			best = p.Level
		}
	}
	return best
}

// HasFinisher reports whether any pitch is level >= 5 (§4.3).
func (pa *PitchingAttributes) HasFinisher() bool {
	return pa.BestPitchLevel() >= 5
}

// SinkerBias returns a launch-angle-depressing bias proportional to the
// level of any sinker/splitter-style pitch thrown (§4.2).
func (pa *PitchingAttributes) SinkerBias() float64 {
	bias := 0.0
	for _, p := range pa.Pitches {
		if p.Type == PitchSinker || p.Type == PitchSplitter {
			if b := float64(p.Level) * 0.6; b > bias {
				bias = b
			}
		}
	}
	return bias
}

// BreakingQuality returns the highest level among breaking/offspeed
// pitches, used to depress exit velocity (§4.2).
func (pa *PitchingAttributes) BreakingQuality() int {
	best := 0
	for _, p := range pa.Pitches {
		switch p.Type {
		case PitchSlider, PitchCurveball, PitchChangeup, PitchCutter, PitchKnuckleball:
			if p.Level > best {
				best = p.Level
			}
		}
	}
	return best
}

// CareerStats is an opaque season/career stat line, read-only context
// the core carries but does not interpret.
type CareerStats struct {
	PA, AB, H, HR int
	ERA, FIP      float64
}

// Team is a read-only external collaborator.
type Team struct {
	ID     string
	Name   string
	Roster []Player
	Active []string // player IDs on the active roster
	Lineup LineupPlan
}

// LineupPlan is the batting order and rotation state (§3), external and
// read-only to the core.
type LineupPlan struct {
	BattingOrder     []string // player IDs, 9 entries
	StartingRotation []string
	RotationIndex    int
}

// DummyPlayer returns a neutral-skill stand-in for a missing fielder
// (§4.11, §7 ImpossibleConfiguration). It is never a batter or pitcher —
// those are always supplied explicitly by the caller.
func DummyPlayer(pos FieldPosition) Player {
	return Player{
		ID:        "dummy-" + pos.String(),
		Name:      "Replacement " + pos.String(),
		Position:  pos,
		BatHand:   HandRight,
		ThrowHand: HandRight,
		Batting: &BattingAttributes{
			Contact: 50, Power: 50, Trajectory: 2, Speed: 50,
			Arm: 50, Fielding: 50, Catching: 50, Eye: 50,
		},
	}
}
