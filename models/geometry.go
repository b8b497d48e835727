package models

import "math"

// Physics constants. Deviation from these values is a behavioral change,
// not a tuning knob — see spec §6.
const (
	Gravity               = 9.8   // m/s**2
	BatHeight             = 1.2   // m, height of contact above home plate
	DragFactor            = 0.63  // horizontal-distance attenuation on fly balls
	FlightTimeFactor      = 0.85  // raw-to-effective flight time scaling
	FenceBase             = 100.0 // m, distance down both foul lines
	FenceCenterExtra      = 22.0  // m, additional distance at dead center
	FenceHeight           = 4.0   // m
	BaseLength            = 27.4  // m, distance between adjacent bases
	GroundBallAvgSpeedRatio = 0.5 // uniform-deceleration ground-ball model (spec §9: later profile)

	// PostLandingRollFraction and PostLandingRollWindowSec bound the short
	// roll a fly/line/popup ball takes after landing (§4.4).
	PostLandingRollFraction  = 0.1 // fraction of landing horizontal speed retained as roll speed
	PostLandingRollWindowSec = 0.4 // roll duration cap, s
)

// TrajectoryCarryFactors maps a batter's trajectory class (1..4) to the
// post-flight-time distance multiplier used for home-run determination.
var TrajectoryCarryFactors = [4]float64{1.02, 1.12, 1.17, 1.22}

// Vec2 is a point or displacement in meters. Home plate is the origin,
// +y points toward center field, +x toward the first-base side.
type Vec2 struct {
	X, Y float64
}

// Add returns the vector sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Base identifies a base (or home plate) as a throw/advance target.
type Base int

const (
	BaseHome Base = iota
	BaseFirst
	BaseSecond
	BaseThird
)

// HomePlate and the three bases, fixed field coordinates (meters).
var (
	HomePlate  = Vec2{X: 0, Y: 0}
	FirstBase  = Vec2{X: 19.4, Y: 19.4}
	SecondBase = Vec2{X: 0, Y: 38.8}
	ThirdBase  = Vec2{X: -19.4, Y: 19.4}
)

// BasePosition returns the fixed field coordinate for a base.
func BasePosition(b Base) Vec2 {
	switch b {
	case BaseFirst:
		return FirstBase
	case BaseSecond:
		return SecondBase
	case BaseThird:
		return ThirdBase
	default:
		return HomePlate
	}
}

// FieldPosition enumerates defensive positions 1..9 (P/C/1B/2B/3B/SS/LF/CF/RF).
type FieldPosition int

const (
	PositionPitcher FieldPosition = iota + 1
	PositionCatcher
	PositionFirstBase
	PositionSecondBase
	PositionThirdBase
	PositionShortstop
	PositionLeftField
	PositionCenterField
	PositionRightField
)

func (p FieldPosition) String() string {
	names := [...]string{"", "P", "C", "1B", "2B", "3B", "SS", "LF", "CF", "RF"}
	if p < PositionPitcher || p > PositionRightField {
		return "?"
	}
	return names[p]
}

// HomePosition returns a defender's nominal starting location for a given
// field position. These are typical MLB depth/angle starting spots and are
// the "proximity" reference point used by the autonomous decision scoring
// in engine (§4.6).
func HomePosition(p FieldPosition) Vec2 {
	switch p {
	case PositionPitcher:
		return Vec2{X: 0, Y: 18.4}
	case PositionCatcher:
		return Vec2{X: 0, Y: -1.0}
	case PositionFirstBase:
		return Vec2{X: 21.0, Y: 28.0}
	case PositionSecondBase:
		return Vec2{X: 12.0, Y: 45.0}
	case PositionThirdBase:
		return Vec2{X: -21.0, Y: 28.0}
	case PositionShortstop:
		return Vec2{X: -12.0, Y: 46.0}
	case PositionLeftField:
		return Vec2{X: -45.0, Y: 85.0}
	case PositionCenterField:
		return Vec2{X: 0.0, Y: 100.0}
	case PositionRightField:
		return Vec2{X: 45.0, Y: 85.0}
	default:
		return Vec2{}
	}
}

// IsInfield reports whether the position fields ground balls from the
// infield ring (used to gate chase-to-stop eligibility, §4.9).
func (p FieldPosition) IsInfield() bool {
	switch p {
	case PositionFirstBase, PositionSecondBase, PositionThirdBase, PositionShortstop:
		return true
	default:
		return false
	}
}

// IsOutfield reports whether the position plays the outfield.
func (p FieldPosition) IsOutfield() bool {
	switch p {
	case PositionLeftField, PositionCenterField, PositionRightField:
		return true
	default:
		return false
	}
}

// FenceDistance returns the fence distance in meters along a given
// direction in degrees, where 0 is the left-field line, 45 is dead center,
// and 90 is the right-field line (§4.1).
func FenceDistance(directionDeg float64) float64 {
	return FenceBase + FenceCenterExtra*math.Sin(directionDeg*math.Pi/90.0)
}

// CarryFactor returns the post-flight-time distance multiplier for a
// batter trajectory class in 1..4, clamping out-of-range classes to the
// nearest valid one.
func CarryFactor(trajectoryClass int) float64 {
	idx := trajectoryClass - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return TrajectoryCarryFactors[idx]
}
