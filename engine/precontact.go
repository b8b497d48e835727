package engine

import (
	"math/rand"

	"sim-engine/models"
)

// clamp restricts v to [lo,hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finisherBonus rewards a pitcher with any level>=5 pitch, per §4.3.
func finisherBonus(pitching *models.PitchingAttributes) float64 {
	if pitching != nil && pitching.HasFinisher() {
		return 0.03
	}
	return 0
}

// hbpRate, walkRate, and strikeoutRate are functions of control, eye,
// velocity, contact, and the finisher bonus (§4.3). There is no single
// canonical formula for this; it follows the same
// roll-against-cumulative-threshold shape used elsewhere for outcome
// sampling, scaled to plausible per-at-bat rates.
func hbpRate(pitching *models.PitchingAttributes) float64 {
	control := 50.0
	if pitching != nil {
		control = pitching.Control
	}
	return clamp(0.004+(100-control)/100*0.012, 0.002, 0.02)
}

func walkRate(batting *models.BattingAttributes, pitching *models.PitchingAttributes) float64 {
	eye := 50.0
	if batting != nil {
		eye = batting.Eye
	}
	control := 50.0
	if pitching != nil {
		control = pitching.Control
	}
	rate := 0.05 + (100-control)/100*0.06 + eye/100*0.035 - finisherBonus(pitching)
	return clamp(rate, 0.03, 0.14)
}

func strikeoutRate(batting *models.BattingAttributes, pitching *models.PitchingAttributes) float64 {
	contact := 50.0
	if batting != nil {
		contact = batting.Contact
	}
	velocity, breaking := 140.0, 0.0
	if pitching != nil {
		velocity = pitching.VelocityKMH
		breaking = float64(pitching.BreakingQuality())
	}
	rate := 0.14 + (velocity-140)/400 + breaking*0.008 - contact/100*0.14 + finisherBonus(pitching)
	return clamp(rate, 0.08, 0.35)
}

// SamplePreContact resolves §4.3: roll a uniform [0,1) and check
// cumulative thresholds in the fixed order hit-by-pitch, walk, strikeout.
// It returns (result, true) if the at-bat ended here, or (zero, false) if
// the ball is put in play and control passes to the contact model.
func SamplePreContact(batter, pitcher models.Player, rng *rand.Rand) (models.AtBatResult, bool) {
	roll := rng.Float64()

	hbp := hbpRate(pitcher.Pitching)
	if roll < hbp {
		return models.ResultHitByPitch, true
	}

	walk := walkRate(batter.Batting, pitcher.Pitching)
	if roll < hbp+walk {
		return models.ResultWalk, true
	}

	so := strikeoutRate(batter.Batting, pitcher.Pitching)
	if roll < hbp+walk+so {
		return models.ResultStrikeout, true
	}

	return models.AtBatResult(0), false
}
