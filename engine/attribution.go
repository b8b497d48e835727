package engine

import "sim-engine/models"

// CreditsForStrikeout returns the putout credit for a strikeout: always
// the catcher, never an assist (§4.10, §8 stat-conservation invariant).
func CreditsForStrikeout(catcher models.FieldPosition) models.FieldingCredits {
	return models.FieldingCredits{Putouts: []models.FieldPosition{catcher}}
}

// BattingDelta builds the incremental batting-stat credit for one
// resolved at-bat (§4.10).
func BattingDelta(batterID string, result models.AtBatResult, runs, rbi int) models.PlayerBattingDelta {
	d := models.PlayerBattingDelta{PlayerID: batterID, PA: 1, RBI: rbi}
	switch result {
	case models.ResultSingle, models.ResultInfieldHit:
		d.AB, d.H = 1, 1
	case models.ResultDouble:
		d.AB, d.H, d.Doubles = 1, 1, 1
	case models.ResultTriple:
		d.AB, d.H, d.Triples = 1, 1, 1
	case models.ResultHomeRun:
		d.AB, d.H, d.HR, d.R = 1, 1, 1, 1
	case models.ResultWalk:
		d.BB = 1
	case models.ResultHitByPitch:
		d.HBP = 1
	case models.ResultStrikeout:
		d.AB, d.SO = 1, 1
	case models.ResultGroundout, models.ResultFlyout, models.ResultLineout,
		models.ResultPopout, models.ResultDoublePlay, models.ResultError, models.ResultFieldersChoice:
		d.AB = 1
	case models.ResultSacrificeFly:
		// Sacrifice flies are not charged as at-bats.
	}
	return d
}

// PitchingDelta builds the incremental pitching-stat credit for one
// resolved at-bat.
func PitchingDelta(pitcherID string, result models.AtBatResult, runs int) models.PlayerPitchingDelta {
	d := models.PlayerPitchingDelta{PlayerID: pitcherID, BF: 1, ER: runs}
	switch result {
	case models.ResultSingle, models.ResultInfieldHit, models.ResultDouble, models.ResultTriple:
		d.H = 1
	case models.ResultHomeRun:
		d.H, d.HR = 1, 1
	case models.ResultWalk:
		d.BB = 1
	case models.ResultHitByPitch:
		d.HBP = 1
	case models.ResultStrikeout:
		d.SO, d.OutsAdded = 1, 1
	case models.ResultGroundout, models.ResultFlyout, models.ResultLineout, models.ResultPopout:
		d.OutsAdded = 1
	case models.ResultDoublePlay:
		d.OutsAdded = 2
	case models.ResultSacrificeFly:
		d.OutsAdded = 1
	}
	return d
}

// FieldingDeltas expands a resolved play's FieldingCredits into one
// delta per involved fielder (§4.10).
func FieldingDeltas(credits models.FieldingCredits) []models.PlayerFieldingDelta {
	var deltas []models.PlayerFieldingDelta
	for _, pos := range credits.Putouts {
		deltas = append(deltas, models.PlayerFieldingDelta{Position: pos, Putouts: 1})
	}
	for _, pos := range credits.Assists {
		deltas = append(deltas, models.PlayerFieldingDelta{Position: pos, Assists: 1})
	}
	for _, pos := range credits.Errors {
		deltas = append(deltas, models.PlayerFieldingDelta{Position: pos, Errors: 1})
	}
	return deltas
}

// AttributeDeltas fills BattingDelta, PitchingDelta, and FieldingDeltas on
// a resolved outcome (§1: "returns an AtBatOutcome plus incremental stat
// deltas"). defense is consulted only to resolve each credited fielder's
// PlayerID from its position; a nil or incomplete roster just leaves
// PlayerID blank on the corresponding delta.
func AttributeDeltas(outcome models.AtBatOutcome, batter, pitcher models.Player, defense map[models.FieldPosition]models.Player) models.AtBatOutcome {
	outcome.BattingDelta = BattingDelta(batter.ID, outcome.Result, outcome.RunsScored, outcome.RBI)
	outcome.PitchingDelta = PitchingDelta(pitcher.ID, outcome.Result, outcome.RunsScored)

	deltas := FieldingDeltas(outcome.FieldingCredits)
	for i := range deltas {
		if p, ok := defense[deltas[i].Position]; ok {
			deltas[i].PlayerID = p.ID
		}
	}
	outcome.FieldingDeltas = deltas
	return outcome
}
