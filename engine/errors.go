package engine

import "sim-engine/models"

// Taxonomy implements §7's four recoverable failure categories. None of
// them are returned as Go errors: every function in this package always
// produces a well-formed value, and the taxonomy below is purely for
// classifying *why* a particular outcome took the shape it did, for
// audit/trace purposes (see the audit package).

// ImpossibleConfiguration is recorded when BuildAgents had to substitute
// a dummy fielder for a missing defensive position.
type ImpossibleConfiguration struct {
	MissingPositions []models.FieldPosition
}

// DegenerateTrajectory resolves §7's PhysicalDegeneracy case with a
// trivial infield groundout rather than letting the tick loop divide by
// a zero flight/stop time.
func DegenerateTrajectory(batter, pitcher models.Player, bases models.BaseState, outs int) PlayResolution {
	newBases := bases
	newBases.Outs = outs + 1
	return PlayResolution{
		Result:  models.ResultGroundout,
		Credits: models.FieldingCredits{Putouts: []models.FieldPosition{models.PositionPitcher}},
		NewBases: newBases,
	}
}

// AttributionAmbiguous reports whether a resolved play left every credit
// field empty (§7 AttributionAmbiguity) — there was no plausible fielder
// to credit, and higher layers may reconcile it.
func AttributionAmbiguous(c models.FieldingCredits) bool {
	return len(c.Putouts) == 0 && len(c.Assists) == 0 && len(c.Errors) == 0
}
