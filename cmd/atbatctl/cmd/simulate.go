package cmd

import (
	"math/rand"

	"github.com/spf13/cobra"

	"sim-engine/engine"
	"sim-engine/models"
)

// SimulateCmd creates the simulate command: one at-bat between two
// scouting-rated players, printed via the CLI's leveled logger.
func SimulateCmd() *cobra.Command {
	var (
		contact, power, speed, eye   float64
		velocity, control            float64
		outs, inning                 int
		onFirst, onSecond, onThird   bool
	)

	c := &cobra.Command{
		Use:   "simulate",
		Short: "Resolve a single at-bat",
		Long:  "Simulate one plate appearance between a scouting-rated batter and pitcher, with an average defense behind them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			batter := models.Player{
				ID: "batter", Name: "batter",
				Batting: &models.BattingAttributes{
					Contact: contact, Power: power, Trajectory: 2,
					Speed: speed, Arm: 50, Fielding: 50, Catching: 50, Eye: eye,
				},
			}
			pitcher := models.Player{
				ID: "pitcher", Name: "pitcher",
				Pitching: &models.PitchingAttributes{
					VelocityKMH: velocity, Control: control, Stamina: 70,
					MentalToughness: 55, Arm: 45, Fielding: 45, Catching: 45,
					Pitches: []models.Pitch{{Type: models.PitchFastball, Level: 4}},
				},
			}
			defense := averageDefense()
			bases := models.BaseState{}
			if onFirst {
				bases.First = &models.BaseRunner{PlayerID: "r1", Speed: 60}
			}
			if onSecond {
				bases.Second = &models.BaseRunner{PlayerID: "r2", Speed: 60}
			}
			if onThird {
				bases.Third = &models.BaseRunner{PlayerID: "r3", Speed: 60}
			}

			seed := resolveSeed()
			rng := rand.New(rand.NewSource(seed))
			outcome := engine.SimulateAtBat(batter, pitcher, defense, bases, outs, inning, rng)

			logger().Info("at-bat resolved",
				"seed", seed,
				"result", outcome.Result.String(),
				"runs", outcome.RunsScored,
				"rbi", outcome.RBI,
				"forced", outcome.ForcedResolution,
				"ambiguous", outcome.AttributionAmbiguous,
				"stolen_base_attempted", outcome.StolenBaseAttempted,
				"missing_defense", outcome.MissingDefensePositions,
			)
			logger().Info("batting delta", "ab", outcome.BattingDelta.AB, "h", outcome.BattingDelta.H,
				"bb", outcome.BattingDelta.BB, "so", outcome.BattingDelta.SO, "rbi", outcome.BattingDelta.RBI)
			logger().Info("pitching delta", "bf", outcome.PitchingDelta.BF, "outs_added", outcome.PitchingDelta.OutsAdded,
				"er", outcome.PitchingDelta.ER)
			for _, d := range outcome.FieldingDeltas {
				logger().Info("fielding delta", "position", d.Position.String(), "putouts", d.Putouts,
					"assists", d.Assists, "errors", d.Errors)
			}
			return nil
		},
	}

	c.Flags().Float64Var(&contact, "contact", 55, "batter contact rating (0-100)")
	c.Flags().Float64Var(&power, "power", 55, "batter power rating (0-100)")
	c.Flags().Float64Var(&speed, "speed", 55, "batter speed rating (0-100)")
	c.Flags().Float64Var(&eye, "eye", 55, "batter plate discipline rating (0-100)")
	c.Flags().Float64Var(&velocity, "velocity", 145, "pitcher fastball velocity (km/h)")
	c.Flags().Float64Var(&control, "control", 55, "pitcher control rating (0-100)")
	c.Flags().IntVar(&outs, "outs", 0, "outs before the at-bat (0-2)")
	c.Flags().IntVar(&inning, "inning", 1, "inning number")
	c.Flags().BoolVar(&onFirst, "on-first", false, "place a runner on first")
	c.Flags().BoolVar(&onSecond, "on-second", false, "place a runner on second")
	c.Flags().BoolVar(&onThird, "on-third", false, "place a runner on third")
	return c
}

func averageDefense() map[models.FieldPosition]models.Player {
	defense := make(map[models.FieldPosition]models.Player, 9)
	for i := 1; i <= 9; i++ {
		pos := models.FieldPosition(i)
		defense[pos] = models.DummyPlayer(pos)
	}
	return defense
}
