package cmd

import (
	"github.com/spf13/cobra"

	"sim-engine/engine"
)

// LandingCmd creates the calc-ball-landing command: the §6 diagnostic
// interface exposed directly on the terminal, independent of any at-bat.
func LandingCmd() *cobra.Command {
	var direction, launchAngle, exitVelocity float64

	c := &cobra.Command{
		Use:   "calc-ball-landing",
		Short: "Compute where a batted ball lands",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := engine.CalcBallLanding(direction, launchAngle, exitVelocity)
			logger().Info("ball landing",
				"type", report.BattedBallType.String(),
				"landing_x", report.LandingPos.X,
				"landing_y", report.LandingPos.Y,
				"distance", report.LandingDistance,
				"flight_time", report.FlightTime,
				"max_height", report.MaxHeight,
				"ground_ball", report.IsGroundBall,
			)
			return nil
		},
	}

	c.Flags().Float64Var(&direction, "direction", 0, "spray direction in degrees: 0 is the left-field line, 45 dead center, 90 the right-field line")
	c.Flags().Float64Var(&launchAngle, "launch-angle", 15, "launch angle in degrees")
	c.Flags().Float64Var(&exitVelocity, "exit-velocity", 150, "exit velocity in km/h")
	return c
}
