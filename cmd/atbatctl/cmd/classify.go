package cmd

import (
	"github.com/spf13/cobra"

	"sim-engine/engine"
)

// ClassifyCmd creates the classify-batted-ball command: the §6
// diagnostic interface for batted-ball type classification alone.
func ClassifyCmd() *cobra.Command {
	var launchAngle, exitVelocity float64

	c := &cobra.Command{
		Use:   "classify-batted-ball",
		Short: "Classify a batted ball by launch angle and exit velocity",
		RunE: func(cmd *cobra.Command, args []string) error {
			bbType := engine.ClassifyBattedBallType(launchAngle, exitVelocity)
			logger().Info("batted ball classified", "type", bbType.String())
			return nil
		},
	}

	c.Flags().Float64Var(&launchAngle, "launch-angle", 15, "launch angle in degrees")
	c.Flags().Float64Var(&exitVelocity, "exit-velocity", 150, "exit velocity in km/h")
	return c
}
