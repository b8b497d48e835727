// Package cmd holds the atbatctl command tree, split by concern the way
// stormlightlabs-baseball splits cmd.go into ETLCmd/DbCmd/ServerCmd
// groups under a single RootCmd.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd builds the atbatctl root command and its subcommand tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atbatctl",
		Short: "Run and inspect the at-bat resolution engine from a terminal",
		Long: "atbatctl runs one-off at-bats and the engine's diagnostic\n" +
			"interfaces (calc-ball-landing, classify-batted-ball) without\n" +
			"standing up the HTTP diagnostic server.",
		PersistentPreRunE: bindConfig,
	}

	root.PersistentFlags().Int64("seed", 0, "rng seed (0 picks a random seed)")
	root.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	viper.BindPFlag("seed", root.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("ATBATCTL")
	viper.AutomaticEnv()

	root.AddCommand(SimulateCmd())
	root.AddCommand(LandingCmd())
	root.AddCommand(ClassifyCmd())
	root.AddCommand(BatchCmd())
	return root
}

func bindConfig(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if viper.GetBool("verbose") {
		level = log.DebugLevel
	}
	logger().SetLevel(level)
	return nil
}

var sharedLogger *log.Logger

// logger returns the CLI's leveled logger, created once so every command
// shares its level/formatting configuration.
func logger() *log.Logger {
	if sharedLogger == nil {
		sharedLogger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "atbatctl",
		})
	}
	return sharedLogger
}

// resolveSeed returns the seed bound from --seed/ATBATCTL_SEED, or a
// fresh one drawn from OS entropy (newEntropySeed) when unset, so
// repeated runs without --seed aren't all identical.
func resolveSeed() int64 {
	if s := viper.GetInt64("seed"); s != 0 {
		return s
	}
	return newEntropySeed()
}
