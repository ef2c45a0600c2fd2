// Command nanosim drives the molecular particle simulation from a
// configuration file and reports the resulting assembly metrics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nanoforge/nanosim/sim"
)

var (
	logger *zap.Logger

	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "nanosim",
	Short: "Molecular particle simulation and emergent-structure detector",
	Long: `nanosim integrates a periodic-box particle system with an
activation-coupled force model, sources a 3D activation field from the
particles, and periodically classifies emergent assemblies.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if flagDebug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print an example simulation configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(sim.ExampleConfigFile)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"enable debug logging")
	rootCmd.AddCommand(exampleConfigCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
