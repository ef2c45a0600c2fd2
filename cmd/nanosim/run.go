package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nanoforge/nanosim/sim"
)

var (
	flagConfig   string
	flagDuration float64
	flagSummary  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a configuration file",
	Long: `Reads a [Simulation] configuration file, runs the step loop for the
configured total time (or an explicit --duration), and writes a YAML run
summary. Ctrl-C stops the loop cleanly at the next step boundary.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringVarP(&flagConfig, "config", "c", "",
		"simulation configuration file (required)")
	runCmd.Flags().Float64VarP(&flagDuration, "duration", "d", 0,
		"simulated duration override; 0 uses TotalTime from the config")
	runCmd.Flags().StringVarP(&flagSummary, "summary", "o", "",
		"write the YAML run summary to this file instead of stdout")
	_ = runCmd.MarkFlagRequired("config")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := sim.ReadConfig(flagConfig)
	if err != nil {
		return err
	}

	engine, err := sim.New(*cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Shutdown()

	duration := flagDuration
	if duration <= 0 {
		duration = cfg.TotalTime
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := engine.Run(ctx, duration)
	if err != nil {
		return err
	}
	if summary.Cancelled {
		logger.Warn("run cancelled", zap.Int64("steps", summary.Steps))
	}

	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	if flagSummary == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(flagSummary, out, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	logger.Info("summary written", zap.String("path", flagSummary))
	return nil
}
