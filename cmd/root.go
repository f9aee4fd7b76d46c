package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flora-sim/vecstats/agg"
)

var (
	logLevel    string // Log verbosity level
	configPath  string // Optional YAML config file for the engine
	outputPath  string // Report destination (default: <setup-dir>/aggregated_vector_stats.json)
	chunkSizeMB int64  // Scan chunk size in MiB
	maxWorkers  int    // Cap on concurrent scan workers
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vecstats",
	Short: "Aggregate OMNeT++ trace files into per-node summary statistics",
}

// aggregateCmd aggregates one setup directory: every numeric subdirectory
// is one repetition whose vector/scalar files are reduced and combined
// into a single report.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate <setup-dir>",
	Short: "Aggregate a setup's repetitions into one report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := engineConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		setupDir := args[0]
		inputs, err := ListRepetitions(setupDir)
		if err != nil {
			logrus.Fatalf("Discovering repetitions in %s: %v", setupDir, err)
		}
		if len(inputs) == 0 {
			logrus.Fatalf("No repetition directories found in %s", setupDir)
		}
		logrus.Infof("Aggregating %d repetitions from %s", len(inputs), setupDir)

		aggregator := agg.NewAggregator(cfg)
		ctx := context.Background()
		var reps []*agg.RepetitionAggregate
		dropped := 0
		for _, in := range inputs {
			rep, err := aggregator.AggregateRepetition(ctx, in)
			if err != nil {
				// A broken repetition degrades the report, it does not abort the setup.
				logrus.Warnf("Repetition %s failed, excluding it: %v", in.ID, err)
				dropped++
				continue
			}
			logrus.Infof("Repetition %s: %d entities", rep.ID, len(rep.Entities))
			reps = append(reps, rep)
		}
		if len(reps) == 0 {
			logrus.Fatalf("All %d repetitions failed", len(inputs))
		}

		report := agg.Combine(reps, dropped)
		out := outputPath
		if out == "" {
			out = filepath.Join(setupDir, "aggregated_vector_stats.json")
		}
		if err := report.Save(out); err != nil {
			logrus.Fatalf("Saving report: %v", err)
		}
		logrus.Infof("Report saved to %s (%d repetitions combined, %d dropped)", out, len(reps), dropped)
	},
}

// engineConfig resolves the engine configuration: config file first, then
// flag overrides, defaults for the rest.
func engineConfig() (agg.Config, error) {
	cfg := agg.DefaultConfig()
	if configPath != "" {
		loaded, err := agg.LoadConfig(configPath)
		if err != nil {
			return agg.Config{}, err
		}
		cfg = loaded
	}
	if chunkSizeMB > 0 {
		cfg.ChunkSizeBytes = chunkSizeMB << 20
	}
	if maxWorkers > 0 {
		cfg.MaxWorkers = maxWorkers
	}
	return cfg, cfg.Validate()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	aggregateCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	aggregateCmd.Flags().StringVar(&configPath, "config", "", "YAML config file for the aggregation engine")
	aggregateCmd.Flags().StringVar(&outputPath, "out", "", "Report output path (default <setup-dir>/aggregated_vector_stats.json)")
	aggregateCmd.Flags().Int64Var(&chunkSizeMB, "chunk-size-mb", 0, "Scan chunk size in MiB (0 = engine default)")
	aggregateCmd.Flags().IntVar(&maxWorkers, "workers", 0, "Max concurrent scan workers (0 = number of CPUs)")

	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(inspectCmd)
}
