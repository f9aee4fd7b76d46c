package cmd

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flora-sim/vecstats/agg"
)

// inspectCmd prints a short summary of a previously written report.
var inspectCmd = &cobra.Command{
	Use:   "inspect <report.json>",
	Short: "Summarize an existing aggregate report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		report, err := agg.LoadReport(args[0])
		if err != nil {
			logrus.Fatalf("Loading report: %v", err)
		}

		fmt.Printf("Repetitions: %d combined, %d dropped\n",
			len(report.Repetitions), report.DroppedRepetitions)
		fmt.Printf("Vectors declared: %d\n", len(report.VectorInfo))
		fmt.Printf("Entities: %d\n", len(report.NodeStats))

		keys := make([]string, 0, len(report.NodeStats))
		for key := range report.NodeStats {
			keys = append(keys, string(key))
		}
		sort.Strings(keys)
		for _, key := range keys {
			signals := report.NodeStats[agg.EntityKey(key)]
			names := make([]string, 0, len(signals))
			for name := range signals {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Printf("  %s (%d signals)\n", key, len(names))
			for _, name := range names {
				cs := signals[name]
				fmt.Printf("    %-40s mean=%.6g std=%.6g\n", name, cs.Mean, cs.Std)
			}
		}
	},
}
