package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bassosimone/wfqsim"
	"github.com/bassosimone/wfqsim/internal/logging"
	"github.com/bassosimone/wfqsim/internal/statsreport"
	"github.com/bassosimone/wfqsim/internal/trace"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Schedules a trace read from stdin and prints queuing-delay statistics",
	RunE:  runStats,
}

var statsVerbose bool

func init() {
	statsCmd.Flags().BoolVarP(&statsVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	logger := logging.New(statsVerbose)
	parser := trace.NewParser(os.Stdin, logger)

	var collector statsreport.Collector
	sink := wfqsim.DepartureSinkFunc(collector.Observe)

	scheduler := wfqsim.NewScheduler(logger)
	scheduler.Run(parser, sink)

	summary, err := collector.Summarize()
	if err != nil {
		return err
	}
	fmt.Printf("count:  %d\n", summary.Count)
	fmt.Printf("min:    %.6f\n", summary.Min)
	fmt.Printf("median: %.6f\n", summary.Median)
	fmt.Printf("p90:    %.6f\n", summary.P90)
	fmt.Printf("max:    %.6f\n", summary.Max)
	fmt.Printf("mean:   %.6f\n", summary.Mean)
	return nil
}
