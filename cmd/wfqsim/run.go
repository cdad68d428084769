package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/bassosimone/wfqsim"
	"github.com/bassosimone/wfqsim/internal/config"
	"github.com/bassosimone/wfqsim/internal/format"
	"github.com/bassosimone/wfqsim/internal/logging"
	"github.com/bassosimone/wfqsim/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Schedules a trace read from stdin and writes departures to stdout",
	RunE:  runRun,
}

var (
	runConfigPath string
	runVerbose    bool
)

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "optional YAML config with per-flow weight overrides")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.RunE = runRun
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := logging.New(runVerbose)

	var weights config.WeightTable
	if runConfigPath != "" {
		weights = wfqsim.Must1(config.Load(runConfigPath)).WeightTable()
	}

	parser := trace.NewParser(os.Stdin, logger)
	source := newWeightFillingSource(parser, weights)

	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	sink := format.NewWriter(bw)

	scheduler := wfqsim.NewScheduler(logger)
	scheduler.Run(source, sink)
	return nil
}

// weightFillingSource wraps a [wfqsim.ArrivalSource] and fills in
// [wfqsim.ArrivalEvent.Weight] from a configured per-flow weight table
// whenever the trace line itself carries no explicit weight. A weight
// carried by the trace always takes precedence over configuration.
type weightFillingSource struct {
	next    wfqsim.ArrivalSource
	weights config.WeightTable
}

func newWeightFillingSource(next wfqsim.ArrivalSource, weights config.WeightTable) *weightFillingSource {
	return &weightFillingSource{next: next, weights: weights}
}

var _ wfqsim.ArrivalSource = (*weightFillingSource)(nil)

func (s *weightFillingSource) Next() (wfqsim.ArrivalEvent, bool) {
	ev, ok := s.next.Next()
	if !ok || ev.Weight != nil || s.weights == nil {
		return ev, ok
	}
	if w, found := s.weights.Lookup(ev.Key); found {
		ev.Weight = &w
	}
	return ev, true
}
