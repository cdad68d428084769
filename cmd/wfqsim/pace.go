package main

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/bassosimone/wfqsim"
	"github.com/bassosimone/wfqsim/internal/config"
	"github.com/bassosimone/wfqsim/internal/format"
	"github.com/bassosimone/wfqsim/internal/logging"
	"github.com/bassosimone/wfqsim/internal/pace"
	"github.com/bassosimone/wfqsim/internal/runid"
	"github.com/bassosimone/wfqsim/internal/trace"
)

var paceCmd = &cobra.Command{
	Use:   "pace",
	Short: "Schedules a trace read from stdin and replays departures at real time",
	RunE:  runPace,
}

var (
	paceConfigPath string
	paceScale      float64
	paceVerbose    bool
)

func init() {
	paceCmd.Flags().StringVarP(&paceConfigPath, "config", "c", "", "optional YAML config with pacing parameters")
	paceCmd.Flags().Float64Var(&paceScale, "scale", 1, "real nanoseconds per simulated time unit")
	paceCmd.Flags().BoolVarP(&paceVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(paceCmd)
}

func runPace(cmd *cobra.Command, args []string) error {
	logger := logging.New(paceVerbose)
	runID := runid.New()
	logger.Infof("wfqsim: pace run %s starting", runID)

	var limiter *rate.Limiter
	if paceConfigPath != "" {
		cfg := wfqsim.Must1(config.Load(paceConfigPath))
		if cfg.Pacing.RatePerSecond > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.Pacing.RatePerSecond), cfg.Pacing.BurstSize)
		}
	}

	parser := trace.NewParser(os.Stdin, logger)

	departures := make(chan wfqsim.DepartureEvent, 64)
	go func() {
		defer close(departures)
		scheduler := wfqsim.NewScheduler(logger)
		scheduler.Run(parser, wfqsim.DepartureSinkFunc(func(ev wfqsim.DepartureEvent) {
			departures <- ev
		}))
	}()

	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	sink := format.NewWriter(bw)

	pacer := pace.NewPacer(paceScale, limiter)
	return pacer.Run(context.Background(), departures, sink)
}
