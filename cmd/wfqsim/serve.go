package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bassosimone/wfqsim"
	"github.com/bassosimone/wfqsim/internal/config"
	"github.com/bassosimone/wfqsim/internal/format"
	"github.com/bassosimone/wfqsim/internal/logging"
	"github.com/bassosimone/wfqsim/internal/metrics"
	"github.com/bassosimone/wfqsim/internal/trace"
)

// defaultMetricsAddr is used when neither --metrics-addr nor the config
// file's metrics_addr is set.
const defaultMetricsAddr = "127.0.0.1:9090"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Schedules a trace read from stdin while exposing Prometheus metrics",
	RunE:  runServe,
}

var (
	serveMetricsAddr string
	serveConfigPath  string
	serveVerbose     bool
)

func init() {
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "address to serve /metrics on (overrides config file and the "+defaultMetricsAddr+" default)")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "optional YAML config with a metrics_addr entry")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New(serveVerbose)

	addr := serveMetricsAddr
	if addr == "" && serveConfigPath != "" {
		if cfg := wfqsim.Must1(config.Load(serveConfigPath)); cfg.MetricsAddr != "" {
			addr = cfg.MetricsAddr
		}
	}
	if addr == "" {
		addr = defaultMetricsAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- metrics.Serve(ctx, addr)
	}()
	logger.Infof("wfqsim: metrics listening on %s", addr)

	scheduler := wfqsim.NewScheduler(logger)

	parser := trace.NewParser(os.Stdin, logger)
	parser.OnMalformed = func(line string, err error) {
		metrics.IncMalformedInput()
	}

	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	sink := metrics.NewObserver(format.NewWriter(bw), scheduler)

	scheduler.Run(parser, sink)

	cancel()
	return <-errCh
}
