// Package metrics exposes a Prometheus /metrics endpoint reporting
// scheduler activity, the same instrumentation approach used elsewhere in
// this lineage for its rate-limiting and socket-statistics tooling.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bassosimone/wfqsim"
)

var (
	departuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wfqsim_departures_total",
		Help: "Total number of packet departures scheduled",
	})
	bytesDepartedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wfqsim_bytes_departed_total",
		Help: "Total bytes departed, per flow",
	}, []string{"src_addr", "src_port", "dst_addr", "dst_port"})
	queuingDelay = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wfqsim_queuing_delay_seconds",
		Help:    "Distribution of queuing delay (start_time - arrival_time)",
		Buckets: prometheus.DefBuckets,
	})
	activeFlows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wfqsim_active_flows",
		Help: "Number of flows with a nonempty queue at the last observed departure",
	})
	activeWeightSum = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wfqsim_active_weight_sum",
		Help: "Sum of weights across all active flows at the last observed departure",
	})
	malformedInputTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wfqsim_malformed_input_lines_total",
		Help: "Total number of trace lines that failed to parse",
	})
)

func init() {
	prometheus.MustRegister(
		departuresTotal, bytesDepartedTotal, queuingDelay,
		activeFlows, activeWeightSum, malformedInputTotal,
	)
}

// FlowCounts reports the counters a [Scheduler]-like source can supply
// after each departure, so the [Observer] can keep the active-flow and
// active-weight-sum gauges current without importing the core package's
// concrete scheduler type.
type FlowCounts interface {
	ActiveFlowCount() int
	ActiveWeightSum() float64
}

// Observer is a [wfqsim.DepartureSink] that records Prometheus metrics for
// every departure and forwards the event unchanged to an underlying sink.
type Observer struct {
	next  wfqsim.DepartureSink
	flows FlowCounts
}

var _ wfqsim.DepartureSink = (*Observer)(nil)

// NewObserver wraps next so every departure also updates the package's
// Prometheus collectors. flows, if non-nil, is queried after each
// departure to keep the active-flow-count and active-weight-sum gauges
// current; pass nil to leave those two gauges at their zero value.
func NewObserver(next wfqsim.DepartureSink, flows FlowCounts) *Observer {
	return &Observer{next: next, flows: flows}
}

// Emit implements [wfqsim.DepartureSink].
func (o *Observer) Emit(event wfqsim.DepartureEvent) {
	departuresTotal.Inc()
	bytesDepartedTotal.WithLabelValues(
		event.Arrival.Key.SrcAddr,
		strconv.Itoa(event.Arrival.Key.SrcPort),
		event.Arrival.Key.DstAddr,
		strconv.Itoa(event.Arrival.Key.DstPort),
	).Add(float64(event.Arrival.Length))
	delaySeconds := float64(event.StartTime-event.Arrival.ArrivalTime) / float64(time.Second)
	if delaySeconds < 0 {
		delaySeconds = 0
	}
	queuingDelay.Observe(delaySeconds)
	if o.flows != nil {
		activeFlows.Set(float64(o.flows.ActiveFlowCount()))
		activeWeightSum.Set(o.flows.ActiveWeightSum())
	}
	o.next.Emit(event)
}

// IncMalformedInput increments the malformed-input-lines counter. Callers
// wire this into a trace parser's malformed-line callback.
func IncMalformedInput() {
	malformedInputTotal.Inc()
}

// Serve starts an HTTP server exposing /metrics on addr and blocks until
// ctx is canceled or the server fails. A canceled context always yields a
// nil error.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
