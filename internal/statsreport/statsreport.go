// Package statsreport summarizes per-packet queuing delay using
// github.com/montanaflynn/stats, the same percentile library this
// lineage already depends on for its calibration tooling.
package statsreport

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/bassosimone/wfqsim"
)

// Summary collects queuing-delay statistics (StartTime - ArrivalTime) for
// a sequence of departures.
type Summary struct {
	Count  int
	Min    float64
	Median float64
	P90    float64
	Max    float64
	Mean   float64
}

// Collector accumulates queuing delays as departures are observed.
type Collector struct {
	delays []float64
}

// Observe records the queuing delay of a single departure.
func (c *Collector) Observe(event wfqsim.DepartureEvent) {
	delay := float64(event.StartTime - event.Arrival.ArrivalTime)
	c.delays = append(c.delays, delay)
}

// Summarize computes a [Summary] over all observed delays. It returns an
// error if no delays were observed, matching stats' own behavior for
// empty samples.
func (c *Collector) Summarize() (Summary, error) {
	if len(c.delays) == 0 {
		return Summary{}, fmt.Errorf("statsreport: no samples observed")
	}
	data := stats.LoadRawData(c.delays)

	min, err := stats.Min(data)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}
	p90, err := stats.Percentile(data, 90)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return Summary{}, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Count:  len(c.delays),
		Min:    min,
		Median: median,
		P90:    p90,
		Max:    max,
		Mean:   mean,
	}, nil
}
