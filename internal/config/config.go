// Package config loads the optional YAML configuration file accepted by
// the wfqsim CLI: per-flow weight overrides, the metrics listen address,
// and real-time pacing parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bassosimone/wfqsim"
)

// FlowWeight associates a flow with a default weight, used when a trace
// line does not carry an explicit weight of its own.
type FlowWeight struct {
	SrcAddr string  `yaml:"src_addr"`
	SrcPort int     `yaml:"src_port"`
	DstAddr string  `yaml:"dst_addr"`
	DstPort int     `yaml:"dst_port"`
	Weight  float64 `yaml:"weight"`
}

// Pacing controls the optional real-time replay of departures performed
// by the pace subcommand.
type Pacing struct {
	// RatePerSecond caps how many departures per second are released to
	// the consumer; zero means no cap (departures are still released
	// at their scaled StartTime, without a token bucket).
	RatePerSecond float64 `yaml:"rate_per_second"`
	// BurstSize is the token-bucket burst accompanying RatePerSecond.
	BurstSize int `yaml:"burst_size"`
}

// Config is the root of the YAML configuration file.
type Config struct {
	Weights     []FlowWeight `yaml:"weights"`
	MetricsAddr string       `yaml:"metrics_addr"`
	Pacing      Pacing       `yaml:"pacing"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// WeightTable indexes the configured weights by flow key for fast lookup.
type WeightTable map[wfqsim.FlowKey]float64

// WeightTable builds a [WeightTable] from the configured weight entries.
func (c *Config) WeightTable() WeightTable {
	table := make(WeightTable, len(c.Weights))
	for _, w := range c.Weights {
		key := wfqsim.FlowKey{
			SrcAddr: w.SrcAddr,
			SrcPort: w.SrcPort,
			DstAddr: w.DstAddr,
			DstPort: w.DstPort,
		}
		table[key] = w.Weight
	}
	return table
}

// Lookup returns the configured weight for key, if any. Callers use this
// to fill in [wfqsim.ArrivalEvent.Weight] when the trace line itself
// carries no weight, so that CLI-supplied config never overrides an
// explicit per-packet weight.
func (t WeightTable) Lookup(key wfqsim.FlowKey) (float64, bool) {
	w, ok := t[key]
	return w, ok
}
