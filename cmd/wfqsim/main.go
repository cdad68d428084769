// Command wfqsim runs the weighted-fair-queueing scheduler over a trace
// of packet arrivals read from standard input, writing the resulting
// departure schedule to standard output.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wfqsim",
	Short: "Simulates weighted fair queueing scheduling over a packet arrival trace",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
