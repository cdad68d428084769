// Package format renders [wfqsim.DepartureEvent] values as the textual
// output lines described by the external interface.
package format

import (
	"fmt"
	"io"

	"github.com/bassosimone/wfqsim"
)

// Writer formats departures and writes one line per event. It is
// intentionally unbuffered beyond what the underlying io.Writer provides:
// the CORE is the only component allowed to reorder or batch events, so the
// formatter writes each departure as soon as it receives it.
type Writer struct {
	w io.Writer
}

var _ wfqsim.DepartureSink = (*Writer)(nil)

// NewWriter creates a [Writer] writing formatted lines to w. Callers
// typically wrap w in a *bufio.Writer and Flush it once scheduling
// completes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Emit implements [wfqsim.DepartureSink].
//
//	<start_time>: <arrival_time> <src_addr> <src_port> <dst_addr> <dst_port> <length>[ <weight>]
func (f *Writer) Emit(event wfqsim.DepartureEvent) {
	a := event.Arrival
	if event.HasExplicitWeight {
		fmt.Fprintf(f.w, "%d: %d %s %d %s %d %d %.2f\n",
			event.StartTime, a.ArrivalTime, a.Key.SrcAddr, a.Key.SrcPort,
			a.Key.DstAddr, a.Key.DstPort, a.Length, event.WeightUsed)
		return
	}
	fmt.Fprintf(f.w, "%d: %d %s %d %s %d %d\n",
		event.StartTime, a.ArrivalTime, a.Key.SrcAddr, a.Key.SrcPort,
		a.Key.DstAddr, a.Key.DstPort, a.Length)
}

// Line renders a single departure in the same format as [Writer.Emit],
// without the trailing newline and without writing it anywhere.
func Line(event wfqsim.DepartureEvent) string {
	a := event.Arrival
	if event.HasExplicitWeight {
		return fmt.Sprintf("%d: %d %s %d %s %d %d %.2f",
			event.StartTime, a.ArrivalTime, a.Key.SrcAddr, a.Key.SrcPort,
			a.Key.DstAddr, a.Key.DstPort, a.Length, event.WeightUsed)
	}
	return fmt.Sprintf("%d: %d %s %d %s %d %d",
		event.StartTime, a.ArrivalTime, a.Key.SrcAddr, a.Key.SrcPort,
		a.Key.DstAddr, a.Key.DstPort, a.Length)
}
