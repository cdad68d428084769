// Package wfqsim implements a Weighted Fair Queueing (WFQ) packet scheduler
// simulator over a single output link shared by many logical flows.
//
// The package consumes a stream of [ArrivalEvent] values, each naming a
// flow by its 5-tuple-like [FlowKey] and carrying an optional weight, and
// produces the stream of [DepartureEvent] values that an ideal bit-by-bit
// round-robin server would produce, using the classical virtual-time
// approximation of WFQ (Demers, Keshav & Shenker).
//
// [Scheduler] is the core: it owns the per-flow FIFOs, the virtual-finish-time
// heap, and the virtual clock, and merges arrivals with departures on a
// single simulated timeline. The core has no knowledge of how arrivals are
// parsed or how departures are formatted; those concerns live behind the
// [ArrivalSource] and [DepartureSink] boundary interfaces, with concrete
// implementations in the surrounding internal packages (trace parsing, line
// formatting, CLI, metrics, statistics, real-time pacing).
//
// For normal use, construct a [Scheduler] with [NewScheduler] and call
// [Scheduler.Run] with an [ArrivalSource] and a [DepartureSink]. The
// cmd/wfqsim command wires a line-oriented trace reader and writer around
// exactly this API.
package wfqsim
