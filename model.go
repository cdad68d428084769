package wfqsim

//
// Data model
//

// FlowKey identifies a flow by its 5-tuple-like quadruple. Two arrivals
// belong to the same flow iff all four fields compare equal.
type FlowKey struct {
	SrcAddr string
	SrcPort int
	DstAddr string
	DstPort int
}

// ArrivalEvent describes a packet becoming available to the scheduler.
// Arrivals MUST be delivered to [Scheduler.Run] in nondecreasing
// ArrivalTime order; ties are broken by delivery order.
type ArrivalEvent struct {
	// ArrivalTime is the real time at which the packet became available.
	ArrivalTime int64

	// Key identifies the owning flow.
	Key FlowKey

	// Length is the packet length in the unit weights are normalized against.
	Length int64

	// Weight is the OPTIONAL explicit weight carried by this arrival. When
	// it is nil or non-positive, the flow's current weight, or the 1.0
	// default for a brand new flow, is used instead and the flow's weight
	// is left untouched. Any non-nil value, including a non-positive one,
	// still marks the departure as carrying an explicit weight
	// ([DepartureEvent.HasExplicitWeight]).
	Weight *float64
}

// DepartureEvent describes a packet completing transmission on the link.
type DepartureEvent struct {
	// StartTime is the real time at which transmission began.
	StartTime int64

	// Arrival is the event that originally enqueued this packet.
	Arrival ArrivalEvent

	// WeightUsed is the weight that was in effect when this packet was
	// enqueued: the flow's weight at that moment.
	WeightUsed float64

	// HasExplicitWeight mirrors the source arrival's Weight presence and
	// governs whether a formatter should print the weight field.
	HasExplicitWeight bool

	// FlowPriority is the creation ordinal of the owning flow.
	FlowPriority uint32

	// SequenceID is the global arrival sequence number of this packet.
	SequenceID uint64
}

// ArrivalSource is the narrow interface the scheduler uses to pull arrivals.
// Implementations MUST yield events in nondecreasing ArrivalTime order.
type ArrivalSource interface {
	// Next returns the next arrival, or ok == false when the source is
	// exhausted. Next never blocks waiting for real time to elapse: a trace
	// is fully known in advance.
	Next() (event ArrivalEvent, ok bool)
}

// DepartureSink is the narrow interface the scheduler uses to emit
// departures, in nondecreasing StartTime order.
type DepartureSink interface {
	Emit(event DepartureEvent)
}

// DepartureSinkFunc adapts a plain function to a [DepartureSink].
type DepartureSinkFunc func(event DepartureEvent)

var _ DepartureSink = DepartureSinkFunc(nil)

// Emit implements [DepartureSink].
func (f DepartureSinkFunc) Emit(event DepartureEvent) {
	f(event)
}

// Logger is the logger used throughout this module and its CLI. It mirrors
// the shape of a typical structured logger so that any such library can be
// adapted behind it without the core ever importing one directly.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)

	// Errorf formats and emits an error message.
	Errorf(format string, v ...any)

	// Error emits an error message.
	Error(message string)
}

// NullLogger is a [Logger] that discards everything. The zero value is
// ready to use.
type NullLogger struct{}

var _ Logger = &NullLogger{}

func (*NullLogger) Debugf(format string, v ...any) {}
func (*NullLogger) Debug(message string)           {}
func (*NullLogger) Infof(format string, v ...any)  {}
func (*NullLogger) Info(message string)            {}
func (*NullLogger) Warnf(format string, v ...any)  {}
func (*NullLogger) Warn(message string)            {}
func (*NullLogger) Errorf(format string, v ...any) {}
func (*NullLogger) Error(message string)           {}
